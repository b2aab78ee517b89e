package quest

import (
	"errors"
	"strings"
	"testing"

	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/pillar"
)

func TestToggle(t *testing.T) {
	c := SeedDaily()

	c, res, err := c.Toggle("daily-4")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !res.NowCompleted || res.Quest.ID != "daily-4" || res.Quest.XP != 30 {
		t.Fatalf("unexpected toggle result: %+v", res)
	}

	// Toggling back reports NowCompleted=false; no reversal happens here.
	c, res, err = c.Toggle("daily-4")
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if res.NowCompleted {
		t.Fatalf("expected quest to be incomplete after second toggle")
	}
	_ = c
}

func TestToggleUnknownID(t *testing.T) {
	c := SeedDaily()
	_, _, err := c.Toggle("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResetPreservesDefinitions(t *testing.T) {
	c := SeedWeekly()
	c, _, _ = c.Toggle("weekly-1")
	c, _, _ = c.Toggle("weekly-3")

	before := make(map[string]Quest, len(c))
	for _, q := range c {
		before[q.ID] = q
	}

	c = c.Reset()
	if len(c) != 4 {
		t.Fatalf("reset changed collection size: %d", len(c))
	}
	for _, q := range c {
		if q.Completed {
			t.Fatalf("quest %s still completed after reset", q.ID)
		}
		orig := before[q.ID]
		if q.Task != orig.Task || q.XP != orig.XP || q.Pillar != orig.Pillar {
			t.Fatalf("reset mutated quest definition: %+v vs %+v", q, orig)
		}
	}
}

func TestCreate(t *testing.T) {
	c := Collection{}

	c, q, err := c.Create(Draft{Task: "  Morning run  ", XP: 25, Pillar: pillar.Personal})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if q.Task != "Morning run" || q.XP != 25 || q.Pillar != pillar.Personal || q.Completed {
		t.Fatalf("unexpected quest: %+v", q)
	}
	if !strings.HasPrefix(q.ID, "custom-") {
		t.Fatalf("expected generated id, got %q", q.ID)
	}
	if len(c) != 1 {
		t.Fatalf("expected 1 quest, got %d", len(c))
	}
}

func TestCreateRejectsEmptyTask(t *testing.T) {
	c := SeedDaily()
	out, _, err := c.Create(Draft{Task: "   "})
	if err == nil {
		t.Fatal("expected validation error for empty task")
	}
	if len(out) != len(c) {
		t.Fatalf("failed create must not modify the collection")
	}
}

func TestCreateDefaultsAndSanitizes(t *testing.T) {
	c := Collection{}
	c, q, err := c.Create(Draft{Task: "Stretch", XP: -5, Pillar: "arcane"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if q.XP != DefaultXP {
		t.Fatalf("expected fallback xp %d, got %d", DefaultXP, q.XP)
	}
	if q.Pillar != "" {
		t.Fatalf("unknown pillar should be dropped, got %q", q.Pillar)
	}
	_ = c
}

func TestCreateIDsAreUnique(t *testing.T) {
	c := Collection{}
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		var q Quest
		var err error
		c, q, err = c.Create(Draft{Task: "q", XP: 1})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if seen[q.ID] {
			t.Fatalf("duplicate id %q", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestDelete(t *testing.T) {
	c := SeedMonthly()
	c = c.Delete("monthly-2")
	if len(c) != 3 {
		t.Fatalf("expected 3 quests, got %d", len(c))
	}
	for _, q := range c {
		if q.ID == "monthly-2" {
			t.Fatal("quest not deleted")
		}
	}
	// Deleting an unknown id is a no-op.
	if got := c.Delete("ghost"); len(got) != 3 {
		t.Fatalf("delete of unknown id changed the collection")
	}
}

func TestAllCompletedAndIncomplete(t *testing.T) {
	var empty Collection
	if empty.AllCompleted() {
		t.Fatal("empty collection must not count as fully completed")
	}

	c := SeedRecovery()
	if c.AllCompleted() || c.Incomplete() != 4 {
		t.Fatalf("fresh recovery quests should be incomplete")
	}
	for _, q := range c {
		c, _, _ = c.Toggle(q.ID)
	}
	if !c.AllCompleted() || c.Incomplete() != 0 {
		t.Fatalf("expected all complete, incomplete=%d", c.Incomplete())
	}
}
