// Package quest implements the quest ledger: per-cadence collections of
// quest definitions with completion flags, plus authoring of custom
// quests.
package quest

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/pillar"
)

// DefaultXP is the fallback reward when a draft omits or mangles the XP
// field.
const DefaultXP = 10

var ErrNotFound = errors.New("quest not found")

// Cadence is the reset period of a quest collection.
type Cadence string

const (
	Daily   Cadence = "daily"
	Weekly  Cadence = "weekly"
	Monthly Cadence = "monthly"
)

func (c Cadence) Valid() bool {
	switch c {
	case Daily, Weekly, Monthly:
		return true
	}
	return false
}

type Quest struct {
	ID        string    `json:"id"`
	Task      string    `json:"task"`
	XP        int       `json:"xp"`
	Pillar    pillar.ID `json:"pillar,omitempty"`
	Completed bool      `json:"completed"`
}

// Collection is one cadence's quest list. Operations return new slices;
// callers own serialization.
type Collection []Quest

// ToggleResult reports what a toggle did so the orchestrator can decide
// on follow-up effects.
type ToggleResult struct {
	Quest        Quest
	NowCompleted bool
}

// Toggle flips the completion flag of the quest with the given id. The
// caller awards XP only on the false→true transition; the true→false
// transition intentionally performs no reversal.
func (c Collection) Toggle(id string) (Collection, ToggleResult, error) {
	out := make(Collection, len(c))
	copy(out, c)
	for i := range out {
		if out[i].ID == id {
			out[i].Completed = !out[i].Completed
			return out, ToggleResult{Quest: out[i], NowCompleted: out[i].Completed}, nil
		}
	}
	return c, ToggleResult{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Reset clears every completion flag while preserving quest identity and
// definition. Custom quests survive resets.
func (c Collection) Reset() Collection {
	out := make(Collection, len(c))
	for i, q := range c {
		q.Completed = false
		out[i] = q
	}
	return out
}

// Delete removes the quest with the given id. Removing an unknown id is
// a no-op, not an error.
func (c Collection) Delete(id string) Collection {
	out := make(Collection, 0, len(c))
	for _, q := range c {
		if q.ID != id {
			out = append(out, q)
		}
	}
	return out
}

// AllCompleted reports whether the collection is non-empty and every
// quest in it is complete.
func (c Collection) AllCompleted() bool {
	if len(c) == 0 {
		return false
	}
	for _, q := range c {
		if !q.Completed {
			return false
		}
	}
	return true
}

// Incomplete counts quests whose completion flag is still false.
func (c Collection) Incomplete() int {
	n := 0
	for _, q := range c {
		if !q.Completed {
			n++
		}
	}
	return n
}

// Draft is the authoring payload for a custom quest.
type Draft struct {
	Task   string    `json:"task" validate:"required,min=1,max=200"`
	XP     int       `json:"xp"`
	Pillar pillar.ID `json:"pillar,omitempty"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func draftValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Create appends a new quest built from the draft. Empty task text is
// rejected; a missing or non-positive XP value falls back to DefaultXP;
// an unknown pillar tag is dropped rather than stored.
func (c Collection) Create(d Draft) (Collection, Quest, error) {
	d.Task = strings.TrimSpace(d.Task)
	if err := draftValidator().Struct(d); err != nil {
		return c, Quest{}, fmt.Errorf("invalid quest draft: %w", err)
	}
	if d.XP <= 0 {
		d.XP = DefaultXP
	}
	if d.Pillar != "" && !pillar.Valid(d.Pillar) {
		d.Pillar = ""
	}

	q := Quest{
		ID:     newID(),
		Task:   d.Task,
		XP:     d.XP,
		Pillar: d.Pillar,
	}
	out := make(Collection, len(c), len(c)+1)
	copy(out, c)
	return append(out, q), q, nil
}

// newID generates a collision-resistant id for custom quests. Seeded
// defaults use stable slugs instead.
func newID() string {
	return "custom-" + uuid.NewString()
}
