package quest

import "github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/pillar"

// SeedDaily returns the default daily quest collection.
func SeedDaily() Collection {
	return Collection{
		{ID: "daily-1", Task: "Read 10-20 pages", XP: 20, Pillar: pillar.Personal},
		{ID: "daily-2", Task: "Prayer/Reflection 5-10 min", XP: 10, Pillar: pillar.Spiritual},
		{ID: "daily-3", Task: "Skill Practice 30-60 min", XP: 20, Pillar: pillar.Career},
		{ID: "daily-4", Task: "Track Spending", XP: 30, Pillar: pillar.Financial},
		{ID: "daily-5", Task: "Discipline Act (avoid distractions)", XP: 15, Pillar: pillar.Personal},
	}
}

// SeedWeekly returns the default weekly quest collection.
func SeedWeekly() Collection {
	return Collection{
		{ID: "weekly-1", Task: "Read 30-50 pages", XP: 50, Pillar: pillar.Personal},
		{ID: "weekly-2", Task: "Complete Project Milestone", XP: 50, Pillar: pillar.Career},
		{ID: "weekly-3", Task: "Weekly Financial Review", XP: 20, Pillar: pillar.Financial},
		{ID: "weekly-4", Task: "Weekly Spiritual Reflection", XP: 20, Pillar: pillar.Spiritual},
	}
}

// SeedMonthly returns the default monthly quest collection.
func SeedMonthly() Collection {
	return Collection{
		{ID: "monthly-1", Task: "Complete 1 Book", XP: 100, Pillar: pillar.Personal},
		{ID: "monthly-2", Task: "Achieve Financial Target", XP: 100, Pillar: pillar.Financial},
		{ID: "monthly-3", Task: "Complete Major Project", XP: 100, Pillar: pillar.Career},
		{ID: "monthly-4", Task: "Monthly Journal Summary", XP: 50, Pillar: pillar.Spiritual},
	}
}

// SeedRecovery returns the penalty-zone recovery tasks. They are
// re-armed to incomplete every time the zone is entered or exited.
func SeedRecovery() Collection {
	return Collection{
		{ID: "recovery-1", Task: "Complete 10 push-ups", XP: 10, Pillar: pillar.Personal},
		{ID: "recovery-2", Task: "5 minute meditation", XP: 10, Pillar: pillar.Personal},
		{ID: "recovery-3", Task: "Write 3 lines in your journal", XP: 15, Pillar: pillar.Personal},
		{ID: "recovery-4", Task: "Clear your workspace", XP: 15, Pillar: pillar.Personal},
	}
}
