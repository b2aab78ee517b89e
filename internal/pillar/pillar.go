// Package pillar models the life-domain pillars (personal, spiritual,
// financial, career, education). Each pillar levels independently of the
// hunter's aggregate level.
package pillar

// XPPerLevel is the flat per-pillar leveling step.
const XPPerLevel = 100

type ID string

const (
	Personal  ID = "personal"
	Spiritual ID = "spiritual"
	Financial ID = "financial"
	Career    ID = "career"
	Education ID = "education"
)

// Stat is an advisory sub-stat percentage shown on the pillar card. It
// is display-only and never drives progression.
type Stat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Pillar struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Level int    `json:"level"`
	XP    int    `json:"xp"`
	Stats []Stat `json:"stats,omitempty"`
}

// AddXP adds the already-multiplied XP amount to the pillar and
// recomputes its level.
func (p *Pillar) AddXP(amount int) {
	if amount <= 0 {
		return
	}
	p.XP += amount
	p.Level = LevelForXP(p.XP)
}

// LevelForXP is the flat pillar curve: one level per 100 XP, starting
// at level 1.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// Valid reports whether id names a known pillar.
func Valid(id ID) bool {
	switch id {
	case Personal, Spiritual, Financial, Career, Education:
		return true
	}
	return false
}

// Defaults returns the seeded pillar set, keyed by pillar id.
func Defaults() map[ID]Pillar {
	return map[ID]Pillar{
		Personal: {
			ID: Personal, Title: "Personal & Discipline", Icon: "flame", Color: "orange",
			Level: 1, XP: 0,
			Stats: []Stat{
				{Name: "Self Control", Value: 45},
				{Name: "Daily Discipline", Value: 30},
				{Name: "Habit Strength", Value: 25},
			},
		},
		Spiritual: {
			ID: Spiritual, Title: "Spiritual Growth", Icon: "star", Color: "purple",
			Level: 1, XP: 0,
			Stats: []Stat{
				{Name: "Inner Peace", Value: 35},
				{Name: "Courage", Value: 40},
				{Name: "Wisdom", Value: 30},
			},
		},
		Financial: {
			ID: Financial, Title: "Financial Freedom", Icon: "trending-up", Color: "green",
			Level: 1, XP: 0,
			Stats: []Stat{
				{Name: "Income", Value: 20},
				{Name: "Savings", Value: 15},
				{Name: "Investment", Value: 10},
			},
		},
		Career: {
			ID: Career, Title: "Career & Skills", Icon: "brain", Color: "cyan",
			Level: 1, XP: 0,
			Stats: []Stat{
				{Name: "Web Dev", Value: 50},
				{Name: "AI/ML", Value: 35},
				{Name: "Data Analysis", Value: 40},
			},
		},
		Education: {
			ID: Education, Title: "Education & Knowledge", Icon: "book", Color: "blue",
			Level: 1, XP: 0,
			Stats: []Stat{
				{Name: "Books Read", Value: 10},
				{Name: "Courses Completed", Value: 5},
				{Name: "Skills Acquired", Value: 15},
			},
		},
	}
}
