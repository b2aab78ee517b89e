// Package reward manages the real-life reward shelf: treats the hunter
// defines up front and claims once enough lifetime XP is banked.
package reward

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("reward: not found")
	ErrLocked      = errors.New("reward: xp threshold not reached")
	ErrAlreadyOurs = errors.New("reward: already claimed")
)

type Reward struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	XPRequired  int    `json:"xpRequired"`
	Claimed     bool   `json:"claimed"`
}

// Draft is the user-submitted shape for a new reward.
type Draft struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Description string `json:"description" validate:"max=500"`
	XPRequired  int    `json:"xpRequired" validate:"gte=0"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func draftValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Create validates the draft and returns the stored reward with a fresh
// id. Whitespace-only names fail validation after trimming.
func Create(d Draft) (Reward, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	if err := draftValidator().Struct(d); err != nil {
		return Reward{}, err
	}
	return Reward{
		ID:          "reward-" + uuid.NewString(),
		Name:        d.Name,
		Description: d.Description,
		XPRequired:  d.XPRequired,
	}, nil
}

// Seed returns the default reward shelf.
func Seed() []Reward {
	return []Reward{
		{ID: "reward-1", Name: "Movie Night", Description: "One guilt-free movie evening", XPRequired: 200},
		{ID: "reward-2", Name: "New Book", Description: "Buy the next book on the list", XPRequired: 500},
		{ID: "reward-3", Name: "Weekend Trip", Description: "A short trip out of town", XPRequired: 2000},
	}
}

// Claim marks the reward claimed when the hunter's lifetime XP meets its
// threshold. Claiming is one-way and spends nothing; totalXP is a
// lifetime figure, not a wallet.
func Claim(list []Reward, id string, totalXP int) ([]Reward, Reward, error) {
	for i, r := range list {
		if r.ID != id {
			continue
		}
		if r.Claimed {
			return list, Reward{}, ErrAlreadyOurs
		}
		if totalXP < r.XPRequired {
			return list, Reward{}, ErrLocked
		}
		out := make([]Reward, len(list))
		copy(out, list)
		out[i].Claimed = true
		return out, out[i], nil
	}
	return list, Reward{}, ErrNotFound
}

// Delete removes the reward with the given id. Unknown ids are a no-op.
func Delete(list []Reward, id string) []Reward {
	out := list[:0:0]
	for _, r := range list {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}
