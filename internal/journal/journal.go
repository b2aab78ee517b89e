// Package journal stores the hunter's free-form daily log entries.
package journal

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmpty = errors.New("journal: empty entry")

type Entry struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// New builds an entry stamped with the given time. The date field is
// the local calendar day so entries group under the day they were
// written.
func New(text string, now time.Time) (Entry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Entry{}, ErrEmpty
	}
	return Entry{
		ID:        "journal-" + uuid.NewString(),
		Date:      now.Format("2006-01-02"),
		Text:      text,
		CreatedAt: now,
	}, nil
}

// OnDay filters entries written on the given calendar day
// ("2006-01-02"). Order is preserved.
func OnDay(list []Entry, day string) []Entry {
	var out []Entry
	for _, e := range list {
		if e.Date == day {
			out = append(out, e)
		}
	}
	return out
}

// Delete removes the entry with the given id. Unknown ids are a no-op.
func Delete(list []Entry, id string) []Entry {
	out := list[:0:0]
	for _, e := range list {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}
