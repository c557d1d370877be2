package model

import (
	"fmt"
	"slices"
	"time"
)

// Prompt is a titled, versioned piece of reusable text with ratings and comments.
// Values are treated as immutable snapshots: every change produces a new Prompt.
type Prompt struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`

	// Derived from Ratings, recomputed on every new rating
	AverageRating float64   `json:"average_rating"`
	Ratings       []Rating  `json:"ratings"`
	Comments      []Comment `json:"comments"`

	// Versions are append-only; CurrentVersion is the highest VersionNumber
	Versions       []Version `json:"versions"`
	CurrentVersion int       `json:"current_version"`
}

// Version is an immutable, numbered snapshot of a prompt's content.
type Version struct {
	ID            string    `json:"id"`
	Content       string    `json:"content"`
	Description   string    `json:"description"` // release notes, Markdown
	VersionNumber int       `json:"version_number"`
	Timestamp     time.Time `json:"timestamp"`
}

// Rating is one user's score for a prompt.
type Rating struct {
	UserID string  `json:"user_id"`
	Score  float64 `json:"score"`
}

// Comment is a free-text remark attached to a prompt.
type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Catalog is an immutable view of the whole prompt collection at one revision.
type Catalog struct {
	Revision uint64   `json:"revision"`
	Prompts  []Prompt `json:"prompts"`
}

// Clone returns a deep copy so callers can never reach the store's backing arrays.
func (p Prompt) Clone() Prompt {
	p.Tags = cloneNonNil(p.Tags)
	p.Ratings = cloneNonNil(p.Ratings)
	p.Comments = cloneNonNil(p.Comments)
	p.Versions = cloneNonNil(p.Versions)
	return p
}

// FindVersion looks up a version by its number.
func (p Prompt) FindVersion(number int) (Version, bool) {
	for _, v := range p.Versions {
		if v.VersionNumber == number {
			return v, true
		}
	}
	return Version{}, false
}

// LatestVersion returns the version CurrentVersion points at.
func (p Prompt) LatestVersion() (Version, bool) {
	return p.FindVersion(p.CurrentVersion)
}

// CheckInvariants verifies the version history and the derived rating.
func (p Prompt) CheckInvariants() error {
	if len(p.Versions) == 0 {
		return fmt.Errorf("prompt %q has no versions", p.ID)
	}
	for i, v := range p.Versions {
		if v.VersionNumber != i+FirstVersionNumber {
			return fmt.Errorf("prompt %q: version at position %d has number %d, want %d",
				p.ID, i, v.VersionNumber, i+FirstVersionNumber)
		}
	}
	if p.CurrentVersion != len(p.Versions) {
		return fmt.Errorf("prompt %q: current version %d does not match latest version %d",
			p.ID, p.CurrentVersion, len(p.Versions))
	}
	if want := AverageRating(p.Ratings); p.AverageRating != want {
		return fmt.Errorf("prompt %q: average rating %v, want %v", p.ID, p.AverageRating, want)
	}
	return nil
}

// Clone copies the collection deeply.
func (c Catalog) Clone() Catalog {
	prompts := make([]Prompt, len(c.Prompts))
	for i, p := range c.Prompts {
		prompts[i] = p.Clone()
	}
	c.Prompts = prompts
	return c
}

func cloneNonNil[S ~[]E, E any](s S) S {
	if s == nil {
		return S{}
	}
	return slices.Clone(s)
}
