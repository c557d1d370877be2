package selector

import (
	"prompt-catalog/internal/domains/prompt/model"
	"prompt-catalog/internal/infrastructure/render"
)

// DetailView is everything the prompt detail page shows for one selection.
type DetailView struct {
	Prompt   model.Prompt  `json:"prompt"`
	Viewed   model.Version `json:"viewed"`
	IsLatest bool          `json:"is_latest"` // false renders as a preview

	Previous *model.Version `json:"previous,omitempty"`
	CanDiff  bool           `json:"can_diff"`
	// DiffAvailable reports whether a diff formatter is loaded
	DiffAvailable bool   `json:"diff_available"`
	ShowDiff      bool   `json:"show_diff"`
	Diff          string `json:"diff,omitempty"`

	History     []HistoryEntry `json:"history"`
	RatingCount int            `json:"rating_count"`
}

type HistoryEntry struct {
	model.Version
	IsLatest bool `json:"is_latest"`
	IsViewed bool `json:"is_viewed"`
	// Only the viewed entry has its notes rendered
	RenderedNotes string `json:"rendered_notes,omitempty"`
}

// BuildDetailView assembles the detail page for p from the selector state.
// Both formatters may be raw fallbacks; content is then shown as plain text.
func BuildDetailView(p model.Prompt, s *Selector, differ render.Differ, renderer render.Renderer) DetailView {
	viewed := ResolveViewed(p, s.ViewedVersion())

	view := DetailView{
		Prompt:        p,
		Viewed:        viewed,
		IsLatest:      viewed.VersionNumber == p.CurrentVersion,
		DiffAvailable: differ.Available(),
		RatingCount:   len(p.Ratings),
	}

	if previous, ok := ResolvePrevious(p, viewed); ok {
		view.Previous = &previous
		view.CanDiff = true
		view.ShowDiff = s.ShowDiff()
		if view.ShowDiff && view.DiffAvailable {
			view.Diff = differ.Diff(previous.Content, viewed.Content)
		}
	}

	history := History(p)
	view.History = make([]HistoryEntry, 0, len(history))
	for _, v := range history {
		entry := HistoryEntry{
			Version:  v,
			IsLatest: v.VersionNumber == p.CurrentVersion,
			IsViewed: v.VersionNumber == viewed.VersionNumber,
		}
		if entry.IsViewed && v.Description != "" {
			entry.RenderedNotes = renderer.Render(v.Description)
		}
		view.History = append(view.History, entry)
	}

	return view
}
