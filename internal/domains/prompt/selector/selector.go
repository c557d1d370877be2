package selector

import (
	"slices"

	"prompt-catalog/internal/domains/prompt/model"
)

// Selector tracks which version of the selected prompt is on display and
// whether the diff against its predecessor is shown.
type Selector struct {
	promptID      string
	latestVersion int
	viewedVersion int
	showDiff      bool
}

func New() *Selector {
	return &Selector{}
}

// SelectPrompt switches to p and views its current version with the diff off.
func (s *Selector) SelectPrompt(p model.Prompt) {
	s.promptID = p.ID
	s.latestVersion = p.CurrentVersion
	s.viewedVersion = p.CurrentVersion
	s.showDiff = false
}

// SelectVersion views the given version number with the diff off. Numbers
// that do not exist fall back to the current version on resolution.
func (s *Selector) SelectVersion(number int) {
	s.viewedVersion = number
	s.showDiff = false
}

// ToggleDiff flips the diff display. It stays off while the viewed version
// has no predecessor. Returns the new state.
func (s *Selector) ToggleDiff(p model.Prompt) bool {
	viewed := ResolveViewed(p, s.viewedVersion)
	if _, ok := ResolvePrevious(p, viewed); !ok {
		s.showDiff = false
		return false
	}

	s.showDiff = !s.showDiff
	return s.showDiff
}

// Sync follows a newer snapshot of the selected prompt. A different prompt or
// a newly added version resets the view; ratings, comments and detail edits
// keep it.
func (s *Selector) Sync(p model.Prompt) {
	if p.ID != s.promptID || p.CurrentVersion != s.latestVersion {
		s.SelectPrompt(p)
	}
}

func (s *Selector) PromptID() string { return s.promptID }
func (s *Selector) ViewedVersion() int { return s.viewedVersion }
func (s *Selector) ShowDiff() bool { return s.showDiff }

// ResolveViewed returns the version numbered viewed, or the current version
// when no such version exists.
func ResolveViewed(p model.Prompt, viewed int) model.Version {
	if v, ok := p.FindVersion(viewed); ok {
		return v
	}
	v, _ := p.LatestVersion()
	return v
}

// ResolvePrevious returns the version immediately before viewed. There is
// none for version 1.
func ResolvePrevious(p model.Prompt, viewed model.Version) (model.Version, bool) {
	return p.FindVersion(viewed.VersionNumber - 1)
}

// History returns a copy of the versions sorted by number, newest first.
func History(p model.Prompt) []model.Version {
	history := slices.Clone(p.Versions)
	if history == nil {
		history = []model.Version{}
	}
	slices.SortFunc(history, func(a, b model.Version) int {
		return b.VersionNumber - a.VersionNumber
	})
	return history
}
