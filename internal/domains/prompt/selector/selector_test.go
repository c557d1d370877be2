package selector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt-catalog/internal/domains/prompt/model"
	"prompt-catalog/internal/infrastructure/render"
)

func testPrompt(id string, versions ...string) model.Prompt {
	p := model.Prompt{ID: id, Title: "title " + id}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, content := range versions {
		p.Versions = append(p.Versions, model.Version{
			ID:            id + "-v" + content,
			Content:       content,
			Description:   "**notes** for " + content,
			VersionNumber: i + 1,
			Timestamp:     base.Add(time.Duration(i) * time.Hour),
		})
	}
	p.CurrentVersion = len(versions)
	return p
}

func TestResolveViewed(t *testing.T) {
	p := testPrompt("p", "one", "two", "three")

	assert.Equal(t, 2, ResolveViewed(p, 2).VersionNumber)
	// Unknown numbers fall back to the current version
	for _, n := range []int{0, -1, 4, 100} {
		assert.Equal(t, 3, ResolveViewed(p, n).VersionNumber, "viewed %d", n)
	}
}

func TestResolvePrevious(t *testing.T) {
	p := testPrompt("p", "one", "two", "three")

	for n := 1; n <= 3; n++ {
		prev, ok := ResolvePrevious(p, ResolveViewed(p, n))
		if n == 1 {
			assert.False(t, ok)
			continue
		}
		require.True(t, ok)
		assert.Equal(t, n-1, prev.VersionNumber)
	}
}

func TestHistory_SortedNewestFirst(t *testing.T) {
	p := testPrompt("p", "one", "two", "three")
	p.Versions[0], p.Versions[2] = p.Versions[2], p.Versions[0]

	history := History(p)
	require.Len(t, history, 3)
	assert.Equal(t, 3, history[0].VersionNumber)
	assert.Equal(t, 2, history[1].VersionNumber)
	assert.Equal(t, 1, history[2].VersionNumber)

	// The prompt's own slice is left as it was
	assert.Equal(t, 3, p.Versions[0].VersionNumber)
}

func TestSelector_SelectPromptAndVersion(t *testing.T) {
	p := testPrompt("p", "one", "two")
	s := New()

	s.SelectPrompt(p)
	assert.Equal(t, "p", s.PromptID())
	assert.Equal(t, 2, s.ViewedVersion())
	assert.False(t, s.ShowDiff())

	assert.True(t, s.ToggleDiff(p))
	s.SelectVersion(1)
	assert.Equal(t, 1, s.ViewedVersion())
	assert.False(t, s.ShowDiff(), "choosing a version turns the diff off")

	s.SelectPrompt(testPrompt("q", "only"))
	assert.Equal(t, "q", s.PromptID())
	assert.Equal(t, 1, s.ViewedVersion())
}

func TestSelector_ToggleDiffNeedsPredecessor(t *testing.T) {
	p := testPrompt("p", "one", "two")
	s := New()
	s.SelectPrompt(p)

	assert.True(t, s.ToggleDiff(p))
	assert.False(t, s.ToggleDiff(p))

	s.SelectVersion(1)
	assert.False(t, s.ToggleDiff(p))
	assert.False(t, s.ShowDiff())
}

func TestSelector_Sync(t *testing.T) {
	p := testPrompt("p", "one", "two")
	s := New()
	s.SelectPrompt(p)
	s.SelectVersion(1)

	// A rating does not move the view
	rated := p.Clone()
	rated.Ratings = append(rated.Ratings, model.Rating{UserID: "u", Score: 5})
	s.Sync(rated)
	assert.Equal(t, 1, s.ViewedVersion())

	// A new version jumps to it
	grown := testPrompt("p", "one", "two", "three")
	s.ToggleDiff(grown)
	s.Sync(grown)
	assert.Equal(t, 3, s.ViewedVersion())
	assert.False(t, s.ShowDiff())

	// Another prompt resets too
	s.SelectVersion(2)
	s.Sync(testPrompt("q", "one", "two", "three"))
	assert.Equal(t, "q", s.PromptID())
	assert.Equal(t, 3, s.ViewedVersion())
}

func TestBuildDetailView_Latest(t *testing.T) {
	p := testPrompt("p", "a glowing orb", "a pulsing crystal orb")
	p.Ratings = []model.Rating{{UserID: "u1", Score: 4}, {UserID: "u2", Score: 5}}
	s := New()
	s.SelectPrompt(p)

	view := BuildDetailView(p, s, render.NewHTMLDiffer(), render.NewMarkdownRenderer())

	assert.Equal(t, 2, view.Viewed.VersionNumber)
	assert.True(t, view.IsLatest)
	require.NotNil(t, view.Previous)
	assert.Equal(t, 1, view.Previous.VersionNumber)
	assert.True(t, view.CanDiff)
	assert.True(t, view.DiffAvailable)
	assert.False(t, view.ShowDiff)
	assert.Empty(t, view.Diff)
	assert.Equal(t, 2, view.RatingCount)

	require.Len(t, view.History, 2)
	assert.True(t, view.History[0].IsLatest)
	assert.True(t, view.History[0].IsViewed)
	assert.Contains(t, view.History[0].RenderedNotes, "<strong>notes</strong>")
	assert.False(t, view.History[1].IsViewed)
	assert.Empty(t, view.History[1].RenderedNotes)
}

func TestBuildDetailView_PreviewWithDiff(t *testing.T) {
	p := testPrompt("p", "one", "two words", "three")
	s := New()
	s.SelectPrompt(p)
	s.SelectVersion(2)
	require.True(t, s.ToggleDiff(p))

	view := BuildDetailView(p, s, render.NewHTMLDiffer(), render.NewRawRenderer())

	assert.Equal(t, 2, view.Viewed.VersionNumber)
	assert.False(t, view.IsLatest)
	assert.True(t, view.ShowDiff)
	assert.Contains(t, view.Diff, "<ins")
	assert.Equal(t, "**notes** for two words", view.History[1].RenderedNotes)
}

func TestBuildDetailView_WithoutFormatters(t *testing.T) {
	p := testPrompt("p", "one", "two")
	s := New()
	s.SelectPrompt(p)
	s.ToggleDiff(p)

	view := BuildDetailView(p, s, render.NewRawDiffer(), render.NewRawRenderer())

	assert.True(t, view.ShowDiff)
	assert.False(t, view.DiffAvailable)
	assert.Empty(t, view.Diff, "content is shown as plain text")
	assert.Equal(t, "two", view.Viewed.Content)
}

func TestBuildDetailView_FirstVersionHasNoDiff(t *testing.T) {
	p := testPrompt("p", "only")
	s := New()
	s.SelectPrompt(p)

	view := BuildDetailView(p, s, render.NewHTMLDiffer(), render.NewRawRenderer())

	assert.Nil(t, view.Previous)
	assert.False(t, view.CanDiff)
	assert.False(t, view.ShowDiff)
}
