package render

// ================================================
// RAW TEXT FALLBACKS
// ================================================

// RawDiffer is used when no diff capability is available: it shows the newer text as is.
type RawDiffer struct{}

func NewRawDiffer() *RawDiffer {
	return &RawDiffer{}
}

func (RawDiffer) Diff(before, after string) string {
	return after
}

func (RawDiffer) Available() bool {
	return false
}

// RawRenderer returns text unchanged.
type RawRenderer struct{}

func NewRawRenderer() *RawRenderer {
	return &RawRenderer{}
}

func (RawRenderer) Render(text string) string {
	return text
}

func (RawRenderer) Available() bool {
	return false
}
