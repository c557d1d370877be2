package render

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// HTMLDiffer renders a semantic character diff as HTML with <ins>/<del> spans.
type HTMLDiffer struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

func NewHTMLDiffer() *HTMLDiffer {
	return &HTMLDiffer{dmp: diffmatchpatch.New()}
}

func (d *HTMLDiffer) Diff(before, after string) string {
	diffs := d.dmp.DiffMain(before, after, false)
	diffs = d.dmp.DiffCleanupSemantic(diffs)
	return d.dmp.DiffPrettyHtml(diffs)
}

func (d *HTMLDiffer) Available() bool {
	return true
}
