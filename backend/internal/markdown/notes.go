// Package markdown renders match notes to sanitized HTML.
package markdown

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/padel-tracker/padel/shared/logger"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

type NotesRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *NotesRenderer {
	// a small subset: paragraphs, lists, emphasis, code spans and links
	p := parser.NewParser(
		parser.WithBlockParsers(
			util.Prioritized(parser.NewListParser(), 300),
			util.Prioritized(parser.NewListItemParser(), 400),
			util.Prioritized(parser.NewParagraphParser(), 1000),
		),
		parser.WithInlineParsers(
			util.Prioritized(parser.NewCodeSpanParser(), 100),
			util.Prioritized(parser.NewLinkParser(), 200),
			util.Prioritized(parser.NewAutoLinkParser(), 300),
			util.Prioritized(parser.NewEmphasisParser(), 500),
		),
	)

	md := goldmark.New(
		goldmark.WithParser(p),
		goldmark.WithRendererOptions(html.WithHardWraps()),
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
	)

	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &NotesRenderer{md: md, policy: policy}
}

// Render converts notes to HTML. Raw HTML in the input is escaped by goldmark
// and the output is passed through the UGC policy regardless.
func (n *NotesRenderer) Render(notes string) string {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := n.md.Convert([]byte(notes), &buf); err != nil {
		logger.Log.Warn("failed to render notes", "error", err)
		return n.policy.Sanitize(notes)
	}
	return strings.TrimSpace(n.policy.Sanitize(buf.String()))
}
