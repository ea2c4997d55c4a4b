package web

import (
	"html/template"

	"gitlab.com/golang-commonmark/markdown"
)

// Raw HTML stays off: articles come from self-registered users, so inline
// HTML must end up escaped, not in the page.
var commonMarkParser = markdown.New(markdown.HTML(false), markdown.Linkify(true), markdown.Typographer(true), markdown.MaxNesting(10))

// renderMarkdown translates CommonMark article content to HTML.
func renderMarkdown(content string) template.HTML {
	return template.HTML(commonMarkParser.RenderToString([]byte(content)))
}
