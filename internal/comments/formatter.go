package comments

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"csd/internal/structures"

	"github.com/microcosm-cc/bluemonday"
)

// TruncationMarker is appended to a name or comment cut at its maximum length.
const TruncationMarker = "..."

// DefaultLinkFormat wraps a detected link in an anchor opening a new tab.
// \1 stands for the matched link.
const DefaultLinkFormat = `<a href=http://\1 target="_blank">\1</a>`

// linkRe finds bare URLs and domains: an optional scheme followed by a word
// containing a dot, at the start of the text or after whitespace.
var linkRe = regexp.MustCompile(`(^|\s)(?:https?://)?([^\s/$?.#:]*\.[^\s.]\S*)`)

// markupEscaper re-escapes sanitized text. Quotes stay literal outside links.
var markupEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// attrEscaper guards a link substituted into an attribute value.
var attrEscaper = strings.NewReplacer(`"`, "&#34;", "'", "&#39;")

// Formatter prepares submitted text for storage.
type Formatter struct {
	policy           *bluemonday.Policy
	maxNameLength    int
	maxCommentLength int
	parseLinks       bool
	linkFormat       string
}

func NewFormatter(conf *structures.Config) *Formatter {
	format := conf.Comments.LinkFormat
	if format == "" {
		format = DefaultLinkFormat
	}
	return &Formatter{
		policy:           bluemonday.StrictPolicy(),
		maxNameLength:    conf.Comments.MaxNameLength,
		maxCommentLength: conf.Comments.MaxCommentLength,
		parseLinks:       conf.Comments.ParseLinks,
		linkFormat:       format,
	}
}

// Format strips markup from both fields, truncates them and, when enabled,
// turns links in the comment into anchors. Limits count the characters the
// visitor typed, not their escaped form.
func (f *Formatter) Format(name, comment string) (string, string) {
	name = f.clean(name, f.maxNameLength)
	comment = f.clean(comment, f.maxCommentLength)
	if f.parseLinks {
		comment = f.Linkify(comment)
	}
	return name, comment
}

func (f *Formatter) clean(s string, limit int) string {
	text := html.UnescapeString(f.policy.Sanitize(s))
	return markupEscaper.Replace(Truncate(text, limit))
}

// Linkify substitutes each detected link for \1 in the link format, keeping
// the whitespace before it and dropping any scheme.
func (f *Formatter) Linkify(text string) string {
	matches := linkRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		b.WriteString(text[m[2]:m[3]])
		link := attrEscaper.Replace(text[m[4]:m[5]])
		b.WriteString(strings.ReplaceAll(f.linkFormat, `\1`, link))
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// Truncate cuts s to limit characters and appends TruncationMarker. Text at or
// under limit is returned unchanged. A non-positive limit disables truncation.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + TruncationMarker
}
