// Package render turns response documents into HTML, plain text and styled
// terminal output.
package render

import (
	"html"
	"strings"

	"github.com/liamcoop/erpassistant/response"
)

const (
	htmlIndent = "&nbsp;&nbsp;"
	textIndent = "  "
	bullet     = "• "
)

// badgeClasses maps tones to the CSS classes of the chat widget
var badgeClasses = map[response.Tone]string{
	response.ToneSuccess:  "status-badge success",
	response.ToneWarning:  "status-badge warning",
	response.ToneInfo:     "status-badge info",
	response.ToneLowStock: "low-stock",
	response.ToneAlert:    "alert-badge",
}

// HTML renders doc as chat-bubble markup. Text is escaped; lines are
// separated by <br>.
func HTML(doc response.Document) string {
	lines := make([]string, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		lines = append(lines, htmlBlock(b))
	}
	return strings.Join(lines, "<br>")
}

func htmlBlock(b response.Block) string {
	body := htmlSpans(b.Spans)

	switch b.Kind {
	case response.BlockHeading:
		return "<strong>" + body + "</strong>"
	case response.BlockField:
		return "<strong>" + html.EscapeString(b.Label) + ":</strong> " + body
	case response.BlockBullet:
		return bullet + body
	case response.BlockDetail:
		if b.Label != "" {
			return htmlIndent + html.EscapeString(b.Label) + ": " + body
		}
		return htmlIndent + body
	case response.BlockBreak:
		return ""
	default:
		return body
	}
}

func htmlSpans(spans []response.Span) string {
	var sb strings.Builder
	for _, s := range spans {
		text := html.EscapeString(s.Text)
		switch s.Kind {
		case response.SpanStrong:
			sb.WriteString("<strong>" + text + "</strong>")
		case response.SpanEmphasis:
			sb.WriteString("<em>" + text + "</em>")
		case response.SpanBadge:
			class, ok := badgeClasses[s.Tone]
			if !ok {
				class = badgeClasses[response.ToneInfo]
			}
			sb.WriteString(`<span class="` + class + `">` + text + "</span>")
		default:
			sb.WriteString(text)
		}
	}
	return sb.String()
}

// Text renders doc as plain text, one block per line
func Text(doc response.Document) string {
	lines := make([]string, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		lines = append(lines, textBlock(b, plainSpans(b.Spans), func(s string) string { return s }))
	}
	return strings.Join(lines, "\n")
}

func plainSpans(spans []response.Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// textBlock lays out one block; label styles field labels
func textBlock(b response.Block, body string, label func(string) string) string {
	switch b.Kind {
	case response.BlockField:
		return label(b.Label+":") + " " + body
	case response.BlockBullet:
		return bullet + body
	case response.BlockDetail:
		if b.Label != "" {
			return textIndent + b.Label + ": " + body
		}
		return textIndent + body
	case response.BlockBreak:
		return ""
	default:
		return body
	}
}
