package render

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/liamcoop/erpassistant/response"
)

// Terminal renders documents with ANSI styling for the chat CLI. Colours
// degrade to plain text when the output is not a terminal.
type Terminal struct {
	heading  lipgloss.Style
	label    lipgloss.Style
	strong   lipgloss.Style
	emphasis lipgloss.Style
	note     lipgloss.Style
	badges   map[response.Tone]lipgloss.Style
	reply    lipgloss.Style
}

// NewTerminal creates a renderer whose colour profile matches w
func NewTerminal(w io.Writer) *Terminal {
	r := lipgloss.NewRenderer(w)

	badge := func(color string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
	}

	return &Terminal{
		heading:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("62")),
		label:    r.NewStyle().Bold(true),
		strong:   r.NewStyle().Bold(true),
		emphasis: r.NewStyle().Italic(true),
		note:     r.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
		badges: map[response.Tone]lipgloss.Style{
			response.ToneSuccess:  badge("46"),
			response.ToneWarning:  badge("226"),
			response.ToneInfo:     badge("69"),
			response.ToneLowStock: badge("214"),
			response.ToneAlert:    badge("196"),
		},
		reply: r.NewStyle().Foreground(lipgloss.Color("141")),
	}
}

// Render renders doc
func (t *Terminal) Render(doc response.Document) string {
	lines := make([]string, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		body := t.spans(b.Spans)
		switch b.Kind {
		case response.BlockHeading:
			lines = append(lines, t.heading.Render(plainSpans(b.Spans)))
		case response.BlockNote:
			lines = append(lines, t.note.Render(plainSpans(b.Spans)))
		default:
			lines = append(lines, textBlock(b, body, func(s string) string { return t.label.Render(s) }))
		}
	}
	return strings.Join(lines, "\n")
}

// QuickReplies renders numbered follow-up suggestions
func (t *Terminal) QuickReplies(replies []string) string {
	lines := make([]string, 0, len(replies))
	for i, r := range replies {
		lines = append(lines, t.reply.Render("["+strconv.Itoa(i+1)+"] "+r))
	}
	return strings.Join(lines, "  ")
}

func (t *Terminal) spans(spans []response.Span) string {
	var sb strings.Builder
	for _, s := range spans {
		switch s.Kind {
		case response.SpanStrong:
			sb.WriteString(t.strong.Render(s.Text))
		case response.SpanEmphasis:
			sb.WriteString(t.emphasis.Render(s.Text))
		case response.SpanBadge:
			style, ok := t.badges[s.Tone]
			if !ok {
				style = t.badges[response.ToneInfo]
			}
			sb.WriteString(style.Render(s.Text))
		default:
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}
