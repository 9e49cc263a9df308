package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/liamcoop/erpassistant/dataset"
	"github.com/liamcoop/erpassistant/intent"
	"github.com/liamcoop/erpassistant/response"
)

func sampleDocument() response.Document {
	return response.Document{Blocks: []response.Block{
		{Kind: response.BlockHeading, Spans: []response.Span{response.Plain("📦 Product Details")}},
		{Kind: response.BlockBreak},
		{Kind: response.BlockField, Label: "Stock Level", Spans: []response.Span{
			response.Plain("12 units"), response.Plain(" "), response.Badge(response.ToneAlert, "⚠️ Low Stock"),
		}},
		{Kind: response.BlockBullet, Spans: []response.Span{response.Strong("HP EliteBook 840 Laptop")}},
		{Kind: response.BlockDetail, Label: "Supplier", Spans: []response.Span{response.Plain("HP Enterprise")}},
		{Kind: response.BlockNote, Spans: []response.Span{response.Emphasis("Reorder soon")}},
	}}
}

func TestHTML(t *testing.T) {
	got := HTML(sampleDocument())
	want := `<strong>📦 Product Details</strong><br><br>` +
		`<strong>Stock Level:</strong> 12 units <span class="alert-badge">⚠️ Low Stock</span><br>` +
		`• <strong>HP EliteBook 840 Laptop</strong><br>` +
		`&nbsp;&nbsp;Supplier: HP Enterprise<br>` +
		`<em>Reorder soon</em>`

	if got != want {
		t.Errorf("HTML() =\n%s\nwant\n%s", got, want)
	}
}

func TestHTMLEscapesText(t *testing.T) {
	doc := response.Document{Blocks: []response.Block{
		{Kind: response.BlockField, Label: "A<b>", Spans: []response.Span{response.Strong(`<script>alert("x")</script>`)}},
	}}

	got := HTML(doc)
	if strings.Contains(got, "<script>") || strings.Contains(got, "<b>") {
		t.Errorf("HTML() did not escape text: %s", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Errorf("HTML() = %s", got)
	}
}

func TestHTMLGeneratedResponses(t *testing.T) {
	data := dataset.Default()
	g := response.NewGenerator(data, response.WithClock(func() time.Time {
		return time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC)
	}))
	hp := data.Products[1]

	tests := []struct {
		name string
		in   intent.Intent
		want []string
	}{
		{"low stock product", intent.Intent{Tag: intent.InventorySpecific, Product: &hp}, []string{
			`<strong>SKU:</strong> LAP-HP-840`,
			`<span class="alert-badge">⚠️ Low Stock</span>`,
			`<strong>Price:</strong> $1,449.99`,
			`<em>💡 Recommendation: Consider reordering 18 units</em>`,
		}},
		{"order summary", intent.Intent{Tag: intent.OrderGeneral}, []string{
			`✅ <strong>Order #12346</strong>`,
			`&nbsp;&nbsp;Status: <span class="status-badge success">Delivered</span>`,
			`<span class="status-badge warning">Pending Approval</span>`,
			`<span class="status-badge info">In Transit</span>`,
		}},
		{"inventory overview", intent.Intent{Tag: intent.InventoryGeneral}, []string{
			`• MacBook Pro 14: <strong>8 units</strong> <span class="low-stock">⚠️ Low Stock</span>`,
		}},
		{"report", intent.Intent{Tag: intent.Report}, []string{"P&amp;L and balance sheet"}},
		{"system status", intent.Intent{Tag: intent.SystemStatus}, []string{
			`<span class="status-badge success">✅ All Systems Operational</span>`,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HTML(g.Generate(tt.in).Document)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("HTML() missing %q:\n%s", want, got)
				}
			}
		})
	}
}

func TestText(t *testing.T) {
	got := Text(sampleDocument())
	want := strings.Join([]string{
		"📦 Product Details",
		"",
		"Stock Level: 12 units ⚠️ Low Stock",
		"• HP EliteBook 840 Laptop",
		"  Supplier: HP Enterprise",
		"Reorder soon",
	}, "\n")

	if got != want {
		t.Errorf("Text() =\n%s\nwant\n%s", got, want)
	}
}

func TestTerminalKeepsText(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	got := term.Render(sampleDocument())
	for _, want := range []string{"📦 Product Details", "12 units", "⚠️ Low Stock", "HP EliteBook 840 Laptop", "  Supplier: HP Enterprise", "Reorder soon"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() missing %q:\n%s", want, got)
		}
	}

	if lines := strings.Count(got, "\n") + 1; lines != len(sampleDocument().Blocks) {
		t.Errorf("Render() produced %d lines, want %d", lines, len(sampleDocument().Blocks))
	}
}

func TestTerminalQuickReplies(t *testing.T) {
	term := NewTerminal(&bytes.Buffer{})

	got := term.QuickReplies([]string{"Check inventory", "Help"})
	if !strings.Contains(got, "[1] Check inventory") || !strings.Contains(got, "[2] Help") {
		t.Errorf("QuickReplies() = %q", got)
	}
}

func TestTerminalFieldLabels(t *testing.T) {
	term := NewTerminal(&bytes.Buffer{})

	doc := response.Document{Blocks: []response.Block{
		{Kind: response.BlockField, Label: "Order Total", Spans: []response.Span{response.Plain("$1,250.00")}},
	}}
	got := term.Render(doc)
	if !strings.Contains(got, "Order Total:") || !strings.HasSuffix(got, " $1,250.00") {
		t.Errorf("Render() = %q, want labelled field", got)
	}
}
