package response

// Tone colours a badge
type Tone string

const (
	ToneSuccess  Tone = "success"
	ToneWarning  Tone = "warning"
	ToneInfo     Tone = "info"
	ToneLowStock Tone = "low-stock"
	ToneAlert    Tone = "alert"
)

// SpanKind is the inline style of a span
type SpanKind string

const (
	SpanPlain    SpanKind = "plain"
	SpanStrong   SpanKind = "strong"
	SpanEmphasis SpanKind = "emphasis"
	SpanBadge    SpanKind = "badge"
)

// Span is a run of text with one inline style
type Span struct {
	Kind SpanKind `json:"kind"`
	Text string   `json:"text"`
	Tone Tone     `json:"tone,omitempty"`
}

// Plain returns an unstyled span
func Plain(text string) Span { return Span{Kind: SpanPlain, Text: text} }

// Strong returns a bold span
func Strong(text string) Span { return Span{Kind: SpanStrong, Text: text} }

// Emphasis returns an italic span
func Emphasis(text string) Span { return Span{Kind: SpanEmphasis, Text: text} }

// Badge returns a status badge span
func Badge(tone Tone, text string) Span { return Span{Kind: SpanBadge, Text: text, Tone: tone} }

// BlockKind is the layout role of a block
type BlockKind string

const (
	BlockHeading   BlockKind = "heading"   // bold title line
	BlockField     BlockKind = "field"     // bold label, value
	BlockBullet    BlockKind = "bullet"    // list item
	BlockDetail    BlockKind = "detail"    // indented line under a bullet, optionally labelled
	BlockParagraph BlockKind = "paragraph" // plain line
	BlockNote      BlockKind = "note"      // italic closing remark
	BlockBreak     BlockKind = "break"     // blank line
)

// Block is one line of a document
type Block struct {
	Kind  BlockKind `json:"kind"`
	Label string    `json:"label,omitempty"`
	Spans []Span    `json:"spans,omitempty"`
}

// Document is a presentation-independent rich-text reply
type Document struct {
	Blocks []Block `json:"blocks"`
}

// builder appends blocks to a document
type builder struct {
	blocks []Block
}

func (b *builder) add(kind BlockKind, label string, spans []Span) *builder {
	b.blocks = append(b.blocks, Block{Kind: kind, Label: label, Spans: spans})
	return b
}

func (b *builder) heading(spans ...Span) *builder { return b.add(BlockHeading, "", spans) }

func (b *builder) field(label string, spans ...Span) *builder {
	return b.add(BlockField, label, spans)
}

func (b *builder) bullet(spans ...Span) *builder { return b.add(BlockBullet, "", spans) }

func (b *builder) detail(label string, spans ...Span) *builder {
	return b.add(BlockDetail, label, spans)
}

func (b *builder) paragraph(spans ...Span) *builder { return b.add(BlockParagraph, "", spans) }

func (b *builder) note(text string) *builder { return b.add(BlockNote, "", []Span{Emphasis(text)}) }

func (b *builder) lineBreak() *builder { return b.add(BlockBreak, "", nil) }

func (b *builder) document() Document {
	return Document{Blocks: b.blocks}
}
