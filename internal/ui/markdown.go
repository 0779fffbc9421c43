package ui

import (
	"bytes"
	"strconv"
	"strings"
	"unicode"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
)

// RenderMarkdown converts assistant markdown into styled terminal text.
//
// The input is sanitized before anything else: ANSI escapes and control
// sequences are stripped so model output cannot smuggle terminal control
// codes into the transcript. Rendering then runs in two explicit passes,
// a line-oriented block scanner (fenced code, headings, lists, quotes,
// paragraphs) and a rune-oriented span scanner for inline markup. Code is
// tokenized before emphasis so markdown syntax inside code spans is never
// reinterpreted.
//
// Headings render one level deeper than written (# uses the H2 style) so
// assistant output never competes with the panel's own title.
func RenderMarkdown(content string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	blocks := scanBlocks(sanitizeMarkdown(content))
	rendered := make([]string, 0, len(blocks))
	for _, b := range blocks {
		rendered = append(rendered, renderBlock(b, width))
	}
	return strings.Join(rendered, "\n\n")
}

// sanitizeMarkdown strips ANSI sequences and control runes, keeping only
// newlines and tabs as structural whitespace.
func sanitizeMarkdown(content string) string {
	content = ansi.Strip(content)
	var b strings.Builder
	b.Grow(len(content))
	for _, r := range content {
		if r == '\n' || r == '\t' || !unicode.IsControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// =============================================================================
// Block scanner
// =============================================================================

type mdBlockKind int

const (
	blockParagraph mdBlockKind = iota
	blockHeading
	blockCode
	blockList
	blockQuote
	blockRule
)

// mdBlock is one block-level token produced by scanBlocks.
type mdBlock struct {
	kind  mdBlockKind
	level int          // heading level 1-3
	lang  string       // fence language
	lines []string     // content lines (paragraph, heading, quote, code)
	items []mdListItem // list entries
}

// mdListItem is a single list entry with its rendered marker.
type mdListItem struct {
	marker string // styled bullet or "N." label
	indent int    // continuation indent width in cells
	text   string
}

// scanBlocks tokenizes the input line by line. Consecutive list items
// collapse into a single list block, consecutive quote lines into a single
// quote, and consecutive plain lines into a single paragraph; blank lines
// end whichever block is accumulating.
func scanBlocks(content string) []mdBlock {
	var blocks []mdBlock
	var para, quote []string
	var list []mdListItem

	flush := func() {
		if len(para) > 0 {
			blocks = append(blocks, mdBlock{kind: blockParagraph, lines: para})
			para = nil
		}
		if len(quote) > 0 {
			blocks = append(blocks, mdBlock{kind: blockQuote, lines: quote})
			quote = nil
		}
		if len(list) > 0 {
			blocks = append(blocks, mdBlock{kind: blockList, items: list})
			list = nil
		}
	}

	lines := strings.Split(content, "\n")
	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])

		// Fenced code swallows everything up to the closing fence, or the
		// end of input when the model forgot to close it.
		if strings.HasPrefix(trimmed, "```") {
			flush()
			lang := strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
			var code []string
			for i++; i < len(lines); i++ {
				if strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
					break
				}
				code = append(code, lines[i])
			}
			blocks = append(blocks, mdBlock{kind: blockCode, lang: lang, lines: code})
			continue
		}

		if trimmed == "" {
			flush()
			continue
		}

		if level, text, ok := headingLine(trimmed); ok {
			flush()
			blocks = append(blocks, mdBlock{kind: blockHeading, level: level, lines: []string{text}})
			continue
		}

		if trimmed == "---" || trimmed == "***" || trimmed == "___" {
			flush()
			blocks = append(blocks, mdBlock{kind: blockRule})
			continue
		}

		if rest, ok := strings.CutPrefix(trimmed, "> "); ok {
			if len(para) > 0 || len(list) > 0 {
				flush()
			}
			quote = append(quote, rest)
			continue
		}

		if item, ok := listItemLine(trimmed); ok {
			if len(para) > 0 || len(quote) > 0 {
				flush()
			}
			list = append(list, item)
			continue
		}

		if len(list) > 0 || len(quote) > 0 {
			flush()
		}
		para = append(para, trimmed)
	}
	flush()
	return blocks
}

// headingLine recognizes "# ", "## ", "### " prefixes. Deeper levels are
// outside the supported subset and fall through to paragraph text.
func headingLine(s string) (int, string, bool) {
	level := 0
	for level < len(s) && s[level] == '#' {
		level++
	}
	if level < 1 || level > 3 || level >= len(s) || s[level] != ' ' {
		return 0, "", false
	}
	return level, strings.TrimSpace(s[level+1:]), true
}

// listItemLine recognizes "- ", "* ", and "N. " (N up to two digits) markers.
func listItemLine(s string) (mdListItem, bool) {
	if strings.HasPrefix(s, "- ") || strings.HasPrefix(s, "* ") {
		return mdListItem{marker: "•", indent: 4, text: strings.TrimSpace(s[2:])}, true
	}
	dot := strings.Index(s, ". ")
	if dot == 1 || dot == 2 {
		if n, err := strconv.Atoi(s[:dot]); err == nil && n >= 1 {
			return mdListItem{marker: s[:dot] + ".", indent: 5, text: strings.TrimSpace(s[dot+2:])}, true
		}
	}
	return mdListItem{}, false
}

// =============================================================================
// Inline span scanner
// =============================================================================

type mdSpanKind int

const (
	spanText mdSpanKind = iota
	spanBold
	spanItalic
	spanCode
	spanLink
)

type mdSpan struct {
	kind mdSpanKind
	text string
	url  string // spanLink only
}

// scanSpans tokenizes inline markup. Code spans are recognized first at each
// position, so emphasis markers inside backticks stay literal. Unterminated
// markers are emitted as plain text rather than swallowing the line.
func scanSpans(text string) []mdSpan {
	var spans []mdSpan
	var plain []rune
	runes := []rune(text)

	flush := func() {
		if len(plain) > 0 {
			spans = append(spans, mdSpan{kind: spanText, text: string(plain)})
			plain = nil
		}
	}

	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '`':
			if end := indexRune(runes, i+1, '`'); end > i+1 {
				flush()
				spans = append(spans, mdSpan{kind: spanCode, text: string(runes[i+1 : end])})
				i = end
				continue
			}
		case '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				if end := indexDoubleStar(runes, i+2); end > i+2 {
					flush()
					spans = append(spans, mdSpan{kind: spanBold, text: string(runes[i+2 : end])})
					i = end + 1
					continue
				}
			} else if end := indexRune(runes, i+1, '*'); end > i+1 {
				flush()
				spans = append(spans, mdSpan{kind: spanItalic, text: string(runes[i+1 : end])})
				i = end
				continue
			}
		case '[':
			if linkText, url, end, ok := scanLink(runes, i); ok {
				flush()
				spans = append(spans, mdSpan{kind: spanLink, text: linkText, url: url})
				i = end
				continue
			}
		}
		plain = append(plain, runes[i])
	}
	flush()
	return spans
}

func indexRune(runes []rune, from int, r rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

func indexDoubleStar(runes []rune, from int) int {
	for i := from; i+1 < len(runes); i++ {
		if runes[i] == '*' && runes[i+1] == '*' {
			return i
		}
	}
	return -1
}

// scanLink recognizes [text](url) starting at the '[' in runes[start].
func scanLink(runes []rune, start int) (text, url string, end int, ok bool) {
	closeBracket := indexRune(runes, start+1, ']')
	if closeBracket <= start+1 || closeBracket+1 >= len(runes) || runes[closeBracket+1] != '(' {
		return "", "", 0, false
	}
	closeParen := indexRune(runes, closeBracket+2, ')')
	if closeParen < 0 {
		return "", "", 0, false
	}
	return string(runes[start+1 : closeBracket]), string(runes[closeBracket+2 : closeParen]), closeParen, true
}

// renderInline styles one line of inline markup.
func renderInline(text string) string {
	var b strings.Builder
	for _, s := range scanSpans(text) {
		switch s.kind {
		case spanBold:
			b.WriteString(MarkdownBoldStyle.Render(s.text))
		case spanItalic:
			b.WriteString(MarkdownItalicStyle.Render(s.text))
		case spanCode:
			b.WriteString(MarkdownInlineCodeStyle.Render(s.text))
		case spanLink:
			b.WriteString(MarkdownLinkStyle.Render(s.text) + " (" + MarkdownLinkStyle.Render(s.url) + ")")
		default:
			b.WriteString(s.text)
		}
	}
	return b.String()
}

// =============================================================================
// Styled emission
// =============================================================================

func renderBlock(b mdBlock, width int) string {
	switch b.kind {
	case blockHeading:
		// Headings are concise; no wrapping. Levels shift one deeper so the
		// panel title keeps the top of the outline.
		switch b.level {
		case 1:
			return MarkdownH2Style.Render(b.lines[0])
		case 2:
			return MarkdownH3Style.Render(b.lines[0])
		default:
			return MarkdownH4Style.Render(b.lines[0])
		}

	case blockCode:
		return highlightCode(strings.Join(b.lines, "\n"), b.lang)

	case blockRule:
		return MarkdownHRStyle.Render("────────────────────────────────")

	case blockQuote:
		return MarkdownBlockquoteStyle.Render(wrapText(renderInline(strings.Join(b.lines, " ")), width-4))

	case blockList:
		rendered := make([]string, 0, len(b.items))
		for _, item := range b.items {
			rendered = append(rendered, renderListItem(item, width))
		}
		return strings.Join(rendered, "\n")

	default:
		return wrapText(renderInline(strings.Join(b.lines, " ")), width)
	}
}

// renderListItem wraps one item and indents its continuation lines under
// the text, past the marker.
func renderListItem(item mdListItem, width int) string {
	wrapped := wrapText(renderInline(item.text), width-6)
	lines := strings.Split(wrapped, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = strings.Repeat(" ", item.indent) + lines[i]
	}
	return "  " + MarkdownListBulletStyle.Render(item.marker) + " " + strings.Join(lines, "\n")
}

// wrapText wraps text to the specified width, handling ANSI escape codes
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return buf.String()
}
