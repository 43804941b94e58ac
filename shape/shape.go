// Package shape turns logical-order text into visually ordered runs that a
// left-to-right drawing primitive can place at increasing x offsets.
//
// Right-to-left text is first normalized to NFC, then Arabic letters are
// replaced by their contextual presentation forms (Reshape) and finally the
// line is reordered with the Unicode bidirectional algorithm, so embedded
// Latin words and digits keep their left-to-right order inside the
// right-to-left line.
//
// Shaping is a one-way transformation: passing the output of Shape or Wrap
// back into them gives undefined results. Callers keep the original text and
// shape it once per render.
package shape

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Direction is the base direction of a paragraph.
type Direction int

const (
	LTR Direction = iota
	RTL
)

func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// Run is a maximal sequence of characters at one embedding level, in visual
// order. Text is ready to be drawn left to right.
type Run struct {
	Text      string
	Order     int // position of the run from the left, starting at 0
	Level     int
	Direction Direction
}

// Line is one wrapped line of shaped text.
type Line struct {
	Runs  []Run
	Width float64
}

// String returns the visual text of the line.
func (l Line) String() string {
	var b strings.Builder
	for _, r := range l.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// DirectionOf returns RTL when s holds any right-to-left character.
func DirectionOf(s string) Direction {
	if hasRTL([]rune(s)) {
		return RTL
	}
	return LTR
}

// Visual concatenates runs in drawing order.
func Visual(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Shape converts a single line of text into visual runs. LTR text, and text
// without right-to-left characters, is returned unchanged as one run. Empty
// text yields no runs.
func Shape(text string, dir Direction) []Run {
	if text == "" {
		return nil
	}
	if dir == LTR || !hasRTL([]rune(text)) {
		return []Run{{Text: text, Direction: LTR}}
	}
	return visualRuns([]rune(Reshape(norm.NFC.String(text))))
}

// visualRuns reorders an already reshaped right-to-left line.
func visualRuns(runes []rune) []Run {
	if len(runes) == 0 {
		return nil
	}
	if !hasRTL(runes) {
		return []Run{{Text: string(runes), Direction: LTR}}
	}
	levels := resolveLevels(runes, 1)
	visual, vlevels := reorder(runes, levels)

	var runs []Run
	start := 0
	for i := 1; i <= len(visual); i++ {
		if i < len(visual) && vlevels[i] == vlevels[start] {
			continue
		}
		dir := LTR
		if vlevels[start]%2 == 1 {
			dir = RTL
		}
		runs = append(runs, Run{
			Text:      string(visual[start:i]),
			Order:     len(runs),
			Level:     vlevels[start],
			Direction: dir,
		})
		start = i
	}
	return runs
}

// Wrap shapes text and breaks it into lines no wider than maxWidth as
// measured by width. Explicit newlines start new lines. Words wider than
// maxWidth are split between characters. Line breaking happens on the
// logical, joined text; each line is reordered on its own.
func Wrap(text string, dir Direction, maxWidth float64, width func(string) float64) []Line {
	if text == "" {
		return nil
	}
	if dir == RTL && hasRTL([]rune(text)) {
		text = Reshape(norm.NFC.String(text))
	}

	var lines []Line
	for _, para := range strings.Split(text, "\n") {
		for _, logical := range breakParagraph(para, maxWidth, width) {
			var runs []Run
			if dir == RTL {
				runs = visualRuns([]rune(logical))
			} else if logical != "" {
				runs = []Run{{Text: logical, Direction: LTR}}
			}
			lines = append(lines, Line{Runs: runs, Width: width(logical)})
		}
	}
	return lines
}

// breakParagraph greedily fills lines with space separated words.
func breakParagraph(para string, maxWidth float64, width func(string) float64) []string {
	words := strings.FieldsFunc(para, unicode.IsSpace)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	cur := ""
	for _, w := range words {
		candidate := w
		if cur != "" {
			candidate = cur + " " + w
		}
		if width(candidate) <= maxWidth {
			cur = candidate
			continue
		}
		if cur != "" {
			lines = append(lines, cur)
			cur = ""
		}
		if width(w) <= maxWidth {
			cur = w
			continue
		}
		pieces := splitWord(w, maxWidth, width)
		lines = append(lines, pieces[:len(pieces)-1]...)
		cur = pieces[len(pieces)-1]
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// splitWord cuts an over-long word into pieces that fit maxWidth. Every
// piece holds at least one character.
func splitWord(w string, maxWidth float64, width func(string) float64) []string {
	var pieces []string
	runes := []rune(w)
	start := 0
	for i := 1; i <= len(runes); i++ {
		if i-start > 1 && width(string(runes[start:i])) > maxWidth {
			pieces = append(pieces, string(runes[start:i-1]))
			start = i - 1
		}
	}
	return append(pieces, string(runes[start:]))
}
