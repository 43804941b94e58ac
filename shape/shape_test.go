package shape

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// monoWidth measures one unit per character.
func monoWidth(s string) float64 { return float64(utf8.RuneCountInString(s)) }

func TestShapeEmpty(t *testing.T) {
	assert.Empty(t, Shape("", RTL))
	assert.Empty(t, Shape("", LTR))
	assert.Empty(t, Wrap("", RTL, 10, monoWidth))
}

func TestShapeLTRUnchanged(t *testing.T) {
	runs := Shape("Fire exit (north) 2", LTR)
	require.Len(t, runs, 1)
	assert.Equal(t, "Fire exit (north) 2", runs[0].Text)
	assert.Equal(t, LTR, runs[0].Direction)
}

func TestShapeRTLWithoutRTLCharacters(t *testing.T) {
	for _, in := range []string{"Room 101", "2024", "NFPA 10 - 7.2.1", "B2"} {
		runs := Shape(in, RTL)
		require.Len(t, runs, 1, in)
		assert.Equal(t, in, runs[0].Text)
	}
}

func TestShapeArabicWithNumber(t *testing.T) {
	runs := Shape("مبنى 12", RTL)
	visual := Visual(runs)

	word := reverse(Reshape("مبنى"))
	assert.True(t, strings.HasPrefix(visual, "12"), "number sits left of the word: %q", visual)
	assert.True(t, strings.HasSuffix(visual, word), "word is reversed and on the right: %q", visual)

	require.Len(t, runs, 2)
	assert.Equal(t, LTR, runs[0].Direction)
	assert.Equal(t, RTL, runs[1].Direction)
	assert.Equal(t, 0, runs[0].Order)
	assert.Equal(t, 1, runs[1].Order)
}

func TestShapeMixedKeepsLatinOrder(t *testing.T) {
	first, second := "غرفة", "الطابق"
	visual := Visual(Shape(first+" Room 12 "+second, RTL))

	firstVis := reverse(Reshape(first))
	secondVis := reverse(Reshape(second))

	latin := strings.Index(visual, "Room 12")
	require.GreaterOrEqual(t, latin, 0, "latin run keeps its internal order: %q", visual)
	assert.Greater(t, strings.Index(visual, firstVis), latin, "logically first word is rightmost")
	assert.Less(t, strings.Index(visual, secondVis), latin, "logically last word is leftmost")
}

func TestShapeMirrorsBrackets(t *testing.T) {
	visual := Visual(Shape("(مخرج)", RTL))
	assert.True(t, strings.HasPrefix(visual, "("), visual)
	assert.True(t, strings.HasSuffix(visual, ")"), visual)
}

func TestShapeNeutralsAtDirectionBoundaries(t *testing.T) {
	rtl := func(s string) string { return reverse(Reshape(s)) }
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bracketed year inside latin citation",
			in:   "راجع NFPA 101 (2021) للتفاصيل",
			want: rtl("للتفاصيل") + " NFPA 101 (2021) " + rtl("راجع"),
		},
		{
			name: "latin run with brackets at start",
			in:   "abc (def) مرحبا",
			want: rtl("مرحبا") + " abc (def)",
		},
		{
			name: "latin citation at start",
			in:   "NFPA 72 نظام الإنذار",
			want: rtl("نظام الإنذار") + " NFPA 72",
		},
		{
			name: "arabic number in brackets",
			in:   "المادة (12)",
			want: "(12) " + rtl("المادة"),
		},
		{
			name: "percent after arabic number",
			in:   "نسبة 50%",
			want: "%50 " + rtl("نسبة"),
		},
		{
			name: "bracketed arabic is mirrored",
			in:   "(مخرج)",
			want: "(" + rtl("مخرج") + ")",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Visual(Shape(tt.in, RTL)))
		})
	}
}

func TestShapeBracketPairKeepsCitationInOneRun(t *testing.T) {
	runs := Shape("راجع NFPA 101 (2021) للتفاصيل", RTL)
	require.Len(t, runs, 3)
	assert.Equal(t, "NFPA 101 (2021)", strings.TrimSpace(runs[1].Text))
	assert.Equal(t, LTR, runs[1].Direction)
	assert.Equal(t, 2, runs[1].Level)
}

func TestShapeUnbalancedBrackets(t *testing.T) {
	// an unmatched bracket resolves like any other neutral
	visual := Visual(Shape("مخرج (NFPA", RTL))
	assert.Equal(t, "NFPA) "+reverse(Reshape("مخرج")), visual)

	deep := strings.Repeat("(", 70) + "NFPA" + strings.Repeat(")", 70) + " مخرج"
	assert.Len(t, []rune(Visual(Shape(deep, RTL))), len([]rune(deep)))
}

func TestShapeDecomposedLatinUnchanged(t *testing.T) {
	in := "Cafe\u0301 7"
	runs := Shape(in, RTL)
	require.Len(t, runs, 1)
	assert.Equal(t, in, runs[0].Text)
	assert.Equal(t, LTR, runs[0].Direction)

	lines := Wrap(in, RTL, 20, monoWidth)
	require.Len(t, lines, 1)
	assert.Equal(t, in, lines[0].String())
}

func TestReshapeForms(t *testing.T) {
	assert.Equal(t, "\uFE8F", Reshape("ب"))
	assert.Equal(t, "\uFE91\uFE8E", Reshape("با"))
	assert.Equal(t, "\uFE8D\uFE8F", Reshape("اب"))
	assert.Equal(t, "\uFE91\uFE92\uFE90", Reshape("ببب"))
}

func TestReshapeLamAlef(t *testing.T) {
	assert.Equal(t, "\uFEFB", Reshape("لا"))
	// beh + lam-alef: the ligature takes its final form
	assert.Equal(t, "\uFE91\uFEFC", Reshape("بلا"))
	assert.Equal(t, "\uFEF7", Reshape("لأ"))
}

func TestReshapeSkipsHarakat(t *testing.T) {
	// the fatha between the two behs does not break the join
	assert.Equal(t, "\uFE91\u064E\uFE90", Reshape("ب\u064Eب"))
}

func TestReshapeLeavesLatin(t *testing.T) {
	assert.Equal(t, "Code 7.1", Reshape("Code 7.1"))
}

func TestWrapLTR(t *testing.T) {
	lines := Wrap("the quick brown fox jumps", LTR, 10, monoWidth)
	var got []string
	for _, l := range lines {
		got = append(got, l.String())
		assert.LessOrEqual(t, l.Width, 10.0)
	}
	assert.Equal(t, []string{"the quick", "brown fox", "jumps"}, got)
}

func TestWrapSplitsLongWords(t *testing.T) {
	lines := Wrap("abcdefghij xy", LTR, 4, monoWidth)
	var got []string
	for _, l := range lines {
		got = append(got, l.String())
	}
	assert.Equal(t, []string{"abcd", "efgh", "ij", "xy"}, got)
}

func TestWrapNewlines(t *testing.T) {
	lines := Wrap("one\n\ntwo", LTR, 20, monoWidth)
	require.Len(t, lines, 3)
	assert.Equal(t, "", lines[1].String())
}

func TestWrapRTLReordersEachLine(t *testing.T) {
	a, b := "مخرج", "الطوارئ"
	lines := Wrap(a+" "+b, RTL, float64(utf8.RuneCountInString(b)), monoWidth)
	require.Len(t, lines, 2)
	assert.Equal(t, reverse(Reshape(a)), lines[0].String())
	assert.Equal(t, RTL, lines[0].Runs[0].Direction)
}

func TestDirectionOf(t *testing.T) {
	assert.Equal(t, LTR, DirectionOf("Tower 7"))
	assert.Equal(t, RTL, DirectionOf("برج 7"))
	assert.Equal(t, LTR, DirectionOf(""))
}
