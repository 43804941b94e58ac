package shape

import (
	"sort"

	"golang.org/x/text/unicode/bidi"
)

func classesOf(runes []rune) []bidi.Class {
	cls := make([]bidi.Class, len(runes))
	for i, r := range runes {
		p, _ := bidi.LookupRune(r)
		c := p.Class()
		switch c {
		case bidi.LRE, bidi.RLE, bidi.LRO, bidi.RLO, bidi.PDF,
			bidi.LRI, bidi.RLI, bidi.FSI, bidi.PDI, bidi.Control:
			// explicit embeddings are not supported in report text
			c = bidi.BN
		}
		cls[i] = c
	}
	return cls
}

func isNeutral(c bidi.Class) bool {
	switch c {
	case bidi.B, bidi.S, bidi.WS, bidi.ON, bidi.BN:
		return true
	}
	return false
}

// strongDir maps a resolved class to the direction it counts as for the
// neutral rules: numbers count as R.
func strongDir(c bidi.Class) bidi.Class {
	if c == bidi.EN || c == bidi.AN {
		return bidi.R
	}
	return c
}

func isWhitespace(c bidi.Class) bool {
	return c == bidi.WS || c == bidi.S || c == bidi.B || c == bidi.BN
}

// hasRTL reports whether any rune of s is strongly right-to-left or an
// Arabic number, i.e. whether reordering can change anything.
func hasRTL(runes []rune) bool {
	for _, r := range runes {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.R, bidi.AL, bidi.AN:
			return true
		}
	}
	return false
}

// resolveLevels computes the embedding level of every rune of a single
// line for the paragraph level base (0 or 1), following the weak (W1-W7),
// paired bracket (N0), neutral (N1-N2), implicit (I1-I2) and trailing
// whitespace (L1) rules.
func resolveLevels(runes []rune, base int) []int {
	orig := classesOf(runes)
	t := make([]bidi.Class, len(orig))
	copy(t, orig)

	sos := bidi.L
	if base%2 == 1 {
		sos = bidi.R
	}
	n := len(t)

	// W1: NSM takes the type of the previous character.
	for i := range t {
		if t[i] == bidi.NSM {
			if i == 0 {
				t[i] = sos
			} else {
				t[i] = t[i-1]
			}
		}
	}

	// W2: EN after AL becomes AN. W3: AL becomes R.
	last := sos
	for i := range t {
		switch t[i] {
		case bidi.L, bidi.R, bidi.AL:
			last = t[i]
		case bidi.EN:
			if last == bidi.AL {
				t[i] = bidi.AN
			}
		}
	}
	for i := range t {
		if t[i] == bidi.AL {
			t[i] = bidi.R
		}
	}

	// W4: a single separator between two numbers of the same kind.
	for i := 1; i+1 < n; i++ {
		prev, next := t[i-1], t[i+1]
		switch {
		case t[i] == bidi.ES && prev == bidi.EN && next == bidi.EN:
			t[i] = bidi.EN
		case t[i] == bidi.CS && prev == bidi.EN && next == bidi.EN:
			t[i] = bidi.EN
		case t[i] == bidi.CS && prev == bidi.AN && next == bidi.AN:
			t[i] = bidi.AN
		}
	}

	// W5: terminators adjacent to European numbers.
	for i := 0; i < n; i++ {
		if t[i] != bidi.ET {
			continue
		}
		j := i
		for j < n && t[j] == bidi.ET {
			j++
		}
		if (i > 0 && t[i-1] == bidi.EN) || (j < n && t[j] == bidi.EN) {
			for k := i; k < j; k++ {
				t[k] = bidi.EN
			}
		}
		i = j - 1
	}

	// W6: remaining separators and terminators become neutral.
	for i := range t {
		switch t[i] {
		case bidi.ES, bidi.ET, bidi.CS:
			t[i] = bidi.ON
		}
	}

	// W7: EN preceded by strong L becomes L.
	last = sos
	for i := range t {
		switch t[i] {
		case bidi.L, bidi.R:
			last = t[i]
		case bidi.EN:
			if last == bidi.L {
				t[i] = bidi.L
			}
		}
	}

	resolveBrackets(runes, orig, t, sos)

	// N1, N2: neutral runs take the surrounding direction when both sides
	// agree, the embedding direction otherwise. Numbers count as R.
	for i := 0; i < n; i++ {
		if !isNeutral(t[i]) {
			continue
		}
		j := i
		for j < n && isNeutral(t[j]) {
			j++
		}
		before, after := sos, sos
		if i > 0 {
			before = strongDir(t[i-1])
		}
		if j < n {
			after = strongDir(t[j])
		}
		dir := sos
		if before == after {
			dir = before
		}
		for k := i; k < j; k++ {
			t[k] = dir
		}
		i = j - 1
	}

	// I1, I2.
	levels := make([]int, n)
	for i, c := range t {
		lvl := base
		if base%2 == 0 {
			switch c {
			case bidi.R:
				lvl = base + 1
			case bidi.AN, bidi.EN:
				lvl = base + 2
			}
		} else {
			switch c {
			case bidi.L, bidi.EN, bidi.AN:
				lvl = base + 1
			}
		}
		levels[i] = lvl
	}

	// L1: trailing whitespace and whitespace before tabs resets to base.
	for i := n - 1; i >= 0 && isWhitespace(orig[i]); i-- {
		levels[i] = base
	}
	for i := 0; i < n; i++ {
		if orig[i] == bidi.S || orig[i] == bidi.B {
			levels[i] = base
			for k := i - 1; k >= 0 && isWhitespace(orig[k]); k-- {
				levels[k] = base
			}
		}
	}
	return levels
}

// maxBracketDepth bounds the stack of open brackets (BD16).
const maxBracketDepth = 63

type bracketPair struct{ open, close int }

// bracketPairs finds matching paired brackets among the runes still typed
// ON, ordered by the position of the opening bracket. Pairing stops when
// more than maxBracketDepth brackets are open.
func bracketPairs(runes []rune, t []bidi.Class) []bracketPair {
	type opener struct {
		closing rune
		pos     int
	}
	var (
		stack []opener
		pairs []bracketPair
	)
scan:
	for i, r := range runes {
		if t[i] != bidi.ON {
			continue
		}
		p, _ := bidi.LookupRune(r)
		if !p.IsBracket() {
			continue
		}
		m, ok := mirrors[r]
		if !ok {
			continue
		}
		if p.IsOpeningBracket() {
			if len(stack) == maxBracketDepth {
				break scan
			}
			stack = append(stack, opener{closing: m, pos: i})
			continue
		}
		for k := len(stack) - 1; k >= 0; k-- {
			if stack[k].closing == r {
				pairs = append(pairs, bracketPair{open: stack[k].pos, close: i})
				stack = stack[:k]
				break
			}
		}
	}
	sort.Slice(pairs, func(a, b int) bool { return pairs[a].open < pairs[b].open })
	return pairs
}

// resolveBrackets applies rule N0: both brackets of a pair take the
// embedding direction when it occurs inside the pair, or the opposite
// direction when only that occurs inside and it also precedes the opening
// bracket. Pairs without strong content are left to N1 and N2.
func resolveBrackets(runes []rune, orig, t []bidi.Class, sos bidi.Class) {
	embedding := sos
	for _, pr := range bracketPairs(runes, t) {
		var inside bidi.Class = bidi.ON
		for k := pr.open + 1; k < pr.close; k++ {
			switch d := strongDir(t[k]); d {
			case bidi.L, bidi.R:
				if d == embedding {
					inside = d
				} else if inside == bidi.ON {
					inside = d
				}
			}
			if inside == embedding {
				break
			}
		}
		if inside == bidi.ON {
			continue
		}

		dir := embedding
		if inside != embedding {
			before := sos
			for k := pr.open - 1; k >= 0; k-- {
				if d := strongDir(t[k]); d == bidi.L || d == bidi.R {
					before = d
					break
				}
			}
			if before == inside {
				dir = inside
			}
		}
		for _, pos := range []int{pr.open, pr.close} {
			t[pos] = dir
			for k := pos + 1; k < len(t) && orig[k] == bidi.NSM; k++ {
				t[k] = dir
			}
		}
	}
}

// mirrors maps paired brackets and other mirrored punctuation to their
// counterparts.
var mirrors = map[rune]rune{
	'(': ')', ')': '(',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
	'<': '>', '>': '<',
	'\u00AB': '\u00BB', '\u00BB': '\u00AB',
	'\u2039': '\u203A', '\u203A': '\u2039',
	'\u2045': '\u2046', '\u2046': '\u2045',
	'\u207D': '\u207E', '\u207E': '\u207D',
	'\u208D': '\u208E', '\u208E': '\u208D',
	'\u2329': '\u232A', '\u232A': '\u2329',
	'\u27E8': '\u27E9', '\u27E9': '\u27E8',
	'\u27E6': '\u27E7', '\u27E7': '\u27E6',
	'\u2983': '\u2984', '\u2984': '\u2983',
	'\u2985': '\u2986', '\u2986': '\u2985',
	'\u3008': '\u3009', '\u3009': '\u3008',
	'\u300A': '\u300B', '\u300B': '\u300A',
	'\u300C': '\u300D', '\u300D': '\u300C',
	'\u300E': '\u300F', '\u300F': '\u300E',
	'\u3010': '\u3011', '\u3011': '\u3010',
	'\u3014': '\u3015', '\u3015': '\u3014',
	'\uFF08': '\uFF09', '\uFF09': '\uFF08',
	'\uFF3B': '\uFF3D', '\uFF3D': '\uFF3B',
	'\uFF5B': '\uFF5D', '\uFF5D': '\uFF5B',
}

// reorder applies rule L2 to one line: from the highest level down to the
// lowest odd level, every maximal run at or above that level is reversed.
// Characters at odd levels are mirrored (L4). It returns the runes in
// visual order with their levels.
func reorder(runes []rune, levels []int) ([]rune, []int) {
	n := len(runes)
	idx := make([]int, n)
	maxLevel, minLevel := 0, -1
	for i, l := range levels {
		idx[i] = i
		if l > maxLevel {
			maxLevel = l
		}
		if minLevel < 0 || l < minLevel {
			minLevel = l
		}
	}
	minOdd := minLevel | 1

	for lvl := maxLevel; lvl >= minOdd; lvl-- {
		for i := 0; i < n; i++ {
			if levels[idx[i]] < lvl {
				continue
			}
			j := i
			for j < n && levels[idx[j]] >= lvl {
				j++
			}
			for a, b := i, j-1; a < b; a, b = a+1, b-1 {
				idx[a], idx[b] = idx[b], idx[a]
			}
			i = j
		}
	}

	out := make([]rune, n)
	outLevels := make([]int, n)
	for v, i := range idx {
		r := runes[i]
		if levels[i]%2 == 1 {
			if m, ok := mirrors[r]; ok {
				r = m
			}
		}
		out[v] = r
		outLevels[v] = levels[i]
	}
	return out, outLevels
}
