package shape

// Contextual forms of a joining letter, indexed by form. A zero entry means
// the letter has no such form.
type forms [4]rune

const (
	isolated = iota
	final
	initial
	medial
)

type joinType int

const (
	joinNone  joinType = iota // does not join
	joinRight                 // joins with the preceding letter only
	joinDual                  // joins on both sides
	joinCausing               // tatweel: joins on both sides, no forms
	transparent               // harakat, skipped when looking for neighbours
)

type letter struct {
	join  joinType
	forms forms
}

// Arabic Presentation Forms-B (and Forms-A for the Persian letters).
var letters = map[rune]letter{
	0x0621: {joinNone, forms{0xFE80, 0, 0, 0}},
	0x0622: {joinRight, forms{0xFE81, 0xFE82, 0, 0}},
	0x0623: {joinRight, forms{0xFE83, 0xFE84, 0, 0}},
	0x0624: {joinRight, forms{0xFE85, 0xFE86, 0, 0}},
	0x0625: {joinRight, forms{0xFE87, 0xFE88, 0, 0}},
	0x0626: {joinDual, forms{0xFE89, 0xFE8A, 0xFE8B, 0xFE8C}},
	0x0627: {joinRight, forms{0xFE8D, 0xFE8E, 0, 0}},
	0x0628: {joinDual, forms{0xFE8F, 0xFE90, 0xFE91, 0xFE92}},
	0x0629: {joinRight, forms{0xFE93, 0xFE94, 0, 0}},
	0x062A: {joinDual, forms{0xFE95, 0xFE96, 0xFE97, 0xFE98}},
	0x062B: {joinDual, forms{0xFE99, 0xFE9A, 0xFE9B, 0xFE9C}},
	0x062C: {joinDual, forms{0xFE9D, 0xFE9E, 0xFE9F, 0xFEA0}},
	0x062D: {joinDual, forms{0xFEA1, 0xFEA2, 0xFEA3, 0xFEA4}},
	0x062E: {joinDual, forms{0xFEA5, 0xFEA6, 0xFEA7, 0xFEA8}},
	0x062F: {joinRight, forms{0xFEA9, 0xFEAA, 0, 0}},
	0x0630: {joinRight, forms{0xFEAB, 0xFEAC, 0, 0}},
	0x0631: {joinRight, forms{0xFEAD, 0xFEAE, 0, 0}},
	0x0632: {joinRight, forms{0xFEAF, 0xFEB0, 0, 0}},
	0x0633: {joinDual, forms{0xFEB1, 0xFEB2, 0xFEB3, 0xFEB4}},
	0x0634: {joinDual, forms{0xFEB5, 0xFEB6, 0xFEB7, 0xFEB8}},
	0x0635: {joinDual, forms{0xFEB9, 0xFEBA, 0xFEBB, 0xFEBC}},
	0x0636: {joinDual, forms{0xFEBD, 0xFEBE, 0xFEBF, 0xFEC0}},
	0x0637: {joinDual, forms{0xFEC1, 0xFEC2, 0xFEC3, 0xFEC4}},
	0x0638: {joinDual, forms{0xFEC5, 0xFEC6, 0xFEC7, 0xFEC8}},
	0x0639: {joinDual, forms{0xFEC9, 0xFECA, 0xFECB, 0xFECC}},
	0x063A: {joinDual, forms{0xFECD, 0xFECE, 0xFECF, 0xFED0}},
	0x0640: {joinCausing, forms{}},
	0x0641: {joinDual, forms{0xFED1, 0xFED2, 0xFED3, 0xFED4}},
	0x0642: {joinDual, forms{0xFED5, 0xFED6, 0xFED7, 0xFED8}},
	0x0643: {joinDual, forms{0xFED9, 0xFEDA, 0xFEDB, 0xFEDC}},
	0x0644: {joinDual, forms{0xFEDD, 0xFEDE, 0xFEDF, 0xFEE0}},
	0x0645: {joinDual, forms{0xFEE1, 0xFEE2, 0xFEE3, 0xFEE4}},
	0x0646: {joinDual, forms{0xFEE5, 0xFEE6, 0xFEE7, 0xFEE8}},
	0x0647: {joinDual, forms{0xFEE9, 0xFEEA, 0xFEEB, 0xFEEC}},
	0x0648: {joinRight, forms{0xFEED, 0xFEEE, 0, 0}},
	0x0649: {joinRight, forms{0xFEEF, 0xFEF0, 0, 0}},
	0x064A: {joinDual, forms{0xFEF1, 0xFEF2, 0xFEF3, 0xFEF4}},
	0x067E: {joinDual, forms{0xFB56, 0xFB57, 0xFB58, 0xFB59}},
	0x0686: {joinDual, forms{0xFB7A, 0xFB7B, 0xFB7C, 0xFB7D}},
	0x0698: {joinRight, forms{0xFB8A, 0xFB8B, 0, 0}},
	0x06A9: {joinDual, forms{0xFB8E, 0xFB8F, 0xFB90, 0xFB91}},
	0x06AF: {joinDual, forms{0xFB92, 0xFB93, 0xFB94, 0xFB95}},
	0x06CC: {joinDual, forms{0xFBFC, 0xFBFD, 0xFBFE, 0xFBFF}},
}

// Lam followed by an alef variant becomes a single ligature (isolated, final).
var lamAlef = map[rune][2]rune{
	0x0622: {0xFEF5, 0xFEF6},
	0x0623: {0xFEF7, 0xFEF8},
	0x0625: {0xFEF9, 0xFEFA},
	0x0627: {0xFEFB, 0xFEFC},
}

const lam = 0x0644

func lookup(r rune) letter {
	if l, ok := letters[r]; ok {
		return l
	}
	if isHaraka(r) {
		return letter{join: transparent}
	}
	return letter{join: joinNone}
}

func isHaraka(r rune) bool {
	return (r >= 0x064B && r <= 0x065F) || r == 0x0670 || (r >= 0x06D6 && r <= 0x06ED)
}

// joinsForward reports whether a letter of type t connects to the letter
// that follows it in logical order.
func (t joinType) joinsForward() bool { return t == joinDual || t == joinCausing }

// joinsBackward reports whether a letter of type t connects to the letter
// that precedes it in logical order.
func (t joinType) joinsBackward() bool {
	return t == joinDual || t == joinRight || t == joinCausing
}

// Reshape replaces Arabic letters of s, which must be in logical order, by
// their contextual presentation forms and merges lam-alef pairs. Other
// characters are copied unchanged.
func Reshape(s string) string {
	in := []rune(s)
	out := make([]rune, 0, len(in))

	// neighbour returns the index of the closest non-transparent rune
	// in direction step, or -1.
	neighbour := func(i, step int) int {
		for j := i + step; j >= 0 && j < len(in); j += step {
			if lookup(in[j]).join != transparent {
				return j
			}
		}
		return -1
	}

	for i := 0; i < len(in); i++ {
		r := in[i]
		l := lookup(r)
		if l.join == joinNone || l.join == transparent || l.join == joinCausing {
			out = append(out, r)
			continue
		}

		prevJoins := false
		if p := neighbour(i, -1); p >= 0 {
			prevJoins = lookup(in[p]).join.joinsForward()
		}

		next := neighbour(i, 1)
		if r == lam && next >= 0 {
			if lig, ok := lamAlef[in[next]]; ok {
				if prevJoins {
					out = append(out, lig[1])
				} else {
					out = append(out, lig[0])
				}
				// keep marks that sat between lam and alef
				out = append(out, in[i+1:next]...)
				i = next
				continue
			}
		}

		nextJoins := false
		if next >= 0 {
			nextJoins = lookup(in[next]).join.joinsBackward()
		}
		if l.join != joinDual {
			nextJoins = false
		}

		var form int
		switch {
		case prevJoins && nextJoins:
			form = medial
		case prevJoins:
			form = final
		case nextJoins:
			form = initial
		default:
			form = isolated
		}
		g := l.forms[form]
		if g == 0 {
			g = l.forms[isolated]
		}
		out = append(out, g)
	}
	return string(out)
}
