package inspectreport

import (
	"github.com/lvillar/inspectreport/blocks"
	"github.com/lvillar/inspectreport/inspection"
)

// Result is a rendered report.
type Result struct {
	PDF         []byte
	Pages       int
	Layout      *Layout
	Diagnostics []inspection.Diagnostic
	ReportID    string
}

// Layout is the structure of a composed document: which blocks went to
// which page, in drawing order. Two renders of the same document produce
// equal layouts.
type Layout struct {
	Pages []PageLayout
}

// PageLayout lists the blocks placed on one page.
type PageLayout struct {
	Number int
	Blocks []BlockRef
	Footer string
}

// BlockRef identifies a placed block. Entry is the checklist index of entry
// blocks and 0 for every other kind.
type BlockRef struct {
	Kind  blocks.Kind
	Entry int
}

// EntryPage returns the 1-based page number holding checklist entry index,
// or 0 if the entry is not in the layout.
func (l *Layout) EntryPage(index int) int {
	for _, p := range l.Pages {
		for _, b := range p.Blocks {
			if b.Kind == blocks.KindEntry && b.Entry == index {
				return p.Number
			}
		}
	}
	return 0
}

// Count returns how many blocks of kind were placed.
func (l *Layout) Count(kind blocks.Kind) int {
	n := 0
	for _, p := range l.Pages {
		for _, b := range p.Blocks {
			if b.Kind == kind {
				n++
			}
		}
	}
	return n
}

func (l *Layout) addPage(n int, footer string) {
	l.Pages = append(l.Pages, PageLayout{Number: n, Footer: footer})
}

func (l *Layout) place(b blocks.Block) {
	p := &l.Pages[len(l.Pages)-1]
	p.Blocks = append(p.Blocks, BlockRef{Kind: b.Kind(), Entry: b.Entry()})
}
