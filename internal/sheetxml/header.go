package sheetxml

import "h2resconv/internal/errors"

// headerRank orders header candidates: all-string rows beat mixed
// rows, longer rows beat shorter ones within a class.
type headerRank struct {
	allString bool
	cellCount int
}

func rankOf(r Row) headerRank {
	return headerRank{allString: r.AllString(), cellCount: r.CellCount()}
}

func (a headerRank) betterThan(b headerRank) bool {
	if a.allString != b.allString {
		return a.allString
	}
	return a.cellCount > b.cellCount
}

// SelectHeaderRow picks the index of the header row among candidates.
// Exported workbooks carry title and unit rows above the real header,
// so the widest all-string row wins; on equal rank the earliest row is
// kept. An empty candidate list means the workbook has no usable
// structure at all.
func SelectHeaderRow(rows []Row) (int, error) {
	if len(rows) == 0 {
		return 0, errors.NewStructuralError("no candidate header rows", nil)
	}
	best := 0
	bestRank := rankOf(rows[0])
	for i := 1; i < len(rows); i++ {
		if rank := rankOf(rows[i]); rank.betterThan(bestRank) {
			best = i
			bestRank = rank
		}
	}
	return best, nil
}
