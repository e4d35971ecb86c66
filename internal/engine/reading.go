package engine

import "sort"

// Regions whose tops differ by at most this many pixels count as one row.
const readingRowThreshold = 10

// ReadingOrder sorts regions for natural reading: rows top to bottom, regions
// left to right within a row. Recognizers that report no geometry leave every
// box at the origin, so their output order is preserved.
func ReadingOrder(regions []Region) []Region {
	if len(regions) < 2 {
		return regions
	}

	ordered := make([]Region, len(regions))
	copy(ordered, regions)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Top != ordered[j].Top {
			return ordered[i].Top < ordered[j].Top
		}
		return ordered[i].Left < ordered[j].Left
	})

	out := make([]Region, 0, len(ordered))
	var row []Region
	flush := func() {
		sort.SliceStable(row, func(i, j int) bool { return row[i].Left < row[j].Left })
		out = append(out, row...)
		row = row[:0]
	}

	lastTop := ordered[0].Top
	for _, r := range ordered {
		if abs(r.Top-lastTop) > readingRowThreshold {
			flush()
		}
		row = append(row, r)
		lastTop = r.Top
	}
	flush()
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
