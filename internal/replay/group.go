package replay

// frameGroups indexes per-player frame records by frame number. Within a
// frame, records keep their input order; the assembler re-sorts each group
// by playerIndex before emission.
type frameGroups struct {
	order    []int
	byNumber map[int][]Record
}

// groupByFrame builds the index in one pass over the records.
func groupByFrame(records []Record) *frameGroups {
	g := &frameGroups{byNumber: make(map[int][]Record)}
	for _, rec := range records {
		n := rec.Int("frame")
		if _, seen := g.byNumber[n]; !seen {
			g.order = append(g.order, n)
		}
		g.byNumber[n] = append(g.byNumber[n], rec)
	}
	return g
}
