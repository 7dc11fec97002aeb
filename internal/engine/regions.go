package engine

// region is one rectangular slice of the grid assigned to a single worker
// for the duration of one parallel phase.
type region struct {
	x0, y0, x1, y1 int // half-open: [x0,x1) x [y0,y1)
	workerID       int
}

// regions partitions the grid into an R x R set of rectangles, R = regionCount().
// Each region is bound to a worker id (task index mod len(workerRNGs)) that
// selects its per-worker RNG stream, per spec §4.6.
func (w *World) regions() []region {
	r := w.regionCount()
	regions := make([]region, 0, r*r)

	colWidths := splitEvenly(w.Width, r)
	rowHeights := splitEvenly(w.Height, r)

	taskIdx := 0
	y0 := 0
	for ry := 0; ry < r; ry++ {
		x0 := 0
		for rx := 0; rx < r; rx++ {
			regions = append(regions, region{
				x0:       x0,
				y0:       y0,
				x1:       x0 + colWidths[rx],
				y1:       y0 + rowHeights[ry],
				workerID: taskIdx % len(w.workerRNGs),
			})
			x0 += colWidths[rx]
			taskIdx++
		}
		y0 += rowHeights[ry]
	}
	return regions
}

// splitEvenly divides total into n near-equal non-negative parts summing to
// total (the first total%n parts get one extra unit).
func splitEvenly(total, n int) []int {
	base := total / n
	rem := total % n
	parts := make([]int, n)
	for i := range parts {
		parts[i] = base
		if i < rem {
			parts[i]++
		}
	}
	return parts
}
