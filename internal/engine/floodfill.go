package engine

// maxComponents is the flood-fill component id cap: component_id is an
// 8-bit signed scratch field, so at most 127 components are labeled per
// colony per tick. Per spec §9, overflow must hard-stop, never silently
// relabel past the cap.
const maxComponents = 127

// component is one connected component found by floodFillColony: its
// labeled id and the cell coordinates belonging to it.
type component struct {
	id    int8
	cells [][2]int
}

// floodFillColony finds 8-connected components of colonyID's cells,
// labeling each visited cell's ComponentID. It stops labeling new
// components once maxComponents have been found; cells in any further
// component are not relabeled in this pass (ComponentID is never reset here,
// so they keep whatever value they held before) and are excluded from the
// returned components — callers must treat such cells conservatively
// (leave them in place) rather than assume they belong to no colony.
func (w *World) floodFillColony(colonyID int32) []component {
	visited := make(map[[2]int]bool)
	var components []component

	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			if len(components) >= maxComponents {
				return components
			}
			start := [2]int{x, y}
			if visited[start] {
				continue
			}
			cell := w.Grid.Get(x, y)
			if cell.ColonyID.Load() != colonyID {
				continue
			}

			comp := component{id: int8(len(components))}
			stack := [][2]int{start}
			visited[start] = true
			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				comp.cells = append(comp.cells, cur)
				w.Grid.Get(cur[0], cur[1]).ComponentID = comp.id

				for d := 0; d < 8; d++ {
					nx, ny := cur[0]+dx8[d], cur[1]+dy8[d]
					if !w.Grid.InBounds(nx, ny) {
						continue
					}
					np := [2]int{nx, ny}
					if visited[np] {
						continue
					}
					ncell := w.Grid.Get(nx, ny)
					if ncell.ColonyID.Load() != colonyID {
						continue
					}
					visited[np] = true
					stack = append(stack, np)
				}
			}
			components = append(components, comp)
		}
	}
	return components
}

var dx8 = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
var dy8 = [8]int{-1, -1, 0, 1, 1, 1, 0, -1}

// bfsCollect walks outward from (startX,startY) over colonyID's own cells
// (8-connectivity) and returns up to limit cell coordinates, used by
// speciation to peel off a bounded fragment of a colony rather than an
// entire connected component.
func (w *World) bfsCollect(startX, startY int, colonyID int32, limit int) [][2]int {
	visited := map[[2]int]bool{{startX, startY}: true}
	queue := [][2]int{{startX, startY}}
	var collected [][2]int

	for len(queue) > 0 && len(collected) < limit {
		cur := queue[0]
		queue = queue[1:]
		collected = append(collected, cur)

		for d := 0; d < 8; d++ {
			nx, ny := cur[0]+dx8[d], cur[1]+dy8[d]
			if !w.Grid.InBounds(nx, ny) {
				continue
			}
			np := [2]int{nx, ny}
			if visited[np] {
				continue
			}
			ncell := w.Grid.Get(nx, ny)
			if ncell.ColonyID.Load() != colonyID {
				continue
			}
			visited[np] = true
			queue = append(queue, np)
		}
	}
	return collected
}
