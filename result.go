package gridsearch

// Path is an ordered walk from start to goal over adjacent cells.
type Path []Position

// Cost is the number of steps taken along the path.
func (p Path) Cost() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Valid reports whether every element is passable in g and every consecutive
// pair differs by one unit in exactly one coordinate.
func (p Path) Valid(g *Grid) bool {
	if len(p) == 0 {
		return false
	}
	for i, pos := range p {
		if !g.Passable(pos) {
			return false
		}
		if i > 0 && p[i-1].Manhattan(pos) != 1 {
			return false
		}
	}
	return true
}

// Result contains the outcome of a search. When no path exists Found is
// false and Path is nil.
type Result struct {
	Path          Path
	Found         bool
	ExploredCount int
}
