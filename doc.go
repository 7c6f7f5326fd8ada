// Package gridsearch finds shortest routes between two cells of a 2-D grid
// with impassable cells, moving only up, down, left and right.
//
// Two interchangeable strategies implement Searcher:
//
//   - Informed: best-first (A*) search guided by the Manhattan distance to the
//     goal. The frontier is ordered by estimated total cost with ties broken
//     by position, so results are reproducible.
//   - FrontierPropagation: breadth-first expansion outward from the goal,
//     processed generation by generation until the start is reached.
//
// Both return a Result holding the path (if any) and the number of distinct
// positions examined. A Grid is immutable once built and may be shared by
// concurrent searches; SearchAll runs many queries on one grid over a worker
// pool. Stepper drives either strategy one step at a time.
package gridsearch
