// Package internal holds helpers shared by the search strategies.
package internal

// ReconstructPath rebuilds the path ending at current by following cameFrom
// back to start. The returned slice runs start first.
func ReconstructPath[NodeType comparable](
	cameFrom map[NodeType]NodeType,
	current NodeType,
	start NodeType,
) []NodeType {
	path := []NodeType{current}
	for current != start {
		previousNode, exists := cameFrom[current]
		if !exists {
			break
		}
		path = append(path, previousNode)
		current = previousNode
	}
	Reverse(path)
	return path
}

// Reverse reverses s in place.
func Reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
