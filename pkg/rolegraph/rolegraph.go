// Package rolegraph provides a small generic utility for walking parent-link
// graphs safely: upward walks that terminate on cycles, and depth-bounded
// breadth-first expansion of children. It is shared by the org tree but is
// deliberately data-agnostic — the fixed promotion chain and authorization
// rules live elsewhere and are not generalized into this package.
package rolegraph

// ParentFunc resolves the parent of a key. ok is false for roots and for
// keys that do not exist.
type ParentFunc[K comparable] func(key K) (parent K, ok bool)

// ChildrenFunc resolves the direct children of a key.
type ChildrenFunc[K comparable] func(key K) []K

// ReachesUp reports whether walking parent pointers upward from start ever
// reaches target. Any key revisited during the walk is treated as a cycle and
// terminates the walk immediately (fail-safe: a cyclic chain that never
// reaches target yields false rather than looping forever).
func ReachesUp[K comparable](start, target K, parent ParentFunc[K]) bool {
	seen := map[K]struct{}{start: {}}
	cur := start
	for {
		next, ok := parent(cur)
		if !ok {
			return false
		}
		if next == target {
			return true
		}
		if _, dup := seen[next]; dup {
			return false
		}
		seen[next] = struct{}{}
		cur = next
	}
}

// BFS expands children breadth-first from root, up to maxDepth levels below
// the root, and returns the visited keys in traversal order (root excluded).
// Truncated is true when unexpanded nodes remained at the depth bound, which
// on well-formed data never happens and usually indicates corrupted or
// circular parent links. Keys already visited are never expanded twice.
func BFS[K comparable](root K, children ChildrenFunc[K], maxDepth int) (visited []K, truncated bool) {
	type level struct {
		key   K
		depth int
	}
	seen := map[K]struct{}{root: {}}
	queue := []level{{key: root, depth: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.depth >= maxDepth {
			truncated = true
			continue
		}
		for _, child := range children(cur.key) {
			if _, dup := seen[child]; dup {
				continue
			}
			seen[child] = struct{}{}
			visited = append(visited, child)
			queue = append(queue, level{key: child, depth: cur.depth + 1})
		}
	}
	return visited, truncated
}
