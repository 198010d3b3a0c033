// Package tree implements the materialized-path tree store shared by board
// categories and navigation menus. Every node carries a denormalized depth
// and a delimiter-wrapped path of ancestor ids ("/root/.../self/"); the
// mutation engine is the only writer of those fields.
package tree

import (
	"strings"

	"github.com/google/uuid"
)

// Delimiter separates node ids inside a materialized path. Paths both start
// and end with it, so a prefix test can never match a partial id.
const Delimiter = "/"

// RootPath returns the path of a root node
func RootPath(id uuid.UUID) string {
	return Delimiter + id.String() + Delimiter
}

// ChildPath computes a child's path and depth from its parent's path and
// depth. An empty parentPath means the child is a root. Pure: no storage
// access, deterministic for identical inputs.
func ChildPath(parentPath string, parentDepth int, childID uuid.UUID) (string, int) {
	if parentPath == "" {
		return RootPath(childID), 0
	}
	return parentPath + childID.String() + Delimiter, parentDepth + 1
}

// IsDescendantOrSelf reports whether candidatePath lies inside the subtree
// rooted at ancestorPath (including the ancestor itself). Both paths are
// delimiter-wrapped, so "/12/" never matches "/120/".
func IsDescendantOrSelf(ancestorPath, candidatePath string) bool {
	if ancestorPath == "" || candidatePath == "" {
		return false
	}
	return strings.HasPrefix(candidatePath, ancestorPath)
}

// RelativeSuffix returns the portion of fullPath beyond oldPath. It is used
// when rewriting descendants after a move: the moved subtree root's old path
// prefix is swapped for the new one and the suffix is kept verbatim. The
// second return value is false when fullPath is not inside oldPath's subtree.
func RelativeSuffix(oldPath, fullPath string) (string, bool) {
	if !strings.HasPrefix(fullPath, oldPath) {
		return "", false
	}
	return fullPath[len(oldPath):], true
}

// PathDepth derives the depth encoded in a path, root = 0. Returns -1 for a
// malformed path.
func PathDepth(path string) int {
	if len(path) < 2 || !strings.HasPrefix(path, Delimiter) || !strings.HasSuffix(path, Delimiter) {
		return -1
	}
	return strings.Count(path, Delimiter) - 2
}

// AncestorIDs decodes the ancestor chain from a path, excluding the node's
// own id, ordered root first.
func AncestorIDs(path string) []uuid.UUID {
	parts := strings.Split(strings.Trim(path, Delimiter), Delimiter)
	if len(parts) <= 1 {
		return nil
	}
	ancestors := make([]uuid.UUID, 0, len(parts)-1)
	for _, part := range parts[:len(parts)-1] {
		id, err := uuid.Parse(part)
		if err != nil {
			return nil
		}
		ancestors = append(ancestors, id)
	}
	return ancestors
}
