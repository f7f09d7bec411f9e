package syntax

// Walk traverses the tree rooted at n in depth-first, source order, calling
// visit for each node. If visit returns false for a node, its children are
// skipped.
func Walk(n Node, visit func(Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, child := range n.Children() {
		Walk(child, visit)
	}
}
