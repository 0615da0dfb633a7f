package parser

import "strconv"

// Namespace hands out unique names. A name taken in a namespace or in any
// of its parents is suffixed with "-N" on every later request.
type Namespace struct {
	parent    *Namespace
	directory map[string]int
}

// NewNamespace creates a namespace nested in parent, which may be nil.
func NewNamespace(parent *Namespace) *Namespace {
	return &Namespace{parent: parent, directory: make(map[string]int)}
}

// Parent returns the enclosing namespace.
func (n *Namespace) Parent() *Namespace { return n.parent }

// UniqueName returns base the first time it is requested in this namespace
// chain and base-1, base-2, ... afterwards. The counter lives in the
// namespace that first claimed base.
func (n *Namespace) UniqueName(base string) string {
	for ns := n; ns != nil; ns = ns.parent {
		if count, ok := ns.directory[base]; ok {
			count++
			ns.directory[base] = count
			return base + "-" + strconv.Itoa(count)
		}
	}
	n.directory[base] = 0
	return base
}
