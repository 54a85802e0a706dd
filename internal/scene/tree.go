// Package scene is a minimal scene graph: a tree of transform nodes, some of
// which carry a mesh (geometry plus material).
//
// Nodes live in an arena owned by the Tree and refer to each other by index.
// A node's parent index is used for lookup only; ownership always flows from
// the tree to its nodes.
package scene

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Faultbox/molviz/pkg/math"
)

// Tree errors.
var (
	ErrNoSuchNode = errors.New("no such node")
	ErrCycle      = errors.New("attaching would create a cycle")
)

// NodeIndex addresses a node inside its Tree.
type NodeIndex int

// NoNode is the index of a missing node.
const NoNode NodeIndex = -1

// Node is one element of the scene graph.
type Node struct {
	ID        uuid.UUID
	Name      string
	Transform math.Mat4 // local transform, relative to the parent
	Mesh      *Mesh
	UserData  any

	parent   NodeIndex
	children []NodeIndex
}

// Tree is an arena of nodes with one designated root.
type Tree struct {
	nodes []Node
	root  NodeIndex
}

// New returns an empty tree with no root.
func New() *Tree {
	return &Tree{root: NoNode}
}

// NewTree returns a tree holding a single root node.
func NewTree(rootName string) *Tree {
	t := New()
	t.SetRoot(t.AddNode(Node{Name: rootName}))
	return t
}

// AddNode stores n as a detached node and returns its index. A zero ID is
// replaced by a fresh one and a zero transform by the identity.
func (t *Tree) AddNode(n Node) NodeIndex {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.Transform == (math.Mat4{}) {
		n.Transform = math.Identity()
	}
	n.parent = NoNode
	n.children = nil
	t.nodes = append(t.nodes, n)
	return NodeIndex(len(t.nodes) - 1)
}

// AddChild stores n under parent and returns its index.
func (t *Tree) AddChild(parent NodeIndex, n Node) NodeIndex {
	i := t.AddNode(n)
	if err := t.Attach(parent, i); err != nil {
		panic(fmt.Sprintf("scene: AddChild: %v", err))
	}
	return i
}

// Attach makes child a child of parent, detaching it from any previous
// parent first.
func (t *Tree) Attach(parent, child NodeIndex) error {
	if !t.valid(parent) || !t.valid(child) {
		return ErrNoSuchNode
	}
	for p := parent; p != NoNode; p = t.nodes[p].parent {
		if p == child {
			return ErrCycle
		}
	}
	t.detach(child)
	t.nodes[child].parent = parent
	t.nodes[parent].children = append(t.nodes[parent].children, child)
	return nil
}

func (t *Tree) detach(i NodeIndex) {
	p := t.nodes[i].parent
	if p == NoNode {
		return
	}
	siblings := t.nodes[p].children
	for k, c := range siblings {
		if c == i {
			t.nodes[p].children = append(siblings[:k:k], siblings[k+1:]...)
			break
		}
	}
	t.nodes[i].parent = NoNode
}

func (t *Tree) valid(i NodeIndex) bool {
	return i >= 0 && int(i) < len(t.nodes)
}

// SetRoot designates the root node.
func (t *Tree) SetRoot(i NodeIndex) {
	t.root = i
}

// Root returns the root index, or NoNode for an empty tree.
func (t *Tree) Root() NodeIndex {
	return t.root
}

// Len returns the number of nodes in the arena, attached or not.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node at i. The pointer is invalidated by AddNode.
func (t *Tree) Node(i NodeIndex) *Node {
	return &t.nodes[i]
}

// Parent returns the parent of i, or NoNode.
func (t *Tree) Parent(i NodeIndex) NodeIndex {
	return t.nodes[i].parent
}

// Children returns the children of i in attach order.
func (t *Tree) Children(i NodeIndex) []NodeIndex {
	return t.nodes[i].children
}

// Find returns the index of the node with the given ID.
func (t *Tree) Find(id uuid.UUID) NodeIndex {
	for i := range t.nodes {
		if t.nodes[i].ID == id {
			return NodeIndex(i)
		}
	}
	return NoNode
}

// Walk visits the subtree rooted at from in pre-order. Returning false from
// fn skips the node's children.
func (t *Tree) Walk(from NodeIndex, fn func(i NodeIndex, depth int) bool) {
	if !t.valid(from) {
		return
	}
	var visit func(i NodeIndex, depth int)
	visit = func(i NodeIndex, depth int) {
		if !fn(i, depth) {
			return
		}
		for _, c := range t.nodes[i].children {
			visit(c, depth+1)
		}
	}
	visit(from, 0)
}

// Meshes returns the mesh-carrying nodes under the root in pre-order.
func (t *Tree) Meshes() []NodeIndex {
	var out []NodeIndex
	t.Walk(t.root, func(i NodeIndex, _ int) bool {
		if t.nodes[i].Mesh != nil {
			out = append(out, i)
		}
		return true
	})
	return out
}

// RelativeTransform returns the transform taking i's local space into the
// space of its ancestor. The ancestor's own transform is not included.
func (t *Tree) RelativeTransform(i, ancestor NodeIndex) math.Mat4 {
	m := math.Identity()
	for n := i; n != ancestor && n != NoNode; n = t.nodes[n].parent {
		m = t.nodes[n].Transform.Mul(m)
	}
	return m
}

// WorldTransform returns the transform of i including every ancestor.
func (t *Tree) WorldTransform(i NodeIndex) math.Mat4 {
	return t.RelativeTransform(i, NoNode)
}

// Merge copies the subtree rooted at sub's root under parent and returns the
// index of the copied root. Node IDs, meshes and user data are shared with
// sub.
func (t *Tree) Merge(parent NodeIndex, sub *Tree) (NodeIndex, error) {
	if !t.valid(parent) {
		return NoNode, ErrNoSuchNode
	}
	if sub == nil || !sub.valid(sub.root) {
		return NoNode, fmt.Errorf("merging subtree: %w", ErrNoSuchNode)
	}

	var copyNode func(src, dstParent NodeIndex) NodeIndex
	copyNode = func(src, dstParent NodeIndex) NodeIndex {
		n := sub.nodes[src]
		i := t.AddNode(n)
		_ = t.Attach(dstParent, i)
		for _, c := range n.children {
			copyNode(c, i)
		}
		return i
	}
	return copyNode(sub.root, parent), nil
}
