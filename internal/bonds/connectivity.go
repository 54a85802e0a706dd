package bonds

import (
	"slices"

	"github.com/Faultbox/molviz/pkg/pdb"
)

// Pair is an unordered bond between two zero-based atom indices, A < B.
type Pair = pdb.BondPair

// Connectivity is the set of bonds of one model. Each bond is stored once,
// under its smaller endpoint.
type Connectivity struct {
	adj   map[int]map[int]struct{}
	count int
}

// NewConnectivity returns an empty bond set.
func NewConnectivity() *Connectivity {
	return &Connectivity{adj: make(map[int]map[int]struct{})}
}

// Add records a bond between a and b in either order. Self bonds and
// duplicates are ignored; Add reports whether the bond was new.
func (c *Connectivity) Add(a, b int) bool {
	if a == b {
		return false
	}
	if a > b {
		a, b = b, a
	}
	set, ok := c.adj[a]
	if !ok {
		set = make(map[int]struct{})
		c.adj[a] = set
	}
	if _, dup := set[b]; dup {
		return false
	}
	set[b] = struct{}{}
	c.count++
	return true
}

// Has reports whether a and b are bonded, in either order.
func (c *Connectivity) Has(a, b int) bool {
	if a > b {
		a, b = b, a
	}
	_, ok := c.adj[a][b]
	return ok
}

// Len returns the number of bonds.
func (c *Connectivity) Len() int {
	return c.count
}

// Pairs returns every bond sorted by A, then B.
func (c *Connectivity) Pairs() []Pair {
	pairs := make([]Pair, 0, c.count)
	for a, set := range c.adj {
		for b := range set {
			pairs = append(pairs, Pair{A: a, B: b})
		}
	}
	slices.SortFunc(pairs, func(x, y Pair) int {
		if x.A != y.A {
			return x.A - y.A
		}
		return x.B - y.B
	})
	return pairs
}

// Degrees returns the number of bonds touching each of n atoms. Bonds with
// an endpoint outside [0, n) are not counted.
func (c *Connectivity) Degrees(n int) []int {
	deg := make([]int, n)
	for a, set := range c.adj {
		for b := range set {
			if a < 0 || b >= n {
				continue
			}
			deg[a]++
			deg[b]++
		}
	}
	return deg
}
