package region

import "github.com/rotisserie/eris"

// Graph is a read-only contiguity structure over n areas, indexed 0..n-1.
// It is supplied by the caller (construction of the contiguity graph is
// explicitly out of scope for this module) and never mutated once built.
type Graph struct {
	neighbors [][]int
}

// NewGraph builds a Graph from an adjacency list. adj[i] lists the
// neighbor indices of area i. The adjacency must be symmetric: if j
// appears in adj[i], i must appear in adj[j]. Self-loops are rejected.
func NewGraph(adj [][]int) (*Graph, error) {
	n := len(adj)
	present := make([]map[int]bool, n)
	for i := range adj {
		present[i] = make(map[int]bool, len(adj[i]))
		for _, j := range adj[i] {
			if j == i {
				return nil, eris.Errorf("region: area %d lists itself as a neighbor", i)
			}
			if j < 0 || j >= n {
				return nil, eris.Errorf("region: area %d has out-of-range neighbor %d", i, j)
			}
			present[i][j] = true
		}
	}
	for i := range adj {
		for j := range present[i] {
			if !present[j][i] {
				return nil, eris.Errorf("region: adjacency not symmetric between %d and %d", i, j)
			}
		}
	}

	g := &Graph{neighbors: make([][]int, n)}
	for i, nbrs := range adj {
		cp := make([]int, len(nbrs))
		copy(cp, nbrs)
		g.neighbors[i] = cp
	}
	return g, nil
}

// N returns the number of areas in the graph.
func (g *Graph) N() int { return len(g.neighbors) }

// Neighbors returns the neighbor indices of area i. The caller must not
// mutate the returned slice.
func (g *Graph) Neighbors(i int) []int { return g.neighbors[i] }

// Degree returns the number of neighbors of area i.
func (g *Graph) Degree(i int) int { return len(g.neighbors[i]) }
