package region

import "github.com/rotisserie/eris"

// assertInvariants checks coverage, floor feasibility, contiguity, and
// area-to-region consistency against a partition that the solver
// believes is feasible. A violation here means a programmer bug in this
// package, not a bad caller input, so it panics rather than returning
// an error.
func assertInvariants(g *Graph, floorVar []float64, floor float64, p *Partition) {
	n := g.N()
	if len(p.AreaToRegion) != n {
		panic(eris.Errorf("region: invariant violated: area2region has %d entries, want %d", len(p.AreaToRegion), n))
	}

	seen := make([]bool, n)
	for rid, members := range p.Regions {
		if len(members) == 0 {
			panic(eris.Errorf("region: invariant violated: region %d is empty", rid))
		}
		for _, a := range members {
			if seen[a] {
				panic(eris.Errorf("region: invariant violated: area %d assigned to multiple regions", a))
			}
			seen[a] = true
			if p.AreaToRegion[a] != rid {
				panic(eris.Errorf("region: invariant violated: area2region[%d]=%d, region list says %d", a, p.AreaToRegion[a], rid))
			}
		}
		if !CheckFloor(floorVar, floor, members) {
			panic(eris.Errorf("region: invariant violated: region %d below floor", rid))
		}
		if !connectedRegion(g, members) {
			panic(eris.Errorf("region: invariant violated: region %d is not contiguous", rid))
		}
	}
	for a, ok := range seen {
		if !ok {
			panic(eris.Errorf("region: invariant violated: area %d not covered by any region", a))
		}
	}
}

// connectedRegion is CheckContiguity with no leaver.
func connectedRegion(g *Graph, members []int) bool {
	return CheckContiguity(g, members, -1)
}
