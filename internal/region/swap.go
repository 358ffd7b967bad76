package region

// swap runs the boundary-move local search (AZP-style) that converges a
// constructed partition to a local optimum under single-area moves.
// Mutates p in place and returns the pass/move counters recorded as
// RunStats.
//
// A move is accepted when its change is <= 0 (ties included, a sideways
// move is allowed), and only the single best-of-frontier move is
// applied per seed region per pass — this is a best-of-frontier-then-
// advance policy, not full steepest descent. Both behaviors are
// deliberate and must not be "fixed" to strict descent or full
// re-evaluation per candidate.
func swap(g *Graph, z AttributeMatrix, floorVar []float64, floor float64, p *Partition) RunStats {
	nr := len(p.Regions)
	changed := make([]bool, nr)
	for i := range changed {
		changed[i] = true
	}

	swapIteration := 0
	totalMoves := 0

	for {
		var regionIDs []int
		for r, c := range changed {
			if c {
				regionIDs = append(regionIDs, r)
			}
		}
		for r := range changed {
			changed[r] = false
		}
		swapIteration++

		movesMade := 0
		for _, seed := range regionIDs {
			best := bestBoundaryMove(g, z, floorVar, floor, p, seed)
			if best < 0 {
				continue
			}

			donorID := p.AreaToRegion[best]
			p.Regions[donorID] = removeArea(p.Regions[donorID], best)
			p.Regions[seed] = append(p.Regions[seed], best)
			p.AreaToRegion[best] = seed

			changed[seed] = true
			changed[donorID] = true
			movesMade++
		}

		totalMoves += movesMade
		if movesMade == 0 {
			return RunStats{SwapIterations: swapIteration, TotalMoves: totalMoves}
		}
	}
}

// bestBoundaryMove finds the single best feasible move of a boundary
// area into region seed, or -1 if no feasible improving/neutral move
// exists.
func bestBoundaryMove(g *Graph, z AttributeMatrix, floorVar []float64, floor float64, p *Partition, seed int) int {
	members := p.Regions[seed]
	memberSet := make(map[int]bool, len(members))
	for _, m := range members {
		memberSet[m] = true
	}

	boundarySeen := make(map[int]bool)
	var boundary []int
	for _, m := range members {
		for _, nbr := range g.Neighbors(m) {
			if !memberSet[nbr] && !boundarySeen[nbr] {
				boundarySeen[nbr] = true
				boundary = append(boundary, nbr)
			}
		}
	}

	best := -1
	bestChange := 0.0
	for _, a := range boundary {
		donorID := p.AreaToRegion[a]
		donor := p.Regions[donorID]
		if !CheckFloorAfterRemoval(floorVar, floor, donor, a) {
			continue
		}
		if !CheckContiguity(g, donor, a) {
			continue
		}

		change := ObjAfterMove(z, donor, members, a)
		if change <= bestChange {
			best = a
			bestChange = change
		}
	}
	return best
}

// removeArea returns region with area removed, preserving order of the
// remaining elements.
func removeArea(region []int, area int) []int {
	out := make([]int, 0, len(region)-1)
	for _, id := range region {
		if id != area {
			out = append(out, id)
		}
	}
	return out
}
