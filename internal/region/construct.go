package region

// construct performs randomized growth from a shuffled candidate order,
// stopping each region's growth the instant its floor is met, followed
// by an enclave-assignment pass that folds leftover areas into a
// neighboring region. Retries up to maxAttempts times on failure. rnd is
// the calling start's own stream; it is shared (and advanced) across
// that start's attempts.
//
// Preassigned seeds bypass this function entirely — see driver.go's
// handling of start index 0 — rather than being mixed into the
// candidate pool.
func construct(g *Graph, floorVar []float64, floor float64, rnd *rng, maxAttempts int, enclaveQueue *[]int) (*Partition, bool) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		regions, enclaves := growRegions(g, floorVar, floor, rnd)
		if len(regions) == 0 {
			continue
		}
		a2r := buildAreaToRegion(regions, g.N())
		if assignEnclaves(g, regions, a2r, enclaves, rnd, enclaveQueue) {
			return &Partition{Regions: regions, AreaToRegion: a2r}, true
		}
	}
	return nil, false
}

// seedFromPreassigned builds a partition directly from a length-n
// region-id vector, grouping areas by region id in first-seen order.
func seedFromPreassigned(seeds []int, n int) *Partition {
	order := make([]int, 0)
	groups := make(map[int][]int)
	for i := 0; i < n && i < len(seeds); i++ {
		rgn := seeds[i]
		if _, ok := groups[rgn]; !ok {
			order = append(order, rgn)
		}
		groups[rgn] = append(groups[rgn], i)
	}

	regions := make([][]int, len(order))
	a2r := make([]int, n)
	for idx, rgn := range order {
		regions[idx] = groups[rgn]
		for _, area := range groups[rgn] {
			a2r[area] = idx
		}
	}
	return &Partition{Regions: regions, AreaToRegion: a2r}
}

// growRegions shuffles the candidate order, then repeatedly pops a seed
// and grows a region from it until the floor is met or the region's
// frontier is exhausted. Areas whose region never reaches the floor are
// returned as enclaves.
func growRegions(g *Graph, floorVar []float64, floor float64, rnd *rng) (regions [][]int, enclaves []int) {
	n := g.N()
	order := rnd.permutation(n)
	// inCandidates tracks area availability: true until popped as a seed
	// or claimed by a growing region (by this region or a prior one).
	inCandidates := make([]bool, n)
	for _, id := range order {
		inCandidates[id] = true
	}

	pos := 0
	nextSeed := func() (int, bool) {
		for pos < len(order) {
			c := order[pos]
			pos++
			if inCandidates[c] {
				inCandidates[c] = false
				return c, true
			}
		}
		return 0, false
	}

	for {
		seed, ok := nextSeed()
		if !ok {
			break
		}

		members := []int{seed}
		inRegion := map[int]bool{seed: true}
		cv := floorVar[seed]
		stack := []int{seed}

		for cv < floor && len(stack) > 0 {
			area := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			reachedFloor := false
			for _, nbr := range g.Neighbors(area) {
				if inRegion[nbr] || !inCandidates[nbr] {
					continue
				}
				members = append(members, nbr)
				inRegion[nbr] = true
				inCandidates[nbr] = false
				stack = append(stack, nbr)
				cv += floorVar[nbr]
				if cv >= floor {
					reachedFloor = true
					break
				}
			}
			if reachedFloor {
				break
			}
		}

		// The region is feasible as soon as its running floor sum meets
		// the floor, whether that happened before growth started (the
		// seed alone suffices) or partway through it.
		if cv >= floor {
			regions = append(regions, members)
		} else {
			enclaves = append(enclaves, members...)
		}
	}

	return regions, enclaves
}

// buildAreaToRegion derives the inverse index from a region list.
func buildAreaToRegion(regions [][]int, n int) []int {
	a2r := make([]int, n)
	for i := range a2r {
		a2r[i] = -1
	}
	for rid, members := range regions {
		for _, m := range members {
			a2r[m] = rid
		}
	}
	return a2r
}

// assignEnclaves makes a FIFO pass over leftover enclaves, each folded
// into a uniformly-random neighboring region (or, in test mode, the
// next index off enclaveQueue). Progress resets the no-progress
// counter; a full pass with no progress ends the attempt. Returns false
// iff enclaves remain unassigned.
func assignEnclaves(g *Graph, regions [][]int, a2r []int, enclaves []int, rnd *rng, enclaveQueue *[]int) bool {
	if len(enclaves) == 0 {
		return true
	}

	inEnclave := make(map[int]bool, len(enclaves))
	queue := make([]int, len(enclaves))
	copy(queue, enclaves)
	for _, e := range queue {
		inEnclave[e] = true
	}

	encCount := len(queue)
	encAttempts := 0

	for encCount > 0 && encAttempts != encCount {
		e := queue[0]
		queue = queue[1:]

		var candidateRegions []int
		seenRegion := make(map[int]bool)
		for _, nbr := range g.Neighbors(e) {
			if inEnclave[nbr] {
				continue
			}
			rid := a2r[nbr]
			if rid < 0 || seenRegion[rid] {
				continue
			}
			seenRegion[rid] = true
			candidateRegions = append(candidateRegions, rid)
		}

		if len(candidateRegions) > 0 {
			idx := pickEnclaveIndex(rnd, len(candidateRegions), enclaveQueue)
			rid := candidateRegions[idx]
			regions[rid] = append(regions[rid], e)
			a2r[e] = rid
			delete(inEnclave, e)

			encCount = len(queue)
			encAttempts = 0
		} else {
			queue = append(queue, e)
			encAttempts++
		}
	}

	return len(queue) == 0
}

// pickEnclaveIndex draws the index of the region an enclave joins: from
// enclaveQueue when test mode supplied one, otherwise from rnd.
func pickEnclaveIndex(rnd *rng, numCandidates int, enclaveQueue *[]int) int {
	if enclaveQueue != nil && len(*enclaveQueue) > 0 {
		idx := (*enclaveQueue)[0]
		*enclaveQueue = (*enclaveQueue)[1:]
		return idx
	}
	return rnd.boundedInt(numCandidates)
}
