package region

// SSD computes the within-group sum of squared deviations for a set of
// areas, summed over every attribute column: for each attribute m, the
// sum of (z[i][m] - mean_m)^2 over i in ids.
//
// Computed naively (two-pass mean-then-deviation) for clarity. An empty
// set has SSD 0. No normalization; attributes must be pre-standardized
// by the caller if scale invariance is desired.
func SSD(z AttributeMatrix, ids []int) float64 {
	if len(ids) == 0 {
		return 0
	}
	k := z.K()
	var total float64
	for m := 0; m < k; m++ {
		var sum float64
		for _, i := range ids {
			sum += z[i][m]
		}
		mean := sum / float64(len(ids))

		var ssd float64
		for _, i := range ids {
			d := z[i][m] - mean
			ssd += d * d
		}
		total += ssd
	}
	return total
}

// ObjPartition sums SSD over every region of the partition.
func ObjPartition(z AttributeMatrix, p *Partition) float64 {
	return objRegions(z, p.Regions)
}

// objRegions sums SSD over an explicit list of regions. A region list
// does not have to be exhaustive over all areas.
func objRegions(z AttributeMatrix, regions [][]int) float64 {
	var total float64
	for _, r := range regions {
		total += SSD(z, r)
	}
	return total
}

// ObjAfterMove returns the change in total objective if area a moved
// from its current region src to region dst, without mutating either
// region:
//
//	SSD(src \ {a}) + SSD(dst U {a}) - SSD(src) - SSD(dst)
func ObjAfterMove(z AttributeMatrix, src, dst []int, a int) float64 {
	before := SSD(z, src) + SSD(z, dst)

	newSrc := make([]int, 0, len(src))
	for _, id := range src {
		if id != a {
			newSrc = append(newSrc, id)
		}
	}
	newDst := make([]int, len(dst), len(dst)+1)
	copy(newDst, dst)
	newDst = append(newDst, a)

	after := SSD(z, newSrc) + SSD(z, newDst)
	return after - before
}
