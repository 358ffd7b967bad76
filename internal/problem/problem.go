// Package problem decodes a JSON problem document into the in-memory
// types the max-p regions solver (internal/region) operates on. It is
// glue only — never a shapefile/weights-file reader and never
// contiguity-graph construction or attribute standardization, which
// stay outside this module entirely.
package problem

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/geoda-region/maxp-regions/internal/region"
)

// AreaInput is one area's record in a problem document.
type AreaInput struct {
	ID         int       `json:"id"`
	Neighbors  []int     `json:"neighbors"`
	Attributes []float64 `json:"attributes"`
	FloorValue float64   `json:"floor_value"`
	// Centroid is an optional [lng, lat] pair. It is never read by the
	// solver; it exists only so result reporting can tag a region with a
	// representative point.
	Centroid []float64 `json:"centroid,omitempty"`
}

// Document is the top-level shape of a problem JSON document.
type Document struct {
	Areas              []AreaInput `json:"areas"`
	Floor              float64     `json:"floor"`
	Initial            int         `json:"initial"`
	RandSeed           int64       `json:"rnd_seed"`
	PreassignedSeeds   []int       `json:"preassigned_seeds,omitempty"`
	Dist               string      `json:"dist,omitempty"`
	Test               bool        `json:"test,omitempty"`
	Workers            int         `json:"workers,omitempty"`
	EnclaveRandomQueue []int       `json:"enclave_random_queue,omitempty"`
}

// Problem is a Document resolved into the region package's types, ready
// to hand to region.NewSolver.
type Problem struct {
	Graph       *region.Graph
	Attributes  region.AttributeMatrix
	FloorVector []float64
	Floor       float64
	Options     region.SolveOptions

	// Centroids parallels Graph's area indices. An entry is nil when the
	// input omitted that area's centroid.
	Centroids []geom.T
}

// LoadFile reads and decodes a problem document from path.
func LoadFile(path string) (*Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "problem: open %s", path)
	}
	defer f.Close()
	return Load(f)
}

// Load reads and decodes a problem document from r.
func Load(r io.Reader) (*Problem, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, eris.Wrap(err, "problem: decode JSON")
	}
	return Resolve(&doc)
}

// Resolve validates a Document and converts it into a Problem: area ids
// must be 0..n-1 contiguous and every attribute row must share the same
// length. Adjacency symmetry is validated by region.NewGraph itself.
func Resolve(doc *Document) (*Problem, error) {
	n := len(doc.Areas)
	if n == 0 {
		return nil, eris.New("problem: document has no areas")
	}

	byID := make(map[int]AreaInput, n)
	for _, a := range doc.Areas {
		if a.ID < 0 || a.ID >= n {
			return nil, eris.Errorf("problem: area id %d out of range [0,%d)", a.ID, n)
		}
		if _, dup := byID[a.ID]; dup {
			return nil, eris.Errorf("problem: duplicate area id %d", a.ID)
		}
		byID[a.ID] = a
	}

	adj := make([][]int, n)
	floorVar := make([]float64, n)
	centroids := make([]geom.T, n)
	k := -1
	z := make(region.AttributeMatrix, n)

	for id := 0; id < n; id++ {
		a, ok := byID[id]
		if !ok {
			return nil, eris.Errorf("problem: missing area id %d", id)
		}
		adj[id] = a.Neighbors
		floorVar[id] = a.FloorValue

		if k == -1 {
			k = len(a.Attributes)
		} else if len(a.Attributes) != k {
			return nil, eris.Errorf("problem: area %d has %d attributes, want %d", id, len(a.Attributes), k)
		}
		z[id] = a.Attributes

		if len(a.Centroid) == 2 {
			centroids[id] = geom.NewPointFlat(geom.XY, []float64{a.Centroid[0], a.Centroid[1]}).SetSRID(4326)
		}
	}

	g, err := region.NewGraph(adj)
	if err != nil {
		return nil, err
	}

	opts := region.SolveOptions{
		Initial:            doc.Initial,
		PreassignedSeeds:   doc.PreassignedSeeds,
		RandSeed:           doc.RandSeed,
		Dist:               doc.Dist,
		Test:               doc.Test,
		EnclaveRandomQueue: doc.EnclaveRandomQueue,
		Workers:            doc.Workers,
	}
	if opts.Initial <= 0 && !opts.Test {
		opts.Initial = 10
	}

	return &Problem{
		Graph:       g,
		Attributes:  z,
		FloorVector: floorVar,
		Floor:       doc.Floor,
		Options:     opts,
		Centroids:   centroids,
	}, nil
}
