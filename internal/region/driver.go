package region

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SolveOptions carries the per-solve parameters.
type SolveOptions struct {
	// Initial is the number of independent multi-start restarts.
	Initial int

	// PreassignedSeeds, if non-empty, seeds start 0's partition directly
	// and skips its construction phase.
	PreassignedSeeds []int

	// RandSeed is the deterministic seed_start. Negative draws from the
	// wall clock instead.
	RandSeed int64

	// Dist is carried through but ignored; the objective is always SSD.
	// Reserved for a future distance metric.
	Dist string

	// Test, when true, forces Initial=2 and floor=5 and routes enclave
	// assignment through EnclaveRandomQueue instead of the RNG. Production
	// callers must leave this false.
	Test bool

	// EnclaveRandomQueue supplies enclave-assignment draws when Test is
	// true. Consumed in order, shared across the run, which is why Test
	// mode always runs single-threaded (see Solve).
	EnclaveRandomQueue []int

	// Workers bounds the number of goroutines the driver spawns. Zero
	// means runtime.NumCPU().
	Workers int

	// MaxAttempts is the constructor retry ceiling per start. Zero means
	// the default of 100.
	MaxAttempts int
}

// Solver holds one solve's inputs: the read-only contiguity graph,
// attribute matrix, floor vector/threshold, and options — the
// shared-read-only state every worker reads without synchronization.
type Solver struct {
	g        *Graph
	z        AttributeMatrix
	floorVar []float64
	floor    float64
	opts     SolveOptions
}

// NewSolver validates inputs and returns a Solver ready to run. Validation
// failures are caller-input errors and are returned before any solving
// starts.
func NewSolver(g *Graph, z AttributeMatrix, floorVar []float64, floor float64, opts SolveOptions) (*Solver, error) {
	if g == nil {
		return nil, eris.New("region: graph is nil")
	}
	n := g.N()
	if len(floorVar) != n {
		return nil, eris.Errorf("region: floor vector has %d entries, want %d", len(floorVar), n)
	}
	if len(z) != 0 && len(z) != n {
		return nil, eris.Errorf("region: attribute matrix has %d rows, want %d", len(z), n)
	}
	if len(opts.PreassignedSeeds) != 0 && len(opts.PreassignedSeeds) != n {
		return nil, eris.Errorf("region: preassigned_seeds has %d entries, want %d", len(opts.PreassignedSeeds), n)
	}
	if opts.Initial <= 0 && !opts.Test {
		return nil, eris.New("region: initial must be positive")
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	return &Solver{g: g, z: z, floorVar: floorVar, floor: floor, opts: opts}, nil
}

const defaultMaxAttempts = 100

// startResult is one worker's owned slot: the per-start partition,
// swap statistics, objective, and feasibility flag.
type startResult struct {
	partition *Partition
	stats     RunStats
	wss       float64
	feasible  bool
}

// Solve runs the multi-start driver: it spawns opts.Workers goroutines
// covering disjoint ranges of the Initial starts, runs Constructor+Swap
// for each, and reduces to the minimum-objective feasible start after
// every worker joins. An already-canceled context short-circuits before
// any worker is spawned — the join is the only suspension point.
func (s *Solver) Solve(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := zap.L().With(zap.String("component", "region.driver"))
	runID := uuid.New().String()

	floor := s.floor
	initial := s.opts.Initial
	if s.opts.Test {
		initial = 2
		floor = 5
	}

	n := s.g.N()
	workers := s.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if s.opts.Test {
		// EnclaveRandomQueue is a single shared, ordered slice; running
		// more than one goroutine against it would race and make the
		// "supply exact draws" contract meaningless.
		workers = 1
	}
	if workers > initial {
		workers = initial
	}
	if workers < 1 {
		workers = 1
	}

	seedStart := s.opts.RandSeed
	if seedStart < 0 {
		seedStart = time.Now().UnixNano()
	}
	seedIncrement := uint64(s.opts.MaxAttempts) * uint64(n) * 100

	log.Info("solve starting",
		zap.String("run_id", runID),
		zap.Int("initial", initial),
		zap.Int("workers", workers),
		zap.Int("n", n),
	)

	slots := make([]startResult, initial)

	bounds := partitionRanges(initial, workers)

	g, gCtx := errgroup.WithContext(ctx)
	for _, bound := range bounds {
		a, b := bound[0], bound[1]
		g.Go(func() error {
			for start := a; start < b; start++ {
				if err := gCtx.Err(); err != nil {
					return err
				}
				slots[start] = s.runStart(start, seedStart, seedIncrement, floor)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := -1
	var bestWSS float64
	stats := make([]RunStats, 0, initial)
	for i, slot := range slots {
		if !slot.feasible {
			continue
		}
		stats = append(stats, slot.stats)
		if best == -1 || slot.wss < bestWSS {
			best = i
			bestWSS = slot.wss
		}
	}

	if best == -1 {
		log.Warn("solve infeasible", zap.String("run_id", runID), zap.Int("initial", initial))
		return &Result{Feasible: false}, nil
	}

	winner := slots[best].partition
	assertInvariants(s.g, s.floorVar, floor, winner)

	log.Info("solve complete",
		zap.String("run_id", runID),
		zap.Int("p", winner.P()),
		zap.Float64("objective", bestWSS),
	)

	return &Result{
		Feasible:  true,
		Objective: bestWSS,
		P:         winner.P(),
		Regions:   winner.Regions,
		Stats:     stats,
	}, nil
}

// runStart constructs then swaps for one start index, using the derived
// deterministic seed seed_start + (s+1) * seed_increment.
func (s *Solver) runStart(start int, seedStart int64, seedIncrement uint64, floor float64) startResult {
	if start == 0 && len(s.opts.PreassignedSeeds) > 0 {
		p := seedFromPreassigned(s.opts.PreassignedSeeds, s.g.N())
		stats := swap(s.g, s.z, s.floorVar, floor, p)
		return startResult{partition: p, stats: stats, wss: ObjPartition(s.z, p), feasible: true}
	}

	seed := uint64(seedStart) + uint64(start+1)*seedIncrement
	r := newRNG(seed)

	var queue *[]int
	if s.opts.Test {
		queue = &s.opts.EnclaveRandomQueue
	}

	p, ok := construct(s.g, s.floorVar, floor, r, s.opts.MaxAttempts, queue)
	if !ok {
		return startResult{feasible: false}
	}

	stats := swap(s.g, s.z, s.floorVar, floor, p)
	return startResult{partition: p, stats: stats, wss: ObjPartition(s.z, p), feasible: true}
}

// partitionRanges divides [0, initial) into workers contiguous ranges so
// that the first (initial mod workers) workers each get
// ceil(initial/workers) starts and the rest get floor(initial/workers).
func partitionRanges(initial, workers int) [][2]int {
	base := initial / workers
	rem := initial % workers
	ranges := make([][2]int, 0, workers)
	pos := 0
	for i := 0; i < workers; i++ {
		size := base
		if i < rem {
			size++
		}
		ranges = append(ranges, [2]int{pos, pos + size})
		pos += size
	}
	return ranges
}
