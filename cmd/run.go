package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geoda-region/maxp-regions/internal/problem"
	"github.com/geoda-region/maxp-regions/internal/region"
)

var (
	runInput   string
	runInitial int
	runSeed    int64
	runWorkers int
	runOutput  string
)

// report is the JSON shape printed by `maxp run`: it only serializes
// what the solver already computed, plus the problem loader's optional
// centroids. No new statistics are derived.
type report struct {
	Feasible  bool           `json:"feasible"`
	Objective float64        `json:"objective"`
	P         int            `json:"p"`
	Regions   []regionReport `json:"regions"`
}

type regionReport struct {
	Areas    []int     `json:"areas"`
	Centroid []float64 `json:"centroid,omitempty"`
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Solve a max-p regions problem document",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		prob, err := problem.LoadFile(runInput)
		if err != nil {
			return eris.Wrap(err, "load problem")
		}

		if runInitial > 0 {
			prob.Options.Initial = runInitial
		}
		if cmd.Flags().Changed("seed") {
			prob.Options.RandSeed = runSeed
		}
		if runWorkers > 0 {
			prob.Options.Workers = runWorkers
		} else if prob.Options.Workers == 0 && cfg != nil {
			prob.Options.Workers = cfg.Solver.Workers
		}
		if cfg != nil && cfg.Solver.MaxAttempts > 0 {
			prob.Options.MaxAttempts = cfg.Solver.MaxAttempts
		}

		solver, err := region.NewSolver(prob.Graph, prob.Attributes, prob.FloorVector, prob.Floor, prob.Options)
		if err != nil {
			return eris.Wrap(err, "build solver")
		}

		result, err := solver.Solve(ctx)
		if err != nil {
			return eris.Wrap(err, "solve")
		}

		zap.L().Info("run complete",
			zap.Bool("feasible", result.Feasible),
			zap.Int("p", result.P),
			zap.Float64("objective", result.Objective),
		)

		rep := toReport(result, prob)

		out := os.Stdout
		if runOutput != "" {
			f, err := os.Create(runOutput)
			if err != nil {
				return eris.Wrapf(err, "create %s", runOutput)
			}
			defer f.Close()
			out = f
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	},
}

func toReport(result *region.Result, prob *problem.Problem) report {
	rep := report{
		Feasible:  result.Feasible,
		Objective: result.Objective,
		P:         result.P,
	}
	for _, members := range result.Regions {
		rep.Regions = append(rep.Regions, regionReport{
			Areas:    members,
			Centroid: regionCentroid(members, prob),
		})
	}
	return rep
}

// regionCentroid returns the [lng, lat] of the first member area that
// carries an optional centroid; nil if none do.
func regionCentroid(members []int, prob *problem.Problem) []float64 {
	for _, a := range members {
		if a < 0 || a >= len(prob.Centroids) || prob.Centroids[a] == nil {
			continue
		}
		flat := prob.Centroids[a].FlatCoords()
		if len(flat) >= 2 {
			return []float64{flat[0], flat[1]}
		}
	}
	return nil
}

func init() {
	runCmd.Flags().StringVar(&runInput, "input", "", "path to a problem JSON document (required)")
	runCmd.Flags().IntVar(&runInitial, "initial", 0, "override the number of multi-start restarts")
	runCmd.Flags().Int64Var(&runSeed, "seed", -1, "override the deterministic RNG seed (negative draws from wall clock)")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "override the number of worker goroutines (0 = keep the document's or config's value; NumCPU if both are 0)")
	runCmd.Flags().StringVar(&runOutput, "output", "", "write the result JSON here instead of stdout")
	_ = runCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(runCmd)
}
