package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	catapultdb "github.com/MRandl/catapult-db"
	"github.com/MRandl/catapult-db/internal/searcher"
	"github.com/MRandl/catapult-db/queries"
	"github.com/MRandl/catapult-db/search"
)

type runConfig struct {
	queriesPath   string
	graphPath     string
	payloadPath   string
	numNeighbors  int
	beamWidth     int
	catapults     bool
	threads       int
	trajectoryCap int
	reinjectCount int
}

func (c runConfig) validate() error {
	switch {
	case c.queriesPath == "":
		return fmt.Errorf("%w: --queries is required", errUsage)
	case c.graphPath == "":
		return fmt.Errorf("%w: --graph is required", errUsage)
	case c.payloadPath == "":
		return fmt.Errorf("%w: --payload is required", errUsage)
	case c.numNeighbors < 1:
		return fmt.Errorf("%w: --num-neighbors must be positive", errUsage)
	case c.beamWidth < c.numNeighbors:
		return fmt.Errorf("%w: --beam-width must be at least --num-neighbors", errUsage)
	case c.threads < 1:
		return fmt.Errorf("%w: --threads must be positive", errUsage)
	}
	return nil
}

func run(out io.Writer, logger *slog.Logger, cfg runConfig) error {
	logger.Info("loading graph", "graph", cfg.graphPath, "payload", cfg.payloadPath)

	db, err := catapultdb.Open(cfg.graphPath, cfg.payloadPath,
		catapultdb.WithBeamWidth(cfg.beamWidth),
		catapultdb.WithCatapults(cfg.catapults),
		catapultdb.WithTrajectoryCapacity(cfg.trajectoryCap),
		catapultdb.WithReinjectCount(cfg.reinjectCount),
	)
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Info("graph loaded", "nodes", db.Count(), "dim", db.Dim())

	qs, err := queries.Load(cfg.queriesPath)
	if err != nil {
		return err
	}
	if qs.Count() > 0 && qs.Dim() != db.Dim() {
		return &catapultdb.ErrDimensionMismatch{Expected: db.Dim(), Actual: qs.Dim()}
	}

	logger.Info("starting search",
		"queries", qs.Count(),
		"k", cfg.numNeighbors,
		"beam_width", cfg.beamWidth,
		"catapults", cfg.catapults,
		"threads", cfg.threads,
	)

	start := time.Now()
	results := make([][]search.Result, qs.Count())

	var (
		done     atomic.Uint64
		statsMu  sync.Mutex
		total    search.Stats
		progress = rate.Sometimes{Interval: 2 * time.Second}
	)

	params := db.Params(cfg.numNeighbors)
	engine := db.Engine()

	var g errgroup.Group
	chunk := (qs.Count() + cfg.threads - 1) / cfg.threads
	for w := 0; w < cfg.threads; w++ {
		lo := w * chunk
		hi := min(lo+chunk, qs.Count())
		if lo >= hi {
			break
		}

		g.Go(func() error {
			s := searcher.Get()
			defer searcher.Put(s)

			var local search.Stats
			for i := lo; i < hi; i++ {
				res, err := engine.Search(s, qs.Vector(i), params, &local, nil)
				if err != nil {
					return err
				}
				results[i] = res

				n := done.Add(1)
				progress.Do(func() {
					elapsed := time.Since(start).Seconds()
					logger.Info("progress",
						"processed", n,
						"total", qs.Count(),
						"qps", fmt.Sprintf("%.0f", float64(n)/elapsed),
					)
				})
			}

			statsMu.Lock()
			total.Merge(&local)
			statsMu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if err := printResults(out, results); err != nil {
		return err
	}

	elapsed := time.Since(start)
	logger.Info("search complete",
		"queries", qs.Count(),
		"elapsed", elapsed.Round(time.Millisecond),
		"qps", fmt.Sprintf("%.0f", float64(qs.Count())/elapsed.Seconds()),
		"nodes_expanded", total.NodesExpanded,
		"distances_computed", total.DistancesComputed,
		"stalls", total.Stalls,
		"injections", total.Injections,
		"searches_with_catapults", total.SearchesWithCatapults,
	)
	return nil
}

// printResults writes one line per query: the result ids separated by
// spaces, distance-ascending.
func printResults(out io.Writer, results [][]search.Result) error {
	bw := bufio.NewWriter(out)
	for _, res := range results {
		for i, r := range res {
			if i > 0 {
				if err := bw.WriteByte(' '); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(strconv.FormatUint(uint64(r.ID), 10)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
