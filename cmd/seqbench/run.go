package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/seqkit"
	"github.com/hupe1980/seqkit/resource"
)

var (
	runN           int
	runSeed        int64
	runParallel    int
	runMetricsAddr string
	runHold        time.Duration
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().IntVarP(&runN, "ops", "n", 100_000, "Operations per workload")
	cmd.Flags().Int64Var(&runSeed, "seed", 42, "RNG seed")
	cmd.Flags().IntVar(&runParallel, "parallel", 0, "Maximum concurrent workloads (0 = all)")
	cmd.Flags().
		StringVar(&runMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :2112)")
	cmd.Flags().
		DurationVar(&runHold, "hold", 0, "Keep serving metrics this long after the workloads finish")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [workload...]",
		Short: "Run container workloads concurrently",
		Long: fmt.Sprintf(`The run command executes the named workloads concurrently, each on its
own containers but under one shared memory budget, and reports operation
counts, wall time and a digest per workload.

Workloads: %s (default: all)

Example:
  seqbench run
  seqbench run deque list -n 1000000
  seqbench run --mem-limit 8388608 --json
  seqbench run --metrics-addr :2112 --hold 1m`, strings.Join(workloadNames(), ", ")),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return workloadNames(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runRun(ctx, args)
		},
	}
	return cmd
}

// Report is the outcome of a run command.
type Report struct {
	Results []Result           `json:"results"`
	Memory  resource.Stats     `json:"memory"`
	Metrics map[string]float64 `json:"metrics"`
}

func runRun(ctx context.Context, names []string) error {
	if len(names) == 0 {
		names = workloadNames()
	}
	for _, name := range names {
		if _, ok := workloads[name]; !ok {
			return fmt.Errorf("unknown workload %q (want one of %s)", name, strings.Join(workloadNames(), ", "))
		}
	}

	collector := NewPrometheusCollector()
	e := env{
		n:       runN,
		seed:    runSeed,
		alloc:   newController(collector),
		logger:  newLogger(),
		metrics: collector,
	}

	if runMetricsAddr != "" {
		srv := &http.Server{
			Addr:              runMetricsAddr,
			Handler:           promhttp.HandlerFor(collector.Registry(), promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				e.logger.Error("metrics server failed", "addr", runMetricsAddr, "error", err)
			}
		}()
		defer srv.Close()
		printInfo("Serving metrics on %s/metrics\n", runMetricsAddr)
	}

	results, err := runWorkloads(ctx, e, collector, names, runParallel)
	if err != nil {
		return err
	}

	summary, err := collector.Summary()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	report := Report{Results: results, Memory: e.alloc.Stats(), Metrics: summary}

	if jsonOut {
		if err := printJSON(report); err != nil {
			return err
		}
	} else {
		printReport(report)
	}

	if runMetricsAddr != "" && runHold > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(runHold):
		}
	}
	return nil
}

// runWorkloads runs every named workload and returns results in name order.
// The first failure cancels the others.
func runWorkloads(ctx context.Context, e env, collector *PrometheusCollector, names []string, parallel int) ([]Result, error) {
	results := make([]Result, len(names))

	g, gctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i, name := range names {
		g.Go(func() error {
			start := time.Now()
			ops, check, err := workloads[name](gctx, e)
			elapsed := time.Since(start)
			collector.ObserveWorkload(name, elapsed.Seconds(), err)
			if err != nil {
				if seqkit.IsAllocFailure(err) {
					e.logger.Warn("workload exceeded the storage budget",
						"workload", name,
						"request_bytes", seqkit.AllocFailureBytes(err),
						"in_use", e.alloc.MemoryUsage(),
					)
				}
				return fmt.Errorf("workload %s: %w", name, err)
			}
			e.logger.Debug("workload finished", "workload", name, "ops", ops, "elapsed", elapsed)
			results[i] = Result{Workload: name, Ops: ops, Seconds: elapsed.Seconds(), Check: check}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b Result) int { return strings.Compare(a.Workload, b.Workload) })
	return results, nil
}

func printReport(r Report) {
	printInfo("%-10s %12s %10s %14s %22s\n", "WORKLOAD", "OPS", "SECONDS", "OPS/SEC", "CHECK")
	for _, res := range r.Results {
		rate := 0.0
		if res.Seconds > 0 {
			rate = float64(res.Ops) / res.Seconds
		}
		printInfo("%-10s %12d %10.3f %14.0f %22d\n", res.Workload, res.Ops, res.Seconds, rate, res.Check)
	}
	printInfo("\nmemory: %d acquisitions, %d releases, %d rejected, peak %d bytes, %d in use\n",
		r.Memory.Acquired, r.Memory.Released, r.Memory.Failed, r.Memory.PeakBytesUsed, r.Memory.BytesInUse)

	keys := make([]string, 0, len(r.Metrics))
	for k := range r.Metrics {
		if strings.HasPrefix(k, "seqkit_growth_total") {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		printInfo("%s %.0f\n", k, r.Metrics[k])
	}
}
