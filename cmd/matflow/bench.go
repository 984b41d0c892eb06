package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/vnykmshr/matflow/internal/bench"
	"github.com/vnykmshr/matflow/pkg/metrics"
)

func newBenchCmd(opts *options) *cobra.Command {
	var (
		schedule    string
		runs        int
		seed        uint64
		configPath  string
		metricsAddr string
	)

	defaults := bench.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "bench [<r1> <c1> <r2> <c2> <threads>]",
		Short: "Repeatedly multiply random matrices on a cron schedule",
		Long: "Repeatedly multiply random matrices on a cron schedule.\n\n" +
			"Shapes and threads come from the positional arguments, a --config file, or both;\n" +
			"arguments and explicitly set flags take precedence over the file.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && configPath != "" {
				return nil
			}
			return cobra.ExactArgs(5)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			config := bench.DefaultConfig()
			if configPath != "" {
				fc, err := bench.LoadFile(configPath)
				if err != nil {
					return err
				}
				fc.Apply(&config)
			}
			if len(args) == 5 {
				v, err := parseInts(shapeArgs, args)
				if err != nil {
					return err
				}
				config.Dimensions = bench.Dimensions{LeftRows: v[0], LeftCols: v[1], RightRows: v[2], RightCols: v[3]}
				config.ThreadCount = v[4]
			}

			flags := cmd.Flags()
			if flags.Changed("schedule") {
				config.Schedule = schedule
			}
			if flags.Changed("runs") {
				config.Runs = runs
			}
			if flags.Changed("seed") {
				config.Seed = seed
			}
			config.Logger = cron.PrintfLogger(log.Default())
			if err := config.Validate(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			config.OnRun = func(r bench.RunResult) {
				if r.Err != nil {
					fmt.Fprintf(out, "run %d failed: %v\n", r.Run, r.Err)
					return
				}
				if opts.timings {
					fmt.Fprintf(out, "run %d:\n", r.Run)
					r.Report.WriteTo(out)
					return
				}
				fmt.Fprintf(out, "run %d: wall-clock %v, sum of task durations %v\n",
					r.Run, r.Report.WallClock, r.Report.SumOfTasks)
			}

			if metricsAddr != "" {
				stop, err := serveMetrics(metricsAddr, &config)
				if err != nil {
					return err
				}
				defer stop()
			}

			summary, runErr := bench.Run(cmd.Context(), config)
			if summary != nil {
				if _, err := summary.WriteTo(out); err != nil && runErr == nil {
					runErr = err
				}
			}
			return runErr
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&schedule, "schedule", defaults.Schedule, "cron expression or descriptor for run activations")
	flags.IntVar(&runs, "runs", defaults.Runs, "number of runs before stopping")
	flags.Uint64Var(&seed, "seed", defaults.Seed, "random seed for the operands")
	flags.StringVarP(&configPath, "config", "c", "", "YAML file describing the session")
	flags.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	return cmd
}

// serveMetrics exposes a dedicated registry over HTTP and points config at it.
// The returned function shuts the server down.
func serveMetrics(addr string, config *bench.Config) (func(), error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	config.Metrics = metrics.Config{
		Enabled:   true,
		Registry:  reg,
		Namespace: metrics.DefaultNamespace,
	}.Build()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("metrics server: %v", err)
		}
	}()
	log.Printf("serving metrics on http://%s/metrics", ln.Addr())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}, nil
}
