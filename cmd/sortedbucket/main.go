package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"

	"github.com/hupe1980/sortedbucket"
	"github.com/hupe1980/sortedbucket/testutil"
)

func main() {
	app := cli.App{
		Name:  "sortedbucket",
		Usage: "drive the sorted multiset engines from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log verbosity level (eg: warn, info, debug)",
				Value:   "info",
				EnvVars: []string{"SORTEDBUCKET_LOG_LEVEL", "LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "emit logs as JSON instead of text",
			},
		},
	}
	app.Commands = []*cli.Command{
		&cli.Command{
			Name:   "bench",
			Usage:  "run timed insert/rank/erase loops over seeded random keys",
			Action: runBench,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "engine",
					Usage: "engine to drive (tree, array or list)",
					Value: "tree",
				},
				&cli.IntFlag{
					Name:  "size",
					Usage: "number of elements to preload",
					Value: 100_000,
				},
				&cli.IntFlag{
					Name:  "ops",
					Usage: "number of operations per timed phase",
					Value: 50_000,
				},
				&cli.IntFlag{
					Name:  "density",
					Usage: "bucket density override for the bucket engines (0 derives it from size)",
				},
				&cli.Int64Flag{
					Name:  "seed",
					Usage: "workload seed",
					Value: 42,
				},
				&cli.Float64Flag{
					Name:  "rate",
					Usage: "cap operations per second (0 means unlimited)",
				},
			},
		},
		&cli.Command{
			Name:   "demo",
			Usage:  "scripted walkthrough printing container dumps across all engines",
			Action: runDemo,
		},
	}
	app.RunAndExitOnError()
}

func configLogger(cctx *cli.Context, writer io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cctx.String("log-level")) {
	case "error":
		level = slog.LevelError
	case "warn":
		level = slog.LevelWarn
	case "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	if cctx.Bool("json") {
		handler = slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func buildMultiset(engine string, size, density int, logger *sortedbucket.Logger, metrics sortedbucket.MetricsCollector) (*sortedbucket.Multiset[int], error) {
	switch strings.ToLower(engine) {
	case "tree":
		return sortedbucket.TreeOrdered[int]().
			Capacity(size).
			Logger(logger).
			Metrics(metrics).
			Build()
	case "array":
		b := sortedbucket.ArrayOrdered[int]().
			Capacity(size).
			Logger(logger).
			Metrics(metrics)
		if density > 0 {
			b = b.Density(density)
		}
		return b.Build()
	case "list":
		b := sortedbucket.ListOrdered[int]().
			Capacity(size).
			Logger(logger).
			Metrics(metrics)
		if density > 0 {
			b = b.Density(density)
		}
		return b.Build()
	default:
		return nil, fmt.Errorf("unknown engine %q (want tree, array or list)", engine)
	}
}

func runBench(cctx *cli.Context) error {
	logger := configLogger(cctx, os.Stderr)

	var (
		engine  = cctx.String("engine")
		size    = cctx.Int("size")
		ops     = cctx.Int("ops")
		density = cctx.Int("density")
		seed    = cctx.Int64("seed")
	)

	var limiter *rate.Limiter
	if r := cctx.Float64("rate"); r > 0 {
		limiter = rate.NewLimiter(rate.Limit(r), 1)
	}
	throttle := func() {
		if limiter != nil {
			_ = limiter.Wait(cctx.Context)
		}
	}

	metrics := &sortedbucket.BasicMetricsCollector{}
	ms, err := buildMultiset(engine, size, density, sortedbucket.NoopLogger(), metrics)
	if err != nil {
		return err
	}

	logger.Info("bench starting",
		"engine", ms.Kind().String(),
		"size", size,
		"ops", ops,
		"seed", seed,
		"rate", cctx.Float64("rate"),
	)

	rng := testutil.NewRNG(seed)
	keys := rng.UniformKeys(size, size/2)

	phase := func(name string, n int, fn func(i int)) {
		start := time.Now()
		for i := 0; i < n; i++ {
			throttle()
			fn(i)
		}
		elapsed := time.Since(start)
		logger.Info("phase done",
			"phase", name,
			"ops", n,
			"elapsed", elapsed.Round(time.Millisecond).String(),
			"ns/op", elapsed.Nanoseconds()/int64(max(n, 1)),
		)
	}

	phase("insert", size, func(i int) {
		ms.Insert(keys[i])
	})
	phase("rank", ops, func(i int) {
		ms.Rank(keys[i%len(keys)])
	})
	phase("contains", ops, func(i int) {
		ms.Contains(keys[i%len(keys)])
	})
	phase("erase+insert", ops, func(i int) {
		k := keys[i%len(keys)]
		ms.Erase(k)
		ms.Insert(k)
	})

	if err := ms.Validate(); err != nil {
		return fmt.Errorf("post-bench validation: %w", err)
	}

	stats := metrics.GetStats()
	logger.Info("bench finished",
		"len", ms.Len(),
		"inserts", stats.InsertCount,
		"insert-avg-ns", stats.InsertAvgNanos,
		"erases", stats.EraseCount,
		"erase-avg-ns", stats.EraseAvgNanos,
		"queries", stats.QueryCount,
		"query-avg-ns", stats.QueryAvgNanos,
	)
	return nil
}

func runDemo(cctx *cli.Context) error {
	configLogger(cctx, os.Stderr)

	for _, engine := range []string{"tree", "array", "list"} {
		ms, err := buildMultiset(engine, 0, 3, sortedbucket.NoopLogger(), nil)
		if err != nil {
			return err
		}

		fmt.Printf("=== %s ===\n\n", ms.Kind())

		// Twenty even numbers
		for k := 0; k <= 38; k += 2 {
			ms.Insert(k)
		}
		fmt.Printf("after inserting evens 0..38: %s\n", ms)
		if err := dumpAndValidate(ms); err != nil {
			return err
		}

		// Erase four from the middle to trigger merges
		for _, k := range []int{24, 26, 28, 14} {
			ms.Erase(k)
		}
		fmt.Printf("after erasing 24, 26, 28, 14: %s\n", ms)
		if err := dumpAndValidate(ms); err != nil {
			return err
		}

		// Duplicates
		ms.InsertN(7, 3)
		fmt.Printf("after inserting three 7s: %s\n", ms)
		if err := dumpAndValidate(ms); err != nil {
			return err
		}

		for _, k := range []int{0, 2, 7, 30, 99} {
			fmt.Printf("rank(%d) = %d\n", k, ms.Rank(k))
		}
		fmt.Println()
	}

	return wordsDemo()
}

// wordsDemo orders dictionary words by length then spelling, showing a
// custom comparison function at work.
func wordsDemo() error {
	words := testutil.Words(4711, 40)

	ms, err := sortedbucket.List[string](func(a, b string) bool {
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	}).Density(8).Build()
	if err != nil {
		return err
	}

	for _, w := range words {
		ms.Insert(w)
	}

	fmt.Printf("=== words by length ===\n\n")
	fmt.Printf("%d words inserted, %d stored\n", len(words), ms.Len())

	shortest, _ := ms.Min()
	longest, _ := ms.Max()
	fmt.Printf("shortest: %q, longest: %q\n", shortest, longest)

	if err := ms.Dump(os.Stdout); err != nil {
		return err
	}
	return ms.Validate()
}

func dumpAndValidate(ms *sortedbucket.Multiset[int]) error {
	if err := ms.Dump(os.Stdout); err != nil {
		return err
	}
	fmt.Println()
	return ms.Validate()
}
