package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // intentional profiling endpoint
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"time"

	"github.com/felixge/fgprof"

	"github.com/meigma/includes"
	"github.com/meigma/includes/internal/testutil"
)

type config struct {
	mode            string
	size            int
	queries         int
	target          string
	from            int
	compression     string
	workers         int
	dataURL         string
	dataHTTPLatency time.Duration
	dataHTTPBPS     int64
	fgProfile       string
	duration        time.Duration
	iterations      int
	pprofAddr       string
	cpuProfile      string
	memProfile      string
	traceFile       string
	randomSeed      int64
}

//nolint:unused // sink variables prevent compiler optimizations in profiling
var (
	sinkFound   bool
	sinkResults []includes.Result
)

//nolint:gocognit // main function complexity is acceptable for CLI tool
func main() {
	cfg := parseFlags()

	if cfg.pprofAddr != "" {
		go func() {
			log.Printf("pprof listening on %s", cfg.pprofAddr)
			//nolint:gosec // intentional pprof server without timeouts for profiling
			if err := http.ListenAndServe(cfg.pprofAddr, nil); err != nil {
				log.Printf("pprof server error: %v", err)
			}
		}()
	}

	if cfg.fgProfile != "" {
		fgFile, err := os.Create(cfg.fgProfile)
		if err != nil {
			log.Fatal(err)
		}
		stopFG := fgprof.Start(fgFile, fgprof.FormatPprof)
		defer func() {
			if err := stopFG(); err != nil {
				log.Printf("fgprof stop error: %v", err)
			}
			_ = fgFile.Close()
		}()
	}

	if cfg.cpuProfile != "" {
		cpuFile, err := os.Create(cfg.cpuProfile)
		if err != nil {
			log.Fatal(err) //nolint:gocritic // exitAfterDefer is acceptable in profiler
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatal(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = cpuFile.Close()
		}()
	}

	if cfg.traceFile != "" {
		traceFile, err := os.Create(cfg.traceFile)
		if err != nil {
			log.Fatal(err)
		}
		if err := trace.Start(traceFile); err != nil {
			log.Fatal(err)
		}
		defer func() {
			trace.Stop()
			_ = traceFile.Close()
		}()
	}

	stats, err := runProfile(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile != "" {
		runtime.GC()
		f, err := os.Create(cfg.memProfile)
		if err != nil {
			log.Fatal(err)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal(err)
		}
		_ = f.Close()
	}

	fmt.Printf("mode=%s ops=%d elements=%d elapsed=%s throughput=%.2f Melem/s\n",
		cfg.mode,
		stats.ops,
		stats.elements,
		stats.elapsed,
		float64(stats.elements)/1e6/stats.elapsed.Seconds(),
	)
}

type profileStats struct {
	ops      int
	elements int64
	elapsed  time.Duration
}

//nolint:gocognit,gocyclo,gocritic // complexity is inherent to multi-mode profiler dispatch; hugeParam acceptable for profiler
func runProfile(ctx context.Context, cfg config) (profileStats, error) {
	seq, needle := testutil.Floats(cfg.size, cfg.randomSeed, testutil.Target(cfg.target))
	scanned := int64(len(seq) - includes.Start(len(seq), cfg.from))

	finder, err := includes.NewFinder()
	if err != nil {
		return profileStats{}, err
	}

	start := time.Now()
	ops := 0
	var elements int64

	shouldContinue := func() bool {
		if cfg.iterations > 0 {
			return ops < cfg.iterations
		}
		return time.Since(start) < cfg.duration
	}

	switch cfg.mode {
	case "generic":
		for shouldContinue() {
			sinkFound = includes.ContainsFrom(seq, needle, cfg.from)
			elements += scanned
			ops++
		}

	case "sequence":
		s := includes.Slice[float64](seq)
		for shouldContinue() {
			found, err := includes.ContainsSeq(s, needle, cfg.from)
			if err != nil {
				return profileStats{}, err
			}
			sinkFound = found
			elements += scanned
			ops++
		}

	case "dynamic":
		receiver := testutil.Anys(seq)
		for shouldContinue() {
			found, err := finder.Includes(receiver, needle, cfg.from)
			if err != nil {
				return profileStats{}, err
			}
			sinkFound = found
			elements += scanned
			ops++
		}

	case "batch":
		queries := make([]includes.Query, cfg.queries)
		receiver := testutil.Anys(seq)
		for i := range queries {
			queries[i] = includes.Query{ID: fmt.Sprint(i), Sequence: receiver, Target: needle, FromIndex: cfg.from}
		}
		opts := []includes.EvaluateOption{includes.EvaluateWithWorkers(cfg.workers)}
		for shouldContinue() {
			results, err := includes.Evaluate(ctx, finder, queries, opts...)
			if err != nil {
				return profileStats{}, err
			}
			sinkResults = results
			elements += scanned * int64(len(queries))
			ops++
		}

	case "load", "fetch":
		doc, err := buildDocument(cfg)
		if err != nil {
			return profileStats{}, err
		}
		perDoc := int64(cfg.queries) * int64(cfg.size+1)
		opts := []includes.EvaluateOption{includes.EvaluateWithWorkers(cfg.workers)}

		load := func() (*includes.Document, error) {
			return includes.Load(bytes.NewReader(doc))
		}
		if cfg.mode == "fetch" {
			source, cleanup := newDocumentSource(cfg, doc)
			defer cleanup()
			load = func() (*includes.Document, error) {
				body, err := source.Fetch(ctx)
				if err != nil {
					return nil, err
				}
				return includes.Load(bytes.NewReader(body))
			}
		}

		start = time.Now()
		for shouldContinue() {
			loaded, err := load()
			if err != nil {
				return profileStats{}, err
			}
			results, err := includes.Evaluate(ctx, finder, loaded.Queries, opts...)
			if err != nil {
				return profileStats{}, err
			}
			sinkResults = results
			elements += perDoc
			ops++
		}

	default:
		return profileStats{}, fmt.Errorf("unknown mode: %s", cfg.mode)
	}

	return profileStats{
		ops:      ops,
		elements: elements,
		elapsed:  time.Since(start),
	}, nil
}

//nolint:gocritic // hugeParam acceptable for config struct in CLI tool
func buildDocument(cfg config) ([]byte, error) {
	doc, err := testutil.Document(cfg.queries, cfg.size, cfg.randomSeed)
	if err != nil {
		return nil, err
	}
	switch cfg.compression {
	case "none":
		return doc, nil
	case "zstd":
		return testutil.Compress(doc)
	default:
		return nil, errors.New("compression must be none or zstd")
	}
}

func parseFlags() config {
	var cfg config
	var dataHTTPBPS string
	flag.StringVar(&cfg.mode, "mode", "generic", "mode: generic, sequence, dynamic, batch, load, fetch")
	flag.IntVar(&cfg.size, "size", 1<<16, "sequence length")
	flag.IntVar(&cfg.queries, "queries", 64, "queries per batch or document")
	flag.StringVar(&cfg.target, "target", "last", "target position: first, last, miss, nan")
	flag.IntVar(&cfg.from, "from", 0, "start offset")
	flag.StringVar(&cfg.compression, "compression", "zstd", "document compression for load and fetch: none or zstd")
	flag.IntVar(&cfg.workers, "workers", 0, "evaluation workers: <0 serial, 0 auto, >0 fixed")
	flag.StringVar(&cfg.dataURL, "data-url", "local", "document URL for fetch mode (\"local\" serves the generated document)")
	flag.DurationVar(&cfg.dataHTTPLatency, "data-http-latency", 0, "per-request latency for fetch mode")
	flag.StringVar(&dataHTTPBPS, "data-http-bps", "", "bytes/sec throttle for fetch mode (e.g. 10MBps)")
	flag.StringVar(&cfg.fgProfile, "fgprofile", "", "write fgprof (wall clock) profile to file")
	flag.DurationVar(&cfg.duration, "duration", 10*time.Second, "duration to run (ignored if iterations > 0)")
	flag.IntVar(&cfg.iterations, "iterations", 0, "number of iterations to run")
	flag.StringVar(&cfg.pprofAddr, "pprof-addr", "", "pprof listen address (e.g. :6060)")
	flag.StringVar(&cfg.cpuProfile, "cpuprofile", "", "write CPU profile to file")
	flag.StringVar(&cfg.memProfile, "memprofile", "", "write heap profile to file")
	flag.StringVar(&cfg.traceFile, "trace", "", "write trace to file")
	flag.Int64Var(&cfg.randomSeed, "seed", 1, "random seed")
	flag.Parse()
	if dataHTTPBPS != "" {
		bps, err := parseBytesPerSecond(dataHTTPBPS)
		if err != nil {
			log.Fatalf("data-http-bps: %v", err)
		}
		cfg.dataHTTPBPS = bps
	}
	return cfg
}
