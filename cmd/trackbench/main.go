// Trackbench compares four ways of remembering which URLs were already seen: an
// exact set, a Bloom filter, a Cuckoo filter and a Count-Min Sketch. It inserts a
// stream of generated URLs in all of them up to the insertion cap, then measures
// their false positive rates on URLs that were never inserted, and prints a report
// to standard output.
//
// Diagnostic messages are written to stderr.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/kwertop/trackbench/harness"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
)

type options struct {
	configPath string
	preset     string
	cap        uint64
	trials     uint64
	seed       int64
	speed      int
	topK       int
	redisURI   string
	jsonOutput bool
	verbose    bool
	jsonLogs   bool
	profileDir string
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("trackbench", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.configPath, "config", "", "path to a JSON configuration file")
	fs.StringVar(&opts.preset, "preset", "", "size every structure with a preset. One of [high, balanced, low].")
	fs.Uint64Var(&opts.cap, "cap", 0, "number of URLs to insert (default from configuration)")
	fs.Uint64Var(&opts.trials, "trials", 0, "number of never inserted URLs to query (default from configuration)")
	fs.Int64Var(&opts.seed, "seed", 0, "seed of the URL generator and cuckoo relocations, 0 picks one from the clock")
	fs.IntVar(&opts.speed, "speed", 0, "insertion speed between 1 and 100, steps are (101 - speed) ms apart")
	fs.IntVar(&opts.topK, "topk", -1, "number of hottest URL sections to report, 0 disables")
	fs.StringVar(&opts.redisURI, "redis", "", "keep the exact set in redis at this URI instead of in memory")
	fs.BoolVar(&opts.jsonOutput, "json", false, "print the report as JSON")
	fs.BoolVar(&opts.verbose, "v", false, "log state changes and cuckoo failures")
	fs.BoolVar(&opts.jsonLogs, "json-logs", false, "log as JSON")
	fs.StringVar(&opts.profileDir, "profile", "", "write a CPU profile in this directory")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

// buildConfig layers the configuration file, the preset and the flags, in that order
func buildConfig(opts options) (harness.Config, error) {
	config := harness.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := harness.LoadConfig(opts.configPath)
		if err != nil {
			return config, err
		}
		config = loaded
	}
	if opts.preset != "" {
		level, err := harness.ParseLevel(opts.preset)
		if err != nil {
			return config, err
		}
		config.Bloom = harness.BloomPreset(level)
		config.Cuckoo = harness.CuckooPreset(level)
		config.CountMin = harness.CountMinPreset(level)
	}
	if opts.cap > 0 {
		config.InsertionCap = opts.cap
	}
	if opts.trials > 0 {
		config.TrialSize = opts.trials
	}
	if opts.seed != 0 {
		config.Seed = opts.seed
	} else if opts.configPath == "" {
		config.Seed = time.Now().UnixNano()
	}
	if opts.speed != 0 {
		config.Speed = opts.speed
	}
	if opts.topK >= 0 {
		config.TopK = uint(opts.topK)
	}
	if opts.redisURI != "" {
		config.RedisURI = opts.redisURI
	}
	return config, errors.Wrap(config.Validate(), "checking flags")
}

func newLogger(opts options) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if opts.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	if opts.jsonLogs {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logrus.NewEntry(logger)
}

// run inserts URLs up to the cap, runs a trial and writes the report to _out_
func run(ctx context.Context, config harness.Config, opts options, log *logrus.Entry, out io.Writer) error {
	h := harness.New(log)
	if err := h.Configure(config); err != nil {
		return errors.Wrap(err, "configuring harness")
	}
	defer func() {
		if err := h.Reset(); err != nil {
			log.WithError(err).Warn("can't release exact set")
		}
	}()
	if err := h.Start(); err != nil {
		return errors.Wrap(err, "starting harness")
	}

	started := time.Now()
	if err := harness.Drive(ctx, h, config.Interval()); err != nil {
		return errors.Wrapf(err, "inserting after %d URLs", h.Count())
	}
	log.WithFields(logrus.Fields{"count": h.Count(), "elapsed": time.Since(started)}).Info("insertion done")

	if _, err := h.RunTrial(); err != nil {
		return errors.Wrap(err, "running trial")
	}
	report := newReport(h.Config(), h.Snapshot())
	if opts.jsonOutput {
		return errors.Wrap(report.writeJSON(out), "writing report")
	}
	return errors.Wrap(report.writeText(out), "writing report")
}

func main() {
	os.Exit(realMain(os.Args[1:]))
}

// realMain returns the exit code once every deferred cleanup, the profile
// included, has run
func realMain(args []string) int {
	opts, err := parseFlags(args, flag.CommandLine.Output())
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	log := newLogger(opts)

	if opts.profileDir != "" {
		defer profile.Start(profile.ProfilePath(opts.profileDir), profile.Quiet).Stop()
	}

	config, err := buildConfig(opts)
	if err != nil {
		fmt.Fprintf(flag.CommandLine.Output(), "%s\n\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, config, opts, log, os.Stdout); err != nil {
		log.WithError(err).Error("trackbench failed")
		return 1
	}
	return 0
}
