package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/daviddao/vtplay/internal/catalog"
)

// errConfig marks failures that stop vtplay before the player starts.
var errConfig = errors.New("invalid configuration")

const (
	defaultTickRate = 100 // milliseconds
	defaultFPS      = 60.0
)

// options is the parsed command line.
type options struct {
	file     string
	tickRate time.Duration
	fps      float64
	dir      string
	logPath  string
	list     bool
	version  bool
}

// parseOptions parses args with environment fallbacks read through getenv.
// Flags take precedence over the environment.
func parseOptions(args []string, getenv func(string) string) (options, error) {
	tickDefault, err := envInt(getenv, "VTPLAY_TICK_RATE", defaultTickRate)
	if err != nil {
		return options{}, err
	}
	fpsDefault, err := envFloat(getenv, "VTPLAY_FPS", defaultFPS)
	if err != nil {
		return options{}, err
	}

	fs := flag.NewFlagSet("vtplay", flag.ContinueOnError)
	file := fs.String("file", getenv("VTPLAY_FILE"), "play a specific animation on startup")
	tickMs := fs.Int64("tick-rate", tickDefault, "terminal tick rate in milliseconds")
	fps := fs.Float64("fps", fpsDefault, "target frames per second")
	dir := fs.String("dir", getenv("VTPLAY_DIR"), "extra animation directory (default: auto-discover .vtplay)")
	logPath := fs.String("log", getenv("VTPLAY_LOG"), "write debug logs to this file")
	list := fs.Bool("list", false, "print the animation catalog and exit")
	version := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("%w: unexpected arguments %q", errConfig, fs.Args())
	}

	if *tickMs <= 0 {
		return options{}, fmt.Errorf("%w: tick rate must be greater than 0, got %d", errConfig, *tickMs)
	}
	if math.IsNaN(*fps) || math.IsInf(*fps, 0) || *fps <= 0 {
		return options{}, fmt.Errorf("%w: fps must be greater than 0, got %v", errConfig, *fps)
	}

	return options{
		file:     *file,
		tickRate: time.Duration(*tickMs) * time.Millisecond,
		fps:      *fps,
		dir:      *dir,
		logPath:  *logPath,
		list:     *list,
		version:  *version,
	}, nil
}

func envInt(getenv func(string) string, key string, def int64) (int64, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %v", errConfig, key, v, err)
	}
	return n, nil
}

func envFloat(getenv func(string) string, key string, def float64) (float64, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %v", errConfig, key, v, err)
	}
	return f, nil
}

// checkFile verifies that name is in the catalog. The error lists the valid
// names.
func checkFile(cat *catalog.Catalog, name string) error {
	if _, err := cat.Get(name); err != nil {
		return fmt.Errorf("%w: unknown animation %q (valid: %s)",
			errConfig, name, strings.Join(cat.Names(), ", "))
	}
	return nil
}
