// vtplay plays recorded terminal animations inside the terminal.
//
// It lists the bundled animations (plus any found in a user directory), and
// replays the selected one frame by frame through a virtual terminal at a
// fixed frame rate, independent of how fast the terminal can draw.
//
// Usage:
//
//	vtplay                          # Browse the catalog
//	vtplay --file bounce.vt         # Start playing an animation immediately
//	vtplay --fps 30 --tick-rate 16  # Target rate and UI tick interval (ms)
//	vtplay --dir ./recordings       # Merge (and watch) an animation directory
//	vtplay --list                   # Print the catalog and exit
//	vtplay --log /tmp/vtplay.log    # Write debug logs to a file
//	vtplay --version                # Print version and exit
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/daviddao/vtplay/internal/catalog"
	"github.com/daviddao/vtplay/internal/event"
	"github.com/daviddao/vtplay/internal/pacer"
)

// Version is set via ldflags at build time (e.g. -X main.Version=v0.1.0).
var Version = "dev"

func main() {
	opts, err := parseOptions(os.Args[1:], os.Getenv)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "vtplay: %v\n", err)
		os.Exit(1)
	}

	if opts.version {
		fmt.Printf("vtplay %s\n", Version)
		os.Exit(0)
	}

	logFile, err := setupLogging(opts.logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vtplay: log: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	cat, dir, err := catalog.Open(opts.dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vtplay: %v: %v\n", errConfig, err)
		os.Exit(1)
	}

	// --list mode: print the catalog and exit.
	if opts.list {
		printCatalog(os.Stdout, cat)
		os.Exit(0)
	}

	if opts.file != "" {
		if err := checkFile(cat, opts.file); err != nil {
			fmt.Fprintf(os.Stderr, "vtplay: %v\n", err)
			os.Exit(1)
		}
	}

	pc, err := pacer.New(opts.fps, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "vtplay: %v: %v\n", errConfig, err)
		os.Exit(1)
	}

	if err := run(opts, cat, dir, pc); err != nil {
		fmt.Fprintf(os.Stderr, "vtplay: %v\n", err)
		os.Exit(1)
	}
}

// run owns the terminal for the lifetime of the player.
func run(opts options, cat *catalog.Catalog, dir string, pc *pacer.Pacer) error {
	src, err := event.NewTerminalSource(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	defer src.Close()

	width, height := src.Size()
	m := newModel(cat, pc, width, height)
	if opts.file != "" {
		m.play(opts.file)
	}

	// Input is read by the event bus, not by bubbletea.
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(nil))

	bus := event.NewBus(src, opts.tickRate)
	defer bus.Close()
	go pump(bus, p)

	if dir != "" {
		w, err := catalog.NewWatcher(dir)
		if err != nil {
			slog.Warn("watch animation dir", "dir", dir, "err", err)
		} else {
			defer w.Close()
			// Feed directory changes into the TUI.
			go func() {
				for range w.Changes() {
					p.Send(catalogChangedMsg{})
				}
			}()
		}
	}

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(uiModel); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

// pump moves bus events into the program one at a time, in order. A closed
// bus is reported once and ends the pump.
func pump(bus *event.Bus, p *tea.Program) {
	for {
		ev, err := bus.Next()
		if err != nil {
			p.Send(busClosedMsg{err: err})
			return
		}
		p.Send(busEventMsg{ev: ev})
	}
}

// setupLogging sends log and slog output to path, or discards it when path is
// empty so nothing is written over the alternate screen.
func setupLogging(path string) (io.Closer, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	f, err := tea.LogToFile(path, "vtplay")
	if err != nil {
		return nil, err
	}
	slog.SetLogLoggerLevel(slog.LevelDebug)
	return f, nil
}

func printCatalog(w io.Writer, cat *catalog.Catalog) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, name := range cat.Names() {
		fmt.Fprintf(tw, "%s\t%s\n", name, cat.Describe(name))
	}
	tw.Flush()
}
