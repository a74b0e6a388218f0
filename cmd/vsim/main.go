// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command vsim runs the demonstration counter design under either timing
// discipline and writes its waveform to waveform.vcd.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/profile"

	"github.com/db47h/vsim"
	"github.com/db47h/vsim/internal/config"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		flag.PrintDefaults()
	}
	maxTime := flag.Uint64("t", 0, "stop after `n` time steps (0 uses the configured ceiling)")
	event := flag.Bool("event", false, "use the event-driven timing discipline")
	tracePath := flag.String("trace", "waveform.vcd", "waveform output `path`")
	depth := flag.Int("depth", 0, "trace hierarchy `depth` (0 uses the configured depth)")
	noTrace := flag.Bool("notrace", false, "disable waveform capture")
	unit := flag.Bool("unit", false, "run the self-contained unit test sequence and exit")
	cfgPath := flag.String("config", "", "load run configuration from HCL `file`")
	cpuprofile := flag.Bool("cpuprofile", false, "write a CPU profile to the current directory")
	flag.Parse()

	if *cpuprofile {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			fatal(err)
		}
	}
	if *maxTime > 0 {
		cfg.MaxTime = *maxTime
	}
	if *event {
		cfg.Mode = "event"
	}
	if *depth > 0 {
		cfg.Depth = *depth
	}
	if *noTrace {
		cfg.Trace = false
	}

	ctx := vsim.NewContext()

	if *unit {
		fmt.Println("starting unit test simulation...")
		if err := vsim.RunSelfTest(ctx, newSelfTest(ctx)); err != nil {
			fatal(err)
		}
		return
	}

	var strategy vsim.Strategy
	eventMode := cfg.Mode == "event"
	if eventMode {
		strategy = vsim.EventDriven{}
	} else {
		strategy = &vsim.FixedTick{Ceiling: cfg.MaxTime}
	}

	m := newCounter(ctx, eventMode)
	d := vsim.New(ctx, m, strategy)
	if cfg.Trace {
		if err := d.Trace(vsim.NewWaveform(cfg.Depth), *tracePath); err != nil {
			fatal(err)
		}
	}
	if err := d.Run(); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
