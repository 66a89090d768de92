package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"structhole/internal/config"
	"structhole/internal/dwarfx"
	"structhole/internal/elfx"
	"structhole/internal/layout"
	"structhole/internal/logging"
	"structhole/internal/render"
)

func cmdProbe(args []string) error {
	fs := flag.NewFlagSet("probe", flag.ExitOnError)
	bin := fs.String("bin", "", "path to ELF binary with DWARF debug info")
	cacheline := fs.Int("cacheline", 0, "cache-line size in bytes (overrides target)")
	target := fs.String("target", "", "target profile name")
	targetsFile := fs.String("targets", "", "extra target profiles (YAML)")
	jsonOut := fs.Bool("json", false, "output report as JSON")
	color := fs.String("color", "auto", "colorize output: auto, always, never")
	logLevel := fs.String("log-level", "warn", "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *bin == "" {
		return usagef("--bin is required")
	}
	if fs.NArg() != 1 {
		return usagef("exactly one struct name is required")
	}
	name := fs.Arg(0)

	log := logging.New(os.Stderr, *logLevel)

	cfg, err := probeConfig(*target, *targetsFile, *cacheline)
	if err != nil {
		return err
	}

	ef, err := elfx.Open(*bin)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
			return usagef("%v", err)
		}
		return err
	}
	defer ef.Close()

	if cfg.PointerSize == 0 {
		cfg.PointerSize, err = ef.PointerSize()
		if err != nil {
			return err
		}
	}
	log.Info().
		Str("bin", *bin).
		Int("pointer", cfg.PointerSize).
		Int("cacheline", cfg.CacheLineSize).
		Msg("probing")

	dw, err := ef.DWARF()
	if err != nil {
		return err
	}

	st, node, err := dwarfx.NewFinder(dw, log).FindAggregate(name)
	if err != nil {
		return err
	}

	rep, err := layout.Analyze(st, node, cfg)
	if err != nil {
		return err
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	th := render.Plain()
	switch *color {
	case "never":
	case "auto", "always":
		th = render.Default()
	default:
		return usagef("bad --color mode %q", *color)
	}
	fmt.Print(render.Text(rep, th))
	return nil
}

// probeConfig resolves the analysis parameters from target profiles
// and flag overrides. PointerSize stays 0 when the binary should
// supply it.
func probeConfig(target, targetsFile string, cacheline int) (layout.Config, error) {
	cfg := layout.Config{CacheLineSize: layout.DefaultCacheLine}

	targets := config.Builtin()
	if targetsFile != "" {
		var err error
		targets, err = config.Load(targetsFile)
		if err != nil {
			return cfg, err
		}
	}
	if target != "" {
		t, ok := config.Find(targets, target)
		if !ok {
			return cfg, usagef("unknown target %q", target)
		}
		cfg.CacheLineSize = t.CacheLine
		cfg.PointerSize = t.Pointer
	}
	if cacheline != 0 {
		cfg.CacheLineSize = cacheline
	}
	if cfg.CacheLineSize <= 0 {
		return cfg, usagef("cache-line size must be positive")
	}
	return cfg, nil
}
