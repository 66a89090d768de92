package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/zboralski/lattice/render"

	"structhole/internal/dwarfx"
	"structhole/internal/elfx"
	"structhole/internal/logging"
	"structhole/internal/typegraph"
)

func cmdGraph(args []string) error {
	fs := flag.NewFlagSet("graph", flag.ExitOnError)
	bin := fs.String("bin", "", "path to ELF binary with DWARF debug info")
	out := fs.String("out", "", "write DOT to file (default stdout)")
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

	ef, err := elfx.Open(*bin)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
			return usagef("%v", err)
		}
		return err
	}
	defer ef.Close()

	dw, err := ef.DWARF()
	if err != nil {
		return err
	}

	st, node, err := dwarfx.NewFinder(dw, log).FindAggregate(name)
	if err != nil {
		return err
	}

	g := typegraph.Build(st, node)
	log.Info().Int("nodes", len(g.Nodes)).Int("edges", len(g.Edges)).Msg("composition graph built")

	dot := render.DOT(g, name)
	if *out == "" {
		fmt.Print(dot)
		return nil
	}
	if err := os.WriteFile(*out, []byte(dot), 0644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	return nil
}
