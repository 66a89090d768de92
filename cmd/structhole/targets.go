package main

import (
	"flag"
	"fmt"

	"structhole/internal/config"
)

func cmdTargets(args []string) error {
	fs := flag.NewFlagSet("targets", flag.ExitOnError)
	targetsFile := fs.String("targets", "", "extra target profiles (YAML)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return usagef("targets takes no arguments")
	}

	targets := config.Builtin()
	if *targetsFile != "" {
		var err error
		targets, err = config.Load(*targetsFile)
		if err != nil {
			return err
		}
	}

	for _, t := range targets {
		ptr := "binary"
		if t.Pointer != 0 {
			ptr = fmt.Sprintf("%d", t.Pointer)
		}
		fmt.Printf("%-10s cacheline=%-4d pointer=%s\n", t.Name, t.CacheLine, ptr)
	}
	return nil
}
