package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit status follows the legacy sysexits split: bad invocation is
// distinct from bad debug information.
const (
	exitUsage = 2
	exitData  = 1
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(exitUsage)
	}

	var err error
	switch os.Args[1] {
	case "probe":
		err = cmdProbe(os.Args[2:])
	case "graph":
		err = cmdGraph(os.Args[2:])
	case "targets":
		err = cmdTargets(os.Args[2:])
	case "help", "-h", "--help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(exitUsage)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if isUsage(err) {
			os.Exit(exitUsage)
		}
		os.Exit(exitData)
	}
}

// usageError marks errors caused by bad invocation rather than bad
// data in the binary under inspection.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

func isUsage(err error) bool {
	var u usageError
	return errors.As(err, &u)
}

func usage() {
	fmt.Fprintf(os.Stderr, `structhole — struct layout probe for DWARF debug info

Usage:
  structhole probe   --bin <binary> [flags] <structname>   Report member offsets, holes, cache lines
  structhole graph   --bin <binary> [flags] <structname>   Emit DOT graph of aggregate composition
  structhole targets [--targets <file>]                    List target profiles

Probe flags:
  --cacheline N       cache-line size in bytes (default 64, or the target's)
  --target NAME       target profile; see 'structhole targets'
  --targets FILE      extra target profiles (YAML)
  --json              emit the report as JSON
  --color MODE        auto, always, never
  --log-level LEVEL   debug, info, warn, error

Exit status: 0 ok, 1 data error (bad or missing debug info), 2 usage error.
`)
}
