package layout

import "fmt"

// DefaultCacheLine is the cache-line size assumed when none is
// configured.
const DefaultCacheLine = 64

// Config carries per-analysis parameters. Analyze keeps no state
// between invocations; concurrent analyses are independent.
type Config struct {
	PointerSize   int // native pointer width in bytes (4 or 8)
	CacheLineSize int // target cache-line size in bytes
}

func (c Config) withDefaults() Config {
	if c.PointerSize == 0 {
		c.PointerSize = 8
	}
	if c.CacheLineSize == 0 {
		c.CacheLineSize = DefaultCacheLine
	}
	return c
}

// EntryKind discriminates positional report entries.
type EntryKind string

const (
	EntryMember   EntryKind = "member"
	EntryHole     EntryKind = "hole"
	EntryBoundary EntryKind = "cacheline"
)

// Hole is a padding gap between the end of the previous member (or the
// start of the aggregate) and the start of the current one.
type Hole struct {
	Bytes uint64 `json:"bytes"`
	After int    `json:"after"` // index of the preceding member, -1 at aggregate start
}

// CacheLineEvent marks the running offset crossing a cache-line
// boundary while a member was placed.
type CacheLineEvent struct {
	Line      int    `json:"line"`      // boundary index
	Offset    uint64 `json:"offset"`    // absolute byte offset of the boundary
	Overshoot uint64 `json:"overshoot"` // bytes the member extends past it
}

// Entry is one positional element of a report: a member line, a hole
// annotation, or a cache-line boundary annotation.
type Entry struct {
	Kind     EntryKind       `json:"kind"`
	Member   *Member         `json:"member,omitempty"`
	Hole     *Hole           `json:"hole,omitempty"`
	Boundary *CacheLineEvent `json:"boundary,omitempty"`
}

// Stats summarizes an analyzed aggregate. Size is the declared total
// size from the debug information; it is reported as-is and may exceed
// MemberBytes+HoleBytes when the compiler added trailing padding.
type Stats struct {
	Size        uint64 `json:"size"`
	CacheLines  int    `json:"cachelines"`
	Members     int    `json:"members"`
	MemberBytes uint64 `json:"member_bytes"`
	Holes       int    `json:"holes"`
	HoleBytes   uint64 `json:"hole_bytes"`
	LastLine    uint64 `json:"last_line_bytes"` // occupancy of the final partial cache line
}

// Report is the analyzed layout of one aggregate.
type Report struct {
	Aggregate     string  `json:"aggregate"`
	CacheLineSize int     `json:"cacheline_size"`
	Entries       []Entry `json:"entries"`
	Stats         Stats   `json:"stats"`
}

// Analyze walks the members of an aggregate-type node in declaration
// order and produces its layout report. The first error encountered
// aborts the analysis; there is no partial-report recovery.
func Analyze(t Tree, aggregate Node, cfg Config) (*Report, error) {
	cfg = cfg.withDefaults()
	aggName := nameOf(t, aggregate)

	declared, ok := t.Size(aggregate)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDeclaredSize, aggName)
	}

	rep := &Report{Aggregate: aggName, CacheLineSize: cfg.CacheLineSize}
	cls := uint64(cfg.CacheLineSize)

	var (
		running uint64 // offset just past the last placed member
		line    int    // current cache-line index
		idx     int    // declaration order of the next member
	)

	child, ok, err := t.FirstChild(aggregate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedTree, aggName, err)
	}
	for ok {
		// Aggregates may interleave nested type definitions with
		// their members; only member nodes participate in layout.
		if t.Kind(child) != KindMember {
			child, ok, err = t.NextSibling(child)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrMalformedTree, aggName, err)
			}
			continue
		}

		m, err := extractMember(t, child, cfg, idx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", aggName, err)
		}

		if m.Offset < running {
			return nil, fmt.Errorf("%w: %s.%s: offset %d precedes running offset %d",
				ErrMalformedTree, aggName, m.Name, m.Offset, running)
		}
		if m.Offset > running {
			h := Hole{Bytes: m.Offset - running, After: idx - 1}
			rep.Entries = append(rep.Entries, Entry{Kind: EntryHole, Hole: &h})
			rep.Stats.Holes++
			rep.Stats.HoleBytes += h.Bytes
		}

		mm := m
		rep.Entries = append(rep.Entries, Entry{Kind: EntryMember, Member: &mm})
		rep.Stats.Members++
		rep.Stats.MemberBytes += m.Size

		running = m.Offset + m.Size
		if newLine := int(running / cls); newLine > line {
			line = newLine
			ev := CacheLineEvent{
				Line:      line,
				Offset:    uint64(line) * cls,
				Overshoot: running % cls,
			}
			rep.Entries = append(rep.Entries, Entry{Kind: EntryBoundary, Boundary: &ev})
		}

		idx++
		child, ok, err = t.NextSibling(child)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedTree, aggName, err)
		}
	}

	rep.Stats.Size = declared
	rep.Stats.CacheLines = line + 1
	rep.Stats.LastLine = running % cls
	return rep, nil
}
