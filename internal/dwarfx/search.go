package dwarfx

import (
	"debug/dwarf"
	"fmt"

	"github.com/rs/zerolog"

	"structhole/internal/layout"
)

// Finder locates named aggregates across the compilation units of a
// DWARF section. Units are loaded one at a time; the scan stops at the
// first match.
type Finder struct {
	data *dwarf.Data
	log  zerolog.Logger
}

// NewFinder returns a Finder over d, logging scan progress to log.
func NewFinder(d *dwarf.Data, log zerolog.Logger) *Finder {
	return &Finder{data: d, log: log}
}

// FindAggregate scans compilation units in order and returns the store
// and node handle of the first struct/class/interface DIE that is
// named name and has children (declaration-only DIEs are skipped).
// Empty compilation units are tolerated.
func (f *Finder) FindAggregate(name string) (*Store, layout.Node, error) {
	r := f.data.Reader()
	for {
		cu, err := r.Next()
		if err != nil {
			return nil, 0, fmt.Errorf("dwarfx: next compilation unit: %w", err)
		}
		if cu == nil {
			break
		}
		if cu.Tag != dwarf.TagCompileUnit {
			r.SkipChildren()
			continue
		}

		st, err := LoadCU(f.data, cu)
		if err != nil {
			return nil, 0, err
		}
		f.log.Debug().Str("cu", st.cuName).Int("dies", st.Len()).Msg("scanned compilation unit")

		if n, ok := st.find(name); ok {
			f.log.Info().Str("cu", st.cuName).Str("aggregate", name).Msg("aggregate found")
			return st, n, nil
		}
		r.SkipChildren()
	}
	return nil, 0, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// find returns the first aggregate DIE named name that has children.
func (st *Store) find(name string) (layout.Node, bool) {
	for i := range st.nodes {
		nd := &st.nodes[i]
		switch nd.tag {
		case dwarf.TagStructType, dwarf.TagClassType, dwarf.TagInterfaceType:
			if nd.hasName && nd.name == name && nd.child != none {
				return layout.Node(i), true
			}
		}
	}
	return 0, false
}
