// Package render formats layout reports for terminal output in the
// classic pahole-style C spelling.
package render

import (
	"fmt"
	"strings"

	"structhole/internal/layout"
)

// Text renders a report as annotated C struct text. Formatting only:
// every decision about holes and boundaries was made by the analyzer.
func Text(rep *layout.Report, th Theme) string {
	var b strings.Builder
	b.WriteString(th.Header.Render(fmt.Sprintf("struct %s {", rep.Aggregate)))
	b.WriteByte('\n')

	for _, e := range rep.Entries {
		switch e.Kind {
		case layout.EntryHole:
			b.WriteByte('\n')
			b.WriteString(th.Hole.Render(fmt.Sprintf("\t/* XXX %d bytes hole, try to pack */", e.Hole.Bytes)))
			b.WriteString("\n\n")
		case layout.EntryBoundary:
			b.WriteString(th.Boundary.Render(boundaryLine(e.Boundary)))
			b.WriteByte('\n')
		case layout.EntryMember:
			m := e.Member
			line := fmt.Sprintf("\t%-27s%-21s /* %5d %5d */",
				m.Type.String(), m.Name+";", m.Offset, m.Size)
			b.WriteString(th.Member.Render(line))
			b.WriteByte('\n')
		}
	}

	s := rep.Stats
	b.WriteByte('\n')
	b.WriteString(th.Trailer.Render(fmt.Sprintf("\t/* size: %d, cachelines: %d, members: %d */",
		s.Size, s.CacheLines, s.Members)))
	b.WriteByte('\n')
	b.WriteString(th.Trailer.Render(fmt.Sprintf("\t/* sum members: %d, holes: %d, sum holes: %d */",
		s.MemberBytes, s.Holes, s.HoleBytes)))
	b.WriteByte('\n')
	b.WriteString(th.Trailer.Render(fmt.Sprintf("\t/* last cacheline: %d bytes */", s.LastLine)))
	b.WriteByte('\n')
	b.WriteString("};\n")
	return b.String()
}

func boundaryLine(ev *layout.CacheLineEvent) string {
	if ev.Overshoot != 0 {
		return fmt.Sprintf("\t/* --- cacheline %d boundary (%d bytes) was %d bytes ago --- */",
			ev.Line, ev.Offset, ev.Overshoot)
	}
	return fmt.Sprintf("\t/* --- cacheline %d boundary (%d bytes) --- */", ev.Line, ev.Offset)
}
