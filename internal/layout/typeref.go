package layout

import "strings"

// AnonymousName substitutes for nodes carrying no name attribute
// (anonymous structs, unions, enums, and untyped pointees).
const AnonymousName = "<anonymous>"

// TypeTag classifies the innermost named type of a member.
type TypeTag string

const (
	TagNone   TypeTag = ""
	TagStruct TypeTag = "struct"
	TagEnum   TypeTag = "enum"
)

// TypeRef is the resolved display identity of a member's type.
type TypeRef struct {
	Name  string  `json:"name"`
	Tag   TypeTag `json:"tag,omitempty"`
	Depth int     `json:"depth,omitempty"` // pointer indirection level
}

// String renders the C spelling of the type: "struct foo", "enum bar",
// "char **".
func (r TypeRef) String() string {
	var b strings.Builder
	if r.Tag != TagNone {
		b.WriteString(string(r.Tag))
		b.WriteByte(' ')
	}
	b.WriteString(r.Name)
	if r.Depth > 0 {
		b.WriteByte(' ')
		b.WriteString(strings.Repeat("*", r.Depth))
	}
	return b.String()
}

// ResolveType produces the TypeRef for a declared type node. Aggregates
// and enumerations resolve directly. Pointers are walked down their
// indirection chain: depth counts pointer nodes, the tag records the
// innermost struct/enum seen along the way, and the walk stops at a
// primitive base type or at a node with no referenced type (void *).
// Anything else resolves to the node's own display name.
func ResolveType(t Tree, n Node) TypeRef {
	switch t.Kind(n) {
	case KindAggregate:
		return TypeRef{Name: nameOf(t, n), Tag: TagStruct}
	case KindEnum:
		return TypeRef{Name: nameOf(t, n), Tag: TagEnum}
	case KindPointer:
		return resolvePointer(t, n)
	default:
		return TypeRef{Name: nameOf(t, n)}
	}
}

func resolvePointer(t Tree, n Node) TypeRef {
	var ref TypeRef
	cur := n
	for {
		switch t.Kind(cur) {
		case KindPointer:
			ref.Depth++
		case KindAggregate:
			ref.Tag = TagStruct
		case KindEnum:
			ref.Tag = TagEnum
		}

		// Some producers emit no referenced type for void *; the chain
		// terminates there.
		next, ok := t.Referenced(cur)
		if !ok {
			break
		}
		cur = next
		if t.Kind(cur) == KindBase {
			break
		}
	}
	ref.Name = nameOf(t, cur)
	return ref
}
