package schema

import (
	"fmt"
	"sort"

	xxhash "github.com/cespare/xxhash/v2"
)

// Kind is the declared value kind of a field.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt32
	KindInt64
	KindUint32
	KindUint64
	KindDouble
	KindString
	KindBytes
	KindMessage
)

var kindNames = map[Kind]string{
	KindBool:    "bool",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindUint32:  "uint32",
	KindUint64:  "uint64",
	KindDouble:  "double",
	KindString:  "string",
	KindBytes:   "bytes",
	KindMessage: "message",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}

// ScalarKind maps a schema type name to its scalar kind. Names that are not
// scalar kinds are message type references and are resolved by the loader.
func ScalarKind(name string) (Kind, bool) {
	switch name {
	case "bool":
		return KindBool, true
	case "int32":
		return KindInt32, true
	case "int64":
		return KindInt64, true
	case "uint32":
		return KindUint32, true
	case "uint64":
		return KindUint64, true
	case "double":
		return KindDouble, true
	case "string":
		return KindString, true
	case "bytes":
		return KindBytes, true
	}
	return KindInvalid, false
}

// Field describes one declared field of a message type. Fields are created by
// the loader and never mutated afterwards; descriptor identity (the pointer)
// distinguishes same-named fields of different types.
type Field struct {
	Name     string
	Kind     Kind
	TypeName string       // qualified message type name when Kind == KindMessage
	Type     *MessageType // resolved message type, nil for scalars
	Redacted bool
}

// MessageType describes a message kind: its package, name, and ordered fields.
type MessageType struct {
	Package string
	Name    string
	Fields  []*Field

	byName map[string]*Field
}

// Qualified returns the package-qualified type name, e.g. "acme.Invoice".
func (t *MessageType) Qualified() string {
	if t.Package == "" {
		return t.Name
	}
	return t.Package + "." + t.Name
}

// FieldByName returns the declared field with the given name.
func (t *MessageType) FieldByName(name string) (*Field, bool) {
	f, ok := t.byName[name]
	return f, ok
}

// Owns reports whether f is one of t's own field descriptors. Builders use
// this to reject descriptors borrowed from another type.
func (t *MessageType) Owns(f *Field) bool {
	if f == nil {
		return false
	}
	return t.byName[f.Name] == f
}

// Set is a compiled, immutable collection of message types keyed by their
// qualified names.
type Set struct {
	types map[string]*MessageType
}

// Lookup returns the message type with the given qualified name.
func (s *Set) Lookup(qualified string) (*MessageType, bool) {
	t, ok := s.types[qualified]
	return t, ok
}

// Types returns all message types sorted by qualified name.
func (s *Set) Types() []*MessageType {
	out := make([]*MessageType, 0, len(s.types))
	for _, t := range s.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Qualified() < out[j].Qualified()
	})
	return out
}

// Len returns the number of message types in the set.
func (s *Set) Len() int { return len(s.types) }

// Fingerprint hashes a canonical rendering of the set. Equal schemas hash
// equally regardless of file order; any change to a type, field, kind, or
// redacted flag changes the fingerprint.
func (s *Set) Fingerprint() uint64 {
	d := xxhash.New()
	for _, t := range s.Types() {
		_, _ = d.WriteString(t.Qualified())
		_, _ = d.WriteString("{")
		for _, f := range t.Fields {
			typeName := f.Kind.String()
			if f.Kind == KindMessage {
				typeName = f.TypeName
			}
			_, _ = fmt.Fprintf(d, "%s:%s:%t;", f.Name, typeName, f.Redacted)
		}
		_, _ = d.WriteString("}")
	}
	return d.Sum64()
}
