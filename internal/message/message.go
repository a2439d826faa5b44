package message

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/is00hcw/wire/internal/schema"
)

// Message is an immutable instance of a schema.MessageType. Absent fields
// have no entry in values; nested message fields hold *Message.
type Message struct {
	typ    *schema.MessageType
	values map[string]any
}

// Type returns the message's schema type.
func (m *Message) Type() *schema.MessageType { return m.typ }

// Has reports whether the field holds a value.
func (m *Message) Has(f *schema.Field) bool {
	_, ok := m.values[f.Name]
	return ok
}

// Get returns the field's value, or nil when absent. Nested message fields
// return *Message.
func (m *Message) Get(f *schema.Field) any {
	return m.values[f.Name]
}

// Equal reports deep value equality. Messages of different types are never
// equal, even when structurally identical.
func (m *Message) Equal(o *Message) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.typ != o.typ || len(m.values) != len(o.values) {
		return false
	}
	for _, f := range m.typ.Fields {
		a, aok := m.values[f.Name]
		b, bok := o.values[f.Name]
		if aok != bok {
			return false
		}
		if !aok {
			continue
		}
		if !valueEqual(a, b) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	switch av := a.(type) {
	case *Message:
		bv, ok := b.(*Message)
		return ok && av.Equal(bv)
	case []byte:
		bv, ok := b.([]byte)
		return ok && bytes.Equal(av, bv)
	default:
		return a == b
	}
}

// String renders set fields in declaration order, e.g. "Redacted{b=b, c=c}".
// Absent fields are omitted, so a freshly redacted message never echoes the
// cleared values.
func (m *Message) String() string {
	if m == nil {
		return "<nil>"
	}
	var sb strings.Builder
	sb.WriteString(m.typ.Name)
	sb.WriteString("{")
	first := true
	for _, f := range m.typ.Fields {
		v, ok := m.values[f.Name]
		if !ok {
			continue
		}
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(f.Name)
		sb.WriteString("=")
		fmt.Fprintf(&sb, "%v", v)
	}
	sb.WriteString("}")
	return sb.String()
}
