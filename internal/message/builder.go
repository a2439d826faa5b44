package message

import (
	"fmt"

	"github.com/is00hcw/wire/internal/schema"
)

// Builder stages field values for one Message construction. Builders are not
// safe for concurrent use; each construction gets its own.
type Builder struct {
	typ    *schema.MessageType
	values map[string]any
}

// NewBuilder returns an empty builder for the given type.
func NewBuilder(t *schema.MessageType) *Builder {
	return &Builder{typ: t, values: map[string]any{}}
}

// Builder returns a builder seeded with every field value of m. Nested
// messages are shared by reference, which is safe because they are immutable.
func (m *Message) Builder() *Builder {
	b := NewBuilder(m.typ)
	for k, v := range m.values {
		b.values[k] = v
	}
	return b
}

// Type returns the type the builder constructs.
func (b *Builder) Type() *schema.MessageType { return b.typ }

// Get reads the staged value for the field, nil when absent. It fails when
// the descriptor does not belong to the builder's type.
func (b *Builder) Get(f *schema.Field) (any, error) {
	if !b.typ.Owns(f) {
		return nil, b.foreign(f)
	}
	return b.values[f.Name], nil
}

// Set stages a value. A nil value clears the field; a typed nil message
// pointer clears it too, so redaction results propagate absence naturally.
func (b *Builder) Set(f *schema.Field, v any) error {
	if !b.typ.Owns(f) {
		return b.foreign(f)
	}
	if v == nil {
		delete(b.values, f.Name)
		return nil
	}
	if mv, ok := v.(*Message); ok && mv == nil {
		delete(b.values, f.Name)
		return nil
	}
	if err := checkValue(f, v); err != nil {
		return err
	}
	b.values[f.Name] = v
	return nil
}

// Clear sets the field to its absent representation.
func (b *Builder) Clear(f *schema.Field) error {
	if !b.typ.Owns(f) {
		return b.foreign(f)
	}
	delete(b.values, f.Name)
	return nil
}

// Build finalizes the staged fields into a new immutable Message. The builder
// remains usable; the returned message does not alias its map.
func (b *Builder) Build() (*Message, error) {
	values := make(map[string]any, len(b.values))
	for k, v := range b.values {
		values[k] = v
	}
	return &Message{typ: b.typ, values: values}, nil
}

func (b *Builder) foreign(f *schema.Field) error {
	name := "<nil>"
	if f != nil {
		name = f.Name
	}
	return fmt.Errorf("field %q does not belong to %s", name, b.typ.Qualified())
}

// checkValue enforces the Go representation for each declared kind.
func checkValue(f *schema.Field, v any) error {
	switch f.Kind {
	case schema.KindBool:
		if _, ok := v.(bool); ok {
			return nil
		}
	case schema.KindInt32, schema.KindInt64:
		if _, ok := v.(int64); ok {
			return nil
		}
	case schema.KindUint32, schema.KindUint64:
		if _, ok := v.(uint64); ok {
			return nil
		}
	case schema.KindDouble:
		if _, ok := v.(float64); ok {
			return nil
		}
	case schema.KindString:
		if _, ok := v.(string); ok {
			return nil
		}
	case schema.KindBytes:
		if _, ok := v.([]byte); ok {
			return nil
		}
	case schema.KindMessage:
		mv, ok := v.(*Message)
		if !ok {
			break
		}
		if mv.typ != f.Type {
			return fmt.Errorf("field %q wants %s, got %s", f.Name, f.TypeName, mv.typ.Qualified())
		}
		return nil
	}
	return fmt.Errorf("field %q (%s) cannot hold %T", f.Name, f.Kind, v)
}
