package message

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/is00hcw/wire/internal/schema"
)

// Marshal encodes a message as JSON with fields in declaration order. Absent
// fields are omitted; bytes become base64 strings.
func Marshal(m *Message) ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	if err := encode(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encode(buf *bytes.Buffer, m *Message) error {
	buf.WriteByte('{')
	first := true
	for _, f := range m.typ.Fields {
		v, ok := m.values[f.Name]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		name, _ := json.Marshal(f.Name)
		buf.Write(name)
		buf.WriteByte(':')
		if nested, ok := v.(*Message); ok {
			if err := encode(buf, nested); err != nil {
				return err
			}
			continue
		}
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return nil
}

// Unmarshal decodes a JSON object into a message of the given type. Unknown
// keys are rejected rather than dropped: silently accepting them would hide a
// schema/payload mismatch.
func Unmarshal(t *schema.MessageType, data []byte) (*Message, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("decode %s: expected a JSON object, got %T", t.Qualified(), raw)
	}
	return fromMap(t, obj)
}

func fromMap(t *schema.MessageType, obj map[string]any) (*Message, error) {
	b := NewBuilder(t)
	for key, rv := range obj {
		f, ok := t.FieldByName(key)
		if !ok {
			return nil, fmt.Errorf("%s: unknown field %q", t.Qualified(), key)
		}
		if rv == nil {
			continue
		}
		v, err := coerce(f, rv)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t.Qualified(), key, err)
		}
		if err := b.Set(f, v); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// coerce converts the generic JSON value into the field's Go representation.
func coerce(f *schema.Field, rv any) (any, error) {
	switch f.Kind {
	case schema.KindBool:
		if v, ok := rv.(bool); ok {
			return v, nil
		}
	case schema.KindInt32, schema.KindInt64:
		if n, ok := rv.(json.Number); ok {
			v, err := strconv.ParseInt(n.String(), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("not an integer: %v", n)
			}
			if f.Kind == schema.KindInt32 && (v > 1<<31-1 || v < -(1<<31)) {
				return nil, fmt.Errorf("out of int32 range: %v", n)
			}
			return v, nil
		}
	case schema.KindUint32, schema.KindUint64:
		if n, ok := rv.(json.Number); ok {
			v, err := strconv.ParseUint(n.String(), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("not an unsigned integer: %v", n)
			}
			if f.Kind == schema.KindUint32 && v > 1<<32-1 {
				return nil, fmt.Errorf("out of uint32 range: %v", n)
			}
			return v, nil
		}
	case schema.KindDouble:
		if n, ok := rv.(json.Number); ok {
			v, err := n.Float64()
			if err != nil {
				return nil, err
			}
			return v, nil
		}
	case schema.KindString:
		if v, ok := rv.(string); ok {
			return v, nil
		}
	case schema.KindBytes:
		if s, ok := rv.(string); ok {
			v, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return nil, fmt.Errorf("bad base64: %w", err)
			}
			return v, nil
		}
	case schema.KindMessage:
		if obj, ok := rv.(map[string]any); ok {
			return fromMap(f.Type, obj)
		}
	}
	return nil, fmt.Errorf("cannot decode %T into %s", rv, f.Kind)
}
