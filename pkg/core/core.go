package core

import (
	"fmt"

	"github.com/is00hcw/wire/internal/message"
	"github.com/is00hcw/wire/internal/redactor"
	"github.com/is00hcw/wire/internal/schema"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type (
	Schema      = schema.Set
	MessageType = schema.MessageType
	Field       = schema.Field
	Message     = message.Message
	Builder     = message.Builder
	Redactor    = redactor.Redactor
	Registry    = redactor.Registry
)

// Sentinel errors, checkable with errors.Is.
var (
	ErrSchema       = redactor.ErrSchema
	ErrInconsistent = redactor.ErrInconsistent
)

// LoadSchema discovers and compiles schema files matching the given globs.
func LoadSchema(globs ...string) (*Schema, error) {
	paths, err := schema.Discover(globs)
	if err != nil {
		return nil, err
	}
	return schema.Load(paths...)
}

// ParseSchema compiles a single in-memory schema document (YAML or JSON).
func ParseSchema(doc []byte) (*Schema, error) {
	return schema.LoadBytes(doc)
}

// NewRegistry returns a fresh plan registry. Most callers can use For, which
// shares one process-wide registry.
func NewRegistry() *Registry { return redactor.NewRegistry() }

// For returns the shared redaction plan for a message type.
func For(t *MessageType) (*Redactor, error) { return redactor.For(t) }

// NewBuilder starts building a message of the given type.
func NewBuilder(t *MessageType) *Builder { return message.NewBuilder(t) }

// RedactJSON decodes a JSON message of the named type, redacts it, and
// re-encodes it. The input is validated strictly against the schema.
func RedactJSON(s *Schema, typeName string, data []byte) ([]byte, error) {
	t, ok := s.Lookup(typeName)
	if !ok {
		return nil, fmt.Errorf("unknown message type %q", typeName)
	}
	msg, err := message.Unmarshal(t, data)
	if err != nil {
		return nil, err
	}
	r, err := redactor.For(t)
	if err != nil {
		return nil, err
	}
	out, err := r.Redact(msg)
	if err != nil {
		return nil, err
	}
	return message.Marshal(out)
}

// MarshalMessage encodes a message as JSON with fields in declaration order.
func MarshalMessage(m *Message) ([]byte, error) { return message.Marshal(m) }

// UnmarshalMessage decodes a JSON object into a message of the given type.
func UnmarshalMessage(t *MessageType, data []byte) (*Message, error) {
	return message.Unmarshal(t, data)
}
