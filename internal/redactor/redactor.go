package redactor

import (
	"errors"
	"fmt"
	"sync"

	"github.com/is00hcw/wire/internal/message"
	"github.com/is00hcw/wire/internal/schema"
)

var (
	// ErrSchema reports type metadata that cannot be compiled into a plan:
	// an unresolved message reference, a nil type, or a cyclic schema. It is
	// a configuration fault, not a data fault; retrying cannot succeed.
	ErrSchema = errors.New("redactor: invalid schema")

	// ErrInconsistent reports an instance whose runtime shape disagrees with
	// the compiled plan. Redaction aborts with no partial result: a half
	// redacted message is worse than none.
	ErrInconsistent = errors.New("redactor: plan does not match instance")
)

type nestedField struct {
	field *schema.Field
	child *Redactor
}

// Redactor is the compiled redaction plan for one message type. The zero
// state is never used directly; obtain instances from a Registry or For.
type Redactor struct {
	typ      *schema.MessageType
	redacted []*schema.Field
	nested   []nestedField
}

// noop is the shared plan for every type that needs no redaction. Identity
// comparison against it is the entire fast path.
var noop = &Redactor{}

// IsNoOp reports whether redaction leaves instances of this type untouched.
func (r *Redactor) IsNoOp() bool { return r == noop }

// Type returns the message type this plan applies to, nil for the no-op plan.
func (r *Redactor) Type() *schema.MessageType { return r.typ }

// Cleared returns the fields this plan clears.
func (r *Redactor) Cleared() []*schema.Field {
	out := make([]*schema.Field, len(r.redacted))
	copy(out, r.redacted)
	return out
}

// Descended returns the nested message fields this plan recurses into.
func (r *Redactor) Descended() []*schema.Field {
	out := make([]*schema.Field, 0, len(r.nested))
	for _, nf := range r.nested {
		out = append(out, nf.field)
	}
	return out
}

// Registry builds and memoizes one plan per message type. A plan is compiled
// on first request and reused for the registry's lifetime; concurrent first
// requests for the same type are serialized so it compiles exactly once.
type Registry struct {
	mu    sync.Mutex
	plans map[*schema.MessageType]*Redactor
}

// NewRegistry returns an empty plan registry.
func NewRegistry() *Registry {
	return &Registry{plans: map[*schema.MessageType]*Redactor{}}
}

// Get returns the plan for t, compiling it and the plans of every reachable
// nested type on first use.
func (g *Registry) Get(t *schema.MessageType) (*Redactor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.compile(t, map[*schema.MessageType]bool{})
}

func (g *Registry) compile(t *schema.MessageType, building map[*schema.MessageType]bool) (*Redactor, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil message type", ErrSchema)
	}
	if r, ok := g.plans[t]; ok {
		return r, nil
	}
	if building[t] {
		return nil, fmt.Errorf("%w: type cycle through %s", ErrSchema, t.Qualified())
	}
	building[t] = true
	defer delete(building, t)

	var redacted []*schema.Field
	var nested []nestedField
	for _, f := range t.Fields {
		switch {
		case f.Redacted:
			// Message-typed redacted fields are cleared whole, not descended.
			redacted = append(redacted, f)
		case f.Kind == schema.KindMessage:
			if f.Type == nil {
				return nil, fmt.Errorf("%w: %s.%s references unresolved type %q",
					ErrSchema, t.Qualified(), f.Name, f.TypeName)
			}
			child, err := g.compile(f.Type, building)
			if err != nil {
				return nil, err
			}
			if child.IsNoOp() {
				continue
			}
			nested = append(nested, nestedField{field: f, child: child})
		}
	}

	r := noop
	if len(redacted) > 0 || len(nested) > 0 {
		r = &Redactor{typ: t, redacted: redacted, nested: nested}
	}
	g.plans[t] = r
	return r, nil
}

var defaultRegistry = NewRegistry()

// For returns the process-wide shared plan for t.
func For(t *schema.MessageType) (*Redactor, error) {
	return defaultRegistry.Get(t)
}

// Redact returns a copy of msg with every redacted field cleared and every
// tracked nested message recursively redacted. A nil message redacts to nil.
// For a no-op plan the input is returned as-is, which is safe because
// messages are immutable.
func (r *Redactor) Redact(msg *message.Message) (*message.Message, error) {
	if msg == nil {
		return nil, nil
	}
	if r.IsNoOp() {
		return msg, nil
	}
	if msg.Type() != r.typ {
		return nil, fmt.Errorf("%w: plan for %s applied to %s",
			ErrInconsistent, r.typ.Qualified(), msg.Type().Qualified())
	}

	b := msg.Builder()
	for _, f := range r.redacted {
		if err := b.Clear(f); err != nil {
			return nil, fmt.Errorf("%w: clearing %s.%s: %v", ErrInconsistent, r.typ.Qualified(), f.Name, err)
		}
	}
	for _, nf := range r.nested {
		v, err := b.Get(nf.field)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s.%s: %v", ErrInconsistent, r.typ.Qualified(), nf.field.Name, err)
		}
		if v == nil {
			continue
		}
		child, ok := v.(*message.Message)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s holds %T, want a message", ErrInconsistent, r.typ.Qualified(), nf.field.Name, v)
		}
		redacted, err := nf.child.Redact(child)
		if err != nil {
			return nil, err
		}
		if err := b.Set(nf.field, redacted); err != nil {
			return nil, fmt.Errorf("%w: writing %s.%s: %v", ErrInconsistent, r.typ.Qualified(), nf.field.Name, err)
		}
	}

	out, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: building redacted %s: %v", ErrInconsistent, r.typ.Qualified(), err)
	}
	return out, nil
}
