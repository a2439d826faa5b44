package redactor

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/is00hcw/wire/internal/message"
	"github.com/is00hcw/wire/internal/schema"
)

const testSchema = `
package: acme
messages:
  - name: Redacted
    fields:
      - name: a
        type: string
        redacted: true
      - name: b
        type: string
      - name: c
        type: string
  - name: NotRedacted
    fields:
      - name: a
        type: string
      - name: b
        type: string
  - name: RedactedChild
    fields:
      - name: a
        type: string
      - name: b
        type: Redacted
      - name: c
        type: NotRedacted
  - name: SecretHolder
    fields:
      - name: keep
        type: string
      - name: secret
        type: Redacted
        redacted: true
`

func loadSet(t *testing.T) *schema.Set {
	t.Helper()
	set, err := schema.LoadBytes([]byte(testSchema))
	require.NoError(t, err)
	return set
}

func build(t *testing.T, typ *schema.MessageType, values map[string]any) *message.Message {
	t.Helper()
	b := message.NewBuilder(typ)
	for name, v := range values {
		f, ok := typ.FieldByName(name)
		require.True(t, ok, "field %s", name)
		require.NoError(t, b.Set(f, v))
	}
	msg, err := b.Build()
	require.NoError(t, err)
	return msg
}

func get(t *testing.T, msg *message.Message, name string) any {
	t.Helper()
	f, ok := msg.Type().FieldByName(name)
	require.True(t, ok)
	return msg.Get(f)
}

func TestRedact_ClearsRedactedFields(t *testing.T) {
	set := loadSet(t)
	typ, _ := set.Lookup("acme.Redacted")
	msg := build(t, typ, map[string]any{"a": "a", "b": "b", "c": "c"})

	r, err := NewRegistry().Get(typ)
	require.NoError(t, err)
	require.False(t, r.IsNoOp())

	out, err := r.Redact(msg)
	require.NoError(t, err)

	fa, _ := typ.FieldByName("a")
	assert.False(t, out.Has(fa), "redacted field must be absent")
	assert.Equal(t, "b", get(t, out, "b"))
	assert.Equal(t, "c", get(t, out, "c"))
	assert.Equal(t, "a", get(t, msg, "a"), "input must be untouched")

	expected := build(t, typ, map[string]any{"b": "b", "c": "c"})
	assert.True(t, expected.Equal(out))
}

func TestRedact_NoOpTypeReturnsSameInstance(t *testing.T) {
	set := loadSet(t)
	typ, _ := set.Lookup("acme.NotRedacted")
	msg := build(t, typ, map[string]any{"a": "a", "b": "b"})

	r, err := NewRegistry().Get(typ)
	require.NoError(t, err)
	require.True(t, r.IsNoOp())

	out, err := r.Redact(msg)
	require.NoError(t, err)
	assert.Same(t, msg, out, "no-op plan must pass the instance through")
}

func TestRedact_RecursesIntoNestedMessages(t *testing.T) {
	set := loadSet(t)
	reg := NewRegistry()
	childType, _ := set.Lookup("acme.RedactedChild")
	redactedType, _ := set.Lookup("acme.Redacted")
	plainType, _ := set.Lookup("acme.NotRedacted")

	inner := build(t, redactedType, map[string]any{"a": "a", "b": "b", "c": "c"})
	plain := build(t, plainType, map[string]any{"a": "a", "b": "b"})
	msg := build(t, childType, map[string]any{"a": "a", "b": inner, "c": plain})

	r, err := reg.Get(childType)
	require.NoError(t, err)
	out, err := r.Redact(msg)
	require.NoError(t, err)

	assert.Equal(t, "a", get(t, out, "a"))

	// redaction commutes with nested field access
	innerPlan, err := reg.Get(redactedType)
	require.NoError(t, err)
	wantInner, err := innerPlan.Redact(inner)
	require.NoError(t, err)
	gotInner := get(t, out, "b").(*message.Message)
	assert.True(t, wantInner.Equal(gotInner))

	// a nested type with a no-op plan passes through by reference
	assert.Same(t, plain, get(t, out, "c"))
}

func TestRedact_RedactedMessageFieldClearedWhole(t *testing.T) {
	set := loadSet(t)
	holderType, _ := set.Lookup("acme.SecretHolder")
	redactedType, _ := set.Lookup("acme.Redacted")

	inner := build(t, redactedType, map[string]any{"a": "a", "b": "b", "c": "c"})
	msg := build(t, holderType, map[string]any{"keep": "k", "secret": inner})

	r, err := NewRegistry().Get(holderType)
	require.NoError(t, err)
	out, err := r.Redact(msg)
	require.NoError(t, err)

	secret, _ := holderType.FieldByName("secret")
	assert.False(t, out.Has(secret), "redacted message field must be cleared entirely, not recursed")
	assert.Equal(t, "k", get(t, out, "keep"))
}

func TestRedact_Idempotent(t *testing.T) {
	set := loadSet(t)
	reg := NewRegistry()
	for _, name := range []string{"acme.Redacted", "acme.RedactedChild", "acme.NotRedacted"} {
		typ, _ := set.Lookup(name)
		r, err := reg.Get(typ)
		require.NoError(t, err)

		var msg *message.Message
		switch name {
		case "acme.RedactedChild":
			redactedType, _ := set.Lookup("acme.Redacted")
			inner := build(t, redactedType, map[string]any{"a": "a", "b": "b", "c": "c"})
			msg = build(t, typ, map[string]any{"a": "a", "b": inner})
		default:
			msg = build(t, typ, map[string]any{"a": "a", "b": "b"})
		}

		once, err := r.Redact(msg)
		require.NoError(t, err)
		twice, err := r.Redact(once)
		require.NoError(t, err)
		assert.True(t, once.Equal(twice), "%s: redaction must be idempotent", name)
	}
}

func TestRedact_NilPropagates(t *testing.T) {
	set := loadSet(t)
	typ, _ := set.Lookup("acme.Redacted")
	r, err := NewRegistry().Get(typ)
	require.NoError(t, err)
	out, err := r.Redact(nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestRedact_AbsentNestedFieldSkipped(t *testing.T) {
	set := loadSet(t)
	typ, _ := set.Lookup("acme.RedactedChild")
	msg := build(t, typ, map[string]any{"a": "a"})

	r, err := NewRegistry().Get(typ)
	require.NoError(t, err)
	out, err := r.Redact(msg)
	require.NoError(t, err)
	fb, _ := typ.FieldByName("b")
	assert.False(t, out.Has(fb))
	assert.Equal(t, "a", get(t, out, "a"))
}

func TestRedact_WrongTypeIsInconsistent(t *testing.T) {
	set := loadSet(t)
	redactedType, _ := set.Lookup("acme.Redacted")
	otherType, _ := set.Lookup("acme.RedactedChild")

	r, err := NewRegistry().Get(redactedType)
	require.NoError(t, err)

	msg := build(t, otherType, map[string]any{"a": "a"})
	_, err = r.Redact(msg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInconsistent))
}

func TestRegistry_PlansAreMemoized(t *testing.T) {
	set := loadSet(t)
	reg := NewRegistry()
	typ, _ := set.Lookup("acme.RedactedChild")

	r1, err := reg.Get(typ)
	require.NoError(t, err)
	r2, err := reg.Get(typ)
	require.NoError(t, err)
	assert.Same(t, r1, r2)

	// the no-op sentinel is shared across types
	n1, err := reg.Get(mustLookup(t, set, "acme.NotRedacted"))
	require.NoError(t, err)
	assert.True(t, n1.IsNoOp())
}

func TestRegistry_NilType(t *testing.T) {
	_, err := NewRegistry().Get(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))
}

func TestRegistry_ConcurrentFirstRequests(t *testing.T) {
	set := loadSet(t)
	reg := NewRegistry()
	typ, _ := set.Lookup("acme.RedactedChild")

	const n = 16
	plans := make([]*Redactor, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := reg.Get(typ)
			if err != nil {
				t.Error(err)
				return
			}
			plans[i] = r
		}(i)
	}
	wg.Wait()
	for i := 1; i < n; i++ {
		assert.Same(t, plans[0], plans[i])
	}
}

func TestFor_UsesSharedRegistry(t *testing.T) {
	set := loadSet(t)
	typ, _ := set.Lookup("acme.Redacted")
	r1, err := For(typ)
	require.NoError(t, err)
	r2, err := For(typ)
	require.NoError(t, err)
	assert.Same(t, r1, r2)
}

func TestRegistry_CyclicSchemaIsFatal(t *testing.T) {
	// The loader cannot produce a cycle from well-formed files, so wire the
	// descriptors by hand the way a buggy capability layer might.
	a := &schema.MessageType{Package: "loop", Name: "A"}
	b := &schema.MessageType{Package: "loop", Name: "B"}
	a.Fields = []*schema.Field{{Name: "b", Kind: schema.KindMessage, TypeName: "loop.B", Type: b}}
	b.Fields = []*schema.Field{{Name: "a", Kind: schema.KindMessage, TypeName: "loop.A", Type: a}}

	_, err := NewRegistry().Get(a)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))
}

func TestPlanAccessors(t *testing.T) {
	set := loadSet(t)
	typ, _ := set.Lookup("acme.RedactedChild")
	r, err := NewRegistry().Get(typ)
	require.NoError(t, err)

	assert.Equal(t, typ, r.Type())
	assert.Empty(t, r.Cleared())
	desc := r.Descended()
	require.Len(t, desc, 1, "only the redaction-relevant nested field is tracked")
	assert.Equal(t, "b", desc[0].Name)
}

func mustLookup(t *testing.T, set *schema.Set, name string) *schema.MessageType {
	t.Helper()
	typ, ok := set.Lookup(name)
	require.True(t, ok, "missing type %s", name)
	return typ
}
