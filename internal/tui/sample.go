package tui

import (
	"github.com/is00hcw/wire/internal/message"
	"github.com/is00hcw/wire/internal/schema"
)

// maxSampleDepth caps nested sample construction. Schemas are tree-shaped,
// but the browser should not hang on a hand-wired cyclic descriptor.
const maxSampleDepth = 8

// sampleMessage synthesizes an instance with a placeholder value in every
// field, used for the before/after redaction preview.
func sampleMessage(t *schema.MessageType) *message.Message {
	return sample(t, 0)
}

func sample(t *schema.MessageType, depth int) *message.Message {
	b := message.NewBuilder(t)
	for _, f := range t.Fields {
		var v any
		switch f.Kind {
		case schema.KindBool:
			v = true
		case schema.KindInt32, schema.KindInt64:
			v = int64(42)
		case schema.KindUint32, schema.KindUint64:
			v = uint64(42)
		case schema.KindDouble:
			v = 0.5
		case schema.KindString:
			v = f.Name
		case schema.KindBytes:
			v = []byte(f.Name)
		case schema.KindMessage:
			if depth < maxSampleDepth {
				v = sample(f.Type, depth+1)
			}
		}
		if v == nil {
			continue
		}
		_ = b.Set(f, v)
	}
	msg, _ := b.Build()
	return msg
}
