package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/is00hcw/wire/internal/redactor"
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
  - name: NotRedacted
    fields:
      - name: a
        type: string
  - name: Child
    fields:
      - name: inner
        type: Redacted
`

func describe(t *testing.T, filter string) (*schema.Set, []TypeInfo) {
	t.Helper()
	set, err := schema.LoadBytes([]byte(testSchema))
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	infos, err := Describe(set, redactor.NewRegistry(), filter)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	return set, infos
}

func TestDescribe_MarksNoOpTypes(t *testing.T) {
	_, infos := describe(t, "")
	byName := map[string]TypeInfo{}
	for _, info := range infos {
		byName[info.Name] = info
	}
	if !byName["acme.NotRedacted"].NoOp {
		t.Fatal("NotRedacted should be a no-op type")
	}
	if byName["acme.Redacted"].NoOp || byName["acme.Child"].NoOp {
		t.Fatal("redaction-relevant types must not be no-op")
	}
	if byName["acme.Child"].Fields[0].Type != "acme.Redacted" {
		t.Fatalf("nested field should carry its type name: %#v", byName["acme.Child"].Fields)
	}
}

func TestDescribe_Filter(t *testing.T) {
	_, infos := describe(t, "*.Redacted")
	if len(infos) != 1 || infos[0].Name != "acme.Redacted" {
		t.Fatalf("filter failed: %#v", infos)
	}
}

func TestPrintText_ContainsSummaryAndFlags(t *testing.T) {
	set, infos := describe(t, "")
	var buf bytes.Buffer
	if err := PrintText(&buf, set, infos, PrintOptions{NoColor: true}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"acme.Redacted", "redacted", "(no redaction)", "Schema fingerprint:", "Types: 3 (no-op: 1)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintJSON_Decodes(t *testing.T) {
	set, infos := describe(t, "")
	var buf bytes.Buffer
	if err := PrintJSON(&buf, set, infos); err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Fingerprint string     `json:"fingerprint"`
		Types       []TypeInfo `json:"types"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("json: %v\n%s", err, buf.String())
	}
	if len(doc.Types) != 3 || doc.Fingerprint == "" {
		t.Fatalf("unexpected doc: %+v", doc)
	}
}
