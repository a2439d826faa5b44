package report

import (
	"encoding/json"
	"fmt"
	"io"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"github.com/olekukonko/tablewriter"

	"github.com/is00hcw/wire/internal/redactor"
	"github.com/is00hcw/wire/internal/schema"
)

// PrintOptions controls schema report rendering.
type PrintOptions struct {
	NoColor bool
	// Filter is a glob matched against qualified type names; empty means all.
	Filter string
}

// TypeInfo is the JSON shape for one described message type.
type TypeInfo struct {
	Name   string      `json:"name"`
	NoOp   bool        `json:"noop"`
	Fields []FieldInfo `json:"fields"`
}

// FieldInfo is the JSON shape for one field.
type FieldInfo struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Type     string `json:"type,omitempty"`
	Redacted bool   `json:"redacted"`
}

// Describe collects report rows for every type in the set, in name order.
// Plan compilation failures abort the report; a broken schema should never
// render as a partially described one.
func Describe(set *schema.Set, reg *redactor.Registry, filter string) ([]TypeInfo, error) {
	var out []TypeInfo
	for _, t := range set.Types() {
		if filter != "" {
			if ok, _ := doublestar.Match(filter, t.Qualified()); !ok {
				continue
			}
		}
		plan, err := reg.Get(t)
		if err != nil {
			return nil, err
		}
		info := TypeInfo{Name: t.Qualified(), NoOp: plan.IsNoOp()}
		for _, f := range t.Fields {
			fi := FieldInfo{Name: f.Name, Kind: f.Kind.String(), Redacted: f.Redacted}
			if f.Kind == schema.KindMessage {
				fi.Type = f.TypeName
			}
			info.Fields = append(info.Fields, fi)
		}
		out = append(out, info)
	}
	return out, nil
}

// PrintTable renders the described types as a bordered table with a summary
// footer including the schema fingerprint.
func PrintTable(w io.Writer, set *schema.Set, infos []TypeInfo, opts PrintOptions) error {
	table := tablewriter.NewWriter(w)
	table.Header("TYPE", "FIELD", "KIND", "REDACTED")
	for _, info := range infos {
		for _, f := range info.Fields {
			kind := f.Kind
			if f.Type != "" {
				kind = f.Type
			}
			if err := table.Append([]string{info.Name, f.Name, kind, redactedMark(f.Redacted, opts.NoColor)}); err != nil {
				return err
			}
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	printSummary(w, set, infos)
	return nil
}

// PrintText renders plain columnar output, one line per field.
func PrintText(w io.Writer, set *schema.Set, infos []TypeInfo, opts PrintOptions) error {
	maxName := 4
	for _, info := range infos {
		if l := len(info.Name); l > maxName {
			maxName = l
		}
	}
	for _, info := range infos {
		status := ""
		if info.NoOp {
			status = "  (no redaction)"
		}
		fmt.Fprintf(w, "%-*s%s\n", maxName, info.Name, status)
		for _, f := range info.Fields {
			kind := f.Kind
			if f.Type != "" {
				kind = f.Type
			}
			fmt.Fprintf(w, "  %-20s %-12s %s\n", f.Name, kind, redactedMark(f.Redacted, opts.NoColor))
		}
	}
	printSummary(w, set, infos)
	return nil
}

// PrintJSON emits the machine-readable report.
func PrintJSON(w io.Writer, set *schema.Set, infos []TypeInfo) error {
	doc := struct {
		Fingerprint string     `json:"fingerprint"`
		Types       []TypeInfo `json:"types"`
	}{
		Fingerprint: fmt.Sprintf("%016x", set.Fingerprint()),
		Types:       infos,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func printSummary(w io.Writer, set *schema.Set, infos []TypeInfo) {
	redactedFields, noops := 0, 0
	for _, info := range infos {
		if info.NoOp {
			noops++
		}
		for _, f := range info.Fields {
			if f.Redacted {
				redactedFields++
			}
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Types: %d (no-op: %d)  Redacted fields: %d\n", len(infos), noops, redactedFields)
	fmt.Fprintf(w, "Schema fingerprint: %016x\n", set.Fingerprint())
}

func redactedMark(redacted, noColor bool) string {
	if !redacted {
		return "-"
	}
	if noColor {
		return "redacted"
	}
	return "\x1b[31mredacted\x1b[0m" // red
}
