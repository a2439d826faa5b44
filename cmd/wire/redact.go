package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/is00hcw/wire/internal/audit"
	"github.com/is00hcw/wire/internal/config"
	"github.com/is00hcw/wire/internal/message"
	"github.com/is00hcw/wire/internal/redactor"
	"github.com/is00hcw/wire/internal/report"
	"github.com/is00hcw/wire/internal/update"
)

var (
	flagType   string
	flagOut    string
	flagPretty bool
	flagAudit  bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "redact [file]",
		Short: "Redact a JSON message",
		Long:  "Redact reads a JSON message (file or stdin), clears every field the schema marks redacted, recursively redacts nested messages, and prints the result.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRedact,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagType, "type", "t", "", "qualified message type (e.g. acme.Invoice)")
	cmd.Flags().StringVarP(&flagOut, "out", "o", "", "write output to this file instead of stdout")
	cmd.Flags().BoolVar(&flagPretty, "pretty", false, "indent and syntax-highlight the output")
	cmd.Flags().BoolVar(&flagAudit, "audit", false, "append a record to the audit log")
}

func runRedact(_ *cobra.Command, args []string) error {
	gcfg, lcfg := loadConfigs()
	set, err := loadSchemaSet(gcfg, lcfg)
	if err != nil {
		return err
	}

	typeName := pickString(flagType, lcfg.Type, gcfg.Type)
	if typeName == "" {
		return fmt.Errorf("no message type: pass --type or set 'type' in .wire.yaml")
	}
	typ, ok := set.Lookup(typeName)
	if !ok {
		return fmt.Errorf("unknown message type %q", typeName)
	}

	var in []byte
	if len(args) == 1 && args[0] != "-" {
		in, err = os.ReadFile(args[0])
	} else {
		in, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return err
	}

	msg, err := message.Unmarshal(typ, in)
	if err != nil {
		return err
	}

	plan, err := redactor.For(typ)
	if err != nil {
		return err
	}

	start := time.Now()
	out, err := plan.Redact(msg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	encoded, err := message.Marshal(out)
	if err != nil {
		return err
	}

	if !flagJSON && !pickBool(flagNoUpdateCheck, lcfg.NoUpdateCheck, gcfg.NoUpdateCheck) {
		if latest, newer, _ := update.Check(version, false); newer && latest != "" {
			fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'wire update' to upgrade\n", latest)
		}
	}

	if err := writeOutput(encoded, gcfg, lcfg); err != nil {
		return err
	}

	if pickBool(flagAudit, lcfg.Audit, gcfg.Audit) {
		cwd, _ := os.Getwd()
		rec := audit.NewRunRecord(set.Fingerprint(), typeName, 1, clearedCount(plan, msg), elapsed)
		if err := audit.New(cwd).LogRun(rec); err != nil {
			fmt.Fprintf(os.Stderr, "audit log: %v\n", err)
		}
	}
	return nil
}

func writeOutput(encoded []byte, gcfg, lcfg config.FileConfig) error {
	if out := pickString(flagOut, lcfg.Output, gcfg.Output); out != "" {
		return os.WriteFile(out, append(encoded, '\n'), 0600)
	}
	pretty := pickBool(flagPretty, lcfg.Pretty, gcfg.Pretty)
	if !pretty {
		fmt.Println(string(encoded))
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, encoded, "", "  "); err != nil {
		return err
	}
	text := buf.String()
	noColor := pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor)
	if !noColor && term.IsTerminal(int(os.Stdout.Fd())) {
		text = report.HighlightJSON(text)
	}
	fmt.Println(text)
	return nil
}

// clearedCount counts fields the plan actually cleared, including in nested
// messages, for the audit record.
func clearedCount(plan *redactor.Redactor, msg *message.Message) int {
	if msg == nil || plan.IsNoOp() {
		return 0
	}
	n := 0
	for _, f := range plan.Cleared() {
		if msg.Has(f) {
			n++
		}
	}
	for _, f := range plan.Descended() {
		nested, ok := msg.Get(f).(*message.Message)
		if !ok {
			continue
		}
		childPlan, err := redactor.For(nested.Type())
		if err != nil {
			continue
		}
		n += clearedCount(childPlan, nested)
	}
	return n
}
