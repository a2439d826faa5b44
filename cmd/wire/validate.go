package wire

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/is00hcw/wire/internal/cache"
	"github.com/is00hcw/wire/internal/redactor"
)

var flagNoCache bool

func init() {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Compile every redaction plan and check for schema drift",
		Long:  "Validate loads the schema, compiles a redaction plan for every message type, and reports configuration faults such as redaction cycles. It also remembers the schema fingerprint and warns when it changed since the last run.",
		RunE:  runValidate,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "do not read or update the fingerprint cache")
}

type validateResult struct {
	Types       int    `json:"types"`
	Plans       int    `json:"plans"`
	NoOps       int    `json:"no_ops"`
	Fingerprint string `json:"fingerprint"`
	Drifted     bool   `json:"drifted"`
	Previous    string `json:"previous,omitempty"`
}

func runValidate(_ *cobra.Command, _ []string) error {
	gcfg, lcfg := loadConfigs()
	set, err := loadSchemaSet(gcfg, lcfg)
	if err != nil {
		return err
	}

	reg := redactor.NewRegistry()
	res := validateResult{Types: set.Len()}
	for _, t := range set.Types() {
		plan, err := reg.Get(t)
		if err != nil {
			return fmt.Errorf("%s: %w", t.Qualified(), err)
		}
		res.Plans++
		if plan.IsNoOp() {
			res.NoOps++
		}
	}
	res.Fingerprint = fmt.Sprintf("%016x", set.Fingerprint())

	key := pickString(flagSchema, lcfg.Schema, gcfg.Schema)
	if !flagNoCache {
		cwd, _ := os.Getwd()
		db, _ := cache.Load(cwd)
		if prev, ok := db.Entries[key]; ok && prev != res.Fingerprint {
			res.Drifted = true
			res.Previous = prev
		}
		db.Entries[key] = res.Fingerprint
		if err := cache.Save(cwd, db); err != nil {
			fmt.Fprintf(os.Stderr, "cache: %v\n", err)
		}
	}

	if flagJSON {
		b, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	}

	fmt.Printf("%d types, %d plans compiled (%d no-op)\n", res.Types, res.Plans, res.NoOps)
	fmt.Printf("schema fingerprint: %s\n", res.Fingerprint)
	if res.Drifted {
		fmt.Printf("schema changed since last run (was %s)\n", res.Previous)
	}
	return nil
}
