package wire

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	semver3 "github.com/blang/semver"
	semver "github.com/blang/semver/v4"
	"github.com/rhysd/go-github-selfupdate/selfupdate"

	"github.com/is00hcw/wire/internal/config"
	"github.com/is00hcw/wire/internal/schema"
)

func selfUpdate() error {
	v := version
	// Use build info if tag overridden at build-time
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(v) == 0 {
				v = s.Value
			}
		}
	}
	// parse semantic version (strip leading v)
	ver, err := semver.ParseTolerant(v)
	if err != nil {
		ver = semver.MustParse("0.0.0")
	}
	// Update from GitHub Releases: is00hcw/wire
	latest, err := selfupdate.UpdateSelf(semver3.MustParse(ver.String()), "is00hcw/wire")
	if err != nil {
		return err
	}
	_ = latest
	return nil
}

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

// loadConfigs returns (global, local) file configs, each zero-valued when the
// corresponding file is missing.
func loadConfigs() (config.FileConfig, config.FileConfig) {
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	cwd, _ := os.Getwd()
	if c, err := config.LoadLocal(cwd); err == nil {
		lcfg = c
	}
	return gcfg, lcfg
}

// loadSchemaSet resolves the effective schema globs and compiles them.
func loadSchemaSet(gcfg, lcfg config.FileConfig) (*schema.Set, error) {
	raw := pickString(flagSchema, lcfg.Schema, gcfg.Schema)
	if raw == "" {
		return nil, fmt.Errorf("no schema files: pass --schema or set 'schema' in .wire.yaml")
	}
	var globs []string
	for _, g := range strings.Split(raw, ",") {
		if g = strings.TrimSpace(g); g != "" {
			globs = append(globs, g)
		}
	}
	paths, err := schema.Discover(globs)
	if err != nil {
		return nil, err
	}
	return schema.Load(paths...)
}
