package schema

import (
	"fmt"
	"os"
	"sort"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// fileSchema is the on-disk shape of a schema file. YAML and JSON are both
// accepted; JSON documents parse through the same decoder.
type fileSchema struct {
	Package  string        `yaml:"package"`
	Messages []fileMessage `yaml:"messages"`
}

type fileMessage struct {
	Name   string      `yaml:"name"`
	Fields []fileField `yaml:"fields"`
}

type fileField struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Redacted bool   `yaml:"redacted"`
}

// Discover expands schema file globs (doublestar syntax, ** supported) into a
// sorted list of unique paths. It fails when a pattern matches nothing, since
// a silently empty schema would make every redaction a no-op.
func Discover(globs []string) ([]string, error) {
	seen := map[string]bool{}
	var paths []string
	for _, g := range globs {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		matches, err := doublestar.FilepathGlob(g)
		if err != nil {
			return nil, fmt.Errorf("bad schema glob %q: %w", g, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no schema files match %q", g)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no schema files given")
	}
	sort.Strings(paths)
	return paths, nil
}

// Load reads and compiles schema files into one resolved Set. Types from all
// files share a namespace; cross-file references use qualified names.
func Load(paths ...string) (*Set, error) {
	var files []fileSchema
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		fs, err := parse(b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		files = append(files, fs)
	}
	return compile(files)
}

// LoadBytes compiles a single in-memory schema document.
func LoadBytes(b []byte) (*Set, error) {
	fs, err := parse(b)
	if err != nil {
		return nil, err
	}
	return compile([]fileSchema{fs})
}

func parse(b []byte) (fileSchema, error) {
	var fs fileSchema
	if err := yaml.Unmarshal(b, &fs); err != nil {
		return fs, fmt.Errorf("parse schema: %w", err)
	}
	if len(fs.Messages) == 0 {
		return fs, fmt.Errorf("schema declares no messages")
	}
	return fs, nil
}

// compile runs two passes: declare every message type, then resolve field
// kinds and message references against the full namespace.
func compile(files []fileSchema) (*Set, error) {
	set := &Set{types: map[string]*MessageType{}}

	for _, fs := range files {
		for _, fm := range fs.Messages {
			if fm.Name == "" {
				return nil, fmt.Errorf("message with empty name in package %q", fs.Package)
			}
			t := &MessageType{Package: fs.Package, Name: fm.Name, byName: map[string]*Field{}}
			q := t.Qualified()
			if _, dup := set.types[q]; dup {
				return nil, fmt.Errorf("duplicate message type %q", q)
			}
			set.types[q] = t
		}
	}

	for _, fs := range files {
		for _, fm := range fs.Messages {
			t := set.types[qualify(fs.Package, fm.Name)]
			for _, ff := range fm.Fields {
				f, err := compileField(set, fs.Package, ff)
				if err != nil {
					return nil, fmt.Errorf("%s.%s: %w", t.Qualified(), ff.Name, err)
				}
				if _, dup := t.byName[f.Name]; dup {
					return nil, fmt.Errorf("%s: duplicate field %q", t.Qualified(), f.Name)
				}
				t.Fields = append(t.Fields, f)
				t.byName[f.Name] = f
			}
		}
	}
	return set, nil
}

func compileField(set *Set, pkg string, ff fileField) (*Field, error) {
	if ff.Name == "" {
		return nil, fmt.Errorf("field with empty name")
	}
	if ff.Type == "" {
		return nil, fmt.Errorf("field has no type")
	}
	if k, ok := ScalarKind(ff.Type); ok {
		return &Field{Name: ff.Name, Kind: k, Redacted: ff.Redacted}, nil
	}
	// Message reference: unqualified names resolve within the declaring
	// package first, then as already-qualified names.
	ref := qualify(pkg, ff.Type)
	mt, ok := set.types[ref]
	if !ok {
		ref = ff.Type
		mt, ok = set.types[ref]
	}
	if !ok {
		return nil, fmt.Errorf("unknown type %q", ff.Type)
	}
	return &Field{Name: ff.Name, Kind: KindMessage, TypeName: ref, Type: mt, Redacted: ff.Redacted}, nil
}

func qualify(pkg, name string) string {
	if pkg == "" || strings.Contains(name, ".") {
		return name
	}
	return pkg + "." + name
}
