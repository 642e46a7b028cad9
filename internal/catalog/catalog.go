// Package catalog is the read-only directory of builtin types, procedures and
// variables the interpreter provides.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"rsl/internal/entity"
)

//go:embed builtins.yaml
var builtinsYAML []byte

// Member is a property or method of a builtin type.
type Member struct {
	Name      string `yaml:"name"`
	Kind      string `yaml:"kind"`
	Type      string `yaml:"type"`
	Signature string `yaml:"signature"`
	Doc       string `yaml:"doc"`
}

// Entry is one builtin name.
type Entry struct {
	Name       string
	Kind       entity.Kind
	ReturnType string // для типа: его имя, для процедуры: тип результата
	Signature  string
	Doc        string
	Members    []Member
}

type fileFormat struct {
	Types []struct {
		Name    string   `yaml:"name"`
		Doc     string   `yaml:"doc"`
		Members []Member `yaml:"members"`
	} `yaml:"types"`
	Functions []struct {
		Name      string `yaml:"name"`
		Returns   string `yaml:"returns"`
		Signature string `yaml:"signature"`
		Doc       string `yaml:"doc"`
	} `yaml:"functions"`
	Variables []struct {
		Name string `yaml:"name"`
		Kind string `yaml:"kind"`
		Type string `yaml:"type"`
		Doc  string `yaml:"doc"`
	} `yaml:"variables"`
}

// Catalog answers name lookups case-insensitively.
type Catalog struct {
	entries []Entry
	byName  map[string]int
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(builtinsYAML)
	})
	return defaultCat, defaultErr
}

// Parse decodes a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc fileFormat
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	c := &Catalog{byName: make(map[string]int)}
	var errs []error
	add := func(e Entry) {
		if e.Name == "" {
			errs = append(errs, errors.New("catalog: entry without name"))
			return
		}
		key := strings.ToLower(e.Name)
		if _, dup := c.byName[key]; dup {
			errs = append(errs, fmt.Errorf("catalog: duplicate name %q", e.Name))
			return
		}
		c.byName[key] = len(c.entries)
		c.entries = append(c.entries, e)
	}

	for _, t := range doc.Types {
		for _, m := range t.Members {
			if _, err := memberKind(m.Kind); err != nil {
				errs = append(errs, fmt.Errorf("catalog: %s.%s: %w", t.Name, m.Name, err))
			}
		}
		add(Entry{Name: t.Name, Kind: entity.KindClass, ReturnType: t.Name, Doc: t.Doc, Members: t.Members})
	}
	for _, f := range doc.Functions {
		sig := f.Signature
		if sig == "" {
			sig = f.Name + "()"
		}
		add(Entry{Name: f.Name, Kind: entity.KindFunction, ReturnType: f.Returns, Signature: sig, Doc: f.Doc})
	}
	for _, v := range doc.Variables {
		kind := entity.KindVariable
		if v.Kind == "constant" {
			kind = entity.KindConstant
		}
		add(Entry{Name: v.Name, Kind: kind, ReturnType: v.Type, Doc: v.Doc})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

func memberKind(s string) (entity.Kind, error) {
	switch s {
	case "property", "":
		return entity.KindProperty, nil
	case "method":
		return entity.KindMethod, nil
	}
	return 0, fmt.Errorf("unknown member kind %q", s)
}

// Len is the number of top-level entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// FindByName looks a builtin up case-insensitively.
func (c *Catalog) FindByName(name string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	i, ok := c.byName[strings.ToLower(name)]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Completions lists every top-level builtin.
func (c *Catalog) Completions() []entity.CompletionItem {
	if c == nil {
		return nil
	}
	out := make([]entity.CompletionItem, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e.Completion())
	}
	return out
}

// Members lists the members of the builtin type whose name is typeName.
func (c *Catalog) Members(typeName string) ([]entity.CompletionItem, bool) {
	e, ok := c.FindByName(typeName)
	if !ok || e.Kind != entity.KindClass {
		return nil, false
	}
	out := make([]entity.CompletionItem, 0, len(e.Members))
	for _, m := range e.Members {
		kind, _ := memberKind(m.Kind)
		item := entity.CompletionItem{
			Label:         m.Name,
			Kind:          kind,
			Detail:        memberDetail(e.Name, m),
			Documentation: m.Doc,
			InsertText:    m.Name,
		}
		if kind == entity.KindMethod {
			item.InsertText = m.Name + "()"
		}
		out = append(out, item)
	}
	return out, true
}

func memberDetail(owner string, m Member) string {
	if m.Signature != "" {
		return owner + "." + m.Signature
	}
	typ := m.Type
	if typ == "" {
		typ = entity.VariantName
	}
	return owner + "." + m.Name + ": " + typ
}

// Completion is the presentation record of a builtin.
func (e Entry) Completion() entity.CompletionItem {
	item := entity.CompletionItem{
		Label:         e.Name,
		Kind:          e.Kind,
		Detail:        e.Detail(),
		Documentation: e.Doc,
		InsertText:    e.Name,
	}
	if e.Kind == entity.KindFunction {
		item.InsertText = e.Name + "()"
	}
	return item
}

// Detail renders a one-line description.
func (e Entry) Detail() string {
	switch e.Kind {
	case entity.KindClass:
		return "class " + e.Name
	case entity.KindFunction:
		return "macro " + e.Signature
	case entity.KindConstant:
		return "const " + e.Name + ": " + e.ReturnType
	default:
		return "var " + e.Name + ": " + e.ReturnType
	}
}
