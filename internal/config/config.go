// Package config holds the style catalogue offered to clients: fonts,
// layouts, palettes and shapes. A YAML file can replace the built-in lists.
package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

// Catalog is the set of style options a form may pick from.
type Catalog struct {
	Fonts         []string `yaml:"fonts" json:"fonts"`
	Layouts       []string `yaml:"layouts" json:"layouts"`
	DefaultLayout string   `yaml:"default_layout" json:"defaultLayout"`
	Palettes      []string `yaml:"palettes" json:"palettes"`
	Shapes        []string `yaml:"shapes" json:"shapes"`
}

// DefaultCatalog returns the built-in catalogue.
func DefaultCatalog() Catalog {
	return Catalog{
		Fonts:         []string{"Arial", "Verdana", "Helvetica", "Times New Roman", "Georgia", "Courier New", "Brush Script MT", "Impact"},
		Layouts:       []string{"Icon Above Text", "Icon Left of Text", "Text Only", "Icon Only"},
		DefaultLayout: "Icon Above Text",
		Palettes:      []string{"Vibrant", "Pastel", "Monochrome", "Earthy", "Neon"},
		Shapes:        []string{"Circle", "Square", "Shield", "Hexagon", "Badge"},
	}
}

// LoadCatalog reads path and fills any section it leaves empty from
// DefaultCatalog. An empty path returns the defaults.
func LoadCatalog(path string) (Catalog, error) {
	def := DefaultCatalog()
	path = strings.TrimSpace(path)
	if path == "" {
		return def, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read style catalog: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse style catalog %s: %w", path, err)
	}
	c.Fonts = normalizeFonts(c.Fonts)
	c.Layouts = normalizeLabels(c.Layouts)
	c.Palettes = normalizeLabels(c.Palettes)
	c.Shapes = normalizeLabels(c.Shapes)

	if len(c.Fonts) == 0 {
		c.Fonts = def.Fonts
	}
	if len(c.Layouts) == 0 {
		c.Layouts = def.Layouts
	}
	if len(c.Palettes) == 0 {
		c.Palettes = def.Palettes
	}
	if len(c.Shapes) == 0 {
		c.Shapes = def.Shapes
	}
	c.DefaultLayout = normalizeLabel(c.DefaultLayout)
	if !contains(c.Layouts, c.DefaultLayout) {
		c.DefaultLayout = c.Layouts[0]
	}
	return c, nil
}

// HasLayout reports whether layout is offered, ignoring case and spacing.
func (c Catalog) HasLayout(layout string) bool {
	layout = strings.Join(strings.Fields(layout), " ")
	for _, l := range c.Layouts {
		if strings.EqualFold(l, layout) {
			return true
		}
	}
	return false
}

// Casers are stateful, so each call gets its own.
func normalizeLabel(v string) string {
	v = strings.Join(strings.Fields(v), " ")
	if v == "" {
		return ""
	}
	return cases.Title(language.English).String(v)
}

func normalizeLabels(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = normalizeLabel(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Font names keep their casing ("Brush Script MT").
func normalizeFonts(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.Join(strings.Fields(v), " ")
		key := strings.ToLower(v)
		if v == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
