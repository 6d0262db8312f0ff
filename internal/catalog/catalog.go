package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/DanKadrios/SMTLite/internal/constants"
	"github.com/DanKadrios/SMTLite/internal/game"
	"github.com/DanKadrios/SMTLite/internal/keys"
	"github.com/DanKadrios/SMTLite/internal/logging"
)

//go:embed default.yaml
var defaultYAML []byte

type rawCatalog struct {
	Moves     map[string]game.Move     `yaml:"moves"`
	Origins   map[string]game.Move     `yaml:"origins"`
	Templates map[string]game.Template `yaml:"templates"`
}

// Catalog is the read-only move, origin and actor template source. It is
// safe for concurrent use once built.
type Catalog struct {
	moves     map[string]game.Move
	origins   map[string]game.Move
	templates map[string]game.Template
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultYAML)
}

// Load reads a YAML catalog from path.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(b []byte) (*Catalog, error) {
	var rc rawCatalog
	if err := yaml.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(rc.Moves) == 0 {
		return nil, fmt.Errorf("catalog has no moves")
	}
	if len(rc.Templates) == 0 {
		return nil, fmt.Errorf("catalog has no templates")
	}

	c := &Catalog{
		moves:     make(map[string]game.Move, len(rc.Moves)),
		origins:   make(map[string]game.Move, len(rc.Origins)),
		templates: make(map[string]game.Template, len(rc.Templates)),
	}
	if err := addMoves(c.moves, rc.Moves, "move"); err != nil {
		return nil, err
	}
	if err := addMoves(c.origins, rc.Origins, "origin"); err != nil {
		return nil, err
	}

	for raw, t := range rc.Templates {
		k := keys.Normalize(raw)
		if k == "" {
			return nil, fmt.Errorf("template with empty key")
		}
		if _, dup := c.templates[k]; dup {
			return nil, fmt.Errorf("duplicate template key '%s'", raw)
		}
		if strings.TrimSpace(t.Name) == "" {
			return nil, fmt.Errorf("template '%s' missing 'name'", raw)
		}
		if len(t.Skills) > game.MaxKnownMoves {
			return nil, fmt.Errorf("template '%s' lists %d skills (max %d)", raw, len(t.Skills), game.MaxKnownMoves)
		}
		t.Key = k
		skills := make([]string, 0, len(t.Skills))
		for _, s := range t.Skills {
			sk := keys.Normalize(s)
			if _, ok := c.moves[sk]; !ok {
				// Unknown skills stay in the list and resolve to the basic attack.
				logging.Warn("template references unknown move", logging.Fields{constants.LogFieldTemplate: k, constants.LogFieldMove: s})
			}
			skills = append(skills, sk)
		}
		t.Skills = skills
		t.Origin = keys.Normalize(t.Origin)
		if t.Origin != "" {
			if _, ok := c.origins[t.Origin]; !ok {
				logging.Warn("template references unknown origin", logging.Fields{constants.LogFieldTemplate: k, constants.LogFieldOrigin: t.Origin})
			}
		}
		c.templates[k] = t
	}
	return c, nil
}

func addMoves(dst map[string]game.Move, src map[string]game.Move, kind string) error {
	for raw, m := range src {
		k := keys.Normalize(raw)
		if k == "" {
			return fmt.Errorf("%s with empty key", kind)
		}
		if _, dup := dst[k]; dup {
			return fmt.Errorf("duplicate %s key '%s'", kind, raw)
		}
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("%s '%s' missing 'name'", kind, raw)
		}
		if !m.Type.Valid() {
			return fmt.Errorf("%s '%s' has invalid type '%s'", kind, raw, m.Type)
		}
		switch m.Target {
		case game.TargetEnemy, game.TargetAlly, game.TargetSelf:
		case "":
			m.Target = game.TargetEnemy
		default:
			return fmt.Errorf("%s '%s' has invalid target '%s'", kind, raw, m.Target)
		}
		if m.CostType == "" {
			m.CostType = game.CostNone
		}
		if m.Element == "" {
			m.Element = "physical"
		}
		m.Key = k
		dst[k] = m
	}
	return nil
}

// Move returns the descriptor for key.
func (c *Catalog) Move(key string) (game.Move, bool) {
	m, ok := c.moves[keys.Normalize(key)]
	return m, ok
}

// Lookup resolves key to a descriptor, degrading to the basic attack when
// the key is unknown.
func (c *Catalog) Lookup(key string) game.Move {
	if m, ok := c.Move(key); ok {
		return m
	}
	logging.Warn("unknown move key; using basic attack", logging.Fields{constants.LogFieldMove: key})
	return game.BasicAttack()
}

// ResolveMoves maps a skill list to descriptors in list order.
func (c *Catalog) ResolveMoves(skills []string) []game.Move {
	out := make([]game.Move, 0, len(skills))
	for _, s := range skills {
		out = append(out, c.Lookup(s))
	}
	return out
}

// Origin returns the origin (passive) skill registered under key.
func (c *Catalog) Origin(key string) (game.Move, bool) {
	if key == "" {
		return game.Move{}, false
	}
	m, ok := c.origins[keys.Normalize(key)]
	return m, ok
}

// Template returns the actor template registered under key.
func (c *Catalog) Template(key string) (game.Template, bool) {
	t, ok := c.templates[keys.Normalize(key)]
	return t, ok
}

// Moves lists all moves sorted by key.
func (c *Catalog) Moves() []game.Move {
	out := make([]game.Move, 0, len(c.moves))
	for _, m := range c.moves {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Templates lists all templates sorted by key.
func (c *Catalog) Templates() []game.Template {
	out := make([]game.Template, 0, len(c.templates))
	for _, t := range c.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
