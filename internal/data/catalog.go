package data

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/forestguard/internal/effect"
)

//go:embed archetypes.yaml
var embeddedArchetypes []byte

// ErrNotFound is returned when an archetype id is not in the catalog.
var ErrNotFound = errors.New("archetype not found")

// Source loads archetypes from a backing store (see db.ArchetypeRepository).
type Source interface {
	LoadAll(ctx context.Context) ([]Archetype, error)
}

// Catalog is an immutable, validated set of archetypes.
// Safe for concurrent reads.
type Catalog struct {
	byID  map[string]*Archetype
	order []*Archetype
}

type catalogFile struct {
	Archetypes []Archetype `yaml:"archetypes"`
}

// NewCatalog validates list and builds a catalog preserving its order.
func NewCatalog(list []Archetype) (*Catalog, error) {
	c := &Catalog{
		byID:  make(map[string]*Archetype, len(list)),
		order: make([]*Archetype, 0, len(list)),
	}

	var errs []error
	for i := range list {
		a := &list[i]
		if err := validate(a); err != nil {
			errs = append(errs, fmt.Errorf("archetype #%d (%q): %w", i, a.ID, err))
			continue
		}
		if _, dup := c.byID[a.ID]; dup {
			errs = append(errs, fmt.Errorf("archetype #%d: duplicate id %q", i, a.ID))
			continue
		}
		c.byID[a.ID] = a
		c.order = append(c.order, a)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

func validate(a *Archetype) error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("empty id")
	}
	if a.Level < 0 {
		return fmt.Errorf("negative level %d", a.Level)
	}
	if a.Base.Health <= 0 {
		return fmt.Errorf("base health must be positive, got %v", a.Base.Health)
	}
	for _, def := range a.OnHit {
		if !effect.Known(def.Effect) {
			return fmt.Errorf("unknown on_hit effect %q", def.Effect)
		}
	}
	return nil
}

// Parse decodes a YAML catalog document.
func Parse(raw []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing archetypes: %w", err)
	}
	return NewCatalog(f.Archetypes)
}

// LoadEmbedded loads the catalog shipped with the binary.
func LoadEmbedded() (*Catalog, error) {
	c, err := Parse(embeddedArchetypes)
	if err != nil {
		return nil, fmt.Errorf("loading embedded archetypes: %w", err)
	}
	slog.Info("loaded archetypes", "source", "embedded", "count", c.Len())
	return c, nil
}

// LoadFile loads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading archetypes %s: %w", path, err)
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("loading archetypes %s: %w", path, err)
	}
	slog.Info("loaded archetypes", "source", path, "count", c.Len())
	return c, nil
}

// Load builds a catalog from src.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	list, err := src.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading archetypes: %w", err)
	}
	c, err := NewCatalog(list)
	if err != nil {
		return nil, err
	}
	slog.Info("loaded archetypes", "source", "database", "count", c.Len())
	return c, nil
}

// EmbeddedArchetypes returns a fresh copy of the shipped archetypes (seeding a store).
func EmbeddedArchetypes() ([]Archetype, error) {
	var f catalogFile
	if err := yaml.Unmarshal(embeddedArchetypes, &f); err != nil {
		return nil, fmt.Errorf("parsing archetypes: %w", err)
	}
	return f.Archetypes, nil
}

// Get returns the archetype by id.
func (c *Catalog) Get(id string) (*Archetype, error) {
	a, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return a, nil
}

// All returns archetypes in catalog order.
func (c *Catalog) All() []*Archetype {
	out := make([]*Archetype, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of archetypes.
func (c *Catalog) Len() int {
	return len(c.order)
}
