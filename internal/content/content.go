// Package content holds the storefront copy that lives in the repository
// rather than in the commerce system: bundle details, mission pages and the
// collection routes.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/phenrril/brainbattle/internal/domain"
)

//go:embed data/*.yaml
var embedded embed.FS

type bundleYAML struct {
	Handle            string   `yaml:"handle"`
	DisplayName       string   `yaml:"display_name"`
	Subject           string   `yaml:"subject"`
	AgeRange          string   `yaml:"age_range"`
	IncludesAppAccess bool     `yaml:"includes_app_access"`
	MissionPackSlug   string   `yaml:"mission_pack_slug"`
	WhatsInside       []string `yaml:"whats_inside"`
	IdealFor          []string `yaml:"ideal_for"`
}

type missionYAML struct {
	Slug             string   `yaml:"slug"`
	Label            string   `yaml:"label"`
	ShortLabel       string   `yaml:"short_label"`
	Tagline          string   `yaml:"tagline"`
	Color            string   `yaml:"color"`
	AgeRange         string   `yaml:"age_range"`
	Description      string   `yaml:"description"`
	WhatTheyPractice []string `yaml:"what_they_practice"`
	WhatParentsGet   []string `yaml:"what_parents_get"`
	IdealFor         []string `yaml:"ideal_for"`
}

type collectionYAML struct {
	Route        string `yaml:"route"`
	Handle       string `yaml:"handle"`
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
	HeroGradient string `yaml:"hero_gradient"`
}

// Catalog is read-only after Load and safe for concurrent use.
type Catalog struct {
	bundles      map[string]domain.BundleInfo
	missions     map[string]domain.Mission
	missionOrder []string
	pages        map[string]domain.CollectionPage
	pageOrder    []string
}

// Load parses the content shipped with the binary.
func Load() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadFS parses bundles.yaml, missions.yaml and collections.yaml from fsys.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	var (
		bundles     []bundleYAML
		missions    []missionYAML
		collections []collectionYAML
	)
	if err := decodeFile(fsys, "bundles.yaml", &bundles); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, "missions.yaml", &missions); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, "collections.yaml", &collections); err != nil {
		return nil, err
	}

	c := &Catalog{
		bundles:  make(map[string]domain.BundleInfo, len(bundles)),
		missions: make(map[string]domain.Mission, len(missions)),
		pages:    make(map[string]domain.CollectionPage, len(collections)),
	}
	for _, b := range bundles {
		if b.Handle == "" {
			return nil, fmt.Errorf("bundles.yaml: entry without handle")
		}
		if _, dup := c.bundles[b.Handle]; dup {
			return nil, fmt.Errorf("bundles.yaml: duplicate handle %q", b.Handle)
		}
		info := domain.BundleInfo{
			Handle:            b.Handle,
			DisplayName:       b.DisplayName,
			Subject:           b.Subject,
			AgeRange:          b.AgeRange,
			IncludesAppAccess: b.IncludesAppAccess,
			WhatsInside:       b.WhatsInside,
			IdealFor:          b.IdealFor,
		}
		if b.MissionPackSlug != "" {
			slug := b.MissionPackSlug
			info.MissionPackSlug = &slug
		}
		c.bundles[b.Handle] = info
	}
	for _, m := range missions {
		if m.Slug == "" {
			return nil, fmt.Errorf("missions.yaml: entry without slug")
		}
		if _, dup := c.missions[m.Slug]; dup {
			return nil, fmt.Errorf("missions.yaml: duplicate slug %q", m.Slug)
		}
		color := domain.MissionColor(strings.ToLower(m.Color))
		if !color.Valid() {
			return nil, fmt.Errorf("missions.yaml: mission %q has unknown color %q", m.Slug, m.Color)
		}
		short := m.ShortLabel
		if short == "" {
			short = m.Label
		}
		c.missions[m.Slug] = domain.Mission{
			Slug:             m.Slug,
			Label:            m.Label,
			ShortLabel:       short,
			Tagline:          m.Tagline,
			Color:            color,
			AgeRange:         m.AgeRange,
			Description:      strings.TrimSpace(m.Description),
			WhatTheyPractice: m.WhatTheyPractice,
			WhatParentsGet:   m.WhatParentsGet,
			IdealFor:         m.IdealFor,
		}
		c.missionOrder = append(c.missionOrder, m.Slug)
	}
	for _, p := range collections {
		if p.Route == "" || p.Handle == "" {
			return nil, fmt.Errorf("collections.yaml: route and handle are required")
		}
		if _, dup := c.pages[p.Route]; dup {
			return nil, fmt.Errorf("collections.yaml: duplicate route %q", p.Route)
		}
		c.pages[p.Route] = domain.CollectionPage{
			Route:        p.Route,
			Handle:       p.Handle,
			Title:        p.Title,
			Description:  p.Description,
			HeroGradient: p.HeroGradient,
		}
		c.pageOrder = append(c.pageOrder, p.Route)
	}
	return c, nil
}

func decodeFile(fsys fs.FS, name string, out any) error {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func (c *Catalog) Bundle(handle string) (domain.BundleInfo, bool) {
	b, ok := c.bundles[handle]
	return b, ok
}

func (c *Catalog) Mission(slug string) (domain.Mission, bool) {
	m, ok := c.missions[slug]
	return m, ok
}

// Missions returns every mission in file order.
func (c *Catalog) Missions() []domain.Mission {
	out := make([]domain.Mission, 0, len(c.missionOrder))
	for _, slug := range c.missionOrder {
		out = append(out, c.missions[slug])
	}
	return out
}

func (c *Catalog) CollectionPage(route string) (domain.CollectionPage, bool) {
	p, ok := c.pages[route]
	return p, ok
}

func (c *Catalog) CollectionPages() []domain.CollectionPage {
	out := make([]domain.CollectionPage, 0, len(c.pageOrder))
	for _, r := range c.pageOrder {
		out = append(out, c.pages[r])
	}
	return out
}

var _ domain.ContentLookup = (*Catalog)(nil)
