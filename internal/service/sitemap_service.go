package service

import (
	"github.com/snippetlog/internal/db"
	"gorm.io/gorm"
)

// Locatable is anything that can report its own URL path.
type Locatable interface {
	AbsoluteURL() string
}

// SitemapProvider enumerates the items of one named sitemap section.
// Enumeration order is the order the items appear in the document.
type SitemapProvider interface {
	Items() ([]Locatable, error)
}

// staticLocation adapts a plain path to the Locatable interface.
type staticLocation string

func (l staticLocation) AbsoluteURL() string { return string(l) }

// StaticViewProvider lists fixed views, resolving each route name to a
// path through a reverse-routing lookup.
type StaticViewProvider struct {
	reverse func(name string) string
	names   []string
}

// NewStaticViewProvider builds a provider over the given route names.
func NewStaticViewProvider(reverse func(string) string, names ...string) *StaticViewProvider {
	return &StaticViewProvider{reverse: reverse, names: names}
}

// Items resolves every registered name. Names without a reverse mapping
// are skipped rather than emitted as empty locations.
func (p *StaticViewProvider) Items() ([]Locatable, error) {
	items := make([]Locatable, 0, len(p.names))
	for _, name := range p.names {
		if path := p.reverse(name); path != "" {
			items = append(items, staticLocation(path))
		}
	}
	return items, nil
}

// SnippetProvider enumerates every persisted snippet in primary-key order.
// Locations fall back to the snippet's own AbsoluteURL convention.
type SnippetProvider struct {
	db *gorm.DB
}

// NewSnippetProvider creates a SnippetProvider instance.
func NewSnippetProvider(gdb *gorm.DB) *SnippetProvider {
	return &SnippetProvider{db: gdb}
}

// Items returns all snippets as locatable entries.
func (p *SnippetProvider) Items() ([]Locatable, error) {
	var snippets []db.Snippet
	if err := p.db.Order("id asc").Find(&snippets).Error; err != nil {
		return nil, err
	}

	items := make([]Locatable, 0, len(snippets))
	for i := range snippets {
		items = append(items, &snippets[i])
	}
	return items, nil
}

// SitemapService aggregates named providers into one ordered location
// list. Nothing is stored; every call re-enumerates the providers.
type SitemapService struct {
	baseURL   string
	names     []string
	providers map[string]SitemapProvider
}

// NewSitemapService creates an empty registry. baseURL, when non-empty,
// is prefixed to every location to produce absolute URLs.
func NewSitemapService(baseURL string) *SitemapService {
	return &SitemapService{
		baseURL:   baseURL,
		providers: make(map[string]SitemapProvider),
	}
}

// Register adds a named provider. Registration order is document order;
// re-registering a name replaces the provider but keeps its position.
func (s *SitemapService) Register(name string, provider SitemapProvider) {
	if _, exists := s.providers[name]; !exists {
		s.names = append(s.names, name)
	}
	s.providers[name] = provider
}

// Locations flattens all providers into the final loc list.
func (s *SitemapService) Locations() ([]string, error) {
	var locations []string
	for _, name := range s.names {
		items, err := s.providers[name].Items()
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			locations = append(locations, s.baseURL+item.AbsoluteURL())
		}
	}
	return locations, nil
}
