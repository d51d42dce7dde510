package handler

import (
	"github.com/snippetlog/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	snippets *service.SnippetService
	sitemap  *service.SitemapService
}

// NewAPI constructs a handler set with shared services. reverse resolves
// route names to paths for the sitemap's static section.
func NewAPI(db *gorm.DB, baseURL string, reverse func(string) string) *API {
	sitemap := service.NewSitemapService(baseURL)
	sitemap.Register("static", service.NewStaticViewProvider(reverse, "about"))
	sitemap.Register("snippets", service.NewSnippetProvider(db))

	return &API{
		db:       db,
		snippets: service.NewSnippetService(db),
		sitemap:  sitemap,
	}
}
