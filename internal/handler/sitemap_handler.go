package handler

import (
	"encoding/xml"
	"net/http"

	"github.com/gin-gonic/gin"
)

// urlSet mirrors the sitemaps.org urlset/url/loc schema.
type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ShowSitemap renders the aggregated sitemap across all registered
// providers as one XML document.
func (a *API) ShowSitemap(c *gin.Context) {
	locations, err := a.sitemap.Locations()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to build sitemap")
		return
	}

	doc := urlSet{Xmlns: sitemapNamespace, URLs: make([]sitemapURL, 0, len(locations))}
	for _, loc := range locations {
		doc.URLs = append(doc.URLs, sitemapURL{Loc: loc})
	}

	c.XML(http.StatusOK, doc)
}
