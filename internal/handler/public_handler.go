package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ShowAbout serves the static about view.
func (a *API) ShowAbout(c *gin.Context) {
	c.String(http.StatusOK, "about page")
}

// ShowSnippetDetail resolves a snippet by slug and echoes it, or 404s
// when no record matches.
func (a *API) ShowSnippetDetail(c *gin.Context) {
	slug := c.Param("slug")

	snippet, err := a.snippets.GetBySlug(slug)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	c.String(http.StatusOK, "the detailview for slug of %s", snippet.Slug)
}
