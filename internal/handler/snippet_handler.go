package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snippetlog/internal/db"
	"github.com/snippetlog/internal/service"
)

type snippetPayload struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body"`
}

type snippetResponse struct {
	ID      uint   `json:"id"`
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Summary string `json:"summary"`
	Body    string `json:"body"`
}

func toSnippetResponse(s *db.Snippet) snippetResponse {
	return snippetResponse{
		ID:      s.ID,
		Title:   s.Title,
		Slug:    s.Slug,
		Summary: s.Summary,
		Body:    s.Body,
	}
}

// GetSnippets lists all snippets.
func (a *API) GetSnippets(c *gin.Context) {
	snippets, err := a.snippets.ListAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取代码片段失败")
		return
	}

	list := make([]snippetResponse, 0, len(snippets))
	for i := range snippets {
		list = append(list, toSnippetResponse(&snippets[i]))
	}
	c.JSON(http.StatusOK, gin.H{"snippets": list})
}

// GetSnippet returns one snippet by id.
func (a *API) GetSnippet(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	snippet, err := a.snippets.Get(id)
	if err != nil {
		a.respondSnippetError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSnippetResponse(snippet))
}

// CreateSnippet persists a new snippet from a JSON payload.
func (a *API) CreateSnippet(c *gin.Context) {
	var payload snippetPayload
	if !bindJSON(c, &payload, "无效的请求数据") {
		return
	}

	snippet, err := a.snippets.Create(service.SnippetInput{Title: payload.Title, Body: payload.Body})
	if err != nil {
		a.respondSnippetError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSnippetResponse(snippet))
}

// UpdateSnippet applies a JSON payload to an existing snippet.
func (a *API) UpdateSnippet(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload snippetPayload
	if !bindJSON(c, &payload, "无效的请求数据") {
		return
	}

	snippet, err := a.snippets.Update(id, service.SnippetInput{Title: payload.Title, Body: payload.Body})
	if err != nil {
		a.respondSnippetError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSnippetResponse(snippet))
}

// DeleteSnippet removes a snippet by id.
func (a *API) DeleteSnippet(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.snippets.Delete(id); err != nil {
		a.respondSnippetError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已删除"})
}

func (a *API) respondSnippetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSnippetNotFound):
		respondError(c, http.StatusNotFound, "代码片段不存在")
	case errors.Is(err, service.ErrTitleInvalid):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSlugConflict):
		respondError(c, http.StatusConflict, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}
