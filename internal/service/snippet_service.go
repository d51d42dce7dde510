package service

import (
	"bytes"
	"errors"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/snippetlog/internal/db"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gorm.io/gorm"
)

var (
	ErrSnippetNotFound = errors.New("snippet not found")
	ErrTitleInvalid    = errors.New("snippet title must contain at least one letter or digit")
	ErrSlugConflict    = errors.New("another snippet already uses this slug")
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
	)
	sanitizer   = bluemonday.UGCPolicy()
	tagStripper = bluemonday.StrictPolicy()
)

// SnippetService wraps snippet related database operations.
type SnippetService struct {
	db *gorm.DB
}

// SnippetInput represents fields accepted when creating or updating a snippet.
type SnippetInput struct {
	Title string
	Body  string
}

// NewSnippetService creates a SnippetService instance.
func NewSnippetService(gdb *gorm.DB) *SnippetService {
	return &SnippetService{db: gdb}
}

// ListAll returns every snippet in primary-key order.
func (s *SnippetService) ListAll() ([]db.Snippet, error) {
	var snippets []db.Snippet
	if err := s.db.Order("id asc").Find(&snippets).Error; err != nil {
		return nil, err
	}
	return snippets, nil
}

// Get fetches a snippet by id.
func (s *SnippetService) Get(id uint) (*db.Snippet, error) {
	var snippet db.Snippet
	if err := s.db.First(&snippet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSnippetNotFound
		}
		return nil, err
	}
	return &snippet, nil
}

// GetBySlug fetches a snippet by its derived slug.
func (s *SnippetService) GetBySlug(slug string) (*db.Snippet, error) {
	var snippet db.Snippet
	if err := s.db.Where("slug = ?", slug).First(&snippet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSnippetNotFound
		}
		return nil, err
	}
	return &snippet, nil
}

// Create persists a new snippet. The slug itself is derived in the model's
// save hook; Create only validates that the derived slug is usable and free.
func (s *SnippetService) Create(input SnippetInput) (*db.Snippet, error) {
	if err := s.checkSlug(input.Title, 0); err != nil {
		return nil, err
	}

	snippet := db.Snippet{
		Title:   strings.TrimSpace(input.Title),
		Body:    input.Body,
		Summary: summarizeBody(input.Body),
	}

	if err := s.db.Create(&snippet).Error; err != nil {
		return nil, err
	}
	return &snippet, nil
}

// Update applies updates to an existing snippet. Retitling rederives the
// slug, so the same conflict check applies as on create.
func (s *SnippetService) Update(id uint, input SnippetInput) (*db.Snippet, error) {
	snippet, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := s.checkSlug(input.Title, id); err != nil {
		return nil, err
	}

	snippet.Title = strings.TrimSpace(input.Title)
	snippet.Body = input.Body
	snippet.Summary = summarizeBody(input.Body)

	if err := s.db.Save(snippet).Error; err != nil {
		return nil, err
	}
	return snippet, nil
}

// Delete removes a snippet by id.
func (s *SnippetService) Delete(id uint) error {
	snippet, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.db.Delete(snippet).Error
}

// checkSlug rejects titles whose derived slug is empty or already owned by
// a different snippet. The unique index on the column backstops races.
func (s *SnippetService) checkSlug(title string, excludeID uint) error {
	slug := db.Slugify(title)
	if slug == "" {
		return ErrTitleInvalid
	}

	var count int64
	query := s.db.Model(&db.Snippet{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugConflict
	}
	return nil
}

// summarizeBody renders the markdown body, sanitizes it, strips all markup
// and truncates the remaining plain text into a short summary.
func summarizeBody(body string) string {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(body), &buf); err != nil {
		return ""
	}

	safe := sanitizer.SanitizeBytes(buf.Bytes())
	plain := html.UnescapeString(tagStripper.Sanitize(string(safe)))
	plain = strings.Join(strings.Fields(plain), " ")
	if plain == "" {
		return ""
	}

	const limit = 120
	if utf8.RuneCountInString(plain) <= limit {
		return plain
	}

	runes := []rune(plain)
	return string(runes[:limit]) + "…"
}
