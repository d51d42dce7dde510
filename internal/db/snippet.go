package db

import (
	"strings"

	"gorm.io/gorm"
)

// Snippet is a slug-addressed piece of content.
// The slug is always derived from the title, never set directly.
type Snippet struct {
	gorm.Model
	Title   string `gorm:"not null"`
	Slug    string `gorm:"uniqueIndex"`
	Summary string
	Body    string `gorm:"type:text"`
}

// BeforeSave rederives the slug from the current title so the two can
// never drift apart, including on updates. Retitling a snippet therefore
// changes its public URL.
func (s *Snippet) BeforeSave(tx *gorm.DB) error {
	s.Title = strings.TrimSpace(s.Title)
	s.Slug = Slugify(s.Title)
	return nil
}

// AbsoluteURL returns the public path for the snippet, the default
// location convention consumed by the sitemap.
func (s *Snippet) AbsoluteURL() string {
	return "/" + s.Slug
}
