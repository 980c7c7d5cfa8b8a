package domain

import (
	"strings"
	"time"
)

// Paper is a reference publication. Papers relate to experiments only by
// topic, never by a stored key.
type Paper struct {
	ID          string     `json:"id"`
	Title       string     `json:"title" validate:"required"`
	Summary     string     `json:"summary" validate:"required"`
	URL         string     `json:"url" validate:"required,url"`
	Relevance   int        `json:"relevance" validate:"gte=0,lte=100"`
	Authors     []string   `json:"authors"`
	Keywords    []string   `json:"keywords"`
	Citations   int        `json:"citations" validate:"gte=0"`
	PublishedAt *time.Time `json:"publishDate,omitempty"`
}

// PaperInput is a paper as read from the seed catalogue.
type PaperInput struct {
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	URL         string     `json:"url"`
	Relevance   int        `json:"relevance"`
	Authors     []string   `json:"authors,omitempty"`
	Keywords    []string   `json:"keywords,omitempty"`
	Citations   int        `json:"citations,omitempty"`
	PublishedAt *time.Time `json:"publishDate,omitempty"`
}

func NewPaper(id string, in PaperInput) (*Paper, error) {
	p := &Paper{
		ID:          id,
		Title:       strings.TrimSpace(in.Title),
		Summary:     strings.TrimSpace(in.Summary),
		URL:         strings.TrimSpace(in.URL),
		Relevance:   in.Relevance,
		Authors:     nonNil(in.Authors),
		Keywords:    nonNil(in.Keywords),
		Citations:   in.Citations,
		PublishedAt: in.PublishedAt,
	}
	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
