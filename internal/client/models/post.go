package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Author is the subset of the author record the backend embeds in posts.
type Author struct {
	Name string `json:"nome"`
}

// Post is a blog entry. AuthorID is fixed at creation.
type Post struct {
	ID        ID        `json:"id"`
	Title     string    `json:"titulo"`
	Content   string    `json:"conteudo"`
	AuthorID  ID        `json:"usuarioId"`
	CreatedAt Timestamp `json:"dataCriacao"`
	Author    *Author   `json:"usuario,omitempty"`
}

// AuthorName returns the embedded author name or the anonymous placeholder.
func (p Post) AuthorName() string {
	if p.Author == nil || p.Author.Name == "" {
		return "Usuário Anônimo"
	}
	return p.Author.Name
}

// NewPost is the body of POST /posts.
type NewPost struct {
	Title     string    `json:"titulo"`
	Content   string    `json:"conteudo"`
	AuthorID  ID        `json:"usuarioId"`
	CreatedAt time.Time `json:"dataCriacao"`
}

// PostUpdate is the body of PUT /posts/:id. It has no author field, so an
// edit can never move a post to another author.
type PostUpdate struct {
	Title   string `json:"titulo"`
	Content string `json:"conteudo"`
}

// zone-less layouts are read in local time
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// Timestamp is a creation date as sent by the backend. Anything that does not
// parse decodes to the zero time instead of failing the whole response.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	t.Time = time.Time{}

	var s string
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) || json.Unmarshal(b, &s) != nil {
		return nil
	}

	if v, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = v
		return nil
	}
	for _, layout := range timestampLayouts {
		if v, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			t.Time = v
			return nil
		}
	}
	return nil
}
