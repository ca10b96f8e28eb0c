package models

import "time"

// Author is the part of the user record embedded in listed posts.
type Author struct {
	Name string `json:"nome"`
}

type Post struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"titulo" db:"title"`
	Content   string    `json:"conteudo" db:"content"`
	AuthorID  string    `json:"usuarioId" db:"author_id"`
	CreatedAt time.Time `json:"dataCriacao" db:"created_at"`
	Author    *Author   `json:"usuario,omitempty"`
}
