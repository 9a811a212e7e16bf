package model

import "time"

type Post struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	OwnerID   int64     `db:"user_id"`
	Owner     *User     `db:"-"`
}

func (p *Post) Kind() string { return "post" }

func (p *Post) Attributes() map[string]any {
	var owner any
	if p.Owner != nil {
		owner = p.Owner
	}
	return map[string]any{
		"id":         p.ID,
		"title":      p.Title,
		"content":    p.Content,
		"created_at": p.CreatedAt,
		"owner":      owner,
	}
}

// PostInput is the client-controlled part of a post. Nil means the field was
// absent or null in the payload.
type PostInput struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Apply copies the present fields of in onto p.
func (p *Post) Apply(in PostInput) {
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
}

// Input returns the client-controlled fields of p.
func (p *Post) Input() PostInput {
	title, content := p.Title, p.Content
	return PostInput{Title: &title, Content: &content}
}
