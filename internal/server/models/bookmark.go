package models

import "time"

// Bookmark is a saved link owned by exactly one user.
type Bookmark struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BookmarkPatch carries a partial bookmark update; nil fields are left unchanged.
type BookmarkPatch struct {
	Title       *string
	Description *string
	Link        *string
}

func (p BookmarkPatch) Apply(b *Bookmark) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Link != nil {
		b.Link = *p.Link
	}
}
