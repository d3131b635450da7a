package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post represents a blog post owned by its author. The author is set at
// creation and is the only user allowed to update or delete the post.
type Post struct {
	ID         uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Title      string     `json:"title" gorm:"size:255;not null"`
	Slug       string     `json:"slug" gorm:"size:255;not null;index"`
	Content    string     `json:"content" gorm:"type:text;not null"`
	AuthorID   uuid.UUID  `json:"author_id" gorm:"type:char(36);not null;index"`
	CategoryID *uuid.UUID `json:"category_id,omitempty" gorm:"type:char(36);index"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Relations
	Author   *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

// BeforeCreate sets the UUID before creating the record.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
