package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID        int64        `gorm:"primaryKey" json:"id"`
	AuthorID  int64        `gorm:"not null;index" json:"author_id"`
	Author    *User        `json:"author,omitempty"`
	Title     string       `gorm:"size:200;not null" json:"title"`
	Content   string       `gorm:"type:text;not null" json:"content"`
	Category  PostCategory `gorm:"size:24;not null;index" json:"category"`
	Comments  []Comment    `json:"-"`
	CreatedAt time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Comment belongs to a post. Top-level comments have no parent; replies point
// at the comment they answer and form a tree.
type Comment struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	PostID    int64     `gorm:"not null;index" json:"post_id"`
	ParentID  *int64    `gorm:"index" json:"parent_id,omitempty"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	User      *User     `json:"user,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Replies   []Comment `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL" json:"replies"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is a direct message between two users. Its key is a UUID string.
type Message struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	SenderID   int64      `gorm:"not null;index" json:"sender_id"`
	Sender     *User      `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	ReceiverID int64      `gorm:"not null;index" json:"receiver_id"`
	Receiver   *User      `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	Body       string     `gorm:"type:text;not null" json:"body"`
	SentAt     time.Time  `gorm:"not null;index" json:"sent_at"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
}

func (m *Message) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.SentAt.IsZero() {
		m.SentAt = time.Now().UTC()
	}
	return nil
}
