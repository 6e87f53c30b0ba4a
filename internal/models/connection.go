package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Connection is an outreach from a user to an idea's creator, carrying a
// message. One row serves both sides of the relationship: the sender's
// "connected ideas" and the creator's "received connections" are queries
// over the same table, so the two views can never drift apart.
type Connection struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_connections_user_idea"`
	IdeaID     uuid.UUID `json:"ideaId" gorm:"type:uuid;not null;uniqueIndex:idx_connections_user_idea"`
	User       User      `json:"-" gorm:"foreignKey:UserID"`
	Idea       Idea      `json:"-" gorm:"foreignKey:IdeaID"`
	Message    string    `json:"message" gorm:"type:text;not null"`
	SocialLink string    `json:"socialLink"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (c *Connection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ConnectionView is the serializable view of a connection on an idea's
// detail page.
type ConnectionView struct {
	User      PublicUser `json:"user"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (c *Connection) View() ConnectionView {
	return ConnectionView{
		User:      c.User.Public(),
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
	}
}

// ConnectedIdea is one entry of a user's outbound connections.
type ConnectedIdea struct {
	Idea      IdeaRef   `json:"idea"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReceivedConnection is one inbound connection on an idea the profile
// owner created.
type ReceivedConnection struct {
	Idea        IdeaRef    `json:"idea"`
	ConnectedBy PublicUser `json:"connectedBy"`
	Message     string     `json:"message"`
	CreatedAt   time.Time  `json:"createdAt"`
}
