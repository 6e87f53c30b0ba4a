package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like marks that a user liked an idea. The unique index makes a duplicate
// like impossible even under concurrent requests.
type Like struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_idea"`
	IdeaID    uuid.UUID `json:"ideaId" gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_idea"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	Idea      Idea      `json:"-" gorm:"foreignKey:IdeaID"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
