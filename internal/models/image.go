package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IdeaImage struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	IdeaID    uuid.UUID `json:"ideaId" gorm:"type:uuid;index;not null"`
	URL       string    `json:"url" gorm:"not null"`
	ObjectKey string    `json:"-" gorm:"not null"` // storage key, kept for cleanup
	Index     int       `json:"index" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (i *IdeaImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
