package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Idea struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	CreatorID   uuid.UUID `json:"creatorId" gorm:"type:uuid;index;not null"`
	Creator     User      `json:"-" gorm:"foreignKey:CreatorID"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	Images      []IdeaImage  `json:"-" gorm:"foreignKey:IdeaID"`
	Likes       []Like       `json:"-" gorm:"foreignKey:IdeaID"`
	Connections []Connection `json:"-" gorm:"foreignKey:IdeaID"`

	// Filled by list queries via COUNT subselects; the like/connection
	// rows stay authoritative, nothing is stored.
	LikeCount       int64 `json:"-" gorm:"->;-:migration"`
	ConnectionCount int64 `json:"-" gorm:"->;-:migration"`
}

func (i *Idea) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// IdeaRef is the compact reference embedded in profile listings.
type IdeaRef struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

func (i *Idea) Ref() IdeaRef {
	return IdeaRef{ID: i.ID, Title: i.Title}
}

// IdeaView is the serializable list/detail view of an idea with the
// creator's public fields and derived counts.
type IdeaView struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Creator         PublicUser `json:"creator"`
	Images          []string   `json:"images"`
	ImageCount      int        `json:"imageCount"`
	HasImages       bool       `json:"hasImages"`
	LikeCount       int64      `json:"likeCount"`
	ConnectionCount int64      `json:"connectionCount"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// View builds an IdeaView from a loaded idea. Images and Creator must be
// preloaded; counts are taken from the given values.
func (i *Idea) View(likeCount, connectionCount int64) IdeaView {
	images := make([]string, 0, len(i.Images))
	for _, img := range i.Images {
		images = append(images, img.URL)
	}
	return IdeaView{
		ID:              i.ID,
		Title:           i.Title,
		Description:     i.Description,
		Creator:         i.Creator.Public(),
		Images:          images,
		ImageCount:      len(images),
		HasImages:       len(images) > 0,
		LikeCount:       likeCount,
		ConnectionCount: connectionCount,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}
