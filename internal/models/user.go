package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	Password    string    `json:"-" gorm:"not null"`
	FirstName   string    `json:"firstName" gorm:"not null"`
	LastName    string    `json:"lastName" gorm:"not null"`
	Role        string    `json:"role"`
	Description string    `json:"description" gorm:"type:text"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	Likes       []Like       `json:"-" gorm:"foreignKey:UserID"`
	Connections []Connection `json:"-" gorm:"foreignKey:UserID"`
}

// Emails are matched case-insensitively everywhere, so store them folded.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Email = strings.ToLower(u.Email)
	return nil
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// PublicUser is the serializable view of a user: password excluded,
// derived fields included.
type PublicUser struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	FullName       string    `json:"fullName"`
	Role           string    `json:"role,omitempty"`
	Description    string    `json:"description,omitempty"`
	Link           string    `json:"link,omitempty"`
	HasDescription bool      `json:"hasDescription"`
	HasLink        bool      `json:"hasLink"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		FullName:       u.FullName(),
		Role:           u.Role,
		Description:    u.Description,
		Link:           u.Link,
		HasDescription: u.Description != "",
		HasLink:        u.Link != "",
		CreatedAt:      u.CreatedAt,
	}
}
