package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/rohits-web03/ideaorbit/internal/api/middleware"
	"github.com/rohits-web03/ideaorbit/internal/models"
	"github.com/rohits-web03/ideaorbit/internal/repositories"
	"github.com/rohits-web03/ideaorbit/internal/utils"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// UserHandler owns profile reads/updates and account deletion.
type UserHandler struct {
	DB      *gorm.DB
	Storage repositories.ObjectStorage
	Counts  *repositories.Counts
}

func NewUserHandler(db *gorm.DB, storage repositories.ObjectStorage, counts *repositories.Counts) *UserHandler {
	return &UserHandler{DB: db, Storage: storage, Counts: counts}
}

// GET /users/profile
// GetProfile godoc
// @Summary Fetch own profile
// @Description Returns the requester's profile with liked ideas, outbound connections and connections received on their ideas.
// @Tags Users
// @Produce json
// @Success 200 {object} utils.Payload
// @Security BearerAuth
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{Message: "Unauthorized"})
		return
	}

	var likes []models.Like
	if err := h.DB.Preload("Idea").Where("user_id = ?", user.ID).
		Order("created_at DESC").Find(&likes).Error; err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{Message: "Database error"})
		return
	}

	var outbound []models.Connection
	if err := h.DB.Preload("Idea").Where("user_id = ?", user.ID).
		Order("created_at DESC").Find(&outbound).Error; err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{Message: "Database error"})
		return
	}

	// Inbound entries are derived from the same connection rows, keyed by
	// the ideas this user created.
	var inbound []models.Connection
	if err := h.DB.Preload("Idea").Preload("User").
		Joins("JOIN ideas ON ideas.id = connections.idea_id").
		Where("ideas.creator_id = ?", user.ID).
		Order("connections.created_at DESC").
		Find(&inbound).Error; err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{Message: "Database error"})
		return
	}

	likedIdeas := make([]models.IdeaRef, 0, len(likes))
	for i := range likes {
		likedIdeas = append(likedIdeas, likes[i].Idea.Ref())
	}

	connectedIdeas := make([]models.ConnectedIdea, 0, len(outbound))
	for i := range outbound {
		connectedIdeas = append(connectedIdeas, models.ConnectedIdea{
			Idea:      outbound[i].Idea.Ref(),
			Message:   outbound[i].Message,
			CreatedAt: outbound[i].CreatedAt,
		})
	}

	receivedConnections := make([]models.ReceivedConnection, 0, len(inbound))
	for i := range inbound {
		receivedConnections = append(receivedConnections, models.ReceivedConnection{
			Idea:        inbound[i].Idea.Ref(),
			ConnectedBy: inbound[i].User.Public(),
			Message:     inbound[i].Message,
			CreatedAt:   inbound[i].CreatedAt,
		})
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: "Profile retrieved successfully",
		Data: map[string]any{
			"user":                user.Public(),
			"likedIdeas":          likedIdeas,
			"connectedIdeas":      connectedIdeas,
			"receivedConnections": receivedConnections,
		},
	})
}

// PUT /users/profile
// UpdateProfile godoc
// @Summary Edit own profile
// @Description Patches optional profile fields after length validation.
// @Tags Users
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Security BearerAuth
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{Message: "Unauthorized"})
		return
	}

	var input struct {
		FirstName   *string `json:"firstName"`
		LastName    *string `json:"lastName"`
		Role        *string `json:"role"`
		Description *string `json:"description"`
		Link        *string `json:"link"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Message: "Invalid input",
		})
		return
	}

	updates := map[string]any{}
	check := func(name, column string, value *string, rule utils.Rule) bool {
		if value == nil {
			return true
		}
		rule.Name = name
		rule.Value = *value
		if err := utils.Validate(rule); err != nil {
			utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{Message: err.Error()})
			return false
		}
		updates[column] = *value
		return true
	}

	if !check("firstName", "first_name", input.FirstName, utils.Rule{Required: true, Max: 50}) {
		return
	}
	if !check("lastName", "last_name", input.LastName, utils.Rule{Required: true, Max: 50}) {
		return
	}
	if !check("role", "role", input.Role, utils.Rule{Max: 100}) {
		return
	}
	if !check("description", "description", input.Description, utils.Rule{Max: 1000}) {
		return
	}
	if !check("link", "link", input.Link, utils.Rule{Max: 500}) {
		return
	}

	if len(updates) > 0 {
		if err := h.DB.Model(user).Updates(updates).Error; err != nil {
			utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
				Message: "Failed to update profile",
			})
			return
		}
		if err := h.DB.First(user, "id = ?", user.ID).Error; err != nil {
			utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
				Message: "Database error",
			})
			return
		}
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: "Profile updated successfully",
		Data:    map[string]any{"user": user.Public()},
	})
}

// DELETE /users/liked-ideas/{ideaId}
// UnlikeIdea godoc
// @Summary Remove a like by idea id
// @Tags Users
// @Produce json
// @Param ideaId path string true "Idea id"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Security BearerAuth
// @Router /users/liked-ideas/{ideaId} [delete]
func (h *UserHandler) UnlikeIdea(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{Message: "Unauthorized"})
		return
	}

	ideaID, err := uuid.Parse(r.PathValue("ideaId"))
	if err != nil {
		utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
			Message: "Like not found",
		})
		return
	}

	res := h.DB.Where("user_id = ? AND idea_id = ?", user.ID, ideaID).Delete(&models.Like{})
	if res.Error != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Message: "Database error",
		})
		return
	}
	if res.RowsAffected == 0 {
		utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
			Message: "Like not found",
		})
		return
	}

	h.Counts.Invalidate(r.Context(), ideaID)

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: "Idea unliked",
	})
}

// DELETE /users/account
// DeleteAccount godoc
// @Summary Delete own account
// @Description Removes the user, every idea they created, and all likes and connections either side of them, in one transaction. Stored images are cleaned up best-effort.
// @Tags Users
// @Produce json
// @Success 200 {object} utils.Payload
// @Security BearerAuth
// @Router /users/account [delete]
func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{Message: "Unauthorized"})
		return
	}

	var ideaIDs []uuid.UUID
	if err := h.DB.Model(&models.Idea{}).Where("creator_id = ?", user.ID).
		Pluck("id", &ideaIDs).Error; err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{Message: "Database error"})
		return
	}

	var images []models.IdeaImage
	if len(ideaIDs) > 0 {
		if err := h.DB.Where("idea_id IN ?", ideaIDs).Find(&images).Error; err != nil {
			utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{Message: "Database error"})
			return
		}
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if len(ideaIDs) > 0 {
			if err := tx.Where("idea_id IN ?", ideaIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("idea_id IN ?", ideaIDs).Delete(&models.Connection{}).Error; err != nil {
				return err
			}
			if err := tx.Where("idea_id IN ?", ideaIDs).Delete(&models.IdeaImage{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Connection{}).Error; err != nil {
			return err
		}
		if len(ideaIDs) > 0 {
			if err := tx.Where("creator_id = ?", user.ID).Delete(&models.Idea{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(user).Error
	})
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Message: "Failed to delete account",
		})
		return
	}

	for _, id := range ideaIDs {
		h.Counts.Invalidate(r.Context(), id)
	}

	if h.Storage != nil && len(images) > 0 {
		ctx, cancel := contextWithCleanupTimeout()
		defer cancel()
		g := new(errgroup.Group)
		for _, img := range images {
			g.Go(func() error {
				if err := h.Storage.Delete(ctx, img.ObjectKey); err != nil {
					log.Printf("Failed to delete stored image %q: %v", img.ObjectKey, err)
				}
				return nil
			})
		}
		_ = g.Wait()
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: "Account deleted successfully",
	})
}
