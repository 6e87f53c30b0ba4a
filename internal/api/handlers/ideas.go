package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/textproto"
	"time"

	"github.com/google/uuid"
	"github.com/rohits-web03/ideaorbit/internal/api/middleware"
	"github.com/rohits-web03/ideaorbit/internal/api/services"
	"github.com/rohits-web03/ideaorbit/internal/models"
	"github.com/rohits-web03/ideaorbit/internal/repositories"
	"github.com/rohits-web03/ideaorbit/internal/utils"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	maxUploadSize  = 25 << 20 // 25 MB across all images
	maxIdeaImages  = 5
	ideaCountsExpr = "ideas.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.idea_id = ideas.id) AS like_count, " +
		"(SELECT COUNT(*) FROM connections WHERE connections.idea_id = ideas.id) AS connection_count"
)

// IdeaHandler owns the idea lifecycle: CRUD, likes and connections.
type IdeaHandler struct {
	DB      *gorm.DB
	Storage repositories.ObjectStorage
	Mailer  services.Mailer
	Counts  *repositories.Counts
}

func NewIdeaHandler(db *gorm.DB, storage repositories.ObjectStorage, mailer services.Mailer, counts *repositories.Counts) *IdeaHandler {
	return &IdeaHandler{DB: db, Storage: storage, Mailer: mailer, Counts: counts}
}

func titleRule(value string) utils.Rule {
	return utils.Rule{Name: "title", Value: value, Required: true, Min: 3, Max: 100}
}

func descriptionRule(value string) utils.Rule {
	return utils.Rule{Name: "description", Value: value, Required: true, Min: 10, Max: 2000}
}

// findIdea resolves the {id} path value to an idea, writing the 404
// response itself when the idea does not exist.
func (h *IdeaHandler) findIdea(w http.ResponseWriter, r *http.Request, preloads ...string) (*models.Idea, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
			Message: "Idea not found",
		})
		return nil, false
	}

	q := h.DB
	for _, p := range preloads {
		q = q.Preload(p)
	}

	var idea models.Idea
	if err := q.First(&idea, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
				Message: "Idea not found",
			})
		} else {
			utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
				Message: "Database error",
			})
		}
		return nil, false
	}
	return &idea, true
}

// GET /ideas
// ListIdeas godoc
// @Summary List all ideas
// @Description Returns every idea, newest first, with creator public fields and derived counts.
// @Tags Ideas
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /ideas [get]
func (h *IdeaHandler) ListIdeas(w http.ResponseWriter, r *http.Request) {
	var ideas []models.Idea
	err := h.DB.Model(&models.Idea{}).
		Select(ideaCountsExpr).
		Preload("Creator").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("\"index\" ASC") }).
		Order("created_at DESC").
		Find(&ideas).Error
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Message: "Database error",
		})
		return
	}

	views := make([]models.IdeaView, 0, len(ideas))
	for i := range ideas {
		views = append(views, ideas[i].View(ideas[i].LikeCount, ideas[i].ConnectionCount))
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: "Ideas retrieved successfully",
		Data:    map[string]any{"ideas": views},
	})
}

// GET /ideas/{id}
// GetIdea godoc
// @Summary Fetch one idea
// @Description Returns the idea with creator, likers and connectors populated.
// @Tags Ideas
// @Produce json
// @Param id path string true "Idea id"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /ideas/{id} [get]
func (h *IdeaHandler) GetIdea(w http.ResponseWriter, r *http.Request) {
	idea, ok := h.findIdea(w, r, "Creator", "Images", "Likes.User", "Connections.User")
	if !ok {
		return
	}

	likedBy := make([]models.PublicUser, 0, len(idea.Likes))
	for i := range idea.Likes {
		likedBy = append(likedBy, idea.Likes[i].User.Public())
	}
	connectedBy := make([]models.ConnectionView, 0, len(idea.Connections))
	for i := range idea.Connections {
		connectedBy = append(connectedBy, idea.Connections[i].View())
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: "Idea retrieved successfully",
		Data: map[string]any{
			"idea":        idea.View(int64(len(idea.Likes)), int64(len(idea.Connections))),
			"likedBy":     likedBy,
			"connectedBy": connectedBy,
		},
	})
}

// POST /ideas
// CreateIdea godoc
// @Summary Create an idea
// @Description Multipart form with title, description and up to 5 image files. A failed image upload is skipped, not fatal.
// @Tags Ideas
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title (3-100 chars)"
// @Param description formData string true "Description (10-2000 chars)"
// @Param images formData file false "Image files"
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Failure 503 {object} utils.Payload
// @Security BearerAuth
// @Router /ideas [post]
func (h *IdeaHandler) CreateIdea(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{Message: "Unauthorized"})
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Message: "Invalid multipart form",
		})
		return
	}

	title := r.FormValue("title")
	description := r.FormValue("description")
	if err := utils.Validate(titleRule(title), descriptionRule(description)); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Message: err.Error(),
		})
		return
	}

	formFiles := r.MultipartForm.File["images"]
	if len(formFiles) > maxIdeaImages {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Message: fmt.Sprintf("A maximum of %d images is allowed", maxIdeaImages),
		})
		return
	}
	if len(formFiles) > 0 && h.Storage == nil {
		utils.JSONResponse(w, http.StatusServiceUnavailable, utils.Payload{
			Message: "Image storage is unavailable",
		})
		return
	}

	ideaID := uuid.New()
	folder := "ideas/" + ideaID.String()

	// Each image is one round-trip; a failed upload is logged and skipped
	// so the idea is still created with whatever succeeded.
	var images []models.IdeaImage
	for _, handler := range formFiles {
		src, err := handler.Open()
		if err != nil {
			log.Printf("Skipping image %q: %v", handler.Filename, err)
			continue
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			log.Printf("Skipping image %q: %v", handler.Filename, err)
			continue
		}

		contentType := contentTypeOf(handler.Header, data)
		url, key, err := h.Storage.Upload(r.Context(), data, folder, handler.Filename, contentType)
		if err != nil {
			log.Printf("Skipping image %q: upload failed: %v", handler.Filename, err)
			continue
		}

		images = append(images, models.IdeaImage{
			IdeaID:    ideaID,
			URL:       url,
			ObjectKey: key,
			Index:     len(images),
		})
	}

	idea := models.Idea{
		ID:          ideaID,
		Title:       title,
		Description: description,
		CreatorID:   user.ID,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&idea).Error; err != nil {
			return err
		}
		for i := range images {
			if err := tx.Create(&images[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Message: "Failed to store idea",
		})
		return
	}

	idea.Creator = *user
	idea.Images = images

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Message: "Idea created successfully",
		Data:    map[string]any{"idea": idea.View(0, 0)},
	})
}

// PUT /ideas/{id}
// UpdateIdea godoc
// @Summary Edit an idea
// @Description Creator-only patch of title and description with re-validation.
// @Tags Ideas
// @Accept json
// @Produce json
// @Param id path string true "Idea id"
// @Success 200 {object} utils.Payload
// @Failure 403 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Security BearerAuth
// @Router /ideas/{id} [put]
func (h *IdeaHandler) UpdateIdea(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{Message: "Unauthorized"})
		return
	}

	idea, ok := h.findIdea(w, r, "Creator", "Images")
	if !ok {
		return
	}
	if idea.CreatorID != user.ID {
		utils.JSONResponse(w, http.StatusForbidden, utils.Payload{
			Message: "You are not the creator of this idea",
		})
		return
	}

	var input struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
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
	if input.Title != nil {
		if err := utils.Validate(titleRule(*input.Title)); err != nil {
			utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{Message: err.Error()})
			return
		}
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		if err := utils.Validate(descriptionRule(*input.Description)); err != nil {
			utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{Message: err.Error()})
			return
		}
		updates["description"] = *input.Description
	}

	if len(updates) > 0 {
		if err := h.DB.Model(idea).Updates(updates).Error; err != nil {
			utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
				Message: "Failed to update idea",
			})
			return
		}
	}

	likes, _ := h.Counts.Likes(r.Context(), idea.ID)
	connections, _ := h.Counts.Connections(r.Context(), idea.ID)

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: "Idea updated successfully",
		Data:    map[string]any{"idea": idea.View(likes, connections)},
	})
}

// DELETE /ideas/{id}
// DeleteIdea godoc
// @Summary Delete an idea
// @Description Creator-only hard delete. Likes, connections and image rows go in one transaction; stored objects are removed best-effort afterwards.
// @Tags Ideas
// @Produce json
// @Param id path string true "Idea id"
// @Success 200 {object} utils.Payload
// @Failure 403 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Security BearerAuth
// @Router /ideas/{id} [delete]
func (h *IdeaHandler) DeleteIdea(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{Message: "Unauthorized"})
		return
	}

	idea, ok := h.findIdea(w, r, "Images")
	if !ok {
		return
	}
	if idea.CreatorID != user.ID {
		utils.JSONResponse(w, http.StatusForbidden, utils.Payload{
			Message: "You are not the creator of this idea",
		})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("idea_id = ?", idea.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("idea_id = ?", idea.ID).Delete(&models.Connection{}).Error; err != nil {
			return err
		}
		if err := tx.Where("idea_id = ?", idea.ID).Delete(&models.IdeaImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(idea).Error
	})
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Message: "Failed to delete idea",
		})
		return
	}

	h.Counts.Invalidate(r.Context(), idea.ID)
	h.deleteStoredImages(idea.Images)

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: "Idea deleted successfully",
	})
}

// deleteStoredImages removes objects from storage concurrently. Failures
// only get logged; the rows are already gone.
func (h *IdeaHandler) deleteStoredImages(images []models.IdeaImage) {
	if h.Storage == nil || len(images) == 0 {
		return
	}
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

// POST /ideas/{id}/like
// ToggleLike godoc
// @Summary Toggle a like
// @Description Likes the idea, or removes the like if one exists. Creators cannot like their own idea.
// @Tags Ideas
// @Produce json
// @Param id path string true "Idea id"
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Security BearerAuth
// @Router /ideas/{id}/like [post]
func (h *IdeaHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{Message: "Unauthorized"})
		return
	}

	idea, ok := h.findIdea(w, r)
	if !ok {
		return
	}
	if idea.CreatorID == user.ID {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Message: "You cannot like your own idea",
		})
		return
	}

	liked := false
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var like models.Like
		err := tx.Where("user_id = ? AND idea_id = ?", user.ID, idea.ID).First(&like).Error
		switch {
		case err == nil:
			return tx.Delete(&like).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			liked = true
			return tx.Create(&models.Like{UserID: user.ID, IdeaID: idea.ID}).Error
		default:
			return err
		}
	})
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Message: "Failed to toggle like",
		})
		return
	}

	h.Counts.Invalidate(r.Context(), idea.ID)
	likeCount, err := h.Counts.Likes(r.Context(), idea.ID)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Message: "Database error",
		})
		return
	}

	message := "Idea unliked"
	if liked {
		message = "Idea liked"
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: message,
		Data:    map[string]any{"likeCount": likeCount},
	})
}

// POST /ideas/{id}/connect
// Connect godoc
// @Summary Connect to an idea
// @Description Records an outreach message to the idea's creator. One connection per user per idea; notification emails are best-effort.
// @Tags Ideas
// @Accept json
// @Produce json
// @Param id path string true "Idea id"
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Security BearerAuth
// @Router /ideas/{id}/connect [post]
func (h *IdeaHandler) Connect(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{Message: "Unauthorized"})
		return
	}

	idea, ok := h.findIdea(w, r, "Creator")
	if !ok {
		return
	}
	if idea.CreatorID == user.ID {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Message: "You cannot connect to your own idea",
		})
		return
	}

	var input struct {
		Message    string `json:"message"`
		SocialLink string `json:"socialLink"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Message: "Invalid input",
		})
		return
	}

	if err := utils.Validate(
		utils.Rule{Name: "message", Value: input.Message, Required: true, Max: 500},
		utils.Rule{Name: "socialLink", Value: input.SocialLink, Max: 500},
	); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Message: err.Error(),
		})
		return
	}

	// The unique index on (user_id, idea_id) is the duplicate check, so
	// two concurrent connects cannot both land.
	connection := models.Connection{
		UserID:     user.ID,
		IdeaID:     idea.ID,
		Message:    input.Message,
		SocialLink: input.SocialLink,
	}
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&connection).Error
	}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
				Message: "You have already connected to this idea",
			})
			return
		}
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Message: "Failed to create connection",
		})
		return
	}

	h.Counts.Invalidate(r.Context(), idea.ID)
	connectionCount, err := h.Counts.Connections(r.Context(), idea.ID)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Message: "Database error",
		})
		return
	}

	// Both emails are best-effort and detached; the connection stands and
	// the response goes out regardless of what the relay does.
	if h.Mailer != nil {
		creator := idea.Creator
		connector := *user
		ideaCopy := *idea
		message := input.Message

		go func() {
			g := new(errgroup.Group)
			g.Go(func() error {
				if err := h.Mailer.SendConnectionNotification(creator, connector, ideaCopy, message); err != nil {
					log.Println("Failed to send connection notification:", err)
				}
				return nil
			})
			g.Go(func() error {
				if err := h.Mailer.SendConnectionConfirmation(connector, creator, ideaCopy); err != nil {
					log.Println("Failed to send connection confirmation:", err)
				}
				return nil
			})
			_ = g.Wait()
		}()
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Message: "Connection created",
		Data:    map[string]any{"connectionCount": connectionCount},
	})
}

// DELETE /ideas/{id}/connect
// Disconnect godoc
// @Summary Remove a connection
// @Description Deletes the requester's connection to the idea.
// @Tags Ideas
// @Produce json
// @Param id path string true "Idea id"
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Security BearerAuth
// @Router /ideas/{id}/connect [delete]
func (h *IdeaHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{Message: "Unauthorized"})
		return
	}

	idea, ok := h.findIdea(w, r)
	if !ok {
		return
	}

	var connection models.Connection
	err := h.DB.Where("user_id = ? AND idea_id = ?", user.ID, idea.ID).First(&connection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Message: "No connection exists for this idea",
		})
		return
	}
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Message: "Database error",
		})
		return
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&connection).Error
	}); err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Message: "Failed to remove connection",
		})
		return
	}

	h.Counts.Invalidate(r.Context(), idea.ID)
	connectionCount, err := h.Counts.Connections(r.Context(), idea.ID)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Message: "Database error",
		})
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: "Connection removed",
		Data:    map[string]any{"connectionCount": connectionCount},
	})
}

func contentTypeOf(header textproto.MIMEHeader, data []byte) string {
	if ct := header.Get("Content-Type"); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}

func contextWithCleanupTimeout() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
