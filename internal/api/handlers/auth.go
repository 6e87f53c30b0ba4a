package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rohits-web03/ideaorbit/internal/config"
	"github.com/rohits-web03/ideaorbit/internal/models"
	"github.com/rohits-web03/ideaorbit/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

// AuthHandler owns registration, login and the Google sign-in flow.
type AuthHandler struct {
	DB     *gorm.DB
	Google *oauth2.Config
}

func NewAuthHandler(db *gorm.DB, google *oauth2.Config) *AuthHandler {
	return &AuthHandler{DB: db, Google: google}
}

// JWT Claims struct
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// SignToken issues a signed, time-limited bearer token for the user.
func SignToken(user *models.User) (string, error) {
	expiration := time.Now().Add(config.Envs.TokenTTL)
	claims := &Claims{
		UserID: user.ID.String(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Envs.JWTSecret))
}

// POST /auth/register
// RegisterUser godoc
// @Summary Register a new account
// @Description Creates a user and returns the public profile plus a bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /auth/register [post]
func (h *AuthHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
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
		utils.Rule{Name: "email", Value: input.Email, Required: true, Max: 254, Pattern: utils.EmailPattern},
		utils.Rule{Name: "password", Value: input.Password, Required: true, Min: 8, Max: 72},
		utils.Rule{Name: "firstName", Value: input.FirstName, Required: true, Max: 50},
		utils.Rule{Name: "lastName", Value: input.LastName, Required: true, Max: 50},
	); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Message: err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existing models.User
	err := h.DB.Where("email = ?", email).First(&existing).Error

	switch {
	case err == nil:
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Message: "User already exists with this email",
		})
		return

	case errors.Is(err, gorm.ErrRecordNotFound):
		// new user, continue

	default:
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Message: "Database query failed",
		})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Message: "Failed to hash password",
		})
		return
	}

	user := models.User{
		Email:     email,
		Password:  string(hashedPassword),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
	}
	if err := h.DB.Create(&user).Error; err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Message: "Database insert failed",
		})
		return
	}

	tokenString, err := SignToken(&user)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Message: "Failed to create token",
		})
		return
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Message: "User registered successfully",
		Data: map[string]any{
			"user":  user.Public(),
			"token": tokenString,
		},
	})
}

// POST /auth/login
// LoginUser godoc
// @Summary Log in with email and password
// @Description Returns a fresh bearer token. Unknown email and wrong password are indistinguishable.
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Router /auth/login [post]
func (h *AuthHandler) LoginUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Message: "Invalid input",
		})
		return
	}

	if input.Email == "" || input.Password == "" {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Message: "Invalid input",
		})
		return
	}

	// Unknown email and wrong password get the same answer so accounts
	// cannot be enumerated.
	var user models.User
	err := h.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).First(&user).Error
	switch {
	case err == nil:
		// user found
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Message: "Invalid credentials",
		})
		return
	default:
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Message: "Database error",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Message: "Invalid credentials",
		})
		return
	}

	tokenString, err := SignToken(&user)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Message: "Failed to create token",
		})
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: "Login successful",
		Data: map[string]any{
			"user":  user.Public(),
			"token": tokenString,
		},
	})
}

// GET /auth/google/login
func (h *AuthHandler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	flow := r.URL.Query().Get("flow") // "login" or "register"
	if flow == "" {
		flow = "login"
	}

	state, err := GenerateState(map[string]string{"flow": flow})
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Message: "Failed to generate OAuth state",
		})
		return
	}

	http.Redirect(w, r, h.Google.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GET /auth/google/callback
func (h *AuthHandler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	frontend := config.Envs.Google.FrontendURL

	stateData, err := DecodeState(r.FormValue("state"))
	if err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Message: "Invalid OAuth state",
		})
		return
	}
	flow := stateData["flow"]

	token, err := h.Google.Exchange(context.Background(), r.FormValue("code"))
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Message: "Code exchange failed",
		})
		return
	}

	client := h.Google.Client(context.Background(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Message: "Failed to get user info",
		})
		return
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	var googleUser struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(data, &googleUser); err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Message: "Failed to parse user info",
		})
		return
	}

	var user models.User
	err = h.DB.Where("email = ?", strings.ToLower(googleUser.Email)).First(&user).Error

	switch flow {
	case "register":
		if err == nil {
			http.Redirect(w, r, frontend+"/login?error=user_already_exists", http.StatusTemporaryRedirect)
			return
		}
		firstName, lastName, _ := strings.Cut(googleUser.Name, " ")
		user = models.User{
			Email:     googleUser.Email,
			Password:  "", // Google-authenticated
			FirstName: firstName,
			LastName:  lastName,
		}
		if err := h.DB.Create(&user).Error; err != nil {
			utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
				Message: "Failed to create user",
			})
			return
		}

	default: // login
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Redirect(w, r, frontend+"/register?error=user_not_found", http.StatusTemporaryRedirect)
			return
		} else if err != nil {
			utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
				Message: "Database error",
			})
			return
		}
	}

	tokenString, err := SignToken(&user)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Message: "Failed to create token",
		})
		return
	}

	http.Redirect(w, r, fmt.Sprintf("%s/oauth/callback?token=%s&flow=%s", frontend, tokenString, flow), http.StatusTemporaryRedirect)
}
