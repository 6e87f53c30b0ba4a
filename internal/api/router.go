package api

import (
	"fmt"
	"log"
	"net/http"

	_ "github.com/rohits-web03/ideaorbit/docs"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"

	"github.com/rohits-web03/ideaorbit/internal/api/handlers"
	"github.com/rohits-web03/ideaorbit/internal/api/middleware"
	"github.com/rohits-web03/ideaorbit/internal/api/services"
	"github.com/rohits-web03/ideaorbit/internal/config"
	"github.com/rohits-web03/ideaorbit/internal/repositories"
	"github.com/rohits-web03/ideaorbit/internal/utils"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

// Deps carries everything the routes need. Storage, Mailer and Cache may
// be nil; the affected features degrade instead of failing startup.
type Deps struct {
	DB      *gorm.DB
	Storage repositories.ObjectStorage
	Mailer  services.Mailer
	Cache   *repositories.CountCache
}

func SetupRouter(deps Deps) http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(config.Envs.CorsConfig)

	counts := repositories.NewCounts(deps.DB, deps.Cache)
	auth := middleware.Auth(deps.DB, config.Envs.JWTSecret)

	authHandler := handlers.NewAuthHandler(deps.DB, services.GoogleOauthConfig(config.Envs.Google))
	ideaHandler := handlers.NewIdeaHandler(deps.DB, deps.Storage, deps.Mailer, counts)
	userHandler := handlers.NewUserHandler(deps.DB, deps.Storage, counts)

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	mainMux.HandleFunc("GET /api-docs", apiDocs)
	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	mainMux.HandleFunc("POST /auth/register", authHandler.RegisterUser)
	mainMux.HandleFunc("POST /auth/login", authHandler.LoginUser)
	mainMux.HandleFunc("GET /auth/google/login", authHandler.HandleGoogleLogin)
	mainMux.HandleFunc("GET /auth/google/callback", authHandler.HandleGoogleCallback)

	mainMux.HandleFunc("GET /ideas", ideaHandler.ListIdeas)
	mainMux.HandleFunc("GET /ideas/{id}", ideaHandler.GetIdea)

	// ---------- PROTECTED ROUTES ----------
	mainMux.Handle("POST /ideas", auth(http.HandlerFunc(ideaHandler.CreateIdea)))
	mainMux.Handle("PUT /ideas/{id}", auth(http.HandlerFunc(ideaHandler.UpdateIdea)))
	mainMux.Handle("DELETE /ideas/{id}", auth(http.HandlerFunc(ideaHandler.DeleteIdea)))
	mainMux.Handle("POST /ideas/{id}/like", auth(http.HandlerFunc(ideaHandler.ToggleLike)))
	mainMux.Handle("POST /ideas/{id}/connect", auth(http.HandlerFunc(ideaHandler.Connect)))
	mainMux.Handle("DELETE /ideas/{id}/connect", auth(http.HandlerFunc(ideaHandler.Disconnect)))

	mainMux.Handle("GET /users/profile", auth(http.HandlerFunc(userHandler.GetProfile)))
	mainMux.Handle("PUT /users/profile", auth(http.HandlerFunc(userHandler.UpdateProfile)))
	mainMux.Handle("DELETE /users/liked-ideas/{ideaId}", auth(http.HandlerFunc(userHandler.UnlikeIdea)))
	mainMux.Handle("DELETE /users/account", auth(http.HandlerFunc(userHandler.DeleteAccount)))

	log.Println("Router initialized")
	handler := c.Handler(mainMux)
	handler = middleware.Logger(handler)
	return handler
}

// apiDocs serves the generated swagger document as plain JSON.
func apiDocs(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Message: "API documentation unavailable",
		})
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write([]byte(doc))
}
