package routes

import (
	"log/slog"
	"net/http"

	"inkwell/app/apperr"
	"inkwell/app/config"
	"inkwell/app/controllers"
	"inkwell/app/middleware"
	"inkwell/app/repositories"
	"inkwell/app/services"
	"inkwell/app/uploads"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// ImagesPrefix is the URL prefix uploaded files are served under.
const ImagesPrefix = "/images/"

// App holds the services behind the HTTP routes.
type App struct {
	Auth  *services.AuthService
	Posts *services.PostService
	Admin *services.AdminService
	Files *uploads.Storage
}

// NewApp wires the services onto an open store.
func NewApp(store *repositories.Store, cfg *config.Config, logger *slog.Logger) (*App, error) {
	files, err := uploads.NewStorage(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	users, posts := store.Users(), store.Posts()
	return &App{
		Auth:  services.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL.Duration),
		Posts: services.NewPostService(posts, files, logger),
		Admin: services.NewAdminService(users, posts, logger),
		Files: files,
	}, nil
}

// SetupRoutes defines the application's routes and returns the handler
// to serve, wrapped in CORS handling for cfg.CORSOrigin.
func SetupRoutes(app *App, cfg *config.Config, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apperr.Write(w, apperr.New(apperr.NotFound, "route not found"))
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apperr.Write(w, apperr.New(apperr.MethodNotAllowed, r.Method+" is not allowed on "+r.URL.Path))
	})

	// Apply global middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))
	router.Use(middleware.ContentTypeJSON(ImagesPrefix))

	authController := controllers.NewAuthController(app.Auth, logger)
	postController := controllers.NewPostController(app.Posts, logger)
	adminController := controllers.NewAdminController(app.Admin, logger)
	fileController := controllers.NewFileController(app.Files, logger)

	// Uploaded files
	router.HandleFunc(ImagesPrefix+"{name}", fileController.Show).Methods("GET")

	// Public endpoints
	router.HandleFunc("/register", authController.Register).Methods("POST")
	router.HandleFunc("/login", authController.Login).Methods("POST")
	router.HandleFunc("/logout", authController.Logout).Methods("GET")
	router.HandleFunc("/getposts", postController.Index).Methods("GET")
	router.HandleFunc("/getpostbyid/{id}", postController.Show).Methods("GET")

	// Admin endpoints
	router.HandleFunc("/getAllusers", adminController.Users).Methods("GET")
	router.HandleFunc("/getAllposts", adminController.Posts).Methods("GET")
	router.HandleFunc("/deleteUser/{id}", adminController.DeleteUser).Methods("DELETE")

	// Endpoints that need a bearer token
	authed := router.NewRoute().Subrouter()
	authed.Use(middleware.RequireAuth(app.Auth))
	authed.HandleFunc("/", authController.Me).Methods("GET")
	authed.HandleFunc("/create", postController.Create).Methods("POST")
	authed.HandleFunc("/editpost/{id}", postController.Edit).Methods("PUT")
	authed.HandleFunc("/myposts", postController.Mine).Methods("GET")
	authed.HandleFunc("/deletepost/{id}", postController.Delete).Methods("DELETE")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{cfg.CORSOrigin}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		handlers.ExposedHeaders([]string{"Authorization"}),
		handlers.AllowCredentials(),
	)
	return cors(router)
}
