package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tofu639/ToDoDemo/internal/api/http/handler"
	"github.com/tofu639/ToDoDemo/internal/api/http/middleware"
	"github.com/tofu639/ToDoDemo/internal/api/http/response"
	"github.com/tofu639/ToDoDemo/internal/logger"
	"github.com/tofu639/ToDoDemo/internal/model"
)

// Options tune request handling.
type Options struct {
	Production     bool
	RequestTimeout time.Duration
	Version        string
}

// Router wires HTTP handlers and middleware for the user API.
type Router struct {
	authService    handler.AuthService
	userService    handler.UserService
	tokenVerifier  middleware.TokenVerifier
	contextManager model.ContextManager
	db             model.Pinger
	opts           Options
	logger         *logger.Logger
}

// New creates new HTTP Router instance.
func New(
	authService handler.AuthService,
	userService handler.UserService,
	tokenVerifier middleware.TokenVerifier,
	contextManager model.ContextManager,
	db model.Pinger,
	opts Options,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		userService:    userService,
		tokenVerifier:  tokenVerifier,
		contextManager: contextManager,
		db:             db,
		opts:           opts,
		logger:         logger,
	}
}

// Register builds the handler tree.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenVerifier, r.contextManager, r.logger, r.opts.Production)
	guard := middleware.NewGuard(r.logger, r.opts.Production)

	mux := chi.NewRouter()
	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(logging.Handle)
	mux.Use(guard.Recover)
	if r.opts.RequestTimeout > 0 {
		mux.Use(guard.Timeout(r.opts.RequestTimeout))
	}

	mux.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.Error(w, req, http.StatusNotFound, response.CodeRouteNotFound, "Route "+req.Method+" "+req.URL.Path+" not found", nil)
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		response.Error(w, req, http.StatusMethodNotAllowed, response.CodeMethodNotAllowed, "Method "+req.Method+" not allowed", nil)
	})

	health := handler.NewHealth(r.db, r.opts.Version, r.logger)
	mux.Get("/health", health.Check)

	mux.Route("/api", func(api chi.Router) {
		r.registerAuthRoutes(api, authenticate)
		r.registerUserRoutes(api, authenticate)
	})

	return mux
}

func (r *Router) registerAuthRoutes(api chi.Router, authenticate *middleware.Authenticate) {
	authHandler := handler.NewAuth(r.authService, r.userService, r.contextManager, r.logger, r.opts.Production)

	api.Route("/auth", func(auth chi.Router) {
		auth.Post("/register", authHandler.Register)
		auth.Post("/login", authHandler.Login)
		auth.Post("/verify", authHandler.Verify)
		auth.With(authenticate.Required).Get("/profile", authHandler.Profile)
		auth.With(authenticate.Optional).Get("/session", authHandler.Session)
	})
}

func (r *Router) registerUserRoutes(api chi.Router, authenticate *middleware.Authenticate) {
	userHandler := handler.NewUser(r.userService, r.logger, r.opts.Production)

	api.Route("/users", func(users chi.Router) {
		users.Use(authenticate.Required)
		users.Get("/", userHandler.List)
		users.Post("/", userHandler.Create)
		users.Get("/{id}", userHandler.Get)
		users.Put("/{id}", userHandler.Update)
		users.Delete("/{id}", userHandler.Delete)
	})
}
