package http

import (
	"log/slog"
	"net/http"

	"github.com/projectalpha/alpha/internal/api/service"
	"github.com/projectalpha/alpha/pkg/httpx"
	"github.com/projectalpha/alpha/pkg/jwtx"
	"github.com/projectalpha/alpha/pkg/slogx"

	_ "github.com/projectalpha/alpha/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	logger       *slog.Logger

	// UploadDir is served at /uploads/ when non-empty (local storage driver).
	UploadDir     string
	MaxUploadSize int64

	AuthService  *service.AuthService
	TokenService *service.TokenService
	UserService  *service.UserService
	PostService  *service.PostService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	logger *slog.Logger,
	allowedOrigins []string,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORSMiddleware(allowedOrigins),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerPosts()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Project Alpha API
//	@version		2.0.0
//	@description	A fast and secure authentication and content API. Sessions
//	@description	are stateless bearer tokens signed with HMAC-SHA256.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	authn := httpx.AuthnMiddleware(r.verifier)

	r.Mux.Handle("POST /api/auth/register", &RegisterHandler{
		AuthService: r.AuthService,
	})

	r.Mux.Handle("POST /api/auth/login", &LoginHandler{
		AuthService:  r.AuthService,
		TokenService: r.TokenService,
	})

	r.Mux.Handle("GET /api/auth/verify",
		httpx.Chain(&VerifyHandler{}, authn))

	r.Mux.Handle("GET /api/dashboard",
		httpx.Chain(&DashboardHandler{UserService: r.UserService}, authn))
}

func (r *Router) registerPosts() {
	authn := httpx.AuthnMiddleware(r.verifier)

	posts := &PostsHandler{
		PostService:   r.PostService,
		UserService:   r.UserService,
		MaxUploadSize: r.MaxUploadSize,
	}

	r.Mux.Handle("POST /api/posts", httpx.Chain(http.HandlerFunc(posts.Create), authn))
	r.Mux.Handle("GET /api/posts", httpx.Chain(http.HandlerFunc(posts.List), authn))
	r.Mux.Handle("GET /api/posts/{id}", httpx.Chain(http.HandlerFunc(posts.Get), authn))
	r.Mux.Handle("PUT /api/posts/{id}", httpx.Chain(http.HandlerFunc(posts.Update), authn))
	r.Mux.Handle("DELETE /api/posts/{id}", httpx.Chain(http.HandlerFunc(posts.Delete), authn))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /{$}", &HealthHandler{Version: r.buildVersion})

	if r.UploadDir != "" {
		r.Mux.Handle("GET /uploads/",
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(r.UploadDir))))
	}
}
