package api

import (
	"net/http"
	"time"

	"hotel_hub/internal/api/handler"
	"hotel_hub/internal/api/middleware"
	"hotel_hub/internal/app/service"
	"hotel_hub/internal/common"
	"hotel_hub/internal/common/security"
	"hotel_hub/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/unrolled/secure"
)

func NewRouter(
	cfg *config.Config,
	tokens *security.TokenManager,
	authService *service.AuthService,
	roomService *service.RoomService,
	catalogService *service.CatalogService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// The frontend runs on its own origin and authenticates via cookie, so
	// CORS must allow credentials for exactly that origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        cfg.IsProduction(),
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
	})
	r.Use(secureMiddleware.Handler)

	// Decodes the credential (cookie first, bearer header fallback) into the
	// request context; protected groups enforce it via Authenticator.
	authMw := middleware.NewAuthMiddleware(tokens)
	r.Use(authMw.Verifier)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithMessage(w, http.StatusOK, "Server is up and running!")
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(apiRouter chi.Router) {
		authHandler := handler.NewAuthHandler(authService, authMw, tokens.Expiry(), cfg.IsProduction())
		apiRouter.Route("/users", authHandler.RegisterRoutes)

		roomHandler := handler.NewRoomHandler(roomService, authMw)
		apiRouter.Route("/rooms", roomHandler.RegisterRoutes)

		serviceHandler := handler.NewServiceHandler(catalogService, authMw)
		apiRouter.Route("/services", serviceHandler.RegisterRoutes)
	})

	return r
}
