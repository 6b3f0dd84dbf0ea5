package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lakonic/noted/auth"
	rh "github.com/lakonic/noted/route-handlers"
	"github.com/lakonic/noted/webutil"
)

const (
	apiBasePath   = "/api"
	authBasePath  = "/auth"
	notesBasePath = "/notes"
)

const (
	paramID = "id" // General parameter name for resource IDs
)

func SetupRoutes(
	authHandler *rh.AuthHandler,
	noteHandler *rh.NoteHandler,
	suggestionHandler *rh.SuggestionHandler,
	tokenSecret []byte,
	staticAssets http.Handler,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)                    // Log every request
	r.Use(middleware.Recoverer)                 // Recover from panics
	r.Use(middleware.Timeout(60 * time.Second)) // Set a timeout context for requests

	requireAuth := auth.Authenticator(tokenSecret)

	r.Route(apiBasePath, func(r chi.Router) {
		configureAuthRoutes(r, authHandler, requireAuth)
		configureNoteRoutes(r, noteHandler, suggestionHandler, requireAuth)
	})

	// Health check endpoint
	r.Get("/healthz", handleHealthCheck)

	// Everything else is the embedded single-page client.
	if staticAssets != nil {
		r.Handle("/*", staticAssets)
	}

	return r
}

// Helper for constructing paths with a parameter
func pathWithParam(basePath string, paramName string) string {
	if basePath == "" {
		return "/{" + paramName + "}"
	}
	return basePath + "/{" + paramName + "}"
}

// --- Auth Routes ---
func configureAuthRoutes(r chi.Router, handler *rh.AuthHandler, requireAuth func(http.Handler) http.Handler) {
	r.Route(authBasePath, func(r chi.Router) {
		r.Post("/register", webutil.MakeHandler(handler.HandleRegister))
		r.Post("/login", webutil.MakeHandler(handler.HandleLogin))
		r.With(requireAuth).Post("/logout", webutil.MakeHandler(handler.HandleLogout))
	})
}

// --- Note Routes ---
// Every note route requires a verified bearer token; the handlers read the
// verified user ID from the request context.
func configureNoteRoutes(r chi.Router, handler *rh.NoteHandler, suggestionHandler *rh.SuggestionHandler, requireAuth func(http.Handler) http.Handler) {
	specificNotePath := pathWithParam("", paramID) // e.g., "/{id}"

	r.Route(notesBasePath, func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", webutil.MakeHandler(handler.HandleListNotes))
		r.Post("/", webutil.MakeHandler(handler.HandleCreateNote))
		r.Put(specificNotePath, webutil.MakeHandler(handler.HandleUpdateNote))
		r.Delete(specificNotePath, webutil.MakeHandler(handler.HandleDeleteNote))

		// AI suggestions for a draft note
		r.Post("/suggest", webutil.MakeHandler(suggestionHandler.HandleSuggest))
	})
}

// --- Utility Functions ---

// handleHealthCheck responds to a health check request.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeTextPlainUTF8)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
