package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"estudia-backend/internal/handlers"
	"estudia-backend/internal/middleware"
)

func New(
	authHandler *handlers.AuthHandler,
	progressHandler *handlers.ProgressHandler,
	studyPlanHandler *handlers.StudyPlanHandler,
	studySessionHandler *handlers.StudySessionHandler,
	summaryHandler *handlers.SummaryHandler,
	tutoringHandler *handlers.TutoringHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Login rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// ──── Auth (demo credentials; gates the UI only) ────
	r.Route("/auth", func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
	})

	// ──── Progress ────
	r.Route("/progress", func(r chi.Router) {
		r.Get("/", progressHandler.Report)
		r.Post("/", progressHandler.Update)
	})

	// ──── Study Plans ────
	r.Route("/study-plans", func(r chi.Router) {
		r.Get("/", studyPlanHandler.List)
		r.Post("/", studyPlanHandler.Generate)
	})

	// ──── Study Sessions ────
	r.Route("/study-sessions", func(r chi.Router) {
		r.Get("/", studySessionHandler.List)
		r.Post("/", studySessionHandler.Create)
	})

	// ──── Summaries ────
	r.Route("/summaries", func(r chi.Router) {
		r.Get("/", summaryHandler.List)
		r.Post("/", summaryHandler.Generate)
		r.Delete("/", summaryHandler.Delete)
	})

	// ──── Tutoring ────
	r.Route("/tutoring", func(r chi.Router) {
		r.Get("/", tutoringHandler.Get)
		r.Post("/", tutoringHandler.Chat)
		r.Delete("/", tutoringHandler.Delete)
	})

	return r
}
