// Package http exposes the evaluation pipeline over HTTP.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lbt00001-beep/mbainative-website-sub000/internal/audit"
	authmw "github.com/lbt00001-beep/mbainative-website-sub000/internal/auth/middleware"
	"github.com/lbt00001-beep/mbainative-website-sub000/internal/evaluation"
	"github.com/lbt00001-beep/mbainative-website-sub000/internal/logger"
	"github.com/lbt00001-beep/mbainative-website-sub000/internal/textsource"
)

type Deps struct {
	Evaluator    *evaluation.Evaluator
	Extractor    *textsource.Extractor
	Audit        *audit.Store        // nil disables the audit log
	Auth         *authmw.AuthService // login and protected routes need Auth and Audit
	Log          *logger.Logger
	ServerAPIKey string
	MaxBodyBytes int64
	CORSOrigins  []string
}

func NewRouter(d Deps) http.Handler {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, RequestLogger(d.Log), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/health", HealthHandler())

	ev := EvaluateDeps{
		Evaluator:    d.Evaluator,
		Extractor:    d.Extractor,
		Log:          d.Log,
		ServerAPIKey: d.ServerAPIKey,
		MaxBodyBytes: d.MaxBodyBytes,
	}
	if d.Audit != nil {
		ev.Audit = d.Audit
	}
	r.Route("/api", func(ar chi.Router) {
		ar.Post("/evaluate", EvaluateHandler(ev))
		ar.Post("/report", ReportHandler(d.MaxBodyBytes))

		if d.Audit != nil && d.Auth != nil {
			ar.Group(func(pr chi.Router) {
				pr.Use(authmw.JWTMiddleware(d.Auth))
				pr.Get("/evaluations", ListEvaluationsHandler(d.Audit))
			})
		}
	})

	// tokens are only good for the audit listing
	if d.Audit != nil && d.Auth != nil {
		r.Post("/auth/login", authmw.LoginHandler(d.Auth))
	}
	return r
}
