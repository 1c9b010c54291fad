package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"ai-video-pipeline/internal/usecase"
)

// Server wires the pipeline endpoints, the demo page and the media dir
// onto a chi router.
type Server struct {
	uc       usecase.PipelineUseCase
	auth     *AuthManager
	page     http.Handler
	mediaDir string
	log      *zerolog.Logger
}

func NewServer(uc usecase.PipelineUseCase, auth *AuthManager, page http.Handler, mediaDir string, logger *zerolog.Logger) *Server {
	return &Server{uc: uc, auth: auth, page: page, mediaDir: mediaDir, log: logger}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(TraceID(), RequestLog(s.log), Recover(s.log))
	r.Use(chimw.StripSlashes)

	r.Route("/api", func(r chi.Router) {
		r.Post("/pipeline", s.handlePipeline)
		r.Post("/pipeline/async", s.handlePipelineAsync)
		r.Get("/pipeline/runs/{id}", s.handleGetRun)
		r.Get("/pipeline/stages", s.handleStages)

		r.Post("/admin/login", s.handleAdminLogin)
		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/admin/runs", s.handleAdminRuns)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	if s.mediaDir != "" {
		fs := http.StripPrefix("/media/", http.FileServer(http.Dir(s.mediaDir)))
		r.Get("/media/*", fs.ServeHTTP)
	}
	if s.page != nil {
		r.Get("/", s.page.ServeHTTP)
	}

	return r
}
