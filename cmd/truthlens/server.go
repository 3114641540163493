// cmd/truthlens/server.go
package main

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

//go:embed templates/*.html
var templateFS embed.FS

type contextKey string

const requestIDKey contextKey = "request_id"

// pageData holds data for the verification page
type pageData struct {
	Result      *Verdict
	Mode        string
	RequestText string
	Version     string
}

// verifyRequest is the JSON body accepted by the API and websocket
type verifyRequest struct {
	Mode string `json:"mode"`
	Text string `json:"text"`
}

// Server serves the web front-end and JSON API
type Server struct {
	cfg       *Config
	service   *VerificationService
	errors    *ErrorHandler
	router    *mux.Router
	templates *template.Template
	limiter   *rate.Limiter
	startTime time.Time
}

var templateFuncs = template.FuncMap{
	"lower": strings.ToLower,
	"percent": func(c *float64) float64 {
		if c == nil {
			return 0
		}
		return math.Round(*c * 100)
	},
	"number": func(c *float64) float64 {
		if c == nil {
			return 0
		}
		return *c
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

// NewServer builds the router and parses the page templates
func NewServer(cfg *Config, service *VerificationService, errs *ErrorHandler) (*Server, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	perMinute := cfg.RateLimitPerMinute
	if perMinute <= 0 {
		perMinute = MaxRequestsPerMinute
	}

	s := &Server{
		cfg:       cfg,
		service:   service,
		errors:    errs,
		templates: tmpl,
		limiter:   rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute),
		startTime: time.Now(),
	}
	s.routes()
	return s, nil
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := mux.NewRouter()
	r.Use(s.recoveryMiddleware, s.requestIDMiddleware)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.Handle("/verify", s.rateLimited(http.HandlerFunc(s.handleVerify))).Methods(http.MethodPost)
	r.HandleFunc("/healthcheck", s.handleHealthCheck).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Handle("/verify", s.rateLimited(http.HandlerFunc(s.apiVerify))).Methods(http.MethodPost)
	api.HandleFunc("/ws", s.handleWebsocket)

	s.router = r
}

// handleIndex renders the empty form
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, pageData{Mode: ModeText})
}

// handleVerify runs a form submission and renders the verdict
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	mode := r.FormValue("mode")
	if mode == "" {
		mode = ModeText
	}
	raw := r.FormValue("text")
	if mode == ModeURL {
		if u := r.FormValue("url"); u != "" {
			raw = u
		}
	}

	verdict, ok := s.service.Run(context.WithoutCancel(r.Context()), mode, raw, RequestID(r.Context()), nil)
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	s.renderPage(w, pageData{Result: verdict, Mode: mode, RequestText: raw})
}

// apiVerify is the JSON equivalent of handleVerify
func (s *Server) apiVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		respondWithHTTPError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Mode == "" {
		req.Mode = ModeText
	}

	verdict, ok := s.service.Run(context.WithoutCancel(r.Context()), req.Mode, req.Text, RequestID(r.Context()), nil)
	if !ok {
		respondWithHTTPError(w, http.StatusBadRequest, "text is required")
		return
	}
	respondWithJSON(w, http.StatusOK, verdict)
}

// renderPage executes the page template
func (s *Server) renderPage(w http.ResponseWriter, data pageData) {
	data.Version = s.cfg.Version
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		Logger().Error("Error executing template: %v", err)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
	}
}

// RequestID returns the request ID stored by the middleware
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
		Logger().Debug("%s %s [%s] %s", r.Method, r.URL.Path, id, time.Since(start).Round(time.Millisecond))
	})
}

func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logPanic("http "+r.URL.Path, rec)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) rateLimited(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			respondWithHTTPError(w, http.StatusTooManyRequests, "Too many verification requests, try again shortly")
			return
		}
		next.ServeHTTP(w, r)
	})
}
