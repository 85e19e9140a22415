package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"librarysite/internal/admintoken"
	"librarysite/internal/ratelimit"
	"librarysite/internal/util"
	"librarysite/pkg/store"
	"librarysite/services/blog/internal/app"
)

// Config wires required dependencies for the HTTP server. A nil Limiter
// disables rate limiting; a nil AdminVerifier leaves /admin unrouted.
type Config struct {
	App            *app.App
	Limiter        *ratelimit.FixedWindowLimiter
	TrustedProxies util.TrustedProxies
	AdminVerifier  *admintoken.Verifier
}

// Server exposes the blog's public views and admin listings.
type Server struct {
	app      *app.App
	limiter  *ratelimit.FixedWindowLimiter
	trusted  util.TrustedProxies
	verifier *admintoken.Verifier
	mux      *http.ServeMux
}

// New constructs the server with routes configured.
func New(cfg Config) (*Server, error) {
	if cfg.App == nil {
		return nil, errors.New("server: app is required")
	}
	s := &Server{
		app:      cfg.App,
		limiter:  cfg.Limiter,
		trusted:  cfg.TrustedProxies,
		verifier: cfg.AdminVerifier,
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s, nil
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(util.WithRequestLog("blog", util.WithSecurityHeaders(s.withRateLimit(s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("GET /{$}", s.handlePostList)
	s.mux.HandleFunc("GET /post/{id}/{$}", s.handlePostDetail)
	s.mux.HandleFunc("GET /redirect-home/{$}", s.handleRedirectHome)
	s.mux.HandleFunc("GET /redirect-post/{id}/{$}", s.handleRedirectPost)

	if s.verifier != nil {
		s.mux.Handle("GET /admin/posts", s.withAdmin(s.handleAdminPosts))
		s.mux.Handle("PATCH /admin/posts/{id}", s.withAdmin(s.handleAdminUpdatePost))
		s.mux.Handle("GET /admin/products", s.withAdmin(s.handleAdminProducts))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePostList(w http.ResponseWriter, r *http.Request) {
	posts, err := s.app.PublishedPosts()
	if err != nil {
		s.internalError(w, r, "list posts", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

func (s *Server) handlePostDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	post, found, err := s.app.PublishedPost(id)
	if err != nil {
		s.internalError(w, r, "get post", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleRedirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleRedirectPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/post/%d/", id), http.StatusFound)
}

func (s *Server) withAdmin(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := admintoken.BearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		claims, err := s.verifier.Verify(token)
		if err != nil {
			util.LoggerFromContext(r.Context()).Warn("admin token rejected", "err", err)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		logger := util.LoggerFromContext(r.Context()).With("admin", claims.Subject)
		next(w, r.WithContext(util.ContextWithLogger(r.Context(), logger)))
	})
}

// /admin/posts?q=&published=
func (s *Server) handleAdminPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var published *bool
	if raw := strings.TrimSpace(q.Get("published")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "published must be true or false")
			return
		}
		published = &v
	}
	posts, err := s.app.AdminPosts(q.Get("q"), published)
	if err != nil {
		s.internalError(w, r, "admin list posts", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": posts, "count": len(posts)})
}

type updatePostRequest struct {
	IsPublished *bool `json:"isPublished"`
}

func (s *Server) handleAdminUpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	var req updatePostRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.IsPublished == nil {
		writeError(w, http.StatusBadRequest, "isPublished is required")
		return
	}
	post, err := s.app.SetPublished(id, *req.IsPublished)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		s.internalError(w, r, "update post", err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// /admin/products?q=
func (s *Server) handleAdminProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.app.Products(r.URL.Query().Get("q"))
	if err != nil {
		s.internalError(w, r, "admin list products", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products, "count": len(products)})
}

func (s *Server) withRateLimit(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" {
			next.ServeHTTP(w, r)
			return
		}
		key := util.ClientIP(r, s.trusted)
		allowed, err := s.limiter.Allow(r.Context(), key)
		if err != nil {
			util.LoggerFromContext(r.Context()).Warn("rate limiter unavailable", "client_ip", key, "allowed", allowed, "err", err)
		}
		if !allowed {
			retry := int(s.limiter.RetryAfter().Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	util.LoggerFromContext(r.Context()).Error("request failed", "op", op, "err", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{
		Error:     msg,
		RequestID: strings.TrimSpace(w.Header().Get(util.RequestIDHeader)),
	})
}
