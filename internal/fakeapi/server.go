package fakeapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskadmin/internal/logging"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	store  *Store
	secret []byte
	ttl    time.Duration
	logger logging.Logger
}

func NewServer(store *Store, secret []byte, ttl time.Duration, logger logging.Logger) *Server {
	return &Server{store: store, secret: secret, ttl: ttl, logger: logger}
}

// Handler builds the chi router with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.requestLogger)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", s.login)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/users/me", s.me)
			r.With(requireAdmin).Get("/users/", s.listUsers)
			r.With(requireAdmin).Post("/users/", s.createUser)
			r.With(requireAdmin).Put("/users/{id}", s.updateUser)

			r.Get("/tasks/", s.listTasks)
			r.Get("/tasks/my/tasks", s.myTasks)
			r.Post("/tasks/", s.createTask)
			r.Put("/tasks/{id}", s.updateTask)
			r.Delete("/tasks/{id}", s.deleteTask)
		})
	})

	return r
}
