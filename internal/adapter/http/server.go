// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"log/slog"
	"net/http"

	"motors/internal/app"
	"motors/internal/token"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	accounts  *app.AccountService
	inventory *app.InventoryService
	messages  *app.MessageService
	sessions  *sessionManager
	renderer  *renderer
	logger    *slog.Logger
	staticDir string
}

// New creates a Server wired to the given application services. Secure
// cookies are enabled for production deployments only.
func New(accounts *app.AccountService, inventory *app.InventoryService, messages *app.MessageService,
	codec *token.Codec, secureCookies bool, staticDir string, logger *slog.Logger) (*Server, error) {
	rd, err := newRenderer()
	if err != nil {
		return nil, err
	}
	return &Server{
		accounts:  accounts,
		inventory: inventory,
		messages:  messages,
		sessions:  newSessionManager(codec, secureCookies),
		renderer:  rd,
		logger:    logger,
		staticDir: staticDir,
	}, nil
}

// Handler returns the root http.Handler for the application. The
// authentication gate runs globally; authorization gates wrap only the
// route groups that need them.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(s.logRequests)
	r.Use(chimw.Recoverer)
	r.Use(s.authenticate)

	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(s.staticDir))))

	r.Get("/", s.handleHome)

	r.Route("/inv", func(r chi.Router) {
		r.Get("/type/{classificationID}", s.handleClassification)
		r.Get("/detail/{invID}", s.handleVehicleDetail)

		r.Group(func(r chi.Router) {
			r.Use(s.requireElevated)
			r.Get("/", s.handleManageInventory)
			r.Get("/add-classification", s.handleAddClassificationView)
			r.Post("/add-classification", s.handleAddClassification)
			r.Get("/add-inventory", s.handleAddVehicleView)
			r.Post("/add-inventory", s.handleAddVehicle)
		})
	})

	r.Route("/account", func(r chi.Router) {
		r.Get("/login", s.handleLoginView)
		r.Post("/login", s.handleLogin)
		r.Get("/logout", s.handleLogout)
		r.Get("/register", s.handleRegisterView)
		r.Post("/register", s.handleRegister)

		r.Group(func(r chi.Router) {
			r.Use(s.requireLogin)
			r.Get("/", s.handleAccountManagement)
			r.Get("/update/{accountID}", s.handleAccountUpdateView)
			r.Post("/update", s.handleAccountUpdate)
			r.Post("/update-password", s.handlePasswordUpdate)
		})
	})

	r.Route("/message", func(r chi.Router) {
		r.Use(s.requireLogin)
		r.Get("/", s.handleInbox)
		r.Get("/archive", s.handleArchive)
		r.Get("/view/{messageID}", s.handleMessageView)
		r.Get("/compose", s.handleCompose)
		r.Get("/reply/{messageID}", s.handleCompose)
		r.Post("/send", s.handleSend)
		r.Get("/delete/{messageID}", s.handleDeleteView)
		r.Post("/delete", s.handleDelete)
		r.Post("/toggle-read/{messageID}", s.handleToggleRead)
		r.Post("/toggle-archived/{messageID}", s.handleToggleArchived)
	})

	r.NotFound(s.handleNotFound)

	return r
}

// view assembles the base page data: navigation, identity, and any
// pending notice. A nav build failure is logged and degrades to an
// empty nav rather than failing the page.
func (s *Server) view(w http.ResponseWriter, r *http.Request, title string) *viewData {
	data := &viewData{
		Title:  title,
		Notice: popNotice(w, r),
		Form:   map[string]string{},
	}
	if id, ok := IdentityFrom(r.Context()); ok {
		data.Identity = &id
	}
	nav, err := s.inventory.Classifications(r.Context())
	if err != nil {
		s.logger.Error("build nav", "error", err)
	} else {
		data.Nav = nav
	}
	return data
}

func (s *Server) render(w http.ResponseWriter, status int, view string, data *viewData) {
	if err := s.renderer.render(w, status, view, data); err != nil {
		s.logger.Error("render failed", "view", view, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// serverError is the single exit for infrastructure faults: log with
// context, respond with the generic error page.
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	data := s.view(w, r, "Server Error")
	data.Data = "An unexpected error occurred. Please try again later."
	s.render(w, http.StatusInternalServerError, "error", data)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	data := s.view(w, r, "Not Found")
	data.Data = "Sorry, we appear to have lost that page."
	s.render(w, http.StatusNotFound, "error", data)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "home", s.view(w, r, "Home"))
}
