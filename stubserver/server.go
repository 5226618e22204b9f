package stubserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-student-jobs/internal/config"
	"github.com/jrsteele09/go-student-jobs/token/jwt"
	"github.com/jrsteele09/go-student-jobs/token/refresh"
	refreshrepofake "github.com/jrsteele09/go-student-jobs/token/refresh/repofake"
	"github.com/jrsteele09/go-student-jobs/users"
	fakeuserrepo "github.com/jrsteele09/go-student-jobs/users/repofake"
	"github.com/rs/zerolog"
)

// Repos holds the storage the stub backend runs on.
type Repos struct {
	Users         users.UserRepo
	RefreshTokens refresh.Repo
}

// InMemoryRepos returns empty in-memory repositories.
func InMemoryRepos() Repos {
	return Repos{
		Users:         fakeuserrepo.NewFakeUserRepo(),
		RefreshTokens: refreshrepofake.NewFakeRefreshTokenRepo(),
	}
}

// Server is an in-memory stand-in for the job portal backend. It speaks the
// same routes and token protocol as the real one.
type Server struct {
	env    string // Environment (e.g., "DEV", "PROD")
	mux    *http.ServeMux
	routes []string
	config config.Config
	logger zerolog.Logger

	users    users.UserRepo
	refresh  *refresh.Manager
	creator  *jwt.Creator
	verifier *jwt.Verifier
	catalog  *Catalog
}

type Option func(*Server)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

func New(config config.Config, repos Repos, opts ...Option) (*Server, error) {
	s := &Server{
		env:      config.GetEnv(),
		mux:      http.NewServeMux(),
		config:   config,
		logger:   zerolog.Nop(),
		users:    repos.Users,
		refresh:  refresh.NewManager(repos.RefreshTokens, config),
		creator:  jwt.NewCreator(config),
		verifier: jwt.NewVerifier(config),
	}
	for _, opt := range opts {
		opt(s)
	}

	catalog, err := NewCatalog()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to load seed data: %w", err)
	}
	s.catalog = catalog

	if err := s.InitialiseSystem(); err != nil {
		return nil, fmt.Errorf("[Server New] Failed to initialise the system: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Catalog exposes the job data, mainly for tests.
func (s *Server) Catalog() *Catalog {
	return s.catalog
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			s.logRoute(parts[0], parts[1])
		} else {
			s.logRoute("", parts[0])
		}
	}
}

func (s *Server) logRoute(method, path string) {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	color, ok := methodColors[method]
	if !ok {
		color = Gray
	}
	s.logger.Debug().Msgf("[%s] %s", color+paddedMethod+ResetColor, path)
}
