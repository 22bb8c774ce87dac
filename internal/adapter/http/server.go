// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/go-playground/validator/v10"
	"golang.org/x/oauth2"

	"github.com/xivind/gas-gauge/internal/app"
)

// OIDCConfig carries the optional SSO wiring. Enabled is false when no
// identity provider is configured.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config *oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	views      *app.ViewService
	canisters  *app.CanisterService
	types      *app.TypeService
	weighings  *app.WeighingService
	auth       *app.AuthService
	oidcConfig OIDCConfig
	validate   *validator.Validate
	webDir     string

	disableAuth bool
}

// New creates a Server wired to the given application services.
func New(vs *app.ViewService, cs *app.CanisterService, ts *app.TypeService, ws *app.WeighingService, as *app.AuthService, oidcCfg OIDCConfig, webDir string) *Server {
	return &Server{
		views:      vs,
		canisters:  cs,
		types:      ts,
		weighings:  ws,
		auth:       as,
		oidcConfig: oidcCfg,
		validate:   validator.New(),
		webDir:     webDir,
	}
}

// WithoutAuth disables session checking. Test use only.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("POST /auth/login", s.handleLogin)
	api.HandleFunc("POST /auth/logout", s.handleLogout)
	api.HandleFunc("POST /auth/setup", s.handleSetupUser)
	api.HandleFunc("GET /auth/config", s.handleAuthConfig)
	api.HandleFunc("GET /auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("GET /auth/sso/callback", s.handleSSOCallback)

	protected := http.NewServeMux()
	protected.HandleFunc("GET /dashboard", s.handleDashboard)

	protected.HandleFunc("POST /canisters", s.handleCanisterCreate)
	protected.HandleFunc("GET /canisters/{id}", s.handleCanisterDetail)
	protected.HandleFunc("PATCH /canisters/{id}/label", s.handleCanisterRename)
	protected.HandleFunc("POST /canisters/{id}/deplete", s.handleCanisterDeplete)
	protected.HandleFunc("POST /canisters/{id}/reactivate", s.handleCanisterReactivate)
	protected.HandleFunc("DELETE /canisters/{id}", s.handleCanisterDelete)

	protected.HandleFunc("POST /canisters/{id}/weighings", s.handleWeighingCreate)
	protected.HandleFunc("DELETE /weighings/{id}", s.handleWeighingDelete)

	protected.HandleFunc("GET /types", s.handleTypeList)
	protected.HandleFunc("POST /types", s.handleTypeCreate)
	protected.HandleFunc("DELETE /types/{id}", s.handleTypeDelete)
	protected.HandleFunc("GET /types/{id}/cheatsheet", s.handleCheatsheet)

	api.Handle("/", s.authMiddleware(protected))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
