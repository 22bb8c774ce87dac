package adapthttp

import (
	"errors"
	"net/http"

	"github.com/xivind/gas-gauge/internal/app"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := s.views.Dashboard(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func (s *Server) handleCanisterDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := s.views.CanisterDetail(r.Context(), r.PathValue("id"))
	if errors.Is(err, app.ErrCanisterNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
