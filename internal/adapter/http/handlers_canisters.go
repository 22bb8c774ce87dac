package adapthttp

import (
	"errors"
	"net/http"

	"github.com/xivind/gas-gauge/internal/app"
)

func (s *Server) handleCanisterCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Label  string `json:"label" validate:"required,max=64"`
		TypeID int64  `json:"canisterTypeId" validate:"required,gt=0"`
	}
	if err := s.parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	canister, err := s.canisters.Create(r.Context(), body.Label, body.TypeID)
	if err != nil {
		writeError(w, statusForCanisterErr(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"canister": canister})
}

func (s *Server) handleCanisterRename(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Label string `json:"label" validate:"required,max=64"`
	}
	if err := s.parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.canisters.Rename(r.Context(), r.PathValue("id"), body.Label); err != nil {
		writeError(w, statusForCanisterErr(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleCanisterDeplete(w http.ResponseWriter, r *http.Request) {
	if err := s.canisters.MarkDepleted(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, statusForCanisterErr(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleCanisterReactivate(w http.ResponseWriter, r *http.Request) {
	if err := s.canisters.Reactivate(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, statusForCanisterErr(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleCanisterDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.canisters.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, statusForCanisterErr(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func statusForCanisterErr(err error) int {
	switch {
	case errors.Is(err, app.ErrCanisterNotFound):
		return http.StatusNotFound
	case errors.Is(err, app.ErrInvalidLabel), errors.Is(err, app.ErrUnknownCanisterType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
