package adapthttp

import (
	"errors"
	"net/http"

	"github.com/xivind/gas-gauge/internal/app"
)

func (s *Server) handleTypeList(w http.ResponseWriter, r *http.Request) {
	types, err := s.types.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"canisterTypes": types})
}

func (s *Server) handleTypeCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string `json:"name" validate:"required"`
		FullWeight  int    `json:"fullWeight" validate:"required,gt=0"`
		EmptyWeight int    `json:"emptyWeight" validate:"required,gt=0,ltfield=FullWeight"`
	}
	if err := s.parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ct, err := s.types.Create(r.Context(), body.Name, body.FullWeight, body.EmptyWeight)
	if err != nil {
		if errors.Is(err, app.ErrInvalidWeights) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"canisterType": ct})
}

func (s *Server) handleTypeDelete(w http.ResponseWriter, r *http.Request) {
	id, err := int64Path(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.types.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, app.ErrCanisterTypeNotFound):
			writeError(w, http.StatusNotFound, err)
		case errors.Is(err, app.ErrProtectedCanisterType):
			writeError(w, http.StatusBadRequest, err)
		default:
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleCheatsheet(w http.ResponseWriter, r *http.Request) {
	id, err := int64Path(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sheet, err := s.types.Cheatsheet(r.Context(), id)
	if errors.Is(err, app.ErrCanisterTypeNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}
