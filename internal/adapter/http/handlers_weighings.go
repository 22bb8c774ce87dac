package adapthttp

import (
	"errors"
	"net/http"

	"github.com/xivind/gas-gauge/internal/app"
)

func (s *Server) handleWeighingCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Weight     int    `json:"weight" validate:"required,gt=0"`
		RecordedAt string `json:"recordedAt" validate:"required,datetime=2006-01-02"`
		Comment    string `json:"comment"`
	}
	if err := s.parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	weighing, err := s.weighings.Record(r.Context(), r.PathValue("id"), body.Weight, body.RecordedAt, body.Comment)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrCanisterNotFound):
			writeError(w, http.StatusNotFound, err)
		case errors.Is(err, app.ErrInvalidWeight), errors.Is(err, app.ErrInvalidRecordedAt):
			writeError(w, http.StatusBadRequest, err)
		default:
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"weighing": weighing})
}

func (s *Server) handleWeighingDelete(w http.ResponseWriter, r *http.Request) {
	id, err := int64Path(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	weighing, err := s.weighings.Delete(r.Context(), id)
	if errors.Is(err, app.ErrWeighingNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "canisterId": weighing.CanisterID})
}
