package web

import (
	"net/http"
	"strconv"

	"github.com/patrimonyd/patrimonyd/internal/domain"
	"github.com/patrimonyd/patrimonyd/internal/service"
)

func (s *Server) handleListCurrent(w http.ResponseWriter, r *http.Request) {
	snaps, err := s.patrimony.ListCurrent(r.Context(), ownerID(r))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, emptyIfNil(snaps))
}

type periodRequest struct {
	Period *service.Period `json:"period"`
}

func (s *Server) handleListForPeriod(w http.ResponseWriter, r *http.Request) {
	var req periodRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	var period service.Period
	if req.Period != nil {
		period = *req.Period
	}

	snaps, err := s.patrimony.ListForPeriod(r.Context(), ownerID(r), period)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, emptyIfNil(snaps))
}

func (s *Server) handleListByType(w http.ResponseWriter, r *http.Request) {
	typeID, err := strconv.ParseInt(r.PathValue("typeID"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid type id")
		return
	}

	snaps, err := s.patrimony.ListByType(r.Context(), typeID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, emptyIfNil(snaps))
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input service.CreateInput
	if err := decodeBody(r, &input); err != nil {
		s.respondError(w, err)
		return
	}

	created, err := s.patrimony.Create(r.Context(), input, ownerID(r))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid patrimony id")
		return
	}

	snap, err := s.patrimony.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid patrimony id")
		return
	}

	var input service.UpdateInput
	if err := decodeBody(r, &input); err != nil {
		s.respondError(w, err)
		return
	}

	updated, err := s.patrimony.Update(r.Context(), id, input)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDuplicate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid patrimony id")
		return
	}

	var input service.DuplicateInput
	if err := decodeBody(r, &input); err != nil {
		s.respondError(w, err)
		return
	}

	created, err := s.patrimony.Duplicate(r.Context(), id, input)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid patrimony id")
		return
	}

	if err := s.patrimony.Deactivate(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid patrimony id")
		return
	}

	if err := s.patrimony.Delete(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// emptyIfNil keeps empty list responses as [] rather than null.
func emptyIfNil(snaps []*domain.Snapshot) []*domain.Snapshot {
	if snaps == nil {
		return []*domain.Snapshot{}
	}
	return snaps
}
