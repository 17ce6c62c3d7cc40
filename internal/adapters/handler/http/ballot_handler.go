package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

type BallotHandler struct {
	service ports.BallotService
}

func NewBallotHandler(service ports.BallotService) *BallotHandler {
	return &BallotHandler{
		service: service,
	}
}

type selectRequest struct {
	CompetitorID int64 `json:"competitorId"`
}

func (h *BallotHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	sel, err := h.service.Selection(r.Context(), sessionFrom(r), pollID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sel)
}

// Select godoc
// @Summary      Selects a competitor
// @Description  Records the competitor picked by the ballot session. Nothing is sent to the backend until the vote is cast.
// @Tags         ballot
// @Accept       json
// @Produce      json
// @Success      200
// @Failure      422
// @Router       /polls/{id}/selection [put]
func (h *BallotHandler) Select(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req selectRequest
	if err := decodeJSON(r, &req); err != nil || req.CompetitorID <= 0 {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sel, err := h.service.Select(r.Context(), sessionFrom(r), pollID, req.CompetitorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sel)
}

// Cast godoc
// @Summary      Casts the selected vote
// @Tags         ballot
// @Success      201
// @Failure      409
// @Router       /polls/{id}/votes [post]
func (h *BallotHandler) Cast(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Cast(r.Context(), sessionFrom(r), pollID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func sessionFrom(r *http.Request) uuid.UUID {
	session, _ := r.Context().Value(SessionKey).(uuid.UUID)
	return session
}
