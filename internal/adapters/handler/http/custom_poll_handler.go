package http

import (
	"net/http"

	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

type CustomPollHandler struct {
	service ports.CustomPollService
}

func NewCustomPollHandler(service ports.CustomPollService) *CustomPollHandler {
	return &CustomPollHandler{
		service: service,
	}
}

type customVoteRequest struct {
	CompetitorID int64 `json:"competitorId"`
}

// CreateCustomPoll godoc
// @Summary      Creates a custom poll
// @Description  A title and a list of competitor names; blank names are dropped.
// @Tags         custom-polls
// @Accept       json
// @Produce      json
// @Success      201
// @Failure      422
// @Router       /polls/custom_poll [post]
func (h *CustomPollHandler) CreateCustomPoll(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCustomPollInput
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	poll, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, poll)
}

func (h *CustomPollHandler) GetCompetitors(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	competitors, err := h.service.Competitors(r.Context(), pollID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, competitors)
}

func (h *CustomPollHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.service.Results(r.Context(), pollID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Vote godoc
// @Summary      Votes on a custom poll
// @Tags         custom-polls
// @Accept       json
// @Success      204
// @Failure      422
// @Router       /custom-polls/{id}/vote [post]
func (h *CustomPollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req customVoteRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.CompetitorID <= 0 {
		http.Error(w, "competitorId is required", http.StatusBadRequest)
		return
	}

	if err := h.service.Vote(r.Context(), pollID, req.CompetitorID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
