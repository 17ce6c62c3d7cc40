package http

import (
	"net/http"

	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

type PollHandler struct {
	service ports.PollService
}

func NewPollHandler(service ports.PollService) *PollHandler {
	return &PollHandler{
		service: service,
	}
}

type createPollRequest struct {
	Title        string              `json:"title"`
	Category     string              `json:"category"`
	Presidential string              `json:"presidential"`
	Region       string              `json:"region"`
	County       string              `json:"county"`
	Constituency string              `json:"constituency"`
	Ward         string              `json:"ward"`
	Competitors  []domain.Competitor `json:"competitors"`
}

func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req createPollRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := domain.CreatePollInput{
		Title:        req.Title,
		Category:     req.Category,
		Presidential: req.Presidential,
		Region:       req.Region,
		County:       req.County,
		Constituency: req.Constituency,
		Ward:         req.Ward,
		Competitors:  req.Competitors,
	}

	poll, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, poll)
}

// ListPolls godoc
// @Summary      Lists polls
// @Description  Filters by the optional category query parameter.
// @Tags         polls
// @Produce      json
// @Success      200
// @Router       /polls [get]
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.service.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, polls)
}
