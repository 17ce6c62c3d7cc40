package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

type DraftHandler struct {
	service ports.DraftService
}

func NewDraftHandler(service ports.DraftService) *DraftHandler {
	return &DraftHandler{
		service: service,
	}
}

type createDraftRequest struct {
	PollID int64 `json:"pollId"`
}

type appendQuestionRequest struct {
	Type string `json:"type"`
}

type appendQuestionResponse struct {
	QuestionID int                 `json:"questionId"`
	Draft      *domain.SurveyDraft `json:"draft"`
}

type textRequest struct {
	Text string `json:"text"`
}

type answerRequest struct {
	Answer string `json:"answer"`
}

// CreateDraft godoc
// @Summary      Starts an opinion survey
// @Description  Creates a draft holding the three core questions of the poll.
// @Tags         surveys
// @Accept       json
// @Produce      json
// @Success      201
// @Failure      404
// @Router       /surveys [post]
func (h *DraftHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var req createDraftRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.PollID <= 0 {
		writeError(w, domain.ErrInvalidPollID)
		return
	}

	draft, err := h.service.Create(r.Context(), req.PollID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, draft)
}

func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := draftIDParam(w, r)
	if !ok {
		return
	}

	draft, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (h *DraftHandler) AppendQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := draftIDParam(w, r)
	if !ok {
		return
	}

	var req appendQuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	draft, questionID, err := h.service.AppendQuestion(r.Context(), id, req.Type)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, appendQuestionResponse{QuestionID: questionID, Draft: draft})
}

func (h *DraftHandler) RemoveQuestion(w http.ResponseWriter, r *http.Request) {
	id, questionID, ok := questionParams(w, r)
	if !ok {
		return
	}

	draft, err := h.service.RemoveQuestion(r.Context(), id, questionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (h *DraftHandler) UpdateQuestionText(w http.ResponseWriter, r *http.Request) {
	id, questionID, ok := questionParams(w, r)
	if !ok {
		return
	}

	var req textRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	draft, err := h.service.UpdateQuestionText(r.Context(), id, questionID, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (h *DraftHandler) AddOption(w http.ResponseWriter, r *http.Request) {
	id, questionID, ok := questionParams(w, r)
	if !ok {
		return
	}

	draft, err := h.service.AddOption(r.Context(), id, questionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, draft)
}

func (h *DraftHandler) UpdateOption(w http.ResponseWriter, r *http.Request) {
	id, questionID, ok := questionParams(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid option index", http.StatusBadRequest)
		return
	}

	var req textRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.EditOptionInput{
		QuestionID:  questionID,
		OptionIndex: index,
		Text:        req.Text,
	}
	draft, err := h.service.UpdateOption(r.Context(), id, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (h *DraftHandler) SetAnswer(w http.ResponseWriter, r *http.Request) {
	id, questionID, ok := questionParams(w, r)
	if !ok {
		return
	}

	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	draft, err := h.service.SetAnswer(r.Context(), id, questionID, req.Answer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// Submit godoc
// @Summary      Submits an opinion survey
// @Description  Validates the respondent and every choice answer, posts the survey to the backend and discards the draft.
// @Tags         surveys
// @Accept       json
// @Success      204
// @Failure      422
// @Router       /surveys/{draftID}/submit [post]
func (h *DraftHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := draftIDParam(w, r)
	if !ok {
		return
	}

	var respondent domain.Respondent
	if err := decodeJSON(r, &respondent); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeError(w, err)
			return
		}
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.Submit(r.Context(), id, respondent); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func draftIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "draftID"))
	if err != nil {
		http.Error(w, "invalid draft id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func questionParams(w http.ResponseWriter, r *http.Request) (uuid.UUID, int, bool) {
	id, ok := draftIDParam(w, r)
	if !ok {
		return uuid.Nil, 0, false
	}

	questionID, err := strconv.Atoi(chi.URLParam(r, "questionID"))
	if err != nil {
		http.Error(w, "invalid question id", http.StatusBadRequest)
		return uuid.Nil, 0, false
	}
	return id, questionID, true
}
