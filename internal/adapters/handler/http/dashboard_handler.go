package http

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		service: service,
	}
}

// GetResults godoc
// @Summary      Returns the latest tally of a poll
// @Description  Served from the last refresh; the first request for a poll computes it on demand.
// @Tags         polls
// @Produce      json
// @Success      200
// @Failure      404
// @Router       /polls/{id}/results [get]
func (h *DashboardHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	dashboard, err := h.service.Dashboard(r.Context(), pollID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// GetCategoryResults serves the dashboard of the first poll listed for the
// category query parameter.
func (h *DashboardHandler) GetCategoryResults(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		http.Error(w, "category is required", http.StatusBadRequest)
		return
	}

	dashboard, err := h.service.CategoryDashboard(r.Context(), category)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func (h *DashboardHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	analytics, err := h.service.Analytics(r.Context(), pollID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}

// ExportResponses streams the raw survey responses as CSV, one column per
// question id in order of first appearance.
func (h *DashboardHandler) ExportResponses(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	responses, err := h.service.Responses(r.Context(), pollID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="poll_%d_responses.csv"`, pollID))

	cw := csv.NewWriter(w)
	for _, row := range responseRows(responses) {
		if err := cw.Write(row); err != nil {
			log.Printf("failed to write csv row: %v", err)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Printf("failed to flush csv: %v", err)
	}
}

func responseRows(responses []domain.SurveyResponse) [][]string {
	var questionIDs []int
	headers := map[int]string{}
	for _, resp := range responses {
		for _, a := range resp.Answers {
			if _, ok := headers[a.ID]; ok {
				continue
			}
			questionIDs = append(questionIDs, a.ID)
			headers[a.ID] = fmt.Sprintf("Q%d: %s", a.ID, a.Text)
		}
	}

	header := []string{"response_id", "name", "gender", "age", "submitted_at"}
	for _, id := range questionIDs {
		header = append(header, headers[id])
	}
	rows := [][]string{header}

	for _, resp := range responses {
		answers := make(map[int]string, len(resp.Answers))
		for _, a := range resp.Answers {
			answers[a.ID] = a.Answer
		}

		submittedAt := ""
		if !resp.SubmittedAt.IsZero() {
			submittedAt = resp.SubmittedAt.Format(time.RFC3339)
		}
		row := []string{
			strconv.FormatInt(resp.ID, 10),
			resp.Name,
			resp.Gender,
			strconv.Itoa(resp.Age),
			submittedAt,
		}
		for _, id := range questionIDs {
			row = append(row, answers[id])
		}
		rows = append(rows, row)
	}
	return rows
}
