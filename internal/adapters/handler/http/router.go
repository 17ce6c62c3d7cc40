package http

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewHandler(
	dashboardHandler *DashboardHandler,
	draftHandler *DraftHandler,
	ballotHandler *BallotHandler,
	pollHandler *PollHandler,
	customPollHandler *CustomPollHandler,
	allowedOrigins []string,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsHandler(allowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("welcome"))
		})

		r.Route("/polls", func(r chi.Router) {
			r.Get("/", pollHandler.ListPolls)
			r.Post("/", pollHandler.CreatePoll)
			r.Get("/featured", dashboardHandler.GetCategoryResults)
			r.Post("/custom_poll", customPollHandler.CreateCustomPoll)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/results", dashboardHandler.GetResults)

				r.Group(func(r chi.Router) {
					r.Use(ballotSession)
					r.Get("/selection", ballotHandler.GetSelection)
					r.Put("/selection", ballotHandler.Select)
					r.Post("/votes", ballotHandler.Cast)
				})
			})
		})

		r.Route("/custom-polls/{id}", func(r chi.Router) {
			r.Get("/competitors", customPollHandler.GetCompetitors)
			r.Get("/results", customPollHandler.GetResults)
			r.Post("/vote", customPollHandler.Vote)
		})

		r.Route("/opinion_poll/{id}", func(r chi.Router) {
			r.Get("/analytics", dashboardHandler.GetAnalytics)
			r.Get("/responses.csv", dashboardHandler.ExportResponses)
		})

		r.Route("/surveys", func(r chi.Router) {
			r.Post("/", draftHandler.CreateDraft)
			r.Route("/{draftID}", func(r chi.Router) {
				r.Get("/", draftHandler.GetDraft)
				r.Post("/submit", draftHandler.Submit)
				r.Post("/questions", draftHandler.AppendQuestion)
				r.Route("/questions/{questionID}", func(r chi.Router) {
					r.Delete("/", draftHandler.RemoveQuestion)
					r.Put("/text", draftHandler.UpdateQuestionText)
					r.Post("/options", draftHandler.AddOption)
					r.Put("/options/{index}", draftHandler.UpdateOption)
					r.Put("/answer", draftHandler.SetAnswer)
				})
			})
		})
	})

	return r
}

// corsHandler allows the configured origins. Credentials, and with them the
// ballot session cookie, are only shared with origins listed explicitly: a
// "*" entry opens the read endpoints to every site without cookies.
func corsHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: !slices.Contains(allowedOrigins, "*"),
		MaxAge:           300,
	})
}
