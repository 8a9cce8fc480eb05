package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pollhub/pollhub_api/internal/model"
	"github.com/pollhub/pollhub_api/util"
	"github.com/pollhub/pollhub_api/util/tracing"
	"github.com/pollhub/pollhub_api/util/values"
)

func (api *API) AdminRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireAdmin)
		r.Method(http.MethodGet, "/polls", Handler(api.AdminListPolls))
		r.Method(http.MethodGet, "/users", Handler(api.AdminListUsers))
		r.Method(http.MethodDelete, "/polls/{pollID}", Handler(api.AdminDeletePoll))
	})

	return mux
}

// AdminListPolls returns every poll in full projection, owner ids and
// tallies included.
func (api *API) AdminListPolls(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	polls, err := api.ListPollsRepo(r.Context())
	if err != nil {
		return respondWithError(err, "Failed to list polls", values.Error, &tc)
	}

	full := make([]model.PollFull, 0, len(polls))
	for _, poll := range polls {
		options, err := api.GetPollOptionsRepo(r.Context(), poll.ID)
		if err != nil {
			return respondWithError(err, "Failed to get poll options", values.Error, &tc)
		}
		full = append(full, model.PollFull{
			ID:        poll.ID,
			Question:  poll.Question,
			OwnerID:   poll.OwnerID,
			Options:   options,
			CreatedAt: poll.CreatedAt,
			UpdatedAt: poll.UpdatedAt,
		})
	}

	return &ServerResponse{
		Message:    "Polls returned successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       full,
	}
}

func (api *API) AdminListUsers(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	users, err := api.ListUsersWithRolesRepo(r.Context())
	if err != nil {
		return respondWithError(err, "Failed to list users", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "Users returned successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       users,
	}
}

func (api *API) AdminDeletePoll(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	pollID, err := util.StringToUUID(chi.URLParam(r, "pollID"))
	if err != nil {
		return respondWithError(err, "invalid poll ID", values.BadRequestBody, &tc)
	}

	if err := api.AdminDeletePollRepo(r.Context(), pollID); err != nil {
		if err == ErrPollNotFound {
			return respondWithError(nil, "Poll not found", values.NotFound, &tc)
		}
		return respondWithError(err, "Failed to delete poll", values.Error, &tc)
	}

	go api.Deps.WebSocket.BroadcastPollUpdate(pollID.String(), "deleted")

	return &ServerResponse{
		Message:    "Poll deleted successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
	}
}
