package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pollhub/pollhub_api/internal/model"
	"github.com/pollhub/pollhub_api/util"
	"github.com/pollhub/pollhub_api/util/tracing"
	"github.com/pollhub/pollhub_api/util/values"
)

func (api *API) PollRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Method(http.MethodGet, "/", Handler(api.ListPolls))
	mux.Method(http.MethodGet, "/{pollID}", Handler(api.GetPollByID))

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)
		r.Method(http.MethodPost, "/", Handler(api.CreatePoll))
		r.Method(http.MethodGet, "/mine", Handler(api.ListMyPolls))
		r.Method(http.MethodPut, "/{pollID}", Handler(api.UpdatePoll))
		r.Method(http.MethodDelete, "/{pollID}", Handler(api.DeletePoll))
		r.Method(http.MethodPost, "/{pollID}/votes", Handler(api.SubmitVote))
	})

	return mux
}

// caller returns the request's identity (uuid.Nil when anonymous) and the
// freshly looked-up role.
func (api *API) caller(r *http.Request) (uuid.UUID, string) {
	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return uuid.Nil, values.RoleUser
	}
	return userID, api.GetUserRole(r.Context(), userID)
}

func (api *API) CreatePoll(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.CreatePollRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	poll, status, message, err := api.CreatePollHelper(r.Context(), userID, req)
	if err != nil || status != values.Created {
		return respondWithError(err, message, status, &tc)
	}

	go api.Deps.WebSocket.BroadcastPollUpdate(poll.ID.String(), "created")

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       poll,
	}
}

func (api *API) ListPolls(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	callerID, role := api.caller(r)

	polls, status, message, err := api.ListPollsHelper(r.Context(), callerID, role)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       polls,
	}
}

func (api *API) ListMyPolls(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	polls, status, message, err := api.ListMyPollsHelper(r.Context(), userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       polls,
	}
}

func (api *API) GetPollByID(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	pollID, err := util.StringToUUID(chi.URLParam(r, "pollID"))
	if err != nil {
		return respondWithError(err, "invalid poll ID", values.BadRequestBody, &tc)
	}

	callerID, role := api.caller(r)

	poll, status, message, err := api.GetPollHelper(r.Context(), pollID, callerID, role)
	if err != nil || status != values.Success {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       poll,
	}
}

func (api *API) UpdatePoll(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	pollID, err := util.StringToUUID(chi.URLParam(r, "pollID"))
	if err != nil {
		return respondWithError(err, "invalid poll ID", values.BadRequestBody, &tc)
	}

	var req model.UpdatePollRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	poll, status, message, err := api.UpdatePollHelper(r.Context(), pollID, userID, req)
	if err != nil || status != values.Success {
		return respondWithError(err, message, status, &tc)
	}

	go api.Deps.WebSocket.BroadcastPollUpdate(pollID.String(), "updated")

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       poll,
	}
}

func (api *API) DeletePoll(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	pollID, err := util.StringToUUID(chi.URLParam(r, "pollID"))
	if err != nil {
		return respondWithError(err, "invalid poll ID", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	status, message, err := api.DeletePollHelper(r.Context(), pollID, userID)
	if err != nil || status != values.Success {
		return respondWithError(err, message, status, &tc)
	}

	go api.Deps.WebSocket.BroadcastPollUpdate(pollID.String(), "deleted")

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

func (api *API) SubmitVote(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	pollID, err := util.StringToUUID(chi.URLParam(r, "pollID"))
	if err != nil {
		return respondWithError(err, "invalid poll ID", values.BadRequestBody, &tc)
	}

	var req model.SubmitVoteRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	optionID, err := util.StringToUUID(req.OptionID)
	if err != nil {
		return respondWithError(err, "invalid option ID", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	status, message, err := api.SubmitVoteHelper(r.Context(), pollID, userID, optionID)
	if err != nil || status != values.Success {
		return respondWithError(err, message, status, &tc)
	}

	go api.Deps.WebSocket.BroadcastPollUpdate(pollID.String(), "voted")

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}
