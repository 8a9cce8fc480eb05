package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pollhub/pollhub_api/internal/model"
	"github.com/pollhub/pollhub_api/util"
	"github.com/pollhub/pollhub_api/util/tracing"
	"github.com/pollhub/pollhub_api/util/values"
)

func (api *API) AuthRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Method(http.MethodPost, "/register", Handler(api.Register))
	mux.Method(http.MethodPost, "/login", Handler(api.Login))
	mux.Method(http.MethodPost, "/logout", Handler(api.Logout))

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)
		r.Method(http.MethodGet, "/me", Handler(api.Me))
	})

	return mux
}

func (api *API) Register(w http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.RegisterRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	user, status, message, err := api.RegisterUser(r.Context(), req)
	if err != nil || status != values.Created {
		return respondWithError(err, message, status, &tc)
	}

	if _, sessionErr := api.refreshSession(w, user.ID.String()); sessionErr != nil {
		return respondWithError(sessionErr, "failed to create session", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       user,
	}
}

func (api *API) Login(w http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.LoginRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	user, status, message, err := api.LoginUser(r.Context(), req)
	if err != nil || status != values.Success {
		return respondWithError(err, message, status, &tc)
	}

	if _, sessionErr := api.refreshSession(w, user.ID.String()); sessionErr != nil {
		return respondWithError(sessionErr, "failed to create session", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       user,
	}
}

func (api *API) Logout(w http.ResponseWriter, r *http.Request) *ServerResponse {
	api.clearSessionCookies(w)

	return &ServerResponse{
		Message:    "Logged out",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
	}
}

func (api *API) Me(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	user, err := api.GetUserByID(r.Context(), userID)
	if err != nil {
		return respondWithError(err, "user not found", values.NotFound, &tc)
	}

	resp := model.AuthUserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        api.GetUserRole(r.Context(), user.ID),
	}

	return &ServerResponse{
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       resp,
	}
}
