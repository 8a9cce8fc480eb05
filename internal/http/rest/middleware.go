package rest

import (
	"context"
	"net/http"

	"github.com/lucsky/cuid"
	"github.com/pollhub/pollhub_api/util"
	"github.com/pollhub/pollhub_api/util/tracing"
	"github.com/pollhub/pollhub_api/util/values"
)

// RequestTracing handles the request tracing context
func RequestTracing(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requestSource := r.Header.Get(values.HeaderRequestSource)
		if requestSource == "" {
			requestSource = "web"
		}

		requestID := r.Header.Get(values.HeaderRequestID)
		if requestID == "" {
			requestID = cuid.New()
		}

		tracingContext := tracing.Context{
			RequestID:     requestID,
			RequestSource: requestSource,
		}

		ctx = context.WithValue(ctx, values.ContextTracingKey, tracingContext)
		next.ServeHTTP(w, r.WithContext(ctx))
	}

	return http.HandlerFunc(fn)
}

// WithSession resolves the caller identity from the session cookies. A valid
// access token puts the user id in the request context. An expired access
// token with a valid refresh token mints a fresh pair and sets both cookies
// on the response before any downstream handler writes, so redirect paths
// still carry them. Anything else leaves the request anonymous; resolution
// failure is never an error.
func (api *API) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var userID string

		if c, err := r.Cookie(values.CookieAccessToken); err == nil && c.Value != "" {
			if claims, verifyErr := api.verifyToken(c.Value, false); verifyErr == nil {
				userID = claims.UserID
			}
		}

		if userID == "" {
			if c, err := r.Cookie(values.CookieRefreshToken); err == nil && c.Value != "" {
				if claims, verifyErr := api.verifyToken(c.Value, true); verifyErr == nil {
					if id, refreshErr := api.refreshSession(w, claims.UserID); refreshErr == nil {
						userID = id
					}
				}
			}
		}

		if userID != "" {
			ctx := context.WithValue(r.Context(), values.ContextUserIDKey, userID)
			r = r.WithContext(ctx)
		}

		next.ServeHTTP(w, r)
	})
}

// RequireLogin gates mutating routes. Anonymous callers get a user-facing
// message, not a redirect, since these routes are called by the app itself.
func (api *API) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := util.GetUserIDFromContext(r.Context()); err != nil {
			writeErrorResponse(w, nil, values.NotAuthorised, "You must be signed in")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminDecision is the admin-route state machine: unauthenticated callers go
// to the login page, authenticated non-admins to the unauthorized page,
// admins through. A failed or missing role lookup counts as non-admin.
func AdminDecision(authenticated bool, role string) (allow bool, redirect string) {
	if !authenticated {
		return false, values.PathLogin
	}
	if role != values.RoleAdmin {
		return false, values.PathUnauthorized
	}
	return true, ""
}

// RequireAdmin guards /admin routes. The role is looked up fresh on every
// request; it is never cached.
func (api *API) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authenticated := false
		role := values.RoleUser

		if userID, err := util.GetUserIDFromContext(r.Context()); err == nil {
			authenticated = true
			role = api.GetUserRole(r.Context(), userID)
		}

		allow, redirect := AdminDecision(authenticated, role)
		if !allow {
			http.Redirect(w, r, redirect, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
