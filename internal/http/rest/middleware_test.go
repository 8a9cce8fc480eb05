package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pollhub/pollhub_api/util"
	"github.com/pollhub/pollhub_api/util/values"
)

func TestAdminDecision(t *testing.T) {
	testCases := []struct {
		name          string
		authenticated bool
		role          string
		wantAllow     bool
		wantRedirect  string
	}{
		{"Anonymous", false, values.RoleUser, false, values.PathLogin},
		{"Authenticated Non-Admin", true, values.RoleUser, false, values.PathUnauthorized},
		{"Authenticated Unknown Role", true, "", false, values.PathUnauthorized},
		{"Admin", true, values.RoleAdmin, true, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			allow, redirect := AdminDecision(tc.authenticated, tc.role)
			if allow != tc.wantAllow {
				t.Errorf("AdminDecision(%v, %q) allow = %v, want %v", tc.authenticated, tc.role, allow, tc.wantAllow)
			}
			if redirect != tc.wantRedirect {
				t.Errorf("AdminDecision(%v, %q) redirect = %q, want %q", tc.authenticated, tc.role, redirect, tc.wantRedirect)
			}
		})
	}
}

func TestWithSessionValidAccessToken(t *testing.T) {
	api := testAPI()

	access, _, err := api.createToken("6b9f66a5-52b1-40a1-86fd-64b0bd3f3e0e")
	if err != nil {
		t.Fatalf("createToken returned error: %v", err)
	}

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := r.Context().Value(values.ContextUserIDKey).(string); ok {
			gotUserID = id
		}
	})

	r := httptest.NewRequest(http.MethodGet, "/polls", nil)
	r.AddCookie(&http.Cookie{Name: values.CookieAccessToken, Value: access})
	w := httptest.NewRecorder()

	api.WithSession(next).ServeHTTP(w, r)

	if gotUserID != "6b9f66a5-52b1-40a1-86fd-64b0bd3f3e0e" {
		t.Errorf("context user id = %q, want the token subject", gotUserID)
	}
}

func TestWithSessionRefreshRotatesCookies(t *testing.T) {
	api := testAPI()

	refresh, _, err := api.createRefreshToken("6b9f66a5-52b1-40a1-86fd-64b0bd3f3e0e")
	if err != nil {
		t.Fatalf("createRefreshToken returned error: %v", err)
	}

	var authenticated bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.Context().Value(values.ContextUserIDKey).(string)
		authenticated = ok
	})

	r := httptest.NewRequest(http.MethodGet, "/polls", nil)
	r.AddCookie(&http.Cookie{Name: values.CookieRefreshToken, Value: refresh})
	w := httptest.NewRecorder()

	api.WithSession(next).ServeHTTP(w, r)

	if !authenticated {
		t.Fatal("expected refresh cookie to authenticate the request")
	}

	byName := make(map[string]bool)
	for _, c := range w.Result().Cookies() {
		byName[c.Name] = true
	}
	if !byName[values.CookieAccessToken] || !byName[values.CookieRefreshToken] {
		t.Errorf("expected refreshed cookie pair on the response, got %v", byName)
	}
}

func TestWithSessionAnonymousOnBadToken(t *testing.T) {
	api := testAPI()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := util.GetUserIDFromContext(r.Context()); err == nil {
			t.Error("expected anonymous request, got an identity")
		}
		w.WriteHeader(http.StatusOK)
	})

	for _, cookie := range []*http.Cookie{
		nil,
		{Name: values.CookieAccessToken, Value: "garbage"},
		{Name: values.CookieRefreshToken, Value: "garbage"},
	} {
		r := httptest.NewRequest(http.MethodGet, "/polls", nil)
		if cookie != nil {
			r.AddCookie(cookie)
		}
		w := httptest.NewRecorder()

		api.WithSession(next).ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Errorf("invalid session must not fail the request, got status %d", w.Code)
		}
	}
}

func TestRequireLoginBlocksAnonymous(t *testing.T) {
	api := testAPI()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for anonymous callers")
	})

	r := httptest.NewRequest(http.MethodPost, "/polls", nil)
	w := httptest.NewRecorder()

	api.RequireLogin(next).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
