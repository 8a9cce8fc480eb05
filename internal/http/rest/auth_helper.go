package rest

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/pollhub/pollhub_api/internal/model"
	"github.com/pollhub/pollhub_api/util"
	"github.com/pollhub/pollhub_api/util/values"
	"golang.org/x/crypto/bcrypt"
)

type TokenClaims struct {
	UserID string `json:"sub"`
	Type   string `json:"typ"`
	Exp    int64  `json:"exp"`
}

func (api *API) createToken(id string) (string, time.Time, error) {
	expTime, err := time.ParseDuration(api.Config.JwtExpires)
	if err != nil {
		return "", time.Time{}, err
	}
	expiresAt := time.Now().Add(expTime)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": id,
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
		"typ": "access",
	})

	tokenString, err := token.SignedString([]byte(api.Config.JwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

func (api *API) createRefreshToken(id string) (string, time.Time, error) {
	expTime, err := time.ParseDuration(api.Config.RefreshExpiry)
	if err != nil {
		return "", time.Time{}, err
	}
	expiresAt := time.Now().Add(expTime)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": id,
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
		"typ": "refresh",
	})

	tokenString, err := token.SignedString([]byte(api.Config.RefreshSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

func (api *API) verifyToken(tokenString string, isRefresh bool) (*TokenClaims, error) {
	secret := api.Config.JwtSecret
	if isRefresh {
		secret = api.Config.RefreshSecret
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})

	if ve, ok := err.(*jwt.ValidationError); ok {
		if ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, fmt.Errorf("token expired")
		}
	}

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims")
	}

	tokenType, _ := claims["typ"].(string)
	if (isRefresh && tokenType != "refresh") || (!isRefresh && tokenType != "access") {
		return nil, fmt.Errorf("invalid token type")
	}

	userID, ok := claims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid user id")
	}

	exp, _ := claims["exp"].(float64)

	return &TokenClaims{
		UserID: userID,
		Type:   tokenType,
		Exp:    int64(exp),
	}, nil
}

// refreshSession mints a new access/refresh pair for the given user and
// attaches both cookies to the response.
func (api *API) refreshSession(w http.ResponseWriter, userID string) (string, error) {
	access, accessExp, err := api.createToken(userID)
	if err != nil {
		return "", err
	}
	refresh, refreshExp, err := api.createRefreshToken(userID)
	if err != nil {
		return "", err
	}
	api.setSessionCookies(w, access, accessExp, refresh, refreshExp)
	return userID, nil
}

func (api *API) setSessionCookies(w http.ResponseWriter, access string, accessExp time.Time, refresh string, refreshExp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     values.CookieAccessToken,
		Value:    access,
		Path:     "/",
		Expires:  accessExp,
		HttpOnly: true,
		Secure:   api.Config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     values.CookieRefreshToken,
		Value:    refresh,
		Path:     "/",
		Expires:  refreshExp,
		HttpOnly: true,
		Secure:   api.Config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (api *API) clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{values.CookieAccessToken, values.CookieRefreshToken} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   api.Config.SecureCookies,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (api *API) RegisterUser(ctx context.Context, req model.RegisterRequest) (model.AuthUserResponse, string, string, error) {
	req.Email = strings.TrimSpace(req.Email)

	if err := util.ValidateStruct(req); err != nil {
		return model.AuthUserResponse{}, values.Unprocessable, "Invalid registration details", err
	}

	if err := util.ValidEmail(req.Email); err != nil {
		return model.AuthUserResponse{}, values.Unprocessable, "Invalid email address provided", err
	}

	exists, err := api.EmailExists(ctx, req.Email)
	if err != nil {
		return model.AuthUserResponse{}, values.Error, "Error checking email", err
	}
	if exists {
		return model.AuthUserResponse{}, values.Conflict, "Email already exists", nil
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return model.AuthUserResponse{}, values.Error, "Error creating account", err
	}

	user := model.User{
		ID:           util.GenerateUUID(),
		Email:        req.Email,
		PasswordHash: hash,
	}
	if req.DisplayName != "" {
		name := util.Sanitize(strings.TrimSpace(req.DisplayName))
		user.DisplayName = &name
	}

	if err := api.CreateNewUserRepo(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return model.AuthUserResponse{}, values.Conflict, "Email already exists", nil
		}
		return model.AuthUserResponse{}, values.Error, "Error creating new user", err
	}

	resp := model.AuthUserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        values.RoleUser,
	}
	return resp, values.Created, "Account created successfully", nil
}

func (api *API) LoginUser(ctx context.Context, req model.LoginRequest) (model.AuthUserResponse, string, string, error) {
	req.Email = strings.TrimSpace(req.Email)

	if err := util.ValidateStruct(req); err != nil {
		return model.AuthUserResponse{}, values.Unprocessable, "Invalid login details", err
	}

	user, err := api.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return model.AuthUserResponse{}, values.NotAuthorised, "Invalid email or password", nil
	}

	if err := checkPassword(user.PasswordHash, req.Password); err != nil {
		return model.AuthUserResponse{}, values.NotAuthorised, "Invalid email or password", nil
	}

	resp := model.AuthUserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        api.GetUserRole(ctx, user.ID),
	}
	return resp, values.Success, "Login successful", nil
}
