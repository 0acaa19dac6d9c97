package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kantorkita/hrms-backend-go/internal/domain/auth"
	"github.com/kantorkita/hrms-backend-go/internal/domain/user"
	"github.com/kantorkita/hrms-backend-go/internal/handler/http/response"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/jwt"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/validator"
	authsvc "github.com/kantorkita/hrms-backend-go/internal/service/auth"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	LoginWithEmployeeCode(w http.ResponseWriter, r *http.Request)
	LoginWithGoogle(w http.ResponseWriter, r *http.Request)
	OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Register(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService  jwt.Service
	authService authsvc.Service
}

func NewAuthHandler(jwtService jwt.Service, authService authsvc.Service) AuthHandler {
	return &AuthHandlerImpl{jwtService: jwtService, authService: authService}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := validator.Struct(loginReq); err != nil {
		response.HandleError(w, err)
		return
	}

	tokens, u, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokens.RefreshToken, tokens.ExpiresAt))
	slog.Info("User logged in", "user_id", u.ID)
	response.SuccessWithMessage(w, "Logged in successfully", tokens)
}

// LoginWithEmployeeCode implements AuthHandler.
func (a *AuthHandlerImpl) LoginWithEmployeeCode(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginWithEmployeeCodeRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("LoginWithEmployeeCode decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := validator.Struct(loginReq); err != nil {
		response.HandleError(w, err)
		return
	}

	tokens, u, err := a.authService.LoginWithEmployeeCode(r.Context(), loginReq)
	if err != nil {
		slog.Error("LoginWithEmployeeCode service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokens.RefreshToken, tokens.ExpiresAt))
	slog.Info("User logged in with employee code", "user_id", u.ID)
	response.SuccessWithMessage(w, "Logged in successfully", tokens)
}

// LoginWithGoogle redirects the browser into the Google OAuth2 flow.
func (a *AuthHandlerImpl) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	redirectURL := a.authService.GoogleRedirectURL(r.UserAgent())
	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}

// OAuthCallbackGoogle completes the Google flow and signs the account in.
func (a *AuthHandlerImpl) OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		response.BadRequest(w, "Missing authorization code", nil)
		return
	}

	tokens, u, err := a.authService.LoginWithGoogle(r.Context(), code)
	if err != nil {
		slog.Error("OAuthCallbackGoogle service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokens.RefreshToken, tokens.ExpiresAt))
	slog.Info("User logged in with Google", "user_id", u.ID)
	response.SuccessWithMessage(w, "Logged in successfully", tokens)
}

// RefreshToken rotates the refresh token carried in the cookie (or body).
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	refreshToken := refreshTokenFromRequest(r)
	if refreshToken == "" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	tokens, err := a.authService.Refresh(r.Context(), refreshToken)
	if err != nil {
		slog.Error("RefreshToken service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokens.RefreshToken, tokens.ExpiresAt))
	response.SuccessWithMessage(w, "Token refreshed", tokens)
}

// Logout revokes every refresh token of the caller.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	refreshToken := refreshTokenFromRequest(r)
	if refreshToken == "" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	if err := a.authService.Logout(r.Context(), refreshToken); err != nil {
		slog.Error("Logout service error", "error", err)
		response.HandleError(w, err)
		return
	}

	expired := a.jwtService.RefreshTokenCookie("", 0)
	expired.MaxAge = -1
	http.SetCookie(w, expired)
	response.SuccessWithMessage(w, "Logged out successfully", nil)
}

// Register creates a new account. Admin only; enforced by the router.
func (a *AuthHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var registerReq user.RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&registerReq); err != nil {
		slog.Error("Register decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := validator.Struct(registerReq); err != nil {
		response.HandleError(w, err)
		return
	}

	u, err := a.authService.Register(r.Context(), registerReq)
	if err != nil {
		slog.Error("Register service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User registered", "user_id", u.ID, "employee_code", u.EmployeeCode)
	response.Created(w, "User registered successfully", user.ToResponse(u))
}

func refreshTokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie("refresh_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
		return body.RefreshToken
	}
	return ""
}
