package handler

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/vobe/voicedesk/application/port/inbound"
	"github.com/vobe/voicedesk/domain/apperror"
	"github.com/vobe/voicedesk/infrastructure/http/middleware"
	"github.com/vobe/voicedesk/infrastructure/http/response"
	"github.com/vobe/voicedesk/infrastructure/service/logger"
)

type AuthHandler struct {
	authUseCase inbound.AuthUseCase
	authMw      *middleware.AuthMiddleware
	logger      logger.Logger
}

func NewAuthHandler(authUseCase inbound.AuthUseCase, authMw *middleware.AuthMiddleware, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		authMw:      authMw,
		logger:      log,
	}
}

func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/login/access-token", h.LoginAccessToken).Methods(http.MethodPost)
	router.HandleFunc("/login/test-token", h.authMw.RequireAuth(h.TestToken)).Methods(http.MethodPost)
	router.HandleFunc("/password-recovery/{email}", h.RecoverPassword).Methods(http.MethodPost)
	router.HandleFunc("/reset-password/", h.ResetPassword).Methods(http.MethodPost)
}

// LoginAccessToken handles the OAuth2-compatible form login and returns a
// bearer access token.
func (h *AuthHandler) LoginAccessToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.BadRequest(w, "Invalid form payload")
		return
	}

	res, err := h.authUseCase.Login(r.Context(), inbound.LoginRequest{
		Email:    r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
		ClientIP: clientIP(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, res)
}

// TestToken echoes the user record the bearer token resolves to.
func (h *AuthHandler) TestToken(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	if user == nil {
		response.Unauthorized(w, "Could not validate credentials")
		return
	}
	response.JSON(w, http.StatusOK, user)
}

// RecoverPassword issues a reset token for the address in the path and hands
// it to the mail collaborator.
func (h *AuthHandler) RecoverPassword(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	if err := h.authUseCase.RequestPasswordReset(r.Context(), email); err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Msg{Msg: "Password recovery email sent"})
}

// ResetPassword consumes a reset token and replaces the stored hash.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req inbound.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Token == "" || req.NewPassword == "" {
		response.BadRequest(w, "token and new_password are required")
		return
	}

	if err := h.authUseCase.ResetPassword(r.Context(), req); err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Msg{Msg: "Password updated successfully"})
}

// writeError maps domain errors to their fixed status and message.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		response.Error(w, apperror.HTTPStatus(appErr), appErr.Message)
		return
	}
	response.InternalServerError(w, "Internal server error")
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
