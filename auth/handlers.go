package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/user/groupchat-go/apperror"
)

// Handlers wraps the auth and token services to provide the /auth HTTP
// handlers.
type Handlers struct {
	service *AuthService
	tokens  *TokenService
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *AuthService, tokens *TokenService) *Handlers {
	return &Handlers{service: service, tokens: tokens}
}

// HandleRegister godoc
// @Summary Register a new member
// @Description Creates an account and immediately issues a session token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param registerBody body auth.RegisterRequest true "Registration details"
// @Success 201 {object} auth.RegisterResponse "Account created"
// @Failure 400 {object} apperror.ErrorResponse "Validation failed"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /auth/register [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		member, err := h.service.Register(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		token, err := h.tokens.Issue(r.Context(), member)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, RegisterResponse{Member: member, Token: token})
	}
}

// HandleLogin godoc
// @Summary Log in
// @Description Verifies credentials and issues a fresh session token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "Login credentials"
// @Success 200 {object} auth.LoginResponse "Login successful"
// @Failure 400 {object} apperror.ErrorResponse "Invalid username or password"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /auth/login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		member, err := h.service.Login(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		token, err := h.tokens.Issue(r.Context(), member)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{Token: token, User: member})
	}
}

// HandleLogout godoc
// @Summary Log out
// @Description Revokes the session token that authenticated this request.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} auth.LogoutResponse "Logged out"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /auth/logout [post]
func (h *Handlers) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromContext(r.Context())
		if !ok {
			WriteError(w, r, apperror.NewAuthError("authentication credentials were not provided", nil))
			return
		}

		if err := h.tokens.Revoke(r.Context(), session.Token.Token); err != nil {
			WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, LogoutResponse{Message: "Successfully logged out"})
	}
}

// writeJSON serializes data to JSON and writes it with the given status.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError renders any error as a standardized apperror response. Errors
// that are not *AppError become opaque 500s; the original error is logged,
// never serialized.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}
	if appErr.StatusCode() >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, appErr)
	}
	writeJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
