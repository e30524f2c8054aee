package users

import (
	"encoding/json"
	"net/http"

	"github.com/user/groupchat-go/apperror"
	"github.com/user/groupchat-go/auth"
)

// UserHandlers provides HTTP handlers for the /profile routes.
type UserHandlers struct {
	service *UserService
}

// NewUserHandlers creates new UserHandlers.
func NewUserHandlers(service *UserService) *UserHandlers {
	return &UserHandlers{service: service}
}

// HandleGetProfile godoc
// @Summary Get the authenticated member's profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} auth.Member "Profile"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /profile [get]
func (h *UserHandlers) HandleGetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := auth.SessionFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("authentication credentials were not provided", nil))
			return
		}

		profile, err := h.service.GetProfile(r.Context(), session.Member.ID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(profile)
	}
}

// HandleUpdateProfile godoc
// @Summary Update the authenticated member's profile
// @Description Partially updates username and/or email; omitted fields are unchanged.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profileBody body users.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} auth.Member "Updated profile"
// @Failure 400 {object} apperror.ErrorResponse "Validation failed"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /profile [put]
func (h *UserHandlers) HandleUpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := auth.SessionFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("authentication credentials were not provided", nil))
			return
		}

		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		updated, err := h.service.UpdateProfile(r.Context(), session.Member, &req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(updated)
	}
}
