package messages

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/user/groupchat-go/apperror"
	"github.com/user/groupchat-go/auth"
)

const (
	defaultListLimit = 100
	// maxListLimit caps a single page. An uncapped limit would let one
	// request pull the entire feed into memory.
	maxListLimit = 1000
)

// MessageHandlers provides HTTP handlers for the /messages routes.
type MessageHandlers struct {
	service *MessageService
}

// NewMessageHandlers creates new MessageHandlers.
func NewMessageHandlers(service *MessageService) *MessageHandlers {
	return &MessageHandlers{service: service}
}

// HandleList godoc
// @Summary List the message feed
// @Description Returns messages newest first, with the total count and an offset/limit window.
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (default 100, max 1000)"
// @Param offset query int false "Window start (default 0)"
// @Success 200 {object} messages.ListResponse "Feed window"
// @Failure 400 {object} apperror.ErrorResponse "Invalid pagination parameters"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /messages [get]
func (h *MessageHandlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset, err := parseListParams(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		resp, err := h.service.List(r.Context(), limit, offset)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}

// HandleCreate godoc
// @Summary Post a message
// @Tags Messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param messageBody body messages.CreateMessageRequest true "Message text"
// @Success 201 {object} messages.ChatMessage "Created message"
// @Failure 400 {object} apperror.ErrorResponse "Validation failed"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /messages/create [post]
func (h *MessageHandlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := auth.SessionFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("authentication credentials were not provided", nil))
			return
		}

		var req CreateMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		msg, err := h.service.Create(r.Context(), session.Member, req.Text)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(msg)
	}
}

// parseListParams reads limit and offset from the query string. Absent
// parameters take the defaults; malformed or negative values are a
// per-field 400. The limit is clamped to maxListLimit rather than rejected.
func parseListParams(r *http.Request) (limit, offset int, err error) {
	limit = defaultListLimit
	offset = 0

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = parseNonNegative(raw)
		if err != nil {
			return 0, 0, apperror.NewFieldValidationError(map[string]string{"limit": "must be a non-negative integer"})
		}
		if limit > maxListLimit {
			limit = maxListLimit
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err = parseNonNegative(raw)
		if err != nil {
			return 0, 0, apperror.NewFieldValidationError(map[string]string{"offset": "must be a non-negative integer"})
		}
	}
	return limit, offset, nil
}

func parseNonNegative(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}
