package comment

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type addCommentReq struct {
	Text string `json:"text"`
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	return id, err == nil && id > 0
}

// List handles GET /books/{id}/comments
// @Summary List a book's comments, newest first
// @Tags comments
// @Produce json
// @Security Bearer
// @Param id path int true "Book id"
// @Param author query string false "Substring of the author email"
// @Param since query string false "RFC3339 lower bound on creation time"
// @Param page query int false "Zero-based page index" default(0)
// @Param size query int false "Items per page" default(20)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id}/comments [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	bookID, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		return
	}

	f := Filter{BookID: bookID, Author: r.URL.Query().Get("author")}
	if raw := strings.TrimSpace(r.URL.Query().Get("since")); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", []httpx.ErrorDetail{
				{Field: "since", Message: "since must be an RFC3339 timestamp"},
			})
			return
		}
		f.Since = since
	}

	result, err := h.service.List(r.Context(), f, httpx.PageRequest(r))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, result.Items, httpx.PageMeta(result))
}

// Create handles POST /books/{id}/comments
// @Summary Comment on a book as the authenticated user
// @Tags comments
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Book id"
// @Param request body addCommentReq true "Comment"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id}/comments [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	bookID, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		return
	}

	var req addCommentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	c, err := h.service.Add(r.Context(), bookID, httpx.EmailFrom(r), req.Text)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONCreated(w, r, c)
}

// Delete handles DELETE /books/{id}/comments/{commentId}
// @Summary Remove a comment younger than the moderation window
// @Tags comments
// @Produce json
// @Security Bearer
// @Param id path int true "Book id"
// @Param commentId path int true "Comment id"
// @Success 204
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id}/comments/{commentId} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	bookID, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		return
	}
	commentID, ok := pathID(r, "commentId")
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Comment not found", nil)
		return
	}

	actor := Actor{Email: httpx.EmailFrom(r), Role: httpx.RoleFrom(r)}
	if err := h.service.Delete(r.Context(), actor, bookID, commentID); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONNoContent(w)
}

// ListByUser handles GET /users/{id}/comments
// @Summary List everything a user has commented
// @Tags comments
// @Produce json
// @Security Bearer
// @Param id path int true "User id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /users/{id}/comments [get]
func (h *HTTPHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
		return
	}

	u, comments, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, comments, httpx.Meta{
		"email": u.Email,
		"total": len(comments),
	})
}
