package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	catalogdomain "github.com/pagebound/bookstore/internal/catalog/domain"
	"github.com/pagebound/bookstore/internal/platform/httpx"
	"github.com/pagebound/bookstore/internal/review/application"
	"github.com/pagebound/bookstore/internal/review/domain"
	userdomain "github.com/pagebound/bookstore/internal/user/domain"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{log: log, service: service}
}

type createReviewRequest struct {
	UserID int64  `json:"userId"`
	Rating int    `json:"rating"`
	Body   string `json:"body"`
}

type reviewResponse struct {
	ID       int64  `json:"id"`
	Reviewer string `json:"reviewer"`
	Rating   int    `json:"rating"`
	Body     string `json:"body,omitempty"`
}

// Register mounts the review routes on the shared /api/books subrouter.
func (h *Handler) Register(r chi.Router) {
	r.Get("/{bookId}/reviews", h.byBook)
	r.Post("/{bookId}/reviews", h.create)
}

func (h *Handler) byBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := parseBookID(w, r)
	if !ok {
		return
	}

	reviews, err := h.service.ByBook(r.Context(), bookID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	out := make([]reviewResponse, len(reviews))
	for i, rev := range reviews {
		out[i] = reviewResponse{ID: rev.ID, Reviewer: rev.Reviewer, Rating: rev.Rating, Body: rev.Body}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	bookID, ok := parseBookID(w, r)
	if !ok {
		return
	}

	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.UserID <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "userId is required")
		return
	}

	rev, err := h.service.Create(r.Context(), bookID, req.UserID, req.Rating, req.Body)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, reviewResponse{ID: rev.ID, Rating: rev.Rating, Body: rev.Body})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalogdomain.ErrBookNotFound):
		httpx.WriteError(w, http.StatusBadRequest, "book_not_found", "Book not found")
	case errors.Is(err, userdomain.ErrUserNotFound):
		httpx.WriteError(w, http.StatusBadRequest, "user_not_found", "User not found")
	case errors.Is(err, domain.ErrInvalidRating):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_rating", err.Error())
	default:
		h.log.ErrorContext(r.Context(), "review operation failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "")
	}
}

func parseBookID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	bookID, err := strconv.ParseInt(chi.URLParam(r, "bookId"), 10, 64)
	if err != nil || bookID <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_book_id", "")
		return 0, false
	}
	return bookID, true
}
