package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/pagebound/bookstore/internal/catalog/application"
	"github.com/pagebound/bookstore/internal/catalog/domain"
	"github.com/pagebound/bookstore/internal/platform/httpx"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{log: log, service: service}
}

type bookResponse struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	StockQty    int             `json:"stockQty"`
}

// Register mounts the catalog routes on a /api/books subrouter shared with
// the review handler.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/search", h.search)
	// param name matches the review routes mounted on the same subrouter;
	// chi rejects differing wildcard names at one position.
	r.Get("/{bookId}", h.byID)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "list books failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toBookResponses(books))
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		h.log.ErrorContext(r.Context(), "search books failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toBookResponses(books))
}

func (h *Handler) byID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "bookId"), 10, 64)
	if err != nil || id <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_book_id", "")
		return
	}

	book, err := h.service.ByID(r.Context(), id)
	if errors.Is(err, domain.ErrBookNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "book_not_found", "Book not found")
		return
	}
	if err != nil {
		h.log.ErrorContext(r.Context(), "get book failed", "book_id", id, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toBookResponse(book))
}

func toBookResponse(b domain.Book) bookResponse {
	return bookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		Price:       b.Price,
		StockQty:    b.StockQty,
	}
}

func toBookResponses(books []domain.Book) []bookResponse {
	out := make([]bookResponse, len(books))
	for i, b := range books {
		out[i] = toBookResponse(b)
	}
	return out
}
