package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/pagebound/bookstore/internal/cart/application"
	"github.com/pagebound/bookstore/internal/cart/domain"
	catalogdomain "github.com/pagebound/bookstore/internal/catalog/domain"
	"github.com/pagebound/bookstore/internal/platform/httpx"
	userdomain "github.com/pagebound/bookstore/internal/user/domain"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{log: log, service: service}
}

type cartItemRequest struct {
	UserID   int64 `json:"userId"`
	BookID   int64 `json:"bookId"`
	Quantity int   `json:"quantity"`
}

type cartItemResponse struct {
	BookID   int64           `json:"bookId"`
	Title    string          `json:"title"`
	Author   string          `json:"author"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/{userId}", h.getCart)
	r.Post("/add", h.addItem)
	r.Post("/update", h.updateItem)
	r.Delete("/clear/{userId}", h.clear)
	return r
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	lines, err := h.service.GetCart(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toItemResponses(lines))
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeItemRequest(w, r)
	if !ok {
		return
	}

	lines, err := h.service.AddItem(r.Context(), req.UserID, req.BookID, req.Quantity)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toItemResponses(lines))
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeItemRequest(w, r)
	if !ok {
		return
	}

	lines, err := h.service.UpdateItem(r.Context(), req.UserID, req.BookID, req.Quantity)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toItemResponses(lines))
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.Clear(r.Context(), userID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, userdomain.ErrUserNotFound):
		httpx.WriteError(w, http.StatusBadRequest, "user_not_found", "User not found")
	case errors.Is(err, catalogdomain.ErrBookNotFound):
		httpx.WriteError(w, http.StatusBadRequest, "book_not_found", "Book not found")
	case errors.Is(err, domain.ErrLineNotFound):
		httpx.WriteError(w, http.StatusBadRequest, "cart_item_not_found", "Cart item not found")
	default:
		h.log.ErrorContext(r.Context(), "cart operation failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "")
	}
}

func decodeItemRequest(w http.ResponseWriter, r *http.Request) (cartItemRequest, bool) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return req, false
	}
	if req.UserID <= 0 || req.BookID <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "userId and bookId are required")
		return req, false
	}
	return req, true
}

func parseUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil || userID <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_user_id", "")
		return 0, false
	}
	return userID, true
}

func toItemResponses(lines []domain.Line) []cartItemResponse {
	out := make([]cartItemResponse, len(lines))
	for i, l := range lines {
		out[i] = cartItemResponse{
			BookID:   l.BookID,
			Title:    l.Title,
			Author:   l.Author,
			Price:    l.Price,
			Quantity: l.Quantity,
		}
	}
	return out
}
