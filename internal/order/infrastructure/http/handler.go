package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/pagebound/bookstore/internal/order/application"
	"github.com/pagebound/bookstore/internal/order/domain"
	"github.com/pagebound/bookstore/internal/platform/httpx"
	userdomain "github.com/pagebound/bookstore/internal/user/domain"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("orders-http"),
	}
}

type checkoutRequest struct {
	UserID       int64  `json:"userId"`
	ShipName     string `json:"shipName"`
	ShipAddress1 string `json:"shipAddress1"`
	ShipAddress2 string `json:"shipAddress2"`
	ShipCity     string `json:"shipCity"`
	ShipRegion   string `json:"shipRegion"`
	ShipPostal   string `json:"shipPostal"`
	ShipCountry  string `json:"shipCountry"`
}

type checkoutResponse struct {
	OrderID     int64           `json:"orderId"`
	OrderNumber string          `json:"orderNumber"`
	Total       decimal.Decimal `json:"total"`
	Message     string          `json:"message"`
}

type historyItemResponse struct {
	ID         int64           `json:"id"`
	Title      string          `json:"title"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

type historyResponse struct {
	ID          int64                 `json:"id"`
	OrderNumber string                `json:"orderNumber"`
	Total       decimal.Decimal       `json:"total"`
	PlacedAt    time.Time             `json:"placedAt"`
	Items       []historyItemResponse `json:"items"`
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/checkout", h.checkout)
	r.Get("/history/{userId}", h.history)
	return r
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Checkout")
	defer span.End()

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.UserID <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "userId is required")
		return
	}
	if missing := missingAddressField(req); missing != "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", missing+" is required")
		return
	}

	order, err := h.service.Checkout(ctx, req.UserID, domain.ShippingAddress{
		Name:     strings.TrimSpace(req.ShipName),
		Address1: strings.TrimSpace(req.ShipAddress1),
		Address2: strings.TrimSpace(req.ShipAddress2),
		City:     strings.TrimSpace(req.ShipCity),
		Region:   strings.TrimSpace(req.ShipRegion),
		Postal:   strings.TrimSpace(req.ShipPostal),
		Country:  strings.TrimSpace(req.ShipCountry),
	})
	if err != nil {
		h.writeCheckoutError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, checkoutResponse{
		OrderID:     order.ID,
		OrderNumber: order.Number,
		Total:       order.Total,
		Message:     "Order placed successfully!",
	})
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil || userID <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_user_id", "")
		return
	}

	orders, err := h.service.History(r.Context(), userID)
	if err != nil {
		h.log.ErrorContext(r.Context(), "order history failed", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	out := make([]historyResponse, len(orders))
	for i, o := range orders {
		items := make([]historyItemResponse, len(o.Items))
		for j, it := range o.Items {
			items[j] = historyItemResponse{
				ID:         it.ID,
				Title:      it.Title,
				Quantity:   it.Quantity,
				UnitPrice:  it.UnitPrice,
				GrandTotal: it.LineTotal,
			}
		}
		out[i] = historyResponse{
			ID:          o.ID,
			OrderNumber: o.Number,
			Total:       o.Total,
			PlacedAt:    o.PlacedAt,
			Items:       items,
		}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) writeCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	var stockErr *domain.InsufficientStockError
	switch {
	case errors.Is(err, userdomain.ErrUserNotFound):
		httpx.WriteError(w, http.StatusBadRequest, "user_not_found", "User not found")
	case errors.Is(err, domain.ErrEmptyCart):
		httpx.WriteError(w, http.StatusBadRequest, "empty_cart", "Cart is empty")
	case errors.As(err, &stockErr):
		httpx.WriteError(w, http.StatusConflict, "insufficient_stock", stockErr.Error())
	default:
		h.log.ErrorContext(r.Context(), "checkout failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "")
	}
}

func missingAddressField(req checkoutRequest) string {
	required := []struct {
		name  string
		value string
	}{
		{"shipName", req.ShipName},
		{"shipAddress1", req.ShipAddress1},
		{"shipCity", req.ShipCity},
		{"shipRegion", req.ShipRegion},
		{"shipPostal", req.ShipPostal},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return f.name
		}
	}
	return ""
}
