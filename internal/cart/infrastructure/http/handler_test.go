package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagebound/bookstore/internal/cart/application"
	"github.com/pagebound/bookstore/internal/cart/domain"
	userdomain "github.com/pagebound/bookstore/internal/user/domain"
)

func TestMain(m *testing.M) {
	decimal.MarshalJSONWithoutQuotes = true
	os.Exit(m.Run())
}

// stubCartRepo serves a single user (id 1) with one cart (id 10).
type stubCartRepo struct {
	lines map[int64]int
}

func newStubCartRepo() *stubCartRepo { return &stubCartRepo{lines: map[int64]int{}} }

func (s *stubCartRepo) GetOrCreate(_ context.Context, userID int64) (domain.Cart, error) {
	if userID != 1 {
		return domain.Cart{}, userdomain.ErrUserNotFound
	}
	return domain.Cart{ID: 10, UserID: 1}, nil
}

func (s *stubCartRepo) Lines(context.Context, int64) ([]domain.Line, error) {
	var out []domain.Line
	for bookID, qty := range s.lines {
		out = append(out, domain.Line{
			BookID:   bookID,
			Title:    "The Go Programming Language",
			Author:   "Alan A. A. Donovan",
			Price:    decimal.RequireFromString("36.99"),
			Quantity: qty,
		})
	}
	return out, nil
}

func (s *stubCartRepo) MergeLine(_ context.Context, _, bookID int64, qty int) error {
	s.lines[bookID] += qty
	return nil
}

func (s *stubCartRepo) SetLineQuantity(_ context.Context, _, bookID int64, qty int) error {
	if _, ok := s.lines[bookID]; !ok {
		return domain.ErrLineNotFound
	}
	s.lines[bookID] = qty
	return nil
}

func (s *stubCartRepo) DeleteLine(_ context.Context, _, bookID int64) error {
	if _, ok := s.lines[bookID]; !ok {
		return domain.ErrLineNotFound
	}
	delete(s.lines, bookID)
	return nil
}

func (s *stubCartRepo) Clear(context.Context, int64) error {
	s.lines = map[int64]int{}
	return nil
}

type anyBook struct{}

func (anyBook) Exists(_ context.Context, id int64) (bool, error) { return id != 99, nil }

func newTestHandler(repo *stubCartRepo) http.Handler {
	log := slog.New(slog.DiscardHandler)
	return NewHandler(log, application.NewService(log, repo, anyBook{})).Routes()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *strings.Reader
	if body == "" {
		r = strings.NewReader("")
	} else {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAddReturnsCartContents(t *testing.T) {
	h := newTestHandler(newStubCartRepo())

	rec := do(t, h, http.MethodPost, "/add", `{"userId":1,"bookId":4,"quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []struct {
		BookID   int64           `json:"bookId"`
		Title    string          `json:"title"`
		Author   string          `json:"author"`
		Price    decimal.Decimal `json:"price"`
		Quantity int             `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, int64(4), items[0].BookID)
	assert.Equal(t, "The Go Programming Language", items[0].Title)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("36.99")))
}

func TestAddUnknownUser(t *testing.T) {
	rec := do(t, newTestHandler(newStubCartRepo()), http.MethodPost, "/add", `{"userId":2,"bookId":4,"quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")
}

func TestAddUnknownBook(t *testing.T) {
	rec := do(t, newTestHandler(newStubCartRepo()), http.MethodPost, "/add", `{"userId":1,"bookId":99,"quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Book not found")
}

func TestAddRejectsMissingIdentifiers(t *testing.T) {
	rec := do(t, newTestHandler(newStubCartRepo()), http.MethodPost, "/add", `{"quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateMissingLine(t *testing.T) {
	rec := do(t, newTestHandler(newStubCartRepo()), http.MethodPost, "/update", `{"userId":1,"bookId":4,"quantity":3}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cart item not found")
}

func TestUpdateZeroQuantityDeletesLine(t *testing.T) {
	repo := newStubCartRepo()
	h := newTestHandler(repo)

	rec := do(t, h, http.MethodPost, "/add", `{"userId":1,"bookId":4,"quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/update", `{"userId":1,"bookId":4,"quantity":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestClear(t *testing.T) {
	repo := newStubCartRepo()
	h := newTestHandler(repo)

	do(t, h, http.MethodPost, "/add", `{"userId":1,"bookId":4,"quantity":2}`)

	rec := do(t, h, http.MethodDelete, "/clear/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, repo.lines)
}

func TestGetCartInvalidUserID(t *testing.T) {
	rec := do(t, newTestHandler(newStubCartRepo()), http.MethodGet, "/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
