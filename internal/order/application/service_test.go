package application

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagebound/bookstore/internal/order/domain"
)

type fakeOrderRepo struct {
	checkoutErrs []error // shifted per call; nil entry means success
	calls        []struct {
		number string
		addr   domain.ShippingAddress
	}
	history []domain.Order
}

func (f *fakeOrderRepo) Checkout(_ context.Context, userID int64, orderNumber string, addr domain.ShippingAddress) (domain.Order, error) {
	f.calls = append(f.calls, struct {
		number string
		addr   domain.ShippingAddress
	}{orderNumber, addr})

	var err error
	if len(f.checkoutErrs) > 0 {
		err, f.checkoutErrs = f.checkoutErrs[0], f.checkoutErrs[1:]
	}
	if err != nil {
		return domain.Order{}, err
	}
	return domain.Order{
		ID:     1,
		Number: orderNumber,
		UserID: userID,
		Total:  decimal.RequireFromString("49.19"),
		Status: domain.StatusPending,
	}, nil
}

func (f *fakeOrderRepo) HistoryByUser(context.Context, int64) ([]domain.Order, error) {
	return f.history, nil
}

func testRand() *bytes.Reader {
	buf := make([]byte, 64)
	for i := range buf {
		buf[i] = byte(i * 7)
	}
	return bytes.NewReader(buf)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestCheckoutDefaultsCountryToUS(t *testing.T) {
	repo := &fakeOrderRepo{}
	svc := NewService(testLogger(), repo, testRand())

	_, err := svc.Checkout(context.Background(), 1, domain.ShippingAddress{
		Name: "Ann", Address1: "1 Main St", City: "Springfield", Region: "IL", Postal: "62701",
	})
	require.NoError(t, err)
	require.Len(t, repo.calls, 1)
	assert.Equal(t, "US", repo.calls[0].addr.Country)
}

func TestCheckoutKeepsExplicitCountry(t *testing.T) {
	repo := &fakeOrderRepo{}
	svc := NewService(testLogger(), repo, testRand())

	_, err := svc.Checkout(context.Background(), 1, domain.ShippingAddress{
		Name: "Ann", Address1: "1 Main St", City: "Lyon", Region: "ARA", Postal: "69001", Country: "FR",
	})
	require.NoError(t, err)
	assert.Equal(t, "FR", repo.calls[0].addr.Country)
}

func TestCheckoutRetriesOnOrderNumberCollision(t *testing.T) {
	repo := &fakeOrderRepo{checkoutErrs: []error{domain.ErrOrderNumberTaken, domain.ErrOrderNumberTaken, nil}}
	svc := NewService(testLogger(), repo, testRand())

	order, err := svc.Checkout(context.Background(), 1, domain.ShippingAddress{
		Name: "Ann", Address1: "1 Main St", City: "Springfield", Region: "IL", Postal: "62701",
	})
	require.NoError(t, err)
	require.Len(t, repo.calls, 3)
	assert.NotEqual(t, repo.calls[0].number, repo.calls[1].number)
	assert.Equal(t, repo.calls[2].number, order.Number)
}

func TestCheckoutGivesUpAfterRepeatedCollisions(t *testing.T) {
	repo := &fakeOrderRepo{checkoutErrs: []error{
		domain.ErrOrderNumberTaken, domain.ErrOrderNumberTaken, domain.ErrOrderNumberTaken,
	}}
	svc := NewService(testLogger(), repo, testRand())

	_, err := svc.Checkout(context.Background(), 1, domain.ShippingAddress{
		Name: "Ann", Address1: "1 Main St", City: "Springfield", Region: "IL", Postal: "62701",
	})
	require.Error(t, err)
	assert.Len(t, repo.calls, 3)
}

func TestCheckoutPropagatesStockConflict(t *testing.T) {
	stockErr := &domain.InsufficientStockError{BookID: 7, Title: "Clean Code", Available: 5, Requested: 10}
	repo := &fakeOrderRepo{checkoutErrs: []error{stockErr}}
	svc := NewService(testLogger(), repo, testRand())

	_, err := svc.Checkout(context.Background(), 1, domain.ShippingAddress{
		Name: "Ann", Address1: "1 Main St", City: "Springfield", Region: "IL", Postal: "62701",
	})
	var got *domain.InsufficientStockError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, `Not enough stock for "Clean Code". In stock: 5, requested: 10`, got.Error())
	assert.Len(t, repo.calls, 1, "stock conflicts must not be retried")
}
