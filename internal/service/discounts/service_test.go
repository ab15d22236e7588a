package discounts_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
	discountRepo "github.com/nordbooking/NB-BookingCore/internal/infra/storage/discount"
	"github.com/nordbooking/NB-BookingCore/internal/service/discounts"
	"github.com/nordbooking/NB-BookingCore/internal/service/discounts/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeDiscountRepo struct {
	created   *domain.DiscountCode
	createErr error
	updated   *domain.DiscountCode
	updateErr error
}

func (f *fakeDiscountRepo) Create(_ context.Context, code *domain.DiscountCode) (*domain.DiscountCode, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = code
	out := *code
	out.ID = 5
	return &out, nil
}

func (f *fakeDiscountRepo) GetByID(_ context.Context, _, _ int64) (*domain.DiscountCode, error) {
	return nil, discountRepo.ErrDiscountNotFound
}

func (f *fakeDiscountRepo) ListByTenant(_ context.Context, _ int64) ([]*domain.DiscountCode, error) {
	return nil, nil
}

func (f *fakeDiscountRepo) Update(_ context.Context, code *domain.DiscountCode) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = code
	return nil
}

func (f *fakeDiscountRepo) Delete(_ context.Context, _, _ int64) error {
	return discountRepo.ErrDiscountNotFound
}

func intPtr(v int) *int { return &v }

func validRequest() *models.SaveDiscountRequest {
	return &models.SaveDiscountRequest{
		TenantID: 42,
		Code:     "  Welcome10 ",
		Type:     "percentage",
		Value:    10,
		Status:   "active",
	}
}

func TestCreate_NormalizesCode(t *testing.T) {
	repo := &fakeDiscountRepo{}
	svc := discounts.NewService(repo, nopLogger{})

	resp, err := svc.Create(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	// Код хранится в нормализованном виде - сравнение при применении
	// регистронезависимое
	assert.Equal(t, "welcome10", repo.created.Code)
}

func TestCreate_CodeTaken(t *testing.T) {
	repo := &fakeDiscountRepo{createErr: discountRepo.ErrCodeTaken}
	svc := discounts.NewService(repo, nopLogger{})

	_, err := svc.Create(context.Background(), validRequest())

	assert.ErrorIs(t, err, discounts.ErrCodeTaken)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(req *models.SaveDiscountRequest)
	}{
		{"empty code", func(req *models.SaveDiscountRequest) { req.Code = "   " }},
		{"unknown type", func(req *models.SaveDiscountRequest) { req.Type = "bogo" }},
		{"percentage over 100", func(req *models.SaveDiscountRequest) { req.Value = 150 }},
		{"percentage zero", func(req *models.SaveDiscountRequest) { req.Value = 0 }},
		{"fixed amount zero", func(req *models.SaveDiscountRequest) {
			req.Type = "fixed_amount"
			req.Amount = 0
		}},
		{"unknown status", func(req *models.SaveDiscountRequest) { req.Status = "paused" }},
		{"usage limit below one", func(req *models.SaveDiscountRequest) { req.UsageLimit = intPtr(0) }},
		{"malformed expiry date", func(req *models.SaveDiscountRequest) {
			bad := "31-12-2025"
			req.ExpiryDate = &bad
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeDiscountRepo{}
			svc := discounts.NewService(repo, nopLogger{})
			req := validRequest()
			tt.modify(req)

			_, err := svc.Create(context.Background(), req)

			assert.ErrorIs(t, err, discounts.ErrInvalidInput)
			assert.Nil(t, repo.created)
		})
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo := &fakeDiscountRepo{updateErr: discountRepo.ErrDiscountNotFound}
	svc := discounts.NewService(repo, nopLogger{})

	err := svc.Update(context.Background(), 9, validRequest())

	assert.ErrorIs(t, err, discounts.ErrDiscountNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	svc := discounts.NewService(&fakeDiscountRepo{}, nopLogger{})

	err := svc.Delete(context.Background(), 42, 9)

	assert.ErrorIs(t, err, discounts.ErrDiscountNotFound)
}
