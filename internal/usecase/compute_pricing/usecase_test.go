package compute_pricing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordbooking/NB-BookingCore/internal/domain"
	catalogRepo "github.com/nordbooking/NB-BookingCore/internal/infra/storage/catalog"
	discountRepo "github.com/nordbooking/NB-BookingCore/internal/infra/storage/discount"
	"github.com/nordbooking/NB-BookingCore/internal/usecase/compute_pricing"
	"github.com/nordbooking/NB-BookingCore/pkg/money"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeCatalogRepo struct {
	service *domain.Service
	err     error
}

func (f *fakeCatalogRepo) GetServiceWithOptions(_ context.Context, _, _ int64) (*domain.Service, error) {
	return f.service, f.err
}

type fakeDiscountRepo struct {
	discount *domain.DiscountCode
	err      error
}

func (f *fakeDiscountRepo) GetByCode(_ context.Context, _ int64, _ string) (*domain.DiscountCode, error) {
	return f.discount, f.err
}

func strPtr(s string) *string { return &s }

func cleaningService() *domain.Service {
	return &domain.Service{
		ID:              1,
		TenantID:        42,
		Name:            "Standard cleaning",
		BasePrice:       money.FromUnits(100),
		DurationMinutes: 120,
		IsActive:        true,
		Options: []domain.Option{
			{
				ID:               10,
				ServiceID:        1,
				Name:             "Inside oven",
				Type:             domain.OptionTypeCheckbox,
				PriceImpactType:  domain.PriceImpactFixed,
				PriceImpactValue: money.FromUnits(15),
			},
		},
	}
}

func TestExecute_Success(t *testing.T) {
	uc := compute_pricing.NewUseCase(
		&fakeCatalogRepo{service: cleaningService()},
		&fakeDiscountRepo{err: discountRepo.ErrDiscountNotFound},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &compute_pricing.Request{
		TenantID:  42,
		ServiceID: 1,
		Frequency: domain.FrequencyWeekly,
		Options:   []domain.ConfiguredOption{{OptionID: 10, SelectedValue: "1"}},
	})

	require.NoError(t, err)
	assert.Equal(t, money.FromUnits(115), resp.Subtotal)
	assert.Equal(t, money.Money(1150), resp.FrequencyDiscount)
	assert.Equal(t, money.Money(11500-1150), resp.FinalTotal)
	assert.Nil(t, resp.AppliedCode)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := compute_pricing.NewUseCase(
		&fakeCatalogRepo{err: catalogRepo.ErrServiceNotFound},
		&fakeDiscountRepo{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &compute_pricing.Request{
		TenantID:  42,
		ServiceID: 99,
		Frequency: domain.FrequencyOneTime,
	})

	assert.ErrorIs(t, err, compute_pricing.ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := compute_pricing.NewUseCase(&fakeCatalogRepo{}, &fakeDiscountRepo{}, nopLogger{})

	tests := []struct {
		name string
		req  *compute_pricing.Request
	}{
		{"zero tenant", &compute_pricing.Request{ServiceID: 1, Frequency: domain.FrequencyOneTime}},
		{"zero service", &compute_pricing.Request{TenantID: 42, Frequency: domain.FrequencyOneTime}},
		{"unknown frequency", &compute_pricing.Request{TenantID: 42, ServiceID: 1, Frequency: "daily"}},
		{"negative option id", &compute_pricing.Request{
			TenantID: 42, ServiceID: 1, Frequency: domain.FrequencyOneTime,
			Options: []domain.ConfiguredOption{{OptionID: -1}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, compute_pricing.ErrInvalidInput)
		})
	}
}

func TestExecute_OptionValidationError(t *testing.T) {
	uc := compute_pricing.NewUseCase(
		&fakeCatalogRepo{service: cleaningService()},
		&fakeDiscountRepo{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &compute_pricing.Request{
		TenantID:  42,
		ServiceID: 1,
		Frequency: domain.FrequencyOneTime,
		Options:   []domain.ConfiguredOption{{OptionID: 777, SelectedValue: "1"}},
	})

	require.ErrorIs(t, err, compute_pricing.ErrValidation)
	var valErr *compute_pricing.OptionValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, int64(777), valErr.OptionID)
}

func TestExecute_DiscountRejections(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	limit := 1

	tests := []struct {
		name     string
		repo     *fakeDiscountRepo
		expected compute_pricing.DiscountRejectReason
	}{
		{
			name:     "code not found",
			repo:     &fakeDiscountRepo{err: discountRepo.ErrDiscountNotFound},
			expected: compute_pricing.DiscountReasonNotFound,
		},
		{
			name: "inactive code",
			repo: &fakeDiscountRepo{discount: &domain.DiscountCode{
				Code: "save", Type: domain.DiscountTypePercentage, Value: 10,
				Status: domain.DiscountStatusInactive,
			}},
			expected: compute_pricing.DiscountReasonInactive,
		},
		{
			name: "expired code",
			repo: &fakeDiscountRepo{discount: &domain.DiscountCode{
				Code: "save", Type: domain.DiscountTypePercentage, Value: 10,
				Status: domain.DiscountStatusActive, ExpiryDate: &past,
			}},
			expected: compute_pricing.DiscountReasonExpired,
		},
		{
			name: "exhausted code",
			repo: &fakeDiscountRepo{discount: &domain.DiscountCode{
				Code: "save", Type: domain.DiscountTypePercentage, Value: 10,
				Status: domain.DiscountStatusActive, UsageLimit: &limit, TimesUsed: 1,
			}},
			expected: compute_pricing.DiscountReasonExhausted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := compute_pricing.NewUseCase(
				&fakeCatalogRepo{service: cleaningService()},
				tt.repo,
				nopLogger{},
			)

			_, err := uc.Execute(context.Background(), &compute_pricing.Request{
				TenantID:     42,
				ServiceID:    1,
				Frequency:    domain.FrequencyOneTime,
				DiscountCode: strPtr("SAVE"),
			})

			require.ErrorIs(t, err, compute_pricing.ErrDiscountInvalid)
			var discErr *compute_pricing.DiscountInvalidError
			require.ErrorAs(t, err, &discErr)
			assert.Equal(t, tt.expected, discErr.Reason)
		})
	}
}

func TestExecute_ValidDiscountApplied(t *testing.T) {
	uc := compute_pricing.NewUseCase(
		&fakeCatalogRepo{service: cleaningService()},
		&fakeDiscountRepo{discount: &domain.DiscountCode{
			ID:     5,
			Code:   "welcome10",
			Type:   domain.DiscountTypePercentage,
			Value:  10,
			Status: domain.DiscountStatusActive,
		}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &compute_pricing.Request{
		TenantID:     42,
		ServiceID:    1,
		Frequency:    domain.FrequencyOneTime,
		DiscountCode: strPtr(" WELCOME10 "),
	})

	require.NoError(t, err)
	assert.Equal(t, money.FromUnits(10), resp.CodeDiscount)
	require.NotNil(t, resp.AppliedCode)
	assert.Equal(t, "welcome10", *resp.AppliedCode)
}

func TestExecute_RepositoryErrorWrapsInternal(t *testing.T) {
	uc := compute_pricing.NewUseCase(
		&fakeCatalogRepo{err: errors.New("connection refused")},
		&fakeDiscountRepo{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &compute_pricing.Request{
		TenantID:  42,
		ServiceID: 1,
		Frequency: domain.FrequencyOneTime,
	})

	assert.ErrorIs(t, err, compute_pricing.ErrInternal)
}
