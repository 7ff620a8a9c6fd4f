package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	billingMocks "hotel/internal/domains/billing/mocks"
	"hotel/internal/domains/billing/model"
	"hotel/internal/domains/billing/model/dto"
	"hotel/internal/domains/billing/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
)

func newDiscountService(t *testing.T) (service.Discount, *billingMocks.MockDiscount, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := billingMocks.NewMockDiscount(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.NewDiscount(repo, cfg, cache, mocks.NewOtel()), repo, cache
}

func adminContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, testUserID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func TestDiscount_Create(t *testing.T) {
	req := dto.CreateDiscountRequest{Description: "Winter", DiscountRoomValue: 0.9, DiscountServiceValue: 0.95}

	tests := []struct {
		name      string
		setupMock func(repo *billingMocks.MockDiscount)
		wantCode  int
	}{
		{
			name: "success",
			setupMock: func(repo *billingMocks.MockDiscount) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, discount model.Discount) error {
						assert.Equal(t, "Winter", discount.Description)
						assert.InDelta(t, 0.9, discount.DiscountRoomValue, 0.0001)
						assert.Equal(t, testUserID, discount.CreatedBy)

						return nil
					})
			},
		},
		{
			name: "description already exists",
			setupMock: func(repo *billingMocks.MockDiscount) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "insert fails",
			setupMock: func(repo *billingMocks.MockDiscount) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newDiscountService(t)
			tt.setupMock(repo)

			err := svc.Create(adminContext(), req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestDiscount_Update(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.UpdateDiscountRequest
		setupMock func(repo *billingMocks.MockDiscount)
		wantCode  int
	}{
		{
			name: "success",
			req:  dto.UpdateDiscountRequest{DiscountRoomValue: 0.8},
			setupMock: func(repo *billingMocks.MockDiscount) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:      "empty request",
			req:       dto.UpdateDiscountRequest{},
			setupMock: func(_ *billingMocks.MockDiscount) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown discount",
			req:  dto.UpdateDiscountRequest{DiscountRoomValue: 0.8},
			setupMock: func(repo *billingMocks.MockDiscount) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "description taken by another discount",
			req:  dto.UpdateDiscountRequest{Description: "Summer"},
			setupMock: func(repo *billingMocks.MockDiscount) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
						where, _ := filter.GetWhereClause()
						assert.Contains(t, where, "discounts.id != :id")

						return true, nil
					})
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newDiscountService(t)
			tt.setupMock(repo)

			err := svc.Update(adminContext(), tt.req, testDiscountID)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestDiscount_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *billingMocks.MockDiscount)
		wantCode  int
	}{
		{
			name: "success",
			setupMock: func(repo *billingMocks.MockDiscount) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "unknown discount",
			setupMock: func(repo *billingMocks.MockDiscount) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "discount referenced by a bill",
			setupMock: func(repo *billingMocks.MockDiscount) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newDiscountService(t)
			tt.setupMock(repo)

			err := svc.Delete(adminContext(), testDiscountID)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestDiscount_Get(t *testing.T) {
	svc, repo, cache := newDiscountService(t)

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).
		Return(model.Discount{ID: testDiscountID, Description: "Winter", DiscountRoomValue: 0.9, DiscountServiceValue: 1}, nil)

	res, err := svc.Get(adminContext(), testDiscountID)

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, "Winter", res.Description)
	assert.InDelta(t, 0.9, res.DiscountRoomValue, 0.0001)
}

func TestDiscount_MalformedID(t *testing.T) {
	svc, _, _ := newDiscountService(t)

	_, err := svc.Get(adminContext(), "abc")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	err = svc.Update(adminContext(), dto.UpdateDiscountRequest{Description: "Summer"}, "abc")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	err = svc.Delete(adminContext(), "abc")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
