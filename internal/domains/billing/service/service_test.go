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
	amenityMocks "hotel/internal/domains/amenity/mocks"
	amenityModel "hotel/internal/domains/amenity/model"
	billingMocks "hotel/internal/domains/billing/mocks"
	"hotel/internal/domains/billing/model"
	"hotel/internal/domains/billing/model/dto"
	"hotel/internal/domains/billing/service"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	userMocks "hotel/internal/domains/user/mocks"
	userModel "hotel/internal/domains/user/model"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	eventMocks "hotel/shared/event/mocks"
	"hotel/shared/failure"
)

const (
	testUserID     = "user-1"
	testBookingID  = "0b4e7c3a-5d1f-4e8a-9c2b-1a3d5f7e9b01"
	testDiscountID = "7a6b5c4d-3e2f-4a1b-8c9d-0e1f2a3b4c03"
	testBillID     = "3c9d2e1f-8a7b-4c6d-9e5f-0a1b2c3d4e02"
)

type billFixture struct {
	svc           service.Bill
	repo          *billingMocks.MockBill
	discountRepo  *billingMocks.MockDiscount
	bookingRepo   *bookingMocks.MockBooking
	detailRepo    *bookingMocks.MockDetailBooking
	detailService *amenityMocks.MockDetailService
	customerRepo  *userMocks.MockCustomer
	staffRepo     *userMocks.MockStaff
	publisher     *eventMocks.MockPublisher
	cache         *cacheMocks.MockRedisCache
}

func newBillFixture(t *testing.T) billFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := billFixture{
		repo:          billingMocks.NewMockBill(ctrl),
		discountRepo:  billingMocks.NewMockDiscount(ctrl),
		bookingRepo:   bookingMocks.NewMockBooking(ctrl),
		detailRepo:    bookingMocks.NewMockDetailBooking(ctrl),
		detailService: amenityMocks.NewMockDetailService(ctrl),
		customerRepo:  userMocks.NewMockCustomer(ctrl),
		staffRepo:     userMocks.NewMockStaff(ctrl),
		publisher:     eventMocks.NewMockPublisher(ctrl),
		cache:         cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(
		f.repo, f.discountRepo, f.bookingRepo, f.detailRepo, f.detailService,
		f.customerRepo, f.staffRepo, f.publisher, cfg, f.cache, mocks.NewOtel(),
	)

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func staffContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, testUserID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleStaff)
}

func TestBill_Create(t *testing.T) {
	checkIn := time.Date(2030, time.March, 10, 12, 0, 0, 0, time.UTC)
	req := dto.CreateBillRequest{BookingID: testBookingID, DiscountID: testDiscountID}
	discount := model.Discount{ID: testDiscountID, DiscountRoomValue: 0.9, DiscountServiceValue: 0.9}
	staff := userModel.Staff{Profile: userModel.Profile{ID: "staff-1", UserID: testUserID}}

	tests := []struct {
		name      string
		setupMock func(f billFixture)
		wantCode  int
		wantTotal float64
	}{
		{
			name: "success",
			setupMock: func(f billFixture) {
				f.bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.discountRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(discount, nil)
				f.staffRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staff, nil)
				f.detailRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]bookingModel.DetailBooking{{ID: "detail-1", Price: 100, DateIn: checkIn, DateOut: checkIn.Add(48 * time.Hour)}}, nil)
				f.detailService.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]amenityModel.DetailService, error) {
						where, args := filter.GetWhereClause()
						assert.Contains(t, where, "detail_services.detail_booking_id IN")
						assert.Equal(t, "detail-1", args["detail_booking_id_0"])

						return []amenityModel.DetailService{{Price: 50}, {Price: 50}}, nil
					})
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, bill model.Bill) error {
						assert.Equal(t, "staff-1", bill.StaffID)
						assert.Equal(t, testBookingID, bill.BookingID)

						return nil
					})
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(1)
			},
			wantTotal: 270,
		},
		{
			name: "booking not found",
			setupMock: func(f billFixture) {
				f.bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "booking already billed",
			setupMock: func(f billFixture) {
				f.bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "discount not found",
			setupMock: func(f billFixture) {
				f.bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.discountRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Discount{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "caller is not a staff member",
			setupMock: func(f billFixture) {
				f.bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.discountRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(discount, nil)
				f.staffRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.Staff{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "concurrent bill insert",
			setupMock: func(f billFixture) {
				f.bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.discountRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(discount, nil)
				f.staffRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staff, nil)
				f.detailRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "detail lookup fails",
			setupMock: func(f billFixture) {
				f.bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.discountRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(discount, nil)
				f.staffRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staff, nil)
				f.detailRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBillFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(staffContext(), req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.wantTotal, res.Total, 0.0001)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, testDiscountID, res.DiscountID)
		})
	}
}

func TestBill_Get(t *testing.T) {
	bill := model.Bill{ID: testBillID, BookingID: testBookingID, CustomerID: "customer-1", Total: 270}

	tests := []struct {
		name      string
		role      string
		setupMock func(f billFixture)
		wantCode  int
	}{
		{
			name: "staff reads any bill",
			role: constant.RoleStaff,
			setupMock: func(f billFixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bill, nil)
			},
		},
		{
			name: "customer reads own bill",
			role: constant.RoleCustomer,
			setupMock: func(f billFixture) {
				f.customerRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(userModel.Customer{Profile: userModel.Profile{ID: "customer-1"}}, nil)
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bill, nil)
			},
		},
		{
			name: "customer reads another customer's bill",
			role: constant.RoleCustomer,
			setupMock: func(f billFixture) {
				f.customerRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(userModel.Customer{Profile: userModel.Profile{ID: "customer-2"}}, nil)
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bill, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "unknown bill",
			role: constant.RoleAdmin,
			setupMock: func(f billFixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Bill{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBillFixture(t)
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, testUserID)
			ctx = context.WithValue(ctx, constant.ContextKeyUserRole, tt.role)

			res, err := f.svc.Get(ctx, testBillID)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Empty(t, res.ID)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, testBillID, res.ID)
		})
	}
}

func TestBill_Check(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f billFixture)
		wantCode  int
	}{
		{
			name: "marks bill as paid",
			setupMock: func(f billFixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Bill{ID: testBillID}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, true, req[model.FieldCheckBill])
						assert.Equal(t, testUserID, req[constant.FieldModifiedBy])

						return nil
					})
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(1)
			},
		},
		{
			name: "already paid is a no-op",
			setupMock: func(f billFixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Bill{ID: testBillID, CheckBill: true}, nil)
			},
		},
		{
			name: "unknown bill",
			setupMock: func(f billFixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Bill{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "update fails",
			setupMock: func(f billFixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Bill{ID: testBillID}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBillFixture(t)
			tt.setupMock(f)

			err := f.svc.Check(staffContext(), testBillID)

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

func TestBill_MalformedID(t *testing.T) {
	f := newBillFixture(t)

	_, err := f.svc.Get(staffContext(), "abc")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	err = f.svc.Check(staffContext(), "abc")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
