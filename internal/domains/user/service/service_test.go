package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	pgMocks "hotel/infras/postgres/mocks"
	userMocks "hotel/internal/domains/user/mocks"
	"hotel/internal/domains/user/model"
	"hotel/internal/domains/user/model/dto"
	"hotel/internal/domains/user/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
)

const testAdminID = "a1d2e3f4-0000-4000-8000-000000000001"

type userFixture struct {
	svc          service.User
	repo         *userMocks.MockUser
	customerRepo *userMocks.MockCustomer
	staffRepo    *userMocks.MockStaff
	transactor   *pgMocks.MockTransactor
	cache        *cacheMocks.MockRedisCache
}

func newUserFixture(t *testing.T) userFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := userFixture{
		repo:         userMocks.NewMockUser(ctrl),
		customerRepo: userMocks.NewMockCustomer(ctrl),
		staffRepo:    userMocks.NewMockStaff(ctrl),
		transactor:   pgMocks.NewMockTransactor(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.customerRepo, f.staffRepo, f.transactor, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func contextFor(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestUser_Get(t *testing.T) {
	tests := []struct {
		name        string
		id          string
		user        model.User
		setupMock   func(f userFixture)
		wantCode    int
		wantProfile bool
	}{
		{
			name: "customer with profile",
			user: model.User{ID: "a1d2e3f4-0000-4000-8000-000000000011", Email: "guest@example.com", Role: constant.RoleCustomer, Active: true, Password: "secret"},
			setupMock: func(f userFixture) {
				f.customerRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(model.Customer{Profile: model.Profile{ID: "customer-1", UserID: "a1d2e3f4-0000-4000-8000-000000000011", Name: "Guest"}}, nil)
			},
			wantProfile: true,
		},
		{
			name: "staff with profile",
			user: model.User{ID: "a1d2e3f4-0000-4000-8000-000000000012", Email: "staff@example.com", Role: constant.RoleStaff, Active: true},
			setupMock: func(f userFixture) {
				f.staffRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(model.Staff{Profile: model.Profile{ID: "staff-1", UserID: "a1d2e3f4-0000-4000-8000-000000000012", Name: "Clerk"}}, nil)
			},
			wantProfile: true,
		},
		{
			name:      "admin has no profile",
			user:      model.User{ID: "a1d2e3f4-0000-4000-8000-000000000013", Email: "admin@example.com", Role: constant.RoleAdmin, Active: true},
			setupMock: func(_ userFixture) {},
		},
		{
			name:      "unknown user",
			id:        "a1d2e3f4-0000-4000-8000-000000000019",
			user:      model.User{},
			setupMock: func(_ userFixture) {},
			wantCode:  http.StatusNotFound,
		},
		{
			name:     "malformed id",
			id:       "abc",
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUserFixture(t)

			id := tt.id
			if id == "" {
				id = tt.user.ID
			}

			if tt.setupMock != nil {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.user, nil)
				tt.setupMock(f)
			}

			res, err := f.svc.Get(contextFor(testAdminID, constant.RoleAdmin), id)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.user.Email, res.Email)
			assert.Equal(t, tt.wantProfile, res.Profile != nil)
		})
	}
}

func TestUser_CreateStaff(t *testing.T) {
	req := dto.CreateStaffRequest{
		Email:          "clerk@example.com",
		Password:       "password123",
		ProfileRequest: dto.ProfileRequest{Name: "Clerk", IDCard: "ID-100", Phone: "555-0200"},
	}

	tests := []struct {
		name      string
		setupMock func(f userFixture)
		wantCode  int
	}{
		{
			name: "success",
			setupMock: func(f userFixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.transactor.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fn func(tx *sqlx.Tx) error) error {
						return fn(nil)
					})
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, user model.User) error {
						assert.Equal(t, constant.RoleStaff, user.Role)
						assert.Equal(t, testAdminID, user.CreatedBy)

						return nil
					})
				f.staffRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "email already registered",
			setupMock: func(f userFixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "staff insert fails",
			setupMock: func(f userFixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.transactor.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fn func(tx *sqlx.Tx) error) error {
						return fn(nil)
					})
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.staffRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUserFixture(t)
			tt.setupMock(f)

			err := f.svc.CreateStaff(contextFor(testAdminID, constant.RoleAdmin), req)

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

func TestUser_UpdateState(t *testing.T) {
	inactive := false

	tests := []struct {
		name      string
		id        string
		setupMock func(f userFixture)
		wantCode  int
	}{
		{
			name: "deactivate another account",
			id:   "a1d2e3f4-0000-4000-8000-000000000011",
			setupMock: func(f userFixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, false, fields[model.FieldActive])
						assert.Equal(t, testAdminID, fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name:      "own account",
			id:        testAdminID,
			setupMock: func(_ userFixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown account",
			id:   "a1d2e3f4-0000-4000-8000-000000000019",
			setupMock: func(f userFixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUserFixture(t)
			tt.setupMock(f)

			err := f.svc.UpdateState(contextFor(testAdminID, constant.RoleAdmin), dto.UpdateStateRequest{Active: &inactive}, tt.id)

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

func TestUser_UpdateProfile(t *testing.T) {
	tests := []struct {
		name      string
		role      string
		req       dto.UpdateProfileRequest
		setupMock func(f userFixture)
		wantCode  int
	}{
		{
			name: "customer",
			role: constant.RoleCustomer,
			req:  dto.UpdateProfileRequest{Phone: "555-0300"},
			setupMock: func(f userFixture) {
				f.customerRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "555-0300", fields[model.FieldPhone])

						return nil
					})
			},
		},
		{
			name: "staff",
			role: constant.RoleStaff,
			req:  dto.UpdateProfileRequest{Name: "Senior Clerk"},
			setupMock: func(f userFixture) {
				f.staffRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:      "admin has no profile",
			role:      constant.RoleAdmin,
			req:       dto.UpdateProfileRequest{Name: "Root"},
			setupMock: func(_ userFixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "empty request",
			role:      constant.RoleCustomer,
			setupMock: func(_ userFixture) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUserFixture(t)
			tt.setupMock(f)

			err := f.svc.UpdateProfile(contextFor("a1d2e3f4-0000-4000-8000-000000000011", tt.role), tt.req)

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

func TestUser_Delete(t *testing.T) {
	customerID := "a1d2e3f4-0000-4000-8000-000000000011"
	otherAdminID := "a1d2e3f4-0000-4000-8000-000000000013"

	tests := []struct {
		name      string
		id        string
		setupMock func(f userFixture)
		wantCode  int
	}{
		{
			name: "customer without bookings",
			id:   customerID,
			setupMock: func(f userFixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: customerID, Role: constant.RoleCustomer}, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) error {
						_, args := filter.GetWhereClause()
						assert.Equal(t, customerID, args[model.FieldID])

						return nil
					})
			},
		},
		{
			name: "customer with bookings",
			id:   customerID,
			setupMock: func(f userFixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: customerID, Role: constant.RoleCustomer}, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "another admin",
			id:   otherAdminID,
			setupMock: func(f userFixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: otherAdminID, Role: constant.RoleAdmin}, nil)
				f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "last admin",
			id:   otherAdminID,
			setupMock: func(f userFixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: otherAdminID, Role: constant.RoleAdmin}, nil)
				f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "own account",
			id:        testAdminID,
			setupMock: func(_ userFixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown account",
			id:   "a1d2e3f4-0000-4000-8000-000000000019",
			setupMock: func(f userFixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:      "malformed id",
			id:        "abc",
			setupMock: func(_ userFixture) {},
			wantCode:  http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUserFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(contextFor(testAdminID, constant.RoleAdmin), tt.id)

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
