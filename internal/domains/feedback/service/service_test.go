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
	feedbackMocks "hotel/internal/domains/feedback/mocks"
	"hotel/internal/domains/feedback/model"
	"hotel/internal/domains/feedback/model/dto"
	"hotel/internal/domains/feedback/service"
	userMocks "hotel/internal/domains/user/mocks"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
)

const testUserID = "a1d2e3f4-0000-4000-8000-000000000011"

type feedbackFixture struct {
	svc          service.Feedback
	repo         *feedbackMocks.MockFeedback
	customerRepo *userMocks.MockCustomer
	cache        *cacheMocks.MockRedisCache
}

func newFeedbackFixture(t *testing.T) feedbackFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := feedbackFixture{
		repo:         feedbackMocks.NewMockFeedback(ctrl),
		customerRepo: userMocks.NewMockCustomer(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.customerRepo, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func customerContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, testUserID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleCustomer)
}

func TestFeedback_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateFeedbackRequest
		setupMock func(f feedbackFixture)
		wantCode  int
	}{
		{
			name: "customer posts a comment",
			req:  dto.CreateFeedbackRequest{Comment: "  Great breakfast  "},
			setupMock: func(f feedbackFixture) {
				f.customerRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, feedback model.Feedback) error {
						assert.Equal(t, testUserID, feedback.UserID)
						assert.Equal(t, "Great breakfast", feedback.Comment)
						assert.Zero(t, feedback.TimeComment.Nanosecond())

						return nil
					})
			},
		},
		{
			name:      "blank comment",
			req:       dto.CreateFeedbackRequest{Comment: "   "},
			setupMock: func(_ feedbackFixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "caller has no customer profile",
			req:  dto.CreateFeedbackRequest{Comment: "Nice"},
			setupMock: func(f feedbackFixture) {
				f.customerRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "second comment in the same second",
			req:  dto.CreateFeedbackRequest{Comment: "Nice"},
			setupMock: func(f feedbackFixture) {
				f.customerRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFeedbackFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(customerContext(), tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Great breakfast", res.Comment)
			assert.NotEmpty(t, res.TimeComment)
		})
	}
}

func TestFeedback_GetAll(t *testing.T) {
	f := newFeedbackFixture(t)

	posted := time.Date(2030, time.March, 10, 9, 0, 0, 0, time.UTC)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Feedback, error) {
			assert.Equal(t, "feedbacks.time_comment", params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			return []model.Feedback{{ID: "f-1", Comment: "Quiet rooms", CustomerName: "Guest", TimeComment: posted}}, nil
		})

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10})

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	require.Len(t, res.Feedbacks, 1)
	assert.Equal(t, "Guest", res.Feedbacks[0].CustomerName)
	assert.Equal(t, 1, res.TotalPage)
}

func TestFeedback_Delete(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.DeleteFeedbackRequest
		setupMock func(f feedbackFixture)
		wantCode  int
	}{
		{
			name: "own feedback",
			req:  dto.DeleteFeedbackRequest{TimeComment: "2030-03-10T09:00:00Z"},
			setupMock: func(f feedbackFixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Feedback, error) {
						_, args := filter.GetWhereClause()
						assert.Equal(t, testUserID, args[model.FieldUserID])

						posted, _ := args[model.FieldTimeComment].(time.Time)
						assert.True(t, posted.Equal(time.Date(2030, time.March, 10, 9, 0, 0, 0, time.UTC)))

						return model.Feedback{ID: "f-1", UserID: testUserID}, nil
					})
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "feedback of another customer",
			req:  dto.DeleteFeedbackRequest{TimeComment: "2030-03-10T09:00:00Z"},
			setupMock: func(f feedbackFixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Feedback{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:      "malformed time",
			req:       dto.DeleteFeedbackRequest{TimeComment: "yesterday"},
			setupMock: func(_ feedbackFixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "delete fails",
			req:  dto.DeleteFeedbackRequest{TimeComment: "2030-03-10T09:00:00Z"},
			setupMock: func(f feedbackFixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Feedback{ID: "f-1"}, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFeedbackFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(customerContext(), tt.req)

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
