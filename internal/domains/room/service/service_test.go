package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	roomMocks "hotel/internal/domains/room/mocks"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	eventMocks "hotel/shared/event/mocks"
	"hotel/shared/failure"
)

const (
	testUserID = "user-1"
	testTypeID = "6f1c8a52-7a89-4c4e-9d55-2f0f3b7c2b10"
)

type roomFixture struct {
	svc       service.Room
	repo      *roomMocks.MockRoom
	typeRepo  *roomMocks.MockTypeRoom
	cache     *cacheMocks.MockRedisCache
	publisher *eventMocks.MockPublisher
}

func newRoomFixture(t *testing.T) roomFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := roomFixture{
		repo:      roomMocks.NewMockRoom(ctrl),
		typeRepo:  roomMocks.NewMockTypeRoom(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		publisher: eventMocks.NewMockPublisher(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.typeRepo, cfg, f.cache, f.publisher, mocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func adminContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, testUserID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func TestRoom_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateRoomRequest
		setupMock func(f roomFixture)
		wantCode  int
	}{
		{
			name: "success defaults to available",
			req:  dto.CreateRoomRequest{ID: "101", TypeID: testTypeID},
			setupMock: func(f roomFixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.typeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, room model.Room) error {
						assert.Equal(t, "101", room.ID)
						assert.Equal(t, constant.RoomStateAvailable, room.State)
						assert.Equal(t, testUserID, room.CreatedBy)

						return nil
					})
			},
		},
		{
			name: "room number taken",
			req:  dto.CreateRoomRequest{ID: "101", TypeID: testTypeID},
			setupMock: func(f roomFixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown room type",
			req:  dto.CreateRoomRequest{ID: "101", TypeID: testTypeID},
			setupMock: func(f roomFixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.typeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "insert fails",
			req:  dto.CreateRoomRequest{ID: "101", TypeID: testTypeID},
			setupMock: func(f roomFixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.typeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRoomFixture(t)
			tt.setupMock(f)

			err := f.svc.Create(adminContext(), tt.req)

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

func TestRoom_GetAll(t *testing.T) {
	f := newRoomFixture(t)

	params := gDto.QueryParams{Page: 1, Limit: 10}
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldState, Value: constant.RoomStateAvailable, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), filter).Return(12, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params, filter).
		Return([]model.Room{{ID: "101", State: constant.RoomStateAvailable}, {ID: "102", State: constant.RoomStateAvailable}}, nil)

	res, err := f.svc.GetAll(adminContext(), params, filter)

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Len(t, res.Rooms, 2)
	assert.Equal(t, 12, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
}

func TestRoom_Update(t *testing.T) {
	current := model.Room{ID: "101", TypeID: testTypeID, State: constant.RoomStateAvailable}

	tests := []struct {
		name      string
		req       dto.UpdateRoomRequest
		setupMock func(f roomFixture)
		wantCode  int
	}{
		{
			name: "state change is published",
			req:  dto.UpdateRoomRequest{State: constant.RoomStateMaintenance},
			setupMock: func(f roomFixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, constant.RoomStateMaintenance, fields[model.FieldState])

						return nil
					})
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(1)
			},
		},
		{
			name: "same state publishes nothing",
			req:  dto.UpdateRoomRequest{State: constant.RoomStateAvailable},
			setupMock: func(f roomFixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)
			},
		},
		{
			name: "new type must exist",
			req:  dto.UpdateRoomRequest{TypeID: testTypeID},
			setupMock: func(f roomFixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
				f.typeRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:      "empty request",
			setupMock: func(_ roomFixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown room",
			req:  dto.UpdateRoomRequest{State: constant.RoomStateBooked},
			setupMock: func(f roomFixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRoomFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(adminContext(), tt.req, "101")

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

func TestRoom_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f roomFixture)
		wantCode  int
	}{
		{
			name: "success",
			setupMock: func(f roomFixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "unknown room",
			setupMock: func(f roomFixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRoomFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(adminContext(), "101")

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
