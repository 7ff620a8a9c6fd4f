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

	"hotel/infras/otel/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	roomMocks "hotel/internal/domains/room/mocks"
	"hotel/shared/failure"
	"hotel/shared/timezone"
)

func date(d int) time.Time {
	return time.Date(2030, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		aIn    time.Time
		aOut   time.Time
		bIn    time.Time
		bOut   time.Time
		expect bool
	}{
		{name: "identical", aIn: date(10), aOut: date(12), bIn: date(10), bOut: date(12), expect: true},
		{name: "starts inside", aIn: date(11), aOut: date(14), bIn: date(10), bOut: date(12), expect: true},
		{name: "ends inside", aIn: date(8), aOut: date(11), bIn: date(10), bOut: date(12), expect: true},
		{name: "contains", aIn: date(8), aOut: date(15), bIn: date(10), bOut: date(12), expect: true},
		{name: "contained", aIn: date(10), aOut: date(11), bIn: date(9), bOut: date(12), expect: true},
		{name: "check-in on previous check-out", aIn: date(12), aOut: date(14), bIn: date(10), bOut: date(12), expect: false},
		{name: "check-out on next check-in", aIn: date(8), aOut: date(10), bIn: date(10), bOut: date(12), expect: false},
		{name: "disjoint", aIn: date(1), aOut: date(3), bIn: date(10), bOut: date(12), expect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, service.Overlaps(tt.aIn, tt.aOut, tt.bIn, tt.bOut))
			assert.Equal(t, tt.expect, service.Overlaps(tt.bIn, tt.bOut, tt.aIn, tt.aOut))
		})
	}
}

func TestValidateInterval(t *testing.T) {
	today := timezone.Now()

	tests := []struct {
		name    string
		dateIn  time.Time
		dateOut time.Time
		wantErr bool
	}{
		{name: "tomorrow for two nights", dateIn: today.AddDate(0, 0, 1), dateOut: today.AddDate(0, 0, 3)},
		{name: "today", dateIn: today, dateOut: today.AddDate(0, 0, 1)},
		{name: "empty interval", dateIn: today.AddDate(0, 0, 1), dateOut: today.AddDate(0, 0, 1), wantErr: true},
		{name: "reversed", dateIn: today.AddDate(0, 0, 3), dateOut: today.AddDate(0, 0, 1), wantErr: true},
		{name: "yesterday", dateIn: today.AddDate(0, 0, -1), dateOut: today.AddDate(0, 0, 1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidateInterval(tt.dateIn, tt.dateOut)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestAvailability_IsRoomAvailable(t *testing.T) {
	tests := []struct {
		name    string
		exist   bool
		repoErr error
		expect  bool
		wantErr bool
	}{
		{name: "no overlapping stay", exist: false, expect: true},
		{name: "overlapping stay", exist: true, expect: false},
		{name: "repository error", repoErr: errors.New("database error"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			detailRepo := bookingMocks.NewMockDetailBooking(ctrl)
			roomRepo := roomMocks.NewMockRoom(ctrl)

			svc := service.NewAvailability(detailRepo, roomRepo, mocks.NewOtel())

			detailRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(tt.exist, tt.repoErr)

			available, err := svc.IsRoomAvailable(context.Background(), "101", date(10), date(12))
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expect, available)
		})
	}
}

func TestAvailability_Check(t *testing.T) {
	tomorrow := timezone.Now().AddDate(0, 0, 1).Format("2006-01-02")
	later := timezone.Now().AddDate(0, 0, 4).Format("2006-01-02")

	tests := []struct {
		name      string
		req       dto.AvailabilityRequest
		setupMock func(detailRepo *bookingMocks.MockDetailBooking, roomRepo *roomMocks.MockRoom)
		wantCode  int
		available bool
	}{
		{
			name: "free room",
			req:  dto.AvailabilityRequest{DateIn: tomorrow, DateOut: later},
			setupMock: func(detailRepo *bookingMocks.MockDetailBooking, roomRepo *roomMocks.MockRoom) {
				roomRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				detailRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			available: true,
		},
		{
			name: "booked room",
			req:  dto.AvailabilityRequest{DateIn: tomorrow, DateOut: later},
			setupMock: func(detailRepo *bookingMocks.MockDetailBooking, roomRepo *roomMocks.MockRoom) {
				roomRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				detailRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
		},
		{
			name: "unknown room",
			req:  dto.AvailabilityRequest{DateIn: tomorrow, DateOut: later},
			setupMock: func(_ *bookingMocks.MockDetailBooking, roomRepo *roomMocks.MockRoom) {
				roomRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:      "reversed dates",
			req:       dto.AvailabilityRequest{DateIn: later, DateOut: tomorrow},
			setupMock: func(_ *bookingMocks.MockDetailBooking, _ *roomMocks.MockRoom) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "malformed date",
			req:       dto.AvailabilityRequest{DateIn: "03/10/2030", DateOut: later},
			setupMock: func(_ *bookingMocks.MockDetailBooking, _ *roomMocks.MockRoom) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			detailRepo := bookingMocks.NewMockDetailBooking(ctrl)
			roomRepo := roomMocks.NewMockRoom(ctrl)
			tt.setupMock(detailRepo, roomRepo)

			svc := service.NewAvailability(detailRepo, roomRepo, mocks.NewOtel())

			res, err := svc.Check(context.Background(), "101", tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "101", res.RoomID)
			assert.Equal(t, tt.available, res.Available)
		})
	}
}
