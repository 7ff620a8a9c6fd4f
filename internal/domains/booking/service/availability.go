package service

import (
	"context"
	"fmt"
	"time"

	"hotel/infras/otel"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Availability interface {
	IsRoomAvailable(ctx context.Context, roomID string, dateIn, dateOut time.Time) (bool, error)
	Check(ctx context.Context, roomID string, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
}

type availabilityImpl struct {
	detailRepo repository.DetailBooking
	roomRepo   roomRepo.Room
	otel       otel.Otel
}

func NewAvailability(detailRepo repository.DetailBooking, roomRepo roomRepo.Room, otel otel.Otel) Availability {
	return &availabilityImpl{
		detailRepo: detailRepo,
		roomRepo:   roomRepo,
		otel:       otel,
	}
}

// Overlaps reports whether [aIn, aOut) and [bIn, bOut) share at least one instant.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	startInside := !aIn.Before(bIn) && aIn.Before(bOut)
	endInside := aOut.After(bIn) && !aOut.After(bOut)
	contains := !bIn.Before(aIn) && !bOut.After(aOut)

	return startInside || endInside || contains
}

// ValidateInterval rejects reversed or empty intervals and check-ins before today.
func ValidateInterval(dateIn, dateOut time.Time) error {
	if !dateIn.Before(dateOut) {
		return failure.BadRequestFromString("dateIn must be before dateOut") // nolint:wrapcheck
	}

	if shared.TruncateToDate(dateIn).Before(shared.TruncateToDate(timezone.Now())) {
		return failure.BadRequestFromString("dateIn cannot be in the past") // nolint:wrapcheck
	}

	return nil
}

func (s *availabilityImpl) IsRoomAvailable(ctx context.Context, roomID string, dateIn, dateOut time.Time) (available bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsRoomAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	overlap, err := s.detailRepo.Exist(ctx, repository.OverlapFilter(roomID, dateIn, dateOut))
	if err != nil {
		log.Error().Err(err).Str("roomID", roomID).Msg("failed to check room availability")

		return false, fmt.Errorf("failed to check room availability: %w", err)
	}

	return !overlap, nil
}

func (s *availabilityImpl) Check(ctx context.Context, roomID string, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Check")
	defer scope.End()
	defer scope.TraceIfError(err)

	line, err := (&dto.BookingLineRequest{RoomID: roomID, DateIn: req.DateIn, DateOut: req.DateOut}).Parse()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if err = ValidateInterval(line.DateIn, line.DateOut); err != nil {
		return res, err
	}

	exist, err := s.roomRepo.Exist(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return res, fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound(fmt.Sprintf("room %s not found", roomID)) // nolint:wrapcheck
	}

	available, err := s.IsRoomAvailable(ctx, roomID, line.DateIn, line.DateOut)
	if err != nil {
		return res, err
	}

	return dto.AvailabilityResponse{
		RoomID:    roomID,
		DateIn:    timezone.Format(line.DateIn, constant.DateFormat),
		DateOut:   timezone.Format(line.DateOut, constant.DateFormat),
		Available: available,
	}, nil
}
