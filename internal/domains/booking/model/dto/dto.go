package dto

import (
	"fmt"
	"time"

	"hotel/internal/domains/booking/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type BookingLineRequest struct {
	RoomID  string `json:"roomID"  validate:"required,roomid"`
	DateIn  string `json:"dateIn"  validate:"required,bookingdate"`
	DateOut string `json:"dateOut" validate:"required,bookingdate"`
}

type CreateBookingRequest struct {
	Rooms []BookingLineRequest `json:"rooms" validate:"required,min=1,dive"`
}

// BookingLine is a parsed request line.
type BookingLine struct {
	RoomID  string
	DateIn  time.Time
	DateOut time.Time
}

func (r *BookingLineRequest) Parse() (BookingLine, error) {
	dateIn, err := shared.ParseDate(r.DateIn)
	if err != nil {
		return BookingLine{}, fmt.Errorf("dateIn: %w", err)
	}

	dateOut, err := shared.ParseDate(r.DateOut)
	if err != nil {
		return BookingLine{}, fmt.Errorf("dateOut: %w", err)
	}

	return BookingLine{RoomID: r.RoomID, DateIn: dateIn, DateOut: dateOut}, nil
}

func NewBooking(customerID string, count int, user string) model.Booking {
	now := timezone.Now()

	return model.Booking{
		ID:               uuid.NewString(),
		CustomerID:       customerID,
		RoomBookingCount: count,
		BookingDate:      now,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

func NewDetailBooking(bookingID string, line BookingLine, price float64, user string) model.DetailBooking {
	now := timezone.Now()

	return model.DetailBooking{
		ID:        uuid.NewString(),
		BookingID: bookingID,
		RoomID:    line.RoomID,
		Price:     price,
		DateIn:    line.DateIn,
		DateOut:   line.DateOut,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type DetailBookingResponse struct {
	ID      string  `json:"id"`
	RoomID  string  `json:"roomID"`
	Price   float64 `json:"price"`
	DateIn  string  `json:"dateIn"`
	DateOut string  `json:"dateOut"`
}

func (r *DetailBookingResponse) FromModel(model model.DetailBooking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.Price = model.Price
	r.DateIn = timezone.Format(model.DateIn, constant.DateFormat)
	r.DateOut = timezone.Format(model.DateOut, constant.DateFormat)
}

type BookingResponse struct {
	ID               string                  `json:"id"`
	CustomerID       string                  `json:"customerID"`
	StaffID          *string                 `json:"staffID"`
	RoomBookingCount int                     `json:"roomBookingCount"`
	BookingDate      string                  `json:"bookingDate"`
	Details          []DetailBookingResponse `json:"details"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(booking model.Booking, details []model.DetailBooking) {
	r.ID = booking.ID
	r.CustomerID = booking.CustomerID
	r.StaffID = booking.StaffID
	r.RoomBookingCount = booking.RoomBookingCount
	r.BookingDate = timezone.Format(booking.BookingDate, constant.DateFormat)
	r.Metadata.FromModel(booking.Metadata)

	r.Details = make([]DetailBookingResponse, len(details))
	for i, detail := range details {
		r.Details[i].FromModel(detail)
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod, nil)
	}
}

type AvailabilityRequest struct {
	DateIn  string `json:"dateIn"  validate:"required,bookingdate"`
	DateOut string `json:"dateOut" validate:"required,bookingdate"`
}

type AvailabilityResponse struct {
	RoomID    string `json:"roomID"`
	DateIn    string `json:"dateIn"`
	DateOut   string `json:"dateOut"`
	Available bool   `json:"available"`
}
