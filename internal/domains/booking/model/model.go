package model

import (
	"time"

	"hotel/shared/constant"
	"hotel/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID               = "id"
	FieldCustomerID       = "customer_id"
	FieldStaffID          = "staff_id"
	FieldRoomBookingCount = "room_booking_count"
	FieldBookingDate      = "booking_date"
)

const (
	DetailTableName  = "detail_bookings"
	DetailEntityName = "detail_booking"

	FieldBookingID = "booking_id"
	FieldRoomID    = "room_id"
	FieldPrice     = "price"
	FieldDateIn    = "date_in"
	FieldDateOut   = "date_out"
)

type Booking struct {
	ID               string    `db:"id"`
	CustomerID       string    `db:"customer_id"`
	StaffID          *string   `db:"staff_id"`
	RoomBookingCount int       `db:"room_booking_count"`
	BookingDate      time.Time `db:"booking_date"`
	model.Metadata
}

// DetailBooking reserves one room over the half-open interval [DateIn, DateOut).
type DetailBooking struct {
	ID        string    `db:"id"`
	BookingID string    `db:"booking_id"`
	RoomID    string    `db:"room_id"`
	Price     float64   `db:"price"`
	DateIn    time.Time `db:"date_in"`
	DateOut   time.Time `db:"date_out"`
	model.Metadata
}

// Nights is fractional when the interval is not a whole number of days.
func (d DetailBooking) Nights() float64 {
	return d.DateOut.Sub(d.DateIn).Hours() / constant.HoursPerDay
}
