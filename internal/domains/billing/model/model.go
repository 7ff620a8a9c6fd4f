package model

import "hotel/shared/model"

const (
	TableName  = "bills"
	EntityName = "bill"

	FieldID         = "id"
	FieldBookingID  = "booking_id"
	FieldDiscountID = "discount_id"
	FieldTotal      = "total"
	FieldCheckBill  = "check_bill"
	FieldStaffID    = "staff_id"
)

const (
	DiscountTableName  = "discounts"
	DiscountEntityName = "discount"

	FieldDescription          = "description"
	FieldDiscountRoomValue    = "discount_room_value"
	FieldDiscountServiceValue = "discount_service_value"
)

type Bill struct {
	ID         string  `db:"id"`
	BookingID  string  `db:"booking_id"`
	DiscountID string  `db:"discount_id"`
	Total      float64 `db:"total"`
	CheckBill  bool    `db:"check_bill"`
	StaffID    string  `db:"staff_id"`
	CustomerID string  `db:"customer_id" table:"bookings"`
	model.Metadata
}

func (Bill) GetJoinQuery() string {
	return "JOIN bookings ON bookings.id = bills.booking_id"
}

// Discount values are retention factors: 0.9 charges 90% of the price.
type Discount struct {
	ID                   string  `db:"id"`
	Description          string  `db:"description"`
	DiscountRoomValue    float64 `db:"discount_room_value"`
	DiscountServiceValue float64 `db:"discount_service_value"`
	model.Metadata
}
