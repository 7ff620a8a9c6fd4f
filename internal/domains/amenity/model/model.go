package model

import (
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "services"
	EntityName = "service"

	FieldID          = "id"
	FieldDescription = "description"
	FieldPrice       = "price"
)

const (
	DetailTableName  = "detail_services"
	DetailEntityName = "detail_service"

	FieldDetailBookingID = "detail_booking_id"
	FieldServiceID       = "service_id"
	FieldDateUse         = "date_use"
	FieldStaffID         = "staff_id"
)

type Service struct {
	ID          string  `db:"id"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	model.Metadata
}

// DetailService records one service consumed during a stay; it is keyed by (detail booking, service).
type DetailService struct {
	DetailBookingID    string    `db:"detail_booking_id"`
	ServiceID          string    `db:"service_id"`
	Price              float64   `db:"price"`
	DateUse            time.Time `db:"date_use"`
	StaffID            string    `db:"staff_id"`
	ServiceDescription string    `db:"service_description" table:"services" column:"description"`
	model.Metadata
}

func (DetailService) GetJoinQuery() string {
	return "JOIN services ON services.id = detail_services.service_id"
}
