package dto

import (
	"hotel/internal/domains/billing/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

func newMetadata(user string) gModel.Metadata {
	now := timezone.Now()

	return gModel.Metadata{
		CreatedAt:  now,
		ModifiedAt: now,
		CreatedBy:  user,
		ModifiedBy: user,
	}
}

type CreateBillRequest struct {
	BookingID  string `json:"bookingID"  validate:"required,uuid"`
	DiscountID string `json:"discountID" validate:"required,uuid"`
}

func (c *CreateBillRequest) ToModel(staffID string, total float64, user string) model.Bill {
	return model.Bill{
		ID:         uuid.NewString(),
		BookingID:  c.BookingID,
		DiscountID: c.DiscountID,
		Total:      total,
		StaffID:    staffID,
		Metadata:   newMetadata(user),
	}
}

type BillResponse struct {
	ID         string  `json:"id"`
	BookingID  string  `json:"bookingID"`
	DiscountID string  `json:"discountID"`
	CustomerID string  `json:"customerID,omitempty"`
	Total      float64 `json:"total"`
	CheckBill  bool    `json:"checkBill"`
	StaffID    string  `json:"staffID"`
	gDto.Metadata
}

func (r *BillResponse) FromModel(model model.Bill) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.DiscountID = model.DiscountID
	r.CustomerID = model.CustomerID
	r.Total = model.Total
	r.CheckBill = model.CheckBill
	r.StaffID = model.StaffID
	r.Metadata.FromModel(model.Metadata)
}

type GetBillsResponse struct {
	Bills     []BillResponse `json:"bills"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetBillsResponse) FromModels(models []model.Bill, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bills = make([]BillResponse, len(models))
	for i, mod := range models {
		r.Bills[i].FromModel(mod)
	}
}

type CreateDiscountRequest struct {
	Description          string  `json:"description"          validate:"required,max=100"`
	DiscountRoomValue    float64 `json:"discountRoomValue"    validate:"required,gt=0"`
	DiscountServiceValue float64 `json:"discountServiceValue" validate:"required,gt=0"`
}

func (c *CreateDiscountRequest) ToModel(user string) model.Discount {
	return model.Discount{
		ID:                   uuid.NewString(),
		Description:          c.Description,
		DiscountRoomValue:    c.DiscountRoomValue,
		DiscountServiceValue: c.DiscountServiceValue,
		Metadata:             newMetadata(user),
	}
}

type UpdateDiscountRequest struct {
	Description          string  `db:"description"            json:"description"          validate:"omitempty,max=100"`
	DiscountRoomValue    float64 `db:"discount_room_value"    json:"discountRoomValue"    validate:"omitempty,gt=0"`
	DiscountServiceValue float64 `db:"discount_service_value" json:"discountServiceValue" validate:"omitempty,gt=0"`
}

func (u UpdateDiscountRequest) IsEmpty() bool {
	return u.Description == constant.Empty && u.DiscountRoomValue == 0 && u.DiscountServiceValue == 0
}

type DiscountResponse struct {
	ID                   string  `json:"id"`
	Description          string  `json:"description"`
	DiscountRoomValue    float64 `json:"discountRoomValue"`
	DiscountServiceValue float64 `json:"discountServiceValue"`
	gDto.Metadata
}

func (r *DiscountResponse) FromModel(model model.Discount) {
	r.ID = model.ID
	r.Description = model.Description
	r.DiscountRoomValue = model.DiscountRoomValue
	r.DiscountServiceValue = model.DiscountServiceValue
	r.Metadata.FromModel(model.Metadata)
}

type GetDiscountsResponse struct {
	Discounts []DiscountResponse `json:"discounts"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetDiscountsResponse) FromModels(models []model.Discount, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Discounts = make([]DiscountResponse, len(models))
	for i, mod := range models {
		r.Discounts[i].FromModel(mod)
	}
}
