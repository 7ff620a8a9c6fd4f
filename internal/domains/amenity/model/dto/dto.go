package dto

import (
	"hotel/internal/domains/amenity/model"
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

type CreateServiceRequest struct {
	Description string  `json:"description" validate:"required,max=100"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
}

func (c *CreateServiceRequest) ToModel(user string) model.Service {
	return model.Service{
		ID:          uuid.NewString(),
		Description: c.Description,
		Price:       c.Price,
		Metadata:    newMetadata(user),
	}
}

type UpdateServiceRequest struct {
	Description string  `db:"description" json:"description" validate:"omitempty,max=100"`
	Price       float64 `db:"price"       json:"price"       validate:"omitempty,gt=0"`
}

type ServiceResponse struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	gDto.Metadata
}

func (r *ServiceResponse) FromModel(model model.Service) {
	r.ID = model.ID
	r.Description = model.Description
	r.Price = model.Price
	r.Metadata.FromModel(model.Metadata)
}

type GetServicesResponse struct {
	Services  []ServiceResponse `json:"services"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetServicesResponse) FromModels(models []model.Service, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Services = make([]ServiceResponse, len(models))
	for i, mod := range models {
		r.Services[i].FromModel(mod)
	}
}

type RecordUsageRequest struct {
	DetailBookingID string `json:"detailBookingID" validate:"required,uuid"`
	ServiceID       string `json:"serviceID"       validate:"required,uuid"`
}

func (r *RecordUsageRequest) ToModel(price float64, staffID, user string) model.DetailService {
	meta := newMetadata(user)

	return model.DetailService{
		DetailBookingID: r.DetailBookingID,
		ServiceID:       r.ServiceID,
		Price:           price,
		DateUse:         meta.CreatedAt,
		StaffID:         staffID,
		Metadata:        meta,
	}
}

type UsageResponse struct {
	DetailBookingID    string  `json:"detailBookingID"`
	ServiceID          string  `json:"serviceID"`
	ServiceDescription string  `json:"serviceDescription,omitempty"`
	Price              float64 `json:"price"`
	DateUse            string  `json:"dateUse"`
	StaffID            string  `json:"staffID"`
}

func (r *UsageResponse) FromModel(model model.DetailService) {
	r.DetailBookingID = model.DetailBookingID
	r.ServiceID = model.ServiceID
	r.ServiceDescription = model.ServiceDescription
	r.Price = model.Price
	r.DateUse = timezone.Format(model.DateUse, constant.DateFormat)
	r.StaffID = model.StaffID
}
