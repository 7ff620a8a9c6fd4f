package dto

import (
	"mime/multipart"

	"hotel/internal/domains/room/model"
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

type CreateTypeRoomRequest struct {
	Description string                `json:"description" validate:"required,max=100"`
	Price       float64               `json:"price"       validate:"required,gt=0"`
	Image       *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
}

func (c *CreateTypeRoomRequest) ToModel(user string, imageURL string) model.TypeRoom {
	return model.TypeRoom{
		ID:          uuid.NewString(),
		Description: c.Description,
		Price:       c.Price,
		Image:       imageURL,
		Metadata:    newMetadata(user),
	}
}

type UpdateTypeRoomRequest struct {
	Description string                `db:"description" json:"description" validate:"omitempty,max=100"`
	Price       float64               `db:"price"       json:"price"       validate:"omitempty,gt=0"`
	Image       *multipart.FileHeader `json:"image"     validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
}

func (u *UpdateTypeRoomRequest) IsEmpty() bool {
	return u.Description == constant.Empty && u.Price == 0 && u.Image == nil
}

type TypeRoomResponse struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	gDto.Metadata
}

func (r *TypeRoomResponse) FromModel(model model.TypeRoom) {
	r.ID = model.ID
	r.Description = model.Description
	r.Price = model.Price
	r.Image = model.Image
	r.Metadata.FromModel(model.Metadata)
}

type GetTypeRoomsResponse struct {
	TypeRooms []TypeRoomResponse `json:"typeRooms"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetTypeRoomsResponse) FromModels(models []model.TypeRoom, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.TypeRooms = make([]TypeRoomResponse, len(models))
	for i, mod := range models {
		r.TypeRooms[i].FromModel(mod)
	}
}

type CreateRoomRequest struct {
	ID     string `json:"id"     validate:"required,roomid"`
	TypeID string `json:"typeID" validate:"required,uuid"`
	State  string `json:"state"  validate:"omitempty,oneof=Available Booked Maintenance"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	state := c.State
	if state == constant.Empty {
		state = constant.RoomStateAvailable
	}

	return model.Room{
		ID:       c.ID,
		TypeID:   c.TypeID,
		State:    state,
		Metadata: newMetadata(user),
	}
}

type UpdateRoomRequest struct {
	TypeID string `db:"type_id" json:"typeID" validate:"omitempty,uuid"`
	State  string `db:"state"   json:"state"  validate:"omitempty,oneof=Available Booked Maintenance"`
}

type RoomResponse struct {
	ID              string  `json:"id"`
	TypeID          string  `json:"typeID"`
	TypeDescription string  `json:"typeDescription"`
	Price           float64 `json:"price"`
	State           string  `json:"state"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.TypeID = model.TypeID
	r.TypeDescription = model.TypeDescription
	r.Price = model.Price
	r.State = model.State
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
