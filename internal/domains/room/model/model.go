package model

import "hotel/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID     = "id"
	FieldTypeID = "type_id"
	FieldState  = "state"
)

const (
	TypeTableName  = "type_rooms"
	TypeEntityName = "type_room"

	FieldDescription = "description"
	FieldPrice       = "price"
	FieldImage       = "image"
)

type TypeRoom struct {
	ID          string  `db:"id"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	Image       string  `db:"image"`
	model.Metadata
}

// Room carries the nightly price and description of its type through a join.
type Room struct {
	ID              string  `db:"id"`
	TypeID          string  `db:"type_id"`
	State           string  `db:"state"`
	Price           float64 `db:"price"            table:"type_rooms"`
	TypeDescription string  `db:"type_description" table:"type_rooms" column:"description"`
	model.Metadata
}

func (Room) GetJoinQuery() string {
	return "JOIN type_rooms ON type_rooms.id = rooms.type_id"
}
