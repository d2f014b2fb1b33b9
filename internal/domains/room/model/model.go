package model

import "frontdesk/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID       = "id"
	FieldNumber   = "number"
	FieldRoomType = "room_type"
	FieldFloor    = "floor"
	FieldPrice    = "price"
	FieldCapacity = "capacity"
	FieldImage    = "image"
	FieldStatus   = "status"
)

const (
	StatusAvailable   = "available"
	StatusOccupied    = "occupied"
	StatusMaintenance = "maintenance"
)

// Cache key prefixes shared with every writer of room rows.
const (
	CacheGetRoom    = "room:get"
	CacheGetAllRoom = "room:gets"
	CacheCountRoom  = "room:count"
)

type Room struct {
	ID       string  `db:"id"`
	Number   string  `db:"number"`
	RoomType string  `db:"room_type"`
	Floor    int     `db:"floor"`
	Price    float64 `db:"price"`
	Capacity int     `db:"capacity"`
	Image    string  `db:"image"`
	Status   string  `db:"status"`
	model.Metadata
}

func (r Room) InMaintenance() bool {
	return r.Status == StatusMaintenance
}
