package dto

import (
	"mime/multipart"

	"frontdesk/internal/domains/room/model"
	"frontdesk/shared"
	gDto "frontdesk/shared/dto"
	gModel "frontdesk/shared/model"
	"frontdesk/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Number    string                `json:"number"    validate:"required,max=20"`
	RoomType  string                `json:"room_type" validate:"required,max=50"`
	Floor     int                   `json:"floor"     validate:"omitempty,min=0"`
	Price     float64               `json:"price"     validate:"required,gt=0"`
	Capacity  int                   `json:"capacity"  validate:"required,min=1"`
	Image     *multipart.FileHeader `json:"image"     validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"`
	Status    string                `json:"status"    validate:"omitempty,oneof=available occupied maintenance"`
}

func (c *CreateRoomRequest) ToModel(user string, imageURL string) model.Room {
	status := model.StatusAvailable
	if c.Status != "" {
		status = c.Status
	}

	return model.Room{
		ID:       uuid.NewString(),
		Number:   c.Number,
		RoomType: c.RoomType,
		Floor:    c.Floor,
		Price:    c.Price,
		Capacity: c.Capacity,
		Image:    imageURL,
		Status:   status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Number    string                `db:"number"    json:"number"    validate:"omitempty,max=20"`
	RoomType  string                `db:"room_type" json:"room_type" validate:"omitempty,max=50"`
	Floor     *int                  `db:"floor"     json:"floor"     validate:"omitempty,min=0"`
	Price     *float64              `db:"price"     json:"price"     validate:"omitempty,gt=0"`
	Capacity  *int                  `db:"capacity"  json:"capacity"  validate:"omitempty,min=1"`
	Image     *multipart.FileHeader `json:"image"   validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"`
}

type SetRoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available occupied maintenance"`
}

type RoomResponse struct {
	ID       string  `json:"id"`
	Number   string  `json:"number"`
	RoomType string  `json:"room_type"`
	Floor    int     `json:"floor"`
	Price    float64 `json:"price"`
	Capacity int     `json:"capacity"`
	Image    string  `json:"image"`
	Status   string  `json:"status"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Number = model.Number
	r.RoomType = model.RoomType
	r.Floor = model.Floor
	r.Price = model.Price
	r.Capacity = model.Capacity
	r.Image = model.Image
	r.Status = model.Status
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
