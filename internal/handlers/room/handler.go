package room

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"frontdesk/infras/otel"
	"frontdesk/internal/domains/room/model"
	"frontdesk/internal/domains/room/model/dto"
	"frontdesk/internal/domains/room/service"
	"frontdesk/shared"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/failure"
	"frontdesk/shared/validator"
	"frontdesk/transport/http/response"
)

const formImage = "image"

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{service: service, otel: otel}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(rooms chi.Router) {
		rooms.Post("/", handler.CreateRoom)
		rooms.Get("/", handler.GetRooms)
		rooms.Get("/{id}", handler.GetRoomByID)
		rooms.Patch("/{id}", handler.UpdateRoom)
		rooms.Patch("/{id}/status", handler.SetRoomStatus)
		rooms.Delete("/{id}", handler.DeleteRoom)
	})
}

// roomForm is the parsed multipart body shared by create and update.
// Numeric fields are nil when absent or malformed, which validation then reports.
type roomForm struct {
	number, roomType, status string
	floor, capacity          *int
	price                    *float64
	image                    *multipart.FileHeader
	file                     multipart.File
}

func parseRoomForm(r *http.Request) (form roomForm, err error) {
	if err = r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return form, failure.BadRequest(fmt.Errorf("invalid multipart form: %w", err)) //nolint:wrapcheck
	}

	form.number = strings.TrimSpace(r.FormValue(model.FieldNumber))
	form.roomType = strings.TrimSpace(r.FormValue(model.FieldRoomType))
	form.status = strings.TrimSpace(r.FormValue(model.FieldStatus))

	if v, convErr := shared.ConvertStringToInt(r.FormValue(model.FieldFloor)); convErr == nil {
		form.floor = &v
	}

	if v, convErr := shared.ConvertStringToInt(r.FormValue(model.FieldCapacity)); convErr == nil {
		form.capacity = &v
	}

	if v, convErr := shared.ConvertStringToFloat(r.FormValue(model.FieldPrice)); convErr == nil {
		form.price = &v
	}

	if file, header, fileErr := r.FormFile(formImage); fileErr == nil {
		form.file, form.image = file, header
	}

	return form, nil
}

func (f roomForm) close() {
	if f.file != nil {
		_ = f.file.Close()
	}
}

func deref[T any](v *T) T {
	if v == nil {
		var zero T

		return zero
	}

	return *v
}

func (handler *Handler) fail(w http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)
	log.Error().Err(err).Msg(msg)
	response.WithError(w, err)
}

// CreateRoom
// @Summary Create a room
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param number formData string true "Room number"
// @Param room_type formData string true "Room type"
// @Param floor formData integer false "Floor"
// @Param price formData number true "Nightly price"
// @Param capacity formData integer true "Room capacity"
// @Param status formData string false "Initial status" Enums(available, occupied, maintenance)
// @Param image formData file false "Room image"
// @Success 201 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	form, err := parseRoomForm(r)
	if err != nil {
		handler.fail(w, scope, err, "failed to parse room form")

		return
	}
	defer form.close()

	req := dto.CreateRoomRequest{
		Number:    form.number,
		RoomType:  form.roomType,
		Status:    form.status,
		Floor:     deref(form.floor),
		Price:     deref(form.price),
		Capacity:  deref(form.capacity),
		Image:     form.image,
		ImageFile: form.file,
	}

	if err = validator.ValidateStruct(&req); err != nil {
		handler.fail(w, scope, err, "invalid create room request")

		return
	}

	if err = handler.service.Create(ctx, req); err != nil {
		handler.fail(w, scope, err, "failed to create room")

		return
	}

	scope.AddEvent("room created " + req.Number)
	response.WithMessage(w, http.StatusCreated, "Room created successfully")
}

// GetRooms
// @Summary List rooms
// @Tags Room
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param number query string false "Room number contains"
// @Param room_type query string false "Room type contains"
// @Param status query string false "Status" Enums(available, occupied, maintenance)
// @Param floor query integer false "Floor"
// @Success 200 {object} response.Data[dto.GetRoomsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	var params gDto.QueryParams
	params.FromRequest(r, true)

	rooms, err := handler.service.GetAll(ctx, params, roomsFilter(r))
	if err != nil {
		handler.fail(w, scope, err, "failed to list rooms")

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

func roomsFilter(r *http.Request) gDto.FilterGroup {
	query := r.URL.Query()
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	for _, field := range []string{model.FieldNumber, model.FieldRoomType} {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    field,
			Operator: gDto.FilterOperatorLike,
			Value:    strings.TrimSpace(query.Get(field)),
			Table:    model.TableName,
		})
	}

	if status := query.Get(model.FieldStatus); status != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if floor, err := shared.ConvertStringToInt(query.Get(model.FieldFloor)); err == nil {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldFloor,
			Operator: gDto.FilterOperatorEq,
			Value:    floor,
			Table:    model.TableName,
		})
	}

	return group
}

// GetRoomByID
// @Summary Get a room
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse]
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	room, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		handler.fail(w, scope, err, "failed to get room")

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// UpdateRoom
// @Summary Update a room
// @Description Partial update. A new image replaces the stored one.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Room ID"
// @Param number formData string false "Room number"
// @Param room_type formData string false "Room type"
// @Param floor formData integer false "Floor"
// @Param price formData number false "Nightly price"
// @Param capacity formData integer false "Room capacity"
// @Param image formData file false "Room image"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/rooms/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	form, err := parseRoomForm(r)
	if err != nil {
		handler.fail(w, scope, err, "failed to parse room form")

		return
	}
	defer form.close()

	req := dto.UpdateRoomRequest{
		Number:    form.number,
		RoomType:  form.roomType,
		Floor:     form.floor,
		Price:     form.price,
		Capacity:  form.capacity,
		Image:     form.image,
		ImageFile: form.file,
	}

	if err = validator.ValidateStruct(&req); err != nil {
		handler.fail(w, scope, err, "invalid update room request")

		return
	}

	if err = handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		handler.fail(w, scope, err, "failed to update room")

		return
	}

	response.WithMessage(w, http.StatusOK, "Room updated successfully")
}

// SetRoomStatus
// @Summary Set room status
// @Description Put a room into maintenance or release it. Releasing recomputes occupancy from the bookings.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.SetRoomStatusRequest true "Status"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) SetRoomStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetRoomStatus")
	defer scope.End()

	var req dto.SetRoomStatusRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		handler.fail(w, scope, err, "invalid room status request")

		return
	}

	if err := handler.service.SetStatus(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		handler.fail(w, scope, err, "failed to set room status")

		return
	}

	scope.AddEvent("room status set to " + req.Status)
	response.WithMessage(w, http.StatusOK, "Room status updated successfully")
}

// DeleteRoom
// @Summary Delete a room
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		handler.fail(w, scope, err, "failed to delete room")

		return
	}

	response.WithMessage(w, http.StatusOK, "Room deleted successfully")
}
