package room

import (
	"net/http"
	"slices"

	"hotel/infras/jwt"
	"hotel/infras/otel"
	"hotel/infras/websocket"
	bookingDto "hotel/internal/domains/booking/model/dto"
	bookingService "hotel/internal/domains/booking/service"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	formDescription = "description"
	formPrice       = "price"
	formImage       = "image"
)

type Handler struct {
	service      service.Room
	typeService  service.TypeRoom
	availability bookingService.Availability
	hub          websocket.Hub
	jwt          jwt.JWT
	otel         otel.Otel
}

func New(
	service service.Room,
	typeService service.TypeRoom,
	availability bookingService.Availability,
	hub websocket.Hub,
	jwt jwt.JWT,
	otel otel.Otel,
) Handler {
	return Handler{
		service:      service,
		typeService:  typeService,
		availability: availability,
		hub:          hub,
		jwt:          jwt,
		otel:         otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/TypeRoom", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTypeRooms)
		routerGroup.Post("/", handler.CreateTypeRoom)
		routerGroup.Get("/{id}", handler.GetTypeRoomByID)
		routerGroup.Patch("/{id}", handler.UpdateTypeRoom)
		routerGroup.Delete("/{id}", handler.DeleteTypeRoom)
	})

	router.Route("/Room", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/available", handler.GetAvailableRooms)
		routerGroup.Get("/ws", handler.Subscribe)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Get("/{id}/availability", handler.GetAvailability)
		routerGroup.Patch("/{id}", handler.UpdateRoom)
		routerGroup.Delete("/{id}", handler.DeleteRoom)
	})
}

func parseTypeRoomForm(request *http.Request) (description string, price float64, err error) {
	if err = request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return constant.Empty, 0, failure.BadRequest(err) // nolint:wrapcheck
	}

	description = request.FormValue(formDescription)

	if priceStr := request.FormValue(formPrice); priceStr != constant.Empty {
		price, err = shared.ConvertStringToFloat(priceStr)
		if err != nil {
			return constant.Empty, 0, failure.BadRequestFromString("price must be a number") // nolint:wrapcheck
		}
	}

	return description, price, nil
}

// CreateTypeRoom handles the creation of a room type.
// @Summary Create a room type @Admin
// @Tags TypeRoom
// @Accept multipart/form-data
// @Produce json
// @Param description formData string true "Description"
// @Param price formData number true "Price per night"
// @Param image formData file false "Room type image"
// @Success 201 {object} response.Message "Room type created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/TypeRoom [post]
// @Security BearerAuth
func (handler *Handler) CreateTypeRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTypeRoom")
	defer scope.End()

	description, price, err := parseTypeRoomForm(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	req := dto.CreateTypeRoomRequest{Description: description, Price: price}

	file, fileHeader, err := r.FormFile(formImage)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err = handler.typeService.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room type")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusCreated, "Room type created successfully")
}

// GetTypeRooms lists room types.
// @Summary List room types
// @Tags TypeRoom
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param description query string false "Filter by description"
// @Success 200 {object} response.Data[dto.GetTypeRoomsResponse]
// @Failure 500 {object} response.Error
// @Router /api/TypeRoom [get]
func (handler *Handler) GetTypeRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTypeRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.WithTable(model.TypeTableName)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if description := r.URL.Query().Get(model.FieldDescription); description != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldDescription,
			Operator: gDto.FilterOperatorLike,
			Value:    description,
			Table:    model.TypeTableName,
		})
	}

	res, err := handler.typeService.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room types")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetTypeRoomByID returns a room type.
// @Summary Get a room type
// @Tags TypeRoom
// @Produce json
// @Param id path string true "Room type ID"
// @Success 200 {object} response.Data[dto.TypeRoomResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/TypeRoom/{id} [get]
func (handler *Handler) GetTypeRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTypeRoomByID")
	defer scope.End()

	res, err := handler.typeService.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room type")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateTypeRoom updates a room type.
// @Summary Update a room type @Admin
// @Tags TypeRoom
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Room type ID"
// @Param description formData string false "Description"
// @Param price formData number false "Price per night"
// @Param image formData file false "Room type image"
// @Success 200 {object} response.Message "Room type updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/TypeRoom/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTypeRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTypeRoom")
	defer scope.End()

	description, price, err := parseTypeRoomForm(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	req := dto.UpdateTypeRoomRequest{Description: description, Price: price}

	file, fileHeader, err := r.FormFile(formImage)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err = handler.typeService.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room type")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Room type updated successfully")
}

// DeleteTypeRoom deletes a room type that no room uses.
// @Summary Delete a room type @Admin
// @Tags TypeRoom
// @Produce json
// @Param id path string true "Room type ID"
// @Success 200 {object} response.Message "Room type deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/TypeRoom/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTypeRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTypeRoom")
	defer scope.End()

	if err := handler.typeService.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room type")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Room type deleted successfully")
}

// CreateRoom handles the creation of a room.
// @Summary Create a room @Admin
// @Tags Room
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomRequest true "Create Room Request"
// @Success 201 {object} response.Message "Room created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/Room [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	req := dto.CreateRoomRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room created by user " + user)

	response.WithMessage(w, http.StatusCreated, "Room created successfully")
}

func (handler *Handler) getRooms(w http.ResponseWriter, r *http.Request, state string) {
	ctx := r.Context()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.WithTable(model.TableName)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if state != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldState,
			Operator: gDto.FilterOperatorEq,
			Value:    state,
			Table:    model.TableName,
		})
	}

	if typeID := r.URL.Query().Get("typeID"); typeID != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTypeID,
			Operator: gDto.FilterOperatorEq,
			Value:    typeID,
			Table:    model.TableName,
		})
	}

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetRooms lists rooms.
// @Summary List rooms
// @Tags Room
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param state query string false "Filter by state" Enums(Available, Booked, Maintenance)
// @Param typeID query string false "Filter by room type"
// @Success 200 {object} response.Data[dto.GetRoomsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/Room [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	state := r.URL.Query().Get(model.FieldState)
	if state != constant.Empty && !slices.Contains([]string{constant.RoomStateAvailable, constant.RoomStateBooked, constant.RoomStateMaintenance}, state) {
		response.WithError(w, failure.BadRequestFromString("state must be one of Available Booked Maintenance"))

		return
	}

	handler.getRooms(w, r.WithContext(ctx), state)
}

// GetAvailableRooms lists rooms whose state is Available.
// @Summary List available rooms
// @Tags Room
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param typeID query string false "Filter by room type"
// @Success 200 {object} response.Data[dto.GetRoomsResponse]
// @Failure 500 {object} response.Error
// @Router /api/Room/available [get]
func (handler *Handler) GetAvailableRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableRooms")
	defer scope.End()

	handler.getRooms(w, r.WithContext(ctx), constant.RoomStateAvailable)
}

// GetRoomByID returns a room with its type.
// @Summary Get a room
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/Room/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetAvailability reports whether a room is free for the half-open interval [dateIn, dateOut).
// @Summary Check room availability
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Param dateIn query string true "Check-in (2006-01-02 or RFC3339)"
// @Param dateOut query string true "Check-out (2006-01-02 or RFC3339)"
// @Success 200 {object} response.Data[bookingDto.AvailabilityResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/Room/{id}/availability [get]
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	req := bookingDto.AvailabilityRequest{
		DateIn:  r.URL.Query().Get(constant.RequestParamDateIn),
		DateOut: r.URL.Query().Get(constant.RequestParamDateOut),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate availability query")

		response.WithError(w, err)

		return
	}

	res, err := handler.availability.Check(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check room availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateRoom changes the type or state of a room.
// @Summary Update a room @Admin @Staff
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.UpdateRoomRequest true "Update Room Request"
// @Success 200 {object} response.Message "Room updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/Room/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	req := dto.UpdateRoomRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Room updated successfully")
}

// DeleteRoom deletes a room without bookings.
// @Summary Delete a room @Admin
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message "Room deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/Room/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Room deleted successfully")
}

// Subscribe upgrades to a websocket streaming booking, bill and room state events.
// Browsers cannot set headers on websocket handshakes, so the access token travels in the query.
// @Summary Live hotel events @Admin @Staff
// @Tags Room
// @Param token query string true "Access token"
// @Success 101
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /api/Room/ws [get]
func (handler *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Subscribe")

	claims, err := handler.jwt.ValidateToken(ctx, r.URL.Query().Get(constant.RequestParamToken), jwt.AccessToken)
	if err != nil {
		scope.TraceError(err)
		scope.End()

		response.WithError(w, failure.Unauthorized("Invalid token"))

		return
	}

	if claims.Role != constant.RoleAdmin && claims.Role != constant.RoleStaff {
		scope.End()

		response.WithError(w, failure.ForbiddenError)

		return
	}

	conn, err := handler.hub.Upgrade(w, r)
	if err != nil {
		scope.TraceError(err)
		scope.End()
		log.Error().Err(err).Msg("failed to upgrade websocket connection")

		return
	}

	scope.AddEvent("websocket connected for user " + claims.UserID)
	scope.End()

	handler.hub.ServeWS(conn, claims.UserID)
}
