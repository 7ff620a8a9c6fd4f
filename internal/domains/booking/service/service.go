package service

import (
	"context"
	"fmt"
	"slices"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	amenityModel "hotel/internal/domains/amenity/model"
	amenityRepo "hotel/internal/domains/amenity/repository"
	billingModel "hotel/internal/domains/billing/model"
	billingRepo "hotel/internal/domains/billing/repository"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	userModel "hotel/internal/domains/user/model"
	userRepo "hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/event"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	CacheGetBooking    = "booking:get"
	CacheGetAllBooking = "booking:gets"
	CacheCountBooking  = "booking:count"

	argCurrentState = "current_state"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetByCustomer(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	Cancel(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo              repository.Booking
	detailRepo        repository.DetailBooking
	roomRepo          roomRepo.Room
	userRepo          userRepo.User
	customerRepo      userRepo.Customer
	billRepo          billingRepo.Bill
	detailServiceRepo amenityRepo.DetailService
	availability      Availability
	transactor        postgres.Transactor
	publisher         event.Publisher
	cfg               *config.Config
	cache             cache.RedisCache
	otel              otel.Otel
}

func New(
	repo repository.Booking,
	detailRepo repository.DetailBooking,
	roomRepo roomRepo.Room,
	userRepo userRepo.User,
	customerRepo userRepo.Customer,
	billRepo billingRepo.Bill,
	detailServiceRepo amenityRepo.DetailService,
	availability Availability,
	transactor postgres.Transactor,
	publisher event.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:              repo,
		detailRepo:        detailRepo,
		roomRepo:          roomRepo,
		userRepo:          userRepo,
		customerRepo:      customerRepo,
		billRepo:          billRepo,
		detailServiceRepo: detailServiceRepo,
		availability:      availability,
		transactor:        transactor,
		publisher:         publisher,
		cfg:               cfg,
		cache:             cache,
		otel:              otel,
	}
}

type BookingEvent struct {
	BookingID  string   `json:"bookingID"`
	CustomerID string   `json:"customerID"`
	Rooms      []string `json:"rooms"`
}

func (s *serviceImpl) customer(ctx context.Context) (userModel.Customer, error) {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	customer, err := s.customerRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldUserID, userModel.CustomerTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return customer, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == constant.Empty {
		return customer, failure.NotFound("customer not found") // nolint:wrapcheck
	}

	return customer, nil
}

// validateLines checks every line before anything is written and stops at the first failure.
func (s *serviceImpl) validateLines(ctx context.Context, req dto.CreateBookingRequest) ([]dto.BookingLine, error) {
	lines := make([]dto.BookingLine, 0, len(req.Rooms))

	for _, lineReq := range req.Rooms {
		line, err := lineReq.Parse()
		if err != nil {
			return nil, failure.BadRequest(fmt.Errorf("room %s: %w", lineReq.RoomID, err)) // nolint:wrapcheck
		}

		room, err := s.roomRepo.Get(ctx, shared.FilterByID(line.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			log.Error().Err(err).Str("roomID", line.RoomID).Msg("failed to get room")

			return nil, fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID == constant.Empty {
			return nil, failure.NotFound(fmt.Sprintf("room %s not found", line.RoomID)) // nolint:wrapcheck
		}

		if room.State == constant.RoomStateMaintenance {
			return nil, failure.BadRequestFromString(fmt.Sprintf("room %s is under maintenance", line.RoomID)) // nolint:wrapcheck
		}

		if err = ValidateInterval(line.DateIn, line.DateOut); err != nil {
			return nil, failure.BadRequestFromString(fmt.Sprintf("room %s: %s", line.RoomID, err.Error())) // nolint:wrapcheck
		}

		for _, previous := range lines {
			if previous.RoomID == line.RoomID && Overlaps(line.DateIn, line.DateOut, previous.DateIn, previous.DateOut) {
				return nil, failure.BadRequestFromString(fmt.Sprintf("room %s is requested twice for overlapping dates", line.RoomID)) // nolint:wrapcheck
			}
		}

		available, err := s.availability.IsRoomAvailable(ctx, line.RoomID, line.DateIn, line.DateOut)
		if err != nil {
			return nil, err
		}

		if !available {
			return nil, failure.BadRequestFromString(fmt.Sprintf("room %s is not available for the requested dates", line.RoomID)) // nolint:wrapcheck
		}

		lines = append(lines, line)
	}

	return lines, nil
}

func distinctRooms(lines []dto.BookingLine) []string {
	rooms := make([]string, 0, len(lines))
	for _, line := range lines {
		rooms = append(rooms, line.RoomID)
	}

	slices.Sort(rooms)

	return slices.Compact(rooms)
}

func roomStateChange(roomID, state, user string) (map[string]any, gDto.FilterGroup) {
	mod := map[string]any{
		roomModel.FieldState:     state,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	return mod, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(req.Rooms) == 0 {
		return res, failure.BadRequestFromString("rooms cannot be empty") // nolint:wrapcheck
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	customer, err := s.customer(ctx)
	if err != nil {
		return res, err
	}

	lines, err := s.validateLines(ctx, req)
	if err != nil {
		return res, err
	}

	booking := dto.NewBooking(customer.ID, len(lines), userID)
	rooms := distinctRooms(lines)
	details := make([]model.DetailBooking, 0, len(lines))

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		locked := make(map[string]roomModel.Room, len(rooms))

		for _, roomID := range rooms {
			room, err := s.roomRepo.LockTx(ctx, tx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
			if err != nil {
				return fmt.Errorf("failed to lock room %s: %w", roomID, err)
			}

			if room.ID == constant.Empty {
				return failure.NotFound(fmt.Sprintf("room %s not found", roomID)) // nolint:wrapcheck
			}

			locked[roomID] = room
		}

		for _, line := range lines {
			overlap, err := s.detailRepo.ExistTx(ctx, tx, repository.OverlapFilter(line.RoomID, line.DateIn, line.DateOut))
			if err != nil {
				return fmt.Errorf("failed to recheck room availability: %w", err)
			}

			if overlap {
				return failure.Conflict(fmt.Sprintf("room %s is no longer available for the requested dates", line.RoomID)) // nolint:wrapcheck
			}

			detail := dto.NewDetailBooking(booking.ID, line, locked[line.RoomID].Price, userID)
			if err := s.detailRepo.InsertTx(ctx, tx, detail); err != nil {
				return fmt.Errorf("failed to insert detail booking: %w", err)
			}

			details = append(details, detail)
		}

		for _, roomID := range rooms {
			mod, filter := roomStateChange(roomID, constant.RoomStateBooked, userID)
			if err := s.roomRepo.UpdateTx(ctx, tx, mod, filter); err != nil {
				return fmt.Errorf("failed to mark room %s as booked: %w", roomID, err)
			}
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, failure.FromDatabase(err, "one of the rooms is no longer available for the requested dates") // nolint:wrapcheck
	}

	res.FromModel(booking, details)

	s.invalidate(ctx, constant.Empty, rooms)
	s.publish(ctx, constant.EventBookingCreated, booking, rooms, constant.RoomStateBooked)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	var ownerID string

	if role, _ := ctx.Value(constant.ContextKeyUserRole).(string); role == constant.RoleCustomer {
		customer, err := s.customer(ctx)
		if err != nil {
			return res, err
		}

		ownerID = customer.ID
	}

	cacheKey := shared.BuildCacheKey(CacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")
	} else {
		res, err = s.load(ctx, id)
		if err != nil {
			return res, err
		}

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save booking to cache")
			}
		}()
	}

	if ownerID != constant.Empty && res.CustomerID != ownerID {
		return dto.BookingResponse{}, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	details, err := s.detailRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(id, model.FieldBookingID, model.DetailTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get detail bookings")

		return res, fmt.Errorf("failed to get detail bookings: %w", err)
	}

	res.FromModel(booking, details)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(CacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByCustomer(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	customer, err := s.customer(ctx)
	if err != nil {
		return res, err
	}

	return s.GetAll(ctx, req, shared.FilterByID(customer.ID, model.FieldCustomerID, model.TableName))
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	customer, err := s.customer(ctx)
	if err != nil {
		return err
	}

	booking, err := s.repo.Get(ctx, shared.FilterByFields(model.TableName, map[string]any{
		model.FieldID:         id,
		model.FieldCustomerID: customer.ID,
	}))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	billed, err := s.billRepo.Exist(ctx, shared.FilterByID(id, billingModel.FieldBookingID, billingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking bill")

		return fmt.Errorf("failed to check booking bill: %w", err)
	}

	if billed {
		return failure.BadRequestFromString("booking is already billed and cannot be cancelled") // nolint:wrapcheck
	}

	var rooms []string

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		details, err := s.detailRepo.GetAllTx(ctx, tx, gDto.QueryParams{}, shared.FilterByID(id, model.FieldBookingID, model.DetailTableName))
		if err != nil {
			return fmt.Errorf("failed to get detail bookings: %w", err)
		}

		for _, detail := range details {
			mod, filter := roomStateChange(detail.RoomID, constant.RoomStateAvailable, userID)
			filter.Operator = gDto.FilterGroupOperatorAnd
			filter.Filters = append(filter.Filters, gDto.Filter{
				Field:    roomModel.FieldState,
				ArgName:  argCurrentState,
				Value:    constant.RoomStateBooked,
				Operator: gDto.FilterOperatorEq,
				Table:    roomModel.TableName,
			})

			if err := s.roomRepo.UpdateTx(ctx, tx, mod, filter); err != nil {
				return fmt.Errorf("failed to release room %s: %w", detail.RoomID, err)
			}

			if err := s.detailServiceRepo.DeleteTx(ctx, tx, shared.FilterByID(detail.ID, amenityModel.FieldDetailBookingID, amenityModel.DetailTableName)); err != nil {
				return fmt.Errorf("failed to delete services of detail booking %s: %w", detail.ID, err)
			}

			rooms = append(rooms, detail.RoomID)
		}

		if err := s.detailRepo.DeleteTx(ctx, tx, shared.FilterByID(id, model.FieldBookingID, model.DetailTableName)); err != nil {
			return fmt.Errorf("failed to delete detail bookings: %w", err)
		}

		if err := s.repo.DeleteTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to delete booking: %w", err)
		}

		err = s.userRepo.IncrementTx(ctx, tx, userModel.FieldCancellations, 1, shared.FilterByID(customer.UserID, userModel.FieldID, userModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to increment cancellations: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return failure.FromDatabase(err, "booking is referenced by other records") // nolint:wrapcheck
	}

	slices.Sort(rooms)
	rooms = slices.Compact(rooms)

	s.invalidate(ctx, id, rooms)
	s.publish(ctx, constant.EventBookingCancelled, booking, rooms, constant.RoomStateAvailable)

	return nil
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking, rooms []string, state string) {
	events := []event.Event{
		event.New(eventType, booking.ID, BookingEvent{BookingID: booking.ID, CustomerID: booking.CustomerID, Rooms: rooms}),
	}

	for _, roomID := range rooms {
		events = append(events, event.New(constant.EventRoomStateChanged, roomID, roomService.RoomStateChanged{RoomID: roomID, State: state}))
	}

	go s.publisher.Publish(context.WithoutCancel(ctx), events...)
}

func (s *serviceImpl) invalidate(ctx context.Context, id string, rooms []string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(CacheGetBooking, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete booking cache")
			}
		}

		for _, roomID := range rooms {
			if err := s.cache.Delete(c, shared.BuildCacheKey(roomService.CacheGetRoom, roomID)); err != nil {
				log.Error().Err(err).Msg("failed to delete room cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, CacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, CacheCountBooking)
		shared.InvalidateCaches(c, s.cache, roomService.CacheGetAllRoom)
	}()
}
