package service

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	amenityModel "hotel/internal/domains/amenity/model"
	amenityRepo "hotel/internal/domains/amenity/repository"
	"hotel/internal/domains/billing/model"
	"hotel/internal/domains/billing/model/dto"
	"hotel/internal/domains/billing/repository"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	userModel "hotel/internal/domains/user/model"
	userRepo "hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/event"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	CacheGetBill    = "bill:get"
	CacheGetAllBill = "bill:gets"
	CacheCountBill  = "bill:count"
)

type Bill interface {
	Create(ctx context.Context, req dto.CreateBillRequest) (dto.BillResponse, error)
	Get(ctx context.Context, id string) (dto.BillResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBillsResponse, error)
	GetByCustomer(ctx context.Context, req gDto.QueryParams) (dto.GetBillsResponse, error)
	Check(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo              repository.Bill
	discountRepo      repository.Discount
	bookingRepo       bookingRepo.Booking
	detailRepo        bookingRepo.DetailBooking
	detailServiceRepo amenityRepo.DetailService
	customerRepo      userRepo.Customer
	staffRepo         userRepo.Staff
	publisher         event.Publisher
	cfg               *config.Config
	cache             cache.RedisCache
	otel              otel.Otel
}

func New(
	repo repository.Bill,
	discountRepo repository.Discount,
	bookingRepo bookingRepo.Booking,
	detailRepo bookingRepo.DetailBooking,
	detailServiceRepo amenityRepo.DetailService,
	customerRepo userRepo.Customer,
	staffRepo userRepo.Staff,
	publisher event.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Bill {
	return &serviceImpl{
		repo:              repo,
		discountRepo:      discountRepo,
		bookingRepo:       bookingRepo,
		detailRepo:        detailRepo,
		detailServiceRepo: detailServiceRepo,
		customerRepo:      customerRepo,
		staffRepo:         staffRepo,
		publisher:         publisher,
		cfg:               cfg,
		cache:             cache,
		otel:              otel,
	}
}

type BillEvent struct {
	BillID    string  `json:"billID"`
	BookingID string  `json:"bookingID"`
	Total     float64 `json:"total"`
	CheckBill bool    `json:"checkBill"`
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBillRequest) (res dto.BillResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.bookingRepo.Exist(ctx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return res, fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	billed, err := s.repo.Exist(ctx, shared.FilterByID(req.BookingID, model.FieldBookingID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if bill exists")

		return res, fmt.Errorf("failed to check if bill exists: %w", err)
	}

	if billed {
		return res, failure.Conflict("booking already has a bill") // nolint:wrapcheck
	}

	discount, err := s.discountRepo.Get(ctx, shared.FilterByID(req.DiscountID, model.FieldID, model.DiscountTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get discount")

		return res, fmt.Errorf("failed to get discount: %w", err)
	}

	if discount.ID == constant.Empty {
		return res, failure.NotFound("discount not found") // nolint:wrapcheck
	}

	staff, err := s.staffRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldUserID, userModel.StaffTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff")

		return res, fmt.Errorf("failed to get staff: %w", err)
	}

	if staff.ID == constant.Empty {
		return res, failure.NotFound("staff not found") // nolint:wrapcheck
	}

	total, err := s.total(ctx, req.BookingID, discount)
	if err != nil {
		return res, err
	}

	bill := req.ToModel(staff.ID, total, userID)

	if err = s.repo.Insert(ctx, bill); err != nil {
		log.Error().Err(err).Msg("failed to create bill")

		return res, failure.FromDatabase(fmt.Errorf("failed to create bill: %w", err), "booking already has a bill") // nolint:wrapcheck
	}

	res.FromModel(bill)

	s.invalidate(ctx, constant.Empty)
	go s.publisher.Publish(context.WithoutCancel(ctx), event.New(constant.EventBillCreated, bill.ID, BillEvent{
		BillID:    bill.ID,
		BookingID: bill.BookingID,
		Total:     bill.Total,
	}))

	return res, nil
}

func (s *serviceImpl) total(ctx context.Context, bookingID string, discount model.Discount) (float64, error) {
	details, err := s.detailRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(bookingID, bookingModel.FieldBookingID, bookingModel.DetailTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get detail bookings")

		return 0, fmt.Errorf("failed to get detail bookings: %w", err)
	}

	if len(details) == 0 {
		return CalculateTotal(details, nil, discount), nil
	}

	ids := make([]string, len(details))
	for i, detail := range details {
		ids[i] = detail.ID
	}

	services, err := s.detailServiceRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    amenityModel.FieldDetailBookingID,
				Value:    ids,
				Operator: gDto.FilterOperatorIn,
				Table:    amenityModel.DetailTableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get detail services")

		return 0, fmt.Errorf("failed to get detail services: %w", err)
	}

	return CalculateTotal(details, services, discount), nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BillResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return res, failure.NotFound("bill not found") // nolint:wrapcheck
	}

	var ownerID string

	if role, _ := ctx.Value(constant.ContextKeyUserRole).(string); role == constant.RoleCustomer {
		ownerID, err = s.customerID(ctx)
		if err != nil {
			return res, err
		}
	}

	cacheKey := shared.BuildCacheKey(CacheGetBill, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bill")
	} else {
		bill, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get bill")

			return res, fmt.Errorf("failed to get bill: %w", err)
		}

		if bill.ID == constant.Empty {
			return res, failure.NotFound("bill not found") // nolint:wrapcheck
		}

		res.FromModel(bill)

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save bill to cache")
			}
		}()
	}

	if ownerID != constant.Empty && res.CustomerID != ownerID {
		return dto.BillResponse{}, failure.NotFound("bill not found") // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) customerID(ctx context.Context) (string, error) {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	customer, err := s.customerRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldUserID, userModel.CustomerTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return constant.Empty, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == constant.Empty {
		return constant.Empty, failure.NotFound("customer not found") // nolint:wrapcheck
	}

	return customer.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBillsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(CacheGetAllBill, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bills")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bills")

		return res, fmt.Errorf("failed to count bills: %w", err)
	}

	bills, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bills")

		return res, fmt.Errorf("failed to get bills: %w", err)
	}

	res.FromModels(bills, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bills to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByCustomer(ctx context.Context, req gDto.QueryParams) (res dto.GetBillsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	customerID, err := s.customerID(ctx)
	if err != nil {
		return res, err
	}

	return s.GetAll(ctx, req, shared.FilterByID(customerID, bookingModel.FieldCustomerID, bookingModel.TableName))
}

func (s *serviceImpl) Check(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Check")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return failure.NotFound("bill not found") // nolint:wrapcheck
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	bill, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bill")

		return fmt.Errorf("failed to get bill: %w", err)
	}

	if bill.ID == constant.Empty {
		return failure.NotFound("bill not found") // nolint:wrapcheck
	}

	if bill.CheckBill {
		return nil
	}

	err = s.repo.Update(ctx, map[string]any{
		model.FieldCheckBill:     true,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: userID,
	}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check bill")

		return fmt.Errorf("failed to check bill: %w", err)
	}

	s.invalidate(ctx, id)
	go s.publisher.Publish(context.WithoutCancel(ctx), event.New(constant.EventBillChecked, bill.ID, BillEvent{
		BillID:    bill.ID,
		BookingID: bill.BookingID,
		Total:     bill.Total,
		CheckBill: true,
	}))

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(CacheGetBill, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete bill cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, CacheGetAllBill)
		shared.InvalidateCaches(c, s.cache, CacheCountBill)
	}()
}
