package service

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/amenity/model"
	"hotel/internal/domains/amenity/model/dto"
	"hotel/internal/domains/amenity/repository"
	billingModel "hotel/internal/domains/billing/model"
	billingRepo "hotel/internal/domains/billing/repository"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	userModel "hotel/internal/domains/user/model"
	userRepo "hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	CacheGetService    = "service:get"
	CacheGetAllService = "service:gets"
)

type Service interface {
	Create(ctx context.Context, req dto.CreateServiceRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetServicesResponse, error)
	Get(ctx context.Context, id string) (dto.ServiceResponse, error)
	Update(ctx context.Context, req dto.UpdateServiceRequest, id string) error
	Delete(ctx context.Context, id string) error
	RecordUsage(ctx context.Context, req dto.RecordUsageRequest) (dto.UsageResponse, error)
	GetUsages(ctx context.Context, detailBookingID string) ([]dto.UsageResponse, error)
}

type serviceImpl struct {
	repo       repository.Service
	detailRepo repository.DetailService
	stayRepo   bookingRepo.DetailBooking
	billRepo   billingRepo.Bill
	staffRepo  userRepo.Staff
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Service,
	detailRepo repository.DetailService,
	stayRepo bookingRepo.DetailBooking,
	billRepo billingRepo.Bill,
	staffRepo userRepo.Staff,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Service {
	return &serviceImpl{
		repo:       repo,
		detailRepo: detailRepo,
		stayRepo:   stayRepo,
		billRepo:   billRepo,
		staffRepo:  staffRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateServiceRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(req.Description, model.FieldDescription, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check service description")

		return fmt.Errorf("failed to check service description: %w", err)
	}

	if exist {
		return failure.BadRequestFromString("service description already exists") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create service")

		return failure.FromDatabase(fmt.Errorf("failed to create service: %w", err), "service description already exists") // nolint:wrapcheck
	}

	s.invalidate(ctx, constant.Empty)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetServicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(CacheGetAllService, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for services")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count services")

		return res, fmt.Errorf("failed to count services: %w", err)
	}

	services, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get services")

		return res, fmt.Errorf("failed to get services: %w", err)
	}

	res.FromModels(services, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save services to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return res, failure.NotFound("service not found") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(CacheGetService, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for service")

		return res, nil
	}

	service, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return res, fmt.Errorf("failed to get service: %w", err)
	}

	if service.ID == constant.Empty {
		return res, failure.NotFound("service not found") // nolint:wrapcheck
	}

	res.FromModel(service)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateServiceRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return failure.NotFound("service not found") // nolint:wrapcheck
	}

	if req == (dto.UpdateServiceRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service exists")

		return fmt.Errorf("failed to check if service exists: %w", err)
	}

	if !exist {
		return failure.NotFound("service not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update service")

		return failure.FromDatabase(fmt.Errorf("failed to update service: %w", err), "service description already exists") // nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return failure.NotFound("service not found") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service exists")

		return fmt.Errorf("failed to check if service exists: %w", err)
	}

	if !exist {
		return failure.NotFound("service not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete service")

		return failure.FromDatabase(fmt.Errorf("failed to delete service: %w", err), "service has recorded usages") // nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) RecordUsage(ctx context.Context, req dto.RecordUsageRequest) (res dto.UsageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RecordUsage")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	staff, err := s.staffRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldUserID, userModel.StaffTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff")

		return res, fmt.Errorf("failed to get staff: %w", err)
	}

	if staff.ID == constant.Empty {
		return res, failure.NotFound("staff not found") // nolint:wrapcheck
	}

	stay, err := s.stayRepo.Get(ctx, shared.FilterByID(req.DetailBookingID, bookingModel.FieldID, bookingModel.DetailTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get detail booking")

		return res, fmt.Errorf("failed to get detail booking: %w", err)
	}

	if stay.ID == constant.Empty {
		return res, failure.NotFound("detail booking not found") // nolint:wrapcheck
	}

	service, err := s.repo.Get(ctx, shared.FilterByID(req.ServiceID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return res, fmt.Errorf("failed to get service: %w", err)
	}

	if service.ID == constant.Empty {
		return res, failure.NotFound("service not found") // nolint:wrapcheck
	}

	billed, err := s.billRepo.Exist(ctx, shared.FilterByID(stay.BookingID, billingModel.FieldBookingID, billingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking bill")

		return res, fmt.Errorf("failed to check booking bill: %w", err)
	}

	if billed {
		return res, failure.BadRequestFromString("booking is already billed") // nolint:wrapcheck
	}

	used, err := s.detailRepo.Exist(ctx, shared.FilterByFields(model.DetailTableName, map[string]any{
		model.FieldDetailBookingID: req.DetailBookingID,
		model.FieldServiceID:       req.ServiceID,
	}))
	if err != nil {
		log.Error().Err(err).Msg("failed to check service usage")

		return res, fmt.Errorf("failed to check service usage: %w", err)
	}

	if used {
		return res, failure.Conflict("service is already recorded for this stay") // nolint:wrapcheck
	}

	usage := req.ToModel(service.Price, staff.ID, userID)

	if err = s.detailRepo.Insert(ctx, usage); err != nil {
		log.Error().Err(err).Msg("failed to record service usage")

		return res, failure.FromDatabase(fmt.Errorf("failed to record service usage: %w", err), "service is already recorded for this stay") // nolint:wrapcheck
	}

	usage.ServiceDescription = service.Description
	res.FromModel(usage)

	return res, nil
}

func (s *serviceImpl) GetUsages(ctx context.Context, detailBookingID string) (res []dto.UsageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetUsages")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(detailBookingID) {
		return res, failure.NotFound("detail booking not found") // nolint:wrapcheck
	}

	usages, err := s.detailRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(detailBookingID, model.FieldDetailBookingID, model.DetailTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service usages")

		return nil, fmt.Errorf("failed to get service usages: %w", err)
	}

	res = make([]dto.UsageResponse, len(usages))
	for i, usage := range usages {
		res[i].FromModel(usage)
	}

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(CacheGetService, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete service cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, CacheGetAllService)
	}()
}
