package service

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/billing/model"
	"hotel/internal/domains/billing/model/dto"
	"hotel/internal/domains/billing/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	CacheGetDiscount    = "discount:get"
	CacheGetAllDiscount = "discount:gets"
)

type Discount interface {
	Create(ctx context.Context, req dto.CreateDiscountRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetDiscountsResponse, error)
	Get(ctx context.Context, id string) (dto.DiscountResponse, error)
	Update(ctx context.Context, req dto.UpdateDiscountRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type discountImpl struct {
	repo  repository.Discount
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func NewDiscount(repo repository.Discount, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Discount {
	return &discountImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *discountImpl) descriptionTaken(ctx context.Context, description, exceptID string) (bool, error) {
	filter := shared.FilterByID(description, model.FieldDescription, model.DiscountTableName)

	if exceptID != constant.Empty {
		filter.Operator = gDto.FilterGroupOperatorAnd
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldID,
			Value:    exceptID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.DiscountTableName,
		})
	}

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check discount description")

		return false, fmt.Errorf("failed to check discount description: %w", err)
	}

	return exist, nil
}

func (s *discountImpl) Create(ctx context.Context, req dto.CreateDiscountRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateDiscount")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	taken, err := s.descriptionTaken(ctx, req.Description, constant.Empty)
	if err != nil {
		return err
	}

	if taken {
		return failure.BadRequestFromString("discount description already exists") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create discount")

		return failure.FromDatabase(fmt.Errorf("failed to create discount: %w", err), "discount description already exists") // nolint:wrapcheck
	}

	s.invalidate(ctx, constant.Empty)

	return nil
}

func (s *discountImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetDiscountsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllDiscount")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(CacheGetAllDiscount, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count discounts")

		return res, fmt.Errorf("failed to count discounts: %w", err)
	}

	discounts, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get discounts")

		return res, fmt.Errorf("failed to get discounts: %w", err)
	}

	res.FromModels(discounts, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save discounts to cache")
		}
	}()

	return res, nil
}

func (s *discountImpl) Get(ctx context.Context, id string) (res dto.DiscountResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDiscount")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return res, failure.NotFound("discount not found") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(CacheGetDiscount, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	discount, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.DiscountTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get discount")

		return res, fmt.Errorf("failed to get discount: %w", err)
	}

	if discount.ID == constant.Empty {
		return res, failure.NotFound("discount not found") // nolint:wrapcheck
	}

	res.FromModel(discount)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save discount to cache")
		}
	}()

	return res, nil
}

func (s *discountImpl) Update(ctx context.Context, req dto.UpdateDiscountRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateDiscount")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return failure.NotFound("discount not found") // nolint:wrapcheck
	}

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.DiscountTableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if discount exists")

		return fmt.Errorf("failed to check if discount exists: %w", err)
	}

	if !exist {
		return failure.NotFound("discount not found") // nolint:wrapcheck
	}

	if req.Description != constant.Empty {
		taken, err := s.descriptionTaken(ctx, req.Description, id)
		if err != nil {
			return err
		}

		if taken {
			return failure.BadRequestFromString("discount description already exists") // nolint:wrapcheck
		}
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update discount")

		return failure.FromDatabase(fmt.Errorf("failed to update discount: %w", err), "discount description already exists") // nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *discountImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteDiscount")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return failure.NotFound("discount not found") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.DiscountTableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if discount exists")

		return fmt.Errorf("failed to check if discount exists: %w", err)
	}

	if !exist {
		return failure.NotFound("discount not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete discount")

		return failure.FromDatabase(fmt.Errorf("failed to delete discount: %w", err), "discount is used by a bill") // nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *discountImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(CacheGetDiscount, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete discount cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, CacheGetAllDiscount)
	}()
}
