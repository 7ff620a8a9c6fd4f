package service

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/s3"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	CacheGetTypeRoom    = "type_room:get"
	CacheGetAllTypeRoom = "type_room:gets"
	CacheCountTypeRoom  = "type_room:count"
)

type TypeRoom interface {
	Create(ctx context.Context, req dto.CreateTypeRoomRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTypeRoomsResponse, error)
	Get(ctx context.Context, id string) (dto.TypeRoomResponse, error)
	Update(ctx context.Context, req dto.UpdateTypeRoomRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type typeRoomImpl struct {
	repo  repository.TypeRoom
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func NewTypeRoom(repo repository.TypeRoom, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) TypeRoom {
	return &typeRoomImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *typeRoomImpl) Create(ctx context.Context, req dto.CreateTypeRoomRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateTypeRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var imageURL string

	if req.Image != nil {
		imageURL, err = s.s3.UploadImage(ctx, model.TypeEntityName, req.ImageFile, req.Image)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload room type image")

			return fmt.Errorf("failed to upload room type image: %w", err)
		}
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, imageURL)); err != nil {
		log.Error().Err(err).Msg("failed to create room type")

		return fmt.Errorf("failed to create room type: %w", err)
	}

	s.invalidate(ctx, constant.Empty)

	return nil
}

func (s *typeRoomImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTypeRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllTypeRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(CacheGetAllTypeRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room types")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count room types")

		return res, fmt.Errorf("failed to count room types: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room types")

		return res, fmt.Errorf("failed to get room types: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room types to cache")
		}
	}()

	return res, nil
}

func (s *typeRoomImpl) Get(ctx context.Context, id string) (res dto.TypeRoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetTypeRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return res, failure.NotFound("room type not found") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(CacheGetTypeRoom, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room type")

		return res, nil
	}

	typeRoom, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TypeTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return res, fmt.Errorf("failed to get room type: %w", err)
	}

	if typeRoom.ID == constant.Empty {
		return res, failure.NotFound("room type not found") // nolint:wrapcheck
	}

	res.FromModel(typeRoom)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room type to cache")
		}
	}()

	return res, nil
}

func (s *typeRoomImpl) Update(ctx context.Context, req dto.UpdateTypeRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateTypeRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return failure.NotFound("room type not found") // nolint:wrapcheck
	}

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TypeTableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return fmt.Errorf("failed to get room type: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("room type not found") // nolint:wrapcheck
	}

	fields := shared.TransformFields(req, user)

	if req.Image != nil {
		url, err := s.s3.UploadImage(ctx, model.TypeEntityName, req.ImageFile, req.Image)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload room type image")

			return fmt.Errorf("failed to upload room type image: %w", err)
		}

		fields[model.FieldImage] = url
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update room type")

		return fmt.Errorf("failed to update room type: %w", err)
	}

	s.invalidate(ctx, id)

	if req.Image != nil && current.Image != constant.Empty {
		s.removeImage(ctx, current.Image)
	}

	return nil
}

func (s *typeRoomImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteTypeRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return failure.NotFound("room type not found") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TypeTableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return fmt.Errorf("failed to get room type: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("room type not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete room type")

		return failure.FromDatabase(fmt.Errorf("failed to delete room type: %w", err), "room type is used by rooms") // nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	if current.Image != constant.Empty {
		s.removeImage(ctx, current.Image)
	}

	return nil
}

func (s *typeRoomImpl) removeImage(ctx context.Context, url string) {
	go func() {
		if err := s.s3.DeleteByURL(context.WithoutCancel(ctx), url); err != nil {
			log.Error().Err(err).Str("url", url).Msg("failed to delete room type image")
		}
	}()
}

func (s *typeRoomImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(CacheGetTypeRoom, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete room type cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, CacheGetAllTypeRoom)
		shared.InvalidateCaches(c, s.cache, CacheCountTypeRoom)
		// rooms embed type price and description
		shared.InvalidateCaches(c, s.cache, CacheGetRoom)
		shared.InvalidateCaches(c, s.cache, CacheGetAllRoom)
	}()
}
