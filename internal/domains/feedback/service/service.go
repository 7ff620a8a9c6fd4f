package service

import (
	"context"
	"fmt"
	"strings"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/feedback/model"
	"hotel/internal/domains/feedback/model/dto"
	"hotel/internal/domains/feedback/repository"
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
	CacheGetAllFeedback = "feedback:gets"
)

type Feedback interface {
	Create(ctx context.Context, req dto.CreateFeedbackRequest) (dto.FeedbackResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams) (dto.GetFeedbacksResponse, error)
	Delete(ctx context.Context, req dto.DeleteFeedbackRequest) error
}

type serviceImpl struct {
	repo         repository.Feedback
	customerRepo userRepo.Customer
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(repo repository.Feedback, customerRepo userRepo.Customer, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Feedback {
	return &serviceImpl{
		repo:         repo,
		customerRepo: customerRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateFeedbackRequest) (res dto.FeedbackResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Comment = strings.TrimSpace(req.Comment)
	if req.Comment == constant.Empty {
		return res, failure.BadRequestFromString("comment cannot be empty") // nolint:wrapcheck
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.customerRepo.Exist(ctx, shared.FilterByID(userID, userModel.FieldUserID, userModel.CustomerTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check customer")

		return res, fmt.Errorf("failed to check customer: %w", err)
	}

	if !exist {
		return res, failure.NotFound("customer not found") // nolint:wrapcheck
	}

	feedback := req.ToModel(userID)

	if err = s.repo.Insert(ctx, feedback); err != nil {
		log.Error().Err(err).Msg("failed to create feedback")

		return res, failure.FromDatabase(fmt.Errorf("failed to create feedback: %w", err), "feedback already submitted at this time") // nolint:wrapcheck
	}

	res.FromModel(feedback)

	s.invalidate(ctx)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams) (res dto.GetFeedbacksResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.SortBy == constant.Empty {
		req.SortBy = model.TableName + "." + model.FieldTimeComment
		req.SortDir = gDto.SortDirDesc
	}

	filter := gDto.FilterGroup{}
	cacheKey := shared.BuildCacheKeyWithQuery(CacheGetAllFeedback, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for feedbacks")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count feedbacks")

		return res, fmt.Errorf("failed to count feedbacks: %w", err)
	}

	feedbacks, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get feedbacks")

		return res, fmt.Errorf("failed to get feedbacks: %w", err)
	}

	res.FromModels(feedbacks, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save feedbacks to cache")
		}
	}()

	return res, nil
}

// Delete removes the caller's feedback posted at req.TimeComment. Feedback of other users is reported as missing.
func (s *serviceImpl) Delete(ctx context.Context, req dto.DeleteFeedbackRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	timeComment, err := shared.ParseDate(req.TimeComment)
	if err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	feedback, err := s.repo.Get(ctx, shared.FilterByFields(model.TableName, map[string]any{
		model.FieldUserID:      userID,
		model.FieldTimeComment: timeComment,
	}))
	if err != nil {
		log.Error().Err(err).Msg("failed to get feedback")

		return fmt.Errorf("failed to get feedback: %w", err)
	}

	if feedback.ID == constant.Empty {
		return failure.NotFound("feedback not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(feedback.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete feedback")

		return fmt.Errorf("failed to delete feedback: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, CacheGetAllFeedback)
	}()
}
