package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/billing/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

type Bill interface {
	Insert(ctx context.Context, model model.Bill) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Bill, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Bill, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type Discount interface {
	Insert(ctx context.Context, model model.Discount) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Discount, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Discount, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Bill]
}

func New(db *postgres.Connection, otel otel.Otel) Bill {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Bill](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type discountRepositoryImpl struct {
	gRepo.Repository[model.Discount]
}

func NewDiscount(db *postgres.Connection, otel otel.Otel) Discount {
	return &discountRepositoryImpl{
		Repository: gRepo.NewRepository[model.Discount](model.DiscountEntityName, model.DiscountTableName, model.FieldID, db, otel),
	}
}
