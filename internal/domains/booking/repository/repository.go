package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
)

const (
	argRequestDateIn  = "request_date_in"
	argRequestDateOut = "request_date_out"
	argBookingDayFrom = "booking_date_from"
	argBookingDayTo   = "booking_date_to"
)

type Booking interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type DetailBooking interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.DetailBooking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.DetailBooking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.DetailBooking, error)
	GetAllTx(ctx context.Context, sqltx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.DetailBooking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type detailRepositoryImpl struct {
	gRepo.Repository[model.DetailBooking]
}

func NewDetail(db *postgres.Connection, otel otel.Otel) DetailBooking {
	return &detailRepositoryImpl{
		Repository: gRepo.NewRepository[model.DetailBooking](model.DetailEntityName, model.DetailTableName, model.FieldID, db, otel),
	}
}

// OverlapFilter matches detail bookings of roomID whose [date_in, date_out) intersects [dateIn, dateOut):
// the requested start lies inside an existing stay, the requested end lies inside it, or the request
// covers it entirely. Touching intervals do not match.
func OverlapFilter(roomID string, dateIn, dateOut time.Time) gDto.FilterGroup {
	startInside := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldDateIn, ArgName: argRequestDateIn, Value: dateIn, Operator: gDto.FilterOperatorLessEq, Table: model.DetailTableName},
			gDto.Filter{Field: model.FieldDateOut, ArgName: argRequestDateIn, Value: dateIn, Operator: gDto.FilterOperatorGreater, Table: model.DetailTableName},
		},
	}

	endInside := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldDateIn, ArgName: argRequestDateOut, Value: dateOut, Operator: gDto.FilterOperatorLess, Table: model.DetailTableName},
			gDto.Filter{Field: model.FieldDateOut, ArgName: argRequestDateOut, Value: dateOut, Operator: gDto.FilterOperatorGreaterEq, Table: model.DetailTableName},
		},
	}

	contains := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldDateIn, ArgName: argRequestDateIn, Value: dateIn, Operator: gDto.FilterOperatorGreaterEq, Table: model.DetailTableName},
			gDto.Filter{Field: model.FieldDateOut, ArgName: argRequestDateOut, Value: dateOut, Operator: gDto.FilterOperatorLessEq, Table: model.DetailTableName},
		},
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq, Table: model.DetailTableName},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters:  []any{startInside, endInside, contains},
			},
		},
	}
}

// BookingDayFilter matches bookings made on the calendar day of day, i.e. booking_date in [day, day+1).
func BookingDayFilter(day time.Time) gDto.FilterGroup {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingDate, ArgName: argBookingDayFrom, Value: from, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldBookingDate, ArgName: argBookingDayTo, Value: from.AddDate(0, 0, 1), Operator: gDto.FilterOperatorLess, Table: model.TableName},
		},
	}
}
