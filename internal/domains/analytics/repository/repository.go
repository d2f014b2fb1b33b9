package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"frontdesk/infras/otel"
	"frontdesk/infras/postgres"
	"frontdesk/internal/domains/analytics/model"
	bookingModel "frontdesk/internal/domains/booking/model"
	paymentModel "frontdesk/internal/domains/payment/model"
	reviewModel "frontdesk/internal/domains/review/model"
	roomModel "frontdesk/internal/domains/room/model"
	"frontdesk/shared/constant"

	"github.com/Masterminds/squirrel"
)

// Analytics runs read-only aggregate queries against the read replica.
type Analytics interface {
	RoomsByStatus(ctx context.Context) ([]model.StatusCount, error)
	BookingsByStatus(ctx context.Context) ([]model.StatusCount, error)
	CountArrivals(ctx context.Context, window model.Range) (int, error)
	CountDepartures(ctx context.Context, window model.Range) (int, error)
	Revenue(ctx context.Context, window model.Range) (float64, error)
	AverageRating(ctx context.Context) (float64, error)
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Analytics {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func statusCountQuery(table string) squirrel.SelectBuilder {
	return psql.
		Select("status", "COUNT(*) AS total").
		From(table).
		GroupBy("status").
		OrderBy("status")
}

func stayEdgeQuery(column string, window model.Range) squirrel.SelectBuilder {
	return psql.
		Select("COUNT(*)").
		From(bookingModel.TableName).
		Where(squirrel.GtOrEq{column: window.From}).
		Where(squirrel.Lt{column: window.To}).
		Where(squirrel.NotEq{bookingModel.FieldStatus: bookingModel.StatusCancelled})
}

func revenueQuery(window model.Range) squirrel.SelectBuilder {
	return psql.
		Select("COALESCE(SUM(amount), 0)").
		From(paymentModel.TableName).
		Where(squirrel.Eq{paymentModel.FieldStatus: paymentModel.StatusPaid}).
		Where(squirrel.GtOrEq{paymentModel.FieldPaidAt: window.From}).
		Where(squirrel.Lt{paymentModel.FieldPaidAt: window.To})
}

func averageRatingQuery() squirrel.SelectBuilder {
	return psql.
		Select("COALESCE(AVG(rating), 0)").
		From(reviewModel.TableName)
}

func (repo *repositoryImpl) selectCounts(ctx context.Context, name string, builder squirrel.SelectBuilder) (res []model.StatusCount, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".analytics."+name)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", name, err)
	}

	if err = repo.db.Read.SelectContext(ctx, &res, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", name, err)
	}

	return res, nil
}

func scalar[T any](ctx context.Context, repo *repositoryImpl, name string, builder squirrel.SelectBuilder) (res T, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".analytics."+name)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query, args, err := builder.ToSql()
	if err != nil {
		return res, fmt.Errorf("failed to build %s query: %w", name, err)
	}

	if err = repo.db.Read.GetContext(ctx, &res, query, args...); err != nil {
		return res, fmt.Errorf("failed to query %s: %w", name, err)
	}

	return res, nil
}

func (repo *repositoryImpl) RoomsByStatus(ctx context.Context) ([]model.StatusCount, error) {
	return repo.selectCounts(ctx, "RoomsByStatus", statusCountQuery(roomModel.TableName))
}

func (repo *repositoryImpl) BookingsByStatus(ctx context.Context) ([]model.StatusCount, error) {
	return repo.selectCounts(ctx, "BookingsByStatus", statusCountQuery(bookingModel.TableName))
}

func (repo *repositoryImpl) CountArrivals(ctx context.Context, window model.Range) (int, error) {
	return scalar[int](ctx, repo, "CountArrivals", stayEdgeQuery(bookingModel.FieldCheckinAt, window))
}

func (repo *repositoryImpl) CountDepartures(ctx context.Context, window model.Range) (int, error) {
	return scalar[int](ctx, repo, "CountDepartures", stayEdgeQuery(bookingModel.FieldCheckoutAt, window))
}

func (repo *repositoryImpl) Revenue(ctx context.Context, window model.Range) (float64, error) {
	return scalar[float64](ctx, repo, "Revenue", revenueQuery(window))
}

func (repo *repositoryImpl) AverageRating(ctx context.Context) (float64, error) {
	return scalar[float64](ctx, repo, "AverageRating", averageRatingQuery())
}
