package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"frontdesk/infras/otel"
	"frontdesk/infras/postgres"
	"frontdesk/internal/domains/promotion/model"
	gDto "frontdesk/shared/dto"
	gRepo "frontdesk/shared/repository"
)

// Promotion stores discount codes.
type Promotion interface {
	Insert(ctx context.Context, model model.Promotion) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Promotion, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Promotion, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

func New(db *postgres.Connection, otel otel.Otel) Promotion {
	return gRepo.NewRepository[model.Promotion](model.EntityName, model.TableName, model.FieldID, db, otel)
}
