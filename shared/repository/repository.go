// Package repository is the generic Postgres table gateway every domain repository embeds.
//
// Statements are assembled with squirrel. Filters render as named clauses
// (see dto.FilterGroup) and are bound through sqlx before execution, so the
// same FilterGroup can be asserted on in tests and executed here.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"slices"

	"frontdesk/infras/otel"
	"frontdesk/infras/postgres"
	"frontdesk/shared/constant"
	"frontdesk/shared/dto"
	"frontdesk/shared/logger"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var errRequiredFilter = errors.New("required filter")

type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []string
}

func NewRepository[T any](entity, table, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) *Repository[T] {
	var zero T

	return &Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         table,
		entity:        entity,
		primaryColumn: primaryColumn,
		columns:       dbColumns(reflect.TypeOf(zero)),
	}
}

func (repo *Repository[T]) scope(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, op))
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	ctx, scope := repo.scope(ctx, "Insert")
	defer scope.End()

	values := make([]any, len(repo.columns))
	for i, col := range repo.columns {
		values[i] = squirrel.Expr(":" + col)
	}

	query, _, err := squirrel.Insert(repo.table).Columns(repo.columns...).Values(values...).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert (%s): %w", repo.entity, err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err = repo.db.Write.NamedExecContext(ctx, query, model); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert data (%s): %w", repo.entity, err)
	}

	return nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.scope(ctx, "Exist")
	defer scope.End()

	where, args := filter.GetWhereClause()
	if where == "" {
		return false, errRequiredFilter
	}

	builder := squirrel.Select("1").From(repo.table).Where(where).
		Prefix("SELECT EXISTS(").Suffix(")")

	var exist bool

	if err := repo.get(ctx, scope, &exist, builder, args); err != nil {
		return false, fmt.Errorf("failed to check exist data (%s): %w", repo.entity, err)
	}

	return exist, nil
}

// Get returns the zero T when no row matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.scope(ctx, "Get")
	defer scope.End()

	where, args := filter.GetWhereClause()

	builder := squirrel.Select(repo.selectColumns(columns)...).From(repo.table).Limit(1)
	if where != "" {
		builder = builder.Where(where)
	}

	var model T

	err := repo.get(ctx, scope, &model, builder, args)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		return model, fmt.Errorf("failed to get data (%s): %w", repo.entity, err)
	}

	return model, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.scope(ctx, "GetAll")
	defer scope.End()

	where, args := filter.GetWhereClause()

	builder := squirrel.Select(repo.selectColumns(columns)...).From(repo.table)
	if where != "" {
		builder = builder.Where(where)
	}

	if slices.Contains(repo.columns, params.SortBy) {
		dir := dto.SortDirAsc
		if params.SortDir == dto.SortDirDesc {
			dir = dto.SortDirDesc
		}

		builder = builder.OrderBy(params.SortBy + " " + dir)
	}

	if params.Limit > 0 {
		builder = builder.Limit(uint64(params.Limit))

		if offset := params.Offset(); offset > 0 {
			builder = builder.Offset(uint64(offset))
		}
	}

	query, bound, err := repo.bind(builder, args)
	if err != nil {
		return nil, fmt.Errorf("failed to build query (%s): %w", repo.entity, err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var models []T

	if err = repo.db.Read.SelectContext(ctx, &models, query, bound...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to get all data (%s): %w", repo.entity, err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.scope(ctx, "Count")
	defer scope.End()

	where, args := filter.GetWhereClause()

	builder := squirrel.Select(fmt.Sprintf("COUNT(%s.%s)", repo.table, repo.primaryColumn)).From(repo.table)
	if where != "" {
		builder = builder.Where(where)
	}

	var count int

	if err := repo.get(ctx, scope, &count, builder, args); err != nil {
		return 0, fmt.Errorf("failed to count data (%s): %w", repo.entity, err)
	}

	return count, nil
}

// Update sets the columns in mod on every row matching filter. An empty filter is rejected.
func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Update")
	defer scope.End()

	where, args := filter.GetWhereClause()
	if where == "" {
		return errRequiredFilter
	}

	set := make(map[string]any, len(mod))

	for col, value := range mod {
		arg := "set_" + col
		set[col] = squirrel.Expr(":" + arg)
		args[arg] = value
	}

	query, _, err := squirrel.Update(repo.table).SetMap(set).Where(where).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update (%s): %w", repo.entity, err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err = repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update data (%s): %w", repo.entity, err)
	}

	return nil
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Delete")
	defer scope.End()

	where, args := filter.GetWhereClause()
	if where == "" {
		return errRequiredFilter
	}

	query, _, err := squirrel.Delete(repo.table).Where(where).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete (%s): %w", repo.entity, err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err = repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to delete data (%s): %w", repo.entity, err)
	}

	return nil
}

func (repo *Repository[T]) get(ctx context.Context, scope otel.Scope, dest any, builder squirrel.SelectBuilder, named map[string]any) error {
	query, args, err := repo.bind(builder, named)
	if err != nil {
		return err
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.GetContext(ctx, dest, query, args...)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		logger.ErrorWithStack(err)
		scope.TraceError(err)
	}

	return err //nolint:wrapcheck
}

// bind renders builder and resolves its :named parameters into positional Postgres ones.
func (repo *Repository[T]) bind(builder squirrel.SelectBuilder, named map[string]any) (string, []any, error) {
	query, _, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build query: %w", err)
	}

	query, args, err := sqlx.Named(query, named)
	if err != nil {
		return "", nil, fmt.Errorf("failed to bind query: %w", err)
	}

	return repo.db.Read.Rebind(query), args, nil
}

func (repo *Repository[T]) selectColumns(only []string) []string {
	columns := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col) {
			continue
		}

		columns = append(columns, repo.table+"."+col)
	}

	return columns
}

// dbColumns lists the db tags of t, descending into embedded structs such as model.Metadata.
func dbColumns(t reflect.Type) []string {
	var columns []string

	for i := range t.NumField() {
		field := t.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, dbColumns(field.Type)...)

			continue
		}

		if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
			columns = append(columns, tag)
		}
	}

	return columns
}
