package shared_test

import (
	"context"
	"errors"
	"testing"

	"frontdesk/shared"
	"frontdesk/shared/cache/mocks"
	"frontdesk/shared/constant"
	"frontdesk/shared/dto"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestConvertString(t *testing.T) {
	assert.Nil(t, shared.ConvertStringToBool(""))
	assert.Nil(t, shared.ConvertStringToBool("maybe"))
	assert.True(t, *shared.ConvertStringToBool("true"))
	assert.False(t, *shared.ConvertStringToBool("0"))

	floor, err := shared.ConvertStringToInt(" 12 ")
	assert.NoError(t, err)
	assert.Equal(t, 12, floor)

	_, err = shared.ConvertStringToInt("twelve")
	assert.Error(t, err)

	price, err := shared.ConvertStringToFloat("150.50")
	assert.NoError(t, err)
	assert.InDelta(t, 150.5, price, 0.0001)

	_, err = shared.ConvertStringToFloat("")
	assert.Error(t, err)
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{total: 0, limit: 10, want: 1},
		{total: 10, limit: 0, want: 1},
		{total: 10, limit: 10, want: 1},
		{total: 11, limit: 10, want: 2},
		{total: 95, limit: 20, want: 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestTransformFields(t *testing.T) {
	type updateRoom struct {
		Number   string  `db:"number"`
		Floor    int     `db:"floor"`
		Price    float64 `db:"price"`
		Active   *bool   `db:"active"`
		Internal string
	}

	inactive := false

	fields := shared.TransformFields(updateRoom{Number: "101", Active: &inactive, Internal: "ignored"}, "U1")

	assert.Equal(t, "101", fields["number"])
	assert.Equal(t, &inactive, fields["active"])
	assert.NotContains(t, fields, "floor")
	assert.NotContains(t, fields, "price")
	assert.NotContains(t, fields, "Internal")
	assert.Equal(t, "U1", fields[constant.FieldModifiedBy])
	assert.Contains(t, fields, constant.FieldModifiedAt)
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("R1", "id", "rooms")
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(rooms.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "R1"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get:R1", shared.BuildCacheKey("room:get", "R1"))

	filter := dto.FilterGroup{Filters: []any{
		dto.Filter{Field: "status", Value: "occupied", Operator: dto.FilterOperatorEq},
		dto.Filter{Field: "floor", Value: 3, Operator: dto.FilterOperatorEq},
	}}
	params := dto.QueryParams{Page: 2, Limit: 10, SortBy: "number", SortDir: dto.SortDirAsc}

	first := shared.BuildCacheKeyWithQuery("room:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("room:gets", params, filter)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "floor=3,status=occupied")
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("room:gets", dto.QueryParams{Page: 3, Limit: 10}, filter))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "room:gets*").Return(nil)
	redisCache.EXPECT().Clear(gomock.Any(), "room:count*").Return(errors.New("redis down"))

	shared.InvalidateCaches(context.Background(), redisCache, "room:gets")
	shared.InvalidateCaches(context.Background(), redisCache, "room:count")
}
