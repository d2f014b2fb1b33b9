package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk/infras/otel/mocks"
)

type roomSummary struct {
	Number string `json:"number"`
	Floor  int    `json:"floor"`
}

func TestEncodeDecode(t *testing.T) {
	raw, err := encode(roomSummary{Number: "204", Floor: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"number":"204","floor":2}`, string(raw))

	var got roomSummary
	require.NoError(t, decode(raw, &got))
	assert.Equal(t, roomSummary{Number: "204", Floor: 2}, got)

	raw, err = encode("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", string(raw))

	var s string
	require.NoError(t, decode(raw, &s))
	assert.Equal(t, "plain", s)

	var count int
	require.NoError(t, decode([]byte("3"), &count))
	assert.Equal(t, 3, count)

	assert.Error(t, decode([]byte("{"), &got))

	_, err = encode(make(chan int))
	assert.Error(t, err)
}

func TestRedisCache_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	c := NewRedisCache(client, mocks.NewOtel())
	ctx := context.Background()

	var got roomSummary

	err := c.Get(ctx, "room:204", &got)
	require.Error(t, err)
	assert.False(t, errors.Is(err, Nil))

	assert.ErrorContains(t, c.Save(ctx, "room:204", roomSummary{Number: "204"}, 60), "failed to set cache value")
	assert.ErrorContains(t, c.Delete(ctx, "room:204"), "failed to delete cache value")
	assert.ErrorContains(t, c.Clear(ctx, "room*"), "failed to scan cache keys")
}

type countingCache struct {
	RedisCache
	stored map[string]int
	saved  chan string
}

func (c *countingCache) Get(_ context.Context, key string, value any) error {
	v, ok := c.stored[key]
	if !ok {
		return Nil
	}

	*(value.(*int)) = v

	return nil
}

func (c *countingCache) Save(_ context.Context, key string, _ any, _ int) error {
	c.saved <- key

	return nil
}

func TestRemember(t *testing.T) {
	c := &countingCache{stored: map[string]int{"rooms:count": 12}, saved: make(chan string, 1)}
	loads := 0
	load := func(context.Context) (int, error) {
		loads++

		return 40, nil
	}

	hit, err := Remember(context.Background(), c, "rooms:count", 60, load)
	require.NoError(t, err)
	assert.Equal(t, 12, hit)
	assert.Zero(t, loads)

	miss, err := Remember(context.Background(), c, "bookings:count", 60, load)
	require.NoError(t, err)
	assert.Equal(t, 40, miss)
	assert.Equal(t, 1, loads)

	select {
	case key := <-c.saved:
		assert.Equal(t, "bookings:count", key)
	case <-time.After(time.Second):
		t.Fatal("value was not written back")
	}

	_, err = Remember(context.Background(), c, "broken", 60, func(context.Context) (int, error) {
		return 0, errors.New("database down")
	})
	assert.EqualError(t, err, "database down")
}
