package myredis

import (
	"context"
	"testing"
	"time"

	"microreg/apierror"
	"microreg/catalog/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, redis.UniversalClient) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewRedisUniversalClient("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func testItem(id string, created time.Time) domain.Item {
	return domain.Item{ID: id, Name: "item " + id, Price: 9.99, Description: "desc", CreatedAt: created, UpdatedAt: created}
}

func TestItemStore_CreateGet(t *testing.T) {
	ctx := context.Background()
	mr, client := setupTestRedis(t)
	store := NewItemStore(client)

	item := testItem("id-1", time.Date(2026, 2, 19, 12, 0, 0, 0, time.UTC))
	require.NoError(t, store.Create(ctx, item))
	assert.True(t, mr.Exists("item:id-1"))

	got, err := store.Get(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, item.Name, got.Name)
	assert.True(t, item.CreatedAt.Equal(got.CreatedAt))
}

func TestItemStore_Get_NotFound(t *testing.T) {
	_, client := setupTestRedis(t)
	_, err := NewItemStore(client).Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apierror.IsEntityNotFoundError(err))
}

func TestItemStore_Get_CorruptValue(t *testing.T) {
	mr, client := setupTestRedis(t)
	require.NoError(t, mr.Set("item:bad", "{not json"))

	_, err := NewItemStore(client).Get(context.Background(), "bad")
	require.Error(t, err)
	assert.True(t, apierror.IsInternalServerError(err))
}

func TestItemStore_List_NewestFirst(t *testing.T) {
	ctx := context.Background()
	_, client := setupTestRedis(t)
	store := NewItemStore(client)

	items, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	t0 := time.Date(2026, 2, 19, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Create(ctx, testItem("old", t0)))
	require.NoError(t, store.Create(ctx, testItem("new", t0.Add(time.Hour))))
	require.NoError(t, store.Create(ctx, testItem("mid", t0.Add(time.Minute))))

	items, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "new", items[0].ID)
	assert.Equal(t, "mid", items[1].ID)
	assert.Equal(t, "old", items[2].ID)
}

func TestItemStore_List_SkipsDanglingIndex(t *testing.T) {
	ctx := context.Background()
	mr, client := setupTestRedis(t)
	store := NewItemStore(client)

	t0 := time.Date(2026, 2, 19, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Create(ctx, testItem("a", t0)))
	require.NoError(t, store.Create(ctx, testItem("b", t0.Add(time.Second))))
	mr.Del("item:a")

	items, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)
}

func TestItemStore_Update(t *testing.T) {
	ctx := context.Background()
	_, client := setupTestRedis(t)
	store := NewItemStore(client)

	t0 := time.Date(2026, 2, 19, 12, 0, 0, 0, time.UTC)
	item := testItem("id-1", t0)
	require.NoError(t, store.Create(ctx, item))

	item.Name = "renamed"
	require.NoError(t, store.Update(ctx, item))
	got, err := store.Get(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)

	err = store.Update(ctx, testItem("missing", t0))
	require.Error(t, err)
	assert.True(t, apierror.IsEntityNotFoundError(err))
}

func TestItemStore_Delete(t *testing.T) {
	ctx := context.Background()
	mr, client := setupTestRedis(t)
	store := NewItemStore(client)

	require.NoError(t, store.Create(ctx, testItem("id-1", time.Date(2026, 2, 19, 12, 0, 0, 0, time.UTC))))
	require.NoError(t, store.Delete(ctx, "id-1"))
	assert.False(t, mr.Exists("item:id-1"))

	members, err := client.ZRange(ctx, createdIndexKey, 0, -1).Result()
	require.NoError(t, err)
	assert.Empty(t, members)

	err = store.Delete(ctx, "id-1")
	require.Error(t, err)
	assert.True(t, apierror.IsEntityNotFoundError(err))
}

func TestItemStore_RedisDown(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewItemStore(client)
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := store.List(ctx)
	assert.True(t, apierror.IsInternalServerError(err))
	_, err = store.Get(ctx, "id-1")
	assert.True(t, apierror.IsInternalServerError(err))
	err = store.Create(ctx, testItem("id-1", time.Now()))
	assert.True(t, apierror.IsInternalServerError(err))
}
