package myredis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"microreg/apierror"
	"microreg/catalog/domain"

	"github.com/go-redis/redis/v8"
)

const (
	itemKeyPrefix = "item"
	// createdIndexKey is a sorted set of item ids scored by creation time.
	createdIndexKey = "items:created"
)

// itemStore implements interfaces.ItemStore: item:{id} holds the item JSON and
// items:created orders ids by creation time.
type itemStore struct {
	client redis.UniversalClient
}

// NewItemStore creates a Redis backed item store.
func NewItemStore(client redis.UniversalClient) *itemStore {
	return &itemStore{client: client}
}

func itemKey(id string) string {
	return itemKeyPrefix + ":" + id
}

func (s *itemStore) List(ctx context.Context) ([]domain.Item, error) {
	ids, err := s.client.ZRevRange(ctx, createdIndexKey, 0, -1).Result()
	if err != nil {
		return nil, apierror.NewInternalServerError("Redis list items error", fmt.Errorf("can't read %s, err: %w", createdIndexKey, err))
	}
	items := make([]domain.Item, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, itemKey(id))
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, apierror.NewInternalServerError("Redis list items error", fmt.Errorf("can't read items, err: %w", err))
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// index entry without a value
			continue
		}
		var item domain.Item
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return nil, apierror.NewInternalServerError("Redis unmarshal item error", fmt.Errorf("can't unmarshal %s, err: %w", keys[i], err))
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *itemStore) Get(ctx context.Context, id string) (domain.Item, error) {
	data, err := s.client.Get(ctx, itemKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Item{}, apierror.NewEntityNotFoundError("item not found", err)
		}
		return domain.Item{}, apierror.NewInternalServerError("Redis get item error", fmt.Errorf("can't get item (key='%s'), err: %w", itemKey(id), err))
	}

	var item domain.Item
	if err := json.Unmarshal(data, &item); err != nil {
		return domain.Item{}, apierror.NewInternalServerError("Redis unmarshal item error", fmt.Errorf("can't unmarshal item (key='%s'), err: %w", itemKey(id), err))
	}
	return item, nil
}

func (s *itemStore) Create(ctx context.Context, item domain.Item) error {
	data, err := json.Marshal(item)
	if err != nil {
		return apierror.NewInternalServerError("Redis marshal item error", fmt.Errorf("can't marshal item, err: %w", err))
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, itemKey(item.ID), data, 0)
		pipe.ZAdd(ctx, createdIndexKey, &redis.Z{Score: float64(item.CreatedAt.UnixNano()), Member: item.ID})
		return nil
	})
	if err != nil {
		return apierror.NewInternalServerError("Redis write item error", fmt.Errorf("can't write item (key='%s'), err: %w", itemKey(item.ID), err))
	}
	return nil
}

func (s *itemStore) Update(ctx context.Context, item domain.Item) error {
	data, err := json.Marshal(item)
	if err != nil {
		return apierror.NewInternalServerError("Redis marshal item error", fmt.Errorf("can't marshal item, err: %w", err))
	}

	updated, err := s.client.SetXX(ctx, itemKey(item.ID), data, 0).Result()
	if err != nil {
		return apierror.NewInternalServerError("Redis write item error", fmt.Errorf("can't update item (key='%s'), err: %w", itemKey(item.ID), err))
	}
	if !updated {
		return apierror.NewEntityNotFoundError("item not found", nil)
	}
	return nil
}

func (s *itemStore) Delete(ctx context.Context, id string) error {
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, itemKey(id))
		pipe.ZRem(ctx, createdIndexKey, id)
		return nil
	})
	if err != nil {
		return apierror.NewInternalServerError("Redis delete item error", fmt.Errorf("can't delete item (key='%s'), err: %w", itemKey(id), err))
	}
	if del.Val() == 0 {
		return apierror.NewEntityNotFoundError("item not found", nil)
	}
	return nil
}
