package testkit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockStore is a testify mock of cache.Store.
//
// For Get, pass the value the cache should hold as the first return
// argument; it is JSON-copied into dest. A nil value is a miss.
//
//	store := new(testkit.MockStore)
//	store.On("Get", mock.Anything, "catalog:products", mock.Anything).Return(products).Once()
//	store.On("Set", mock.Anything, "catalog:products", mock.Anything, time.Minute).Return(nil)
//	defer store.AssertExpectations(t)
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, key string, dest interface{}) bool {
	args := m.Called(ctx, key, dest)
	held := args.Get(0)
	if held == nil {
		return false
	}
	raw, err := json.Marshal(held)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (m *MockStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockStore) Del(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *MockStore) Driver() string { return "mock" }
