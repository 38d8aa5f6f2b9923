package iocache

import (
	"github.com/huangsam/cvsspop/internal/contract"
	"github.com/huangsam/cvsspop/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetStateStore implements the StoreManager interface.
func (m *MockStoreManager) GetStateStore() contract.StateStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.StateStore)
	return store
}

// GetHistoryStore implements the StoreManager interface.
func (m *MockStoreManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockStateStore is a mock implementation of StateStore for testing.
type MockStateStore struct {
	mock.Mock
}

var _ contract.StateStore = &MockStateStore{} // Compile-time check

// Get implements the StateStore interface.
func (m *MockStateStore) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	data, _ := args.Get(0).([]byte)
	return data, args.Int(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the StateStore interface.
func (m *MockStateStore) Set(key string, data []byte, version int, ts int64) error {
	args := m.Called(key, data, version, ts)
	return args.Error(0)
}

// Delete implements the StateStore interface.
func (m *MockStateStore) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

// Close implements the StateStore interface.
func (m *MockStateStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the StateStore interface.
func (m *MockStateStore) GetStatus() (schema.StateStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StateStatus), args.Error(1)
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// Record implements the HistoryStore interface.
func (m *MockHistoryStore) Record(entry schema.HistoryEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

// List implements the HistoryStore interface.
func (m *MockHistoryStore) List(limit int) ([]schema.HistoryEntry, error) {
	args := m.Called(limit)
	entries, _ := args.Get(0).([]schema.HistoryEntry)
	return entries, args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}
