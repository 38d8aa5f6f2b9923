// Package iocache persists the popup record and the scoring history.
package iocache

import (
	"sync"

	"github.com/huangsam/cvsspop/internal/contract"
)

// StoreManagerImpl manages the state and history stores.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointers during initialization
	state        contract.StateStore
	history      contract.HistoryStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetStateStore returns the popup StateStore.
func (mgr *StoreManagerImpl) GetStateStore() contract.StateStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.state
}

// GetHistoryStore returns the HistoryStore, or nil when history is disabled.
func (mgr *StoreManagerImpl) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
