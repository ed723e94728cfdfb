package inmemdb

import (
	"context"
	"sync"

	"github.com/trezcool/registrar/core"
)

type kvTable struct {
	t     map[string][]byte
	mutex sync.RWMutex
}

// kvRepository keeps values in process memory only; nothing survives a restart.
type kvRepository struct {
	db *kvTable
}

var _ core.KVStore = (*kvRepository)(nil) // interface compliance check

func NewKVRepository() *kvRepository {
	return &kvRepository{
		db: &kvTable{t: make(map[string][]byte)},
	}
}

func (repo *kvRepository) Get(_ context.Context, key string) ([]byte, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	val, ok := repo.db.t[key]
	if !ok {
		return nil, core.ErrKeyNotFound
	}
	res := make([]byte, len(val))
	copy(res, val)
	return res, nil
}

func (repo *kvRepository) Set(_ context.Context, key string, value []byte) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	val := make([]byte, len(value))
	copy(val, value)
	repo.db.t[key] = val
	return nil
}

func (repo *kvRepository) Delete(_ context.Context, key string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	delete(repo.db.t, key)
	return nil
}

// Keys lists stored keys; handy in tests.
func (repo *kvRepository) Keys() []string {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	keys := make([]string, 0, len(repo.db.t))
	for k := range repo.db.t {
		keys = append(keys, k)
	}
	return keys
}
