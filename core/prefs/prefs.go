package prefs

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/registrar/core"
)

const (
	KeySelectedTransferUniversity = "SELECTED_TRANSFER_UNIVERSITY"

	// NoUniversity means no university was picked on the transfer screen.
	NoUniversity = -1
)

// Store keeps general UI preferences shared between screens.
type Store struct {
	kv     core.KVStore
	logger core.Logger

	mu                         sync.RWMutex
	selectedTransferUniversity int
}

func NewStore(ctx context.Context, kv core.KVStore, logger core.Logger) (*Store, error) {
	if err := vala.BeginValidation().Validate(
		vala.IsNotNil(kv, "kv"),
		vala.IsNotNil(logger, "logger"),
	).Check(); err != nil {
		return nil, err
	}

	s := &Store{kv: kv, logger: logger, selectedTransferUniversity: NoUniversity}
	data, err := kv.Get(ctx, KeySelectedTransferUniversity)
	switch {
	case err == nil:
		var id int
		if err = json.Unmarshal(data, &id); err != nil {
			logger.Warn("discarding unreadable selected transfer university", string(data))
		} else {
			s.selectedTransferUniversity = id
		}
	case errors.Cause(err) != core.ErrKeyNotFound:
		return nil, errors.Wrap(err, "loading preferences")
	}
	return s, nil
}

func (s *Store) SelectedTransferUniversity() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedTransferUniversity
}

func (s *Store) SetSelectedTransferUniversity(ctx context.Context, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedTransferUniversity = id

	data, _ := json.Marshal(id)
	if err := s.kv.Set(ctx, KeySelectedTransferUniversity, data); err != nil {
		s.logger.Error("persisting selected transfer university", errors.Wrap(err, "setting preference"))
	}
}
