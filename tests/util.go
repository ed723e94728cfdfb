package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/registrar/core"
	inmemdb "github.com/trezcool/registrar/storage/database/inmem"
)

// Entry is one recorded log call.
type Entry struct {
	Level string
	Msg   string
	Args  []interface{}
}

// Logger records every call so tests can assert on what was logged.
type Logger struct {
	mu      sync.Mutex
	Entries []Entry
}

var _ core.Logger = (*Logger)(nil)

func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, Entry{Level: level, Msg: msg, Args: args})
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log("debug", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("info", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("warn", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("error", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) { l.log("fatal", msg, args) }

// Count returns how many entries were logged at level.
func (l *Logger) Count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	var n int
	for _, e := range l.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

func (l *Logger) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fmt.Sprintf("%+v", l.Entries)
}

func NewKVStore() core.KVStore {
	return inmemdb.NewKVRepository()
}

// ErrStorageDown is returned by a FailingKVStore.
var ErrStorageDown = errors.New("storage down")

// FailingKVStore reads from an in-memory store but fails every write.
type FailingKVStore struct {
	core.KVStore
}

func NewFailingKVStore(seed map[string][]byte) *FailingKVStore {
	kv := inmemdb.NewKVRepository()
	for k, v := range seed {
		_ = kv.Set(context.Background(), k, v)
	}
	return &FailingKVStore{KVStore: kv}
}

func (FailingKVStore) Set(context.Context, string, []byte) error {
	return ErrStorageDown
}

func (FailingKVStore) Delete(context.Context, string) error {
	return ErrStorageDown
}
