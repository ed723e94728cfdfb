package locale

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/registrar/core"
)

// KeyLang is the storage key of the selected language.
const KeyLang = "lang"

type Lang string

const (
	Arabic  Lang = "ar"
	English Lang = "en"
)

var ErrUnknownLang = errors.New("unknown language")

func ParseLang(s string) (Lang, error) {
	switch lang := Lang(core.CleanString(s, true)); lang {
	case Arabic, English:
		return lang, nil
	default:
		return "", errors.Wrapf(ErrUnknownLang, "%q", s)
	}
}

func (l Lang) Valid() bool {
	return l == Arabic || l == English
}

// Other returns the opposite language of the bilingual pair.
func (l Lang) Other() Lang {
	if l == Arabic {
		return English
	}
	return Arabic
}

func (l Lang) BodyClass() string {
	return "lang-" + string(l)
}

// Switcher applies a language to whatever renders translated text.
type Switcher interface {
	SwitchLocale(lang Lang) error
}

// Store holds the user selected UI language.
type Store struct {
	kv       core.KVStore
	switcher Switcher
	logger   core.Logger

	mu        sync.RWMutex
	lang      Lang
	bodyClass string
}

// NewStore restores the persisted language, defaulting to defaultLang, and applies it to switcher.
func NewStore(ctx context.Context, kv core.KVStore, switcher Switcher, logger core.Logger, defaultLang Lang) (*Store, error) {
	if err := vala.BeginValidation().Validate(
		vala.IsNotNil(kv, "kv"),
		vala.IsNotNil(switcher, "switcher"),
		vala.IsNotNil(logger, "logger"),
	).Check(); err != nil {
		return nil, err
	}
	if !defaultLang.Valid() {
		defaultLang = Arabic
	}

	s := &Store{kv: kv, switcher: switcher, logger: logger, lang: defaultLang}
	data, err := kv.Get(ctx, KeyLang)
	switch {
	case err == nil:
		var stored Lang
		if err = json.Unmarshal(data, &stored); err != nil || !stored.Valid() {
			logger.Warn("discarding unreadable stored language", string(data))
		} else {
			s.lang = stored
		}
	case errors.Cause(err) != core.ErrKeyNotFound:
		return nil, errors.Wrap(err, "loading language")
	}

	if err = switcher.SwitchLocale(s.lang); err != nil {
		return nil, errors.Wrap(err, "switching locale")
	}
	return s, nil
}

func (s *Store) Lang() Lang {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lang
}

// BodyClass is the class set on the document body by the last ChangeLang; empty before that.
func (s *Store) BodyClass() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bodyClass
}

// TextDirection is "rtl" for Arabic and "ltr" otherwise.
func (s *Store) TextDirection() string {
	if s.Lang() == Arabic {
		return "rtl"
	}
	return "ltr"
}

// ChangeLang sets the given language, or toggles between Arabic and English when none is given.
// An invalid explicit value leaves the language unchanged.
func (s *Store) ChangeLang(ctx context.Context, explicit ...Lang) Lang {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(explicit) > 0 && !explicit[0].Valid() {
		s.logger.Warn("ignoring language change", errors.Wrapf(ErrUnknownLang, "%q", explicit[0]))
		return s.lang
	}

	s.bodyClass = ""
	if len(explicit) > 0 {
		s.lang = explicit[0]
	} else {
		s.lang = s.lang.Other()
	}
	s.bodyClass = s.lang.BodyClass()

	if data, err := json.Marshal(s.lang); err == nil {
		if err = s.kv.Set(ctx, KeyLang, data); err != nil {
			s.logger.Error("persisting language", errors.Wrap(err, "changing language"))
		}
	}
	if err := s.switcher.SwitchLocale(s.lang); err != nil {
		s.logger.Error("switching locale", err)
	}
	return s.lang
}
