package locale

import (
	"sync"

	"github.com/go-playground/locales/ar"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/registrar/core"
)

// UI message keys.
const (
	MsgSuccessful    = "successful"
	MsgWarning       = "warning"
	MsgInfo          = "info"
	MsgError         = "error"
	MsgInternalError = "internalError"
	MsgNotAllowed    = "notAllowed"
	MsgNotFound      = "notFound"
)

var messages = map[Lang]map[string]string{
	English: {
		MsgSuccessful:    "Successful",
		MsgWarning:       "Warning",
		MsgInfo:          "Info",
		MsgError:         "Error",
		MsgInternalError: "An error occured please contact technical support",
		MsgNotAllowed:    "You are not allowed to access this page",
		MsgNotFound:      "Page not found",
	},
	Arabic: {
		MsgSuccessful:    "تمت العملية بنجاح",
		MsgWarning:       "تحذير",
		MsgInfo:          "معلومة",
		MsgError:         "خطأ",
		MsgInternalError: "حدث خطأ يرجى ابلاغ الدعم الفنى",
		MsgNotAllowed:    "غير مسموح لك بالدخول لهذه الصفحة",
		MsgNotFound:      "الصفحة غير موجودة",
	},
}

// Translators holds one translator per supported language and tracks the active one.
// It is the default Switcher of the locale Store.
type Translators struct {
	uni      *ut.UniversalTranslator
	validate *validator.Validate

	mu     sync.RWMutex
	active Lang
}

var _ Switcher = (*Translators)(nil)

// NewTranslators builds the Arabic and English translators and registers validation texts
// for both on validate.
func NewTranslators(validate *validator.Validate) (*Translators, error) {
	enLocale := en.New()
	uni := ut.New(enLocale, ar.New())

	var translators []ut.Translator
	for _, lang := range []Lang{English, Arabic} {
		trans, found := uni.GetTranslator(string(lang))
		if !found {
			return nil, errors.Errorf("missing %s translator", lang)
		}
		for key, text := range messages[lang] {
			if err := trans.Add(key, text, false); err != nil {
				return nil, errors.Wrapf(err, "adding %s message %q", lang, key)
			}
		}
		translators = append(translators, trans)
	}
	core.InitValidators(validate, translators...)

	return &Translators{uni: uni, validate: validate, active: Arabic}, nil
}

func (t *Translators) SwitchLocale(lang Lang) error {
	if !lang.Valid() {
		return errors.Wrapf(ErrUnknownLang, "%q", lang)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = lang
	return nil
}

func (t *Translators) Locale() Lang {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active
}

// Translator returns the translator of lang, or of the active language when lang is empty.
func (t *Translators) Translator(lang ...Lang) ut.Translator {
	l := t.Locale()
	if len(lang) > 0 && lang[0].Valid() {
		l = lang[0]
	}
	trans, _ := t.uni.GetTranslator(string(l))
	return trans
}

// T translates a UI message key in lang (the active language by default), returning the key
// itself when unknown.
func (t *Translators) T(key string, lang ...Lang) string {
	s, err := t.Translator(lang...).T(key)
	if err != nil || s == "" {
		return key
	}
	return s
}

// TranslateErrors renders validation errors in the active language, keyed by field name.
func (t *Translators) TranslateErrors(errs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(errs))
	trans := t.Translator()
	for _, fe := range errs {
		fields[fe.Field()] = fe.Translate(trans)
	}
	return fields
}
