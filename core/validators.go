package core

import (
	"reflect"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// custom validation tags & texts
	notBlankTag = "notblank"

	requiredTag     = "required"
	requiredWithTag = "required_with"

	// per locale texts; {0} is the field and {1} the tag param
	customTexts = map[string]map[string]string{
		"en": {
			notBlankTag:     "this field cannot be blank",
			requiredTag:     "this field is required",
			requiredWithTag: "this field is required",
		},
		"ar": {
			notBlankTag:     "لا يمكن ترك هذا الحقل فارغا",
			requiredTag:     "هذا الحقل مطلوب",
			requiredWithTag: "هذا الحقل مطلوب",
			"email":         "{0} يجب أن يكون بريدا إلكترونيا صالحا",
			"oneof":         "{0} يجب أن يكون واحدا من [{1}]",
			"eqfield":       "{0} يجب أن يساوي {1}",
			"min":           "{0} قصير جدا",
			"max":           "{0} طويل جدا",
			"gte":           "{0} يجب أن يكون {1} أو أكثر",
			"lte":           "{0} يجب أن يكون {1} أو أقل",
		},
	}
)

// InitValidators instantiates the validator for use.
// English translators get the library's default texts; every translator gets the custom texts
// of its locale (English ones when the locale has none).
func InitValidators(validate *validator.Validate, translators ...ut.Translator) {
	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)

	for _, translator := range translators {
		texts, ok := customTexts[translator.Locale()]
		if !ok || translator.Locale() == "en" {
			_ = en_translations.RegisterDefaultTranslations(validate, translator)
			texts = customTexts["en"]
		}
		for tag, text := range texts {
			RegisterCustomTranslation(validate, translator, tag, text, true)
		}
	}
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field(), fe.Param())
			return s
		},
	)
}

// Custom Global Validators

// notBlankValidation rejects strings made of whitespace only.
func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}
