package auth

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/registrar/core"
)

var (
	// password policy
	pwdMinLen    = 8
	pwdMinLenTag = "pwdminlen"

	pwdMaxLenTag = "pwdmaxlen"

	pwdNoSpaceTag = "pwdnospace"

	pwdNotAllNumTag = "pwdnotallnum"

	pwdComplexityTag = "pwdcplx"
	specialRegex     = regexp.MustCompile("[^A-Za-z0-9]")

	pwdMaxSim     = .7
	pwdAttrSimTag = "pwdtoosim"

	policyTexts = map[string]map[string]string{
		"en": {
			pwdMinLenTag:     fmt.Sprintf("password must contain at least %d characters", pwdMinLen),
			pwdMaxLenTag:     fmt.Sprintf("password must contain at most %d characters", maxFieldLen),
			pwdNoSpaceTag:    "password must not contain whitespace",
			pwdNotAllNumTag:  "password cannot be entirely numeric",
			pwdComplexityTag: "password must contain at least 1 uppercase character, 1 lowercase character, 1 digit and 1 special character",
			pwdAttrSimTag:    "password cannot be similar to your email",
		},
		"ar": {
			pwdMinLenTag:     fmt.Sprintf("يجب أن تتكون كلمة المرور من %d أحرف على الأقل", pwdMinLen),
			pwdMaxLenTag:     fmt.Sprintf("يجب ألا تزيد كلمة المرور عن %d حرفا", maxFieldLen),
			pwdNoSpaceTag:    "يجب ألا تحتوي كلمة المرور على مسافات",
			pwdNotAllNumTag:  "لا يمكن أن تكون كلمة المرور أرقاما فقط",
			pwdComplexityTag: "يجب أن تحتوي كلمة المرور على حرف كبير وحرف صغير ورقم ورمز خاص على الأقل",
			pwdAttrSimTag:    "لا يمكن أن تشبه كلمة المرور بريدك الإلكتروني",
		},
	}
)

// RegisterValidators registers the password policy on validate, with its texts on every translator.
func RegisterValidators(validate *validator.Validate, translators ...ut.Translator) {
	validate.RegisterStructValidation(passwordResetStructValidation, PasswordResetRequest{})
	for _, trans := range translators {
		texts, ok := policyTexts[trans.Locale()]
		if !ok {
			texts = policyTexts["en"]
		}
		for tag, text := range texts {
			core.RegisterCustomTranslation(validate, trans, tag, text)
		}
	}
}

// passwordResetStructValidation does struct level validation on PasswordResetRequest.
func passwordResetStructValidation(sl validator.StructLevel) {
	if req, ok := sl.Current().Interface().(PasswordResetRequest); ok && req.Password != "" {
		validatePassword(req.Password, req.Email, sl)
	}
}

// validatePassword applies the password policy to provided password:
// - minLen: 8, maxLen: 50
// - no whitespace
// - no all numeric
// - complexity: 1 upper, 1 lower, 1 digit, 1 special
// - no email similarity
func validatePassword(pwd, email string, sl validator.StructLevel) {
	reportErr := func(tag string) {
		sl.ReportError(pwd, "password", "Password", tag, "")
	}

	var (
		digitCount         int
		hasUpper, hasLower bool
	)

	chars := []rune(pwd)
	pwdLen := len(chars)
	if pwdLen < pwdMinLen {
		reportErr(pwdMinLenTag)
		return
	}
	if pwdLen > maxFieldLen {
		reportErr(pwdMaxLenTag)
		return
	}
	for _, char := range chars {
		if unicode.IsSpace(char) {
			reportErr(pwdNoSpaceTag)
			return
		}
		if unicode.IsDigit(char) {
			digitCount++
		}
		if !hasUpper && unicode.IsUpper(char) {
			hasUpper = true
		}
		if !hasLower && unicode.IsLower(char) {
			hasLower = true
		}
	}

	if digitCount == pwdLen {
		reportErr(pwdNotAllNumTag)
		return
	}

	if !(hasUpper && hasLower && digitCount > 0 && specialRegex.MatchString(pwd)) {
		reportErr(pwdComplexityTag)
		return
	}

	if email != "" {
		local := strings.SplitN(strings.ToLower(email), "@", 2)[0]
		for _, attr := range []string{strings.ToLower(email), local} {
			ratio := difflib.NewMatcher(strings.Split(strings.ToLower(pwd), ""), strings.Split(attr, "")).QuickRatio()
			if ratio >= pwdMaxSim {
				reportErr(pwdAttrSimTag)
				return
			}
		}
	}
}
