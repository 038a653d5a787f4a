// Package bind decodes and validates JSON request bodies
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "eshoppers/internal/platform/errors"
	"eshoppers/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/shopspring/decimal"
)

// DefaultMaxBytes caps a request body
const DefaultMaxBytes int64 = 1 << 20

// Validator pairs the validator with its english translator
type Validator struct {
	V     *validator.Validate
	Trans ut.Translator
}

var (
	vOnce sync.Once
	vInst *Validator
)

// Get returns the process wide validator, built on first use
// field names in messages are the json names
func Get() *Validator {
	vOnce.Do(func() { vInst = build() })
	return vInst
}

func build() *Validator {
	loc := en.New()
	trans, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)

	// decimals validate as their canonical text
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		if d, ok := f.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("money", money)

	_ = en_translations.RegisterDefaultTranslations(v, trans)
	translate(v, trans, "min", "{0} must be at least {1}")
	translate(v, trans, "max", "{0} must be at most {1}")
	translate(v, trans, "notblank", "{0} must not be blank")
	translate(v, trans, "money", "{0} must be a non negative amount")

	return &Validator{V: v, Trans: trans}
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// money accepts a decimal string that is zero or more
func money(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && !d.IsNegative()
}

// translate registers msg for tag, {0} is the field and {1} the tag param
func translate(v *validator.Validate, trans ut.Translator, tag, msg string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, msg, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field(), fe.Param())
			return s
		},
	)
}

// Struct validates v and returns the first failure as a validation error on its field
func Struct(v any) error {
	err := Get().V.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return perr.Invalidf(fieldPath(fe), "%s", fe.Translate(Get().Trans))
	}
	logger.Get().Error().Err(err).Msg("validator rejected the value itself")
	return perr.JSONErrf("validation error")
}

// fieldPath is the json path of the failing field without the root type
// products[1].name, not ImportInput.products[1].name
// embedded structs keep their go name in the namespace and json flattens them, so they are dropped
func fieldPath(fe validator.FieldError) string {
	ns := strings.Split(fe.Namespace(), ".")
	gs := strings.Split(fe.StructNamespace(), ".")
	if len(ns) < 2 || len(ns) != len(gs) {
		return fe.Field()
	}
	out := make([]string, 0, len(ns)-1)
	for i := 1; i < len(ns); i++ {
		if i < len(ns)-1 && ns[i] == gs[i] {
			continue
		}
		out = append(out, ns[i])
	}
	return strings.Join(out, ".")
}

// Options tunes ParseJSON
type Options struct {
	MaxBytes     int64 // DefaultMaxBytes when zero
	AllowUnknown bool
	// AllowEmpty returns the zero value for an empty body on any method
	AllowEmpty bool
}

// ParseJSON decodes the body into T and validates it
// empty bodies are accepted for GET, HEAD, DELETE and OPTIONS
func ParseJSON[T any](r *http.Request, opts ...Options) (T, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Warn().Err(err).Msg("close request body")
		}
	}()

	var zero T
	body, err := io.ReadAll(io.LimitReader(r.Body, o.MaxBytes+1))
	if err != nil {
		return zero, perr.Wrap(err, perr.ErrorCodeJSON, "read body")
	}
	if int64(len(body)) > o.MaxBytes {
		return zero, perr.JSONErrf("body exceeds %d bytes", o.MaxBytes)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		if o.AllowEmpty || emptyOK(r.Method) {
			return zero, nil
		}
		return zero, perr.JSONErrf("empty body")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	if !o.AllowUnknown {
		dec.DisallowUnknownFields()
	}
	var dst T
	if err := dec.Decode(&dst); err != nil {
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := Struct(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

func emptyOK(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}
