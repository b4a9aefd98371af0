package validator

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/jwalitptl/therapy-portal/pkg/errors"
)

// PhoneDigits is the length of a local phone number.
const PhoneDigits = 8

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{8}$`)
	clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)
	nonDigits    = regexp.MustCompile(`\D`)
)

// FieldErrors maps a field's wire name to a user-facing message.
type FieldErrors map[string]string

// Err converts a non-empty set into a validation AppError.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return apperrors.Validation("Por favor completa todos los campos correctamente", f)
}

// Validator wraps a go-playground engine with the portal's custom rules.
type Validator struct {
	engine *validator.Validate
	now    func() time.Time
}

// New returns a validator with phone8, simple_email, past_date, clock,
// weekday and material_category registered.
func New() *Validator {
	v := &Validator{
		engine: validator.New(validator.WithRequiredStructEnabled()),
		now:    time.Now,
	}

	v.engine.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	mustRegister(v.engine, "phone8", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v.engine, "simple_email", func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})
	mustRegister(v.engine, "past_date", func(fl validator.FieldLevel) bool {
		d, err := time.ParseInLocation("2006-01-02", fl.Field().String(), time.Local)
		if err != nil {
			return false
		}
		y, m, day := v.now().Date()
		return d.Before(time.Date(y, m, day, 0, 0, 0, 0, time.Local))
	})
	mustRegister(v.engine, "clock", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
	mustRegister(v.engine, "weekday", func(fl validator.FieldLevel) bool {
		switch strings.ToUpper(fl.Field().String()) {
		case "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY":
			return true
		}
		return false
	})
	mustRegister(v.engine, "material_category", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "EJERCICIOS", "GUIAS", "ACTIVIDADES", "INFORMACION", "EVALUACIONES", "OTROS":
			return true
		}
		return false
	})

	return v
}

func mustRegister(engine *validator.Validate, tag string, fn validator.Func) {
	if err := engine.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Engine exposes the underlying engine, e.g. for gin's binding.
func (v *Validator) Engine() *validator.Validate {
	return v.engine
}

// Validate checks obj against its struct tags and renders every failure
// through rules. The first failing tag per field wins.
func (v *Validator) Validate(obj interface{}, rules Ruleset) FieldErrors {
	errs := FieldErrors{}

	err := v.engine.Struct(obj)
	if err == nil {
		return errs
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["_"] = err.Error()
		return errs
	}

	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := errs[field]; seen {
			continue
		}
		errs[field] = rules.Message(field, fe.Tag())
	}
	return errs
}

// NormalizePhone keeps digits only and clips to PhoneDigits.
func NormalizePhone(s string) string {
	digits := nonDigits.ReplaceAllString(s, "")
	if len(digits) > PhoneDigits {
		digits = digits[:PhoneDigits]
	}
	return digits
}

// IsEmail applies the permissive something@something.something check.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}
