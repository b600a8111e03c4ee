// Package validation wraps go-playground/validator with the custom rules
// used by request models.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"assay-backend/internal/apperr"
	"assay-backend/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Numeric tags (gt, gte) compare decimals as floats.
	validate.RegisterCustomTypeFunc(func(v reflect.Value) any {
		if d, ok := v.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	_ = validate.RegisterValidation("money", validMoney)
	_ = validate.RegisterValidation("paymentmode", func(fl validator.FieldLevel) bool {
		return models.PaymentMode(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("certstatus", func(fl validator.FieldLevel) bool {
		return models.CertificateStatus(fl.Field().String()).Valid()
	})
}

// validMoney accepts decimals that fit a money column without rounding.
// The custom type func hands the field over as a float, so the exact
// decimal is read back from the parent struct.
func validMoney(fl validator.FieldLevel) bool {
	parent := reflect.Indirect(fl.Parent())
	if parent.Kind() != reflect.Struct {
		return false
	}
	f := reflect.Indirect(parent.FieldByName(fl.StructFieldName()))
	if !f.IsValid() {
		return true
	}
	d, ok := f.Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return models.FitsMoney(d)
}

// Struct validates s and returns an apperr validation error describing
// every failing field.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Internal("validation", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), describe(fe)))
	}
	return apperr.Validation("%s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min":
		return fmt.Sprintf("must have at least %s character(s)", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "money":
		return "must have at most 2 decimal places and be less than 1000000000000"
	case "paymentmode":
		return fmt.Sprintf("must be one of %v", models.PaymentModes)
	case "certstatus":
		return "must be one of [pending, completed, cancelled]"
	}
	return fmt.Sprintf("failed %q", fe.Tag())
}
