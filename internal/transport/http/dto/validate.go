package dto

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/solarsmart/account-service/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report field names as their json tags so error meta matches the wire.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkStruct runs the validator tags and converts the first failure into a
// domain error. Tag-level rules only; cross-field rules live on the DTOs.
func checkStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return domain.ErrInvalidField("request", "invalid payload")
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return domain.ErrMissingField(fe.Field())
	case "email":
		return domain.ErrInvalidField(fe.Field(), "must be a valid email address")
	case "oneof":
		return domain.ErrInvalidField(fe.Field(), "must be one of: "+fe.Param())
	case "min":
		return domain.ErrInvalidField(fe.Field(), "must be at least "+fe.Param()+" characters")
	case "max":
		return domain.ErrInvalidField(fe.Field(), "must be at most "+fe.Param()+" characters")
	default:
		return domain.ErrInvalidField(fe.Field(), "is invalid")
	}
}
