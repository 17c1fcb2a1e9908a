// Package validation checks request payloads declared with validator/v10
// struct tags and reports failures as common.ErrorValidation.
package validation

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// report fields by their json names
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Struct validates s. Missing required fields are listed as
// "missing required fields: a, b"; any other failing rule as
// "invalid fields: c".
func Struct(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return common.NewError(common.ErrorValidation, "invalid input")
	}

	var missing, invalid []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			invalid = append(invalid, fe.Field())
		}
	}

	if len(missing) > 0 {
		return common.NewError(common.ErrorValidation, "missing required fields: "+strings.Join(missing, ", "))
	}
	sort.Strings(invalid)
	return common.NewError(common.ErrorValidation, "invalid fields: "+strings.Join(invalid, ", "))
}
