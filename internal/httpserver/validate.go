package httpserver

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"web-larek/internal/domain"
)

var registerOnce sync.Once

// registerValidators adds the larekphone and larekemail rules to gin's
// validator engine. They match the storefront form checks.
func registerValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("httpserver: unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		if err = v.RegisterValidation("larekphone", patternRule(domain.PhonePattern.MatchString)); err != nil {
			return
		}
		err = v.RegisterValidation("larekemail", patternRule(domain.EmailPattern.MatchString))
	})
	return err
}

func patternRule(match func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return match(fl.Field().String())
	}
}
