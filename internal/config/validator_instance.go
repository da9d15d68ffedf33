package config

import (
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	toolNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)
	apiNamePattern  = regexp.MustCompile(`^[a-z0-9-]+(\.[a-z0-9-]+)+$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("tool_name", func(fl validator.FieldLevel) bool {
			return toolNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("api_name", func(fl validator.FieldLevel) bool {
			return apiNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("scope_url", func(fl validator.FieldLevel) bool {
			raw := fl.Field().String()
			if strings.ContainsAny(raw, ", ") {
				return false
			}
			parsed, err := url.Parse(raw)
			if err != nil {
				return false
			}
			return parsed.Scheme == "https" && parsed.Host != ""
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns a configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}
