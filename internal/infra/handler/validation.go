package handler

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/KasumiMercury/primind-reminder-dispatch/internal/domain"
)

// RegisterValidators installs the custom binding tags used by request types.
// It must run before the router serves traffic.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	if err := v.RegisterValidation("time_of_day", validateTimeOfDay); err != nil {
		return fmt.Errorf("register time_of_day validation: %w", err)
	}

	return nil
}

func validateTimeOfDay(fl validator.FieldLevel) bool {
	_, err := domain.ParseTimeOfDay(fl.Field().String())

	return err == nil
}
