package handlers

import (
	"fmt"

	"github.com/SscSPs/hrms_ledger/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the ledger's custom binding tags to gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("txnstatus", func(fl validator.FieldLevel) bool {
		return domain.TransactionStatus(fl.Field().String()).IsValid()
	}); err != nil {
		return fmt.Errorf("failed to register 'txnstatus': %w", err)
	}
	if err := v.RegisterValidation("accounttype", func(fl validator.FieldLevel) bool {
		return domain.AccountType(fl.Field().String()).IsValid()
	}); err != nil {
		return fmt.Errorf("failed to register 'accounttype': %w", err)
	}
	return nil
}
