package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

const (
	utoridRegex = `^[a-z0-9]{8}$`
	moneyRegex  = `^\d+(\.\d{1,2})?$`
)

const (
	UTORidTag = "utorid"
	MoneyTag  = "money"
)

var valid = map[string]func(fl validator.FieldLevel) bool{
	UTORidTag: ValidateUTORid,
	MoneyTag:  ValidateMoney,
}

func ValidateUTORid(fl validator.FieldLevel) bool {
	return regexp.MustCompile(utoridRegex).MatchString(fl.Field().String())
}

func ValidateMoney(fl validator.FieldLevel) bool {
	return regexp.MustCompile(moneyRegex).MatchString(fl.Field().String())
}
