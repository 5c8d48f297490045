// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type passwordFixture struct {
	Password string `validate:"strong_password"`
}

type usernameFixture struct {
	Username string `validate:"username"`
}

type currencyFixture struct {
	Currency string `validate:"currency"`
}

func TestStrongPasswordValidation(t *testing.T) {
	valid := []string{"Str0ng!pass", "K-pop4Ever!", "Aa1!aaaa"}
	for _, p := range valid {
		assert.NoError(t, ValidateStruct(&passwordFixture{Password: p}), "password=%q", p)
	}

	invalid := []string{"", "2short!", "alllowercase1!", "ALLUPPERCASE1!", "NoNumbers!", "NoSpecial1A"}
	for _, p := range invalid {
		assert.Error(t, ValidateStruct(&passwordFixture{Password: p}), "password=%q", p)
	}
}

func TestUsernameValidation(t *testing.T) {
	assert.NoError(t, ValidateStruct(&usernameFixture{Username: "kpop_trader_99"}))
	assert.NoError(t, ValidateStruct(&usernameFixture{Username: "abc"}))

	assert.Error(t, ValidateStruct(&usernameFixture{Username: "ab"}))
	assert.Error(t, ValidateStruct(&usernameFixture{Username: "has spaces"}))
	assert.Error(t, ValidateStruct(&usernameFixture{Username: "bad-dash"}))
}

func TestCurrencyValidation(t *testing.T) {
	for _, c := range []string{"EUR", "USD", "KRW", "eur"} {
		assert.NoError(t, ValidateStruct(&currencyFixture{Currency: c}), "currency=%q", c)
	}
	for _, c := range []string{"GBP", "JPY", "won"} {
		assert.Error(t, ValidateStruct(&currencyFixture{Currency: c}), "currency=%q", c)
	}
}

func TestGetValidationErrors(t *testing.T) {
	err := ValidateStruct(&usernameFixture{Username: "!"})
	errs := GetValidationErrors(err)
	assert.Len(t, errs, 1)
	assert.Equal(t, "username", errs[0].Field)
	assert.Equal(t, "username", errs[0].Tag)
	assert.NotEmpty(t, errs[0].Message)
}
