// internal/console/validate.go

package console

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	nameRe    = regexp.MustCompile(`^[A-Za-z ]{2,}$`)
	contactRe = regexp.MustCompile(`^\d{10,13}$`)
	emailRe   = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	accountRe = regexp.MustCompile(`(?i)^ACC\d{3}$`)
)

// 驗證錯誤一律小寫開頭、不加句點；輸出時由 sentence 補齊。
const (
	minAge = 18
	maxAge = 70
)

func validName(s string) error {
	if !nameRe.MatchString(s) {
		return errors.New("name must contain only letters and spaces (at least 2 characters)")
	}
	return nil
}

func validAge(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return errors.New("invalid input, enter a whole number")
	}
	if n < minAge || n > maxAge {
		return fmt.Errorf("value must be between %d and %d", minAge, maxAge)
	}
	return nil
}

func validContact(s string) error {
	if !contactRe.MatchString(s) {
		return errors.New("phone must be 10-13 digits")
	}
	return nil
}

func validEmail(s string) error {
	if !emailRe.MatchString(s) {
		return errors.New("invalid email format, e.g. name@gmail.com")
	}
	return nil
}

func validAccount(s string) error {
	if !accountRe.MatchString(s) {
		return fmt.Errorf("invalid account number format %q (e.g. ACC001)", s)
	}
	return nil
}

func oneOf(opts ...string) func(string) error {
	return func(s string) error {
		for _, o := range opts {
			if strings.EqualFold(s, o) {
				return nil
			}
		}
		return fmt.Errorf("choose one of: %s", strings.Join(opts, ", "))
	}
}

// parseAmount 解析金額：必須是數字且 > 0（開戶初始金額另外允許 0）。
func parseAmount(s string, allowZero bool) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimPrefix(s, "$"))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q, enter a number", s)
	}
	if v.IsNegative() || (!allowZero && v.IsZero()) {
		return decimal.Zero, fmt.Errorf("invalid amount %s, amount must be greater than 0", s)
	}
	return v, nil
}
