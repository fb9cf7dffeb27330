package voucher

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidCode    = errors.New("invalid voucher code format")
	ErrInvalidPercent = errors.New("percent discount must be between 1 and 100")
	ErrInvalidAmount  = errors.New("discount amount must be positive")
)

var codeRegex = regexp.MustCompile(`^[A-Z0-9]{3,24}$`)

type Code string

func NewCode(s string) (Code, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if !codeRegex.MatchString(s) {
		return Code(""), ErrInvalidCode
	}
	return Code(s), nil
}

func (c Code) String() string {
	return string(c)
}
