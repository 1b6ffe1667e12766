package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/sbilibin2017/bankcore/internal/security"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func Required(message string) Rule {
	return Rule{
		Check:   func(v string) bool { return strings.TrimSpace(v) != "" },
		Message: message,
	}
}

func Email() Rule {
	return Rule{
		Check:   func(v string) bool { return validate.Var(v, "email") == nil },
		Message: "Invalid email address",
	}
}

func SixDigits() Rule {
	return Rule{
		Check:   security.ValidPIN,
		Message: "PIN must be exactly 6 digits",
	}
}

func MinLength(n int) Rule {
	return Rule{
		Check:   func(v string) bool { return utf8.RuneCountInString(v) >= n },
		Message: fmt.Sprintf("Must be at least %d characters long", n),
	}
}

func MaxLength(n int) Rule {
	return Rule{
		Check:   func(v string) bool { return utf8.RuneCountInString(v) <= n },
		Message: fmt.Sprintf("Must be at most %d characters long", n),
	}
}

// PasswordStrength returns the rules of a strong password, in reporting order.
func PasswordStrength() []Rule {
	return []Rule{
		MinLength(8),
		{Check: hasRune(unicode.IsUpper), Message: "Password must contain at least one uppercase letter"},
		{Check: hasRune(unicode.IsLower), Message: "Password must contain at least one lowercase letter"},
		{Check: hasRune(unicode.IsDigit), Message: "Password must contain at least one number"},
		{Check: hasRune(isSpecial), Message: "Password must contain at least one special character"},
	}
}

func Equals(other, message string) Rule {
	return Rule{
		Check:   func(v string) bool { return v == other },
		Message: message,
	}
}

func NotEquals(other, message string) Rule {
	return Rule{
		Check:   func(v string) bool { return v != other },
		Message: message,
	}
}

// PositiveAmount accepts decimals greater than zero with at most two fractional digits.
func PositiveAmount() Rule {
	return Rule{
		Check: func(v string) bool {
			d, err := decimal.NewFromString(strings.TrimSpace(v))
			if err != nil {
				return false
			}
			return d.IsPositive() && d.Equal(d.Round(2))
		},
		Message: "Amount must be a positive number with at most two decimals",
	}
}

// MaxAmount rejects amounts above limit. Unparsable values pass and are left to PositiveAmount.
func MaxAmount(limit decimal.Decimal) Rule {
	return Rule{
		Check: func(v string) bool {
			d, err := decimal.NewFromString(strings.TrimSpace(v))
			if err != nil {
				return true
			}
			return d.LessThanOrEqual(limit)
		},
		Message: "Amount must not exceed " + limit.StringFixed(2),
	}
}

func OneOf(values ...string) Rule {
	return Rule{
		Check: func(v string) bool {
			for _, allowed := range values {
				if v == allowed {
					return true
				}
			}
			return false
		},
		Message: "Must be one of: " + strings.Join(values, ", "),
	}
}

func hasRune(pred func(rune) bool) func(string) bool {
	return func(v string) bool {
		return strings.IndexFunc(v, pred) >= 0
	}
}

func isSpecial(r rune) bool {
	return strings.ContainsRune(`!@#$%^&*(),.?":{}|<>`, r)
}
