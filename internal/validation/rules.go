package validation

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// Now is the clock used by year checks. Tests pin it.
var Now = time.Now

// Date layouts accepted for birth dates, tried in order.
var DateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// ozzo's Required only rejects "", these rules trim first.

// Required fails on blank strings (whitespace only counts as blank).
func Required(msg string) ozzo.Rule {
	return ozzo.By(func(value interface{}) error {
		s, _ := value.(string)
		if IsEmptyString(s) {
			return errors.New(msg)
		}
		return nil
	})
}

// MinLength fails when the trimmed value is non-blank and shorter than n runes.
func MinLength(n int, msg string) ozzo.Rule {
	return ozzo.By(func(value interface{}) error {
		s, _ := value.(string)
		s = strings.TrimSpace(s)
		if s != "" && utf8.RuneCountInString(s) < n {
			return errors.New(msg)
		}
		return nil
	})
}

// Email fails on non-blank values that are not local@domain.tld.
func Email(msg string) ozzo.Rule {
	return ozzo.By(func(value interface{}) error {
		s, _ := value.(string)
		if !IsEmptyString(s) && !IsValidEmail(strings.TrimSpace(s)) {
			return errors.New(msg)
		}
		return nil
	})
}

// StrongPassword reports every violated password rule joined with "; ".
// Blank values pass; pair it with Required.
var StrongPassword = ozzo.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if res := ValidatePassword(s); !res.Valid {
		return errors.New(strings.Join(res.Errors, "; "))
	}
	return nil
})

// Date fails on non-blank values none of DateLayouts can parse.
func Date(msg string) ozzo.Rule {
	return ozzo.By(func(value interface{}) error {
		s, _ := value.(string)
		if IsEmptyString(s) {
			return nil
		}
		if _, ok := ParseDate(s); !ok {
			return errors.New(msg)
		}
		return nil
	})
}

// Year fails on non-blank values that are not an integer in [0, current year].
func Year(msg string) ozzo.Rule {
	return ozzo.By(func(value interface{}) error {
		s, _ := value.(string)
		if IsEmptyString(s) {
			return nil
		}
		if _, ok := ParseYear(s); !ok {
			return errors.New(msg)
		}
		return nil
	})
}

// NonNegativeAmount fails on blank, unparsable or negative amounts.
func NonNegativeAmount(msg string) ozzo.Rule {
	return ozzo.By(func(value interface{}) error {
		s, _ := value.(string)
		if _, ok := ParseAmount(s); !ok {
			return errors.New(msg)
		}
		return nil
	})
}

// NotEmptyIDs fails on an empty id list.
func NotEmptyIDs(msg string) ozzo.Rule {
	return ozzo.By(func(value interface{}) error {
		ids, _ := value.([]int)
		if len(ids) == 0 {
			return errors.New(msg)
		}
		return nil
	})
}

// ParseDate tries every layout in DateLayouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseYear parses an integer year within [0, Now().Year()].
func ParseYear(s string) (int, bool) {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	if year < 0 || year > Now().Year() {
		return 0, false
	}
	return year, true
}

// ParseAmount parses a non-negative decimal amount.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}
