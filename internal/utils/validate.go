package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// EmailPattern is intentionally loose; the mailbox is verified by actually
// sending to it, not by the regexp.
var EmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Rule is one declarative field constraint. Min/Max bound the rune length,
// zero means unbounded. Optional fields with an empty value pass untouched.
type Rule struct {
	Name     string
	Value    string
	Required bool
	Min      int
	Max      int
	Pattern  *regexp.Regexp
}

// Validate checks every rule in order and returns the first violation.
func Validate(rules ...Rule) error {
	for _, r := range rules {
		if err := r.check(); err != nil {
			return err
		}
	}
	return nil
}

func (r Rule) check() error {
	value := strings.TrimSpace(r.Value)
	if value == "" {
		if r.Required {
			return fmt.Errorf("%s is required", r.Name)
		}
		return nil
	}

	length := utf8.RuneCountInString(value)
	switch {
	case r.Min > 0 && r.Max > 0 && (length < r.Min || length > r.Max):
		return fmt.Errorf("%s must be between %d and %d characters", r.Name, r.Min, r.Max)
	case r.Min > 0 && r.Max == 0 && length < r.Min:
		return fmt.Errorf("%s must be at least %d characters", r.Name, r.Min)
	case r.Max > 0 && r.Min == 0 && length > r.Max:
		return fmt.Errorf("%s must be at most %d characters", r.Name, r.Max)
	}

	if r.Pattern != nil && !r.Pattern.MatchString(value) {
		return fmt.Errorf("%s is not valid", r.Name)
	}
	return nil
}
