package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_Required(t *testing.T) {
	err := Validate(Rule{Name: "title", Value: "", Required: true})
	assert.EqualError(t, err, "title is required")

	// whitespace-only counts as empty
	err = Validate(Rule{Name: "title", Value: "   ", Required: true})
	assert.EqualError(t, err, "title is required")

	err = Validate(Rule{Name: "title", Value: "ok", Required: true})
	assert.NoError(t, err)
}

func TestValidate_OptionalEmptyPasses(t *testing.T) {
	err := Validate(Rule{Name: "link", Value: "", Min: 5, Max: 10})
	assert.NoError(t, err)
}

func TestValidate_Bounds(t *testing.T) {
	err := Validate(Rule{Name: "title", Value: "ab", Required: true, Min: 3, Max: 100})
	assert.EqualError(t, err, "title must be between 3 and 100 characters")

	err = Validate(Rule{Name: "title", Value: "abc", Required: true, Min: 3, Max: 100})
	assert.NoError(t, err)

	err = Validate(Rule{Name: "role", Value: "aaaa", Max: 3})
	assert.EqualError(t, err, "role must be at most 3 characters")

	err = Validate(Rule{Name: "password", Value: "short", Min: 8})
	assert.EqualError(t, err, "password must be at least 8 characters")
}

func TestValidate_RuneLength(t *testing.T) {
	// 3 runes, 9 bytes
	err := Validate(Rule{Name: "title", Value: "日本語", Min: 3, Max: 3})
	assert.NoError(t, err)
}

func TestValidate_Pattern(t *testing.T) {
	err := Validate(Rule{Name: "email", Value: "not-an-email", Pattern: EmailPattern})
	assert.EqualError(t, err, "email is not valid")

	err = Validate(Rule{Name: "email", Value: "alice@example.com", Pattern: EmailPattern})
	assert.NoError(t, err)
}

func TestValidate_FirstViolationWins(t *testing.T) {
	err := Validate(
		Rule{Name: "title", Value: "ok"},
		Rule{Name: "description", Value: "", Required: true},
		Rule{Name: "message", Value: "", Required: true},
	)
	assert.EqualError(t, err, "description is required")
}
