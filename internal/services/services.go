// Package services is the data-access layer: one service per CRM entity,
// every query scoped to the owning agent.
package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a row does not exist or belongs to a
// different agent. Callers cannot distinguish the two cases.
var ErrNotFound = errors.New("record not found")

// ErrInvalid marks a rejected payload (bad enum value, missing field)
var ErrInvalid = errors.New("invalid input")

// invalidf wraps a validation failure message with ErrInvalid
func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// translateErr maps gorm sentinel errors to service-level ones
func translateErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// escapeLike escapes LIKE metacharacters in user-supplied search text so
// the pattern matches literally. The value is still bound as a parameter;
// this only neutralizes % _ and the escape character itself. Predicates
// using the pattern must declare ESCAPE '\': MySQL treats backslash as
// the default LIKE escape but SQLite does not.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// likePattern builds a contains-style LIKE pattern from raw search input
func likePattern(s string) string {
	return "%" + escapeLike(strings.TrimSpace(s)) + "%"
}
