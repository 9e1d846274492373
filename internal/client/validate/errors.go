package validate

import (
	"errors"
	"sort"
	"strings"
)

var ErrValidation = errors.New("validation failed")

// FieldErrors maps a form field to its first failing rule's message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (fe FieldErrors) Is(target error) bool {
	return target == ErrValidation
}

// Fields returns the failing field names in sorted order.
func (fe FieldErrors) Fields() []string {
	out := make([]string, 0, len(fe))
	for f := range fe {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

type checker struct {
	errs FieldErrors
}

// check records msg for field unless ok or the field already failed.
func (c *checker) check(field string, ok bool, msg string) {
	if ok {
		return
	}
	if c.errs == nil {
		c.errs = make(FieldErrors)
	}
	if _, seen := c.errs[field]; !seen {
		c.errs[field] = msg
	}
}

func (c *checker) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}
