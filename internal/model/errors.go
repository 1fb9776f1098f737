package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyData means no usable quotes exist for the requested symbols and period.
	ErrEmptyData = errors.New("no usable quotes")
	// ErrMissingData means a column has no observation to summarize.
	ErrMissingData = errors.New("missing data")
)

// EmptyDataError is returned when a quote table has no rows left after filtering.
type EmptyDataError struct {
	Symbols []string
	Period  string
}

func (e *EmptyDataError) Error() string {
	msg := fmt.Sprintf("%v for %s", ErrEmptyData, strings.Join(e.Symbols, ","))
	if e.Period != "" {
		msg += " over " + e.Period
	}
	return msg
}

func (e *EmptyDataError) Is(target error) bool { return target == ErrEmptyData }

// MissingDataError is returned for a symbol whose column cannot be summarized.
type MissingDataError struct {
	Symbol string
	Reason string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("%v for %s: %s", ErrMissingData, e.Symbol, e.Reason)
}

func (e *MissingDataError) Is(target error) bool { return target == ErrMissingData }
