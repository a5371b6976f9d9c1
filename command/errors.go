package command

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrInvalidParam     = errors.New("invalid parameter")
	ErrInvalidCommand   = errors.New("invalid command")
	ErrDuplicateCommand = errors.New("duplicate command")
)

// UnknownCommandError is returned from [Registry.Dispatch] when the command key isn't registered.
// It matches [ErrUnknownCommand] with [errors.Is].
type UnknownCommandError struct {
	Key        string
	Suggestion string // Suggestion is the closest registered name or alias, and may be empty.
}

func (e *UnknownCommandError) Error() string {
	if len(e.Suggestion) == 0 {
		return fmt.Sprintf("%s: %s", ErrUnknownCommand, e.Key)
	}
	return fmt.Sprintf("%s: %s (did you mean '%s'?)", ErrUnknownCommand, e.Key, e.Suggestion)
}

func (e *UnknownCommandError) Unwrap() error {
	return ErrUnknownCommand
}

// errorList gathers every problem found while validating a registration, so they can be reported together.
type errorList struct {
	errs []error
}

func (l *errorList) Add(err error) *errorList {
	if err != nil {
		l.errs = append(l.errs, err)
	}
	return l
}

func (l *errorList) AddString(msg string, args ...any) *errorList {
	return l.Add(fmt.Errorf(msg, args...))
}

// Result is nil if nothing was added.
func (l *errorList) Result() error {
	if len(l.errs) > 0 {
		return l
	}
	return nil
}

func (l *errorList) Error() string {
	var buf strings.Builder
	for i, err := range l.errs {
		if i > 0 {
			buf.WriteString("; ")
		}
		buf.WriteString(err.Error())
	}
	return buf.String()
}

func (l *errorList) Unwrap() []error {
	return l.errs
}
