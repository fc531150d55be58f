package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfig          = errors.New("configuration error")
	ErrUsage           = errors.New("usage error")
	ErrMissingArgument = errors.New("missing argument")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrFileSystem      = errors.New("file system error")
	ErrTemplateCopy    = errors.New("template copy error")
	ErrDecompression   = errors.New("decompression error")
)

// Wrap builds an error message that includes operation context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrFileSystem
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Marker returns the sentinel the error was tagged with, or nil when the error
// does not carry one.
func Marker(err error) error {
	for _, marker := range []error{
		ErrConfig,
		ErrUsage,
		ErrMissingArgument,
		ErrInvalidArgument,
		ErrFileSystem,
		ErrTemplateCopy,
		ErrDecompression,
	} {
		if errors.Is(err, marker) {
			return marker
		}
	}
	return nil
}

// ShowsHelp reports whether the help screen should accompany the error.
func ShowsHelp(err error) bool {
	return errors.Is(err, ErrUsage)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "operation failed"
	}
	return strings.Join(parts, ": ")
}
