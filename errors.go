package dossier

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrInvalidField indicates a field descriptor is unusable (e.g. empty name).
	ErrInvalidField = errors.New("invalid field")

	// ErrDuplicateField indicates two field descriptors of one record type share a name.
	ErrDuplicateField = errors.New("duplicate field")

	// ErrMissingField indicates a required field was not supplied and has no default.
	ErrMissingField = errors.New("missing field")

	// ErrArity indicates more positional arguments than positional fields.
	ErrArity = errors.New("too many positional arguments")

	// ErrUnknownKeyword indicates a keyword argument that names no declared field.
	ErrUnknownKeyword = errors.New("unknown keyword argument")

	// ErrDuplicateArgument indicates a field supplied both positionally and by keyword.
	ErrDuplicateArgument = errors.New("duplicate argument")

	// ErrFormat indicates input text or a mapping value could not be decoded.
	ErrFormat = errors.New("format error")

	// ErrUnderflow indicates a flat sequence ran out before the schema was filled.
	ErrUnderflow = errors.New("flat sequence underflow")

	// ErrInvalidAction indicates a field declares an unknown boundary action capability.
	ErrInvalidAction = errors.New("invalid action")

	// ErrMissingEncryptor indicates a required encryptor was not registered.
	ErrMissingEncryptor = errors.New("missing encryptor")

	// ErrMissingHasher indicates a required hasher was not registered.
	ErrMissingHasher = errors.New("missing hasher")

	// ErrMissingMasker indicates a required masker was not registered.
	ErrMissingMasker = errors.New("missing masker")

	// ErrMissingCodec indicates a processor was requested without a codec.
	ErrMissingCodec = errors.New("missing codec")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")

	// ErrEncrypt indicates encryption of a field failed.
	ErrEncrypt = errors.New("encrypt failed")

	// ErrDecrypt indicates decryption of a field failed.
	ErrDecrypt = errors.New("decrypt failed")

	// ErrHash indicates hashing of a field failed.
	ErrHash = errors.New("hash failed")

	// ErrTypeMismatch indicates a record of another type was handed to a processor.
	ErrTypeMismatch = errors.New("record type mismatch")
)

// DuplicateFieldError is returned by Define when a field name repeats.
type DuplicateFieldError struct {
	Type  string // Record type being defined
	Field string // Repeated field name
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate field name: '%s'", e.Field)
}

func (e *DuplicateFieldError) Unwrap() error {
	return ErrDuplicateField
}

// MissingFieldError is returned when construction cannot resolve a field.
type MissingFieldError struct {
	Type  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Missing argument: %s", e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// ArityError reports more positional arguments than positional fields.
type ArityError struct {
	Type     string
	Expected int // Number of positional fields
	Given    int // Number of positional arguments supplied
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s takes %d positional %s but %d %s given",
		e.Type, e.Expected, plural(e.Expected, "argument", "arguments"),
		e.Given, plural(e.Given, "was", "were"))
}

func (e *ArityError) Unwrap() error {
	return ErrArity
}

// UnknownKeywordError reports a keyword that names no declared field.
type UnknownKeywordError struct {
	Type    string
	Keyword string
}

func (e *UnknownKeywordError) Error() string {
	return fmt.Sprintf("%s does not take keyword argument '%s'", e.Type, e.Keyword)
}

func (e *UnknownKeywordError) Unwrap() error {
	return ErrUnknownKeyword
}

// DuplicateArgumentError reports a field given both positionally and by keyword.
type DuplicateArgumentError struct {
	Type  string
	Field string
}

func (e *DuplicateArgumentError) Error() string {
	return fmt.Sprintf("%s got multiple values for argument '%s'", e.Type, e.Field)
}

func (e *DuplicateArgumentError) Unwrap() error {
	return ErrDuplicateArgument
}

// FormatError wraps the diagnostic of a failed decode.
type FormatError struct {
	Field string // Field path being decoded, empty for the whole document
	Cause error  // Original error from the parser
}

func (e *FormatError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (field %s): %v", ErrFormat.Error(), e.Field, e.Cause)
	}
	return fmt.Sprintf("%s: %v", ErrFormat.Error(), e.Cause)
}

func (e *FormatError) Unwrap() []error {
	return []error{ErrFormat, e.Cause}
}

// UnderflowError reports a flat sequence too short for its target type.
type UnderflowError struct {
	Type  string // Record type being filled when values ran out
	Field string // First field left without a value
}

func (e *UnderflowError) Error() string {
	return fmt.Sprintf("%s: no value left for %s.%s", ErrUnderflow.Error(), e.Type, e.Field)
}

func (e *UnderflowError) Unwrap() error {
	return ErrUnderflow
}

// ConfigError represents a processor or action configuration error.
// It wraps a sentinel error with additional context about the field and algorithm.
type ConfigError struct {
	Err       error  // Underlying sentinel error (ErrMissingEncryptor, etc.)
	Field     string // Field path that triggered the error
	Algorithm string // Algorithm or type that was missing/invalid
}

func (e *ConfigError) Error() string {
	if e.Field != "" && e.Algorithm != "" {
		return fmt.Sprintf("%s for algorithm %q (field %s)", e.Err.Error(), e.Algorithm, e.Field)
	}
	if e.Algorithm != "" {
		return fmt.Sprintf("%s for algorithm %q", e.Err.Error(), e.Algorithm)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s (field %s)", e.Err.Error(), e.Field)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TransformError represents an error during a boundary field transformation.
type TransformError struct {
	Err       error  // Underlying sentinel error (ErrEncrypt, ErrDecrypt, ErrHash)
	Field     string // Field path that failed
	Operation string // encrypt, decrypt, hash
	Cause     error  // Original error from the underlying operation
}

func (e *TransformError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s field %s: %v", e.Operation, e.Field, e.Cause)
	}
	return fmt.Sprintf("%s field %s", e.Operation, e.Field)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// CodecError represents a marshal failure.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

func newConfigError(sentinel error, algorithm, field string) error {
	return &ConfigError{
		Err:       sentinel,
		Algorithm: algorithm,
		Field:     field,
	}
}

func newTransformError(sentinel error, operation, field string, cause error) error {
	return &TransformError{
		Err:       sentinel,
		Field:     field,
		Operation: operation,
		Cause:     cause,
	}
}

func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}

func newFormatError(field string, cause error) error {
	return &FormatError{Field: field, Cause: cause}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
