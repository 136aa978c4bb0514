package dossier

import (
	"errors"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"duplicate field", &DuplicateFieldError{Type: "User", Field: "id"}, "duplicate field name: 'id'"},
		{"missing field", &MissingFieldError{Type: "User", Field: "id"}, "Missing argument: id"},
		{"arity singular expected", &ArityError{Type: "User", Expected: 1, Given: 2}, "User takes 1 positional argument but 2 were given"},
		{"arity singular given", &ArityError{Type: "Unit", Expected: 0, Given: 1}, "Unit takes 0 positional arguments but 1 was given"},
		{"unknown keyword", &UnknownKeywordError{Type: "User", Keyword: "nick"}, "User does not take keyword argument 'nick'"},
		{"duplicate argument", &DuplicateArgumentError{Type: "User", Field: "id"}, "User got multiple values for argument 'id'"},
		{"format", &FormatError{Cause: errors.New("unexpected end")}, "format error: unexpected end"},
		{"format field", &FormatError{Field: "profile", Cause: errors.New("bad")}, "format error (field profile): bad"},
		{"underflow", &UnderflowError{Type: "Point", Field: "y"}, "flat sequence underflow: no value left for Point.y"},
		{"config full", newConfigError(ErrMissingEncryptor, "aes", "email"), `missing encryptor for algorithm "aes" (field email)`},
		{"config algorithm", &ConfigError{Err: ErrMissingHasher, Algorithm: "argon2"}, `missing hasher for algorithm "argon2"`},
		{"config field", &ConfigError{Err: ErrInvalidAction, Field: "password"}, "invalid action (field password)"},
		{"transform", newTransformError(ErrDecrypt, "decrypt", "email", errors.New("auth failed")), "decrypt field email: auth failed"},
		{"transform no cause", &TransformError{Err: ErrHash, Operation: "hash", Field: "pw"}, "hash field pw"},
		{"codec", newCodecError(ErrMarshal, errors.New("unsupported type")), "marshal failed: unsupported type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorSentinels(t *testing.T) {
	cause := errors.New("cause")
	tests := []struct {
		name string
		err  error
		is   error
		not  error
	}{
		{"duplicate field", &DuplicateFieldError{}, ErrDuplicateField, ErrMissingField},
		{"missing field", &MissingFieldError{}, ErrMissingField, ErrArity},
		{"arity", &ArityError{}, ErrArity, ErrUnknownKeyword},
		{"unknown keyword", &UnknownKeywordError{}, ErrUnknownKeyword, ErrDuplicateArgument},
		{"duplicate argument", &DuplicateArgumentError{}, ErrDuplicateArgument, ErrUnknownKeyword},
		{"underflow", &UnderflowError{}, ErrUnderflow, ErrFormat},
		{"config", newConfigError(ErrMissingEncryptor, "aes", ""), ErrMissingEncryptor, ErrMissingHasher},
		{"transform", newTransformError(ErrEncrypt, "encrypt", "f", cause), ErrEncrypt, ErrDecrypt},
		{"codec", newCodecError(ErrMarshal, cause), ErrMarshal, ErrFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.is) {
				t.Errorf("errors.Is(%T, %v) = false", tt.err, tt.is)
			}
			if errors.Is(tt.err, tt.not) {
				t.Errorf("errors.Is(%T, %v) = true", tt.err, tt.not)
			}
		})
	}
}

func TestFormatError_UnwrapsCause(t *testing.T) {
	cause := errors.New("parser diagnostic")
	err := newFormatError("", cause)

	if !errors.Is(err, ErrFormat) {
		t.Error("FormatError should match ErrFormat")
	}
	if !errors.Is(err, cause) {
		t.Error("FormatError should match its cause")
	}
}
