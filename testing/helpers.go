// Package testing provides record types and helpers for dossier tests.
package testing

import (
	"testing"

	"github.com/zoobzio/dossier"
)

// Profile is a nested record type with a masked field.
var Profile = dossier.MustDefine("Profile",
	dossier.Name("display_name"),
	dossier.NewField("phone", dossier.Mask(dossier.MaskPhone)),
)

// SimpleUser declares no boundary actions.
var SimpleUser = dossier.MustDefine("SimpleUser",
	dossier.Names("id", "name")...,
)

// SanitizedUser exercises every boundary action, including one on a nested
// record.
var SanitizedUser = dossier.MustDefine("SanitizedUser",
	dossier.Name("id"),
	dossier.NewField("email", dossier.Encrypt(dossier.EncryptAES), dossier.Mask(dossier.MaskEmail)),
	dossier.NewField("password", dossier.Hash(dossier.HashArgon2), dossier.Redact("***")),
	dossier.NewField("ssn", dossier.Mask(dossier.MaskSSN)),
	dossier.NewField("note", dossier.Redact("[REDACTED]"), dossier.Default("")),
	dossier.NewField("profile", dossier.Nested(Profile), dossier.Default(nil)),
)

// TestKey returns a valid 32-byte AES key for testing.
func TestKey(t testing.TB) []byte {
	t.Helper()
	return []byte("32-byte-key-for-aes-256-encrypt!")
}

// TestEncryptor returns an AES encryptor configured for testing.
func TestEncryptor(t testing.TB) dossier.Encryptor {
	t.Helper()
	enc, err := dossier.AES(TestKey(t))
	if err != nil {
		t.Fatalf("AES() error: %v", err)
	}
	return enc
}

// NewSanitizedUser returns a fully populated SanitizedUser record.
func NewSanitizedUser(t testing.TB) *dossier.Record {
	t.Helper()
	profile, err := Profile.New("Alice", "(555) 123-4567")
	if err != nil {
		t.Fatalf("Profile.New() error: %v", err)
	}
	user, err := SanitizedUser.Construct(
		[]any{"123", "alice@example.com", "supersecret", "123-45-6789"},
		dossier.Keywords{"note": "internal note", "profile": profile},
	)
	if err != nil {
		t.Fatalf("SanitizedUser.Construct() error: %v", err)
	}
	return user
}

// NewProcessor returns a processor for rt with the test encryptor installed.
func NewProcessor(t testing.TB, rt *dossier.RecordType, codec dossier.Codec) *dossier.Processor {
	t.Helper()
	proc, err := dossier.NewProcessor(rt, codec, dossier.WithEncryptor(dossier.EncryptAES, TestEncryptor(t)))
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}
	if err := proc.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	return proc
}
