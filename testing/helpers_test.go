package testing

import (
	"testing"

	"github.com/zoobzio/dossier"
	"github.com/zoobzio/dossier/json"
)

func TestTestKey(t *testing.T) {
	key := TestKey(t)
	if len(key) != 32 {
		t.Errorf("TestKey() length = %d, want 32", len(key))
	}
}

func TestTestEncryptor(t *testing.T) {
	enc := TestEncryptor(t)
	if enc == nil {
		t.Fatal("TestEncryptor() should not return nil")
	}

	plaintext := []byte("test")
	ciphertext, err := enc.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}

	decrypted, err := enc.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("Decrypt() error: %v", err)
	}

	if string(decrypted) != string(plaintext) {
		t.Errorf("round-trip failed")
	}
}

func TestNewSanitizedUser(t *testing.T) {
	user := NewSanitizedUser(t)

	want := "SanitizedUser('123', 'alice@example.com', 'supersecret', '123-45-6789', " +
		"note='internal note', profile=Profile('Alice', '(555) 123-4567'))"
	if got := user.String(); got != want {
		t.Errorf("String() = %s\nwant %s", got, want)
	}
	if !user.Equal(NewSanitizedUser(t)) {
		t.Error("fixtures should be equal")
	}
}

func TestNewProcessor(t *testing.T) {
	proc := NewProcessor(t, SanitizedUser, json.New())
	if proc.RecordType() != SanitizedUser {
		t.Error("processor bound to the wrong record type")
	}

	if _, err := dossier.NewProcessor(SanitizedUser, json.New()); err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}
}
