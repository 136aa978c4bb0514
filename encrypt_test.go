package dossier

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
)

func TestAES_RoundTrip(t *testing.T) {
	for _, size := range []int{16, 24, 32} {
		key := bytes.Repeat([]byte{0x42}, size)
		enc, err := AES(key)
		if err != nil {
			t.Fatalf("AES(%d) error: %v", size, err)
		}

		plaintext := []byte("hello, world!")
		ciphertext, err := enc.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("Encrypt() error: %v", err)
		}
		if bytes.Contains(ciphertext, plaintext) {
			t.Error("ciphertext should not contain plaintext")
		}

		decrypted, err := enc.Decrypt(ciphertext)
		if err != nil {
			t.Fatalf("Decrypt() error: %v", err)
		}
		if !bytes.Equal(plaintext, decrypted) {
			t.Errorf("round-trip failed: got %q, want %q", decrypted, plaintext)
		}
	}
}

func TestAES_Errors(t *testing.T) {
	if _, err := AES([]byte("short")); !errors.Is(err, ErrInvalidKeySize) {
		t.Errorf("AES(short) error = %v, want ErrInvalidKeySize", err)
	}

	enc, _ := AES([]byte("32-byte-key-for-aes-256-encrypt!"))
	if _, err := enc.Decrypt([]byte{1, 2}); !errors.Is(err, ErrCiphertextShort) {
		t.Errorf("Decrypt(short) error = %v, want ErrCiphertextShort", err)
	}

	ciphertext, _ := enc.Encrypt([]byte("hello"))
	ciphertext[len(ciphertext)-1] ^= 0xff
	if _, err := enc.Decrypt(ciphertext); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("Decrypt(tampered) error = %v, want ErrDecryptionFailed", err)
	}
}

func TestAES_RandomNonce(t *testing.T) {
	enc, _ := AES([]byte("32-byte-key-for-aes-256-encrypt!"))

	c1, _ := enc.Encrypt([]byte("hello"))
	c2, _ := enc.Encrypt([]byte("hello"))
	if bytes.Equal(c1, c2) {
		t.Error("same plaintext should produce different ciphertext (random nonce)")
	}
}

func TestRSA(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	full := RSA(nil, priv)
	ciphertext, err := full.Encrypt([]byte("secret"))
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	plaintext, err := full.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("Decrypt() error: %v", err)
	}
	if string(plaintext) != "secret" {
		t.Errorf("round-trip = %q, want secret", plaintext)
	}

	encryptOnly := RSA(&priv.PublicKey, nil)
	if _, err := encryptOnly.Decrypt(ciphertext); !errors.Is(err, ErrMissingKey) {
		t.Errorf("Decrypt() without private key error = %v, want ErrMissingKey", err)
	}
	if _, err := RSA(nil, nil).Encrypt([]byte("x")); !errors.Is(err, ErrMissingKey) {
		t.Errorf("Encrypt() without public key error = %v, want ErrMissingKey", err)
	}
}
