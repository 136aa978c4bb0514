package benchmarks

import (
	"context"
	"testing"

	"github.com/zoobzio/dossier"
	"github.com/zoobzio/dossier/json"
	"github.com/zoobzio/dossier/msgpack"
	dossiertest "github.com/zoobzio/dossier/testing"
)

func BenchmarkProcessor_Store_NoTransformation(b *testing.B) {
	proc := dossiertest.NewProcessor(b, dossiertest.SimpleUser, json.New())
	user, _ := dossiertest.SimpleUser.New("123", "Alice")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = proc.Store(context.Background(), user)
	}
}

func BenchmarkProcessor_Store_WithEncryption(b *testing.B) {
	proc := dossiertest.NewProcessor(b, dossiertest.SanitizedUser, json.New())
	user := dossiertest.NewSanitizedUser(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = proc.Store(context.Background(), user)
	}
}

func BenchmarkProcessor_Load_WithDecryption(b *testing.B) {
	proc := dossiertest.NewProcessor(b, dossiertest.SanitizedUser, json.New())
	data, _ := proc.Store(context.Background(), dossiertest.NewSanitizedUser(b))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = proc.Load(context.Background(), data)
	}
}

func BenchmarkProcessor_Send_WithMaskingRedaction(b *testing.B) {
	proc := dossiertest.NewProcessor(b, dossiertest.SanitizedUser, msgpack.New())
	user := dossiertest.NewSanitizedUser(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = proc.Send(context.Background(), user)
	}
}

func BenchmarkSerialize(b *testing.B) {
	user := dossiertest.NewSanitizedUser(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = dossier.Serialize(user)
	}
}

func BenchmarkDeserialize(b *testing.B) {
	text, _ := dossier.Serialize(dossiertest.NewSanitizedUser(b))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = dossier.Deserialize(text, dossiertest.SanitizedUser)
	}
}

func BenchmarkFlattenUnflatten(b *testing.B) {
	user := dossiertest.NewSanitizedUser(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = dossier.Unflatten(dossier.Flatten(user), dossiertest.SanitizedUser)
	}
}

func BenchmarkRecord_Equal(b *testing.B) {
	x, y := dossiertest.NewSanitizedUser(b), dossiertest.NewSanitizedUser(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = x.Equal(y)
	}
}

func BenchmarkAES_Encrypt(b *testing.B) {
	enc := dossiertest.TestEncryptor(b)
	plaintext := []byte("this is a test message for encryption benchmarking")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = enc.Encrypt(plaintext)
	}
}

func BenchmarkHasher_Argon2(b *testing.B) {
	h := dossier.Argon2()
	data := []byte("password123")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Hash(data)
	}
}

func BenchmarkHasher_SHA256(b *testing.B) {
	h := dossier.SHA256Hasher()
	data := []byte("this is a test message for hashing benchmarking")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Hash(data)
	}
}
