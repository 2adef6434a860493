package backup

import (
	"bytes"
	"errors"
	"testing"
)

func TestGenerateSalt(t *testing.T) {
	salt1, err := GenerateSalt()
	if err != nil {
		t.Fatalf("generate salt: %v", err)
	}
	if len(salt1) != saltSize {
		t.Errorf("salt length = %d, want %d", len(salt1), saltSize)
	}

	salt2, err := GenerateSalt()
	if err != nil {
		t.Fatalf("generate salt 2: %v", err)
	}
	if bytes.Equal(salt1, salt2) {
		t.Error("two salts should not be equal")
	}
}

func TestDeriveKey(t *testing.T) {
	salt := []byte("1234567890abcdef")

	key1 := DeriveKey("mypassphrase", salt)
	key2 := DeriveKey("mypassphrase", salt)
	if !bytes.Equal(key1, key2) {
		t.Error("same passphrase+salt should produce same key")
	}
	if len(key1) != keySize {
		t.Errorf("key length = %d, want %d", len(key1), keySize)
	}

	if bytes.Equal(key1, DeriveKey("other", salt)) {
		t.Error("different passphrases should produce different keys")
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	original := []byte(`[{"date":"2024-01-01","assignments":[]}]`)

	encrypted, err := Encrypt(original, "test-passphrase-123")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if !IsEncrypted(encrypted) {
		t.Error("encrypted output should carry the header")
	}
	if bytes.Contains(encrypted, original) {
		t.Error("ciphertext should not contain the plaintext")
	}

	decrypted, err := Decrypt(encrypted, "test-passphrase-123")
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if !bytes.Equal(original, decrypted) {
		t.Error("decrypted content should match original")
	}
}

func TestDecryptWrongPassphrase(t *testing.T) {
	encrypted, err := Encrypt([]byte("secret data"), "correct-password")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := Decrypt(encrypted, "wrong-password"); err == nil {
		t.Fatal("expected error with wrong passphrase")
	}
}

func TestDecryptTamperedCiphertext(t *testing.T) {
	encrypted, err := Encrypt([]byte("secret data"), "password")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	encrypted[len(magic)+saltSize+nonceSize+1] ^= 0xFF

	if _, err := Decrypt(encrypted, "password"); err == nil {
		t.Fatal("expected error with tampered ciphertext")
	}
}

func TestDecryptTooSmall(t *testing.T) {
	data := append(append([]byte{}, magic...), []byte("short")...)
	if _, err := Decrypt(data, "password"); !errors.Is(err, ErrTooSmall) {
		t.Fatalf("err = %v, want ErrTooSmall", err)
	}
	if _, err := Decrypt([]byte("plain"), "password"); err == nil {
		t.Fatal("expected error without header")
	}
}
