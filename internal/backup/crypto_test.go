package backup

import (
	"bytes"
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

func TestDeriveKeyDeterminism(t *testing.T) {
	salt := []byte("1234567890abcdef")

	key1 := DeriveKey("mypassphrase", salt)
	key2 := DeriveKey("mypassphrase", salt)

	if !bytes.Equal(key1, key2) {
		t.Error("same passphrase+salt should produce same key")
	}
	if len(key1) != keySize {
		t.Errorf("key length = %d, want %d", len(key1), keySize)
	}
}

func TestDeriveKeyDifferentPassphrases(t *testing.T) {
	salt := []byte("1234567890abcdef")

	key1 := DeriveKey("password1", salt)
	key2 := DeriveKey("password2", salt)

	if bytes.Equal(key1, key2) {
		t.Error("different passphrases should produce different keys")
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	original := []byte(`{"tasks":[{"id":"t1","title":"Water the plants"}]}`)

	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("generate salt: %v", err)
	}

	passphrase := "test-passphrase-123"

	encrypted, err := Encrypt(original, passphrase, salt)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if bytes.Equal(encrypted, original) {
		t.Error("encrypted content should differ from original")
	}
	if !bytes.Equal(encrypted[:saltSize], salt) {
		t.Error("encrypted data should start with salt")
	}

	decrypted, err := Decrypt(encrypted, passphrase)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if !bytes.Equal(original, decrypted) {
		t.Error("decrypted content should match original")
	}
}

func TestDecryptWrongPassphrase(t *testing.T) {
	salt, _ := GenerateSalt()
	encrypted, err := Encrypt([]byte("secret data"), "correct-password", salt)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	if _, err := Decrypt(encrypted, "wrong-password"); err == nil {
		t.Fatal("expected error with wrong passphrase")
	}
}

func TestDecryptTamperedCiphertext(t *testing.T) {
	salt, _ := GenerateSalt()
	encrypted, err := Encrypt([]byte("secret data"), "password", salt)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	encrypted[saltSize+nonceSize+1] ^= 0xFF

	if _, err := Decrypt(encrypted, "password"); err == nil {
		t.Fatal("expected error with tampered ciphertext")
	}
}

func TestEncryptDecryptEmpty(t *testing.T) {
	salt, _ := GenerateSalt()
	encrypted, err := Encrypt([]byte{}, "password", salt)
	if err != nil {
		t.Fatalf("encrypt empty input: %v", err)
	}

	decrypted, err := Decrypt(encrypted, "password")
	if err != nil {
		t.Fatalf("decrypt empty input: %v", err)
	}
	if len(decrypted) != 0 {
		t.Errorf("expected empty plaintext, got %d bytes", len(decrypted))
	}
}

func TestDecryptTooSmall(t *testing.T) {
	if _, err := Decrypt([]byte("too short"), "password"); err == nil {
		t.Fatal("expected error with data too small")
	}
}
