// Package cryptox шифрует секреты профиля (токен Telegram-бота) перед записью в БД.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	keySize   = 32
	nonceSize = 12
	prefix    = "v1:"
)

var (
	ErrNoKey            = errors.New("encryption key is not configured")
	ErrNotEncrypted     = errors.New("value is not in encrypted format")
	ErrMalformedPayload = errors.New("encrypted payload is malformed")
)

// keySalt фиксирован: ключ выводится из пассфразы детерминированно
var keySalt = []byte("webresume/profile-credential")

// Cipher - AES-256-GCM над строками
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher принимает 32-байтный ключ в base64 (URL или std) либо произвольную
// пассфразу, из которой ключ выводится через argon2id.
func NewCipher(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, ErrNoKey
	}

	key := decodeKey(secret)
	if key == nil {
		key = argon2.IDKey([]byte(secret), keySalt, 1, 64*1024, 4, keySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}
	return &Cipher{aead: aead}, nil
}

func decodeKey(secret string) []byte {
	for _, enc := range []*base64.Encoding{base64.URLEncoding, base64.StdEncoding, base64.RawURLEncoding, base64.RawStdEncoding} {
		if key, err := enc.DecodeString(secret); err == nil && len(key) == keySize {
			return key
		}
	}
	return nil
}

// Encrypt возвращает "v1:" + base64url(nonce|ciphertext). Пустая строка не шифруется.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return prefix + base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decrypt никогда не возвращает исходный шифротекст как значение: решение,
// что делать при ошибке, остается за вызывающим кодом.
func (c *Cipher) Decrypt(stored string) Result {
	if stored == "" {
		return Decrypted("")
	}
	if !strings.HasPrefix(stored, prefix) {
		return DecryptionFailed(ErrNotEncrypted)
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(stored, prefix))
	if err != nil || len(raw) < nonceSize+c.aead.Overhead() {
		return DecryptionFailed(ErrMalformedPayload)
	}

	plaintext, err := c.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return DecryptionFailed(fmt.Errorf("open: %w", err))
	}
	return Decrypted(string(plaintext))
}
