package builtin

import (
	"crypto/sha512"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/pbkdf2"

	"github.com/Emurgo/node-cardano-wallet/domain/entities"
)

const (
	passwordIterations = 19162
	passwordKeySize    = 32
)

var errDecrypt = errors.New("cannot decrypt data: wrong password or corrupted envelope")

func passwordKey(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, passwordIterations, passwordKeySize, sha512.New)
}

// Encrypt seals data under password and returns salt ‖ nonce ‖ tag ‖ ciphertext.
func Encrypt(password, salt, nonce, data []byte) ([]byte, error) {
	if len(salt) != entities.SaltSize {
		return nil, fmt.Errorf("Wrong salt len %d should be %d", len(salt), entities.SaltSize)
	}
	if len(nonce) != entities.NonceSize {
		return nil, fmt.Errorf("Wrong nonce len %d should be %d", len(nonce), entities.NonceSize)
	}
	aead, err := chacha20poly1305.New(passwordKey(password, salt))
	if err != nil {
		return nil, err
	}
	sealed := aead.Seal(nil, nonce, data, nil)
	ciphertext, tag := sealed[:len(data)], sealed[len(data):]

	out := make([]byte, 0, len(data)+entities.PasswordOverhead)
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, tag...)
	return append(out, ciphertext...), nil
}

// Decrypt opens an envelope produced by Encrypt.
func Decrypt(password, envelope []byte) ([]byte, error) {
	if len(envelope) <= entities.PasswordOverhead {
		return nil, fmt.Errorf("Wrong data len %d should be at least %d", len(envelope), entities.PasswordOverhead+1)
	}
	salt := envelope[:entities.SaltSize]
	nonce := envelope[entities.SaltSize : entities.SaltSize+entities.NonceSize]
	tag := envelope[entities.SaltSize+entities.NonceSize : entities.PasswordOverhead]
	ciphertext := envelope[entities.PasswordOverhead:]

	aead, err := chacha20poly1305.New(passwordKey(password, salt))
	if err != nil {
		return nil, err
	}
	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)
	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, errDecrypt
	}
	return plain, nil
}
