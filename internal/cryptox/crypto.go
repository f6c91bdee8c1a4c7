// Package cryptox holds the password hashing used for stored accounts.
//
// Passwords are never persisted. An account keeps an encoded verifier:
//
//	argon2id$<salt hex>$<verifier hex>
//
// where verifier = sha256(argon2id(password, salt)).
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ticketapp/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	scheme   = "argon2id"
	saltSize = 16
)

func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// HashPassword derives a verifier for password with a fresh random salt and
// returns it in the encoded account form.
func HashPassword(password []byte) string {
	salt := common.GenerateRandByteArray(saltSize)
	return encode(salt, MakeVerifier(DeriveKey(password, salt)))
}

// VerifyPassword reports whether password matches the encoded verifier.
// A verifier that cannot be decoded is reported as common.ErrMalformedData.
func VerifyPassword(encoded string, password []byte) (bool, error) {
	salt, verifier, err := decode(encoded)
	if err != nil {
		return false, err
	}

	candidate := MakeVerifier(DeriveKey(password, salt))
	return subtle.ConstantTimeCompare(verifier, candidate) == 1, nil
}

func encode(salt, verifier []byte) string {
	return strings.Join([]string{scheme, hex.EncodeToString(salt), hex.EncodeToString(verifier)}, "$")
}

func decode(encoded string) (salt, verifier []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != scheme {
		return nil, nil, fmt.Errorf("%w: unknown password format", common.ErrMalformedData)
	}

	if salt, err = hex.DecodeString(parts[1]); err != nil {
		return nil, nil, fmt.Errorf("%w: salt: %v", common.ErrMalformedData, err)
	}
	if verifier, err = hex.DecodeString(parts[2]); err != nil {
		return nil, nil, fmt.Errorf("%w: verifier: %v", common.ErrMalformedData, err)
	}
	return salt, verifier, nil
}
