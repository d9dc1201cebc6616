package secrets

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	for _, password := range []string{"my_secret_password", "", "pässwörd 👍", "with\nnewline"} {
		encrypted, err := Encrypt(password)
		require.NoError(t, err)
		assert.NotEqual(t, password, encrypted)

		decrypted, err := Decrypt(encrypted)
		require.NoError(t, err)
		assert.Equal(t, password, decrypted)
	}
}

func TestEncryptIsNonDeterministic(t *testing.T) {
	a, err := Encrypt("same input")
	require.NoError(t, err)
	b, err := Encrypt("same input")
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "a fresh nonce is used per encryption")
}

func TestDecryptRejectsBadInput(t *testing.T) {
	_, err := Decrypt("not base64 at all!!!")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	// Valid base64 but shorter than a nonce.
	_, err = Decrypt(base64.StdEncoding.EncodeToString([]byte("short")))
	assert.ErrorIs(t, err, ErrInvalidFormat)

	// Tampered ciphertext fails authentication.
	encrypted, err := Encrypt("secret")
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(encrypted)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff
	_, err = Decrypt(base64.StdEncoding.EncodeToString(raw))
	assert.ErrorIs(t, err, ErrDecryptFailed)
}
