package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	entryDate := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 3, 14, 15, 9, 26, 535897932, time.UTC)

	token := EncodeToken(entryDate, createdAt)
	require.NotEmpty(t, token)

	gotDate, gotCreated, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, entryDate.Equal(gotDate), "entry date should round-trip")
	assert.True(t, createdAt.Equal(gotCreated), "created_at should round-trip")
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, _, err := DecodeToken("not-base64!!!")
	assert.Error(t, err)

	// Valid base64 but missing the separator.
	_, _, err = DecodeToken("aGVsbG8=")
	assert.Error(t, err)
}

func TestEncodeDecodeDateIDToken(t *testing.T) {
	date := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)
	id := "6f1b2c3d-0000-4000-8000-000000000042"

	token := EncodeDateIDToken(date, id)
	gotDate, gotID, err := DecodeDateIDToken(token)
	require.NoError(t, err)
	assert.True(t, date.Equal(gotDate))
	assert.Equal(t, id, gotID)
}

func TestDecodeDateIDToken_Invalid(t *testing.T) {
	_, _, err := DecodeDateIDToken("not-base64!!!")
	assert.Error(t, err)

	// Valid base64 but missing the separator.
	_, _, err = DecodeDateIDToken("aGVsbG8=")
	assert.Error(t, err)

	// Separator present but the id part is empty.
	_, _, err = DecodeDateIDToken(EncodeDateIDToken(time.Now(), ""))
	assert.Error(t, err)
}
