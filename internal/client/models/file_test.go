package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRecord_DecodeServerShape(t *testing.T) {
	body := `{
		"_id": "66a1",
		"filename": "holiday.jpg",
		"url": "https://res.example/holiday.jpg",
		"public_id": "uploads/holiday",
		"tags": ["beach"],
		"uploadedAt": "2025-07-01T10:20:30.000Z"
	}`

	var f FileRecord
	require.NoError(t, json.Unmarshal([]byte(body), &f))

	assert.Equal(t, "66a1", f.ID)
	assert.Equal(t, "uploads/holiday", f.PublicID)
	assert.Equal(t, []string{"beach"}, f.Tags)
	assert.Equal(t, time.Date(2025, 7, 1, 10, 20, 30, 0, time.UTC), f.Timestamp().UTC())
	assert.Equal(t, MediaImage, f.Type())
}

func TestFileRecord_KeyFallsBackToPublicID(t *testing.T) {
	assert.Equal(t, "a", FileRecord{ID: "a", PublicID: "b"}.Key())
	assert.Equal(t, "b", FileRecord{PublicID: "b"}.Key())
}

func TestFileRecord_TimestampFallsBackToCreatedAt(t *testing.T) {
	c := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, c, FileRecord{CreatedAt: c}.Timestamp())
	assert.True(t, FileRecord{}.Timestamp().IsZero())
}

func TestFileRecord_Validate(t *testing.T) {
	require.NoError(t, FileRecord{ID: "1", URL: "u"}.Validate())
	require.NoError(t, FileRecord{PublicID: "p", URL: "u"}.Validate())
	require.ErrorIs(t, FileRecord{ID: "1"}.Validate(), ErrInvalidRecord)
	require.ErrorIs(t, FileRecord{URL: "u"}.Validate(), ErrInvalidRecord)
}
