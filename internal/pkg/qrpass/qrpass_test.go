package qrpass

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_ProducesSizedPNG(t *testing.T) {
	p := NewPayload(NewCode(), "student", "Juan Dela Cruz", "Maritime Talent Quest", time.Now())

	img, err := Render(p)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Equal(t, ImageSize, decoded.Bounds().Dx())
	assert.Equal(t, ImageSize, decoded.Bounds().Dy())
}

func TestPayloadJSONShape(t *testing.T) {
	issued := time.Date(2026, 3, 1, 8, 30, 15, 999, time.FixedZone("PHT", 8*3600))
	p := NewPayload("6f1c2b8e-1111-4a4a-9999-0123456789ab", "guest", "Ana Reyes", "MTQ", issued)

	data, err := p.Marshal()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"code": "6f1c2b8e-1111-4a4a-9999-0123456789ab",
		"type": "guest",
		"name": "Ana Reyes",
		"event": "MTQ",
		"issuedAt": "2026-03-01T00:30:15Z"
	}`, string(data))

	back, err := ParsePayload(data)
	require.NoError(t, err)
	if diff := cmp.Diff(p, back); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePayload_Rejects(t *testing.T) {
	_, err := ParsePayload([]byte("not json"))
	assert.Error(t, err)

	_, err = ParsePayload([]byte(`{"type":"guest"}`))
	assert.Error(t, err)
}

func TestCodes(t *testing.T) {
	a, b := NewCode(), NewCode()
	assert.NotEqual(t, a, b)
	assert.True(t, ValidCode(a))
	assert.False(t, ValidCode("ABC-123"))
	assert.Equal(t, "qr-codes/"+a+".png", ObjectKey(a))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "pass-juan-dela-cruz-6f1c2b8e.png", FileName("Juan  Dela Cruz!", "6f1c2b8e-1111"))
	assert.Equal(t, "pass-holder-abc.png", FileName("¡¡", "abc"))
}
