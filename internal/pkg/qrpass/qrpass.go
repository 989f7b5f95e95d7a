// Package qrpass builds the payload and PNG image of event passes.
package qrpass

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

// ImageSize is the edge length of rendered passes in pixels.
const ImageSize = 256

// Payload is the JSON document encoded inside each QR image.
type Payload struct {
	Code     string    `json:"code"`
	Type     string    `json:"type"`
	Name     string    `json:"name"`
	Event    string    `json:"event"`
	IssuedAt time.Time `json:"issuedAt"`
}

// NewCode returns a fresh random pass code.
func NewCode() string {
	return uuid.NewString()
}

// ValidCode reports whether code has the shape of an issued pass code.
func ValidCode(code string) bool {
	_, err := uuid.Parse(code)
	return err == nil
}

// NewPayload fills a payload for a holder of the given type.
func NewPayload(code, holderType, name, event string, issuedAt time.Time) Payload {
	return Payload{
		Code:     code,
		Type:     holderType,
		Name:     name,
		Event:    event,
		IssuedAt: issuedAt.UTC().Truncate(time.Second),
	}
}

// Marshal encodes the payload as JSON.
func (p Payload) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// ParsePayload decodes a payload previously produced by Marshal.
func ParsePayload(data []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, fmt.Errorf("invalid pass payload: %w", err)
	}
	if p.Code == "" {
		return Payload{}, fmt.Errorf("invalid pass payload: missing code")
	}
	return p, nil
}

// Render encodes the payload JSON into a PNG at medium recovery level.
func Render(p Payload) ([]byte, error) {
	data, err := p.Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to encode pass payload: %w", err)
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, ImageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return png, nil
}

// ObjectKey is where a pass image is stored.
func ObjectKey(code string) string {
	return "qr-codes/" + code + ".png"
}

// FileName is the attachment name used in emails.
func FileName(name, code string) string {
	short := code
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("pass-%s-%s.png", slug(name), short)
}

func slug(s string) string {
	out := make([]rune, 0, len(s))
	dash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
			dash = false
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
			dash = false
		default:
			if !dash && len(out) > 0 {
				out = append(out, '-')
				dash = true
			}
		}
	}
	if n := len(out); n > 0 && out[n-1] == '-' {
		out = out[:n-1]
	}
	if len(out) == 0 {
		return "holder"
	}
	return string(out)
}
