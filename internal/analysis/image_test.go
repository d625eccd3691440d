package analysis_test

import (
	"errors"
	"testing"

	"github.com/JaimeStill/canopy/internal/analysis"
)

var (
	jpeg = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	png  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	text = []byte("just some plain text")
)

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		data        []byte
		want        string
		wantErr     bool
	}{
		{"declared image type", "leaf.bin", "image/jpeg", text, "image/jpeg", false},
		{"sniffed jpeg", "leaf", "application/octet-stream", jpeg, "image/jpeg", false},
		{"sniffed png", "leaf.dat", "", png, "image/png", false},
		{"extension heic", "leaf.HEIC", "application/octet-stream", text, "image/heic", false},
		{"extension webp", "leaf.webp", "", text, "image/webp", false},
		{"not an image", "notes.txt", "text/plain", text, "", true},
		{"empty file", "leaf.jpg", "image/jpeg", nil, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := analysis.ValidateImage(tt.filename, tt.contentType, tt.data)

			if tt.wantErr {
				if !errors.Is(err, analysis.ErrInvalidImage) {
					t.Fatalf("err = %v, want ErrInvalidImage", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("content type = %s, want %s", got, tt.want)
			}
		})
	}
}
