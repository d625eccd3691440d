package formatting_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/JaimeStill/canopy/pkg/formatting"
)

type prediction struct {
	PredictedClass string  `json:"predicted_class"`
	Confidence     float64 `json:"confidence"`
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantClass string
		wantErr   bool
	}{
		{
			name:      "single record",
			input:     `{"predicted_class":"late_blight","confidence":0.91}`,
			wantClass: "late_blight",
		},
		{
			name:      "surrounding whitespace",
			input:     "\n  {\"predicted_class\":\"healthy\",\"confidence\":0.5}  \n",
			wantClass: "healthy",
		},
		{
			name:      "banner lines before record",
			input:     "Using TensorFlow backend.\n1/1 [==============================] - 0s\n{\"predicted_class\":\"leaf_mold\",\"confidence\":0.8}",
			wantClass: "leaf_mold",
		},
		{
			name:    "trailing noise after record",
			input:   "{\"predicted_class\":\"leaf_mold\",\"confidence\":0.8}\ndone",
			wantErr: true,
		},
		{
			name:    "not json",
			input:   "Traceback (most recent call last):",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "   ",
			wantErr: true,
		},
		{
			name:    "array instead of record",
			input:   `[{"predicted_class":"healthy"}]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.Parse[prediction](tt.input)
			if tt.wantErr {
				if !errors.Is(err, formatting.ErrParseFailed) {
					t.Fatalf("error = %v, want ErrParseFailed", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			if got.PredictedClass != tt.wantClass {
				t.Errorf("PredictedClass = %q, want %q", got.PredictedClass, tt.wantClass)
			}
		})
	}
}

func TestExcerpt(t *testing.T) {
	long := strings.Repeat("a", 50) + "END"

	if got := formatting.Excerpt(long, 10); got != "..."+long[len(long)-10:] {
		t.Errorf("Excerpt = %q", got)
	}
	if got := formatting.Excerpt("  short  ", 10); got != "short" {
		t.Errorf("Excerpt = %q, want short", got)
	}
	if got := formatting.Excerpt(long, 0); got != long {
		t.Errorf("Excerpt with zero limit = %q, want input", got)
	}
}
