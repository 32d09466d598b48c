package questionbank

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_DefaultBank(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("default bank failed validation: %v", err)
	}
}

func TestValidate_Problems(t *testing.T) {
	cats := []Category{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}
	tests := []struct {
		name      string
		cats      []Category
		questions []Question
		want      string
	}{
		{
			name:      "unknown category",
			cats:      cats[:1],
			questions: []Question{{ID: 1, Category: "a", Prompt: "p", Weight: 1}, {ID: 2, Category: "zzz", Prompt: "p", Weight: 1}},
			want:      `unknown category "zzz"`,
		},
		{
			name:      "duplicate question id",
			cats:      cats[:1],
			questions: []Question{{ID: 1, Category: "a", Prompt: "p", Weight: 1}, {ID: 1, Category: "a", Prompt: "q", Weight: 1}},
			want:      "duplicate question ID: 1",
		},
		{
			name:      "duplicate category id",
			cats:      []Category{{ID: "a"}, {ID: "a"}},
			questions: []Question{{ID: 1, Category: "a", Prompt: "p", Weight: 1}},
			want:      `duplicate category ID: "a"`,
		},
		{
			name:      "zero weight",
			cats:      cats[:1],
			questions: []Question{{ID: 1, Category: "a", Prompt: "p"}},
			want:      "non-positive weight",
		},
		{
			name:      "empty prompt",
			cats:      cats[:1],
			questions: []Question{{ID: 1, Category: "a", Prompt: "  ", Weight: 1}},
			want:      "empty prompt",
		},
		{
			name:      "unused category",
			cats:      cats,
			questions: []Question{{ID: 1, Category: "a", Prompt: "p", Weight: 1}},
			want:      `category "b" has no questions`,
		},
		{
			name: "empty bank",
			want: "no questions defined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cats, tt.questions)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("got %T, want *ConfigurationError", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	_, err := New(
		[]Category{{ID: "a"}},
		[]Question{
			{ID: 1, Category: "x", Prompt: "p", Weight: 1},
			{ID: 1, Category: "a", Prompt: "", Weight: 0},
		},
	)
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("got %v, want *ConfigurationError", err)
	}
	if len(cfgErr.Problems) != 4 {
		t.Errorf("got %d problems, want 4: %v", len(cfgErr.Problems), cfgErr.Problems)
	}
}
