package questionbank

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `version: v1.2.0
categories:
  - id: trust
    name: Trust
    icon: "🤝"
  - id: safety
    name: Safety
questions:
  - id: 10
    category: safety
    question: Are you afraid of your partner?
    weight: 5
    critical: true
  - id: 11
    category: trust
    question: Do you believe what your partner tells you?
    weight: 3
    reversed: true
`

func TestLoad_YAML(t *testing.T) {
	b, err := Load([]byte(sampleYAML), "yaml")
	require.NoError(t, err)

	assert.Equal(t, 2, b.Len())
	q, ok := b.Question(10)
	require.True(t, ok)
	assert.True(t, q.Critical)
	assert.Equal(t, "safety", q.Category)

	// Traversal follows category order, not question order.
	order := b.TraversalOrder()
	assert.Equal(t, 11, order[0].ID)
	assert.Equal(t, 10, order[1].ID)
}

func TestLoadFile_ExportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, format := range []string{"yaml", "json"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Export(&buf, Default(), format))

			path := filepath.Join(dir, "bank."+format)
			require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

			b, err := LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, Default().AllQuestions(), b.AllQuestions())
			assert.Equal(t, Default().Categories(), b.Categories())
		})
	}
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		format string
		want   string
	}{
		{
			name:   "unsupported major",
			doc:    strings.Replace(sampleYAML, "v1.2.0", "v2.0.0", 1),
			format: "yaml",
			want:   "unsupported bank version",
		},
		{
			name:   "bad version",
			doc:    strings.Replace(sampleYAML, "v1.2.0", "latest", 1),
			format: "yaml",
			want:   "invalid bank version",
		},
		{
			name:   "schema violation",
			doc:    strings.Replace(sampleYAML, "weight: 3", "weight: heavy", 1),
			format: "yaml",
			want:   "schema validation failed",
		},
		{
			name:   "unknown category",
			doc:    strings.Replace(sampleYAML, "category: trust", "category: joy", 1),
			format: "yaml",
			want:   `unknown category "joy"`,
		},
		{
			name:   "malformed json",
			doc:    `{"version":`,
			format: "json",
			want:   "invalid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc), tt.format)
			require.Error(t, err)
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "got %T", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
