package wordbook

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Merge(t *testing.T) {
	tests := []struct {
		name      string
		other     any
		want      []Entry
		wantCount int
		wantErr   bool
	}{
		{
			name:      "string map overwrites and inserts",
			other:     map[string]string{"b": "y", "a": "x"},
			want:      []Entry{{Word: "a", Definition: "x"}, {Word: "b", Definition: "y"}},
			wantCount: 2,
		},
		{
			name:      "generic map of strings",
			other:     map[string]any{"a": "x", "c": "z"},
			want:      []Entry{{Word: "a", Definition: "x"}, {Word: "c", Definition: "z"}},
			wantCount: 2,
		},
		{
			name:      "entries keep their order and are stored as given",
			other:     []Entry{{Word: "d", Definition: " four "}, {Word: "c", Definition: "three"}},
			want:      []Entry{{Word: "a", Definition: "old"}, {Word: "d", Definition: " four "}, {Word: "c", Definition: "three"}},
			wantCount: 2,
		},
		{
			name:      "padded word is a different word",
			other:     []Entry{{Word: " a", Definition: "  padded  "}},
			want:      []Entry{{Word: "a", Definition: "old"}, {Word: " a", Definition: "  padded  "}},
			wantCount: 1,
		},
		{
			name:      "whitespace-only word is kept",
			other:     map[string]string{"   ": "blank"},
			want:      []Entry{{Word: "a", Definition: "old"}, {Word: "   ", Definition: "blank"}},
			wantCount: 1,
		},
		{
			name:      "another store",
			other:     newStore(t, Entry{Word: "a", Definition: "from store"}),
			want:      []Entry{{Word: "a", Definition: "from store"}},
			wantCount: 1,
		},
		{
			name:      "empty map",
			other:     map[string]string{},
			want:      []Entry{{Word: "a", Definition: "old"}},
			wantCount: 0,
		},
		{
			name:    "array is rejected",
			other:   []any{1, 2, 3},
			wantErr: true,
		},
		{
			name:    "nested object is rejected",
			other:   map[string]any{"a": "x", "b": map[string]any{"c": "d"}},
			wantErr: true,
		},
		{
			name:    "non-string value is rejected",
			other:   map[string]any{"a": "x", "b": 2.0},
			wantErr: true,
		},
		{
			name:    "empty word is rejected",
			other:   map[string]string{"a": "x", "": "blank"},
			wantErr: true,
		},
		{
			name:    "string is rejected",
			other:   "a",
			wantErr: true,
		},
		{
			name:    "nil is rejected",
			other:   nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t, Entry{Word: "a", Definition: "old"})

			count, err := store.Merge(tt.other)
			if tt.wantErr {
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Zero(t, count)
				assert.Equal(t, []Entry{{Word: "a", Definition: "old"}}, store.Entries())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, count)
			assert.Equal(t, tt.want, store.Entries())
		})
	}
}

func TestStore_Import(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      []Entry
		wantCount int
		wantErr   bool
	}{
		{
			name:      "object keeps file order",
			input:     `{"zeta": "last letter", "a": "x", "alpha": "first letter"}`,
			want:      []Entry{{Word: "a", Definition: "x"}, {Word: "zeta", Definition: "last letter"}, {Word: "alpha", Definition: "first letter"}},
			wantCount: 3,
		},
		{
			name:      "padded words and definitions are kept as written",
			input:     `{" a": "  padded  ", "a": "z"}`,
			want:      []Entry{{Word: "a", Definition: "z"}, {Word: " a", Definition: "  padded  "}},
			wantCount: 2,
		},
		{
			name:      "whitespace-only word",
			input:     `{"   ": "ws key"}`,
			want:      []Entry{{Word: "a", Definition: "old"}, {Word: "   ", Definition: "ws key"}},
			wantCount: 1,
		},
		{
			name:    "empty word",
			input:   `{"": "no word"}`,
			wantErr: true,
		},
		{
			name:    "array",
			input:   `[1, 2, 3]`,
			wantErr: true,
		},
		{
			name:    "nested",
			input:   `{"a": ["x"]}`,
			wantErr: true,
		},
		{
			name:    "not JSON",
			input:   `a = x`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t, Entry{Word: "a", Definition: "old"})

			count, err := store.Import(strings.NewReader(tt.input))
			if tt.wantErr {
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, []Entry{{Word: "a", Definition: "old"}}, store.Entries())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, count)
			assert.Equal(t, tt.want, store.Entries())
		})
	}
}
