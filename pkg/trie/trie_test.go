package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrie_MatchLongest(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []string
		text    string
		pos     int
		wantEnd int
		wantID  int
	}{
		{
			name:    "single_token",
			tokens:  []string{"auto"},
			text:    "autobahn",
			pos:     0,
			wantEnd: 4,
			wantID:  0,
		},
		{
			name:    "longest_wins",
			tokens:  []string{"do", "double", "dolphin"},
			text:    "double garage",
			pos:     0,
			wantEnd: 6,
			wantID:  1,
		},
		{
			name:    "shorter_token_when_long_diverges",
			tokens:  []string{"do", "double"},
			text:    "dozen",
			pos:     0,
			wantEnd: 2,
			wantID:  0,
		},
		{
			name:    "no_match",
			tokens:  []string{"do", "double"},
			text:    "cat",
			pos:     0,
			wantEnd: 0,
			wantID:  InvalidToken,
		},
		{
			name:    "match_at_offset",
			tokens:  []string{"dolphin"},
			text:    "a dolphin",
			pos:     2,
			wantEnd: 9,
			wantID:  0,
		},
		{
			name:    "prefix_only_is_no_match",
			tokens:  []string{"double"},
			text:    "doub",
			pos:     0,
			wantEnd: 0,
			wantID:  InvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(Exact)
			for id, tok := range tokensOf(tt.tokens) {
				require.NoError(t, tr.Insert(tok, id))
			}

			end, id := tr.MatchLongest([]byte(tt.text), tt.pos)
			assert.Equal(t, tt.wantID, id, "token id")
			if tt.wantID != InvalidToken {
				assert.Equal(t, tt.wantEnd, end, "token end")
			}
		})
	}
}

func TestTrie_FoldASCII(t *testing.T) {
	tr := New(FoldASCII)
	require.NoError(t, tr.Insert([]byte("Foo_Bar"), 0))

	end, id := tr.MatchLongest([]byte("FOO_BAR baz"), 0)
	assert.Equal(t, 0, id)
	assert.Equal(t, 7, end)

	end, id = tr.MatchLongest([]byte("foo_bar"), 0)
	assert.Equal(t, 0, id)
	assert.Equal(t, 7, end)

	// Bytes outside the ASCII letters match only themselves.
	_, id = tr.MatchLongest([]byte("foo-bar"), 0)
	assert.Equal(t, InvalidToken, id)
}

func TestTrie_Insert_Errors(t *testing.T) {
	tr := New(Exact)
	require.NoError(t, tr.Insert([]byte("one"), 0))

	assert.Error(t, tr.Insert([]byte("one"), 1), "duplicate terminal")
	assert.Error(t, tr.Insert([]byte("one"), 0), "duplicate terminal with same id")
	assert.Error(t, tr.Insert(nil, 2), "empty key")
	assert.Error(t, tr.Insert([]byte("two"), InvalidToken), "invalid id")

	// A shared prefix is not a duplicate.
	require.NoError(t, tr.Insert([]byte("o"), 1))
	require.NoError(t, tr.Insert([]byte("onetwo"), 2))
	assert.Equal(t, 3, tr.Len())
}

func TestTrie_LookupExact(t *testing.T) {
	tr := New(FoldASCII)
	require.NoError(t, tr.Insert([]byte("FOO"), 7))

	assert.Equal(t, 7, tr.LookupExact([]byte("foo")))
	assert.Equal(t, 7, tr.LookupExact([]byte("FOO")))
	assert.Equal(t, 7, tr.LookupExact([]byte("fOo")))
	assert.Equal(t, InvalidToken, tr.LookupExact([]byte("fo")), "proper prefix")
	assert.Equal(t, InvalidToken, tr.LookupExact([]byte("food")), "longer key")
}

// tokensOf keeps the table entries readable as plain strings.
func tokensOf(ss []string) [][]byte {
	out := make([][]byte, len(ss))
	for i, s := range ss {
		out[i] = []byte(s)
	}
	return out
}
