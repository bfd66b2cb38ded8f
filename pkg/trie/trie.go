// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package trie

import (
	"gitlab.com/tozd/go/errors"
)

// InvalidToken marks a node that does not terminate a token.
const InvalidToken = -1

// 🔍 Comparer reports whether a stored pattern byte matches an input byte.
// It is applied at search time only; insertion always uses byte equality so
// that the stored key is exactly what the caller provided.
type Comparer func(pattern, input byte) bool

// Exact matches bytes by identity.
func Exact(pattern, input byte) bool {
	return pattern == input
}

// FoldASCII matches ASCII letters case-insensitively. Bytes outside A-Z/a-z
// match by identity, so the trie stays 8-bit clean.
func FoldASCII(pattern, input byte) bool {
	return foldByte(pattern) == foldByte(input)
}

func foldByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// node is one arena entry. children holds arena indices in insertion order;
// fan-out is small in practice, so a linear scan beats a map here.
type node struct {
	children []int32
	tokenID  int
	char     byte
}

// 🌳 Trie is a token prefix tree over raw bytes. Tokens are inserted once and
// never removed. Search walks with the configured Comparer and always prefers
// the longest terminal on a path, e.g. with tokens "do" and "double" the
// input "double garage" matches "double".
type Trie struct {
	nodes []node
	cmp   Comparer
}

// New creates an empty trie using cmp for search-time matching.
func New(cmp Comparer) *Trie {
	return &Trie{
		// nodes[0] is the synthetic root; its char and tokenID are unused.
		nodes: []node{{tokenID: InvalidToken}},
		cmp:   cmp,
	}
}

// Insert adds key as a token terminal carrying id. The walk uses byte
// equality regardless of the search Comparer. Inserting an empty key, an
// invalid id, or a key whose terminal is already taken is an error.
func (t *Trie) Insert(key []byte, id int) error {
	if len(key) == 0 {
		return errors.New("failed to add token: the key is empty")
	}
	if id == InvalidToken {
		return errors.New("failed to add token: the token id is invalid")
	}

	cur := int32(0)
	for _, c := range key {
		next := int32(-1)
		for _, child := range t.nodes[cur].children {
			if t.nodes[child].char == c {
				next = child
				break
			}
		}
		if next < 0 {
			next = int32(len(t.nodes))
			t.nodes = append(t.nodes, node{char: c, tokenID: InvalidToken})
			t.nodes[cur].children = append(t.nodes[cur].children, next)
		}
		cur = next
	}

	if t.nodes[cur].tokenID != InvalidToken {
		// A terminal may be claimed once, even for an identical id.
		return errors.New("failed to add token: it has already been added")
	}
	t.nodes[cur].tokenID = id
	return nil
}

// LookupExact walks the whole key with the search Comparer and returns the
// token id at its endpoint, or InvalidToken. With a folding Comparer this
// collapses case-variant keys, which is what the duplicate guard above the
// trie needs.
func (t *Trie) LookupExact(key []byte) int {
	cur := int32(0)
	for _, c := range key {
		next := int32(-1)
		for _, child := range t.nodes[cur].children {
			if t.cmp(t.nodes[child].char, c) {
				next = child
				break
			}
		}
		if next < 0 {
			return InvalidToken
		}
		cur = next
	}
	return t.nodes[cur].tokenID
}

// MatchLongest descends from text[pos] and returns the end offset and id of
// the longest token terminating on the walked path. id is InvalidToken when
// nothing matches at pos.
func (t *Trie) MatchLongest(text []byte, pos int) (end int, id int) {
	end, id = pos, InvalidToken
	cur := int32(0)
	for i := pos; i < len(text); i++ {
		next := int32(-1)
		for _, child := range t.nodes[cur].children {
			if t.cmp(t.nodes[child].char, text[i]) {
				next = child
				break
			}
		}
		if next < 0 {
			break
		}
		if t.nodes[next].tokenID != InvalidToken {
			// Keep walking, a longer token may still terminate below.
			end, id = i+1, t.nodes[next].tokenID
		}
		cur = next
	}
	return end, id
}

// Len returns the number of token terminals stored.
func (t *Trie) Len() int {
	n := 0
	for i := range t.nodes {
		if t.nodes[i].tokenID != InvalidToken {
			n++
		}
	}
	return n
}
