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

package replace

import (
	"github.com/walteh/recase/pkg/trie"
	"gitlab.com/tozd/go/errors"
)

// rule is the record behind one installed token.
type rule struct {
	replacement []byte
	wholeWord   bool
}

// 📦 patternSet pairs a token trie with the rule records its token ids index.
// One instance matches exactly, the other with ASCII case folding.
type patternSet struct {
	trie  *trie.Trie
	rules []rule
}

func newPatternSet(cmp trie.Comparer) patternSet {
	return patternSet{trie: trie.New(cmp)}
}

// add installs key with its replacement. It reports false without changing
// the set when key already resolves to a token under the set's comparer, so
// a folding set also rejects keys that differ from an existing one only in
// case.
func (s *patternSet) add(key, replacement []byte, wholeWord bool) (bool, error) {
	if len(key) == 0 {
		return false, errors.New("the key is empty")
	}
	if s.trie.LookupExact(key) != trie.InvalidToken {
		return false, nil
	}
	if err := s.trie.Insert(key, len(s.rules)); err != nil {
		return false, errors.Errorf("inserting token: %w", err)
	}
	s.rules = append(s.rules, rule{replacement: replacement, wholeWord: wholeWord})
	return true, nil
}

// find advances ctx to the next hit at or after ctx.cursor. At each position
// the longest token wins; a whole-word rule whose candidate fails the
// boundary gate is discarded and the scan resumes at the next position, not
// at the candidate's end. ctx.cursor is left untouched.
func (s *patternSet) find(ctx *searchContext) {
	for p := ctx.cursor; p < len(ctx.text); p++ {
		end, id := s.trie.MatchLongest(ctx.text, p)
		if id == trie.InvalidToken {
			continue
		}
		if s.rules[id].wholeWord && !isWholeWord(ctx.text, p, end) {
			continue
		}
		ctx.hitBegin = p
		ctx.hitEnd = end
		ctx.hitRule = id
		return
	}
	ctx.hitBegin = 0
	ctx.hitEnd = 0
	ctx.hitRule = trie.InvalidToken
}

// isWholeWord reports whether [begin,end) is bounded by non-alphanumeric
// bytes or the edges of the text.
func isWholeWord(text []byte, begin, end int) bool {
	if begin > 0 && isAlnum(text[begin-1]) {
		return false
	}
	if end < len(text) && isAlnum(text[end]) {
		return false
	}
	return true
}

func isAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// searchContext is the per-scan state of one pattern set. Two of these run
// side by side during a scan.
type searchContext struct {
	text     []byte
	cursor   int // where the next find starts; also the start of unwritten text
	hitBegin int
	hitEnd   int
	hitRule  int
}

func newSearchContext(text []byte) searchContext {
	return searchContext{text: text, hitRule: trie.InvalidToken}
}

func (c *searchContext) hasHit() bool {
	return c.hitRule != trie.InvalidToken
}

// advanceTo moves the cursor forward and drops a cached hit the new cursor
// has already passed.
func (c *searchContext) advanceTo(cursor int) {
	c.cursor = cursor
	if c.hasHit() && c.hitBegin < cursor {
		c.hitBegin = 0
		c.hitEnd = 0
		c.hitRule = trie.InvalidToken
	}
}

// overlaps reports whether the cached hits of both contexts cover common
// text or start at the same position.
func (c *searchContext) overlaps(other *searchContext) bool {
	return (c.hitBegin < other.hitEnd && other.hitBegin < c.hitEnd) ||
		c.hitBegin == other.hitBegin
}
