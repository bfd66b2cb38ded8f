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
	"io"
	"strings"

	"github.com/walteh/recase/pkg/casing"
	"github.com/walteh/recase/pkg/trie"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrInvalidArgument marks rejected rule input: an empty find text, an
	// unknown case mode, or a find text with no words under PreserveCase.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDuplicateToken marks a MatchCase or IgnoreCase rule whose find
	// text is already installed in the target pattern set.
	ErrDuplicateToken = errors.New("duplicate token")
)

// 🔄 CaseMode selects how a rule's find text is matched and how its
// replacement is rendered.
type CaseMode int

const (
	// PreserveCase matches every canonical casing of the find text and
	// renders the replacement in the casing of each hit.
	PreserveCase CaseMode = iota
	// IgnoreCase matches the find text with ASCII case folding and inserts
	// the replacement verbatim.
	IgnoreCase
	// MatchCase matches the find text byte for byte and inserts the
	// replacement verbatim.
	MatchCase
)

// ParseCaseMode maps the CLI spelling of a case mode onto its value.
func ParseCaseMode(s string) (CaseMode, error) {
	switch s {
	case "preserve":
		return PreserveCase, nil
	case "ignore":
		return IgnoreCase, nil
	case "match":
		return MatchCase, nil
	}
	return 0, errors.Errorf("unknown case mode %q: %w", s, ErrInvalidArgument)
}

// String returns the CLI spelling of the mode.
func (m CaseMode) String() string {
	switch m {
	case PreserveCase:
		return "preserve"
	case IgnoreCase:
		return "ignore"
	case MatchCase:
		return "match"
	}
	return "unknown"
}

// 🔍 Replacer performs multi-pattern find and replace with optional case
// preservation. Install rules with AddReplacement, then scan with
// FindAndReplace. A Replacer must not be mutated while scans are running;
// completed installation makes concurrent scans safe.
type Replacer struct {
	exact patternSet // byte-for-byte matching
	fold  patternSet // ASCII case-folded matching
}

// New creates an empty Replacer.
func New() *Replacer {
	return &Replacer{
		exact: newPatternSet(trie.Exact),
		fold:  newPatternSet(trie.FoldASCII),
	}
}

// AddReplacement installs one rule. Under PreserveCase the find and
// replacement texts are split into words and every canonical casing variant
// of the pair is installed; variants that render to the same key collapse
// silently. Under IgnoreCase and MatchCase the texts are installed verbatim
// and a find text that is already present is an error. A failed call leaves
// the Replacer unchanged.
func (r *Replacer) AddReplacement(find, replacement string, mode CaseMode, wholeWord bool) error {
	if find == "" {
		return errors.Errorf("the text to find is empty: %w", ErrInvalidArgument)
	}

	switch mode {
	case PreserveCase:
		findWords := casing.SplitWords(find)
		if len(findWords) == 0 {
			return errors.Errorf("the text to find %q contains no words: %w", find, ErrInvalidArgument)
		}
		replacementWords := casing.SplitWords(replacement)
		for _, style := range casing.Styles() {
			key := casing.Render(findWords, style)
			rendered := casing.Render(replacementWords, style)
			if _, err := r.exact.add([]byte(key), []byte(rendered), wholeWord); err != nil {
				return errors.Errorf("adding %s variant of %q: %w", style, find, err)
			}
		}
	case IgnoreCase:
		added, err := r.fold.add([]byte(find), []byte(replacement), wholeWord)
		if err != nil {
			return errors.Errorf("adding %q: %w", find, err)
		}
		if !added {
			return errors.Errorf("the text to find %q is already installed: %w", find, ErrDuplicateToken)
		}
	case MatchCase:
		added, err := r.exact.add([]byte(find), []byte(replacement), wholeWord)
		if err != nil {
			return errors.Errorf("adding %q: %w", find, err)
		}
		if !added {
			return errors.Errorf("the text to find %q is already installed: %w", find, ErrDuplicateToken)
		}
	default:
		return errors.Errorf("unknown case mode %d: %w", mode, ErrInvalidArgument)
	}
	return nil
}

// FindAndReplace scans text once, left to right, writing unmatched spans and
// replacements to w. It returns the number of replacements made. The engine
// treats text as raw bytes; ill-formed UTF-8 scans fine. Errors come only
// from w.
//
// Both pattern sets search in lock step. The earlier hit wins; at equal
// start positions the exact set wins; within a set the longest token wins.
// Replaced spans never overlap.
func (r *Replacer) FindAndReplace(text []byte, w io.Writer) (int, error) {
	if len(text) == 0 {
		return 0, nil
	}

	ex := newSearchContext(text)
	fo := newSearchContext(text)
	r.exact.find(&ex)
	r.fold.find(&fo)

	count := 0
	for ex.hasHit() || fo.hasHit() {
		switch {
		case ex.hasHit() && fo.hasHit():
			a, fa := &ex, &r.exact
			b, fb := &fo, &r.fold
			if fo.hitBegin < ex.hitBegin {
				a, fa, b, fb = &fo, &r.fold, &ex, &r.exact
			}
			overlapped := a.overlaps(b)
			if err := writeHit(a, fa, w); err != nil {
				return count, err
			}
			count++
			a.cursor = a.hitEnd
			fa.find(a)
			b.advanceTo(a.cursor)
			if overlapped {
				fb.find(b)
			}
		case ex.hasHit():
			if err := writeHit(&ex, &r.exact, w); err != nil {
				return count, err
			}
			count++
			ex.cursor = ex.hitEnd
			r.exact.find(&ex)
		default:
			if err := writeHit(&fo, &r.fold, w); err != nil {
				return count, err
			}
			count++
			fo.cursor = fo.hitEnd
			r.fold.find(&fo)
		}
	}

	tail := ex.cursor
	if fo.cursor > tail {
		tail = fo.cursor
	}
	if tail < len(text) {
		if err := writeAll(w, text[tail:]); err != nil {
			return count, err
		}
	}
	return count, nil
}

// ReplaceString is the convenience form of FindAndReplace returning a new
// string.
func (r *Replacer) ReplaceString(text string) string {
	if text == "" {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	// strings.Builder never returns a write error.
	_, _ = r.FindAndReplace([]byte(text), &b)
	return b.String()
}

// writeHit emits the literal span before the hit and the hit's replacement.
func writeHit(ctx *searchContext, set *patternSet, w io.Writer) error {
	if err := writeAll(w, ctx.text[ctx.cursor:ctx.hitBegin]); err != nil {
		return err
	}
	return writeAll(w, set.rules[ctx.hitRule].replacement)
}

func writeAll(w io.Writer, p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if _, err := w.Write(p); err != nil {
		return errors.Errorf("writing to sink: %w", err)
	}
	return nil
}
