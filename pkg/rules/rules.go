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

// Package rules loads replacement rules from files and command-line
// arguments.
package rules

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/walteh/recase/pkg/replace"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Rule is one find/replace instruction for the engine.
type Rule struct {
	Find      string
	Replace   string
	Mode      replace.CaseMode
	WholeWord bool
}

// Install adds every rule to the replacer, stopping at the first failure.
func Install(r *replace.Replacer, rules []Rule) error {
	for _, rule := range rules {
		if err := r.AddReplacement(rule.Find, rule.Replace, rule.Mode, rule.WholeWord); err != nil {
			return errors.Errorf("installing rule %q -> %q: %w", rule.Find, rule.Replace, err)
		}
	}
	return nil
}

// Load reads a replacements file. The format is determined by the file
// extension: .yaml/.yml for YAML, .hcl for HCL, anything else is the plain
// line format.
func Load(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading replacements file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(data)
	case ".hcl":
		return parseHCL(data, filepath.Base(path))
	}
	return ParsePlain(data)
}

// plain-format keys
const (
	keyTextToFind      = "text-to-find"
	keyReplacementText = "replacement-text"
	keyCaseMode        = "case-mode"
	keyMatchWholeWord  = "match-whole-word"
	keyPair            = "pair"

	pairSeparator = "-->"
)

// ParsePlain parses the line-oriented replacements format:
//
//	# comment
//	case-mode=preserve
//	match-whole-word=true
//	text-to-find=old name
//	replacement-text=new name
//	pair=old-->new
//	bare-old-->bare-new
//
// case-mode and match-whole-word are sticky until reassigned. A rule is
// emitted whenever a find text and a replacement text are both present, by
// whichever syntax supplied them. Unknown keys and malformed lines are
// errors.
func ParsePlain(data []byte) ([]Rule, error) {
	var out []Rule

	mode := replace.PreserveCase
	wholeWord := false
	var find, replacement *string

	emit := func() {
		if find == nil || replacement == nil {
			return
		}
		out = append(out, Rule{Find: *find, Replace: *replacement, Mode: mode, WholeWord: wholeWord})
		find = nil
		replacement = nil
	}

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, value, hasEq := strings.Cut(trimmed, "=")
		if hasEq {
			key = strings.TrimSpace(key)
		}

		switch {
		case hasEq && key == keyTextToFind:
			decoded, err := DecodeEscapes(value)
			if err != nil {
				return nil, lineError(i, err)
			}
			find = &decoded
			emit()
		case hasEq && key == keyReplacementText:
			decoded, err := DecodeEscapes(value)
			if err != nil {
				return nil, lineError(i, err)
			}
			replacement = &decoded
			emit()
		case hasEq && key == keyCaseMode:
			m, err := replace.ParseCaseMode(strings.TrimSpace(value))
			if err != nil {
				return nil, lineError(i, err)
			}
			mode = m
		case hasEq && key == keyMatchWholeWord:
			switch strings.TrimSpace(value) {
			case "true":
				wholeWord = true
			case "false":
				wholeWord = false
			default:
				return nil, lineError(i, errors.Errorf("invalid %s value %q", keyMatchWholeWord, value))
			}
		case hasEq && key == keyPair:
			f, r, err := splitPair(value)
			if err != nil {
				return nil, lineError(i, err)
			}
			find, replacement = &f, &r
			emit()
		case strings.Contains(trimmed, pairSeparator):
			f, r, err := splitPair(trimmed)
			if err != nil {
				return nil, lineError(i, err)
			}
			find, replacement = &f, &r
			emit()
		case hasEq:
			return nil, lineError(i, errors.Errorf("unknown key %q", key))
		default:
			return nil, lineError(i, errors.Errorf("malformed line %q", trimmed))
		}
	}

	return out, nil
}

// splitPair decodes "A-->B" into its find and replacement halves.
func splitPair(s string) (string, string, error) {
	rawFind, rawReplace, ok := strings.Cut(s, pairSeparator)
	if !ok {
		return "", "", errors.Errorf("pair value %q is missing the %q separator", s, pairSeparator)
	}
	find, err := DecodeEscapes(rawFind)
	if err != nil {
		return "", "", err
	}
	replacement, err := DecodeEscapes(rawReplace)
	if err != nil {
		return "", "", err
	}
	return find, replacement, nil
}

func lineError(index int, err error) error {
	return errors.Errorf("line %d: %w", index+1, err)
}
