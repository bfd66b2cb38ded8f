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

package rules

import (
	"github.com/walteh/recase/pkg/replace"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// yamlFile mirrors the YAML replacements format. Top-level case-mode and
// match-whole-word set defaults that individual rules may override.
type yamlFile struct {
	CaseMode       string     `yaml:"case-mode"`
	MatchWholeWord bool       `yaml:"match-whole-word"`
	Rules          []yamlRule `yaml:"rules"`
}

type yamlRule struct {
	Find           string  `yaml:"find"`
	Replace        string  `yaml:"replace"`
	CaseMode       *string `yaml:"case-mode"`
	MatchWholeWord *bool   `yaml:"match-whole-word"`
}

// parseYAML parses the YAML replacements format.
func parseYAML(data []byte) ([]Rule, error) {
	var file yamlFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	defaultMode := replace.PreserveCase
	if file.CaseMode != "" {
		var err error
		defaultMode, err = replace.ParseCaseMode(file.CaseMode)
		if err != nil {
			return nil, err
		}
	}

	out := make([]Rule, 0, len(file.Rules))
	for i, r := range file.Rules {
		rule := Rule{
			Find:      r.Find,
			Replace:   r.Replace,
			Mode:      defaultMode,
			WholeWord: file.MatchWholeWord,
		}
		if r.CaseMode != nil {
			mode, err := replace.ParseCaseMode(*r.CaseMode)
			if err != nil {
				return nil, errors.Errorf("rule %d: %w", i, err)
			}
			rule.Mode = mode
		}
		if r.MatchWholeWord != nil {
			rule.WholeWord = *r.MatchWholeWord
		}
		out = append(out, rule)
	}
	return out, nil
}
