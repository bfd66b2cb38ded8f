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
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/walteh/recase/pkg/replace"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

// hclFile mirrors the HCL replacements format:
//
//	case_mode        = "preserve" # optional default
//	match_whole_word = false      # optional default
//
//	rule {
//	  find    = "old_name"
//	  replace = "new_name"
//	}
type hclFile struct {
	CaseMode       *string   `hcl:"case_mode,optional"`
	MatchWholeWord *bool     `hcl:"match_whole_word,optional"`
	Rules          []hclRule `hcl:"rule,block"`
}

type hclRule struct {
	Find           string  `hcl:"find"`
	Replace        string  `hcl:"replace"`
	CaseMode       *string `hcl:"case_mode,optional"`
	MatchWholeWord *bool   `hcl:"match_whole_word,optional"`
}

// parseHCL parses the HCL replacements format.
func parseHCL(data []byte, filename string) ([]Rule, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var cfg hclFile
	diags = gohcl.DecodeBody(file.Body, evalCtx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	defaultMode := replace.PreserveCase
	if cfg.CaseMode != nil {
		var err error
		defaultMode, err = replace.ParseCaseMode(*cfg.CaseMode)
		if err != nil {
			return nil, err
		}
	}
	defaultWholeWord := cfg.MatchWholeWord != nil && *cfg.MatchWholeWord

	out := make([]Rule, 0, len(cfg.Rules))
	for i, r := range cfg.Rules {
		rule := Rule{
			Find:      r.Find,
			Replace:   r.Replace,
			Mode:      defaultMode,
			WholeWord: defaultWholeWord,
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
