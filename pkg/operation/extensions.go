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

package operation

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"
)

// defaultExtensions lists the text file extensions processed when no
// --extensions override is given.
var defaultExtensions = []string{
	".txt", ".md", ".c", ".cpp", ".h", ".hpp", ".cs", ".java", ".py", ".js",
	".html", ".css", ".xml", ".json", ".yaml", ".yml", ".sh", ".bat", ".ps1",
	".cmake", ".rst", ".tex", ".vndf", ".epdf", ".qml", ".qrc",
}

// shouldProcess reports whether the file passes the extension filter.
// Overrides are glob patterns matched against the base name; a plain
// extension like ".go" or "go" is normalized to "*.go" first.
func (p *Processor) shouldProcess(path string) bool {
	if len(p.opts.Extensions) == 0 {
		ext := filepath.Ext(path)
		for _, known := range defaultExtensions {
			if ext == known {
				return true
			}
		}
		return false
	}

	base := filepath.Base(path)
	for _, pattern := range p.opts.Extensions {
		matched, err := doublestar.Match(normalizePattern(pattern), base)
		if err != nil {
			log.Debug().Str("pattern", pattern).Str("path", path).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// normalizePattern turns bare extensions into globs.
func normalizePattern(pattern string) string {
	if strings.ContainsAny(pattern, "*?[{") {
		return pattern
	}
	if strings.HasPrefix(pattern, ".") {
		return "*" + pattern
	}
	return "*." + pattern
}
