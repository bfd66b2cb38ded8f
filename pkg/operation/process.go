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

// Package operation walks paths and applies replacement rules to file
// contents and filenames.
package operation

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/recase/pkg/log"
	"github.com/walteh/recase/pkg/replace"
	"github.com/walteh/recase/pkg/rules"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🔧 Options configures a processing run.
type Options struct {
	Rules      []rules.Rule
	Recursive  bool     // descend into subdirectories
	DryRun     bool     // report without touching the filesystem
	NoRename   bool     // leave filenames alone
	Async      bool     // process files concurrently
	Extensions []string // filename patterns overriding the default list
	Logger     *log.Logger
}

// 📊 Summary aggregates the results of a run.
type Summary struct {
	Scanned      int // files that passed the extension filter
	Modified     int // files whose content changed
	Renamed      int // files whose name changed
	Replacements int // total replacements across all files
}

// 🏭 Processor applies one rule set to files and filenames.
type Processor struct {
	replacer *replace.Replacer
	opts     Options

	mu      sync.Mutex
	summary Summary
}

// New builds a Processor, installing every rule up front so that rule
// errors surface before any file is touched.
func New(opts Options) (*Processor, error) {
	r := replace.New()
	if err := rules.Install(r, opts.Rules); err != nil {
		return nil, err
	}
	return &Processor{replacer: r, opts: opts}, nil
}

// Run processes every given path: files directly, directories by listing
// (recursively when configured). It stops at the first failure.
func (p *Processor) Run(ctx context.Context, paths []string) (Summary, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return p.summary, errors.Errorf("inspecting path: %w", err)
		}
		if info.IsDir() {
			found, err := p.collectDir(path)
			if err != nil {
				return p.summary, err
			}
			files = append(files, found...)
			continue
		}
		files = append(files, path)
	}

	zerolog.Ctx(ctx).Debug().
		Int("files", len(files)).
		Bool("async", p.opts.Async).
		Msg("processing files")

	if p.opts.Async {
		eg, ctx := errgroup.WithContext(ctx)
		eg.SetLimit(runtime.GOMAXPROCS(0))
		for _, file := range files {
			file := file
			eg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return errors.Errorf("processing interrupted: %w", err)
				}
				return p.processFile(ctx, file)
			})
		}
		if err := eg.Wait(); err != nil {
			return p.summary, err
		}
		return p.summary, nil
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return p.summary, errors.Errorf("processing interrupted: %w", err)
		}
		if err := p.processFile(ctx, file); err != nil {
			return p.summary, err
		}
	}
	return p.summary, nil
}

// collectDir lists the files under dir honoring the recursive option.
func (p *Processor) collectDir(dir string) ([]string, error) {
	var files []string
	if p.opts.Recursive {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Errorf("walking %s: %w", dir, err)
		}
		return files, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Errorf("listing %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// processFile rewrites one file's content and name. Files that do not pass
// the extension filter are ignored.
func (p *Processor) processFile(ctx context.Context, path string) error {
	if !p.shouldProcess(path) {
		zerolog.Ctx(ctx).Debug().Str("file", path).Msg("filtered by extension")
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Errorf("reading %s: %w", path, err)
	}

	var buf bytes.Buffer
	buf.Grow(len(content))
	replacements, err := p.replacer.FindAndReplace(content, &buf)
	if err != nil {
		return errors.Errorf("replacing in %s: %w", path, err)
	}
	changed := replacements > 0 && !bytes.Equal(content, buf.Bytes())

	newPath := path
	if !p.opts.NoRename {
		newPath = p.renamedPath(path)
	}
	renamed := newPath != path

	op := log.FileOperation{
		Path:         path,
		Replacements: replacements,
		IsModified:   changed,
		IsRenamed:    renamed,
		DryRun:       p.opts.DryRun,
	}
	if renamed {
		op.RenamedTo = filepath.Base(newPath)
	}

	if !p.opts.DryRun && (changed || renamed) {
		if renamed {
			if _, err := os.Stat(newPath); err == nil {
				return errors.Errorf("cannot rename %s: destination %s already exists", path, newPath)
			}
		}
		if changed {
			mode := fs.FileMode(0o644)
			if info, err := os.Stat(path); err == nil {
				mode = info.Mode().Perm()
			}
			if err := os.WriteFile(path, buf.Bytes(), mode); err != nil {
				return errors.Errorf("writing %s: %w", path, err)
			}
		}
		if renamed {
			if err := os.Rename(path, newPath); err != nil {
				return errors.Errorf("renaming %s: %w", path, err)
			}
		}
	}

	if p.opts.Logger != nil {
		p.opts.Logger.LogFileOperation(op)
	}

	p.mu.Lock()
	p.summary.Scanned++
	p.summary.Replacements += replacements
	if changed {
		p.summary.Modified++
	}
	if renamed {
		p.summary.Renamed++
	}
	p.mu.Unlock()
	return nil
}

// renamedPath runs the filename stem through the replacer, keeping the
// extension.
func (p *Processor) renamedPath(path string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	newStem := p.replacer.ReplaceString(stem)
	if newStem == stem || newStem == "" {
		return path
	}
	return filepath.Join(dir, newStem+ext)
}
