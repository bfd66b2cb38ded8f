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

// Package log renders per-file processing results to the console and
// mirrors them to zerolog.
package log

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent file entries
	nameWidth  = 45 // base width for the file path
)

// 🎯 FileOperation is the outcome of processing one file.
type FileOperation struct {
	Path         string // file path as walked
	RenamedTo    string // new filename when the file was renamed
	Replacements int    // replacements applied to the content
	IsModified   bool   // content was rewritten
	IsRenamed    bool   // file was renamed
	DryRun       bool   // reported only, nothing touched
}

// 🎯 Logger handles console reporting alongside structured logging.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	verbose bool
	mu      sync.Mutex
}

// 🏭 New creates a logger writing human output to console. When verbose is
// false, unchanged files stay quiet.
func New(console io.Writer, zlog zerolog.Logger, verbose bool) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		verbose: verbose,
	}
}

// 📝 formatFileOperation formats one result line.
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	var status string
	switch {
	case op.IsModified && op.IsRenamed:
		symbol = '⟳'
		symbolColor = color.FgBlue
		status = fmt.Sprintf("%d replacements, renamed to %s", op.Replacements, op.RenamedTo)
	case op.IsModified:
		symbol = '⟳'
		symbolColor = color.FgBlue
		status = fmt.Sprintf("%d replacements", op.Replacements)
	case op.IsRenamed:
		symbol = '→'
		symbolColor = color.FgGreen
		status = fmt.Sprintf("renamed to %s", op.RenamedTo)
	default:
		symbol = '-'
		symbolColor = color.FgYellow
		status = "unchanged"
	}
	if op.DryRun {
		status += color.New(color.Faint).Sprint(" (dry run)")
	}

	return fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		status)
}

// 📝 LogFileOperation reports one processed file. Unchanged files are only
// shown in verbose mode.
func (l *Logger) LogFileOperation(op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if op.IsModified || op.IsRenamed || l.verbose {
		fmt.Fprintln(l.console, l.formatFileOperation(op))
	}

	l.zlog.Debug().
		Str("file", op.Path).
		Str("renamed_to", op.RenamedTo).
		Int("replacements", op.Replacements).
		Bool("is_modified", op.IsModified).
		Bool("is_renamed", op.IsRenamed).
		Bool("dry_run", op.DryRun).
		Msg("file operation")
}

// 📝 Header prints the tool banner above a run.
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("recase")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Debug().Msg(msg)
}
