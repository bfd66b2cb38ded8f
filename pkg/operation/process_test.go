package operation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/recase/pkg/replace"
	"github.com/walteh/recase/pkg/rules"
)

func preserveRule(find, repl string) rules.Rule {
	return rules.Rule{Find: find, Replace: repl, Mode: replace.PreserveCase}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestProcessor_Run_RewritesContent(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "oldName and OLD_NAME\n")

	p, err := New(Options{Rules: []rules.Rule{preserveRule("old name", "new name")}})
	require.NoError(t, err)

	summary, err := p.Run(context.Background(), []string{dir})
	require.NoError(t, err)

	assert.Equal(t, "newName and NEW_NAME\n", readFile(t, path))
	assert.Equal(t, 1, summary.Scanned)
	assert.Equal(t, 1, summary.Modified)
	assert.Equal(t, 2, summary.Replacements)
	assert.Zero(t, summary.Renamed)
}

func TestProcessor_Run_RenamesFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "old_name.txt", "nothing matching here\n")

	p, err := New(Options{Rules: []rules.Rule{preserveRule("old name", "new name")}})
	require.NoError(t, err)

	summary, err := p.Run(context.Background(), []string{dir})
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(dir, "old_name.txt"))
	assert.Equal(t, "nothing matching here\n", readFile(t, filepath.Join(dir, "new_name.txt")))
	assert.Equal(t, 1, summary.Renamed)
	assert.Zero(t, summary.Modified)
}

func TestProcessor_Run_NoRename(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "old_name.txt", "oldName\n")

	p, err := New(Options{
		Rules:    []rules.Rule{preserveRule("old name", "new name")},
		NoRename: true,
	})
	require.NoError(t, err)

	summary, err := p.Run(context.Background(), []string{dir})
	require.NoError(t, err)

	assert.Equal(t, "newName\n", readFile(t, path))
	assert.Zero(t, summary.Renamed)
}

func TestProcessor_Run_RenameCollision(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "old_name.txt", "x\n")
	writeFile(t, dir, "new_name.txt", "occupied\n")

	p, err := New(Options{Rules: []rules.Rule{preserveRule("old name", "new name")}})
	require.NoError(t, err)

	_, err = p.Run(context.Background(), []string{filepath.Join(dir, "old_name.txt")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Equal(t, "occupied\n", readFile(t, filepath.Join(dir, "new_name.txt")))
}

func TestProcessor_Run_DryRun(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "old_name.txt", "oldName everywhere\n")

	p, err := New(Options{
		Rules:  []rules.Rule{preserveRule("old name", "new name")},
		DryRun: true,
	})
	require.NoError(t, err)

	summary, err := p.Run(context.Background(), []string{dir})
	require.NoError(t, err)

	assert.Equal(t, "oldName everywhere\n", readFile(t, path), "dry run must not touch content")
	assert.NoFileExists(t, filepath.Join(dir, "new_name.txt"))
	assert.Equal(t, 1, summary.Modified, "dry run still reports what would change")
	assert.Equal(t, 1, summary.Renamed)
}

func TestProcessor_Run_ExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	txt := writeFile(t, dir, "a.txt", "oldName\n")
	bin := writeFile(t, dir, "a.bin", "oldName\n")

	p, err := New(Options{Rules: []rules.Rule{preserveRule("old name", "new name")}})
	require.NoError(t, err)

	summary, err := p.Run(context.Background(), []string{dir})
	require.NoError(t, err)

	assert.Equal(t, "newName\n", readFile(t, txt))
	assert.Equal(t, "oldName\n", readFile(t, bin), "unknown extensions are skipped")
	assert.Equal(t, 1, summary.Scanned)
}

func TestProcessor_Run_ExtensionOverrides(t *testing.T) {
	tests := []struct {
		name       string
		extensions []string
		file       string
		processed  bool
	}{
		{name: "bare_extension", extensions: []string{"go"}, file: "main.go", processed: true},
		{name: "dotted_extension", extensions: []string{".go"}, file: "main.go", processed: true},
		{name: "glob_pattern", extensions: []string{"*_test.go"}, file: "main_test.go", processed: true},
		{name: "glob_pattern_misses", extensions: []string{"*_test.go"}, file: "main.go", processed: false},
		{name: "default_list_replaced", extensions: []string{"go"}, file: "notes.txt", processed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, tt.file, "oldName\n")

			p, err := New(Options{
				Rules:      []rules.Rule{preserveRule("old name", "new name")},
				Extensions: tt.extensions,
				NoRename:   true,
			})
			require.NoError(t, err)

			_, err = p.Run(context.Background(), []string{dir})
			require.NoError(t, err)

			if tt.processed {
				assert.Equal(t, "newName\n", readFile(t, path))
			} else {
				assert.Equal(t, "oldName\n", readFile(t, path))
			}
		})
	}
}

func TestProcessor_Run_RecursiveWalk(t *testing.T) {
	dir := t.TempDir()
	top := writeFile(t, dir, "top.txt", "oldName\n")
	nested := writeFile(t, dir, "sub/deep/nested.txt", "oldName\n")

	flat, err := New(Options{
		Rules:    []rules.Rule{preserveRule("old name", "new name")},
		NoRename: true,
	})
	require.NoError(t, err)

	_, err = flat.Run(context.Background(), []string{dir})
	require.NoError(t, err)
	assert.Equal(t, "newName\n", readFile(t, top))
	assert.Equal(t, "oldName\n", readFile(t, nested), "non-recursive run stays at the top level")

	deep, err := New(Options{
		Rules:     []rules.Rule{preserveRule("old name", "new name")},
		Recursive: true,
		NoRename:  true,
	})
	require.NoError(t, err)

	_, err = deep.Run(context.Background(), []string{dir})
	require.NoError(t, err)
	assert.Equal(t, "newName\n", readFile(t, nested))
}

func TestProcessor_Run_Async(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 20; i++ {
		writeFile(t, dir, filepath.Join("sub", string(rune('a'+i))+".txt"), "oldName\n")
	}

	p, err := New(Options{
		Rules:     []rules.Rule{preserveRule("old name", "new name")},
		Recursive: true,
		Async:     true,
		NoRename:  true,
	})
	require.NoError(t, err)

	summary, err := p.Run(context.Background(), []string{dir})
	require.NoError(t, err)
	assert.Equal(t, 20, summary.Scanned)
	assert.Equal(t, 20, summary.Modified)
}

func TestProcessor_Run_MissingPath(t *testing.T) {
	p, err := New(Options{Rules: []rules.Rule{preserveRule("a b", "c d")}})
	require.NoError(t, err)

	_, err = p.Run(context.Background(), []string{filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inspecting path")
}

func TestNew_BadRule(t *testing.T) {
	_, err := New(Options{Rules: []rules.Rule{{Find: "", Replace: "x", Mode: replace.MatchCase}}})
	require.Error(t, err)
}
