package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/donutnomad/commongen/methodgen"
	"github.com/donutnomad/commongen/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaleFiles(t *testing.T) {
	dir := t.TempDir()
	fresh := filepath.Join(dir, "fresh_common.go")
	changed := filepath.Join(dir, "changed_common.go")
	missing := filepath.Join(dir, "missing_common.go")

	require.NoError(t, os.WriteFile(fresh, []byte("package a\n"), 0o644))
	require.NoError(t, os.WriteFile(changed, []byte("package a\n\nvar x = 1\n"), 0o644))

	plan := &plugin.Plan{Files: map[string][]byte{
		fresh:   []byte("package a\n"),
		changed: []byte("package a\n\nvar x = 2\n"),
		missing: []byte("package a\n"),
	}}

	stale, err := staleFiles(plan)
	require.NoError(t, err)
	require.Len(t, stale, 2)

	// 按路径排序
	assert.Equal(t, changed, stale[0].Path)
	assert.Contains(t, stale[0].Diff, "-var x = 1")
	assert.Contains(t, stale[0].Diff, "+var x = 2")
	assert.Contains(t, stale[0].Diff, "(generated)")

	assert.Equal(t, missing, stale[1].Path)
	assert.Contains(t, stale[1].Diff, "+package a")
}

func TestCollectWatchDirs(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"a/b", ".git/objects", "vendor/x", "testdata/in"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0o755))
	}

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			name:     "递归",
			patterns: []string{root + "/..."},
			want:     []string{root, filepath.Join(root, "a"), filepath.Join(root, "a", "b")},
		},
		{
			name:     "单个目录",
			patterns: []string{filepath.Join(root, "a")},
			want:     []string{filepath.Join(root, "a")},
		},
		{
			name:     "去重",
			patterns: []string{filepath.Join(root, "a"), filepath.Join(root, "a") + "/..."},
			want:     []string{filepath.Join(root, "a"), filepath.Join(root, "a", "b")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := collectWatchDirs(tt.patterns)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := collectWatchDirs([]string{filepath.Join(root, "none")})
	assert.Error(t, err)
}

func TestIsGeneratedFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	assert.True(t, isGeneratedFile(write("a_common.go", "// "+plugin.GeneratedHeader+"\n\npackage a\n")))
	assert.True(t, isGeneratedFile(write("a_test.go", "package a\n")))
	assert.False(t, isGeneratedFile(write("a.go", "// Package a\npackage a\n")))
	assert.False(t, isGeneratedFile(filepath.Join(dir, "gone.go")))
}

// TestFieldsCommand 通过 cobra 执行 fields 子命令
// 场景：
// - 嵌入的 Audit 字段被提升
// - 默认规则排除 log 字段
func TestFieldsCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"fields", "-d", filepath.Join("methodgen", "example"), "User"})
	require.NoError(t, cmd.Execute())

	var report methodgen.FieldReport
	require.NoError(t, sonic.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, "User", report.Type)
	assert.Equal(t, "fields", report.Mode)
	assert.Equal(t, []string{"log"}, report.Excluded)

	names := make([]string, 0, len(report.Members))
	for _, m := range report.Members {
		names = append(names, m.Name)
	}
	assert.ElementsMatch(t, []string{"CreatedBy", "CreatedAt", "ID", "Name", "Email"}, names)
}

func TestFieldsCommand_UnknownType(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"fields", "-d", filepath.Join("methodgen", "example"), "Missing"})
	assert.Error(t, cmd.Execute())
}
