package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "a_common.go")
	src := []byte("package a\nfunc  F( ) string {return fmt.Sprint(1)}\n")

	require.NoError(t, WriteFormat(path, src))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(got), "import \"fmt\"")
	assert.Contains(t, string(got), "func F() string { return fmt.Sprint(1) }")
}

// TestWriteFormat_SyntaxError 格式化失败时写入原始内容并返回错误
func TestWriteFormat_SyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.go")
	src := []byte("package a\nfunc {\n")

	err := WriteFormat(path, src)
	assert.Error(t, err)

	got, rerr := os.ReadFile(path)
	require.NoError(t, rerr)
	assert.Equal(t, src, got)
}
