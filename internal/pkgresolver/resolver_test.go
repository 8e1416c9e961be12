package pkgresolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile 在临时目录中写入文件，自动创建父目录
func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

// newTestModule 创建一个临时模块
//
//	example.com/app
//	├── model       package model
//	└── gg          package g2（文件夹名与包名不一致）
func newTestModule(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "go.mod", "module example.com/app\n\ngo 1.22\n")
	writeFile(t, root, "model/user.go", "package model\n\ntype User struct{}\n")
	writeFile(t, root, "gg/types.go", "package g2\n\ntype Type struct{}\n")
	return root
}

func TestIsStdLib(t *testing.T) {
	tests := []struct {
		importPath string
		want       bool
	}{
		{"fmt", true},
		{"net/http", true},
		{"encoding/json", true},
		{"github.com/samber/lo", false},
		{"gorm.io/datatypes", false},
		{"golang.org/x/tools", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.importPath, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStdLib(tt.importPath))
		})
	}
}

func TestModulePath(t *testing.T) {
	root := newTestModule(t)

	modPath, err := ModulePath(root)
	require.NoError(t, err)
	assert.Equal(t, "example.com/app", modPath)

	_, err = ModulePath(t.TempDir())
	assert.Error(t, err)
}

// TestFindProjectRoot 测试向上查找 go.mod
func TestFindProjectRoot(t *testing.T) {
	root := newTestModule(t)

	got, err := FindProjectRoot(filepath.Join(root, "model"))
	require.NoError(t, err)

	want, err := filepath.Abs(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// TestResolver_ProjectInternal 测试项目内部包解析
// 场景：
// - 正常包
// - 包名与文件夹名不一致，返回 package 声明的名称
func TestResolver_ProjectInternal(t *testing.T) {
	root := newTestModule(t)
	r := NewResolver(root)
	assert.Equal(t, "example.com/app", r.ModulePath())

	loc, err := r.Locate("example.com/app/model")
	require.NoError(t, err)
	assert.Equal(t, "model", loc.Name)
	assert.Equal(t, filepath.Join(root, "model"), loc.Dir)
	assert.False(t, loc.Std)

	name, err := r.GetPackageName("example.com/app/gg")
	require.NoError(t, err)
	assert.Equal(t, "g2", name)
}

// TestResolver_StdLib 测试标准库
// 场景：标准库标记为 Std，包名取 package 声明或路径末段
func TestResolver_StdLib(t *testing.T) {
	r := NewResolver("")

	tests := []struct {
		importPath string
		want       string
	}{
		{"fmt", "fmt"},
		{"net/http", "http"},
		{"encoding/json", "json"},
		{"crypto/sha256", "sha256"},
	}

	for _, tt := range tests {
		t.Run(tt.importPath, func(t *testing.T) {
			loc, err := r.Locate(tt.importPath)
			require.NoError(t, err)
			assert.True(t, loc.Std)
			assert.Equal(t, tt.want, loc.Name)
		})
	}
}

// TestResolver_ModCache 测试模块缓存查找
// 场景：
// - 大写字母按 ! 转义
// - 多个版本时选择语义化版本最高的
// - 子包路径拼接
func TestResolver_ModCache(t *testing.T) {
	cache := t.TempDir()
	writeFile(t, cache, "github.com/!xuanwo/gg@v0.2.0/gg.go", "package gg\n")
	writeFile(t, cache, "github.com/!xuanwo/gg@v0.10.0/gg.go", "package gg\n")
	writeFile(t, cache, "github.com/!xuanwo/gg@v0.10.0/sub/sub.go", "package subpkg\n")

	r := NewResolver("")
	r.modCache = cache
	r.gopath = ""

	loc, err := r.Locate("github.com/Xuanwo/gg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cache, "github.com", "!xuanwo", "gg@v0.10.0"), loc.Dir)

	loc, err = r.Locate("github.com/Xuanwo/gg/sub")
	require.NoError(t, err)
	assert.Equal(t, "subpkg", loc.Name)
}

// TestResolver_NotFound 测试无法定位的第三方包
// 场景：Locate 返回 ErrNotFound，GetPackageName 降级为路径末段
func TestResolver_NotFound(t *testing.T) {
	r := NewResolver("")
	r.modCache = t.TempDir()
	r.gopath = ""

	_, err := r.Locate("example.org/missing/pkg")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	name, err := r.GetPackageName("example.org/missing/pkg")
	require.NoError(t, err)
	assert.Equal(t, "pkg", name)

	_, err = r.Locate("")
	assert.True(t, errors.Is(err, ErrNotFound))
}

// TestResolver_Cache 测试缓存与重置
func TestResolver_Cache(t *testing.T) {
	root := newTestModule(t)
	r := NewResolver(root)

	first, err := r.Locate("example.com/app/model")
	require.NoError(t, err)

	// 删除目录后仍命中缓存
	require.NoError(t, os.RemoveAll(filepath.Join(root, "model")))
	second, err := r.Locate("example.com/app/model")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	r.Reset()
	_, err = r.Locate("example.com/app/model")
	assert.Error(t, err)
}

func TestResolver_ImportPathOf(t *testing.T) {
	root := newTestModule(t)
	r := NewResolver(root)

	got, ok := r.ImportPathOf(filepath.Join(root, "model"))
	require.True(t, ok)
	assert.Equal(t, "example.com/app/model", got)

	got, ok = r.ImportPathOf(root)
	require.True(t, ok)
	assert.Equal(t, "example.com/app", got)

	_, ok = r.ImportPathOf(t.TempDir())
	assert.False(t, ok)

	_, ok = NewResolver("").ImportPathOf(root)
	assert.False(t, ok)
}

// TestReadPackageName 测试直接读取包声明
func TestReadPackageName(t *testing.T) {
	tests := []struct {
		name    string
		pkgDir  string
		want    string
		wantErr error
	}{
		{"aliasedpkg", "testdata/aliasedpkg", "aliasedpkg", nil},
		{"mismatched-gg-g2", "testdata/gg", "g2", nil},
		{"only tests", "testdata/onlytests", "", ErrNoGoFiles},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadPackageName(tt.pkgDir)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
