package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	prefs := Defaults()

	assert.Equal(t, "class;log", prefs.Exclude)
	assert.Equal(t, []string{"class", "log"}, prefs.ExcludeRules())
	assert.Equal(t, "default", prefs.ToString.Style)
	assert.False(t, prefs.ToString.Bean)
	assert.False(t, prefs.ToString.Super)
	assert.True(t, prefs.Equals.Super)
	assert.False(t, prefs.Equals.InstanceCheck)
	assert.True(t, prefs.HashCode.Super)
	assert.True(t, prefs.CompareTo.Super)
	assert.False(t, prefs.Overwrite)
}

// TestLoad_ConfigFile 测试配置文件查找与解析
// 场景：
// - 在上级目录找到配置文件
// - 文件中的值覆盖默认值，未出现的键保持默认
func TestLoad_ConfigFile(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	content := `exclude: "id;test?"
tostring:
  style: short_prefix
  bean: true
equals:
  instance_check: true
`
	cfgPath := filepath.Join(root, ".commongen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	prefs, source, err := Load(sub)
	require.NoError(t, err)
	assert.Equal(t, cfgPath, source)
	assert.Equal(t, []string{"id", "test?"}, prefs.ExcludeRules())
	assert.Equal(t, "short_prefix", prefs.ToString.Style)
	assert.True(t, prefs.ToString.Bean)
	assert.True(t, prefs.Equals.InstanceCheck)
	assert.True(t, prefs.Equals.Super)
}

// TestLoad_Env 测试环境变量覆盖
func TestLoad_Env(t *testing.T) {
	t.Setenv("COMMONGEN_EXCLUDE", "secret")
	t.Setenv("COMMONGEN_TOSTRING_STYLE", "multi_line")
	t.Setenv("COMMONGEN_HASHCODE_SUPER", "false")

	prefs, source, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, source)
	assert.Equal(t, "secret", prefs.Exclude)
	assert.Equal(t, "multi_line", prefs.ToString.Style)
	assert.False(t, prefs.HashCode.Super)
}

func TestLoad_InvalidStyle(t *testing.T) {
	t.Setenv("COMMONGEN_TOSTRING_STYLE", "fancy")

	_, _, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fancy")
}

func TestLoad_BrokenFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".commongen.json"), []byte("{"), 0o644))

	_, _, err := Load(root)
	assert.Error(t, err)
}

// TestStore 测试偏好存储
// 场景：
// - 排除列表不变时复用 Matcher
// - SetExclude 后重新编译
// - Reload 读取文件变化
func TestStore(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, ".commongen.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("exclude = \"log\"\n"), 0o644))

	s, err := NewStore(root)
	require.NoError(t, err)
	assert.Equal(t, cfgPath, s.Source())

	m1 := s.Excluder()
	m2 := s.Excluder()
	require.Same(t, m1, m2)
	assert.True(t, m1.Matches("log"))

	s.SetExclude("id")
	m3 := s.Excluder()
	assert.NotSame(t, m1, m3)
	assert.False(t, m3.Matches("log"))
	assert.True(t, m3.Matches("id"))

	require.NoError(t, os.WriteFile(cfgPath, []byte("exclude = \"name\"\n"), 0o644))
	require.NoError(t, s.Reload())
	assert.Equal(t, "name", s.Preferences().Exclude)
	assert.True(t, s.Excluder().Matches("name"))
}

func TestNewStoreWith(t *testing.T) {
	prefs := Defaults()
	prefs.Exclude = ""
	s := NewStoreWith(prefs)

	assert.False(t, s.Excluder().Matches("log"))
	assert.Empty(t, s.Source())
}
