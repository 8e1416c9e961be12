// Package config 生成偏好设置
//
// 来源优先级（低 → 高）：默认值 < 配置文件 < COMMONGEN_* 环境变量 < 注解参数
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/donutnomad/commongen/builder"
	"github.com/donutnomad/commongen/internal/exclusion"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，如 COMMONGEN_EXCLUDE、COMMONGEN_TOSTRING_STYLE
const EnvPrefix = "COMMONGEN"

// configNames 按优先级排列的配置文件名
var configNames = []string{
	".commongen.yaml",
	".commongen.yml",
	".commongen.toml",
	".commongen.json",
}

// ToStringPrefs String() 生成偏好
type ToStringPrefs struct {
	Style string `mapstructure:"style"` // builder 样式名
	Bean  bool   `mapstructure:"bean"`  // 通过 getter 发现属性
	Super bool   `mapstructure:"super"` // 追加嵌入类型的 String()
}

// EqualsPrefs Equal() 生成偏好
type EqualsPrefs struct {
	Super         bool `mapstructure:"super"`
	InstanceCheck bool `mapstructure:"instance_check"` // 先比较指针是否相同
}

// HashCodePrefs HashCode() 生成偏好
type HashCodePrefs struct {
	Super bool `mapstructure:"super"`
}

// CompareToPrefs CompareTo() 生成偏好
type CompareToPrefs struct {
	Super bool `mapstructure:"super"`
}

// Preferences 全部偏好设置
type Preferences struct {
	Exclude   string         `mapstructure:"exclude"` // ; 分隔的排除规则
	ToString  ToStringPrefs  `mapstructure:"tostring"`
	Equals    EqualsPrefs    `mapstructure:"equals"`
	HashCode  HashCodePrefs  `mapstructure:"hashcode"`
	CompareTo CompareToPrefs `mapstructure:"compareto"`
	Overwrite bool           `mapstructure:"overwrite"` // 已有手写方法时报错而不是跳过
	Doc       string         `mapstructure:"doc"`       // 方法注释模板（text/template + sprig）
}

// ExcludeRules 解析排除列表
func (p Preferences) ExcludeRules() []string {
	return exclusion.ParseList(p.Exclude)
}

// Validate 检查取值范围
func (p Preferences) Validate() error {
	if _, ok := builder.StyleByName(p.ToString.Style); !ok {
		return errors.Newf("unknown tostring.style %q, available: %s",
			p.ToString.Style, strings.Join(builder.StyleNames(), ", "))
	}
	return nil
}

// SetDefaults 默认值
func SetDefaults(v *viper.Viper) {
	v.SetDefault("exclude", "class;log")

	v.SetDefault("tostring.style", builder.DefaultStyle.Name())
	v.SetDefault("tostring.bean", false)
	v.SetDefault("tostring.super", false)

	v.SetDefault("equals.super", true)
	v.SetDefault("equals.instance_check", false)

	v.SetDefault("hashcode.super", true)
	v.SetDefault("compareto.super", true)

	v.SetDefault("overwrite", false)
	v.SetDefault("doc", "")
}

// NewViper 创建 viper 实例：默认值、环境变量，以及从 dir 向上找到的配置文件
// 返回使用的配置文件路径，未找到时为空
func NewViper(dir string) (*viper.Viper, string, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	path := FindConfigFile(dir)
	if path == "" {
		return v, "", nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, "", errors.Wrapf(err, "read config file %s", path)
	}
	return v, path, nil
}

// IsConfigFile path 的文件名是否为配置文件名
func IsConfigFile(path string) bool {
	return slices.Contains(configNames, filepath.Base(path))
}

// FindConfigFile 从 dir 向上查找配置文件
func FindConfigFile(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for cur := abs; ; {
		for _, name := range configNames {
			path := filepath.Join(cur, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return ""
		}
		cur = parent
	}
}

// LoadWithViper 从 viper 实例解析偏好
func LoadWithViper(v *viper.Viper) (*Preferences, error) {
	var prefs Preferences
	if err := v.Unmarshal(&prefs); err != nil {
		return nil, errors.Wrap(err, "unmarshal preferences")
	}
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	return &prefs, nil
}

// Load 加载 dir 对应的偏好
func Load(dir string) (*Preferences, string, error) {
	v, path, err := NewViper(dir)
	if err != nil {
		return nil, "", err
	}
	prefs, err := LoadWithViper(v)
	if err != nil {
		return nil, "", err
	}
	return prefs, path, nil
}

// Defaults 仅包含默认值的偏好
func Defaults() Preferences {
	v := viper.New()
	SetDefaults(v)
	prefs, err := LoadWithViper(v)
	if err != nil {
		panic(err)
	}
	return *prefs
}
