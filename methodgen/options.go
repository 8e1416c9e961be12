package methodgen

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/donutnomad/commongen/builder"
	"github.com/donutnomad/commongen/internal/config"
	"github.com/donutnomad/commongen/internal/exclusion"
	"github.com/donutnomad/commongen/internal/membercollect"
	"github.com/donutnomad/commongen/internal/utils"
	"github.com/donutnomad/commongen/plugin"
)

// Options 生成单个方法时生效的选项
type Options struct {
	Excluder      membercollect.Excluder
	Style         *builder.Style
	Bean          bool
	Super         bool
	InstanceCheck bool
	Overwrite     bool
	Doc           string // 注释模板，空为默认模板，"-" 不生成注释
}

// Overrides 注解参数，空字符串沿用偏好
type Overrides struct {
	Exclude       string
	Style         string
	Bean          string
	Super         string
	InstanceCheck string
	Overwrite     string
}

// ResolveOptions 合并偏好和注解参数
func ResolveOptions(prefs config.Preferences, excluderFor func([]string) *exclusion.Matcher, method string, ov Overrides) (Options, error) {
	opts := Options{
		Overwrite: prefs.Overwrite,
		Doc:       prefs.Doc,
	}

	switch method {
	case methodString:
		opts.Super = prefs.ToString.Super
		opts.Bean = prefs.ToString.Bean
	case methodEqual:
		opts.Super = prefs.Equals.Super
		opts.InstanceCheck = prefs.Equals.InstanceCheck
	case methodHashCode:
		opts.Super = prefs.HashCode.Super
	case methodCompareTo:
		opts.Super = prefs.CompareTo.Super
	default:
		return Options{}, errors.Newf("未知的方法 %s", method)
	}

	styleName := prefs.ToString.Style
	if ov.Style != "" {
		styleName = utils.ToSnakeCase(strings.TrimSpace(ov.Style))
	}
	style, ok := builder.StyleByName(styleName)
	if !ok {
		return Options{}, errors.Newf("未知的 style %q，可选: %s", styleName, strings.Join(builder.StyleNames(), ", "))
	}
	opts.Style = style

	rules := prefs.ExcludeRules()
	if ov.Exclude != "" {
		rules = exclusion.ParseList(ov.Exclude)
	}
	opts.Excluder = excluderFor(rules)

	for _, b := range []struct {
		name  string
		value string
		dst   *bool
	}{
		{"bean", ov.Bean, &opts.Bean},
		{"super", ov.Super, &opts.Super},
		{"instance_check", ov.InstanceCheck, &opts.InstanceCheck},
		{"overwrite", ov.Overwrite, &opts.Overwrite},
	} {
		val, set, err := plugin.ParseOptionalBool(b.value)
		if err != nil {
			return Options{}, errors.Wrapf(err, "参数 %s", b.name)
		}
		if set {
			*b.dst = val
		}
	}

	return opts, nil
}

// OptionsFromStore 使用 store 的偏好和排除规则缓存
func OptionsFromStore(store *config.Store, method string, ov Overrides) (Options, error) {
	return ResolveOptions(store.Preferences(), store.ExcluderFor, method, ov)
}
