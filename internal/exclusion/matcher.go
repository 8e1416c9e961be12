package exclusion

import (
	"regexp"
	"strings"
)

// compileRegexp 允许测试替换编译函数
var compileRegexp = regexp.Compile

// Matcher 编译后的排除规则
// re 为 nil 时不匹配任何名称
type Matcher struct {
	rules []string
	re    *regexp.Regexp
	err   error
}

// Compile 将规则列表编译为一个 Matcher
// 每条规则包装为 (^rule$)，? 匹配任意单个字符，其余字符（包括 *）按字面匹配
// 规则为空或编译失败时返回不匹配任何名称的 Matcher
func Compile(rules []string) *Matcher {
	m := &Matcher{rules: append([]string(nil), rules...)}
	if len(rules) == 0 {
		return m
	}

	terms := make([]string, 0, len(rules))
	for _, rule := range rules {
		terms = append(terms, "(^"+translate(rule)+"$)")
	}

	re, err := compileRegexp(strings.Join(terms, "|"))
	if err != nil {
		m.err = err
		return m
	}
	m.re = re
	return m
}

// translate 转义规则中的正则元字符，仅保留 ? 作为单字符通配
func translate(rule string) string {
	return strings.ReplaceAll(regexp.QuoteMeta(rule), `\?`, ".")
}

// Matches 判断名称是否被排除
func (m *Matcher) Matches(name string) bool {
	if m == nil || m.re == nil {
		return false
	}
	return m.re.MatchString(name)
}

// Rules 返回编译时使用的规则
func (m *Matcher) Rules() []string {
	return append([]string(nil), m.rules...)
}

// Err 返回编译失败的原因（降级为不匹配时）
func (m *Matcher) Err() error {
	return m.err
}

func (m *Matcher) String() string {
	if m == nil || m.re == nil {
		return "<none>"
	}
	return m.re.String()
}

// ParseList 解析以 ; 分隔的排除列表，忽略空项
func ParseList(s string) []string {
	var rules []string
	for _, part := range strings.Split(s, ";") {
		if part == "" {
			continue
		}
		rules = append(rules, part)
	}
	return rules
}
