// Package builder 提供生成代码使用的 String/Equal/HashCode/CompareTo 构建器
package builder

import (
	"fmt"
	"reflect"
	"strings"
)

// Style 控制 ToStringBuilder 的输出格式
type Style struct {
	name            string
	useTypeName     bool
	useShortName    bool
	useFieldNames   bool
	contentStart    string
	contentEnd      string
	fieldSeparator  string
	separatorAtHead bool
	separatorAtTail bool
	nameValueSep    string
}

var (
	// DefaultStyle model.Point[x=1,y=2]
	DefaultStyle = &Style{
		name: "default", useTypeName: true, useFieldNames: true,
		contentStart: "[", contentEnd: "]", fieldSeparator: ",", nameValueSep: "=",
	}

	// MultiLineStyle 每个字段一行
	//
	//	model.Point[
	//	  x=1
	//	  y=2
	//	]
	MultiLineStyle = &Style{
		name: "multi_line", useTypeName: true, useFieldNames: true,
		contentStart: "[", contentEnd: "\n]", fieldSeparator: "\n  ",
		separatorAtHead: true, nameValueSep: "=",
	}

	// NoFieldNamesStyle model.Point[1,2]
	NoFieldNamesStyle = &Style{
		name: "no_field_names", useTypeName: true,
		contentStart: "[", contentEnd: "]", fieldSeparator: ",", nameValueSep: "=",
	}

	// ShortPrefixStyle Point[x=1,y=2]
	ShortPrefixStyle = &Style{
		name: "short_prefix", useTypeName: true, useShortName: true, useFieldNames: true,
		contentStart: "[", contentEnd: "]", fieldSeparator: ",", nameValueSep: "=",
	}

	// SimpleStyle 1,2
	SimpleStyle = &Style{
		name: "simple", fieldSeparator: ",",
	}
)

var styles = map[string]*Style{
	DefaultStyle.name:      DefaultStyle,
	MultiLineStyle.name:    MultiLineStyle,
	NoFieldNamesStyle.name: NoFieldNamesStyle,
	ShortPrefixStyle.name:  ShortPrefixStyle,
	SimpleStyle.name:       SimpleStyle,
}

// StyleByName 按名称查找样式
func StyleByName(name string) (*Style, bool) {
	s, ok := styles[name]
	return s, ok
}

// StyleNames 所有可用样式名称
func StyleNames() []string {
	return []string{
		DefaultStyle.name,
		MultiLineStyle.name,
		NoFieldNamesStyle.name,
		ShortPrefixStyle.name,
		SimpleStyle.name,
	}
}

// Name 样式名称
func (s *Style) Name() string {
	return s.name
}

// nullText nil 值的输出
const nullText = "<nil>"

// ToStringBuilder 按样式拼接字段
type ToStringBuilder struct {
	style  *Style
	buf    strings.Builder
	fields int
}

// NewToStringBuilder 创建构建器，style 为 nil 时使用 DefaultStyle
func NewToStringBuilder(object any, style *Style) *ToStringBuilder {
	if style == nil {
		style = DefaultStyle
	}
	b := &ToStringBuilder{style: style}
	if style.useTypeName && object != nil {
		b.buf.WriteString(typeName(object, style.useShortName))
	}
	b.buf.WriteString(style.contentStart)
	return b
}

// Append 追加一个字段
func (b *ToStringBuilder) Append(name string, value any) *ToStringBuilder {
	b.separator()
	if b.style.useFieldNames && name != "" {
		b.buf.WriteString(name)
		b.buf.WriteString(b.style.nameValueSep)
	}
	b.buf.WriteString(formatValue(value))
	b.fields++
	return b
}

// AppendSuper 追加嵌入类型 String() 的内容部分
// 以同一样式生成的字符串会去掉类型名和首尾括号
func (b *ToStringBuilder) AppendSuper(superString string) *ToStringBuilder {
	content := b.style.extractContent(superString)
	if content == "" {
		return b
	}
	b.separator()
	b.buf.WriteString(content)
	b.fields++
	return b
}

func (b *ToStringBuilder) separator() {
	if b.fields > 0 || b.style.separatorAtHead {
		b.buf.WriteString(b.style.fieldSeparator)
	}
}

func (b *ToStringBuilder) String() string {
	var out strings.Builder
	out.WriteString(b.buf.String())
	if b.style.separatorAtTail && b.fields > 0 {
		out.WriteString(b.style.fieldSeparator)
	}
	out.WriteString(b.style.contentEnd)
	return out.String()
}

// extractContent 取出 contentStart 与 contentEnd 之间的内容
func (s *Style) extractContent(str string) string {
	if s.contentStart == "" || s.contentEnd == "" {
		return str
	}
	start := strings.Index(str, s.contentStart)
	end := strings.LastIndex(str, s.contentEnd)
	if start < 0 || end < 0 || start+len(s.contentStart) > end {
		return str
	}
	content := str[start+len(s.contentStart) : end]
	if s.separatorAtHead {
		content = strings.TrimPrefix(content, s.fieldSeparator)
	}
	return content
}

func typeName(object any, short bool) string {
	name := strings.TrimLeft(reflect.TypeOf(object).String(), "*")
	if short {
		if i := strings.LastIndex(name, "."); i >= 0 {
			name = name[i+1:]
		}
	}
	return name
}

// formatValue 格式化字段值
// 切片和数组输出为 {a,b}，实现 fmt.Stringer 的值调用 String()
func formatValue(value any) string {
	if isNil(value) {
		return nullText
	}
	if s, ok := value.(fmt.Stringer); ok {
		return s.String()
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 && v.Kind() == reflect.Slice {
			return fmt.Sprintf("%v", value)
		}
		parts := make([]string, v.Len())
		for i := range v.Len() {
			parts[i] = formatValue(v.Index(i).Interface())
		}
		return "{" + strings.Join(parts, ",") + "}"
	case reflect.Pointer:
		return formatValue(v.Elem().Interface())
	default:
		return fmt.Sprintf("%v", value)
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
