package gohost

import (
	"github.com/donutnomad/commongen/internal/membercollect"
	"github.com/donutnomad/commongen/internal/structparse"
)

// Embed 直接嵌入的类型
type Embed struct {
	Field structparse.FieldDecl
	Ref   membercollect.TypeRef
}

// FieldName 生成代码中访问嵌入值使用的字段名
func (e Embed) FieldName() string {
	return e.Field.BaseType
}

// SuperWith 返回第一个自身声明了 method 的直接嵌入类型
// 用于生成 AppendSuper 调用
func (h *Host) SuperWith(t membercollect.TypeRef, method string) (Embed, bool) {
	embeds, err := h.Embeds(t)
	if err != nil {
		return Embed{}, false
	}
	for _, e := range embeds {
		decl, err := h.Decl(e.Ref)
		if err != nil {
			continue
		}
		if _, ok := decl.Method(method); ok {
			return e, true
		}
	}
	return Embed{}, false
}

// HasMethod 类型自身是否声明了 method
// 第二个返回值表示该声明是否位于生成文件中
func (h *Host) HasMethod(t membercollect.TypeRef, method string) (exists, generated bool) {
	decl, err := h.Decl(t)
	if err != nil {
		return false, false
	}
	m, ok := decl.Method(method)
	if !ok {
		return false, false
	}
	return true, m.Generated
}
