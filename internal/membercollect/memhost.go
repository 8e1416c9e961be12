package membercollect

import (
	"github.com/cockroachdb/errors"
)

// ErrUnknownType 宿主中不存在该类型
var ErrUnknownType = errors.New("unknown type")

// TypeDef 内存宿主中的类型定义
type TypeDef struct {
	Ref     TypeRef
	Supers  []TypeRef // 直接父类型，按优先级排列
	Fields  []Member
	Methods []Method
}

// MemHost 基于内存模型的 Host 实现
// 用于测试和不依赖源码的调用方
type MemHost struct {
	types map[TypeRef]*TypeDef
}

// NewMemHost 创建内存宿主
func NewMemHost(defs ...TypeDef) *MemHost {
	h := &MemHost{types: make(map[TypeRef]*TypeDef)}
	for _, d := range defs {
		h.Define(d)
	}
	return h
}

// Define 注册或替换类型定义
func (h *MemHost) Define(def TypeDef) {
	d := def
	h.types[def.Ref] = &d
}

func (h *MemHost) lookup(t TypeRef) (*TypeDef, error) {
	d, ok := h.types[t]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownType, "%s", t)
	}
	return d, nil
}

func (h *MemHost) DeclaredFields(t TypeRef) ([]Member, error) {
	d, err := h.lookup(t)
	if err != nil {
		return nil, err
	}
	return append([]Member(nil), d.Fields...), nil
}

func (h *MemHost) DeclaredMethods(t TypeRef) ([]Method, error) {
	d, err := h.lookup(t)
	if err != nil {
		return nil, err
	}
	return append([]Method(nil), d.Methods...), nil
}

// SupertypeChain 广度优先展开父类型，最近的在前
// 未注册的父类型视为链的终点
func (h *MemHost) SupertypeChain(t TypeRef) ([]TypeRef, error) {
	root, err := h.lookup(t)
	if err != nil {
		return nil, err
	}

	seen := map[TypeRef]bool{t: true}
	var chain []TypeRef
	queue := append([]TypeRef(nil), root.Supers...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen[cur] {
			continue
		}
		seen[cur] = true

		d, ok := h.types[cur]
		if !ok {
			continue
		}
		chain = append(chain, cur)
		queue = append(queue, d.Supers...)
	}
	return chain, nil
}
