package builder

import "reflect"

// Equaler 自定义相等比较
type Equaler interface {
	Equal(object any) bool
}

// EqualsBuilder 逐字段比较，遇到第一个不相等的字段后短路
type EqualsBuilder struct {
	equals bool
}

func NewEqualsBuilder() *EqualsBuilder {
	return &EqualsBuilder{equals: true}
}

// Append 比较一对字段值
// 实现 Equaler 的值使用 Equal，其余使用 reflect.DeepEqual
func (b *EqualsBuilder) Append(lhs, rhs any) *EqualsBuilder {
	if !b.equals {
		return b
	}
	b.equals = valuesEqual(lhs, rhs)
	return b
}

// AppendSuper 合并嵌入类型 Equal 的结果
func (b *EqualsBuilder) AppendSuper(superEquals bool) *EqualsBuilder {
	if b.equals {
		b.equals = superEquals
	}
	return b
}

// IsEquals 返回比较结果
func (b *EqualsBuilder) IsEquals() bool {
	return b.equals
}

func valuesEqual(lhs, rhs any) bool {
	lnil, rnil := isNil(lhs), isNil(rhs)
	if lnil || rnil {
		return lnil == rnil
	}
	if e, ok := lhs.(Equaler); ok {
		return e.Equal(rhs)
	}
	return reflect.DeepEqual(lhs, rhs)
}
