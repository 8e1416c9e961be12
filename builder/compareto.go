package builder

import (
	"cmp"
	"fmt"
	"reflect"
	"time"
)

// Comparer 自定义排序比较
type Comparer interface {
	CompareTo(object any) int
}

// CompareToBuilder 逐字段比较，第一个不相等的字段决定结果
type CompareToBuilder struct {
	comparison int
}

func NewCompareToBuilder() *CompareToBuilder {
	return &CompareToBuilder{}
}

// Append 比较一对字段值，nil 小于非 nil
func (b *CompareToBuilder) Append(lhs, rhs any) *CompareToBuilder {
	if b.comparison != 0 {
		return b
	}
	b.comparison = compareValues(lhs, rhs)
	return b
}

// AppendSuper 合并嵌入类型 CompareTo 的结果
func (b *CompareToBuilder) AppendSuper(superCompareTo int) *CompareToBuilder {
	if b.comparison == 0 {
		b.comparison = superCompareTo
	}
	return b
}

// ToComparison 返回比较结果：负数、零或正数
func (b *CompareToBuilder) ToComparison() int {
	return b.comparison
}

func compareValues(lhs, rhs any) int {
	lnil, rnil := isNil(lhs), isNil(rhs)
	switch {
	case lnil && rnil:
		return 0
	case lnil:
		return -1
	case rnil:
		return 1
	}

	if c, ok := lhs.(Comparer); ok {
		return c.CompareTo(rhs)
	}
	if t, ok := lhs.(time.Time); ok {
		if u, ok := rhs.(time.Time); ok {
			return t.Compare(u)
		}
	}

	lv, rv := reflect.ValueOf(lhs), reflect.ValueOf(rhs)
	if lv.Kind() == rv.Kind() {
		switch lv.Kind() {
		case reflect.Bool:
			return compareBool(lv.Bool(), rv.Bool())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return cmp.Compare(lv.Int(), rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return cmp.Compare(lv.Uint(), rv.Uint())
		case reflect.Float32, reflect.Float64:
			return cmp.Compare(lv.Float(), rv.Float())
		case reflect.String:
			return cmp.Compare(lv.String(), rv.String())
		case reflect.Slice, reflect.Array:
			return compareSequence(lv, rv)
		case reflect.Pointer:
			return compareValues(lv.Elem().Interface(), rv.Elem().Interface())
		}
	}

	// 不可排序的类型按格式化输出比较，保证结果稳定
	return cmp.Compare(fmt.Sprintf("%#v", lhs), fmt.Sprintf("%#v", rhs))
}

// compareSequence 先比较长度，再逐个比较元素
func compareSequence(lv, rv reflect.Value) int {
	if c := cmp.Compare(lv.Len(), rv.Len()); c != 0 {
		return c
	}
	for i := range lv.Len() {
		if c := compareValues(lv.Index(i).Interface(), rv.Index(i).Interface()); c != 0 {
			return c
		}
	}
	return 0
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
