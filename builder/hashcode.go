package builder

import (
	"fmt"
	"hash/fnv"
	"math"
	"reflect"
)

// Hasher 自定义哈希
type Hasher interface {
	HashCode() int
}

// HashCodeBuilder total = total*multiplier + hash(field)
type HashCodeBuilder struct {
	multiplier int
	total      int
}

// NewHashCodeBuilder 创建构建器
// initial 和 multiplier 必须是非零奇数，否则 panic
func NewHashCodeBuilder(initial, multiplier int) *HashCodeBuilder {
	if initial == 0 || initial%2 == 0 {
		panic(fmt.Sprintf("builder: HashCodeBuilder requires an odd initial value, got %d", initial))
	}
	if multiplier == 0 || multiplier%2 == 0 {
		panic(fmt.Sprintf("builder: HashCodeBuilder requires an odd multiplier, got %d", multiplier))
	}
	return &HashCodeBuilder{multiplier: multiplier, total: initial}
}

// Append 追加一个字段值
func (b *HashCodeBuilder) Append(value any) *HashCodeBuilder {
	if isNil(value) {
		b.total *= b.multiplier
		return b
	}
	if h, ok := value.(Hasher); ok {
		b.total = b.total*b.multiplier + h.HashCode()
		return b
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Bool:
		// true 记 0，false 记 1
		if v.Bool() {
			b.total *= b.multiplier
		} else {
			b.total = b.total*b.multiplier + 1
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.total = b.total*b.multiplier + int(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.total = b.total*b.multiplier + int(v.Uint())
	case reflect.Float32, reflect.Float64:
		b.total = b.total*b.multiplier + int(math.Float64bits(v.Float()))
	case reflect.String:
		b.total = b.total*b.multiplier + stringHash(v.String())
	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			b.Append(v.Index(i).Interface())
		}
	case reflect.Pointer:
		b.Append(v.Elem().Interface())
	default:
		b.total = b.total*b.multiplier + fallbackHash(value)
	}
	return b
}

// AppendSuper 合并嵌入类型 HashCode 的结果
func (b *HashCodeBuilder) AppendSuper(superHashCode int) *HashCodeBuilder {
	b.total = b.total*b.multiplier + superHashCode
	return b
}

// ToHashCode 返回计算结果
func (b *HashCodeBuilder) ToHashCode() int {
	return b.total
}

// stringHash s[0]*31^(n-1) + ... + s[n-1]
func stringHash(s string) int {
	h := 0
	for _, r := range s {
		h = 31*h + int(r)
	}
	return h
}

// fallbackHash 结构体、map 等按 %#v 输出计算 FNV
func fallbackHash(value any) int {
	f := fnv.New64a()
	_, _ = fmt.Fprintf(f, "%#v", value)
	return int(f.Sum64())
}
