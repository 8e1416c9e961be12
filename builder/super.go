package builder

import "fmt"

// As 将 object 转为 T，同时接受 T 和非 nil 的 *T
func As[T any](object any) (T, bool) {
	switch v := object.(type) {
	case T:
		return v, true
	case *T:
		if v != nil {
			return *v, true
		}
	}
	var zero T
	return zero, false
}

// MustAs 同 As，类型不匹配时 panic
func MustAs[T any](object any) T {
	v, ok := As[T](object)
	if !ok {
		var zero T
		panic(fmt.Sprintf("builder: cannot compare %T with %T", zero, object))
	}
	return v
}

// Guard 经由指针嵌入访问成员，isNil 为 true 时返回 nil 而不调用 get
func Guard(isNil bool, get func() any) any {
	if isNil {
		return nil
	}
	return get()
}

// SuperString 嵌入值的 String()，nil 指针返回空串
func SuperString(s fmt.Stringer) string {
	if isNil(s) {
		return ""
	}
	return s.String()
}

// SuperEqual 嵌入值的 Equal()，两侧均为 nil 时相等
func SuperEqual(lhs Equaler, rhs any) bool {
	lnil, rnil := isNil(lhs), isNil(rhs)
	if lnil || rnil {
		return lnil == rnil
	}
	return lhs.Equal(rhs)
}

// SuperHashCode 嵌入值的 HashCode()，nil 指针为 0
func SuperHashCode(h Hasher) int {
	if isNil(h) {
		return 0
	}
	return h.HashCode()
}

// SuperCompareTo 嵌入值的 CompareTo()，nil 排在前面
func SuperCompareTo(lhs Comparer, rhs any) int {
	lnil, rnil := isNil(lhs), isNil(rhs)
	switch {
	case lnil && rnil:
		return 0
	case lnil:
		return -1
	case rnil:
		return 1
	}
	return lhs.CompareTo(rhs)
}
