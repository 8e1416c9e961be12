package membercollect

import (
	"strings"
	"unicode"
)

// IsGetter 判断方法是否为 JavaBean 风格的 getter
//   - 公开、无参数
//   - get/Get 开头且长度大于 3
//   - is/Is 开头、长度大于 2 且返回 bool
func IsGetter(m Method) bool {
	if m.ParamCount != 0 || m.Visibility != Public {
		return false
	}
	if len(m.Name) > 3 && hasGetPrefix(m.Name) {
		return true
	}
	return len(m.Name) > 2 && hasIsPrefix(m.Name) && m.ReturnsBool
}

// PropertyName 从 getter 方法名推导属性名
//
//	getName -> name
//	getURL  -> URL
//	getA    -> a
//	isValid -> valid
func PropertyName(methodName string) string {
	var rest string
	if hasGetPrefix(methodName) {
		rest = methodName[3:]
	} else {
		rest = methodName[2:]
	}

	r := []rune(rest)
	switch {
	case len(r) > 1 && unicode.IsLower(r[1]):
		r[0] = unicode.ToLower(r[0])
		return string(r)
	case len(r) == 1:
		return strings.ToLower(rest)
	default:
		return rest
	}
}

func hasGetPrefix(name string) bool {
	return strings.HasPrefix(name, "get") || strings.HasPrefix(name, "Get")
}

func hasIsPrefix(name string) bool {
	return strings.HasPrefix(name, "is") || strings.HasPrefix(name, "Is")
}
