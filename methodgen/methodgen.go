// Package methodgen 为结构体生成 String、Equal、HashCode、CompareTo 方法
//
// 每个方法由一个无状态的 MethodGenerator 负责：通过 membercollect 收集字段，
// 输出调用 builder 包的 gg 代码。Generator 把它们接入 plugin 流水线。
package methodgen

import (
	"github.com/donutnomad/gg"
	"github.com/samber/lo"
)

// BuilderImportPath 生成代码依赖的运行时包
const BuilderImportPath = "github.com/donutnomad/commongen/builder"

// BuilderPackage builder 包名
const BuilderPackage = "builder"

const (
	methodString    = "String"
	methodEqual     = "Equal"
	methodHashCode  = "HashCode"
	methodCompareTo = "CompareTo"
)

// MethodGenerator 一种方法的生成策略
type MethodGenerator interface {
	// MethodName 生成的方法名
	MethodName() string

	// Annotation 单独触发该方法的注解名
	Annotation() string

	// Build 收集字段并把方法写入 gen
	// 返回错误时 gen 不会被修改
	Build(gen *gg.Generator, t *Target, opts Options) error
}

var (
	ToString  MethodGenerator = toStringStrategy{}
	Equals    MethodGenerator = equalsStrategy{}
	HashCode  MethodGenerator = hashCodeStrategy{}
	CompareTo MethodGenerator = compareToStrategy{}
)

// All 全部策略，按输出顺序排列
func All() []MethodGenerator {
	return []MethodGenerator{ToString, Equals, HashCode, CompareTo}
}

// ByMethod 按方法名查找策略
func ByMethod(name string) (MethodGenerator, bool) {
	return lo.Find(All(), func(m MethodGenerator) bool {
		return m.MethodName() == name
	})
}
