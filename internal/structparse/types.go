package structparse

// ImportInfo 导入信息
type ImportInfo struct {
	Alias       string // 显式别名（如果有）
	PackageName string // 真实包名（从 package 声明读取）
	ImportPath  string // 完整导入路径
}

// TypeKind 命名类型的底层种类
type TypeKind int

const (
	KindOther  TypeKind = iota // 非结构体命名类型，如 type Status int
	KindStruct                 // 结构体
)

// FieldDecl 结构体中声明的一个字段
// 同一行声明多个名称时拆分为多个 FieldDecl
type FieldDecl struct {
	Name      string // 字段名；嵌入字段为类型名
	Type      string // 源码中的类型表达式
	Tag       string // 原始标签（不含反引号）
	Embedded  bool   // 匿名嵌入
	Pointer   bool   // 嵌入的是指针类型
	Qualifier string // 嵌入类型的包限定符，同包为空
	BaseType  string // 嵌入类型去掉指针、包限定符和类型参数后的名称
}

// TypeName 带包限定符的类型名
type TypeName struct {
	Qualifier string // 同包为空
	Name      string
}

// MethodDecl 方法声明
type MethodDecl struct {
	Name         string   // 方法名
	ReceiverName string   // 接收器名称
	ReceiverType string   // 接收器类型，如 *User
	Pointer      bool     // 指针接收器
	ParamCount   int      // 参数个数（按名称展开）
	Results      []string // 返回值类型
	FilePath     string   // 方法所在文件的绝对路径
	Generated    bool     // 所在文件带有 Code generated 头
}

// ReturnsBool 是否只返回一个 bool
func (m MethodDecl) ReturnsBool() bool {
	return len(m.Results) == 1 && m.Results[0] == "bool"
}

// TypeDecl 命名类型的解析结果
type TypeDecl struct {
	Name        string                 // 类型名
	PackageName string                 // 包名
	Dir         string                 // 包目录
	FilePath    string                 // 类型所在文件路径
	Kind        TypeKind               // 底层种类
	Alias       bool                   // type A = B
	Underlying  *TypeName              // 别名目标或定义类型的底层命名类型，其它情况为 nil
	TypeParams  []string               // 类型参数名
	Fields      []FieldDecl            // 自身声明的字段，不展开嵌入
	Methods     []MethodDecl           // 同包内声明的方法
	Imports     map[string]*ImportInfo // 类型所在文件的导入，键为文件内可见的包名
}

// Method 按名称查找方法
func (t *TypeDecl) Method(name string) (MethodDecl, bool) {
	for _, m := range t.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return MethodDecl{}, false
}

// Embedded 返回匿名嵌入字段，保持声明顺序
func (t *TypeDecl) Embedded() []FieldDecl {
	var result []FieldDecl
	for _, f := range t.Fields {
		if f.Embedded {
			result = append(result, f)
		}
	}
	return result
}
