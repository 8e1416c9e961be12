package membercollect

import "fmt"

// Visibility 成员可见性
type Visibility int

const (
	Package   Visibility = iota // 包内可见（零值）
	Public                      // 公开
	Protected                   // 子类型可见
	Private                     // 仅声明类型可见
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Package:
		return "package"
	case Private:
		return "private"
	default:
		return "unknown"
	}
}

// TypeRef 宿主环境中的类型句柄
type TypeRef struct {
	PkgPath string // 包路径（宿主自行定义含义）
	Name    string // 类型名
}

func (t TypeRef) String() string {
	if t.PkgPath == "" {
		return t.Name
	}
	return fmt.Sprintf("%s.%s", t.PkgPath, t.Name)
}

// Member 字段或 bean 属性
type Member struct {
	Name       string
	Type       string
	Depth      int // 0 表示目标类型本身，1+ 表示祖先链中的距离
	Visibility Visibility
	Static     bool
	Declaring  TypeRef
}

// Method 宿主返回的方法元信息
type Method struct {
	Name        string
	ParamCount  int
	Visibility  Visibility
	ReturnsBool bool
	Declaring   TypeRef
}

// Accessor 生成代码中引用成员的方式
type Accessor struct {
	Name      string  // 输出中的标签（字段名或属性名）
	Expr      string  // 接收者之后的访问表达式，如 name 或 GetName()
	Getter    string  // 通过 getter 访问时的方法名
	Declaring TypeRef // 声明该字段或 getter 的类型
}

// ViaGetter 是否通过 getter 方法访问
func (a Accessor) ViaGetter() bool {
	return a.Getter != ""
}

// MemberSet 按名称去重、保持插入顺序的成员集合
// 先插入者胜出
type MemberSet struct {
	order  []string
	byName map[string]Member
}

// NewMemberSet 创建空集合
func NewMemberSet() *MemberSet {
	return &MemberSet{byName: make(map[string]Member)}
}

// Add 添加成员，名称已存在时忽略并返回 false
func (s *MemberSet) Add(m Member) bool {
	if _, ok := s.byName[m.Name]; ok {
		return false
	}
	s.byName[m.Name] = m
	s.order = append(s.order, m.Name)
	return true
}

// Get 按名称查找成员
func (s *MemberSet) Get(name string) (Member, bool) {
	m, ok := s.byName[name]
	return m, ok
}

// Has 名称是否存在
func (s *MemberSet) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Names 按插入顺序返回名称
func (s *MemberSet) Names() []string {
	return append([]string(nil), s.order...)
}

// Members 按插入顺序返回成员
func (s *MemberSet) Members() []Member {
	result := make([]Member, 0, len(s.order))
	for _, name := range s.order {
		result = append(result, s.byName[name])
	}
	return result
}

func (s *MemberSet) Len() int {
	return len(s.order)
}
