package membercollect

//go:generate mockgen -destination=mock_host_test.go -package=membercollect . Host

// Host 宿主环境提供的类型查询能力
// 具体实现可以基于 Go 源码、反射或内存模型
type Host interface {
	// DeclaredFields 返回类型自身声明的字段（不含祖先）
	DeclaredFields(t TypeRef) ([]Member, error)

	// SupertypeChain 返回祖先链，最近的在前，不含 t 本身
	SupertypeChain(t TypeRef) ([]TypeRef, error)

	// DeclaredMethods 返回类型自身声明的方法
	DeclaredMethods(t TypeRef) ([]Method, error)
}

// Excluder 排除规则
type Excluder interface {
	Matches(name string) bool
}

type excludeNothing struct{}

func (excludeNothing) Matches(string) bool { return false }
