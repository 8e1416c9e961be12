package membercollect

import (
	"github.com/cockroachdb/errors"
)

// Collector 收集生成方法时需要的字段/属性
// 每次生成请求都可以新建，自身不持有可变状态
type Collector struct {
	host     Host
	excluder Excluder
}

// New 创建收集器，excluder 为 nil 时不排除任何成员
func New(host Host, excluder Excluder) *Collector {
	if excluder == nil {
		excluder = excludeNothing{}
	}
	return &Collector{host: host, excluder: excluder}
}

// IsExcluded 判断成员名是否被排除规则命中
func (c *Collector) IsExcluded(name string) bool {
	return c.excluder.Matches(name)
}

// CollectFields 收集类型及其祖先链上可见的实例字段
//  1. 目标类型自身的非静态字段，总是优先
//  2. 祖先链（最近的在前）上非静态、非私有且名称未出现过的字段
func (c *Collector) CollectFields(t TypeRef) (*MemberSet, error) {
	set := NewMemberSet()

	own, err := c.host.DeclaredFields(t)
	if err != nil {
		return nil, errors.Wrapf(err, "query fields of %s", t)
	}
	for _, f := range own {
		if f.Static {
			continue
		}
		f.Depth = 0
		f.Declaring = t
		set.Add(f)
	}

	chain, err := c.host.SupertypeChain(t)
	if err != nil {
		return nil, errors.Wrapf(err, "query supertypes of %s", t)
	}
	for i, super := range chain {
		fields, err := c.host.DeclaredFields(super)
		if err != nil {
			return nil, errors.Wrapf(err, "query fields of %s", super)
		}
		for _, f := range fields {
			if f.Static || f.Visibility == Private {
				continue
			}
			f.Depth = i + 1
			f.Declaring = super
			set.Add(f)
		}
	}

	return set, nil
}

// FieldAccessors 字段模式：CollectFields 去掉被排除的名称
func (c *Collector) FieldAccessors(t TypeRef) ([]Accessor, error) {
	set, err := c.CollectFields(t)
	if err != nil {
		return nil, err
	}

	accessors := make([]Accessor, 0, set.Len())
	for _, m := range set.Members() {
		if c.IsExcluded(m.Name) {
			continue
		}
		accessors = append(accessors, Accessor{Name: m.Name, Expr: m.Name, Declaring: m.Declaring})
	}
	return accessors, nil
}

// CollectBeanProperties bean 模式：基于 getter 方法发现属性
// 同名字段存在时直接访问字段，否则调用 getter
func (c *Collector) CollectBeanProperties(t TypeRef) ([]Accessor, error) {
	getters, err := c.collectGetters(t)
	if err != nil {
		return nil, err
	}

	fields, err := c.CollectFields(t)
	if err != nil {
		return nil, err
	}

	accessors := make([]Accessor, 0, len(getters))
	for _, m := range getters {
		property := PropertyName(m.Name)
		if c.IsExcluded(property) {
			continue
		}

		if f, ok := fields.Get(property); ok && f.Name == property {
			accessors = append(accessors, Accessor{Name: property, Expr: property, Declaring: f.Declaring})
			continue
		}

		accessors = append(accessors, Accessor{
			Name:      property,
			Expr:      m.Name + "()",
			Getter:    m.Name,
			Declaring: m.Declaring,
		})
	}
	return accessors, nil
}

// collectGetters 遍历目标类型及全部祖先，按方法名去重，先出现者胜出
func (c *Collector) collectGetters(t TypeRef) ([]Method, error) {
	chain, err := c.host.SupertypeChain(t)
	if err != nil {
		return nil, errors.Wrapf(err, "query supertypes of %s", t)
	}

	seen := make(map[string]bool)
	var getters []Method
	for _, typ := range append([]TypeRef{t}, chain...) {
		methods, err := c.host.DeclaredMethods(typ)
		if err != nil {
			return nil, errors.Wrapf(err, "query methods of %s", typ)
		}
		for _, m := range methods {
			if !IsGetter(m) || seen[m.Name] {
				continue
			}
			seen[m.Name] = true
			m.Declaring = typ
			getters = append(getters, m)
		}
	}
	return getters, nil
}
