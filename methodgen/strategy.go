package methodgen

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/donutnomad/commongen/builder"
	"github.com/donutnomad/commongen/internal/gohost"
	"github.com/donutnomad/commongen/internal/membercollect"
	"github.com/donutnomad/commongen/internal/utils"
	"github.com/donutnomad/gg"
	"github.com/samber/lo"
)

// chain builder 的链式调用，每个调用一行
type chain struct {
	sb strings.Builder
}

func newChain(format string, args ...any) *chain {
	c := &chain{}
	fmt.Fprintf(&c.sb, format, args...)
	return c
}

func (c *chain) call(format string, args ...any) *chain {
	c.sb.WriteString(".\n\t")
	fmt.Fprintf(&c.sb, format, args...)
	return c
}

func (c *chain) String() string {
	return c.sb.String()
}

// styleIdent builder 包中样式变量的名称，如 short_prefix -> ShortPrefixStyle
func styleIdent(style *builder.Style) string {
	if style == nil {
		style = builder.DefaultStyle
	}
	return lo.PascalCase(style.Name()) + "Style"
}

// superEmbed 第一个自身声明了 method 的直接嵌入类型
func superEmbed(t *Target, method string, opts Options) (gohost.Embed, bool) {
	if !opts.Super {
		return gohost.Embed{}, false
	}
	return t.Host.SuperWith(t.Ref, method)
}

// memberRef owner 上成员 a 的访问表达式
// 路径上有指针嵌入时包一层 Guard，任一指针为 nil 时取 nil
func memberRef(b string, t *Target, owner string, a membercollect.Accessor) string {
	expr := owner + "." + a.Expr

	var conds []string
	path := owner
	for _, e := range t.Host.EmbedPath(t.Ref, a.Declaring) {
		path += "." + e.FieldName()
		if e.Field.Pointer {
			conds = append(conds, path+" == nil")
		}
	}
	if len(conds) == 0 {
		return expr
	}
	return fmt.Sprintf("%s.Guard(%s, func() any { return %s })", b, strings.Join(conds, " || "), expr)
}

func fieldAccessors(t *Target, opts Options) ([]membercollect.Accessor, error) {
	accessors, err := membercollect.New(t.Host, opts.Excluder).FieldAccessors(t.Ref)
	if err != nil {
		return nil, errors.Wrapf(err, "收集 %s 的字段", t.Decl.Name)
	}
	return accessors, nil
}

// ---------------------------------------------------------------- String

type toStringStrategy struct{}

func (toStringStrategy) MethodName() string { return methodString }
func (toStringStrategy) Annotation() string { return "ToString" }

func (s toStringStrategy) Build(gen *gg.Generator, t *Target, opts Options) error {
	var (
		accessors []membercollect.Accessor
		err       error
	)
	if opts.Bean {
		accessors, err = membercollect.New(t.Host, opts.Excluder).CollectBeanProperties(t.Ref)
		if err != nil {
			err = errors.Wrapf(err, "收集 %s 的属性", t.Decl.Name)
		}
	} else {
		accessors, err = fieldAccessors(t, opts)
	}
	if err != nil {
		return err
	}

	doc, err := renderDoc(opts.Doc, newDocData(t, s.MethodName(), opts, accessors))
	if err != nil {
		return err
	}

	b := gen.P(BuilderImportPath).Alias()
	r := t.Receiver

	c := newChain("%s.NewToStringBuilder(%s, %s.%s)", b, r, b, styleIdent(opts.Style))
	if e, ok := superEmbed(t, s.MethodName(), opts); ok {
		c.call("AppendSuper(%s.SuperString(%s))", b, embedArg(r, e))
	}
	for _, a := range accessors {
		c.call("Append(%s, %s)", strconv.Quote(a.Name), memberRef(b, t, r, a))
	}
	c.call("String()")

	var body []any
	if t.Pointer {
		body = append(body, gg.If(gg.S("%s == nil", r)).AddBody(gg.Return(gg.String(`"<nil>"`))))
	}
	body = append(body, gg.Return(gg.String("%s", c.String())))

	writeDoc(gen, doc)
	gen.Body().NewFunction(s.MethodName()).
		WithReceiver(r, t.RecvType()).
		AddResult("", "string").
		AddBody(body...)
	return nil
}

// ---------------------------------------------------------------- Equal

type equalsStrategy struct{}

func (equalsStrategy) MethodName() string { return methodEqual }
func (equalsStrategy) Annotation() string { return "Equals" }

func (s equalsStrategy) Build(gen *gg.Generator, t *Target, opts Options) error {
	accessors, err := fieldAccessors(t, opts)
	if err != nil {
		return err
	}
	doc, err := renderDoc(opts.Doc, newDocData(t, s.MethodName(), opts, accessors))
	if err != nil {
		return err
	}

	b := gen.P(BuilderImportPath).Alias()
	r := t.Receiver
	object := utils.UniqueName("object", r)
	rhs := utils.UniqueName("rhs", r, object)
	ok := utils.UniqueName("ok", r, object, rhs)

	c := newChain("%s.NewEqualsBuilder()", b)
	e, hasSuper := superEmbed(t, s.MethodName(), opts)
	if hasSuper {
		c.call("AppendSuper(%s.SuperEqual(%s, %s))", b, embedArg(r, e), embedArg(rhs, e))
	}
	for _, a := range accessors {
		c.call("Append(%s, %s)", memberRef(b, t, r, a), memberRef(b, t, rhs, a))
	}
	c.call("IsEquals()")

	rhsVar := rhs
	if !hasSuper && len(accessors) == 0 {
		rhsVar = "_"
	}

	var body []any
	// 值接收器拷贝了自身，无法比较身份
	if opts.InstanceCheck && t.Pointer {
		body = append(body,
			gg.If(gg.S("%s == any(%s)", object, r)).AddBody(gg.Return(gg.String("true"))),
		)
	}
	body = append(body,
		gg.S("%s, %s := %s.As[%s](%s)", rhsVar, ok, b, t.TypeExpr, object),
		gg.If(gg.S("!%s", ok)).AddBody(gg.Return(gg.String("false"))),
		gg.Return(gg.String("%s", c.String())),
	)

	writeDoc(gen, doc)
	gen.Body().NewFunction(s.MethodName()).
		WithReceiver(r, t.RecvType()).
		AddParameter(object, "any").
		AddResult("", "bool").
		AddBody(body...)
	return nil
}

// ---------------------------------------------------------------- HashCode

type hashCodeStrategy struct{}

func (hashCodeStrategy) MethodName() string { return methodHashCode }
func (hashCodeStrategy) Annotation() string { return "HashCode" }

func (s hashCodeStrategy) Build(gen *gg.Generator, t *Target, opts Options) error {
	accessors, err := fieldAccessors(t, opts)
	if err != nil {
		return err
	}
	doc, err := renderDoc(opts.Doc, newDocData(t, s.MethodName(), opts, accessors))
	if err != nil {
		return err
	}

	b := gen.P(BuilderImportPath).Alias()
	r := t.Receiver
	initial, multiplier := HashConstants(t.Ref)

	c := newChain("%s.NewHashCodeBuilder(%d, %d)", b, initial, multiplier)
	if e, ok := superEmbed(t, s.MethodName(), opts); ok {
		c.call("AppendSuper(%s.SuperHashCode(%s))", b, embedArg(r, e))
	}
	for _, a := range accessors {
		c.call("Append(%s)", memberRef(b, t, r, a))
	}
	c.call("ToHashCode()")

	writeDoc(gen, doc)
	gen.Body().NewFunction(s.MethodName()).
		WithReceiver(r, t.RecvType()).
		AddResult("", "int").
		AddBody(gg.Return(gg.String("%s", c.String())))
	return nil
}

// HashConstants 由类型全名推导 HashCodeBuilder 的初始值和乘数
// 两者都是奇数，同一类型每次生成结果相同
func HashConstants(ref membercollect.TypeRef) (initial, multiplier int) {
	h := fnv.New64a()
	h.Write([]byte(ref.String()))
	sum := h.Sum64()
	initial = int(int32(uint32(sum))) | 1
	multiplier = int(int32(uint32(sum>>32))) | 1
	return initial, multiplier
}

// ---------------------------------------------------------------- CompareTo

type compareToStrategy struct{}

func (compareToStrategy) MethodName() string { return methodCompareTo }
func (compareToStrategy) Annotation() string { return "CompareTo" }

func (s compareToStrategy) Build(gen *gg.Generator, t *Target, opts Options) error {
	accessors, err := fieldAccessors(t, opts)
	if err != nil {
		return err
	}
	doc, err := renderDoc(opts.Doc, newDocData(t, s.MethodName(), opts, accessors))
	if err != nil {
		return err
	}

	b := gen.P(BuilderImportPath).Alias()
	r := t.Receiver
	object := utils.UniqueName("object", r)
	rhs := utils.UniqueName("rhs", r, object)

	c := newChain("%s.NewCompareToBuilder()", b)
	// 只有嵌入类型自己可比较时才先比较它
	e, hasSuper := superEmbed(t, s.MethodName(), opts)
	if hasSuper {
		c.call("AppendSuper(%s.SuperCompareTo(%s, %s))", b, embedArg(r, e), embedArg(rhs, e))
	}
	for _, a := range accessors {
		c.call("Append(%s, %s)", memberRef(b, t, r, a), memberRef(b, t, rhs, a))
	}
	c.call("ToComparison()")

	assign := gg.S("%s := %s.MustAs[%s](%s)", rhs, b, t.TypeExpr, object)
	if !hasSuper && len(accessors) == 0 {
		assign = gg.S("_ = %s.MustAs[%s](%s)", b, t.TypeExpr, object)
	}

	writeDoc(gen, doc)
	gen.Body().NewFunction(s.MethodName()).
		WithReceiver(r, t.RecvType()).
		AddParameter(object, "any").
		AddResult("", "int").
		AddBody(assign, gg.Return(gg.String("%s", c.String())))
	return nil
}
