package methodgen

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/donutnomad/commongen/internal/gohost"
	"github.com/donutnomad/commongen/internal/membercollect"
	"github.com/donutnomad/commongen/internal/structparse"
	"github.com/donutnomad/commongen/internal/utils"
	"github.com/samber/lo"
)

// Target 待生成方法的结构体
type Target struct {
	Host     *gohost.Host
	Ref      membercollect.TypeRef
	Decl     *structparse.TypeDecl
	Receiver string // 接收器名称
	Pointer  bool   // 使用指针接收器
	TypeExpr string // 带类型参数的类型表达式，如 Pair[K, V]
}

// RecvType 方法签名中的接收器类型
func (t *Target) RecvType() string {
	if t.Pointer {
		return "*" + t.TypeExpr
	}
	return t.TypeExpr
}

// ResolveTarget 在宿主的目标包中查找结构体
// 接收器名称和指针与否跟随手写方法
func ResolveTarget(host *gohost.Host, typeName string) (*Target, error) {
	ref, err := host.Lookup(typeName)
	if err != nil {
		return nil, err
	}
	decl, err := host.Decl(ref)
	if err != nil {
		return nil, err
	}
	if decl.Kind != structparse.KindStruct {
		return nil, errors.Newf("%s 不是结构体", typeName)
	}

	t := &Target{
		Host:     host,
		Ref:      ref,
		Decl:     decl,
		TypeExpr: typeName,
	}
	if len(decl.TypeParams) > 0 {
		t.TypeExpr = typeName + "[" + strings.Join(decl.TypeParams, ", ") + "]"
	}

	handWritten := lo.Filter(decl.Methods, func(m structparse.MethodDecl, _ int) bool {
		return !m.Generated
	})
	var existing string
	if len(handWritten) > 0 && handWritten[0].ReceiverName != BuilderPackage {
		existing = handWritten[0].ReceiverName
	}
	t.Receiver = utils.ReceiverName(typeName, existing)
	t.Pointer = lo.SomeBy(handWritten, func(m structparse.MethodDecl) bool {
		return m.Pointer
	})
	return t, nil
}

// embedArg 传给 builder.SuperXxx 的嵌入值表达式
// 值嵌入取地址，指针嵌入原样传递
func embedArg(owner string, e gohost.Embed) string {
	if e.Field.Pointer {
		return owner + "." + e.FieldName()
	}
	return "&" + owner + "." + e.FieldName()
}
