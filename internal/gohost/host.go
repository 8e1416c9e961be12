// Package gohost 基于 Go 源码实现 membercollect.Host
//
// 祖先链由嵌入类型构成，广度优先展开；可见性相对于目标包计算。
package gohost

import (
	"go/token"
	"go/types"
	"path/filepath"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/donutnomad/commongen/internal/membercollect"
	"github.com/donutnomad/commongen/internal/pkgresolver"
	"github.com/donutnomad/commongen/internal/structparse"
)

// maxEmbeddingDepth 最大嵌套深度限制
const maxEmbeddingDepth = 10

var _ membercollect.Host = (*Host)(nil)

// Host 绑定到一个目标包目录的源码宿主
type Host struct {
	resolver *pkgresolver.Resolver
	ctx      *structparse.ParseContext
	dir      string
	target   string // 目标包路径，作为可见性参照

	mu    sync.Mutex
	decls map[membercollect.TypeRef]*structparse.TypeDecl
}

// New 创建宿主，dir 为目标类型所在的包目录
func New(resolver *pkgresolver.Resolver, dir string) *Host {
	if resolver == nil {
		resolver = pkgresolver.NewResolver("")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	target, ok := resolver.ImportPathOf(abs)
	if !ok {
		target = abs
	}
	return &Host{
		resolver: resolver,
		ctx:      structparse.NewParseContext(resolver),
		dir:      abs,
		target:   target,
		decls:    make(map[membercollect.TypeRef]*structparse.TypeDecl),
	}
}

// Target 目标包路径
func (h *Host) Target() string {
	return h.target
}

// Lookup 在目标包中查找类型
func (h *Host) Lookup(typeName string) (membercollect.TypeRef, error) {
	ref := membercollect.TypeRef{PkgPath: h.target, Name: typeName}
	if _, err := h.load(ref, h.dir); err != nil {
		return membercollect.TypeRef{}, err
	}
	return ref, nil
}

// Decl 返回已加载类型的解析结果
func (h *Host) Decl(t membercollect.TypeRef) (*structparse.TypeDecl, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	decl, ok := h.decls[t]
	if !ok {
		return nil, errors.Wrapf(membercollect.ErrUnknownType, "%s", t)
	}
	return decl, nil
}

// Invalidate 丢弃已解析的类型，源码变化后调用
func (h *Host) Invalidate() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.decls = make(map[membercollect.TypeRef]*structparse.TypeDecl)
	h.resolver.Reset()
}

func (h *Host) load(ref membercollect.TypeRef, dir string) (*structparse.TypeDecl, error) {
	h.mu.Lock()
	if decl, ok := h.decls[ref]; ok {
		h.mu.Unlock()
		return decl, nil
	}
	h.mu.Unlock()

	decl, err := h.ctx.FindType(dir, ref.Name)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", ref)
	}

	h.mu.Lock()
	h.decls[ref] = decl
	h.mu.Unlock()
	return decl, nil
}

// DeclaredFields 返回类型自身声明的非嵌入字段
// 定义类型和别名使用底层结构体的字段
func (h *Host) DeclaredFields(t membercollect.TypeRef) ([]membercollect.Member, error) {
	layout, decl, err := h.layoutOf(t)
	if err != nil {
		return nil, err
	}

	var members []membercollect.Member
	for _, f := range decl.Fields {
		if f.Embedded {
			continue
		}
		members = append(members, membercollect.Member{
			Name:       f.Name,
			Type:       f.Type,
			Visibility: h.visibility(layout, f.Name),
			Static:     f.Name == "_",
			Declaring:  t,
		})
	}
	return members, nil
}

// DeclaredMethods 返回类型自身声明的方法
func (h *Host) DeclaredMethods(t membercollect.TypeRef) ([]membercollect.Method, error) {
	decl, err := h.Decl(t)
	if err != nil {
		return nil, err
	}

	methods := make([]membercollect.Method, 0, len(decl.Methods))
	for _, m := range decl.Methods {
		methods = append(methods, membercollect.Method{
			Name:        m.Name,
			ParamCount:  m.ParamCount,
			Visibility:  h.visibility(t, m.Name),
			ReturnsBool: m.ReturnsBool(),
			Declaring:   t,
		})
	}
	return methods, nil
}

// SupertypeChain 广度优先展开嵌入类型，最近的在前
// 标准库类型和无法定位的类型终止该分支
func (h *Host) SupertypeChain(t membercollect.TypeRef) ([]membercollect.TypeRef, error) {
	if _, err := h.Decl(t); err != nil {
		return nil, err
	}

	seen := map[membercollect.TypeRef]bool{t: true}
	var chain []membercollect.TypeRef
	level := []membercollect.TypeRef{t}

	for depth := 0; depth < maxEmbeddingDepth && len(level) > 0; depth++ {
		var next []membercollect.TypeRef
		for _, cur := range level {
			embeds, err := h.Embeds(cur)
			if err != nil {
				return nil, err
			}
			for _, e := range embeds {
				if seen[e.Ref] {
					continue
				}
				seen[e.Ref] = true
				chain = append(chain, e.Ref)
				next = append(next, e.Ref)
			}
		}
		level = next
	}
	return chain, nil
}

// EmbedPath 从 t 到祖先 ancestor 经过的嵌入字段，与 SupertypeChain 的展开顺序一致
// ancestor 不在祖先链上时返回 nil
func (h *Host) EmbedPath(t, ancestor membercollect.TypeRef) []Embed {
	type step struct {
		parent membercollect.TypeRef
		embed  Embed
	}
	from := map[membercollect.TypeRef]step{}
	seen := map[membercollect.TypeRef]bool{t: true}
	level := []membercollect.TypeRef{t}

	for depth := 0; depth < maxEmbeddingDepth && len(level) > 0 && !seen[ancestor]; depth++ {
		var next []membercollect.TypeRef
		for _, cur := range level {
			embeds, err := h.Embeds(cur)
			if err != nil {
				return nil
			}
			for _, e := range embeds {
				if seen[e.Ref] {
					continue
				}
				seen[e.Ref] = true
				from[e.Ref] = step{parent: cur, embed: e}
				next = append(next, e.Ref)
			}
		}
		level = next
	}
	if ancestor == t || !seen[ancestor] {
		return nil
	}

	var path []Embed
	for cur := ancestor; cur != t; cur = from[cur].parent {
		path = append(path, from[cur].embed)
	}
	slices.Reverse(path)
	return path
}

// Embeds 返回类型直接嵌入的、可解析的类型，保持声明顺序
// 标准库、预声明类型和无法定位的包被跳过；已定位的类型加载失败时返回错误
func (h *Host) Embeds(t membercollect.TypeRef) ([]Embed, error) {
	layout, decl, err := h.layoutOf(t)
	if err != nil {
		return nil, err
	}

	var result []Embed
	for _, f := range decl.Embedded() {
		ref, dir, ok := h.resolveName(layout, decl, f.Qualifier, f.BaseType)
		if !ok {
			continue
		}
		ref, _, err := h.canonical(ref, dir)
		if err != nil {
			return nil, errors.Wrapf(err, "embedded field %s of %s", f.Name, t)
		}
		result = append(result, Embed{Field: f, Ref: ref})
	}
	return result, nil
}

// canonical 沿别名链找到真正声明的类型并加载
func (h *Host) canonical(ref membercollect.TypeRef, dir string) (membercollect.TypeRef, *structparse.TypeDecl, error) {
	for i := 0; ; i++ {
		decl, err := h.load(ref, dir)
		if err != nil {
			return ref, nil, err
		}
		if !decl.Alias || decl.Underlying == nil {
			return ref, decl, nil
		}
		if i >= maxEmbeddingDepth {
			return ref, nil, errors.Newf("alias chain of %s too deep", ref)
		}
		next, nextDir, ok := h.resolveName(ref, decl, decl.Underlying.Qualifier, decl.Underlying.Name)
		if !ok {
			return ref, decl, nil
		}
		ref, dir = next, nextDir
	}
}

// layoutOf 沿定义类型和别名找到提供字段布局的声明
//
//	type Named base.Base  → base.Base
//	type Alias = Named    → base.Base
func (h *Host) layoutOf(t membercollect.TypeRef) (membercollect.TypeRef, *structparse.TypeDecl, error) {
	decl, err := h.Decl(t)
	if err != nil {
		return t, nil, err
	}
	for i := 0; decl.Kind != structparse.KindStruct && decl.Underlying != nil; i++ {
		if i >= maxEmbeddingDepth {
			return t, nil, errors.Newf("underlying chain of %s too deep", t)
		}
		next, dir, ok := h.resolveName(t, decl, decl.Underlying.Qualifier, decl.Underlying.Name)
		if !ok {
			break
		}
		next, nextDecl, err := h.canonical(next, dir)
		if err != nil {
			return t, nil, errors.Wrapf(err, "underlying type of %s", t)
		}
		t, decl = next, nextDecl
	}
	return t, decl, nil
}

// resolveName 计算 decl 所在文件中 qualifier.name 对应的类型句柄和包目录
// 预声明类型、标准库和无法定位的包返回 false
func (h *Host) resolveName(owner membercollect.TypeRef, decl *structparse.TypeDecl, qualifier, name string) (membercollect.TypeRef, string, bool) {
	if qualifier == "" {
		if !token.IsIdentifier(name) || types.Universe.Lookup(name) != nil {
			return membercollect.TypeRef{}, "", false
		}
		return membercollect.TypeRef{PkgPath: owner.PkgPath, Name: name}, decl.Dir, true
	}

	importPath, ok := decl.ResolveQualifier(qualifier)
	if !ok || pkgresolver.IsStdLib(importPath) {
		return membercollect.TypeRef{}, "", false
	}
	loc, err := h.resolver.Locate(importPath)
	if err != nil || loc.Std {
		return membercollect.TypeRef{}, "", false
	}
	return membercollect.TypeRef{PkgPath: importPath, Name: name}, loc.Dir, true
}

// visibility 导出名公开；未导出名在目标包内为包级可见，否则为私有
func (h *Host) visibility(t membercollect.TypeRef, name string) membercollect.Visibility {
	switch {
	case token.IsExported(name):
		return membercollect.Public
	case t.PkgPath == h.target:
		return membercollect.Package
	default:
		return membercollect.Private
	}
}
