package methodgen

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/donutnomad/commongen/internal/logging"
	"github.com/donutnomad/commongen/plugin"
	"github.com/donutnomad/gg"
)

// CommonAnnotation 一次生成全部四个方法
const CommonAnnotation = "Common"

// Generator 把一个或多个 MethodGenerator 接入 plugin 流水线
type Generator struct {
	plugin.BaseGenerator
	ws      *Workspace
	methods []MethodGenerator
}

func newGenerator(ws *Workspace, name, annotation string, proto any, priority int, methods ...MethodGenerator) *Generator {
	if ws == nil {
		ws = NewWorkspace()
	}
	gen := &Generator{
		BaseGenerator: *plugin.NewBaseGeneratorWithParamsStruct(
			name,
			[]string{annotation},
			[]plugin.TargetKind{plugin.TargetStruct},
			proto,
		),
		ws:      ws,
		methods: methods,
	}
	gen.SetPriority(priority)
	return gen
}

func NewToStringGenerator(ws *Workspace) *Generator {
	return newGenerator(ws, "tostring", ToString.Annotation(), ToStringParams{}, 10, ToString)
}

func NewEqualsGenerator(ws *Workspace) *Generator {
	return newGenerator(ws, "equals", Equals.Annotation(), EqualsParams{}, 20, Equals)
}

func NewHashCodeGenerator(ws *Workspace) *Generator {
	return newGenerator(ws, "hashcode", HashCode.Annotation(), HashCodeParams{}, 30, HashCode)
}

func NewCompareToGenerator(ws *Workspace) *Generator {
	return newGenerator(ws, "compareto", CompareTo.Annotation(), CompareToParams{}, 40, CompareTo)
}

// NewCommonGenerator @Common 生成全部方法
// 目标上同时存在单独的注解时，该方法交给对应的生成器
func NewCommonGenerator(ws *Workspace) *Generator {
	return newGenerator(ws, "common", CommonAnnotation, CommonParams{}, 50, All()...)
}

// Generators 共享同一个 Workspace 的全部生成器
func Generators(ws *Workspace) []plugin.Generator {
	return []plugin.Generator{
		NewToStringGenerator(ws),
		NewEqualsGenerator(ws),
		NewHashCodeGenerator(ws),
		NewCompareToGenerator(ws),
		NewCommonGenerator(ws),
	}
}

// Register 注册全部生成器
func Register(registry *plugin.Registry, ws *Workspace) error {
	for _, gen := range Generators(ws) {
		if err := registry.Register(gen); err != nil {
			return err
		}
	}
	return nil
}

// Methods 该生成器负责的方法
func (g *Generator) Methods() []MethodGenerator {
	return g.methods
}

// Generate 执行代码生成
func (g *Generator) Generate(ctx *plugin.GenerateContext) (*plugin.GenerateResult, error) {
	result := plugin.NewGenerateResult()

	// 同一文件中按源码位置输出，保证重复生成结果一致
	targets := slices.Clone(ctx.Targets)
	slices.SortFunc(targets, func(a, b *plugin.AnnotatedTarget) int {
		return cmp.Or(
			cmp.Compare(a.Target.FilePath, b.Target.FilePath),
			cmp.Compare(a.Target.Line, b.Target.Line),
		)
	})

	for _, at := range targets {
		ann := plugin.GetAnnotation(at.Annotations, g.Annotations()[0])
		if ann == nil {
			continue
		}
		if err := g.generateTarget(ctx, at, ann, result); err != nil {
			result.AddError(errors.Wrapf(err, "%s:%d %s", at.Target.FilePath, at.Target.Line, at.Target.Name))
		}
	}

	return result, nil
}

func (g *Generator) generateTarget(ctx *plugin.GenerateContext, at *plugin.AnnotatedTarget, ann *plugin.Annotation, result *plugin.GenerateResult) error {
	var ov Overrides
	if o, ok := at.ParsedParams.(overrider); ok {
		ov = o.overrides()
	}

	dir := at.Target.Dir()
	store, err := g.ws.Store(dir)
	if err != nil {
		return err
	}
	t, err := ResolveTarget(g.ws.Host(dir), at.Target.Name)
	if err != nil {
		return err
	}

	outputPath := plugin.GetOutputPath(at.Target, ann, plugin.DefaultOutputName,
		ctx.GetPackageConfig(at.Target.FilePath), g.Name(), ctx.DefaultOutput)

	var def *gg.Generator
	for _, m := range g.methods {
		if len(g.methods) > 1 && plugin.HasAnnotation(at.Annotations, m.Annotation()) {
			continue
		}

		opts, err := OptionsFromStore(store, m.MethodName(), ov)
		if err != nil {
			return err
		}

		exists, generated := t.Host.HasMethod(t.Ref, m.MethodName())
		if exists && !generated {
			if opts.Overwrite {
				return errors.Newf("%s 已有手写的 %s 方法，无法覆盖，请先删除", t.Decl.Name, m.MethodName())
			}
			result.AddWarning(fmt.Sprintf("%s 已有手写的 %s 方法，跳过生成", t.Decl.Name, m.MethodName()))
			result.Skipped++
			continue
		}

		if def == nil {
			def = result.Definition(outputPath, t.Decl.PackageName)
		}
		def.Body().AddLine()
		if err := m.Build(def, t, opts); err != nil {
			return err
		}
		if ctx.Verbose {
			logging.Logger.Debugw("生成方法", "struct", t.Decl.Name, "method", m.MethodName(), "file", outputPath)
		}
	}
	return nil
}
