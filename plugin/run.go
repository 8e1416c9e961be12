package plugin

import (
	"context"
	"fmt"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/davecgh/go-spew/spew"
	"github.com/donutnomad/commongen/internal/logging"
	"github.com/donutnomad/commongen/internal/utils"
	"github.com/donutnomad/gg"
	"golang.org/x/exp/maps"
)

// GeneratedHeader 生成文件的头部注释
const GeneratedHeader = "Code generated by commongen. DO NOT EDIT."

// DefaultOutputName 默认输出文件名
const DefaultOutputName = "$FILE_common.go"

// ErrNoGenerators 注册表为空
var ErrNoGenerators = errors.New("没有已注册的生成器")

// RunOptions 运行选项
type RunOptions struct {
	Registry *Registry
	Patterns []string
	Verbose  bool
	Output   string // 命令行指定的默认输出路径（最低优先级）
	Async    bool   // 并发执行各生成器
	Workers  int    // 扫描并发数，0 为 CPU 核数
}

// RunStats 运行统计信息
type RunStats struct {
	ScanDuration     time.Duration
	GenerateDuration time.Duration
	TotalDuration    time.Duration
	TargetCount      int
	FileCount        int
	Skipped          int
}

// Plan 一次生成的结果，尚未写入磁盘
type Plan struct {
	// Files key: 输出路径, value: 格式化后的文件内容
	Files map[string][]byte
	Stats *RunStats
}

// Paths 按字典序排列的输出路径
func (p *Plan) Paths() []string {
	paths := maps.Keys(p.Files)
	slices.Sort(paths)
	return paths
}

// Run 扫描、生成并写入文件
func Run(ctx context.Context, registry *Registry, patterns ...string) error {
	_, err := RunWithOptionsAndStats(ctx, &RunOptions{Registry: registry, Patterns: patterns})
	return err
}

// RunWithOptions 带选项运行
func RunWithOptions(ctx context.Context, opts *RunOptions) error {
	_, err := RunWithOptionsAndStats(ctx, opts)
	return err
}

// RunWithOptionsAndStats 带选项运行并返回统计信息
// 生成失败的目标不影响其它文件的写入，所有错误合并后返回
func RunWithOptionsAndStats(ctx context.Context, opts *RunOptions) (*RunStats, error) {
	plan, planErr := BuildPlan(ctx, opts)
	if plan == nil {
		return nil, planErr
	}

	var writeErrs []error
	for _, path := range plan.Paths() {
		if err := utils.WriteFormat(path, plan.Files[path]); err != nil {
			writeErrs = append(writeErrs, errors.Wrapf(err, "写入文件 %s", path))
			continue
		}
		plan.Stats.FileCount++
		logging.Logger.Infow("生成文件", "file", path)
	}

	return plan.Stats, errors.Join(planErr, errors.Join(writeErrs...))
}

// BuildPlan 扫描并生成，返回待写入的文件内容
// 返回的 Plan 非 nil 时，error 表示部分目标生成失败
func BuildPlan(ctx context.Context, opts *RunOptions) (*Plan, error) {
	totalStart := time.Now()
	stats := &RunStats{}
	plan := &Plan{Files: make(map[string][]byte), Stats: stats}

	registry := opts.Registry
	if registry == nil {
		registry = globalRegistry
	}
	annotations := registry.Annotations()
	if len(annotations) == 0 {
		return nil, ErrNoGenerators
	}

	scanStart := time.Now()
	scanner := NewScanner(WithAnnotationFilter(annotations...), WithWorkers(opts.Workers))
	result, err := scanner.Scan(ctx, opts.Patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "扫描失败")
	}
	stats.ScanDuration = time.Since(scanStart)
	stats.TargetCount = len(result.All())

	if stats.TargetCount == 0 {
		logging.Logger.Debug("没有找到任何带注解的目标")
		stats.TotalDuration = time.Since(totalStart)
		return plan, nil
	}
	logging.Logger.Debugw("扫描完成", "targets", stats.TargetCount, "elapsed", stats.ScanDuration)

	generateStart := time.Now()
	dispatch, mismatches := registry.DispatchTargets(result)
	for _, m := range mismatches {
		logging.Logger.Warnw("注解不支持该类型，已忽略",
			"annotation", "@"+m.Annotation, "type", m.Target.Name, "kind", m.Target.Kind.String(),
			"file", m.Target.FilePath, "line", m.Target.Line)
	}

	sortedNames := maps.Keys(dispatch)
	slices.SortFunc(sortedNames, func(a, b string) int {
		genA, _ := registry.GetByName(a)
		genB, _ := registry.GetByName(b)
		if genA.Priority() != genB.Priority() {
			return genA.Priority() - genB.Priority()
		}
		return strings.Compare(a, b)
	})

	var allErrors []error

	// 先串行解析参数，生成器执行期间只读
	for _, genName := range sortedNames {
		gen, _ := registry.GetByName(genName)
		dispatch[genName] = parseTargetParams(dispatch[genName], gen, opts.Verbose, &allErrors)
	}

	type genResultItem struct {
		genName string
		result  *GenerateResult
		err     error
	}

	execute := func(genName string) genResultItem {
		gen, _ := registry.GetByName(genName)
		targets := dispatch[genName]
		logging.Logger.Debugw("执行生成器", "generator", genName, "targets", len(targets))

		start := time.Now()
		genResult, err := gen.Generate(&GenerateContext{
			Targets:        targets,
			PackageConfigs: result.PackageConfigs,
			DefaultOutput:  opts.Output,
			Verbose:        opts.Verbose,
		})
		logging.Logger.Debugw("生成器完成", "generator", genName, "elapsed", time.Since(start))
		return genResultItem{genName: genName, result: genResult, err: err}
	}

	genResults := make(map[string]*GenerateResult, len(sortedNames))
	collect := func(item genResultItem) {
		if item.err != nil {
			allErrors = append(allErrors, errors.Wrapf(item.err, "生成器 %s 执行失败", item.genName))
			return
		}
		if item.result != nil {
			genResults[item.genName] = item.result
		}
	}

	if opts.Async {
		resultCh := make(chan genResultItem, len(sortedNames))
		var wg sync.WaitGroup
		for _, genName := range sortedNames {
			wg.Add(1)
			go func() {
				defer wg.Done()
				resultCh <- execute(genName)
			}()
		}
		wg.Wait()
		close(resultCh)
		for item := range resultCh {
			collect(item)
		}
	} else {
		for _, genName := range sortedNames {
			collect(execute(genName))
		}
	}

	// 按优先级顺序合并，同一文件中的方法顺序稳定
	fileDefinitions := make(map[string][]*gg.Generator)
	fileGenNames := make(map[string][]string)
	for _, genName := range sortedNames {
		genResult, ok := genResults[genName]
		if !ok {
			continue
		}
		paths := maps.Keys(genResult.Definitions)
		slices.Sort(paths)
		for _, path := range paths {
			fileDefinitions[path] = append(fileDefinitions[path], genResult.Definitions[path])
			fileGenNames[path] = append(fileGenNames[path], genName)
		}
		for _, w := range genResult.Warnings {
			logging.Logger.Warnw(w, "generator", genName)
		}
		stats.Skipped += genResult.Skipped
		if genResult.HasErrors() {
			allErrors = append(allErrors, genResult.Errors...)
		}
	}

	for path, definitions := range fileDefinitions {
		merged, err := mergeDefinitionsWithSeparator(definitions, fileGenNames[path])
		if err != nil {
			allErrors = append(allErrors, errors.Wrapf(err, "合并文件 %s 的定义", path))
			continue
		}
		src := merged.Bytes()
		formatted, err := utils.Format(path, src)
		if err != nil {
			allErrors = append(allErrors, err)
			formatted = src
		}
		plan.Files[path] = formatted
	}

	stats.GenerateDuration = time.Since(generateStart)
	stats.TotalDuration = time.Since(totalStart)

	for _, e := range allErrors {
		logging.Logger.Errorw("生成失败", "error", e)
	}
	return plan, errors.Join(allErrors...)
}

// parseTargetParams 解析每个目标上属于 gen 的注解参数，解析失败的目标被丢弃
func parseTargetParams(targets []*AnnotatedTarget, gen Generator, verbose bool, errs *[]error) []*AnnotatedTarget {
	kept := targets[:0:0]
	for _, target := range targets {
		params := gen.NewParams()
		if params == nil {
			kept = append(kept, target)
			continue
		}

		ann := FilterByNames(target.Annotations, gen.Annotations()...)
		if len(ann) == 0 {
			continue
		}
		if err := ParseAnnotationParams(ann[0], params, gen.ParamDefs()); err != nil {
			*errs = append(*errs, errors.Wrapf(err, "%s:%d %s", target.Target.FilePath, target.Target.Line, target.Target.Name))
			continue
		}

		val := reflect.ValueOf(params)
		if val.Kind() != reflect.Ptr {
			*errs = append(*errs, errors.Newf("NewParams() 必须返回指针类型, 得到: %T", params))
			continue
		}
		parsed := &AnnotatedTarget{
			Target:       target.Target,
			Annotations:  target.Annotations,
			ParsedParams: val.Elem().Interface(),
		}
		if verbose {
			logging.Logger.Debugf("%s @%s 参数:\n%s", target.Target.Name, ann[0].Name, spew.Sdump(parsed.ParsedParams))
		}
		kept = append(kept, parsed)
	}
	return kept
}

// mergeDefinitionsWithSeparator 合并多个 gg.Generator 定义到一个文件，并添加分隔符
func mergeDefinitionsWithSeparator(definitions []*gg.Generator, genNames []string) (*gg.Generator, error) {
	if len(definitions) == 0 {
		return nil, errors.New("没有定义需要合并")
	}

	merged := gg.New()
	merged.SetHeader(GeneratedHeader)

	var pkgName string
	for _, def := range definitions {
		if def.PackageName() == "" {
			continue
		}
		if pkgName == "" {
			pkgName = def.PackageName()
		} else if pkgName != def.PackageName() {
			return nil, errors.Newf("包名不一致: %s vs %s", pkgName, def.PackageName())
		}
	}
	if pkgName != "" {
		merged.SetPackage(pkgName)
	}

	for i, def := range definitions {
		genName := "unknown"
		if i < len(genNames) {
			genName = genNames[i]
		}
		merged.Body().AddLine()
		merged.Body().AddString(fmt.Sprintf("// ================ %s ================", genName))
		merged.Body().AddLine()
		merged.Merge(def)
	}

	return merged, nil
}

// GetOutputPath 根据注解参数和默认规则计算输出路径
// 优先级：注解参数 > 包级插件配置 > 包级默认配置 > 命令行参数 > 默认文件名
// 模板变量：
//   - $FILE: 源文件名（不含 .go 后缀）
//   - $PACKAGE: 包名
func GetOutputPath(target *Target, ann *Annotation, defaultFileName string, pkgConfig *PackageConfig, pluginName string, cmdOutput string) string {
	var output string
	if ann != nil {
		output = ann.GetParam("output")
	}
	if output == "" && pkgConfig != nil {
		output = pkgConfig.GetPluginOutput(strings.ToLower(pluginName))
	}
	if output == "" && cmdOutput != "" {
		output = cmdOutput
	}
	if output == "" {
		return GetDefaultOutputPath(target, defaultFileName)
	}

	output = replaceTemplateVars(output, target)
	if !strings.HasSuffix(output, ".go") {
		output += ".go"
	}
	if filepath.IsAbs(output) {
		return output
	}
	return filepath.Join(target.Dir(), output)
}

// replaceTemplateVars 替换 $FILE 和 $PACKAGE
func replaceTemplateVars(template string, target *Target) string {
	fileName := strings.TrimSuffix(filepath.Base(target.FilePath), ".go")
	template = strings.ReplaceAll(template, "$FILE", fileName)
	template = strings.ReplaceAll(template, "$PACKAGE", target.PackageName)
	return template
}

// GetDefaultOutputPath 默认输出路径，位于源文件所在目录
func GetDefaultOutputPath(target *Target, defaultFileName string) string {
	if defaultFileName == "" {
		defaultFileName = DefaultOutputName
	}
	return filepath.Join(target.Dir(), replaceTemplateVars(defaultFileName, target))
}
