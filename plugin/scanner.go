package plugin

import (
	"bufio"
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/donutnomad/commongen/internal/logging"
)

// DirectivePrefix 包级配置指令
const DirectivePrefix = "go:commongen:"

// Scanner 两阶段并行注解扫描器
// 第一阶段：快速文本匹配，找出可能包含注解的文件
// 第二阶段：对匹配的文件进行 AST 解析
type Scanner struct {
	workers int

	// 注解过滤器（可选）
	annotationFilter []string
}

// ScannerOption 扫描器选项
type ScannerOption func(*Scanner)

func WithWorkers(n int) ScannerOption {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

func WithAnnotationFilter(annotations ...string) ScannerOption {
	return func(s *Scanner) {
		s.annotationFilter = annotations
	}
}

func NewScanner(opts ...ScannerOption) *Scanner {
	s := &Scanner{
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// quickMatchRegex 快速匹配注解
var quickMatchRegex = regexp.MustCompile(`@([A-Z]\w*)`)

// Scan 扫描指定路径
// 支持: ./... ./pkg/... ./pkg /abs/path/... file.go
func (s *Scanner) Scan(ctx context.Context, patterns ...string) (*ScanResult, error) {
	allFiles, err := CollectFiles(patterns)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{PackageConfigs: make(map[string]*PackageConfig)}
	if len(allFiles) == 0 {
		return result, nil
	}

	// 第一阶段：快速匹配
	matched := parallel(ctx, s.workers, allFiles, func(file string) (string, bool) {
		ok, err := s.QuickMatchFile(file)
		if err != nil {
			logging.Logger.Debugw("跳过无法读取的文件", "file", file, "error", err)
			return "", false
		}
		return file, ok
	})
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "scan")
	}
	if len(matched) == 0 {
		return result, nil
	}

	// 第二阶段：AST 解析
	scans := parallel(ctx, s.workers, matched, func(file string) (*fileScan, bool) {
		fs, err := s.parseFile(file)
		if err != nil {
			logging.Logger.Warnw("解析文件失败", "file", file, "error", err)
			return nil, false
		}
		return fs, true
	})
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "scan")
	}

	// 按文件路径排序，保证输出稳定
	slices.SortFunc(scans, func(a, b *fileScan) int { return strings.Compare(a.path, b.path) })
	for _, fs := range scans {
		result.Structs = append(result.Structs, fs.structs...)
		result.Interfaces = append(result.Interfaces, fs.interfaces...)
		result.Named = append(result.Named, fs.named...)
		if fs.pkgConfig == nil {
			continue
		}
		pkgDir := fs.pkgConfig.PackageDir
		existing, ok := result.PackageConfigs[pkgDir]
		if !ok {
			result.PackageConfigs[pkgDir] = fs.pkgConfig
			continue
		}
		for _, key := range existing.merge(fs.pkgConfig) {
			logging.Logger.Warnw("包中存在多个不同的输出配置，使用后发现的配置",
				"package", pkgDir, "key", key, "file", fs.path)
		}
	}

	return result, nil
}

// parallel 用 workers 个 goroutine 处理 items，保留 keep 为 true 的结果
func parallel[T any](ctx context.Context, workers int, items []string, fn func(string) (T, bool)) []T {
	itemCh := make(chan string)
	resultCh := make(chan T, len(items))

	var wg sync.WaitGroup
	for range max(1, workers) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range itemCh {
				if v, keep := fn(item); keep {
					resultCh <- v
				}
			}
		}()
	}

	go func() {
		defer close(itemCh)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			case itemCh <- item:
			}
		}
	}()

	wg.Wait()
	close(resultCh)

	results := make([]T, 0, len(resultCh))
	for v := range resultCh {
		results = append(results, v)
	}
	return results
}

// QuickMatchFile 快速检查文件是否包含注解或 go:commongen: 配置
// dev 模式也用它判断文件变化是否需要触发生成
func (s *Scanner) QuickMatchFile(filePath string) (bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		trimmed := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(trimmed, "//") && !strings.HasPrefix(trimmed, "/*") {
			continue
		}
		if strings.Contains(trimmed, DirectivePrefix) {
			return true, nil
		}
		for _, match := range quickMatchRegex.FindAllStringSubmatch(trimmed, -1) {
			if len(s.annotationFilter) == 0 || slices.Contains(s.annotationFilter, match[1]) {
				return true, nil
			}
		}
	}

	return false, scanner.Err()
}

// fileScan 单个文件的解析结果
type fileScan struct {
	path       string
	structs    []*AnnotatedTarget
	interfaces []*AnnotatedTarget
	named      []*AnnotatedTarget
	pkgConfig  *PackageConfig
}

// parseFile AST 解析单个文件，生成的文件直接忽略
func (s *Scanner) parseFile(filePath string) (*fileScan, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filePath, nil, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", filePath)
	}

	result := &fileScan{path: filePath}
	if ast.IsGenerated(file) {
		return result, nil
	}

	result.pkgConfig = parsePackageConfig(file, filePath)

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		s.parseTypeDecl(fset, filePath, file.Name.Name, gen, result)
	}

	return result, nil
}

// parseTypeDecl 解析类型声明
// 单个声明使用 type 关键字上方的注释，分组声明使用各自的注释
func (s *Scanner) parseTypeDecl(fset *token.FileSet, filePath, packageName string, decl *ast.GenDecl, result *fileScan) {
	for _, spec := range decl.Specs {
		typeSpec, ok := spec.(*ast.TypeSpec)
		if !ok {
			continue
		}

		doc := typeSpec.Doc
		if doc == nil && len(decl.Specs) == 1 {
			doc = decl.Doc
		}
		if doc == nil {
			continue
		}

		annotations := ParseAnnotations(doc.Text())
		if len(s.annotationFilter) > 0 {
			annotations = FilterByNames(annotations, s.annotationFilter...)
		}
		if len(annotations) == 0 {
			continue
		}

		target := &Target{
			Name:        typeSpec.Name.Name,
			PackageName: packageName,
			FilePath:    filePath,
			Position:    typeSpec.Pos(),
			Line:        fset.Position(typeSpec.Pos()).Line,
			Node:        typeSpec,
		}
		at := &AnnotatedTarget{Target: target, Annotations: annotations}

		switch typeSpec.Type.(type) {
		case *ast.StructType:
			target.Kind = TargetStruct
			result.structs = append(result.structs, at)
		case *ast.InterfaceType:
			target.Kind = TargetInterface
			result.interfaces = append(result.interfaces, at)
		default:
			target.Kind = TargetNamed
			result.named = append(result.named, at)
		}
	}
}

// CollectFiles 收集需要扫描的 Go 文件，跳过测试文件、隐藏目录、vendor 和 testdata
func CollectFiles(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, pattern := range patterns {
		recursive := strings.HasSuffix(pattern, "/...") || pattern == "..."
		pattern = strings.TrimSuffix(strings.TrimSuffix(pattern, "..."), "/")
		if pattern == "" {
			pattern = "."
		}

		absPath, err := filepath.Abs(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "resolve %s", pattern)
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", pattern)
		}

		if !info.IsDir() {
			if strings.HasSuffix(absPath, ".go") {
				add(absPath)
			}
			continue
		}

		err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path == absPath {
					return nil
				}
				name := d.Name()
				if !recursive || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") ||
					name == "vendor" || name == "testdata" {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, ".go") && !strings.HasSuffix(path, "_test.go") {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walk %s", absPath)
		}
	}

	return files, nil
}

// Scan 使用默认扫描器扫描
func Scan(ctx context.Context, patterns ...string) (*ScanResult, error) {
	return NewScanner().Scan(ctx, patterns...)
}

// directiveRegex 匹配 go:commongen: 指令，支持 //go:commongen: 和 // go:commongen:
var directiveRegex = regexp.MustCompile(`^` + regexp.QuoteMeta(DirectivePrefix) + `\s*(.*)`)

// parsePackageConfig 解析包级 go:commongen: 配置
//
//	//go:commongen: -output `$FILE_common.go`
//	// go:commongen: plugin:tostring -output `$FILE_string.go` plugin:equals -output `equals_gen.go`
func parsePackageConfig(file *ast.File, filePath string) *PackageConfig {
	var lines []string
	for _, cg := range file.Comments {
		for _, c := range cg.List {
			text := strings.TrimPrefix(c.Text, "//")
			text = strings.TrimPrefix(text, "/*")
			text = strings.TrimSuffix(text, "*/")
			text = strings.TrimSpace(text)
			if m := directiveRegex.FindStringSubmatch(text); m != nil {
				lines = append(lines, m[1])
			}
		}
	}

	switch len(lines) {
	case 0:
		return nil
	case 1:
		return parseDirective(lines[0], filePath)
	default:
		logging.Logger.Warnw("文件定义了多个 "+DirectivePrefix+" 指令，将被忽略", "file", filePath)
		return nil
	}
}

// parseDirective 解析单行指令
//
//	-output `xxx`                                          默认输出
//	plugin:tostring -output `xxx` plugin:equals -output `yyy`  插件特定输出
func parseDirective(line string, filePath string) *PackageConfig {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	config := &PackageConfig{
		PackageDir:    filepath.Dir(filePath),
		PluginOutputs: make(map[string]string),
	}

	parts := splitDirectiveArgs(line)
	var currentPlugin string
	for i := 0; i < len(parts); i++ {
		part := parts[i]
		switch {
		case strings.HasPrefix(part, "plugin:"):
			currentPlugin = strings.ToLower(strings.TrimPrefix(part, "plugin:"))
		case part == "-output" && i+1 < len(parts):
			i++
			output := trimQuotes(parts[i])
			if currentPlugin == "" {
				config.DefaultOutput = output
			} else {
				config.PluginOutputs[currentPlugin] = output
			}
		}
	}

	if config.DefaultOutput == "" && len(config.PluginOutputs) == 0 {
		return nil
	}
	return config
}

// splitDirectiveArgs 按空白分割，引号内的空格保留
func splitDirectiveArgs(line string) []string {
	var parts []string
	var current strings.Builder
	var quote byte

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote == 0 && (c == '`' || c == '"' || c == '\''):
			quote = c
			current.WriteByte(c)
		case quote != 0 && c == quote:
			quote = 0
			current.WriteByte(c)
		case quote == 0 && (c == ' ' || c == '\t'):
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteByte(c)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}

// trimQuotes 去除成对的引号
func trimQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '`' || first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
