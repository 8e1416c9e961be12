package plugin

import (
	"go/ast"
	"go/token"
	"path/filepath"

	"github.com/donutnomad/gg"
)

// TargetKind 注解目标的类型
type TargetKind int

const (
	TargetStruct    TargetKind = iota + 1 // 结构体
	TargetInterface                       // 接口
	TargetNamed                           // 其它具名类型，如 type Status int
)

func (k TargetKind) String() string {
	switch k {
	case TargetStruct:
		return "struct"
	case TargetInterface:
		return "interface"
	case TargetNamed:
		return "named"
	default:
		return "unknown"
	}
}

// ParamDef 注解参数的元信息
type ParamDef struct {
	Name        string // 参数名称
	Required    bool   // 是否必填
	Default     string // 默认值（如果不是必填）
	Description string // 参数描述
}

// Annotation 解析后的注解
type Annotation struct {
	Name   string            // 注解名称，如 "ToString"
	Params map[string]string // 注解参数，键为小写
	Raw    string            // 原始注解文本
}

// Target 注解的目标类型
type Target struct {
	Kind        TargetKind
	Name        string
	PackageName string
	FilePath    string
	Position    token.Pos
	Line        int

	Node ast.Node
}

// Dir 目标所在的包目录
func (t *Target) Dir() string {
	return filepath.Dir(t.FilePath)
}

// AnnotatedTarget 带注解的目标
type AnnotatedTarget struct {
	Target       *Target
	Annotations  []*Annotation
	ParsedParams any // 解析后的参数结构体
}

// ScanResult 扫描结果
type ScanResult struct {
	Structs    []*AnnotatedTarget // 带注解的结构体
	Interfaces []*AnnotatedTarget // 带注解的接口
	Named      []*AnnotatedTarget // 带注解的其它类型

	// PackageConfigs 包级配置，key: 包目录
	PackageConfigs map[string]*PackageConfig
}

// All 返回所有带注解的目标
func (r *ScanResult) All() []*AnnotatedTarget {
	result := make([]*AnnotatedTarget, 0, len(r.Structs)+len(r.Interfaces)+len(r.Named))
	result = append(result, r.Structs...)
	result = append(result, r.Interfaces...)
	result = append(result, r.Named...)
	return result
}

// ByAnnotation 按注解名称过滤
func (r *ScanResult) ByAnnotation(name string) []*AnnotatedTarget {
	var result []*AnnotatedTarget
	for _, t := range r.All() {
		if HasAnnotation(t.Annotations, name) {
			result = append(result, t)
		}
	}
	return result
}

// GenerateContext 传递给 Generator 的生成上下文
type GenerateContext struct {
	Targets        []*AnnotatedTarget        // 该 Generator 需要处理的目标
	PackageConfigs map[string]*PackageConfig // 包级配置，key: 包目录
	DefaultOutput  string                    // 命令行指定的默认输出路径（最低优先级）
	Verbose        bool
}

// GetPackageConfig 获取文件所在包的配置
func (c *GenerateContext) GetPackageConfig(filePath string) *PackageConfig {
	if c.PackageConfigs == nil {
		return nil
	}
	return c.PackageConfigs[filepath.Dir(filePath)]
}

// GenerateResult 生成结果
// Generator 返回 gg 定义，由聚合器统一合并写入
type GenerateResult struct {
	// Definitions key: 输出文件路径
	Definitions map[string]*gg.Generator

	Errors   []error
	Warnings []string

	// Skipped 跳过的方法数量
	Skipped int
}

// NewGenerateResult 创建新的生成结果
func NewGenerateResult() *GenerateResult {
	return &GenerateResult{
		Definitions: make(map[string]*gg.Generator),
	}
}

// AddDefinition 添加 gg 定义
func (r *GenerateResult) AddDefinition(path string, gen *gg.Generator) {
	if r.Definitions == nil {
		r.Definitions = make(map[string]*gg.Generator)
	}
	r.Definitions[path] = gen
}

// Definition 获取 path 对应的定义，不存在时用 pkgName 创建
func (r *GenerateResult) Definition(path, pkgName string) *gg.Generator {
	if gen, ok := r.Definitions[path]; ok {
		return gen
	}
	gen := gg.New()
	gen.SetPackage(pkgName)
	r.AddDefinition(path, gen)
	return gen
}

func (r *GenerateResult) AddError(err error) {
	r.Errors = append(r.Errors, err)
}

func (r *GenerateResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

func (r *GenerateResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// PackageConfig 包级生成配置
// 通过 // go:commongen: 注释定义
//
//	// go:commongen: -output `$FILE_common.go`
//	// go:commongen: plugin:tostring -output `$FILE_string.go` plugin:equals -output `equals_gen.go`
type PackageConfig struct {
	PackageDir string

	// DefaultOutput 对所有插件生效的输出路径
	DefaultOutput string

	// PluginOutputs 插件特定的输出路径，key: 插件名（小写）
	PluginOutputs map[string]string
}

// GetPluginOutput 插件特定配置优先，其次默认配置
func (c *PackageConfig) GetPluginOutput(pluginName string) string {
	if c == nil {
		return ""
	}
	if output, ok := c.PluginOutputs[pluginName]; ok {
		return output
	}
	return c.DefaultOutput
}

// merge 合并同一包中另一个文件的配置，返回发生冲突的键
func (c *PackageConfig) merge(other *PackageConfig) []string {
	var conflicts []string
	if other.DefaultOutput != "" {
		if c.DefaultOutput != "" && c.DefaultOutput != other.DefaultOutput {
			conflicts = append(conflicts, "-output")
		}
		c.DefaultOutput = other.DefaultOutput
	}
	for k, v := range other.PluginOutputs {
		if existing, ok := c.PluginOutputs[k]; ok && existing != v {
			conflicts = append(conflicts, "plugin:"+k)
		}
		c.PluginOutputs[k] = v
	}
	return conflicts
}
