package main

import (
	"context"
	"os"
	"strings"

	"github.com/donutnomad/commongen/internal/logging"
	"github.com/donutnomad/commongen/methodgen"
	"github.com/donutnomad/commongen/plugin"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// workspace 所有生成器共享，dev 模式下随文件变化失效
var workspace = methodgen.NewWorkspace()

func init() {
	// 集中注册所有生成器
	for _, gen := range methodgen.Generators(workspace) {
		plugin.MustRegister(gen)
	}
}

// globalOptions 所有命令共用的选项
type globalOptions struct {
	verbose  bool
	json     bool
	output   string
	noOutput bool
	async    bool
	workers  int
}

func (o *globalOptions) runOptions(patterns []string) *plugin.RunOptions {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	// -no-output 时传空字符串，每个生成器使用自己的默认文件
	output := o.output
	if o.noOutput {
		output = ""
	}
	return &plugin.RunOptions{
		Registry: plugin.Global(),
		Patterns: patterns,
		Verbose:  o.verbose,
		Output:   output,
		Async:    o.async,
		Workers:  o.workers,
	}
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "commongen [路径...]",
		Short: "为结构体生成 String、Equal、HashCode、CompareTo 方法",
		Long:  rootLong(),
		Args:  cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Initialize(opts.verbose, opts.json)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd.Context(), opts, args)
		},
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "详细输出")
	flags.BoolVar(&opts.json, "json", false, "日志输出为 JSON")
	flags.StringVar(&opts.output, "output", "", "默认输出路径（支持模板变量 $FILE, $PACKAGE）")
	flags.BoolVar(&opts.noOutput, "no-output", false, "忽略 -output，每个生成器输出到默认文件")
	flags.BoolVar(&opts.async, "async", true, "并发执行生成器")
	flags.IntVar(&opts.workers, "workers", 0, "扫描文件的并发数，0 为 CPU 核数")

	root.AddCommand(
		&cobra.Command{
			Use:   "gen [路径...]",
			Short: "执行代码生成（默认）",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runGen(cmd.Context(), opts, args)
			},
		},
		newDevCommand(opts),
		newCheckCommand(opts),
		newFieldsCommand(),
	)
	return root
}

func runGen(ctx context.Context, opts *globalOptions, patterns []string) error {
	registry := plugin.Global()
	if opts.verbose {
		for _, gen := range registry.Generators() {
			anns := lo.Map(gen.Annotations(), func(item string, index int) string {
				return "@" + item
			})
			logging.Logger.Debugw("已注册生成器", "name", gen.Name(), "annotations", strings.Join(anns, ","))
		}
	}

	stats, err := plugin.RunWithOptionsAndStats(ctx, opts.runOptions(patterns))
	if stats != nil && (stats.FileCount > 0 || opts.verbose) {
		logging.Logger.Infow("生成完成",
			"targets", stats.TargetCount,
			"files", stats.FileCount,
			"skipped", stats.Skipped,
			"scan", stats.ScanDuration,
			"generate", stats.GenerateDuration,
			"total", stats.TotalDuration,
		)
	}
	return err
}

func rootLong() string {
	var sb strings.Builder
	sb.WriteString(`commongen - 为结构体生成 String、Equal、HashCode、CompareTo 方法

路径:
  支持 Go 包路径模式，如:
    ./...          递归扫描当前目录及子目录（默认）
    ./models/...   递归扫描 models 目录

支持的注解:
`)
	sb.WriteString(plugin.FormatHelpText(plugin.Global()))
	sb.WriteString(`配置:
  从当前目录向上查找 .commongen.yaml / .yml / .toml / .json
  环境变量 COMMONGEN_EXCLUDE、COMMONGEN_TOSTRING_STYLE 等覆盖配置文件
  注解参数覆盖以上全部

模板变量:
  $FILE     - 源文件名（不含 .go 后缀）
  $PACKAGE  - 包名

示例:
  commongen                         扫描当前目录（默认 ./...）
  commongen -v ./models/...         详细模式扫描 models 目录
  commongen --output $FILE_gen ./...
  commongen check ./...             检查生成文件是否过期
  commongen fields -d ./models User 查看参与生成的字段
  commongen dev ./...               开发模式，监听文件变动
`)
	return sb.String()
}
