package main

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/donutnomad/commongen/internal/config"
	"github.com/donutnomad/commongen/internal/logging"
	"github.com/donutnomad/commongen/methodgen"
	"github.com/donutnomad/commongen/plugin"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/tools/imports"
)

// allPackages 调度键：重新生成全部监听路径
const allPackages = "*"

// DevOptions dev 命令选项
type DevOptions struct {
	Patterns []string      // 监听的路径模式
	Verbose  bool          // 详细输出
	Output   string        // 默认输出路径
	Async    bool          // 异步执行
	Workers  int           // 扫描并发数
	Debounce time.Duration // 防抖动时间
}

// devRunner 处理文件变动的核心逻辑
type devRunner struct {
	opts      *DevOptions
	registry  *plugin.Registry
	workspace *methodgen.Workspace
	watcher   *fsnotify.Watcher
	scanner   *plugin.Scanner
	ctx       context.Context // 用于响应退出信号

	// 防抖动相关
	mu          sync.Mutex
	pendingDirs map[string]*time.Timer // key: 包目录路径或 allPackages

	// 同一时刻只有一次生成，缓存失效也在其中完成
	genMu sync.Mutex
}

func newDevCommand(global *globalOptions) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "dev [路径...]",
		Short: "开发模式，监听文件变动自动生成",
		Long: `监听 Go 源文件和 .commongen.* 配置文件。
带注解的文件变化时重新生成所在的包；
其它文件或配置变化可能影响嵌入它们的类型，重新生成全部路径。`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runOpts := global.runOptions(args)
			if len(runOpts.Registry.Generators()) == 0 {
				return errors.New("没有已注册的生成器")
			}
			return dev(cmd.Context(), &DevOptions{
				Patterns: runOpts.Patterns,
				Verbose:  runOpts.Verbose,
				Output:   runOpts.Output,
				Async:    runOpts.Async,
				Workers:  runOpts.Workers,
				Debounce: debounce,
			})
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 5*time.Second, "防抖动时间")
	return cmd
}

// dev 启动开发模式
func dev(parent context.Context, opts *DevOptions) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "创建文件监听器失败")
	}
	defer watcher.Close()

	registry := plugin.Global()
	runner := &devRunner{
		opts:      opts,
		registry:  registry,
		workspace: workspace,
		watcher:   watcher,
		scanner: plugin.NewScanner(
			plugin.WithAnnotationFilter(registry.Annotations()...),
			plugin.WithWorkers(opts.Workers),
		),
		ctx:         ctx,
		pendingDirs: make(map[string]*time.Timer),
	}

	// 退出时停止所有待处理的定时器
	defer func() {
		runner.mu.Lock()
		for _, timer := range runner.pendingDirs {
			timer.Stop()
		}
		runner.mu.Unlock()
	}()

	dirs, err := collectWatchDirs(opts.Patterns)
	if err != nil {
		return errors.Wrap(err, "收集监听目录失败")
	}
	if len(dirs) == 0 {
		return errors.New("没有找到需要监听的目录")
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return errors.Wrapf(err, "添加监听目录失败 %s", dir)
		}
		logging.Logger.Debugw("监听目录", "dir", dir)
	}

	logging.Logger.Infof("开发模式已启动，监听 %d 个目录，按 Ctrl+C 退出", len(dirs))
	err = runner.watchLoop(ctx)
	logging.Logger.Info("正在退出...")
	return err
}

// watchLoop 事件处理循环
func (r *devRunner) watchLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			r.handleEvent(event)

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			logging.Logger.Debugw("监听错误", "error", err)
		}
	}
}

// handleEvent 处理文件事件
func (r *devRunner) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	filePath := event.Name

	if config.IsConfigFile(filePath) {
		logging.Logger.Infow("配置文件变化", "file", filePath)
		r.scheduleGenerate(allPackages)
		return
	}

	if !strings.HasSuffix(filePath, ".go") || isGeneratedFile(filePath) {
		return
	}
	logging.Logger.Debugw("检测到文件变化", "file", filePath, "op", event.Op.String())

	// 删除的文件无法再检查，其它类型可能嵌入过其中的结构体
	if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		r.scheduleGenerate(allPackages)
		return
	}

	if err := checkSyntax(filePath); err != nil {
		logging.Logger.Warnw("语法错误", "file", filePath, "error", err)
		return
	}

	hasAnnotation, err := r.scanner.QuickMatchFile(filePath)
	if err != nil {
		logging.Logger.Debugw("检查注解失败", "file", filePath, "error", err)
		return
	}
	if !hasAnnotation {
		// 字段变化会影响嵌入该文件中类型的目标
		r.scheduleGenerate(allPackages)
		return
	}

	r.scheduleGenerate(filepath.Dir(filePath))
}

// scheduleGenerate 防抖动调度生成
func (r *devRunner) scheduleGenerate(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if timer, exists := r.pendingDirs[key]; exists {
		timer.Stop()
	}

	r.pendingDirs[key] = time.AfterFunc(r.opts.Debounce, func() {
		select {
		case <-r.ctx.Done():
			return
		default:
		}

		r.runGenerate(key)

		r.mu.Lock()
		delete(r.pendingDirs, key)
		r.mu.Unlock()
	})
}

// runGenerate 使缓存失效后执行代码生成
func (r *devRunner) runGenerate(key string) {
	r.genMu.Lock()
	defer r.genMu.Unlock()

	if err := r.workspace.Invalidate(); err != nil {
		logging.Logger.Errorw("重新加载配置失败", "error", err)
		return
	}

	patterns := r.opts.Patterns
	if key != allPackages {
		patterns = []string{key}
	}
	logging.Logger.Debugw("触发代码生成", "patterns", patterns)

	stats, err := plugin.RunWithOptionsAndStats(r.ctx, &plugin.RunOptions{
		Registry: r.registry,
		Patterns: patterns,
		Verbose:  r.opts.Verbose,
		Output:   r.opts.Output,
		Async:    r.opts.Async,
		Workers:  r.opts.Workers,
	})
	if err != nil {
		logging.Logger.Errorw("生成失败", "error", err)
		return
	}

	if stats != nil && stats.FileCount > 0 {
		logging.Logger.Infow("生成完成", "files", stats.FileCount, "elapsed", stats.TotalDuration)
	} else {
		logging.Logger.Debug("生成完成: 无文件生成")
	}
}

// checkSyntax 检查文件语法
func checkSyntax(filePath string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	_, err = imports.Process(filePath, content, &imports.Options{
		Fragment:   true,
		AllErrors:  true,
		Comments:   true,
		FormatOnly: true, // 只检查语法，不修改 imports
	})
	return err
}

// collectWatchDirs 收集所有需要监听的目录
func collectWatchDirs(patterns []string) ([]string, error) {
	var dirs []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		recursive := strings.HasSuffix(pattern, "/...")
		baseDir := strings.TrimSuffix(pattern, "/...")
		if baseDir == "" {
			baseDir = "."
		}

		absDir, err := filepath.Abs(baseDir)
		if err != nil {
			return nil, err
		}

		info, err := os.Stat(absDir)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			continue
		}

		if !recursive {
			if !seen[absDir] {
				seen[absDir] = true
				dirs = append(dirs, absDir)
			}
			continue
		}

		err = filepath.WalkDir(absDir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}

			// 跳过隐藏目录、vendor 和 testdata，根目录本身除外
			name := d.Name()
			if path != absDir && (strings.HasPrefix(name, ".") || name == "vendor" || name == "testdata") {
				return filepath.SkipDir
			}

			if !seen[path] {
				seen[path] = true
				dirs = append(dirs, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return dirs, nil
}

// isGeneratedFile 测试文件和带生成头的文件
func isGeneratedFile(filePath string) bool {
	if strings.HasSuffix(filepath.Base(filePath), "_test.go") {
		return true
	}
	file, err := parser.ParseFile(token.NewFileSet(), filePath, nil, parser.PackageClauseOnly|parser.ParseComments)
	if err != nil {
		return false
	}
	return ast.IsGenerated(file)
}
