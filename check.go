package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/donutnomad/commongen/internal/logging"
	"github.com/donutnomad/commongen/plugin"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

// staleFile 磁盘内容与生成结果不一致的文件
type staleFile struct {
	Path string
	Diff string
}

func newCheckCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check [路径...]",
		Short: "检查生成文件是否过期，不写入磁盘",
		Long: `重新生成但不写入，与磁盘上的文件逐一比较。
有过期文件时打印 unified diff 并以非零状态退出，适合在 CI 中使用。`,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, planErr := plugin.BuildPlan(cmd.Context(), opts.runOptions(args))
			if plan == nil {
				return planErr
			}

			stale, err := staleFiles(plan)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, f := range stale {
				fmt.Fprint(out, f.Diff)
			}
			if len(stale) > 0 {
				return errors.Join(planErr, errors.Newf("%d 个生成文件已过期，请执行 commongen 重新生成", len(stale)))
			}
			if planErr == nil {
				logging.Logger.Infow("生成文件均为最新", "files", len(plan.Files))
			}
			return planErr
		},
	}
}

// staleFiles 比较 plan 与磁盘，不存在的文件视为空
func staleFiles(plan *plugin.Plan) ([]staleFile, error) {
	var stale []staleFile
	for _, path := range plan.Paths() {
		want := plan.Files[path]
		got, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, "读取 %s", path)
		}
		if bytes.Equal(got, want) {
			continue
		}

		name := displayPath(path)
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(got)),
			B:        difflib.SplitLines(string(want)),
			FromFile: name,
			ToFile:   name + " (generated)",
			Context:  3,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "比较 %s", path)
		}
		stale = append(stale, staleFile{Path: path, Diff: diff})
	}
	return stale, nil
}

// displayPath 尽量显示相对当前目录的路径
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || filepath.IsAbs(rel) || len(rel) > len(path) {
		return path
	}
	return rel
}
