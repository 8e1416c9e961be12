package main

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/donutnomad/commongen/methodgen"
	"github.com/spf13/cobra"
)

func newFieldsCommand() *cobra.Command {
	var (
		dir  string
		bean bool
	)

	cmd := &cobra.Command{
		Use:   "fields <类型>...",
		Short: "以 JSON 输出结构体参与生成的成员及被排除的字段",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports := make([]*methodgen.FieldReport, 0, len(args))
			for _, typeName := range args {
				report, err := methodgen.Describe(workspace, dir, typeName, bean)
				if err != nil {
					return err
				}
				reports = append(reports, report)
			}

			var v any = reports
			if len(reports) == 1 {
				v = reports[0]
			}
			data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
			if err != nil {
				return errors.Wrap(err, "序列化字段报告")
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "类型所在的包目录")
	cmd.Flags().BoolVar(&bean, "bean", false, "按 getter 方法收集成员")
	return cmd
}
