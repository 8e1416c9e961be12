package plugin

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// FormatHelpText 为所有注册的生成器生成帮助文本
func FormatHelpText(registry *Registry) string {
	generators := registry.Generators()
	if len(generators) == 0 {
		return "  (暂无已注册的生成器)\n"
	}

	var sb strings.Builder
	for _, gen := range generators {
		annotations := gen.Annotations()
		if len(annotations) == 0 {
			continue
		}
		primary := annotations[0]

		fmt.Fprintf(&sb, "  @%s - %s\n", primary, gen.Name())
		for _, alias := range annotations[1:] {
			fmt.Fprintf(&sb, "    别名: @%s\n", alias)
		}

		sb.WriteString("    参数:\n")
		rows := [][2]string{{"output", "输出文件路径（支持 $FILE、$PACKAGE）"}}
		for _, param := range gen.ParamDefs() {
			rows = append(rows, [2]string{paramLabel(param), param.Description})
		}
		writeAligned(&sb, "      ", rows)

		sb.WriteString("    示例:\n")
		fmt.Fprintf(&sb, "      @%s\n", primary)
		fmt.Fprintf(&sb, "      @%s(output=$FILE_common.go)\n", primary)
		shown := 0
		for _, param := range gen.ParamDefs() {
			if shown >= 2 || param.Default == "" {
				continue
			}
			fmt.Fprintf(&sb, "      @%s(%s=%s)\n", primary, param.Name, param.Default)
			shown++
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

// paramLabel 参数名及必填、默认值标记
func paramLabel(param ParamDef) string {
	label := param.Name
	if param.Required {
		label += " (必填)"
	}
	if param.Default != "" {
		label += fmt.Sprintf(" [默认: %s]", param.Default)
	}
	return label
}

// writeAligned 按显示宽度对齐两列，中文描述也能对齐
func writeAligned(sb *strings.Builder, indent string, rows [][2]string) {
	width := 0
	for _, row := range rows {
		width = max(width, runewidth.StringWidth(row[0]))
	}
	for _, row := range rows {
		sb.WriteString(indent)
		sb.WriteString(runewidth.FillRight(row[0], width))
		if row[1] != "" {
			sb.WriteString(" - ")
			sb.WriteString(row[1])
		}
		sb.WriteString("\n")
	}
}

// FormatParamDef 格式化单个参数定义
func FormatParamDef(param ParamDef) string {
	parts := []string{param.Name}

	if param.Required {
		parts = append(parts, "required")
	} else {
		parts = append(parts, "optional")
	}
	if param.Default != "" {
		parts = append(parts, "default="+param.Default)
	}
	if param.Description != "" {
		parts = append(parts, param.Description)
	}

	return strings.Join(parts, ", ")
}
