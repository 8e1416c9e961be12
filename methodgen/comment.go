package methodgen

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/cockroachdb/errors"
	"github.com/donutnomad/commongen/internal/membercollect"
	"github.com/donutnomad/gg"
	"github.com/samber/lo"
)

// NoDoc 注释模板取该值时不生成注释
const NoDoc = "-"

var defaultDocs = map[string]string{
	methodString:    "{{.Method}} returns the {{.Style}} string form of {{.Type}}.",
	methodEqual:     "{{.Method}} reports whether object is a {{.Type}} with equal {{.Fields | join \", \" | default \"fields\"}}.",
	methodHashCode:  "{{.Method}} returns a hash of {{.Fields | join \", \" | default \"no fields\"}}, consistent with Equal.",
	methodCompareTo: "{{.Method}} orders {{.Type}} by {{.Fields | join \", \" | default \"no fields\"}}.",
}

// docData 注释模板可用的数据
type docData struct {
	Type     string   // 类型名
	Package  string   // 包名
	Method   string   // 方法名
	Receiver string   // 接收器名称
	Fields   []string // 参与生成的字段或属性
	Style    string   // String() 使用的样式名
	Bean     bool
	Super    bool
}

func newDocData(t *Target, method string, opts Options, accessors []membercollect.Accessor) docData {
	data := docData{
		Type:     t.Decl.Name,
		Package:  t.Decl.PackageName,
		Method:   method,
		Receiver: t.Receiver,
		Fields:   lo.Map(accessors, func(a membercollect.Accessor, _ int) string { return a.Name }),
		Bean:     opts.Bean,
		Super:    opts.Super,
	}
	if opts.Style != nil {
		data.Style = opts.Style.Name()
	}
	return data
}

var docTemplates sync.Map // map[string]*template.Template

func parseDoc(text string) (*template.Template, error) {
	if tmpl, ok := docTemplates.Load(text); ok {
		return tmpl.(*template.Template), nil
	}
	tmpl, err := template.New("doc").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, errors.Wrapf(err, "解析注释模板 %q", text)
	}
	docTemplates.Store(text, tmpl)
	return tmpl, nil
}

// renderDoc 渲染方法注释，返回不带 // 的各行
func renderDoc(text string, data docData) ([]string, error) {
	if text == NoDoc {
		return nil, nil
	}
	if text == "" {
		text = defaultDocs[data.Method]
	}

	tmpl, err := parseDoc(text)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrapf(err, "渲染 %s.%s 的注释", data.Type, data.Method)
	}

	out := strings.TrimSpace(buf.String())
	if out == "" {
		return nil, nil
	}
	return lo.Map(strings.Split(out, "\n"), func(line string, _ int) string {
		return strings.TrimRight(line, " \t")
	}), nil
}

func writeDoc(gen *gg.Generator, lines []string) {
	for _, line := range lines {
		if line == "" {
			gen.Body().AddString("//")
			continue
		}
		gen.Body().AddString("// " + line)
	}
}
