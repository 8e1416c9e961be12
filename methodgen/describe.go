package methodgen

import (
	"github.com/cockroachdb/errors"
	"github.com/donutnomad/commongen/internal/membercollect"
	"github.com/samber/lo"
)

// FieldReport 一个结构体参与生成的成员
type FieldReport struct {
	Type     string         `json:"type"`
	Package  string         `json:"package"`
	Mode     string         `json:"mode"` // fields | bean
	Rules    []string       `json:"rules"`
	Members  []MemberReport `json:"members"`
	Excluded []string       `json:"excluded,omitempty"`
}

// MemberReport 单个成员
type MemberReport struct {
	Name       string `json:"name"`
	Expr       string `json:"expr"`
	Type       string `json:"type,omitempty"`
	Depth      int    `json:"depth"`
	Visibility string `json:"visibility,omitempty"`
	Declaring  string `json:"declaring,omitempty"`
	Getter     string `json:"getter,omitempty"`
}

// Describe 按当前偏好收集 dir 中 typeName 的成员，不生成代码
func Describe(ws *Workspace, dir, typeName string, bean bool) (*FieldReport, error) {
	store, err := ws.Store(dir)
	if err != nil {
		return nil, err
	}
	t, err := ResolveTarget(ws.Host(dir), typeName)
	if err != nil {
		return nil, err
	}

	excluder := store.Excluder()
	collector := membercollect.New(t.Host, excluder)

	fields, err := collector.CollectFields(t.Ref)
	if err != nil {
		return nil, errors.Wrapf(err, "收集 %s 的字段", typeName)
	}

	var accessors []membercollect.Accessor
	mode := "fields"
	if bean {
		mode = "bean"
		accessors, err = collector.CollectBeanProperties(t.Ref)
	} else {
		accessors, err = collector.FieldAccessors(t.Ref)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "收集 %s 的成员", typeName)
	}

	report := &FieldReport{
		Type:    typeName,
		Package: t.Ref.PkgPath,
		Mode:    mode,
		Rules:   excluder.Rules(),
		Members: make([]MemberReport, 0, len(accessors)),
		Excluded: lo.Filter(fields.Names(), func(name string, _ int) bool {
			return collector.IsExcluded(name)
		}),
	}
	for _, a := range accessors {
		mr := MemberReport{Name: a.Name, Expr: a.Expr, Getter: a.Getter}
		if f, ok := fields.Get(a.Name); ok && !a.ViaGetter() {
			mr.Type = f.Type
			mr.Depth = f.Depth
			mr.Visibility = f.Visibility.String()
			mr.Declaring = f.Declaring.String()
		}
		report.Members = append(report.Members, mr)
	}
	return report, nil
}
