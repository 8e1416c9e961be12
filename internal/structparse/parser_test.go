package structparse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResolver 测试用包名解析器
type fakeResolver map[string]string

func (f fakeResolver) GetPackageName(importPath string) (string, error) {
	if name, ok := f[importPath]; ok {
		return name, nil
	}
	return "", errors.New("unknown")
}

// TestParseType_Simple 测试基本字段解析
func TestParseType_Simple(t *testing.T) {
	ctx := NewParseContext(nil)

	decl, err := ctx.ParseType("testdata/simple/user.go", "User")
	require.NoError(t, err)

	assert.Equal(t, "User", decl.Name)
	assert.Equal(t, "simple", decl.PackageName)
	assert.Equal(t, KindStruct, decl.Kind)
	assert.True(t, filepath.IsAbs(decl.FilePath))

	want := []FieldDecl{
		{Name: "ID", Type: "int64"},
		{Name: "Name", Type: "string"},
		{Name: "Email", Type: "string"},
		{Name: "CreatedAt", Type: "time.Time"},
		{Name: "UpdatedAt", Type: "time.Time"},
	}
	if diff := cmp.Diff(want, decl.Fields); diff != "" {
		t.Errorf("Fields mismatch (-want +got):\n%s", diff)
	}

	importPath, ok := decl.ResolveQualifier("time")
	require.True(t, ok)
	assert.Equal(t, "time", importPath)
}

// TestParseType_Embedded 测试嵌入字段
// 场景：
// - 值嵌入、指针嵌入都不展开
// - 标签去掉反引号
// - 空白字段保留，由调用方决定如何处理
func TestParseType_Embedded(t *testing.T) {
	ctx := NewParseContext(nil)

	decl, err := ctx.ParseType("testdata/embedded/user.go", "User")
	require.NoError(t, err)

	want := []FieldDecl{
		{Name: "BaseModel", Type: "BaseModel", Embedded: true, BaseType: "BaseModel"},
		{Name: "Audit", Type: "*Audit", Embedded: true, Pointer: true, BaseType: "Audit"},
		{Name: "Name", Type: "string", Tag: `json:"name"`},
		{Name: "Email", Type: "string", Tag: `json:"email"`},
		{Name: "Age", Type: "int", Tag: `json:"age"`},
		{Name: "_", Type: "struct{}"},
	}
	if diff := cmp.Diff(want, decl.Fields); diff != "" {
		t.Errorf("Fields mismatch (-want +got):\n%s", diff)
	}

	embedded := decl.Embedded()
	require.Len(t, embedded, 2)
	assert.Equal(t, "BaseModel", embedded[0].BaseType)
	assert.Equal(t, "Audit", embedded[1].BaseType)
}

// TestFindType 测试在包目录中查找类型
// 场景：
// - 类型在另一个文件中
// - 分组声明中的泛型结构体
// - 非结构体命名类型
// - 定义类型与别名记录底层命名类型
// - 不存在的类型
func TestFindType(t *testing.T) {
	ctx := NewParseContext(nil)

	base, err := ctx.FindType("testdata/embedded", "BaseModel")
	require.NoError(t, err)
	assert.Equal(t, "base.go", filepath.Base(base.FilePath))
	assert.Len(t, base.Fields, 3)

	pair, err := ctx.FindType("testdata/methods", "Pair")
	require.NoError(t, err)
	assert.Equal(t, KindStruct, pair.Kind)
	assert.Equal(t, []string{"K", "V"}, pair.TypeParams)
	getKey, ok := pair.Method("GetKey")
	require.True(t, ok)
	assert.True(t, getKey.Pointer)
	assert.Equal(t, []string{"K"}, getKey.Results)

	status, err := ctx.FindType("testdata/methods", "Status")
	require.NoError(t, err)
	assert.Equal(t, KindOther, status.Kind)
	assert.Empty(t, status.Fields)
	isActive, ok := status.Method("IsActive")
	require.True(t, ok)
	assert.True(t, isActive.ReturnsBool())
	assert.Equal(t, &TypeName{Name: "int"}, status.Underlying)

	code, err := ctx.FindType("testdata/methods", "Code")
	require.NoError(t, err)
	assert.False(t, code.Alias)
	assert.Equal(t, &TypeName{Name: "Status"}, code.Underlying)

	label, err := ctx.FindType("testdata/methods", "Label")
	require.NoError(t, err)
	assert.True(t, label.Alias)
	assert.Equal(t, KindOther, label.Kind)
	assert.Equal(t, &TypeName{Name: "Status"}, label.Underlying)
	assert.Nil(t, pair.Underlying)

	_, err = ctx.FindType("testdata/methods", "Missing")
	assert.True(t, errors.Is(err, ErrTypeNotFound))
}

// TestParseType_Methods 测试方法收集
// 场景：
// - 值接收器与指针接收器
// - 跨文件方法
// - 生成文件中的方法标记 Generated
func TestParseType_Methods(t *testing.T) {
	ctx := NewParseContext(nil)

	decl, err := ctx.ParseType("testdata/methods/product.go", "Product")
	require.NoError(t, err)

	names := make(map[string]MethodDecl)
	for _, m := range decl.Methods {
		names[m.Name] = m
	}
	require.Len(t, names, 4)

	display := names["GetDisplayName"]
	assert.False(t, display.Pointer)
	assert.Equal(t, "Product", display.ReceiverType)
	assert.Equal(t, "p", display.ReceiverName)
	assert.Equal(t, 0, display.ParamCount)
	assert.Equal(t, []string{"string"}, display.Results)

	update := names["UpdatePrice"]
	assert.True(t, update.Pointer)
	assert.Equal(t, "*Product", update.ReceiverType)
	assert.Equal(t, 1, update.ParamCount)
	assert.Empty(t, update.Results)

	validate := names["Validate"]
	assert.Equal(t, "product_helper.go", filepath.Base(validate.FilePath))
	assert.False(t, validate.Generated)

	str := names["String"]
	assert.True(t, str.Generated)
}

// TestExtractImports 测试导入解析
// 场景：
// - 显式别名作为键
// - 包名与目录名不一致时使用真实包名作为键
// - 空白导入忽略
func TestExtractImports(t *testing.T) {
	dir := t.TempDir()
	src := `package demo

import (
	cc "example.com/lib/aliased"
	"example.com/lib/gg"
	_ "example.com/lib/side"
)

type Demo struct {
	A cc.Type
	B g2.Type
}
`
	filename := filepath.Join(dir, "demo.go")
	require.NoError(t, os.WriteFile(filename, []byte(src), 0o644))

	ctx := NewParseContext(fakeResolver{"example.com/lib/gg": "g2"})
	decl, err := ctx.ParseType(filename, "Demo")
	require.NoError(t, err)

	require.Len(t, decl.Imports, 2)
	assert.Equal(t, &ImportInfo{Alias: "cc", PackageName: "aliased", ImportPath: "example.com/lib/aliased"}, decl.Imports["cc"])
	assert.Equal(t, &ImportInfo{PackageName: "g2", ImportPath: "example.com/lib/gg"}, decl.Imports["g2"])

	_, ok := decl.ResolveQualifier("side")
	assert.False(t, ok)
}

func TestListStructs(t *testing.T) {
	names, err := ListStructs("testdata/methods/kinds.go")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pair"}, names)
}

func TestFindGoFiles(t *testing.T) {
	files, err := FindGoFiles("testdata/methods")
	require.NoError(t, err)

	var bases []string
	for _, f := range files {
		bases = append(bases, filepath.Base(f))
	}
	assert.Equal(t, []string{"kinds.go", "product.go", "product_common.go", "product_helper.go"}, bases)
}
