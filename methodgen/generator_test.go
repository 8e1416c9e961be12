package methodgen

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/donutnomad/commongen/internal/config"
	"github.com/donutnomad/commongen/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T, ws *Workspace) *plugin.Registry {
	t.Helper()
	registry := plugin.NewRegistry()
	require.NoError(t, Register(registry, ws))
	return registry
}

// methodsOf 解析生成的文件，返回 接收器类型.方法名 -> 出现次数
func methodsOf(t *testing.T, src []byte) map[string]int {
	t.Helper()
	file, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, 0)
	require.NoError(t, err, string(src))

	methods := make(map[string]int)
	for _, d := range file.Decls {
		fn, ok := d.(*ast.FuncDecl)
		if !ok || fn.Recv == nil {
			continue
		}
		methods[recvType(fn)+"."+fn.Name.Name]++
	}
	return methods
}

func TestNewGenerators(t *testing.T) {
	ws := NewWorkspace()
	gens := Generators(ws)
	require.Len(t, gens, 5)

	wantAnnotations := []string{"ToString", "Equals", "HashCode", "CompareTo", "Common"}
	for i, gen := range gens {
		assert.Equal(t, []string{wantAnnotations[i]}, gen.Annotations())
		assert.Equal(t, []plugin.TargetKind{plugin.TargetStruct}, gen.SupportedTargets())
		assert.Equal(t, (i+1)*10, gen.Priority())
		assert.NotEmpty(t, gen.ParamDefs())
	}

	common := NewCommonGenerator(ws)
	assert.Len(t, common.Methods(), 4)
	assert.NotNil(t, common.NewParams())

	// 同名注解只能注册一次
	registry := newRegistry(t, ws)
	assert.Error(t, Register(registry, ws))
}

// TestGenerate_Plan 测试完整流程
// 场景：
// - @Common 生成全部方法，同一目标上的 @ToString 接管 String()
// - 已有手写 String() 的类型被跳过
// - 再次生成结果不变
func TestGenerate_Plan(t *testing.T) {
	root := newModule(t)
	output := filepath.Join(root, "model", "model_common.go")

	plan, err := plugin.BuildPlan(context.Background(), &plugin.RunOptions{
		Registry: newRegistry(t, NewWorkspaceWith(config.Defaults())),
		Patterns: []string{root + "/..."},
	})
	require.NoError(t, err)
	require.Equal(t, []string{output}, plan.Paths())
	assert.Equal(t, 1, plan.Stats.Skipped)

	src := plan.Files[output]
	assert.Contains(t, string(src), plugin.GeneratedHeader)
	assert.Contains(t, string(src), "builder.ShortPrefixStyle")

	methods := methodsOf(t, src)
	assert.Equal(t, map[string]int{
		"*Shape.String":    1,
		"*Shape.Equal":     1,
		"*Shape.HashCode":  1,
		"*Shape.CompareTo": 1,
	}, methods)

	// 写入后再次生成：生成文件中的方法不算手写
	require.NoError(t, os.WriteFile(output, src, 0o644))
	again, err := plugin.BuildPlan(context.Background(), &plugin.RunOptions{
		Registry: newRegistry(t, NewWorkspaceWith(config.Defaults())),
		Patterns: []string{root + "/..."},
	})
	require.NoError(t, err)
	assert.Equal(t, string(src), string(again.Files[output]))
}

func TestGenerate_Overwrite(t *testing.T) {
	root := newModule(t)

	prefs := config.Defaults()
	prefs.Overwrite = true
	_, err := plugin.BuildPlan(context.Background(), &plugin.RunOptions{
		Registry: newRegistry(t, NewWorkspaceWith(prefs)),
		Patterns: []string{root + "/..."},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Manual 已有手写的 String 方法")
}

func TestGenerate_InvalidParams(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "go.mod", "module example.com/app\n\ngo 1.22\n")
	writeFile(t, root, "model/user.go", `package model

// @Equals(instance_check=maybe)
type User struct {
	Name string
}

// @HashCode(output=hash_gen.go)
type Order struct {
	ID int
}
`)

	plan, err := plugin.BuildPlan(context.Background(), &plugin.RunOptions{
		Registry: newRegistry(t, NewWorkspaceWith(config.Defaults())),
		Patterns: []string{filepath.Join(root, "model")},
	})
	require.Error(t, err)
	require.NotNil(t, plan)

	// 其它目标照常生成
	hashFile := filepath.Join(root, "model", "hash_gen.go")
	require.Contains(t, plan.Files, hashFile)
	assert.Equal(t, map[string]int{"Order.HashCode": 1}, methodsOf(t, plan.Files[hashFile]))
}

func TestGenerate_Example(t *testing.T) {
	plan, err := plugin.BuildPlan(context.Background(), &plugin.RunOptions{
		Registry: newRegistry(t, NewWorkspaceWith(config.Defaults())),
		Patterns: []string{"./example"},
	})
	require.NoError(t, err)

	output, err := filepath.Abs(filepath.Join("example", "models_common.go"))
	require.NoError(t, err)
	require.Contains(t, plan.Files, output)
	src := plan.Files[output]

	assert.Equal(t, map[string]int{
		"User.String":     1,
		"User.Equal":      1,
		"User.HashCode":   1,
		"User.CompareTo":  1,
		"*Account.String": 1,
		"*Account.Equal":  1,
	}, methodsOf(t, src))

	text := string(src)
	assert.Contains(t, text, "builder.MultiLineStyle")
	assert.Contains(t, text, `Append("owner", a.owner)`)
	assert.Contains(t, text, `Append("empty", a.IsEmpty())`)
	assert.Contains(t, text, "object == any(a)")
	assert.Contains(t, text, `Append("CreatedBy", u.CreatedBy)`)
	assert.NotContains(t, text, "u.log")
}
