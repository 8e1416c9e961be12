package structparse

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
)

// parseMethodsFromPackage 从包目录中的所有文件解析指定类型的方法
func parseMethodsFromPackage(dir, typeName string) ([]MethodDecl, error) {
	files, err := FindGoFiles(dir)
	if err != nil {
		return nil, err
	}

	var all []MethodDecl
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil || !mayDeclareType(content, typeName) {
			continue
		}

		methods, err := parseMethodsFromFile(file, content, typeName)
		if err != nil {
			// 包内其他文件的语法错误不影响当前类型
			continue
		}
		all = append(all, methods...)
	}
	return all, nil
}

// parseMethodsFromFile 从单个文件解析指定类型的方法
func parseMethodsFromFile(filename string, content []byte, typeName string) ([]MethodDecl, error) {
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, filename, content, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		absPath = filename
	}
	generated := ast.IsGenerated(node)

	var methods []MethodDecl
	for _, decl := range node.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || len(fn.Recv.List) == 0 {
			continue
		}

		recv := fn.Recv.List[0]
		name, pointer := receiverBase(recv.Type)
		if name != typeName {
			continue
		}

		m := MethodDecl{
			Name:         fn.Name.Name,
			ReceiverType: types.ExprString(recv.Type),
			Pointer:      pointer,
			ParamCount:   countParams(fn.Type.Params),
			Results:      resultTypes(fn.Type.Results),
			FilePath:     absPath,
			Generated:    generated,
		}
		if len(recv.Names) > 0 {
			m.ReceiverName = recv.Names[0].Name
		}
		methods = append(methods, m)
	}
	return methods, nil
}

// receiverBase 去掉指针和类型参数，返回接收器的类型名
func receiverBase(expr ast.Expr) (name string, pointer bool) {
	if star, ok := expr.(*ast.StarExpr); ok {
		pointer = true
		expr = star.X
	}
	switch e := expr.(type) {
	case *ast.IndexExpr:
		expr = e.X
	case *ast.IndexListExpr:
		expr = e.X
	}
	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name, pointer
	}
	return "", pointer
}

func countParams(list *ast.FieldList) int {
	if list == nil {
		return 0
	}
	n := 0
	for _, f := range list.List {
		n += max(1, len(f.Names))
	}
	return n
}

func resultTypes(list *ast.FieldList) []string {
	if list == nil {
		return nil
	}
	var result []string
	for _, f := range list.List {
		typ := types.ExprString(f.Type)
		for range max(1, len(f.Names)) {
			result = append(result, typ)
		}
	}
	return result
}
