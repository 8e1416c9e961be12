package structparse

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cockroachdb/errors"
)

// ErrTypeNotFound 未找到类型声明
var ErrTypeNotFound = errors.New("type not found")

// ParseType 解析指定文件中的命名类型
func (c *ParseContext) ParseType(filename, typeName string) (*TypeDecl, error) {
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
	if err != nil {
		return nil, errors.Wrapf(err, "parse file %s", filename)
	}

	spec := findTypeSpec(node, typeName)
	if spec == nil {
		return nil, errors.Wrapf(ErrTypeNotFound, "%s in %s", typeName, filename)
	}
	return c.buildDecl(filename, node, spec)
}

// FindType 在包目录中查找并解析命名类型
func (c *ParseContext) FindType(dir, typeName string) (*TypeDecl, error) {
	files, err := FindGoFiles(dir)
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil || !mayDeclareType(content, typeName) {
			continue
		}

		fset := token.NewFileSet()
		node, err := parser.ParseFile(fset, file, content, parser.ParseComments)
		if err != nil {
			continue
		}
		if spec := findTypeSpec(node, typeName); spec != nil {
			return c.buildDecl(file, node, spec)
		}
	}

	return nil, errors.Wrapf(ErrTypeNotFound, "%s in %s", typeName, dir)
}

// ListStructs 列出文件中声明的结构体名称，保持声明顺序
func ListStructs(filename string) ([]string, error) {
	node, err := parser.ParseFile(token.NewFileSet(), filename, nil, parser.SkipObjectResolution)
	if err != nil {
		return nil, errors.Wrapf(err, "parse file %s", filename)
	}

	var names []string
	for _, spec := range typeSpecs(node) {
		if _, ok := spec.Type.(*ast.StructType); ok {
			names = append(names, spec.Name.Name)
		}
	}
	return names, nil
}

func (c *ParseContext) buildDecl(filename string, node *ast.File, spec *ast.TypeSpec) (*TypeDecl, error) {
	absPath, err := filepath.Abs(filename)
	if err != nil {
		absPath = filename
	}

	decl := &TypeDecl{
		Name:        spec.Name.Name,
		PackageName: node.Name.Name,
		Dir:         filepath.Dir(absPath),
		FilePath:    absPath,
		Imports:     c.extractImports(node),
	}
	if spec.TypeParams != nil {
		for _, p := range spec.TypeParams.List {
			for _, n := range p.Names {
				decl.TypeParams = append(decl.TypeParams, n.Name)
			}
		}
	}

	decl.Alias = spec.Assign != 0
	if st, ok := spec.Type.(*ast.StructType); ok && !decl.Alias {
		decl.Kind = KindStruct
		decl.Fields = parseFields(st.Fields)
	} else if name, ok := namedType(spec.Type); ok {
		decl.Underlying = &name
	}

	methods, err := parseMethodsFromPackage(decl.Dir, decl.Name)
	if err != nil {
		return nil, err
	}
	decl.Methods = methods

	return decl, nil
}

// parseFields 解析结构体字段，嵌入字段不展开
func parseFields(list *ast.FieldList) []FieldDecl {
	if list == nil {
		return nil
	}

	var fields []FieldDecl
	for _, field := range list.List {
		fieldType := types.ExprString(field.Type)

		var tag string
		if field.Tag != nil {
			if unquoted, err := strconv.Unquote(field.Tag.Value); err == nil {
				tag = unquoted
			}
		}

		if len(field.Names) == 0 {
			f := FieldDecl{Type: fieldType, Tag: tag, Embedded: true}
			f.Qualifier, f.BaseType, f.Pointer = embeddedBase(field.Type)
			f.Name = f.BaseType
			fields = append(fields, f)
			continue
		}

		for _, name := range field.Names {
			fields = append(fields, FieldDecl{
				Name: name.Name,
				Type: fieldType,
				Tag:  tag,
			})
		}
	}
	return fields
}

// embeddedBase 拆分嵌入字段的类型表达式
//
//	Base          → "", "Base", false
//	*pkg.Base     → "pkg", "Base", true
//	Generic[T]    → "", "Generic", false
func embeddedBase(expr ast.Expr) (qualifier, name string, pointer bool) {
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
	switch e := expr.(type) {
	case *ast.Ident:
		return "", e.Name, pointer
	case *ast.SelectorExpr:
		if x, ok := e.X.(*ast.Ident); ok {
			return x.Name, e.Sel.Name, pointer
		}
	}
	return "", types.ExprString(expr), pointer
}

// namedType 类型表达式是否为（可能带限定符或类型实参的）命名类型
func namedType(expr ast.Expr) (TypeName, bool) {
	if _, ok := expr.(*ast.StarExpr); ok {
		return TypeName{}, false
	}
	qualifier, name, _ := embeddedBase(expr)
	if !token.IsIdentifier(name) {
		return TypeName{}, false
	}
	return TypeName{Qualifier: qualifier, Name: name}, true
}

func findTypeSpec(node *ast.File, typeName string) *ast.TypeSpec {
	for _, spec := range typeSpecs(node) {
		if spec.Name.Name == typeName {
			return spec
		}
	}
	return nil
}

// typeSpecs 返回文件顶层声明的所有类型，包括分组声明
func typeSpecs(node *ast.File) []*ast.TypeSpec {
	var specs []*ast.TypeSpec
	for _, decl := range node.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, s := range gen.Specs {
			if ts, ok := s.(*ast.TypeSpec); ok {
				specs = append(specs, ts)
			}
		}
	}
	return specs
}
