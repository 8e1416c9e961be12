package structparse

import (
	"go/ast"
	"path"
	"strconv"
)

// extractImports 提取文件中的导入信息，键为文件内引用该包使用的名称
func (c *ParseContext) extractImports(node *ast.File) map[string]*ImportInfo {
	imports := make(map[string]*ImportInfo)

	for _, imp := range node.Imports {
		importPath, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}

		packageName := c.packageName(importPath)

		var alias string
		if imp.Name != nil {
			alias = imp.Name.Name
			// 空白导入和点导入不会作为限定符出现
			if alias == "_" || alias == "." {
				continue
			}
		}

		key := packageName
		if alias != "" {
			key = alias
		}
		imports[key] = &ImportInfo{
			Alias:       alias,
			PackageName: packageName,
			ImportPath:  importPath,
		}
	}

	return imports
}

// packageName 获取真实包名，失败时降级为路径最后一部分
func (c *ParseContext) packageName(importPath string) string {
	if c.resolver != nil {
		if name, err := c.resolver.GetPackageName(importPath); err == nil && name != "" {
			return name
		}
	}
	return path.Base(importPath)
}

// ResolveQualifier 将文件内的包限定符解析为导入路径
func (t *TypeDecl) ResolveQualifier(qualifier string) (string, bool) {
	info, ok := t.Imports[qualifier]
	if !ok {
		return "", false
	}
	return info.ImportPath, true
}
