package structparse

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// FindGoFiles 查找目录中的 Go 源文件（不递归，不包含测试文件）
func FindGoFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read dir %s", dir)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	return files, nil
}

// mayDeclareType 用字符串匹配预筛选可能声明该类型的文件
func mayDeclareType(content []byte, typeName string) bool {
	return strings.Contains(string(content), typeName)
}
