package pkgresolver

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrNoGoFiles 目录中没有非测试 Go 源文件
var ErrNoGoFiles = errors.New("no go source files")

// ReadPackageName 读取目录中第一个非测试源文件的 package 声明
func ReadPackageName(pkgDir string) (string, error) {
	entries, err := os.ReadDir(pkgDir)
	if err != nil {
		return "", errors.Wrapf(err, "read dir %s", pkgDir)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}

		filename := filepath.Join(pkgDir, name)
		f, err := parser.ParseFile(token.NewFileSet(), filename, nil, parser.PackageClauseOnly)
		if err != nil {
			return "", errors.Wrapf(err, "parse package clause of %s", filename)
		}
		return f.Name.Name, nil
	}

	return "", errors.Wrapf(ErrNoGoFiles, "%s", pkgDir)
}
