package utils

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/imports"
)

// Format 格式化源码并整理导入
func Format(path string, src []byte) ([]byte, error) {
	out, err := imports.Process(path, src, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: false,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "format %s", path)
	}
	return out, nil
}

// WriteFormat 格式化后写入文件，格式化失败时仍写入原始内容便于排查
func WriteFormat(path string, src []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "mkdir %s", filepath.Dir(path))
	}

	out, ferr := Format(path, src)
	if ferr != nil {
		out = src
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return ferr
}
