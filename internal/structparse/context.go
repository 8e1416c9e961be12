package structparse

import (
	"github.com/donutnomad/commongen/internal/pkgresolver"
)

// PackageResolver 包名解析器接口
type PackageResolver interface {
	GetPackageName(importPath string) (string, error)
}

// ParseContext 解析上下文，替代全局单例
type ParseContext struct {
	resolver PackageResolver
}

// NewParseContext 创建解析上下文，resolver 为 nil 时包名降级为导入路径末段
func NewParseContext(resolver PackageResolver) *ParseContext {
	return &ParseContext{resolver: resolver}
}

// NewParseContextWithRoot 基于项目根目录创建解析上下文
func NewParseContextWithRoot(projectRoot string) *ParseContext {
	return &ParseContext{resolver: pkgresolver.NewResolver(projectRoot)}
}
