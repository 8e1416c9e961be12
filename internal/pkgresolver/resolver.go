package pkgresolver

import (
	"go/build"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
)

// ErrNotFound 无法在本地定位导入路径
var ErrNotFound = errors.New("package not found")

// Location 导入路径在磁盘上的位置
type Location struct {
	ImportPath string
	Dir        string
	Name       string // package 声明的包名
	Std        bool   // 标准库包，调用方不展开其类型
}

// Resolver 将导入路径解析为磁盘目录（统一入口）
//
// 查找顺序：标准库 → 当前模块 → GOMODCACHE → GOPATH/src
type Resolver struct {
	projectRoot string
	modulePath  string
	goroot      string
	gopath      string
	modCache    string
	cache       *locationCache
}

// NewResolver 创建解析器，projectRoot 为包含 go.mod 的目录，可为空
func NewResolver(projectRoot string) *Resolver {
	r := &Resolver{
		projectRoot: projectRoot,
		goroot:      build.Default.GOROOT,
		gopath:      build.Default.GOPATH,
		modCache:    os.Getenv("GOMODCACHE"),
		cache:       newLocationCache(),
	}
	if r.modCache == "" && r.gopath != "" {
		r.modCache = filepath.Join(filepath.SplitList(r.gopath)[0], "pkg", "mod")
	}
	if projectRoot != "" {
		r.modulePath, _ = ModulePath(projectRoot)
	}
	return r
}

// ProjectRoot 项目根目录
func (r *Resolver) ProjectRoot() string {
	return r.projectRoot
}

// ModulePath 当前模块路径，无 go.mod 时为空
func (r *Resolver) ModulePath() string {
	return r.modulePath
}

// Locate 定位导入路径
func (r *Resolver) Locate(importPath string) (Location, error) {
	if importPath == "" {
		return Location{}, errors.Wrap(ErrNotFound, "empty import path")
	}
	if loc, ok := r.cache.get(importPath); ok {
		return loc, nil
	}

	loc := Location{ImportPath: importPath}
	switch {
	case IsStdLib(importPath):
		loc.Std = true
		loc.Dir = filepath.Join(r.goroot, "src", filepath.FromSlash(importPath))
	case r.inModule(importPath):
		rel := strings.TrimPrefix(strings.TrimPrefix(importPath, r.modulePath), "/")
		loc.Dir = filepath.Join(r.projectRoot, filepath.FromSlash(rel))
	default:
		dir, err := r.findThirdParty(importPath)
		if err != nil {
			return Location{}, err
		}
		loc.Dir = dir
	}

	name, err := ReadPackageName(loc.Dir)
	if err != nil {
		if !loc.Std {
			return Location{}, errors.Wrapf(ErrNotFound, "%s: %v", importPath, err)
		}
		// GOROOT 不可用时标准库仍按路径末段命名
		name = path.Base(importPath)
	}
	loc.Name = name

	r.cache.set(importPath, loc)
	return loc, nil
}

// GetPackageName 获取导入路径对应的真实包名
//
//	"fmt" → "fmt"
//	"net/http" → "http"
//	"github.com/samber/lo" → "lo"
//
// 无法定位时降级为路径最后一部分
func (r *Resolver) GetPackageName(importPath string) (string, error) {
	loc, err := r.Locate(importPath)
	if err != nil {
		return path.Base(importPath), nil
	}
	return loc.Name, nil
}

// ImportPathOf 将项目内目录映射为导入路径
func (r *Resolver) ImportPathOf(dir string) (string, bool) {
	if r.projectRoot == "" || r.modulePath == "" {
		return "", false
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	root, err := filepath.Abs(r.projectRoot)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	if rel == "." {
		return r.modulePath, true
	}
	return r.modulePath + "/" + filepath.ToSlash(rel), true
}

// Reset 清空缓存
func (r *Resolver) Reset() {
	r.cache.reset()
}

func (r *Resolver) inModule(importPath string) bool {
	if r.modulePath == "" {
		return false
	}
	return importPath == r.modulePath || strings.HasPrefix(importPath, r.modulePath+"/")
}

// findThirdParty 在模块缓存中查找，选择最高版本；找不到时回退 GOPATH/src
func (r *Resolver) findThirdParty(importPath string) (string, error) {
	parts := strings.Split(importPath, "/")

	if r.modCache != "" {
		for i := len(parts); i >= 1; i-- {
			modPath := strings.Join(parts[:i], "/")
			escaped, err := module.EscapePath(modPath)
			if err != nil {
				continue
			}

			matches, err := filepath.Glob(filepath.Join(r.modCache, filepath.FromSlash(escaped)+"@*"))
			if err != nil || len(matches) == 0 {
				continue
			}

			dir := filepath.Join(latestVersion(matches), filepath.FromSlash(strings.Join(parts[i:], "/")))
			if _, err := os.Stat(dir); err == nil {
				return dir, nil
			}
		}
	}

	for _, gp := range filepath.SplitList(r.gopath) {
		dir := filepath.Join(gp, "src", filepath.FromSlash(importPath))
		if _, err := os.Stat(dir); err == nil {
			return dir, nil
		}
	}

	return "", errors.Wrapf(ErrNotFound, "%s", importPath)
}

// latestVersion 按语义化版本选择最高的 module@version 目录
func latestVersion(dirs []string) string {
	best := dirs[0]
	for _, d := range dirs[1:] {
		if semver.Compare(versionOf(d), versionOf(best)) > 0 {
			best = d
		}
	}
	return best
}

func versionOf(dir string) string {
	base := filepath.Base(dir)
	if i := strings.LastIndex(base, "@"); i >= 0 {
		return base[i+1:]
	}
	return ""
}

// IsStdLib 判断是否为标准库：首段路径不含点
func IsStdLib(importPath string) bool {
	if importPath == "" {
		return false
	}
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}

// ModulePath 读取 go.mod 中的模块路径
func ModulePath(projectRoot string) (string, error) {
	data, err := os.ReadFile(filepath.Join(projectRoot, "go.mod"))
	if err != nil {
		return "", errors.Wrap(err, "read go.mod")
	}
	modPath := modfile.ModulePath(data)
	if modPath == "" {
		return "", errors.Newf("no module directive in %s", filepath.Join(projectRoot, "go.mod"))
	}
	return modPath, nil
}

// FindProjectRoot 从 dir 向上查找包含 go.mod 的目录
func FindProjectRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "abs path of %s", dir)
	}
	for cur := abs; ; {
		if _, err := os.Stat(filepath.Join(cur, "go.mod")); err == nil {
			return cur, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", errors.Newf("go.mod not found above %s", abs)
		}
		cur = parent
	}
}
