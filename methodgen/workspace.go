package methodgen

import (
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/donutnomad/commongen/internal/config"
	"github.com/donutnomad/commongen/internal/gohost"
	"github.com/donutnomad/commongen/internal/pkgresolver"
	"golang.org/x/exp/maps"
)

// Workspace 按包目录缓存宿主和偏好，各生成器共享一份
type Workspace struct {
	mu        sync.Mutex
	resolvers map[string]*pkgresolver.Resolver // key: 项目根目录
	hosts     map[string]*gohost.Host
	stores    map[string]*config.Store
	fixed     *config.Preferences // 非 nil 时不读取配置文件和环境变量
}

func NewWorkspace() *Workspace {
	return &Workspace{
		resolvers: make(map[string]*pkgresolver.Resolver),
		hosts:     make(map[string]*gohost.Host),
		stores:    make(map[string]*config.Store),
	}
}

// NewWorkspaceWith 所有目录使用同一份偏好
func NewWorkspaceWith(prefs config.Preferences) *Workspace {
	w := NewWorkspace()
	w.fixed = &prefs
	return w
}

// Host 返回 dir 对应的源码宿主
func (w *Workspace) Host(dir string) *gohost.Host {
	abs := absDir(dir)

	w.mu.Lock()
	defer w.mu.Unlock()

	if h, ok := w.hosts[abs]; ok {
		return h
	}

	root, err := pkgresolver.FindProjectRoot(abs)
	if err != nil {
		root = ""
	}
	resolver, ok := w.resolvers[root]
	if !ok {
		resolver = pkgresolver.NewResolver(root)
		w.resolvers[root] = resolver
	}

	h := gohost.New(resolver, abs)
	w.hosts[abs] = h
	return h
}

// Store 返回 dir 对应的偏好
func (w *Workspace) Store(dir string) (*config.Store, error) {
	abs := absDir(dir)

	w.mu.Lock()
	defer w.mu.Unlock()

	if s, ok := w.stores[abs]; ok {
		return s, nil
	}

	var store *config.Store
	if w.fixed != nil {
		store = config.NewStoreWith(*w.fixed)
	} else {
		s, err := config.NewStore(abs)
		if err != nil {
			return nil, errors.Wrapf(err, "加载 %s 的配置", abs)
		}
		store = s
	}
	w.stores[abs] = store
	return store, nil
}

// Invalidate 源码或配置文件变化后调用
// 丢弃已解析的类型并重新加载偏好
func (w *Workspace) Invalidate() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, r := range w.resolvers {
		r.Reset()
	}
	w.hosts = make(map[string]*gohost.Host)

	if w.fixed != nil {
		w.stores = make(map[string]*config.Store)
		return nil
	}

	var errs []error
	for _, s := range maps.Values(w.stores) {
		if err := s.Reload(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func absDir(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return filepath.Clean(dir)
	}
	return abs
}
