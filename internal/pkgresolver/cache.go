package pkgresolver

import "sync"

// locationCache 导入路径 → 包位置
type locationCache struct {
	mu   sync.RWMutex
	byID map[string]Location
}

func newLocationCache() *locationCache {
	return &locationCache{byID: make(map[string]Location)}
}

func (c *locationCache) get(importPath string) (Location, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	loc, ok := c.byID[importPath]
	return loc, ok
}

func (c *locationCache) set(importPath string, loc Location) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID[importPath] = loc
}

// reset 清空缓存，dev 模式下文件变化后调用
func (c *locationCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID = make(map[string]Location)
}
