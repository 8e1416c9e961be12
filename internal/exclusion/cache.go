package exclusion

import (
	"slices"
	"sync"
)

// Cache 缓存当前规则列表对应的 Matcher
// 规则列表不变时复用，变化或被显式失效时重新编译
type Cache struct {
	mu      sync.Mutex
	rules   []string
	matcher *Matcher
}

// NewCache 创建缓存
func NewCache() *Cache {
	return &Cache{}
}

// Matcher 返回 rules 对应的 Matcher
func (c *Cache) Matcher(rules []string) *Matcher {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.matcher != nil && slices.Equal(c.rules, rules) {
		return c.matcher
	}
	c.rules = append([]string(nil), rules...)
	c.matcher = Compile(rules)
	return c.matcher
}

// Invalidate 丢弃已编译的 Matcher，下次调用时重新编译
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rules = nil
	c.matcher = nil
}
