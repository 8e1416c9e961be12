package config

import (
	"sync"

	"github.com/donutnomad/commongen/internal/exclusion"
)

// Store 持有当前偏好和编译好的排除规则
// 排除列表变化（SetExclude、Reload）时显式使缓存失效
type Store struct {
	dir string

	mu     sync.RWMutex
	prefs  Preferences
	source string
	cache  *exclusion.Cache
}

// NewStore 加载 dir 对应的偏好
func NewStore(dir string) (*Store, error) {
	s := &Store{dir: dir, cache: exclusion.NewCache()}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStoreWith 使用给定偏好创建，不读取文件和环境变量
func NewStoreWith(prefs Preferences) *Store {
	return &Store{prefs: prefs, cache: exclusion.NewCache()}
}

// Preferences 当前偏好的副本
func (s *Store) Preferences() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// Source 当前使用的配置文件，未使用时为空
func (s *Store) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// Excluder 当前排除列表对应的 Matcher
func (s *Store) Excluder() *exclusion.Matcher {
	return s.ExcluderFor(s.Preferences().ExcludeRules())
}

// ExcluderFor 指定规则对应的 Matcher，规则与上次相同时复用
func (s *Store) ExcluderFor(rules []string) *exclusion.Matcher {
	return s.cache.Matcher(rules)
}

// SetExclude 修改排除列表
func (s *Store) SetExclude(list string) {
	s.mu.Lock()
	s.prefs.Exclude = list
	s.mu.Unlock()
	s.cache.Invalidate()
}

// Reload 重新读取配置文件和环境变量
func (s *Store) Reload() error {
	prefs, source, err := Load(s.dir)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.prefs = *prefs
	s.source = source
	s.mu.Unlock()
	s.cache.Invalidate()
	return nil
}
