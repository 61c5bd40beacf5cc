package repository

import "sync"

// collectionCache 按集合缓存整表读取结果
// 没有 TTL：缓存随进程存活，写入时显式失效
type collectionCache[T any] struct {
	mu    sync.Mutex
	valid bool
	value T
}

// getOrLoad 命中时直接返回缓存，否则执行 load 并缓存结果
func (c *collectionCache[T]) getOrLoad(load func() (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid {
		return c.value, nil
	}

	v, err := load()
	if err != nil {
		var zero T
		return zero, err
	}

	c.value = v
	c.valid = true
	return v, nil
}

// invalidate 使缓存失效，下次读取重新加载
func (c *collectionCache[T]) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
	var zero T
	c.value = zero
}

// peek 只读访问当前缓存，未命中时返回 false
func (c *collectionCache[T]) peek() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.valid
}
