package container

import (
	"github.com/samber/lo"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Store 以ID为键的实体状态存储
// 功能：保存每个实体（人、车辆、路段）正在进行中的可变记录
// 说明：不是并发安全的，只能被单个回放引擎持有
type Store[K constraints.Ordered, V any] struct {
	data map[K]V
}

func NewStore[K constraints.Ordered, V any]() *Store[K, V] {
	return &Store[K, V]{data: make(map[K]V)}
}

// Get 获取记录，不存在时ok为false
func (s *Store[K, V]) Get(id K) (V, bool) {
	v, ok := s.data[id]
	return v, ok
}

// GetOrInsert 获取记录，不存在时使用create创建并保存
func (s *Store[K, V]) GetOrInsert(id K, create func() V) V {
	if v, ok := s.data[id]; ok {
		return v
	}
	v := create()
	s.data[id] = v
	return v
}

func (s *Store[K, V]) Set(id K, v V) {
	s.data[id] = v
}

func (s *Store[K, V]) Len() int {
	return len(s.data)
}

// SortedKeys 升序排列的所有键
func (s *Store[K, V]) SortedKeys() []K {
	keys := lo.Keys(s.data)
	slices.Sort(keys)
	return keys
}

// Range 按键升序遍历
func (s *Store[K, V]) Range(f func(id K, v V)) {
	for _, k := range s.SortedKeys() {
		f(k, s.data[k])
	}
}
