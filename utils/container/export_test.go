package container

import "container/heap"

// Peek 查看键最小的元素，不移除
func (q *PriorityQueue[T]) Peek() (value T, key float64, ok bool) {
	if len(q.h) == 0 {
		return value, 0, false
	}
	return q.h[0].value, q.h[0].key, true
}

// HeapPop 移除并返回键最小的元素
func (q *PriorityQueue[T]) HeapPop() (value T, key float64) {
	e := heap.Pop(&q.h).(entry[T])
	return e.value, e.key
}
