package container

import "container/heap"

// entry 堆中的一个元素
type entry[T any] struct {
	value T
	key   float64 // 排序键，越小越靠前
}

// entryHeap 实现heap.Interface的最小堆
type entryHeap[T any] []entry[T]

// Len 堆中元素数量
func (h entryHeap[T]) Len() int { return len(h) }

// Less 键较小的元素排在前面
func (h entryHeap[T]) Less(i, j int) bool { return h[i].key < h[j].key }

// Swap 交换两个元素
func (h entryHeap[T]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

// Push 追加到切片末尾，只应由heap.Push调用
// 参数：x-必须是entry[T]
func (h *entryHeap[T]) Push(x any) {
	*h = append(*h, x.(entry[T]))
}

// Pop 移除并返回切片末尾的元素，只应由heap.Pop调用
// 说明：heap.Pop已将最小元素交换到末尾
func (h *entryHeap[T]) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	var zero entry[T]
	old[n-1] = zero // 释放引用
	*h = old[:n-1]
	return e
}

// PriorityQueue 以float64为键的最小优先队列
// 功能：按键从小到大弹出元素，键相同的元素弹出顺序不保证
// 说明：用于滑动时间窗口（键为时间），零值不可用，请使用NewPriorityQueue创建
type PriorityQueue[T any] struct {
	h entryHeap[T]
}

// NewPriorityQueue 创建空的优先队列
func NewPriorityQueue[T any]() *PriorityQueue[T] {
	return &PriorityQueue[T]{h: make(entryHeap[T], 0)}
}

// Len 队列中元素数量
func (q *PriorityQueue[T]) Len() int {
	return len(q.h)
}

// HeapPush 加入元素并维护堆结构
func (q *PriorityQueue[T]) HeapPush(value T, key float64) {
	heap.Push(&q.h, entry[T]{value: value, key: key})
}

// PopWhile 依次弹出所有满足条件的队首元素
// 功能：从键最小的元素开始，只要pred返回true就弹出
// 返回：弹出的元素数量
// 算法说明：
// 1. 查看队首元素
// 2. pred(value, key)为false或队列为空时停止
func (q *PriorityQueue[T]) PopWhile(pred func(value T, key float64) bool) int {
	n := 0
	for len(q.h) > 0 && pred(q.h[0].value, q.h[0].key) {
		heap.Pop(&q.h)
		n++
	}
	return n
}
