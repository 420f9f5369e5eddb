package nav

import "container/heap"

// pqItem is one queued coordinate with its priority.
type pqItem struct {
	prio  float32
	coord Coord
}

type pqItems []pqItem

func (h pqItems) Len() int            { return len(h) }
func (h pqItems) Less(i, j int) bool  { return h[i].prio < h[j].prio }
func (h pqItems) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *pqItems) Push(x interface{}) { *h = append(*h, x.(pqItem)) }
func (h *pqItems) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// pqueue is a float-keyed min-heap of tile coordinates. Queue sizes are
// bounded by FieldResR*FieldResC, so the linear contains probe stays cheap.
type pqueue struct {
	items pqItems
}

func newPqueue() *pqueue {
	q := &pqueue{items: make(pqItems, 0, 64)}
	heap.Init(&q.items)
	return q
}

func (q *pqueue) push(prio float32, c Coord) {
	heap.Push(&q.items, pqItem{prio, c})
}

func (q *pqueue) pop() Coord {
	return heap.Pop(&q.items).(pqItem).coord
}

func (q *pqueue) size() int {
	return len(q.items)
}

// contains probes for a coordinate already in the queue, ignoring priorities.
func (q *pqueue) contains(c Coord) bool {
	for _, it := range q.items {
		if it.coord == c {
			return true
		}
	}
	return false
}
