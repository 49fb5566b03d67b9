package scheduler

import "container/heap"

// timerHeap implements container/heap.Interface for timerEvent, sorted by
// EndAt (earliest first — min-heap).
type timerHeap []timerEvent

func (h timerHeap) Len() int           { return len(h) }
func (h timerHeap) Less(i, j int) bool { return h[i].EndAt.Before(h[j].EndAt) }
func (h timerHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *timerHeap) Push(x any) {
	*h = append(*h, x.(timerEvent))
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// heapPush adds a timerEvent to the heap, maintaining the heap invariant.
func heapPush(h *timerHeap, e timerEvent) {
	heap.Push(h, e)
}

// heapPop removes and returns the timerEvent with the earliest EndAt.
// Panics if the heap is empty.
func heapPop(h *timerHeap) timerEvent {
	return heap.Pop(h).(timerEvent)
}

// heapRemoveByID removes the first timerEvent with the given id.
// Returns true if the event was found and removed, false otherwise.
func heapRemoveByID(h *timerHeap, id string) bool {
	for i, e := range *h {
		if e.ID == id {
			heap.Remove(h, i)
			return true
		}
	}
	return false
}
