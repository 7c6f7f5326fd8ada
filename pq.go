package gridsearch

// PriorityQueueItem is one frontier entry. IndexInQueue is kept current by the
// heap so a queued item can be re-scored with heap.Fix.
type PriorityQueueItem struct {
	Position     Position
	GScore       int
	FCost        int
	IndexInQueue int
}

// PriorityQueue is a container/heap min-queue of frontier entries.
type PriorityQueue []*PriorityQueueItem

func (queue PriorityQueue) Len() int { return len(queue) }

// Less orders by FCost, then row, then column. The positional tie-break makes
// the expansion order, and therefore the returned path, reproducible.
func (queue PriorityQueue) Less(i, j int) bool {
	a, b := queue[i], queue[j]
	if a.FCost != b.FCost {
		return a.FCost < b.FCost
	}
	return a.Position.Less(b.Position)
}

func (queue PriorityQueue) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].IndexInQueue = i
	queue[j].IndexInQueue = j
}

func (queue *PriorityQueue) Push(x any) {
	item := x.(*PriorityQueueItem)
	item.IndexInQueue = len(*queue)
	*queue = append(*queue, item)
}

func (queue *PriorityQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	item.IndexInQueue = -1
	*queue = oldQueue[:n-1]
	return item
}
