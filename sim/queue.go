// Implements the ReadyQueue, which holds every PCB admitted to the Ready state.
// PCBs are enqueued in scheduler order and drained one at a time by the engine.

package sim

import (
	"fmt"
	"strings"
)

// ReadyQueue is a FIFO queue of PCBs waiting for the CPU.
type ReadyQueue struct {
	queue []*ProcessControlBlock
}

// Enqueue adds a PCB to the back of the ready queue.
func (rq *ReadyQueue) Enqueue(p *ProcessControlBlock) {
	if p == nil {
		panic("Enqueue: pcb must not be nil")
	}
	rq.queue = append(rq.queue, p)
}

func (rq *ReadyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range rq.queue {
		sb.WriteString(fmt.Sprint(p.ID))
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of PCBs in the queue.
func (rq *ReadyQueue) Len() int {
	return len(rq.queue)
}

// Peek returns the PCB at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (rq *ReadyQueue) Peek() *ProcessControlBlock {
	if len(rq.queue) == 0 {
		return nil
	}
	return rq.queue[0]
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage; callers MUST NOT append to or reslice it.
func (rq *ReadyQueue) Items() []*ProcessControlBlock {
	return rq.queue
}

// Dequeue removes the PCB at the front of the queue. Returns nil if empty.
func (rq *ReadyQueue) Dequeue() *ProcessControlBlock {
	if len(rq.queue) == 0 {
		return nil
	}
	p := rq.queue[0]
	rq.queue[0] = nil
	rq.queue = rq.queue[1:]
	return p
}
