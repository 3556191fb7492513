package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadyQueue_FIFO(t *testing.T) {
	catalog := program(nil, nil, nil)
	rq := &ReadyQueue{}
	for _, p := range BuildProcessTable(catalog, testConfig(PolicyFCFSN)) {
		rq.Enqueue(p)
	}

	assert.Equal(t, 3, rq.Len())
	assert.Equal(t, "[0 1 2]", rq.String())
	assert.Equal(t, 0, rq.Peek().ID)

	assert.Equal(t, 0, rq.Dequeue().ID)
	assert.Equal(t, 1, rq.Dequeue().ID)
	assert.Equal(t, 2, rq.Dequeue().ID)
	assert.Nil(t, rq.Dequeue())
	assert.Nil(t, rq.Peek())
	assert.Equal(t, "[]", rq.String())
}

func TestReadyQueue_Items_ReflectsContents(t *testing.T) {
	rq := &ReadyQueue{}
	p := NewProcessControlBlock(4, program(nil), 1)
	rq.Enqueue(p)
	assert.Equal(t, []*ProcessControlBlock{p}, rq.Items())
}

func TestReadyQueue_Enqueue_NilPanics(t *testing.T) {
	rq := &ReadyQueue{}
	assert.Panics(t, func() { rq.Enqueue(nil) })
}
