package ingest

import (
	"retail_orders/constants"
)

type Queue struct {
	channel chan *RawOrder
}

// NewQueue A lightweight raw-order queue based on Golang channel, decouples
// input parsing from the single-writer ingest loop.
func NewQueue() *Queue {
	newChan := make(chan *RawOrder, constants.INGEST_QUEUE_SIZE)
	return &Queue{
		channel: newChan,
	}
}

func (q *Queue) Enqueue(raw *RawOrder) {
	q.channel <- raw
}

// Dequeue blocks until a record is available; ok is false once the queue is
// closed and drained.
func (q *Queue) Dequeue() (*RawOrder, bool) {
	raw, ok := <-q.channel
	return raw, ok
}

func (q *Queue) GetMsgCount() int {
	return len(q.channel)
}

func (q *Queue) CloseQueue() {
	close(q.channel)
}
