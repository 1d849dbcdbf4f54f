package ingest

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestQueue_Enqueue(t *testing.T) {
	q := NewQueue()
	q.Enqueue(&RawOrder{})
	assert.Equal(t, 1, q.GetMsgCount())
	q.Enqueue(&RawOrder{})
	assert.Equal(t, 2, q.GetMsgCount())
}

func TestQueue_Dequeue(t *testing.T) {
	q := NewQueue()
	q.Enqueue(&RawOrder{})
	q.Enqueue(&RawOrder{})
	_, ok := q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, 1, q.GetMsgCount())
	_, ok = q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, 0, q.GetMsgCount())
}

func TestQueue_CloseDrains(t *testing.T) {
	q := NewQueue()
	q.Enqueue(&RawOrder{Phone: "555-1"})
	q.CloseQueue()

	raw, ok := q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, "555-1", raw.Phone)

	_, ok = q.Dequeue()
	assert.False(t, ok)
}

func TestLoadOrdersFile(t *testing.T) {
	fileName := t.TempDir() + "/orders.json"
	payload := `[{"name":"Ann","phone":"555-1","timestamp":1000,"items":[{"name":"Coffee","price":3.50}]}]`
	if err := os.WriteFile(fileName, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	orders, err := LoadOrdersFile(fileName)
	assert.Nil(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, "Ann", orders[0].Name)
	assert.Equal(t, "555-1", orders[0].Phone)
	assert.Len(t, orders[0].Items, 1)
	assert.True(t, orders[0].Items[0].Price.Equal(decimal.RequireFromString("3.50")))
}

func TestLoadOrdersFileMissing(t *testing.T) {
	_, err := LoadOrdersFile(t.TempDir() + "/nope.json")
	assert.Error(t, err)
}
