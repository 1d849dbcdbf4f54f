package ingest

import (
	"encoding/json"
	"os"

	"github.com/shopspring/decimal"
)

// RawOrder is one record of the bulk ingestion input: one entry per physical
// line purchased, so the same item name may repeat within Items.
type RawOrder struct {
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Timestamp int64     `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
	Items     []RawItem `json:"items"`
}

type RawItem struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// LoadOrdersFile parses a JSON array of raw order records.
func LoadOrdersFile(fileName string) ([]RawOrder, error) {
	buf, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	orders := make([]RawOrder, 0)
	if err := json.Unmarshal(buf, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
