package normalizer

import (
	"github.com/romana/rlog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"retail_orders/apperr"
	"retail_orders/custom/ingest"
	"retail_orders/custom/resolver"
	"retail_orders/model"
)

// Normalize turns one raw order record into an Order plus its aggregated
// OrderLines. Everything runs in a single transaction: the resolved
// customer/item rows, the order and all its lines become visible together
// or not at all.
//
// Duplicate item entries collapse into one line whose quantity is the
// occurrence count. When the same name appears at different prices, the
// first occurrence's price wins for both the catalog entry and the line's
// price-at-time; the total still sums every raw entry's own price.
func Normalize(db *gorm.DB, raw *ingest.RawOrder) (*model.Order, []model.OrderLine, error) {
	if len(raw.Items) == 0 {
		return nil, nil, apperr.ErrEmptyOrder
	}

	var order model.Order
	var lines []model.OrderLine
	err := db.Transaction(func(tx *gorm.DB) error {
		customerID, errTx := resolver.ResolveCustomer(tx, raw.Name, raw.Phone)
		if errTx != nil {
			return errTx
		}

		// Exact fixed-point sum over the ungrouped raw entries.
		total := decimal.Zero
		for i := range raw.Items {
			total = total.Add(raw.Items[i].Price)
		}

		order = model.Order{
			CustomerID:  customerID,
			OrderDate:   raw.Timestamp,
			TotalAmount: total,
			Notes:       raw.Notes,
		}
		if errTx = tx.Create(&order).Error; errTx != nil {
			return errTx
		}

		// Partition by item name, keeping first-occurrence order and price.
		names := make([]string, 0, len(raw.Items))
		quantities := make(map[string]int)
		firstPrice := make(map[string]decimal.Decimal)
		for _, entry := range raw.Items {
			if _, seen := quantities[entry.Name]; !seen {
				names = append(names, entry.Name)
				firstPrice[entry.Name] = entry.Price
			}
			quantities[entry.Name]++
		}

		lines = make([]model.OrderLine, 0, len(names))
		for _, name := range names {
			itemID, errItem := resolver.ResolveItem(tx, name, firstPrice[name])
			if errItem != nil {
				return errItem
			}
			line := model.OrderLine{
				OrderID:     order.ID,
				ItemID:      itemID,
				Quantity:    quantities[name],
				PriceAtTime: firstPrice[name],
			}
			if errItem = tx.Create(&line).Error; errItem != nil {
				return errItem
			}
			lines = append(lines, line)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &order, lines, nil
}

type RecordFailure struct {
	Index int
	Phone string
	Err   error
}

type BatchReport struct {
	Ingested int
	Failures []RecordFailure
}

// IngestBatch drains the queue, normalizing each record in its own unit of
// work. A failed record is reported and skipped; it never aborts the batch.
func IngestBatch(db *gorm.DB, queue *ingest.Queue) BatchReport {
	report := BatchReport{}
	for index := 0; ; index++ {
		raw, ok := queue.Dequeue()
		if !ok {
			return report
		}
		order, lines, err := Normalize(db, raw)
		if err != nil {
			rlog.Errorf("Skipping record %d (phone %s): %s", index, raw.Phone, err.Error())
			report.Failures = append(report.Failures, RecordFailure{Index: index, Phone: raw.Phone, Err: err})
			continue
		}
		rlog.Infof("Ingested order %d with %d lines, total %s", order.ID, len(lines), order.TotalAmount.StringFixed(2))
		report.Ingested++
	}
}
