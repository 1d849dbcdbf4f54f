package main

import (
	"os"

	"github.com/romana/rlog"

	"retail_orders/custom/ingest"
	"retail_orders/custom/normalizer"
	"retail_orders/custom/util"
	"retail_orders/model"
)

// Bulk loader: migrates the schema and normalizes a JSON file of flat raw
// order records into the relational model. A malformed record is reported
// and skipped; the rest of the batch still commits.
func main() {
	serverConfig := util.ServerConfig{}
	if err := serverConfig.GetConf("./config/config.yaml"); err != nil {
		rlog.Critical("Failed to load config: " + err.Error())
		os.Exit(1)
	}
	ordersFile := serverConfig.Orders_file
	if ordersFile == "" {
		ordersFile = "example_orders.json"
	}

	db, err := util.OpenDatabase(&serverConfig.Database)
	if err != nil {
		rlog.Critical("Failed to connect database: " + err.Error())
		os.Exit(1)
	}
	if err = db.AutoMigrate(model.ALL_ORDER_TABLES...); err != nil {
		rlog.Critical("Failed to migrate database: " + err.Error())
		os.Exit(1)
	}

	rawOrders, err := ingest.LoadOrdersFile(ordersFile)
	if err != nil {
		rlog.Critical("Failed to load orders file: " + err.Error())
		os.Exit(1)
	}
	rlog.Infof("Loaded %d raw order records from %s", len(rawOrders), ordersFile)

	queue := ingest.NewQueue()
	go func() {
		for i := range rawOrders {
			queue.Enqueue(&rawOrders[i])
		}
		queue.CloseQueue()
	}()

	report := normalizer.IngestBatch(db, queue)
	rlog.Infof("Batch complete: %d ingested, %d failed", report.Ingested, len(report.Failures))
	for _, failure := range report.Failures {
		rlog.Errorf("Record %d (phone %s) failed: %s", failure.Index, failure.Phone, failure.Err.Error())
	}
	if len(report.Failures) > 0 {
		os.Exit(1)
	}
}
