package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"retail_orders/custom/customer"
	"retail_orders/custom/item"
	"retail_orders/custom/order"
	"retail_orders/custom/util"
	"retail_orders/model"
)

func main() {
	serverConfig := util.ServerConfig{}
	if err := serverConfig.GetConf("./config/config.yaml"); err != nil {
		log.Fatal(err)
	}

	db, err := util.OpenDatabase(&serverConfig.Database)
	if err != nil {
		panic("failed to connect database: " + err.Error())
	}
	sqlDB, _ := db.DB()
	if sqlDB != nil {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	// Auto migrate table schemas
	err = db.AutoMigrate(model.ALL_ORDER_TABLES...)
	if err != nil {
		panic("failed to migrate database: " + err.Error())
	}

	// Initialize handler contexts
	customerCtx := customer.HandlerContext{}
	customerCtx.InitialHandlerContext(db)
	itemCtx := item.HandlerContext{}
	itemCtx.InitialHandlerContext(db)
	orderCtx := order.HandlerContext{}
	orderCtx.InitialHandlerContext(db)

	// Start REST APIs
	mux := http.NewServeMux()
	customerCtx.RegisterRoutes(mux)
	itemCtx.RegisterRoutes(mux)
	orderCtx.RegisterRoutes(mux)

	log.Fatal(http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", serverConfig.Server_port), mux))
}
