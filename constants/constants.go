package constants

// Ingest queue capacity
const INGEST_QUEUE_SIZE = 10000

// Error responses
const CUSTOMER_NOT_FOUND = "customer not found"
const ITEM_NOT_FOUND = "item not found"
const ORDER_NOT_FOUND = "order not found"
const CUSTOMER_NAME_REQUIRED = "customer name is required"
const CUSTOMER_PHONE_REQUIRED = "customer phone is required"
const ITEM_NAME_REQUIRED = "item name is required"
const ITEM_PRICE_INVALID = "item price must be non-negative with at most 2 decimal places"
const CUSTOMER_REFERENCED = "customer is referenced by existing orders"
const ITEM_REFERENCED = "item is referenced by existing order lines"
