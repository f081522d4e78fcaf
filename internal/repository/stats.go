package repository

import "github.com/shopspring/decimal"

// SalesStats is the read model produced by the sales aggregation pipeline.
type SalesStats struct {
	TotalOrders       int64
	TotalSales        decimal.Decimal
	AverageOrderValue decimal.Decimal
	DeliveredOrders   int64
	ProcessingOrders  int64
	CancelledOrders   int64
}

// DailySales is one day's worth of non-cancelled order volume.
type DailySales struct {
	Date   string
	Orders int64
	Sales  decimal.Decimal
}
