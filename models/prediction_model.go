package models

import "time"

// PredictionRequest is the body of POST /api/v1/predictions.
type PredictionRequest struct {
	Period     int     `json:"period"`
	ProductIDs []int64 `json:"productIds"`
	Advanced   bool    `json:"advanced"`
}

// PredictionMetadata describes one prediction run.
type PredictionMetadata struct {
	RunID        string `json:"runId"`
	Period       int    `json:"period"`
	ProductCount int    `json:"productCount"`
	AdvancedMode bool   `json:"advancedMode"`
}

// ProductAnalytics is the lifetime sales summary of one product.
type ProductAnalytics struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	TotalOrders   int64   `json:"total_orders"`
	TotalQuantity int64   `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// StoreAnalytics summarises all orders in the store.
type StoreAnalytics struct {
	TotalOrders    int64   `json:"total_orders"`
	TotalProducts  int64   `json:"total_products"`
	TotalCustomers int64   `json:"total_customers"`
	TotalRevenue   float64 `json:"total_revenue"`
	AvgOrderValue  float64 `json:"avg_order_value"`
}

// TableStatus reports whether a table exists and how many rows it holds.
type TableStatus struct {
	Exists bool  `json:"exists"`
	Count  int64 `json:"count"`
}

// DatabaseStatus is the response of GET /api/v1/ecommerce/status.
type DatabaseStatus struct {
	DatabaseExists bool                   `json:"database_exists"`
	Tables         map[string]TableStatus `json:"tables"`
	TotalRecords   int64                  `json:"total_records"`
}

// SeedSummary reports what a demo-data seed inserted.
type SeedSummary struct {
	Customers  int `json:"customers"`
	Products   int `json:"products"`
	Orders     int `json:"orders"`
	OrderItems int `json:"order_items"`
}

// DailyTotal is the store-wide sales of one day.
type DailyTotal struct {
	Date            time.Time `json:"date"`
	TotalSales      float64   `json:"total_sales"`
	Orders          int64     `json:"orders"`
	UniqueCustomers int64     `json:"unique_customers"`
}
