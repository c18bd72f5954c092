package trade

const (
	DefaultOverdueDays = 10

	// BagWeight is the kilograms per bag printed on delivery documents.
	BagWeight = 50

	DefaultHSN = "11022000"

	// LowStockKg is the quantity below which a product is flagged low.
	LowStockKg = 500
)

const (
	StockIn  = "In Stock"
	StockLow = "Low Stock"
	StockOut = "Out of Stock"
)
