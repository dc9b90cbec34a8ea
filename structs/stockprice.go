package structs

// StockPrice is a struct describing one trading day of a single stock
type StockPrice struct {
	StockID    string
	Name       string
	Market     Market
	Open       int64
	High       int64
	Low        int64
	Close      int64
	ChangeRate float64 // percent
	Volume     int64   // shares
	Value      int64   // KRW
}
