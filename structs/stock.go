package structs

import "fmt"

// Market is an enum type representing the type of the stock market
type Market string

const (
	// KOSPI market
	KOSPI Market = "KOSPI"
	// KOSDAQ market
	KOSDAQ Market = "KOSDAQ"
)

// Markets lists every market the note covers, in rendering order.
var Markets = []Market{KOSPI, KOSDAQ}

// KRXID is the market id used by the KRX data service.
func (m Market) KRXID() string {
	switch m {
	case KOSPI:
		return "STK"
	case KOSDAQ:
		return "KSQ"
	}
	return ""
}

// KINDType is the market type used by the KIND corp list download.
func (m Market) KINDType() string {
	switch m {
	case KOSPI:
		return "stockMkt"
	case KOSDAQ:
		return "kosdaqMkt"
	}
	return ""
}

// ParseMarket accepts "kospi", "KOSPI", "kosdaq", "KOSDAQ".
func ParseMarket(s string) (Market, error) {
	switch Market(s) {
	case KOSPI, "kospi":
		return KOSPI, nil
	case KOSDAQ, "kosdaq":
		return KOSDAQ, nil
	}
	return "", fmt.Errorf("unknown market %q", s)
}

// Stock is a struct describing each stock item
type Stock struct {
	Name       string
	StockID    string
	MarketType Market
}
