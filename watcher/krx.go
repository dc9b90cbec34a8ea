package watcher

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/helloworldpark/tickle-upper-limit/commons"
	"github.com/helloworldpark/tickle-upper-limit/logger"
	"github.com/helloworldpark/tickle-upper-limit/structs"
)

const (
	// DefaultKRXURL is the JSON endpoint of data.krx.co.kr
	DefaultKRXURL = "http://data.krx.co.kr/comm/bldAttendant/getJsonData.cmd"

	krxReferer   = "http://data.krx.co.kr/contents/MDC/MDI/mdiLoader/index.cmd?menuId=MDC0201"
	krxUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	// 전종목 시세
	krxAllTickerBld = "dbms/MDC/STAT/standard/MDCSTAT01501"
)

var newKRXError = commons.NewTaggedWrapper("Watcher")

// KRXClient downloads the daily price table of a whole market from KRX.
type KRXClient struct {
	baseURL string
	client  *http.Client
}

// NewKRXClient returns a client against baseURL; empty baseURL means DefaultKRXURL.
func NewKRXClient(baseURL string, timeout time.Duration) *KRXClient {
	if baseURL == "" {
		baseURL = DefaultKRXURL
	}
	return &KRXClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type krxPriceRow struct {
	StockID    string `json:"ISU_SRT_CD"`
	Name       string `json:"ISU_ABBRV"`
	Close      string `json:"TDD_CLSPRC"`
	ChangeRate string `json:"FLUC_RT"`
	Open       string `json:"TDD_OPNPRC"`
	High       string `json:"TDD_HGPRC"`
	Low        string `json:"TDD_LWPRC"`
	Volume     string `json:"ACC_TRDVOL"`
	Value      string `json:"ACC_TRDVAL"`
}

type krxPriceTable struct {
	Rows []krxPriceRow `json:"OutBlock_1"`
}

// MarketOHLCV returns the OHLCV of every ticker of market on day.
// Errors are returned as they are, there is no retry.
func (k *KRXClient) MarketOHLCV(market structs.Market, day time.Time) ([]structs.StockPrice, error) {
	mktID := market.KRXID()
	if mktID == "" {
		return nil, newKRXError(fmt.Sprintf("unsupported market %q", market), nil)
	}
	date := day.In(commons.AsiaSeoul).Format(QueryLayout)

	formData := url.Values{
		"bld":         {krxAllTickerBld},
		"mktId":       {mktID},
		"trdDd":       {date},
		"share":       {"1"},
		"money":       {"1"},
		"csvxls_isNo": {"false"},
	}
	req, err := http.NewRequest(http.MethodPost, k.baseURL, strings.NewReader(formData.Encode()))
	if err != nil {
		return nil, newKRXError("building KRX request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("User-Agent", krxUserAgent)
	req.Header.Set("Referer", krxReferer)

	resp, err := k.client.Do(req)
	if err != nil {
		return nil, newKRXError(fmt.Sprintf("requesting %s prices of %s", market, date), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, newKRXError(fmt.Sprintf("requesting %s prices of %s: status %d", market, date, resp.StatusCode), nil)
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, newKRXError(fmt.Sprintf("reading %s prices of %s", market, date), err)
	}

	var table krxPriceTable
	if err := json.Unmarshal(body, &table); err != nil {
		return nil, newKRXError(fmt.Sprintf("decoding %s prices of %s", market, date), err)
	}

	result := make([]structs.StockPrice, 0, len(table.Rows))
	for _, row := range table.Rows {
		price, err := row.toStockPrice(market)
		if err != nil {
			return nil, newKRXError(fmt.Sprintf("parsing %s row %s", market, row.StockID), err)
		}
		result = append(result, price)
	}
	logger.Info("[Watcher] Downloaded %d %s prices of %s", len(result), market, date)
	return result, nil
}

func (row krxPriceRow) toStockPrice(market structs.Market) (structs.StockPrice, error) {
	price := structs.StockPrice{
		StockID: strings.TrimSpace(row.StockID),
		Name:    strings.TrimSpace(row.Name),
		Market:  market,
	}
	ints := []struct {
		raw string
		dst *int64
	}{
		{row.Open, &price.Open},
		{row.High, &price.High},
		{row.Low, &price.Low},
		{row.Close, &price.Close},
		{row.Volume, &price.Volume},
		{row.Value, &price.Value},
	}
	for _, v := range ints {
		n, err := commons.GetInt(v.raw)
		if err != nil {
			return price, err
		}
		*v.dst = n
	}
	rate, err := commons.GetDouble(row.ChangeRate)
	if err != nil {
		return price, err
	}
	price.ChangeRate = rate
	return price, nil
}
