package watcher

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/anaskhan96/soup"
	"github.com/helloworldpark/tickle-upper-limit/commons"
	"github.com/helloworldpark/tickle-upper-limit/logger"
	"github.com/helloworldpark/tickle-upper-limit/structs"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// DefaultKINDURL is the corp list download of kind.krx.co.kr
const DefaultKINDURL = "http://kind.krx.co.kr/corpgeneral/corpList.do"

var newSymbolError = commons.NewTaggedWrapper("Watcher")

// StockItemChecker downloads the listed stocks of a market from KIND.
type StockItemChecker struct {
	baseURL string
	client  *http.Client
}

// NewStockItemChecker returns a checker against baseURL; empty baseURL means DefaultKINDURL.
func NewStockItemChecker(baseURL string, timeout time.Duration) *StockItemChecker {
	if baseURL == "" {
		baseURL = DefaultKINDURL
	}
	return &StockItemChecker{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// https://minjejeon.github.io/learningstock/2017/09/07/download-krx-ticker-symbols-at-once.html
// DownloadStocks returns the listed stocks of the market.
func (checker *StockItemChecker) DownloadStocks(market structs.Market) ([]structs.Stock, error) {
	u := checker.baseURL + "?method=download&searchType=13&marketType=" + market.KINDType()

	resp, err := checker.client.Get(u)
	if err != nil {
		return nil, newSymbolError(fmt.Sprintf("downloading %s symbols", market), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, newSymbolError(fmt.Sprintf("downloading %s symbols: status %d", market, resp.StatusCode), nil)
	}

	// KIND serves EUC-KR
	raw, err := ioutil.ReadAll(transform.NewReader(resp.Body, korean.EUCKR.NewDecoder()))
	if err != nil {
		return nil, newSymbolError(fmt.Sprintf("reading %s symbols", market), err)
	}
	return parseStockSymbols(string(raw), market)
}

func parseStockSymbols(page string, market structs.Market) ([]structs.Stock, error) {
	symbolHTML := soup.HTMLParse(page)
	if symbolHTML.Error != nil {
		return nil, newSymbolError("parsing symbol page", symbolHTML.Error)
	}

	table := symbolHTML.Find("table")
	if table.Error != nil {
		return nil, newSymbolError("symbol table", table.Error)
	}

	trs := table.FindAll("tr")
	if len(trs) == 0 {
		return nil, nil
	}

	// 회사명, 종목코드 columns moved around over the years
	nameCol, idCol := 0, 1
	for i, th := range trs[0].FindAll("th") {
		switch strings.TrimSpace(th.Text()) {
		case "회사명":
			nameCol = i
		case "종목코드":
			idCol = i
		}
	}

	result := make([]structs.Stock, 0, len(trs)-1)
	for _, v := range trs[1:] {
		tds := v.FindAll("td")
		if len(tds) <= nameCol || len(tds) <= idCol {
			continue
		}
		name := strings.TrimSpace(tds[nameCol].Text())
		id := strings.TrimSpace(tds[idCol].Text())
		if name == "" || id == "" {
			continue
		}
		result = append(result, structs.Stock{StockID: id, Name: name, MarketType: market})
	}
	return result, nil
}

// StockLister is anything which can list the stocks of a market.
type StockLister interface {
	DownloadStocks(market structs.Market) ([]structs.Stock, error)
}

// NameBook resolves display names of tickers for a single run.
// Each market listing is downloaded at most once and each ticker is resolved once.
// Create a new NameBook for every run.
type NameBook struct {
	lister   StockLister
	listings map[structs.Market]map[string]string
	names    map[string]string
}

// NewNameBook returns an empty NameBook backed by lister. lister may be nil,
// then the KRX abbreviation of the row is used.
func NewNameBook(lister StockLister) *NameBook {
	return &NameBook{
		lister:   lister,
		listings: make(map[structs.Market]map[string]string),
		names:    make(map[string]string),
	}
}

// Name returns the display name of the stock of the row.
func (b *NameBook) Name(row structs.StockPrice) string {
	if name, ok := b.names[row.StockID]; ok {
		return name
	}
	name, ok := b.listing(row.Market)[row.StockID]
	if !ok || name == "" {
		name = row.Name
	}
	if name == "" {
		name = row.StockID
	}
	b.names[row.StockID] = name
	return name
}

func (b *NameBook) listing(market structs.Market) map[string]string {
	if listing, ok := b.listings[market]; ok {
		return listing
	}
	listing := make(map[string]string)
	b.listings[market] = listing
	if b.lister == nil {
		return listing
	}

	stocks, err := b.lister.DownloadStocks(market)
	if err != nil {
		logger.Warn("[Watcher] Falling back to KRX names of %s: %s", market, err.Error())
		return listing
	}
	for _, s := range stocks {
		listing[s.StockID] = s.Name
	}
	logger.Info("[Watcher] Loaded %d %s names", len(listing), market)
	return listing
}
