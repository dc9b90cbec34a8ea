package watcher

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/helloworldpark/tickle-upper-limit/commons"
	"github.com/helloworldpark/tickle-upper-limit/structs"
)

const krxFixture = `{"OutBlock_1":[
{"ISU_SRT_CD":"005930","ISU_ABBRV":"삼성전자","TDD_CLSPRC":"71,000","FLUC_RT":"-0.70","TDD_OPNPRC":"71,500","TDD_HGPRC":"72,000","TDD_LWPRC":"70,800","ACC_TRDVOL":"12,345,678","ACC_TRDVAL":"876,543,210,000"},
{"ISU_SRT_CD":"123456","ISU_ABBRV":"상한가전자","TDD_CLSPRC":"1,300","FLUC_RT":"29.87","TDD_OPNPRC":"1,001","TDD_HGPRC":"1,300","TDD_LWPRC":"1,000","ACC_TRDVOL":"9,999,999","ACC_TRDVAL":"-"}
],"CURRENT_DATETIME":"2024.03.05 PM 06:00:00"}`

func TestMarketOHLCV(t *testing.T) {
	var gotForm map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm: %v", err)
		}
		gotForm = map[string]string{
			"bld":   r.PostForm.Get("bld"),
			"mktId": r.PostForm.Get("mktId"),
			"trdDd": r.PostForm.Get("trdDd"),
		}
		if r.Header.Get("Referer") == "" {
			t.Error("KRX rejects requests without Referer")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(krxFixture))
	}))
	defer server.Close()

	client := NewKRXClient(server.URL, time.Second)
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, commons.AsiaSeoul)
	rows, err := client.MarketOHLCV(structs.KOSDAQ, day)
	if err != nil {
		t.Fatalf("MarketOHLCV returned error: %v", err)
	}

	if gotForm["bld"] != krxAllTickerBld || gotForm["mktId"] != "KSQ" || gotForm["trdDd"] != "20240305" {
		t.Errorf("unexpected form: %v", gotForm)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	samsung := rows[0]
	want := structs.StockPrice{
		StockID: "005930", Name: "삼성전자", Market: structs.KOSDAQ,
		Open: 71500, High: 72000, Low: 70800, Close: 71000,
		ChangeRate: -0.70, Volume: 12345678, Value: 876543210000,
	}
	if samsung != want {
		t.Errorf("unexpected row:\n got %+v\nwant %+v", samsung, want)
	}
	if rows[1].Value != 0 || rows[1].ChangeRate != 29.87 {
		t.Errorf("unexpected row: %+v", rows[1])
	}
}

func TestMarketOHLCVErrors(t *testing.T) {
	status := http.StatusOK
	body := "not json"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	defer server.Close()

	client := NewKRXClient(server.URL, time.Second)
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, commons.AsiaSeoul)

	if _, err := client.MarketOHLCV(structs.KOSPI, day); err == nil {
		t.Error("malformed body should fail")
	}

	status = http.StatusForbidden
	body = "{}"
	if _, err := client.MarketOHLCV(structs.KOSPI, day); err == nil {
		t.Error("non 2xx status should fail")
	}

	status = http.StatusOK
	body = `{"OutBlock_1":[{"ISU_SRT_CD":"000001","TDD_CLSPRC":"abc"}]}`
	if _, err := client.MarketOHLCV(structs.KOSPI, day); err == nil {
		t.Error("garbage numbers should fail")
	}

	if _, err := client.MarketOHLCV(structs.Market("KONEX"), day); err == nil {
		t.Error("unknown market should fail")
	}
}
