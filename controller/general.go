package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/helloworldpark/tickle-upper-limit/commons"
	"github.com/helloworldpark/tickle-upper-limit/config"
	"github.com/helloworldpark/tickle-upper-limit/logger"
	"github.com/helloworldpark/tickle-upper-limit/metrics"
	"github.com/helloworldpark/tickle-upper-limit/push"
	"github.com/helloworldpark/tickle-upper-limit/report"
	"github.com/helloworldpark/tickle-upper-limit/storage"
	"github.com/helloworldpark/tickle-upper-limit/structs"
	"github.com/helloworldpark/tickle-upper-limit/watcher"
)

var newError = commons.NewTaggedWrapper("Controller")

// Reasons a run did not write a note
const (
	SkippedHoliday = "holiday"
	SkippedExists  = "exists"
)

// PriceSource gives the daily table of a market.
type PriceSource interface {
	MarketOHLCV(market structs.Market, day time.Time) ([]structs.StockPrice, error)
}

// NoteStore keeps one note per day.
type NoteStore interface {
	Exists(day time.Time) (bool, error)
	Write(day time.Time, contents string) (string, error)
}

// Mirror gets a copy of every written note.
type Mirror interface {
	Write(ctx context.Context, fileName string, contents []byte) (string, error)
}

// Notifier is told about every written note.
type Notifier interface {
	SendMessage(msg string) error
}

// Dependencies are everything General needs. Names, Mirror and Notifier may be nil.
type Dependencies struct {
	Prices       PriceSource
	Names        watcher.StockLister
	Writer       NoteStore
	Mirror       Mirror
	Notifier     Notifier
	DateChecker  *watcher.DateChecker
	Selections   []*report.Selection
	CutoffHour   int
	SkipHolidays bool
}

// General runs the note pipeline:
// 1. 기준일을 정한다
// 2. 이미 노트가 있거나 휴장일이면 아무것도 하지 않는다
// 3. 코스피, 코스닥 시세를 받아 상한가, 천만주를 고른다
// 4. 노트를 한 번만 쓴다
type General struct {
	Dependencies
	closers []func() error
}

// Result describes what a run did.
type Result struct {
	Date     string `json:"date"`
	Path     string `json:"path,omitempty"`
	Written  bool   `json:"written"`
	Skipped  string `json:"skipped,omitempty"`
	Mirrored string `json:"mirrored,omitempty"`
}

// New returns a General over deps.
func New(deps Dependencies) *General {
	return &General{Dependencies: deps}
}

// NewGeneral wires General from the configuration.
func NewGeneral(cfg *config.Config) (*General, error) {
	upperLimit, err := report.UpperLimit(cfg.Selection.UpperLimit)
	if err != nil {
		return nil, err
	}
	highVolume, err := report.HighVolume(cfg.Selection.HighVolume)
	if err != nil {
		return nil, err
	}
	dateChecker, err := watcher.NewDateChecker(cfg.Holidays)
	if err != nil {
		return nil, err
	}

	g := New(Dependencies{
		Prices:       watcher.NewKRXClient(cfg.KRX.BaseURL, cfg.KRXTimeout()),
		Writer:       storage.NewNoteWriter(cfg.OutputDir),
		DateChecker:  dateChecker,
		Selections:   []*report.Selection{upperLimit, highVolume},
		CutoffHour:   cfg.CutoffHour,
		SkipHolidays: cfg.SkipHolidays,
	})
	if !cfg.KIND.Disabled {
		g.Names = watcher.NewStockItemChecker(cfg.KIND.BaseURL, cfg.KINDTimeout())
	}
	if cfg.GCS.Bucket != "" {
		bucket, err := storage.NewBucket(context.Background(), cfg.GCS.Bucket, cfg.GCS.Prefix, cfg.GCS.CredentialsFile)
		if err != nil {
			return nil, err
		}
		g.Mirror = bucket
		g.closers = append(g.closers, bucket.Close)
	}
	if cfg.Telegram.Token != "" {
		g.Notifier = push.NewTelegram(cfg.Telegram.BaseURL, cfg.Telegram.Token, cfg.Telegram.ChatID)
	}
	return g, nil
}

// Close releases the clients General opened.
func (g *General) Close() {
	for _, c := range g.closers {
		if err := c(); err != nil {
			logger.Warn("[Controller] Error while closing: %s", err.Error())
		}
	}
	g.closers = nil
}

// TradingDay is the day a run at now reports.
func (g *General) TradingDay(now time.Time) time.Time {
	return watcher.TradingDay(now, g.CutoffHour)
}

// Run writes the note of the trading day of now, unless it exists already.
func (g *General) Run(now time.Time) (Result, error) {
	day := g.TradingDay(now)
	result := Result{Date: day.Format(watcher.NoteLayout)}

	if g.SkipHolidays && g.DateChecker != nil && g.DateChecker.IsHoliday(day) {
		logger.Info("[Controller] %s is a holiday, nothing to do", result.Date)
		result.Skipped = SkippedHoliday
		metrics.RunsTotal.WithLabelValues(SkippedHoliday).Inc()
		return result, nil
	}

	exists, err := g.Writer.Exists(day)
	if err != nil {
		metrics.RunsTotal.WithLabelValues("failed").Inc()
		return result, err
	}
	if exists {
		logger.Info("[Controller] Note of %s exists, nothing to do", result.Date)
		result.Skipped = SkippedExists
		metrics.RunsTotal.WithLabelValues(SkippedExists).Inc()
		return result, nil
	}

	doc, err := g.Compose(day)
	if err != nil {
		metrics.RunsTotal.WithLabelValues("failed").Inc()
		return result, err
	}
	contents := doc.Markdown()

	path, err := g.Writer.Write(day, contents)
	result.Path = path
	if errors.Is(err, storage.ErrNoteExists) {
		// Another run won the race
		logger.Warn("[Controller] Note of %s appeared while composing, keeping it", result.Date)
		result.Skipped = SkippedExists
		metrics.RunsTotal.WithLabelValues(SkippedExists).Inc()
		return result, nil
	}
	if err != nil {
		metrics.RunsTotal.WithLabelValues("failed").Inc()
		return result, err
	}
	result.Written = true
	metrics.RunsTotal.WithLabelValues("written").Inc()

	if g.Mirror != nil {
		object, err := g.Mirror.Write(context.Background(), storage.FileName(day), []byte(contents))
		if err != nil {
			logger.Error("[Controller] Mirroring note of %s failed: %s", result.Date, err.Error())
		} else {
			result.Mirrored = object
		}
	}
	if g.Notifier != nil {
		if err := g.Notifier.SendMessage(summary(result.Date, doc)); err != nil {
			logger.Error("[Controller] Notifying note of %s failed: %s", result.Date, err.Error())
		}
	}
	return result, nil
}

// summary is e.g. "[2024-03-05] 상한가 2, 천만주 3"
func summary(date string, doc *report.Document) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(date)
	b.WriteString("]")
	for i, section := range doc.Sections {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, " %s %d", section.Title, len(section.Rows))
	}
	return b.String()
}

// Compose fetches both markets of day and builds the note.
// Each market is fetched once and shared by every selection.
func (g *General) Compose(day time.Time) (*report.Document, error) {
	tables := make(map[structs.Market][]structs.StockPrice, len(structs.Markets))
	for _, market := range structs.Markets {
		rows, err := g.Prices.MarketOHLCV(market, day)
		if err != nil {
			return nil, newError(fmt.Sprintf("fetching %s", market), err)
		}
		tables[market] = rows
	}

	// Names are resolved once per ticker within this run only
	names := watcher.NewNameBook(g.Names)
	doc := report.NewDocument(day)
	for _, sel := range g.Selections {
		perMarket := make([][]structs.StockPrice, 0, len(structs.Markets))
		for _, market := range structs.Markets {
			kept, err := sel.Apply(tables[market], names)
			if err != nil {
				return nil, err
			}
			metrics.RowsSelected.WithLabelValues(sel.Name, string(market)).Add(float64(len(kept)))
			perMarket = append(perMarket, kept)
		}
		merged := sel.Merge(perMarket...)
		logger.Info("[Controller] %s %s: %d stocks", day.Format(watcher.NoteLayout), sel.Title, len(merged))
		doc.AddSection(sel.Title, merged)
	}
	return doc, nil
}

// Preview renders the note of day without writing it.
func (g *General) Preview(day time.Time) (string, error) {
	doc, err := g.Compose(day)
	if err != nil {
		return "", err
	}
	return doc.Markdown(), nil
}

// HolidayDescription lists the known holidays.
func (g *General) HolidayDescription(now time.Time) string {
	if g.DateChecker == nil {
		return "[Holiday]\n    Weekends only\n"
	}
	return g.DateChecker.Description(now)
}
