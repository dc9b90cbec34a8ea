package report

import (
	"fmt"
	"sort"

	"github.com/helloworldpark/govaluate"
	"github.com/helloworldpark/tickle-upper-limit/commons"
	"github.com/helloworldpark/tickle-upper-limit/structs"
)

const (
	// DefaultUpperLimit selects stocks which hit the upper limit(±30%) of the day.
	DefaultUpperLimit = "change > 29"
	// DefaultHighVolume selects stocks traded more than ten million shares.
	DefaultHighVolume = "volume > 10000000"
)

var newError = commons.NewTaggedError("Report")
var newWrapError = commons.NewTaggedWrapper("Report")

// SortKey is the value a selection orders its rows by, descending.
type SortKey func(structs.StockPrice) float64

// ByChangeRate orders by 등락률
func ByChangeRate(p structs.StockPrice) float64 { return p.ChangeRate }

// ByVolume orders by 거래량
func ByVolume(p structs.StockPrice) float64 { return float64(p.Volume) }

// Namer resolves the display name of a row.
type Namer interface {
	Name(row structs.StockPrice) string
}

// Selection keeps the rows matching a predicate, ordered by a key.
type Selection struct {
	Name      string
	Title     string
	Predicate string
	expr      *govaluate.EvaluableExpression
	key       SortKey
}

// NewSelection compiles predicate. Variables usable in predicate are
// change, volume, close, open, high, low, value.
func NewSelection(name, title, predicate string, key SortKey) (*Selection, error) {
	expr, err := govaluate.NewEvaluableExpression(predicate)
	if err != nil {
		return nil, newWrapError(fmt.Sprintf("compiling %s predicate %q", name, predicate), err)
	}
	s := &Selection{
		Name:      name,
		Title:     title,
		Predicate: predicate,
		expr:      expr,
		key:       key,
	}
	// Unknown variables and non boolean predicates only show up on evaluation
	if _, err := s.Match(structs.StockPrice{}); err != nil {
		return nil, err
	}
	return s, nil
}

// UpperLimit is the 상한가 selection. Empty predicate means DefaultUpperLimit.
func UpperLimit(predicate string) (*Selection, error) {
	if predicate == "" {
		predicate = DefaultUpperLimit
	}
	return NewSelection("upper_limit", "상한가", predicate, ByChangeRate)
}

// HighVolume is the 천만주 selection. Empty predicate means DefaultHighVolume.
func HighVolume(predicate string) (*Selection, error) {
	if predicate == "" {
		predicate = DefaultHighVolume
	}
	return NewSelection("high_volume", "천만주", predicate, ByVolume)
}

func parameters(p structs.StockPrice) map[string]interface{} {
	return map[string]interface{}{
		"change": p.ChangeRate,
		"volume": float64(p.Volume),
		"close":  float64(p.Close),
		"open":   float64(p.Open),
		"high":   float64(p.High),
		"low":    float64(p.Low),
		"value":  float64(p.Value),
	}
}

// Match evaluates the predicate on a single row.
func (s *Selection) Match(p structs.StockPrice) (bool, error) {
	result, err := s.expr.Evaluate(parameters(p))
	if err != nil {
		return false, newWrapError(fmt.Sprintf("evaluating %s predicate %q", s.Name, s.Predicate), err)
	}
	matched, ok := result.(bool)
	if !ok {
		return false, newError(fmt.Sprintf("%s predicate %q is not a condition", s.Name, s.Predicate))
	}
	return matched, nil
}

// Apply keeps the matching rows of one market, names them with namer and
// sorts them descending. namer may be nil.
func (s *Selection) Apply(rows []structs.StockPrice, namer Namer) ([]structs.StockPrice, error) {
	var result []structs.StockPrice
	for _, row := range rows {
		ok, err := s.Match(row)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if namer != nil {
			row.Name = namer.Name(row)
		}
		result = append(result, row)
	}
	s.Sort(result)
	return result, nil
}

// Sort orders rows descending by the key. Ties keep their order.
func (s *Selection) Sort(rows []structs.StockPrice) {
	sort.SliceStable(rows, func(i, j int) bool {
		return s.key(rows[i]) > s.key(rows[j])
	})
}

// Merge concatenates the results of each market and sorts them across markets.
func (s *Selection) Merge(tables ...[]structs.StockPrice) []structs.StockPrice {
	var merged []structs.StockPrice
	for _, t := range tables {
		merged = append(merged, t...)
	}
	s.Sort(merged)
	return merged
}
