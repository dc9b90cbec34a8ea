package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/helloworldpark/tickle-upper-limit/commons"
	"github.com/helloworldpark/tickle-upper-limit/structs"
)

// DefaultTags are the front matter tags of every note
var DefaultTags = []string{"주식", "상한가", "천만주"}

const headingLayout = "2006-01-02"

// Section is one "# [[day]] title" block of a note.
type Section struct {
	Title string
	Rows  []structs.StockPrice
}

// Document is a daily note.
type Document struct {
	Day      time.Time
	Tags     []string
	Sections []Section
}

// NewDocument returns an empty note of day with DefaultTags.
func NewDocument(day time.Time) *Document {
	return &Document{Day: day, Tags: DefaultTags}
}

// AddSection appends a section. Order of calls is the order in the note.
func (d *Document) AddSection(title string, rows []structs.StockPrice) {
	d.Sections = append(d.Sections, Section{Title: title, Rows: rows})
}

// Markdown renders the note.
func (d *Document) Markdown() string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("tags: [")
	b.WriteString(strings.Join(d.Tags, ", "))
	b.WriteString("]\n")
	b.WriteString("---\n")

	day := d.Day.In(commons.AsiaSeoul).Format(headingLayout)
	for _, section := range d.Sections {
		fmt.Fprintf(&b, "# [[%s]] %s\n", day, section.Title)
		for _, row := range section.Rows {
			b.WriteString(rowHeading(row))
		}
	}
	return b.String()
}

func rowHeading(row structs.StockPrice) string {
	return fmt.Sprintf("## [[%s]] (등락률 = %s, 거래량 = %s)\n\n",
		row.Name, commons.RoundRate(row.ChangeRate), commons.HumanFormat(float64(row.Volume)))
}
