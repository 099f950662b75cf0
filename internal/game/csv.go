package game

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/hyunseok-yang/kbo-boxscores/internal/normalize"
)

// Columns is the fixed dataset header. Checkpoint files and the durable
// dataset share this schema.
var Columns = []string{
	"date", "venue", "away_team", "home_team",
	"away_score", "home_score", "away_result", "home_result",
	"away_hit", "home_hit", "away_hr", "home_hr",
	"away_ab", "home_ab", "away_avg", "home_avg",
}

// ParseRow converts one CSV row into a Record. Scores that cannot be
// coerced to integers make the row malformed and return an error; the
// remaining numeric fields default to 0 on unresolved text.
func ParseRow(cols []string) (Record, error) {
	if len(cols) < len(Columns) {
		return Record{}, fmt.Errorf("row has %d columns, want %d", len(cols), len(Columns))
	}
	awayScore, err := strconv.Atoi(normalize.Space(cols[4]))
	if err != nil {
		return Record{}, fmt.Errorf("away_score %q: %w", cols[4], err)
	}
	homeScore, err := strconv.Atoi(normalize.Space(cols[5]))
	if err != nil {
		return Record{}, fmt.Errorf("home_score %q: %w", cols[5], err)
	}

	r := Record{
		Date:       normalize.Space(cols[0]),
		Venue:      normalize.Space(cols[1]),
		AwayTeam:   normalize.Team(cols[2]),
		HomeTeam:   normalize.Team(cols[3]),
		AwayScore:  awayScore,
		HomeScore:  homeScore,
		AwayResult: ParseResult(normalize.Space(cols[6])),
		HomeResult: ParseResult(normalize.Space(cols[7])),
		AwayHits:   normalize.Int(cols[8], 0),
		HomeHits:   normalize.Int(cols[9], 0),
		AwayHR:     normalize.Int(cols[10], 0),
		HomeHR:     normalize.Int(cols[11], 0),
		AwayAB:     normalize.Int(cols[12], 0),
		HomeAB:     normalize.Int(cols[13], 0),
	}
	r.RecomputeAverages()
	return r, nil
}

// row renders a Record as CSV columns in schema order.
func (r *Record) row() []string {
	return []string{
		r.Date, r.Venue, r.AwayTeam, r.HomeTeam,
		strconv.Itoa(r.AwayScore), strconv.Itoa(r.HomeScore),
		string(r.AwayResult), string(r.HomeResult),
		strconv.Itoa(r.AwayHits), strconv.Itoa(r.HomeHits),
		strconv.Itoa(r.AwayHR), strconv.Itoa(r.HomeHR),
		strconv.Itoa(r.AwayAB), strconv.Itoa(r.HomeAB),
		strconv.FormatFloat(r.AwayAvg, 'g', -1, 64),
		strconv.FormatFloat(r.HomeAvg, 'g', -1, 64),
	}
}

// WriteCSV writes the header and all records.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i := range records {
		if err := cw.Write(records[i].row()); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a dataset or checkpoint file. Rows that fail ParseRow are
// skipped and counted in dropped; a malformed row never aborts the read.
func ReadCSV(r io.Reader) (records []Record, dropped int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header := true
	for {
		cols, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, dropped, fmt.Errorf("reading csv: %w", err)
		}
		if header {
			header = false
			if len(cols) > 0 && cols[0] == Columns[0] {
				continue
			}
		}
		rec, err := ParseRow(cols)
		if err != nil {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	return records, dropped, nil
}
