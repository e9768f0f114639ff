package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"housing-price-service/internal/core/domain"
)

// Source column names of the historical sales CSV. They are selected and
// renamed into the PropertyRecord field set; any extra columns are ignored.
const (
	srcRooms        = "Rooms"        // -> bedrooms
	srcBathroom     = "Bathroom"     // -> bathrooms
	srcLandsize     = "Landsize"     // -> lotSize
	srcBuildingArea = "BuildingArea" // -> squareFootage
	srcYearBuilt    = "YearBuilt"    // -> yearBuilt
	srcSuburb       = "Suburb"       // -> neighborhood
	srcCar          = "Car"          // -> garage
	srcType         = "Type"         // -> propertyType
	srcPrice        = "Price"        // target
)

// CSVReader loads historical sales from a CSV file with the Melbourne
// housing column layout. Any dataset carrying the nine named columns works.
type CSVReader struct{}

// NewCSVReader creates the adapter.
func NewCSVReader() *CSVReader {
	return &CSVReader{}
}

// Load reads the file at path into sales records. Empty or unparseable
// numeric cells become NaN so downstream imputation can fill them; rows
// without a sale price are skipped because they cannot contribute to the
// fit.
func (c *CSVReader) Load(ctx context.Context, path string) ([]domain.SalesRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open training data: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []domain.SalesRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row: %w", err)
		}

		price := parseNumeric(rec[cols[srcPrice]])
		if math.IsNaN(price) {
			continue
		}

		records = append(records, domain.SalesRecord{
			PropertyRecord: domain.PropertyRecord{
				Bedrooms:      parseNumeric(rec[cols[srcRooms]]),
				Bathrooms:     parseNumeric(rec[cols[srcBathroom]]),
				LotSize:       parseNumeric(rec[cols[srcLandsize]]),
				SquareFootage: parseNumeric(rec[cols[srcBuildingArea]]),
				YearBuilt:     parseNumeric(rec[cols[srcYearBuilt]]),
				Neighborhood:  rec[cols[srcSuburb]],
				Garage:        parseNumeric(rec[cols[srcCar]]),
				PropertyType:  rec[cols[srcType]],
			},
			Price: price,
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("training data %s holds no usable rows", path)
	}
	return records, nil
}

// columnIndex maps the required source columns to their positions.
func columnIndex(header []string) (map[string]int, error) {
	required := []string{
		srcRooms, srcBathroom, srcLandsize, srcBuildingArea,
		srcYearBuilt, srcSuburb, srcCar, srcType, srcPrice,
	}
	positions := make(map[string]int, len(required))
	for i, name := range header {
		positions[name] = i
	}
	cols := make(map[string]int, len(required))
	for _, name := range required {
		pos, ok := positions[name]
		if !ok {
			return nil, fmt.Errorf("training data is missing required column %q", name)
		}
		cols[name] = pos
	}
	return cols, nil
}

// parseNumeric returns NaN for empty or malformed cells.
func parseNumeric(s string) float64 {
	if s == "" || s == "NA" || s == "NaN" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
