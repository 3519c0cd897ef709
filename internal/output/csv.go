package output

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/kjstillabower/environment-data-generator/internal/models"
)

// ErrUnexpectedHeader is returned by ReadCSV when the header row does not match models.Columns.
var ErrUnexpectedHeader = errors.New("unexpected csv header")

// readTypes pins column types on read so labels like "123" stay strings.
var readTypes = map[string]series.Type{
	models.ColumnDate:           series.String,
	models.ColumnLocation:       series.String,
	models.ColumnPM25:           series.Int,
	models.ColumnPM10:           series.Int,
	models.ColumnNO2:            series.Int,
	models.ColumnO3:             series.Int,
	models.ColumnCompositeIndex: series.Int,
	models.ColumnTemperature:    series.Float,
	models.ColumnHumidity:       series.Int,
	models.ColumnRainfall:       series.Float,
	models.ColumnWindSpeed:      series.Float,
}

// Frame converts the dataset into a dataframe with one column per models.Columns entry.
// Decimal columns are held as one-decimal strings; gota formats floats with six decimals.
func Frame(ds models.Dataset) dataframe.DataFrame {
	n := len(ds)
	var (
		dates     = make([]string, n)
		locations = make([]string, n)
		pm25      = make([]int, n)
		pm10      = make([]int, n)
		no2       = make([]int, n)
		o3        = make([]int, n)
		composite = make([]int, n)
		temp      = make([]string, n)
		humidity  = make([]int, n)
		rainfall  = make([]string, n)
		wind      = make([]string, n)
	)
	for i, r := range ds {
		dates[i] = r.DateString()
		locations[i] = r.Location
		pm25[i] = r.PM25
		pm10[i] = r.PM10
		no2[i] = r.NO2
		o3[i] = r.O3
		composite[i] = r.CompositeIndex
		temp[i] = formatDecimal(r.Temperature)
		humidity[i] = r.Humidity
		rainfall[i] = formatDecimal(r.Rainfall)
		wind[i] = formatDecimal(r.WindSpeed)
	}
	return dataframe.New(
		series.New(dates, series.String, models.ColumnDate),
		series.New(locations, series.String, models.ColumnLocation),
		series.New(pm25, series.Int, models.ColumnPM25),
		series.New(pm10, series.Int, models.ColumnPM10),
		series.New(no2, series.Int, models.ColumnNO2),
		series.New(o3, series.Int, models.ColumnO3),
		series.New(composite, series.Int, models.ColumnCompositeIndex),
		series.New(temp, series.String, models.ColumnTemperature),
		series.New(humidity, series.Int, models.ColumnHumidity),
		series.New(rainfall, series.String, models.ColumnRainfall),
		series.New(wind, series.String, models.ColumnWindSpeed),
	)
}

// WriteCSV writes a header row followed by one row per record. An empty dataset writes only the header.
func WriteCSV(w io.Writer, ds models.Dataset) error {
	if err := Frame(ds).WriteCSV(w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteFile serializes ds to path, creating parent directories as needed and replacing any
// existing file. Returns the number of bytes written.
func WriteFile(path string, ds models.Dataset) (int64, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, ds); err != nil {
		return 0, err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return 0, fmt.Errorf("write output file: %w", err)
	}
	return int64(buf.Len()), nil
}

// ReadCSV parses a file produced by WriteCSV back into a Dataset.
func ReadCSV(r io.Reader) (models.Dataset, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 || !slices.Equal(records[0], models.Columns) {
		return nil, ErrUnexpectedHeader
	}
	if len(records) == 1 {
		return models.Dataset{}, nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.WithTypes(readTypes),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("load csv: %w", df.Err)
	}
	return fromFrame(df)
}

// ReadFile reads a Dataset from a CSV file at path.
func ReadFile(path string) (models.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open output file: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

func fromFrame(df dataframe.DataFrame) (models.Dataset, error) {
	ints := make(map[string][]int)
	for name, t := range readTypes {
		if t != series.Int {
			continue
		}
		vals, err := df.Col(name).Int()
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		ints[name] = vals
	}
	floats := make(map[string][]float64)
	for _, name := range []string{models.ColumnTemperature, models.ColumnRainfall, models.ColumnWindSpeed} {
		col := df.Col(name)
		if col.HasNaN() {
			return nil, fmt.Errorf("column %s: non-numeric value", name)
		}
		floats[name] = col.Float()
	}
	dates := df.Col(models.ColumnDate).Records()
	locations := df.Col(models.ColumnLocation).Records()

	ds := make(models.Dataset, df.Nrow())
	for i := range ds {
		d, err := time.Parse(models.DateLayout, dates[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: parse date: %w", i+1, err)
		}
		ds[i] = models.Record{
			Date:           d,
			Location:       locations[i],
			PM25:           ints[models.ColumnPM25][i],
			PM10:           ints[models.ColumnPM10][i],
			NO2:            ints[models.ColumnNO2][i],
			O3:             ints[models.ColumnO3][i],
			CompositeIndex: ints[models.ColumnCompositeIndex][i],
			Temperature:    floats[models.ColumnTemperature][i],
			Humidity:       ints[models.ColumnHumidity][i],
			Rainfall:       floats[models.ColumnRainfall][i],
			WindSpeed:      floats[models.ColumnWindSpeed][i],
		}
	}
	return ds, nil
}

func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
