package models

import "time"

// DateLayout is the calendar date format used in output files.
const DateLayout = "2006-01-02"

// Column names in output order.
const (
	ColumnDate           = "date"
	ColumnLocation       = "location"
	ColumnPM25           = "pm2_5"
	ColumnPM10           = "pm10"
	ColumnNO2            = "no2"
	ColumnO3             = "o3"
	ColumnCompositeIndex = "composite_index"
	ColumnTemperature    = "temperature"
	ColumnHumidity       = "humidity"
	ColumnRainfall       = "rainfall"
	ColumnWindSpeed      = "wind_speed"
)

// Columns is the header row of a serialized Dataset.
var Columns = []string{
	ColumnDate,
	ColumnLocation,
	ColumnPM25,
	ColumnPM10,
	ColumnNO2,
	ColumnO3,
	ColumnCompositeIndex,
	ColumnTemperature,
	ColumnHumidity,
	ColumnRainfall,
	ColumnWindSpeed,
}

// Record is one location on one date. Date is midnight UTC of the calendar date.
type Record struct {
	Date           time.Time `json:"date"`
	Location       string    `json:"location"`
	PM25           int       `json:"pm2_5"`
	PM10           int       `json:"pm10"`
	NO2            int       `json:"no2"`
	O3             int       `json:"o3"`
	CompositeIndex int       `json:"composite_index"`
	Temperature    float64   `json:"temperature"` // °C, one decimal
	Humidity       int       `json:"humidity"`    // %
	Rainfall       float64   `json:"rainfall"`    // mm, one decimal
	WindSpeed      float64   `json:"wind_speed"`  // m/s, one decimal
}

// DateString returns the record date formatted with DateLayout.
func (r Record) DateString() string {
	return r.Date.Format(DateLayout)
}

// ExpectedCompositeIndex recomputes the composite index from the pollutant fields:
// max(pm2_5, pm10/2, no2, o3) with integer division. It is a simplified mock, not a real AQI.
func (r Record) ExpectedCompositeIndex() int {
	return CompositeIndex(r.PM25, r.PM10, r.NO2, r.O3)
}

// CompositeIndex returns max(pm25, pm10/2, no2, o3).
func CompositeIndex(pm25, pm10, no2, o3 int) int {
	return max(pm25, pm10/2, no2, o3)
}

// Dataset is the ordered output of one generation run.
type Dataset []Record

// Locations returns the distinct locations in first-seen order.
func (d Dataset) Locations() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range d {
		if _, ok := seen[r.Location]; ok {
			continue
		}
		seen[r.Location] = struct{}{}
		out = append(out, r.Location)
	}
	return out
}
