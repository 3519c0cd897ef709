package generator

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/kjstillabower/environment-data-generator/internal/models"
	"github.com/kjstillabower/environment-data-generator/internal/validation"
)

// ErrNilSource is returned when Generate is called without a random source.
var ErrNilSource = errors.New("random source is required")

// Sampling bounds. Integer ranges are inclusive.
const (
	PM25Min, PM25Max             = 15, 99
	PM10OffsetMin, PM10OffsetMax = 10, 49
	NO2Min, NO2Max               = 10, 59
	O3Min, O3Max                 = 10, 79
	HumidityMin, HumidityMax     = 55, 89

	TemperatureMin, TemperatureMax = 26.0, 35.0
	RainfallMin, RainfallMax       = 0.0, 30.0
	WindSpeedMin, WindSpeedMax     = 0.5, 5.0
)

// Generate produces one record per (location, date) pair: locations in input order, and for
// each location the dayCount dates from DateRange(today, dayCount) in chronological order.
// Draws from rng happen strictly in that iteration order, so a seeded source and a fixed
// today give identical datasets.
func Generate(locations []string, dayCount int, today time.Time, rng Source) (models.Dataset, error) {
	if len(locations) == 0 {
		return nil, fmt.Errorf("generate: %w", validation.ErrNoLocations)
	}
	if err := validation.ValidateDayCount(dayCount); err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	if rng == nil {
		return nil, fmt.Errorf("generate: %w", ErrNilSource)
	}

	dates := DateRange(today, dayCount)
	ds := make(models.Dataset, 0, len(locations)*len(dates))
	for _, loc := range locations {
		for _, d := range dates {
			ds = append(ds, sampleRecord(rng, loc, d))
		}
	}
	return ds, nil
}

// DateRange returns days consecutive calendar dates starting at today minus days, so the
// last date is the day before today. Only the calendar date of today (in its own location)
// is used; results are midnight UTC. Returns nil for days <= 0.
func DateRange(today time.Time, days int) []time.Time {
	if days <= 0 {
		return nil
	}
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -days)
	dates := make([]time.Time, days)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

// sampleRecord draws the fields in a fixed order; do not reorder.
func sampleRecord(rng Source, location string, date time.Time) models.Record {
	pm25 := intInRange(rng, PM25Min, PM25Max)
	pm10 := pm25 + intInRange(rng, PM10OffsetMin, PM10OffsetMax)
	no2 := intInRange(rng, NO2Min, NO2Max)
	o3 := intInRange(rng, O3Min, O3Max)

	return models.Record{
		Date:           date,
		Location:       location,
		PM25:           pm25,
		PM10:           pm10,
		NO2:            no2,
		O3:             o3,
		CompositeIndex: models.CompositeIndex(pm25, pm10, no2, o3),
		Temperature:    round1(uniform(rng, TemperatureMin, TemperatureMax)),
		Humidity:       intInRange(rng, HumidityMin, HumidityMax),
		Rainfall:       round1(uniform(rng, RainfallMin, RainfallMax)),
		WindSpeed:      round1(uniform(rng, WindSpeedMin, WindSpeedMax)),
	}
}

func intInRange(rng Source, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}

func uniform(rng Source, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// round1 rounds half away from zero to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
