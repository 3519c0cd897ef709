package models

import (
	"reflect"
	"testing"
	"time"
)

func TestCompositeIndex(t *testing.T) {
	tests := []struct {
		name                string
		pm25, pm10, no2, o3 int
		want                int
	}{
		{"pm2_5 dominates", 90, 110, 20, 30, 90},
		{"pm10 half dominates", 40, 139, 20, 30, 69},
		{"pm10 floor division", 20, 61, 10, 10, 30},
		{"no2 dominates", 15, 25, 59, 10, 59},
		{"o3 dominates", 15, 25, 10, 79, 79},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CompositeIndex(tc.pm25, tc.pm10, tc.no2, tc.o3); got != tc.want {
				t.Errorf("CompositeIndex(%d, %d, %d, %d) = %d, want %d", tc.pm25, tc.pm10, tc.no2, tc.o3, got, tc.want)
			}
		})
	}
}

func TestRecord_DateString(t *testing.T) {
	r := Record{Date: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)}
	if got := r.DateString(); got != "2024-03-05" {
		t.Errorf("DateString() = %q, want 2024-03-05", got)
	}
}

func TestDataset_Locations(t *testing.T) {
	ds := Dataset{
		{Location: "Cheras"},
		{Location: "Cheras"},
		{Location: "KLCC"},
		{Location: "Bangsar"},
		{Location: "KLCC"},
	}
	want := []string{"Cheras", "KLCC", "Bangsar"}
	if got := ds.Locations(); !reflect.DeepEqual(got, want) {
		t.Errorf("Locations() = %v, want %v", got, want)
	}
	if got := (Dataset{}).Locations(); len(got) != 0 {
		t.Errorf("empty Locations() = %v, want none", got)
	}
}

func TestColumns_Order(t *testing.T) {
	want := []string{"date", "location", "pm2_5", "pm10", "no2", "o3", "composite_index", "temperature", "humidity", "rainfall", "wind_speed"}
	if !reflect.DeepEqual(Columns, want) {
		t.Errorf("Columns = %v, want %v", Columns, want)
	}
}

func TestRecord_ExpectedCompositeIndex(t *testing.T) {
	r := Record{PM25: 30, PM10: 99, NO2: 20, O3: 48, CompositeIndex: 49}
	if got := r.ExpectedCompositeIndex(); got != 49 {
		t.Errorf("ExpectedCompositeIndex() = %d, want 49", got)
	}
}
