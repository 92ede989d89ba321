package record

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int64
		wantErr bool
	}{
		{name: "plainNumber", raw: "42", want: 42},
		{name: "paddedNumber", raw: " 7 ", want: 7},
		{name: "empty", raw: "", wantErr: true},
		{name: "notANumber", raw: "abc", wantErr: true},
		{name: "zero", raw: "0", wantErr: true},
		{name: "negative", raw: "-3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseID(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseID(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseID(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{
			name: "rfc3339",
			raw:  "2024-01-20T18:30:00Z",
			want: time.Date(2024, 1, 20, 18, 30, 0, 0, time.UTC),
		},
		{
			name: "usStyleWithMillisMarker",
			raw:  "1/20/2024 6:30:00 PM.000Z",
			want: time.Date(2024, 1, 20, 18, 30, 0, 0, time.Local),
		},
		{
			name: "isoWithoutZone",
			raw:  "2024-01-20T18:30:00",
			want: time.Date(2024, 1, 20, 18, 30, 0, 0, time.Local),
		},
		{
			name: "dateOnly",
			raw:  "2024-01-20",
			want: time.Date(2024, 1, 20, 0, 0, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTime(tt.raw)
			if err != nil {
				t.Fatalf("ParseTime(%q) error = %v", tt.raw, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTime(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}

	if _, err := ParseTime("tomorrow evening"); err == nil {
		t.Error("ParseTime() should reject unknown formats")
	}
}

func TestToTimeEpochMillis(t *testing.T) {
	at := time.Date(2024, 1, 20, 18, 30, 0, 0, time.UTC)
	ms := at.UnixMilli()

	tests := []struct {
		name string
		raw  any
	}{
		{name: "int64", raw: ms},
		{name: "float64", raw: float64(ms)},
		{name: "jsonNumber", raw: json.Number("1705775400000")},
		{name: "jsonNumberFraction", raw: json.Number("1705775400000.0")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := toTime(tt.raw)
			if !ok {
				t.Fatalf("toTime(%v) not ok", tt.raw)
			}
			if !got.Equal(at) {
				t.Errorf("toTime(%v) = %v, want %v", tt.raw, got, at)
			}
		})
	}

	if _, ok := toTime(json.Number("soon")); ok {
		t.Error("toTime() should reject a non-numeric json.Number")
	}
}

func TestRecordProjectKeepsID(t *testing.T) {
	r := Record{KeyID: int64(3), "Name": "Flour", "unit": "kg"}

	got := r.Project([]string{"unit"})

	if got.ID() != 3 {
		t.Errorf("Project() dropped Id: %v", got)
	}
	if _, ok := got["Name"]; ok {
		t.Errorf("Project() kept unrequested field: %v", got)
	}
	if got["unit"] != "kg" {
		t.Errorf("Project() unit = %v, want kg", got["unit"])
	}
}
