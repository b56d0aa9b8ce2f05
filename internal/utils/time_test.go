package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: "", wantErr: false},
		{name: "Local returns local", timezone: "Local", wantErr: false},
		{name: "valid timezone UTC", timezone: "UTC", wantErr: false},
		{name: "valid timezone Asia/Tokyo", timezone: "Asia/Tokyo", wantErr: false},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestTodayInTimezone(t *testing.T) {
	today, err := TodayInTimezone("UTC")
	if err != nil {
		t.Fatalf("TodayInTimezone() error = %v", err)
	}
	if today.Hour() != 0 || today.Minute() != 0 || today.Second() != 0 || today.Nanosecond() != 0 {
		t.Errorf("TodayInTimezone() = %v, want midnight", today)
	}
	if today.Location().String() != "UTC" {
		t.Errorf("TodayInTimezone() location = %v, want UTC", today.Location())
	}

	if _, err := TodayInTimezone("Invalid/Timezone"); err == nil {
		t.Error("TodayInTimezone() with invalid timezone should fail")
	}
}

func TestParseFlexibleDate(t *testing.T) {
	utc := time.UTC

	tests := []struct {
		name    string
		value   string
		wantKey string
		wantErr bool
	}{
		{name: "date key", value: "2023-01-25", wantKey: "2023-01-25"},
		{name: "padded whitespace", value: " 2023-02-01 ", wantKey: "2023-02-01"},
		{name: "rfc3339", value: "2023-01-25T10:30:00Z", wantKey: "2023-01-25"},
		{name: "slashes rejected", value: "2023/01/25", wantErr: true},
		{name: "invalid month", value: "2023-13-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlexibleDate(tt.value, utc)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFlexibleDate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got.Format("2006-01-02") != tt.wantKey {
				t.Errorf("ParseFlexibleDate() = %s, want %s", got.Format("2006-01-02"), tt.wantKey)
			}
		})
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Weekday
		wantErr bool
	}{
		{input: "monday", want: time.Monday},
		{input: "Sun", want: time.Sunday},
		{input: " SAT ", want: time.Saturday},
		{input: "1", want: time.Monday},
		{input: "0", want: time.Sunday},
		{input: "7", wantErr: true},
		{input: "someday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWeekday(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeekday(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseWeekday(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("Local") {
		t.Error("Local should be valid")
	}
	if !ValidateTimezone("Europe/London") {
		t.Error("Europe/London should be valid")
	}
	if ValidateTimezone("not-a-timezone") {
		t.Error("not-a-timezone should be invalid")
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		in   string
		want string
	}{
		{in: "~", want: "/home/tester"},
		{in: "~/agenda/items.json", want: "/home/tester/agenda/items.json"},
		{in: "/abs/items.json", want: "/abs/items.json"},
		{in: "relative.ics", want: "relative.ics"},
		{in: "~other/file", want: "~other/file"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandPath(tt.in)
			if err != nil {
				t.Fatalf("ExpandPath(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
