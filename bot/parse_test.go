package bot

import (
	"errors"
	"testing"
	"time"
)

var (
	testNow        = time.Date(2053, 1, 20, 10, 0, 0, 0, time.UTC)
	testFacilities = []string{"LT 1", "LT 2", "CONF ROOM"}
	testCompanies  = []string{"HQ", "ALPHA", "BRAVO"}
)

func TestParseInputDate(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		want    string
		wantErr error
	}{
		{"valid future", "250153", "2053-01-25", nil},
		{"valid today", "200153", "2053-01-20", nil},
		{"with whitespace", " 250153 ", "2053-01-25", nil},
		{"past", "190153", "", errPastDate},
		{"garbage", "tomorrow", "", errBadDate},
		{"wrong length", "2501", "", errBadDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseInputDate(tc.text, testNow)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseInputDate(%q): %v", tc.text, err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseAdminBookingForm(t *testing.T) {
	form, err := parseAdminBookingForm(
		"LT 1\n250153\n0900-1030\nRange briefing\ncpt tan ah kow\nalpha",
		testFacilities, testCompanies, testNow)
	if err != nil {
		t.Fatalf("parseAdminBookingForm: %v", err)
	}
	if form.Facility != "LT 1" {
		t.Errorf("Facility = %q", form.Facility)
	}
	if form.Time.Date != "2053-01-25" || form.Time.Start != "09:00" || form.Time.End != "10:30" {
		t.Errorf("Time = %+v", form.Time)
	}
	if form.Description != "Range briefing" {
		t.Errorf("Description = %q", form.Description)
	}
	if form.RankAndName != "CPT TAN AH KOW" {
		t.Errorf("RankAndName = %q, want uppercased", form.RankAndName)
	}
	if form.Company != "ALPHA" {
		t.Errorf("Company = %q, want uppercased", form.Company)
	}
}

func TestParseAdminBookingFormRejects(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"too few lines", "LT 1\n250153\n0900-1030"},
		{"unknown facility", "POOL\n250153\n0900-1030\nSwim\nCPT TAN\nALPHA"},
		{"past date", "LT 1\n190153\n0900-1030\nBrief\nCPT TAN\nALPHA"},
		{"bad time", "LT 1\n250153\n0900\nBrief\nCPT TAN\nALPHA"},
		{"inverted time", "LT 1\n250153\n1030-0900\nBrief\nCPT TAN\nALPHA"},
		{"empty description", "LT 1\n250153\n0900-1030\n\nCPT TAN\nALPHA"},
		{"unknown company", "LT 1\n250153\n0900-1030\nBrief\nCPT TAN\nDELTA"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseAdminBookingForm(tc.text, testFacilities, testCompanies, testNow); err == nil {
				t.Error("invalid form accepted")
			}
		})
	}
}
