package bot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"facilitybot/models"
)

var (
	errPastDate       = errors.New("date is in the past")
	errBadDate        = errors.New("not a valid date")
	errBadAdminForm   = errors.New("not a valid booking form")
	errUnknownCompany = errors.New("unknown company")
)

// parseInputDate parses the wizard's DDMMYY form and rejects past dates.
// Returns the stored "2006-01-02" form.
func parseInputDate(text string, now time.Time) (string, error) {
	parsed, err := time.ParseInLocation(models.InputDateLayout, strings.TrimSpace(text), now.Location())
	if err != nil {
		return "", fmt.Errorf("%w: %q", errBadDate, text)
	}
	date := parsed.Format(models.DateLayout)
	if date < now.Format(models.DateLayout) {
		return "", fmt.Errorf("%w: %s", errPastDate, date)
	}
	return date, nil
}

// adminBookingForm is the parsed six-line /admin booking message:
// facility, DDMMYY, HHmm-HHmm, description, rank and name, company.
type adminBookingForm struct {
	Facility    string
	Time        models.TimeRange
	Description string
	RankAndName string
	Company     string
}

func parseAdminBookingForm(text string, facilities, companies []string, now time.Time) (*adminBookingForm, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 6 {
		return nil, fmt.Errorf("%w: expected 6 lines, got %d", errBadAdminForm, len(lines))
	}
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	facility := lines[0]
	if !contains(facilities, facility) {
		return nil, fmt.Errorf("%w: unknown facility %q", errBadAdminForm, facility)
	}

	date, err := parseInputDate(lines[1], now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadAdminForm, err)
	}

	tr, err := models.ParseInputTimeRange(date, lines[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadAdminForm, err)
	}

	if lines[3] == "" {
		return nil, fmt.Errorf("%w: empty description", errBadAdminForm)
	}

	rankAndName := strings.ToUpper(lines[4])
	if rankAndName == "" {
		return nil, fmt.Errorf("%w: empty rank/name", errBadAdminForm)
	}

	company := strings.ToUpper(lines[5])
	if !contains(companies, company) {
		return nil, fmt.Errorf("%w: %q", errUnknownCompany, company)
	}

	return &adminBookingForm{
		Facility:    facility,
		Time:        tr,
		Description: lines[3],
		RankAndName: rankAndName,
		Company:     company,
	}, nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
