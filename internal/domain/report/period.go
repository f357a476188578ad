package report

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/yuzvak/pos-service/internal/domain/errors"
)

// Period is a calendar month the reports are computed for.
type Period struct {
	Year  int
	Month int
}

func NewPeriod(year, month int) (Period, error) {
	if year < 1 || year > 9999 {
		return Period{}, fmt.Errorf("%w: year %d", domainErrors.ErrInvalidPeriod, year)
	}
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("%w: month %d", domainErrors.ErrInvalidPeriod, month)
	}
	return Period{Year: year, Month: month}, nil
}

// ParsePeriod reads tahun/bulan query values, defaulting each missing one to
// the current year or month.
func ParsePeriod(year, month string, now time.Time) (Period, error) {
	y, m := now.Year(), int(now.Month())

	if v := strings.TrimSpace(year); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return Period{}, fmt.Errorf("%w: year %q", domainErrors.ErrInvalidPeriod, year)
		}
		y = parsed
	}

	if v := strings.TrimSpace(month); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return Period{}, fmt.Errorf("%w: month %q", domainErrors.ErrInvalidPeriod, month)
		}
		m = parsed
	}

	return NewPeriod(y, m)
}

func (p Period) Query() url.Values {
	q := url.Values{}
	q.Set("tahun", strconv.Itoa(p.Year))
	q.Set("bulan", fmt.Sprintf("%02d", p.Month))
	return q
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}
