package cli

import (
	"fmt"
	"strconv"
	"time"
)

const dateFormat = "2006-01-02"

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %s", arg)
	}
	return id, nil
}

func parseDate(arg string) (time.Time, error) {
	t, err := time.Parse(dateFormat, arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", arg)
	}
	return t, nil
}

// optString maps an unset flag value to nil for optional columns.
func optString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func optDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := parseDate(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
