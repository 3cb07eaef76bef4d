package returns

import "time"

// TradingDays lists the weekdays between start and end inclusive, normalized
// to calendar days. Market holidays are not excluded; a full exchange
// calendar would be needed for that.
func TradingDays(start, end time.Time) []time.Time {
	first := dateOnly(start)
	last := dateOnly(end)

	var days []time.Time
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		days = append(days, day)
	}

	return days
}
