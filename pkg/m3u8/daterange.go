package m3u8

import "time"

// IsDateInDateRange reports whether date falls inside dr's half-open
// interval [start_date, end), per spec.md §4.5:
//
//   - nil if either date or dr.StartDate is missing.
//   - end is start_date + duration when Duration is set (DURATION wins
//     over END-DATE when both are present), else dr.EndDate when set,
//     else +∞ (no upper bound).
//   - otherwise: dr.StartDate <= date < end.
func IsDateInDateRange(date *time.Time, dr DateRange) *bool {
	if date == nil || dr.StartDate == nil {
		return nil
	}

	if date.Before(*dr.StartDate) {
		f := false
		return &f
	}

	if dr.Duration != nil {
		end := dr.StartDate.Add(*dr.Duration)
		r := date.Before(end)
		return &r
	}
	if dr.EndDate != nil {
		r := date.Before(*dr.EndDate)
		return &r
	}
	t := true
	return &t
}
