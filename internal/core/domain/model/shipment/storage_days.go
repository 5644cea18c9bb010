package shipment

import "time"

const day = 24 * time.Hour

// StorageDays counts started 24-hour periods between intake and end, with a
// minimum of one day. A shipment released a minute after intake is billed one day.
//
// Example:
//
//	StorageDays(intake, intake.Add(96*time.Hour))   // 4
//	StorageDays(intake, intake.Add(97*time.Hour))   // 5
func StorageDays(intake, end time.Time) int {
	elapsed := end.Sub(intake)
	if elapsed <= 0 {
		return 1
	}

	days := int(elapsed / day)
	if elapsed%day != 0 {
		days++
	}
	return max(days, 1)
}
