// Package timezone keeps every wall-clock computation in one location.
//
// The location comes from APP_TIMEZONE (an IANA name such as "Asia/Jakarta") and is resolved on
// first use. Tests and tools may pin it with SetLocation. Calendar-date helpers take an explicit
// location so the same-day occupancy rule can be evaluated for any hotel:
//
//	midnight := timezone.StartOfDay(t, loc)
//	today := timezone.SameDate(checkinAt, now, loc)
package timezone
