package model

// Period is a closed reporting window echoed back to clients.
type Period struct {
	Start Date `json:"start_date"`
	End   Date `json:"end_date"`
}

// AvailableDates partitions every day of a window for one outdoor.
// Both lists are ascending and together cover the window exactly once.
type AvailableDates struct {
	OutdoorID      uint64   `json:"outdoor_id"`
	Period         Period   `json:"period"`
	AvailableDays  []string `json:"available_days"`
	OccupiedDays   []string `json:"occupied_days"`
	TotalDays      int      `json:"total_days"`
	TotalAvailable int      `json:"total_available"`
	TotalOccupied  int      `json:"total_occupied"`
}

// OutdoorOccupancy is one row of an occupancy report.
type OutdoorOccupancy struct {
	OutdoorID     uint64  `json:"outdoor_id"`
	OutdoorName   string  `json:"outdoor_name"`
	OccupiedDays  int     `json:"occupied_days"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

// OccupancyReport aggregates occupancy of all active outdoors over a window.
// AverageOccupancyRate is the mean of the per-outdoor rates.
type OccupancyReport struct {
	Period               Period             `json:"period"`
	PeriodDays           int                `json:"period_days"`
	TotalOutdoors        int                `json:"total_outdoors"`
	TotalOccupiedDays    int                `json:"total_occupied_days"`
	TotalAvailableDays   int                `json:"total_available_days"`
	AverageOccupancyRate float64            `json:"average_occupancy_rate"`
	Outdoors             []OutdoorOccupancy `json:"outdoors"`
}

// PublicBooking is the slice of a reservation shown on the public catalog.
// Customer contact details stay private.
type PublicBooking struct {
	ID        uint64 `json:"id"`
	StartDate Date   `json:"start_date"`
	EndDate   Date   `json:"end_date"`
}

// OutdoorAvailability is a catalog entry: an active outdoor with the
// bookings that intersect the requested window.
type OutdoorAvailability struct {
	Outdoor
	Bookings       []PublicBooking `json:"bookings"`
	FullyAvailable bool            `json:"fully_available"`
}
