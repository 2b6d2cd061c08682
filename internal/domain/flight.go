package domain

// FlightCapacity is the maximum number of reservations allowed against a
// single flight leg.
const FlightCapacity = 3

// FlightLeg is one scheduled flight segment from the catalog.
type FlightLeg struct {
	FID        int64  `json:"fid"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	DayOfMonth int    `json:"day_of_month"`
	CarrierID  string `json:"carrier_id"`
	FlightNum  string `json:"flight_num"`
	OriginCity string `json:"origin_city"`
	DestCity   string `json:"dest_city"`
	ActualTime int    `json:"actual_time"`
}

// Itinerary is a bookable trip of one or two legs on the same day. For a
// two-leg itinerary the first leg's destination is the second leg's origin.
type Itinerary struct {
	Legs []FlightLeg `json:"legs"`
}

func (i Itinerary) Direct() bool {
	return len(i.Legs) == 1
}

// DayOfMonth returns the day both legs fly on. Legs share the day by
// construction of the search, so the first leg is authoritative.
func (i Itinerary) DayOfMonth() int {
	return i.Legs[0].DayOfMonth
}

func (i Itinerary) OriginCity() string {
	return i.Legs[0].OriginCity
}

func (i Itinerary) DestCity() string {
	return i.Legs[len(i.Legs)-1].DestCity
}

// StopCity returns the intermediate city of a one-stop itinerary, or "" for
// a direct one.
func (i Itinerary) StopCity() string {
	if i.Direct() {
		return ""
	}
	return i.Legs[1].OriginCity
}

// TotalTime is the summed actual time of all legs in minutes.
func (i Itinerary) TotalTime() int {
	total := 0
	for _, leg := range i.Legs {
		total += leg.ActualTime
	}
	return total
}
