package domain

// Reservation is one booked itinerary owned by a customer. Second-leg fields
// are nil for a direct reservation.
type Reservation struct {
	RID             int64   `json:"rid"`
	CID             int64   `json:"cid"`
	FirstFlightFID  int64   `json:"first_flight_fid"`
	SecondFlightFID *int64  `json:"second_flight_fid,omitempty"`
	FirstCarrierID  string  `json:"first_carrier_id"`
	SecondCarrierID *string `json:"second_carrier_id,omitempty"`
	DayOfMonth      int     `json:"day_of_month"`
	OriginCity      string  `json:"origin_city"`
	StopCity        *string `json:"stop_city,omitempty"`
	DestCity        string  `json:"dest_city"`
	ActualTime      int     `json:"actual_time"`
}

// NewReservation builds the reservation row for an itinerary. The rid is
// assigned by the booking transaction.
func NewReservation(rid, cid int64, itin Itinerary) Reservation {
	first := itin.Legs[0]
	r := Reservation{
		RID:            rid,
		CID:            cid,
		FirstFlightFID: first.FID,
		FirstCarrierID: first.CarrierID,
		DayOfMonth:     itin.DayOfMonth(),
		OriginCity:     itin.OriginCity(),
		DestCity:       itin.DestCity(),
		ActualTime:     itin.TotalTime(),
	}
	if !itin.Direct() {
		second := itin.Legs[1]
		stop := itin.StopCity()
		r.SecondFlightFID = &second.FID
		r.SecondCarrierID = &second.CarrierID
		r.StopCity = &stop
	}
	return r
}
