package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightres/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.ReservationEvent) error {
	fmt.Printf("notify customer %d: %s for reservation %d (%s -> %s on day %d)\n",
		event.CID, event.Type, event.RID, event.OriginCity, event.DestCity, event.DayOfMonth)
	return nil
}
