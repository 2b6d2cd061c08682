package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// ReservationEvent is the payload published for every successful booking or
// cancellation.
type ReservationEvent struct {
	Type            string `json:"type"`
	RID             int64  `json:"rid"`
	CID             int64  `json:"cid"`
	FirstFlightFID  int64  `json:"first_flight_fid"`
	SecondFlightFID *int64 `json:"second_flight_fid,omitempty"`
	DayOfMonth      int    `json:"day_of_month"`
	OriginCity      string `json:"origin_city"`
	DestCity        string `json:"dest_city"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
