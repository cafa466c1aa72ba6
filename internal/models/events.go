package models

import "time"

// OrderEvent событие входящего заказа в Kafka
type OrderEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	Data      Order     `json:"data"`
}

// VerdictEvent событие оцененного заказа в Kafka
type VerdictEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	Data      Verdict   `json:"data"`
}
