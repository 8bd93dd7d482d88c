package storage

import "time"

// Item is the metadata recorded alongside objects kept by LocalStorage.
type Item struct {
	CreatedAt time.Time `json:"created_at"`
	Size      int64     `json:"size"`
	Mime      string    `json:"mime,omitempty"`
}
