package models

import "time"

// Event represents a church event
type Event struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	DateEvent   time.Time `json:"date_event"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
}

// EventInput carries the raw event form values
type EventInput struct {
	Title       string `json:"title" form:"title"`
	DateEvent   string `json:"date_event" form:"date_event"`
	Description string `json:"description" form:"description"`
	Location    string `json:"location" form:"location"`
	Category    string `json:"category" form:"category"`
	ImageURL    string `json:"image_url" form:"image_url"`
}
