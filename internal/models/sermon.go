package models

import "time"

const (
	// DefaultSermonCategory is stored when a sermon is saved without a category
	DefaultSermonCategory = "Enseignements"
	// SermonPageSize is the number of sermons per listing page, featured sermon excluded
	SermonPageSize = 9
)

// Sermon represents a recorded sermon
type Sermon struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Preacher     string    `json:"preacher"`
	Series       string    `json:"series"`
	VideoURL     string    `json:"video_url"`
	AudioURL     string    `json:"audio_url"`
	DatePreached time.Time `json:"date_preached"`
	Description  string    `json:"description"`
	Duration     string    `json:"duration"`
	Category     string    `json:"category"`
}

// SermonInput carries the raw sermon form values; they reach the database unvalidated
type SermonInput struct {
	Title        string `json:"title" form:"title"`
	Preacher     string `json:"preacher" form:"preacher"`
	Series       string `json:"series" form:"series"`
	VideoURL     string `json:"video_url" form:"video_url"`
	AudioURL     string `json:"audio_url" form:"audio_url"`
	DatePreached string `json:"date_preached" form:"date_preached"`
	Description  string `json:"description" form:"description"`
	Duration     string `json:"duration" form:"duration"`
	Category     string `json:"category" form:"category"`
}

// SermonListing is one page of the sermon feed
type SermonListing struct {
	Featured   *Sermon  `json:"featured"`
	Items      []Sermon `json:"items"`
	TotalPages int      `json:"totalPages"`
}
