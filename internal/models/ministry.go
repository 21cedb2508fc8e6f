package models

// Ministry represents a ministry of the church
type Ministry struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	ShortDescription string `json:"short_description"`
	Description      string `json:"description"`
	ImageURL         string `json:"image_url"`
	Schedule         string `json:"schedule"`
}

// MinistryInput carries the raw ministry form values
type MinistryInput struct {
	Name             string `json:"name" form:"name"`
	ShortDescription string `json:"short_description" form:"short_description"`
	Description      string `json:"description" form:"description"`
	ImageURL         string `json:"image_url" form:"image_url"`
	Schedule         string `json:"schedule" form:"schedule"`
}

// HouseGroup represents a home group meeting
type HouseGroup struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DayTime     string `json:"day_time"`
	Description string `json:"description"`
}
