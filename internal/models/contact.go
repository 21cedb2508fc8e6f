package models

import "time"

// FAQ represents a question shown on the contact page
type FAQ struct {
	ID           int    `json:"id"`
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	DisplayOrder int    `json:"display_order"`
}

// FAQInput carries the raw FAQ form values
type FAQInput struct {
	Question     string `json:"question" form:"question"`
	Answer       string `json:"answer" form:"answer"`
	DisplayOrder string `json:"display_order" form:"display_order"`
}

// ContactMessage represents a message sent through the contact form
type ContactMessage struct {
	ID        int       `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}

// ContactMessageInput carries the public contact form, whose fields are named in French
type ContactMessageInput struct {
	FirstName string `json:"prenom" form:"prenom"`
	LastName  string `json:"nom" form:"nom"`
	Email     string `json:"email" form:"email"`
	Subject   string `json:"sujet" form:"sujet"`
	Message   string `json:"message" form:"message"`
}
