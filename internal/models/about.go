package models

// TeamMember represents a member of the church leadership team
type TeamMember struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Bio          string `json:"bio"`
	ImageURL     string `json:"image_url"`
	DisplayOrder int    `json:"display_order"`
}

// TeamMemberInput carries the raw team member form values
type TeamMemberInput struct {
	Name         string `json:"name" form:"name"`
	Role         string `json:"role" form:"role"`
	Bio          string `json:"bio" form:"bio"`
	ImageURL     string `json:"image_url" form:"image_url"`
	DisplayOrder string `json:"display_order" form:"display_order"`
}

// ChurchValue represents one of the values listed on the about page
type ChurchValue struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Icon         string `json:"icon"`
	DisplayOrder int    `json:"display_order"`
}

// ChurchValueInput carries the raw church value form values
type ChurchValueInput struct {
	Title        string `json:"title" form:"title"`
	Description  string `json:"description" form:"description"`
	Icon         string `json:"icon" form:"icon"`
	DisplayOrder string `json:"display_order" form:"display_order"`
}
