package models

import "time"

type Company struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contactEmail,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
	Website      string `json:"website,omitempty"`
	Size         int    `json:"size,omitempty"`
}

// Job is a job posting.
type Job struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Type                string     `json:"type"`
	Description         string     `json:"description"`
	Company             Company    `json:"company"`
	Location            string     `json:"location,omitempty"`
	Salary              float64    `json:"salary,omitempty"`
	ExperienceLevel     string     `json:"experienceLevel,omitempty"`
	PostedDate          *time.Time `json:"postedDate,omitempty"`
	Status              string     `json:"status,omitempty"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
	Requirements        []string   `json:"requirements,omitempty"`
	OwnerID             string     `json:"owner_id,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
