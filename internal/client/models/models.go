// Package models holds the API payloads the CLI sends and receives.
package models

import "time"

// Session is a logged-in user as persisted between CLI runs.
type Session struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// SignupRequest is the body of POST /api/users/signup.
type SignupRequest struct {
	Name             string `json:"name"`
	Username         string `json:"username"`
	Password         string `json:"password"`
	PhoneNumber      string `json:"phone_number"`
	Gender           string `json:"gender"`
	DateOfBirth      string `json:"date_of_birth"`
	MembershipStatus string `json:"membership_status"`
	Bio              string `json:"bio,omitempty"`
	Address          string `json:"address"`
}

type User struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Username         string    `json:"username"`
	PhoneNumber      string    `json:"phone_number"`
	Gender           string    `json:"gender"`
	DateOfBirth      string    `json:"date_of_birth"`
	MembershipStatus string    `json:"membership_status"`
	Bio              string    `json:"bio,omitempty"`
	Address          string    `json:"address"`
	ProfilePicture   string    `json:"profile_picture,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type Company struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contactEmail,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
	Website      string `json:"website,omitempty"`
	Size         int    `json:"size,omitempty"`
}

type Job struct {
	ID              string    `json:"id,omitempty"`
	Title           string    `json:"title"`
	Type            string    `json:"type"`
	Description     string    `json:"description"`
	Company         Company   `json:"company"`
	Location        string    `json:"location,omitempty"`
	Salary          float64   `json:"salary,omitempty"`
	ExperienceLevel string    `json:"experienceLevel,omitempty"`
	Status          string    `json:"status,omitempty"`
	Requirements    []string  `json:"requirements,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitzero"`
}

// AvatarUpload is a presigned PUT for a new profile picture.
type AvatarUpload struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
