// Package models defines server-side records shared by repositories,
// services and HTTP handlers.
package models

import "time"

// User is a persisted account. PasswordHash never leaves the server.
type User struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Username         string    `json:"username"`
	PasswordHash     string    `json:"-"`
	PhoneNumber      string    `json:"phone_number"`
	Gender           string    `json:"gender"`
	DateOfBirth      string    `json:"date_of_birth"`
	MembershipStatus string    `json:"membership_status"`
	Bio              string    `json:"bio,omitempty"`
	Address          string    `json:"address"`
	ProfilePicture   string    `json:"profile_picture,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Identity is the minimal projection of a User attached to authenticated
// requests.
type Identity struct {
	ID string `json:"id"`
}
