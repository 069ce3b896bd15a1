// Package models defines the wire shapes the CLI exchanges with the
// directory API.
package models

import "time"

type Freelancer struct {
	UserID     string            `json:"userId"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Country    string            `json:"country"`
	Skills     []string          `json:"skills"`
	Categories []string          `json:"categories"`
	Profile    map[string]string `json:"profile"`

	MobileNumber string `json:"mobileNumber,omitempty"`
}

type Client struct {
	UserID              string            `json:"userId"`
	Name                string            `json:"name"`
	Email               string            `json:"email"`
	Country             string            `json:"country"`
	CompanyName         string            `json:"companyName"`
	BusinessDescription string            `json:"businessDescription"`
	Profile             map[string]string `json:"profile"`

	MobileNumber string `json:"mobileNumber,omitempty"`
}

type Job struct {
	JobID          string    `json:"jobId"`
	ClientID       string    `json:"clientId"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Budget         string    `json:"budget"`
	Timeline       string    `json:"timeline"`
	SkillsRequired []string  `json:"skillsRequired"`
	Category       string    `json:"category"`
	Location       string    `json:"location"`
	PaymentType    string    `json:"paymentType"`
	Status         string    `json:"status,omitempty"`
	PostedAt       time.Time `json:"postedAt,omitzero"`
}

// User is the profile summary returned by login.
type User struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	MobileNumber    string `json:"mobileNumber"`
	Country         string `json:"country"`
	UserType        string `json:"userType"`
	ProfileComplete bool   `json:"profileComplete"`
	Avatar          string `json:"avatar"`
}

type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
