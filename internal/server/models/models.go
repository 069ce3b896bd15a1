// Package models defines the records persisted in the key-value store.
package models

import "time"

const (
	UserTypeFreelancer = "freelancer"
	UserTypeClient     = "client"

	StatusActive = "active"
)

// Categories is the fixed set of freelancer categories reported by the
// category counts endpoint, in display order.
var Categories = []string{
	"Development & IT",
	"Design & Creative",
	"Sales & Marketing",
	"Writing & Translation",
	"Admin & Customer Support",
	"Finance & Accounting",
	"Engineering & Architecture",
	"Legal",
}

// Profile holds the country-specific registration fields verbatim.
type Profile map[string]any

// Str returns field as a string, or "" when absent or not a string.
func (p Profile) Str(field string) string {
	if p == nil {
		return ""
	}
	s, _ := p[field].(string)
	return s
}

// Keys lists the profile field names in unspecified order.
func (p Profile) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	return keys
}

type Freelancer struct {
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Country      string    `json:"country"`
	Skills       []string  `json:"skills"`
	Categories   []string  `json:"categories"`
	Profile      Profile   `json:"profile"`
	Type         string    `json:"type"`
	CreatedAt    time.Time `json:"createdAt"`
	Status       string    `json:"status"`
	MobileNumber string    `json:"mobileNumber,omitempty"`
}

// ProfileMobile reads the mobile number the way freelancer forms store it:
// mobileNo first, then mobile.
func (f *Freelancer) ProfileMobile() string {
	if m := f.Profile.Str("mobileNo"); m != "" {
		return m
	}
	return f.Profile.Str("mobile")
}

// Mobile prefers the canonical field written at registration.
func (f *Freelancer) Mobile() string {
	if f.MobileNumber != "" {
		return f.MobileNumber
	}
	return f.ProfileMobile()
}

type Client struct {
	UserID              string    `json:"userId"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Country             string    `json:"country"`
	CompanyName         string    `json:"companyName"`
	BusinessDescription string    `json:"businessDescription"`
	Profile             Profile   `json:"profile"`
	Type                string    `json:"type"`
	CreatedAt           time.Time `json:"createdAt"`
	Status              string    `json:"status"`
	MobileNumber        string    `json:"mobileNumber,omitempty"`
}

// ProfileMobile checks mobile first, then mobileNo.
func (c *Client) ProfileMobile() string {
	if m := c.Profile.Str("mobile"); m != "" {
		return m
	}
	return c.Profile.Str("mobileNo")
}

func (c *Client) Mobile() string {
	if c.MobileNumber != "" {
		return c.MobileNumber
	}
	return c.ProfileMobile()
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
	Status         string    `json:"status"`
	PostedAt       time.Time `json:"postedAt"`
	Applicants     []string  `json:"applicants"`
}

// MobileEntry is the value stored under mobile:<number>.
type MobileEntry struct {
	UserID   string `json:"userId"`
	UserType string `json:"userType"`
}

// UserRecord is a directory hit: exactly one of Freelancer or Client is set.
type UserRecord struct {
	UserType   string
	Freelancer *Freelancer
	Client     *Client
}

func (u *UserRecord) UserID() string {
	if u.Freelancer != nil {
		return u.Freelancer.UserID
	}
	if u.Client != nil {
		return u.Client.UserID
	}
	return ""
}

func (u *UserRecord) Name() string {
	if u.Freelancer != nil {
		return u.Freelancer.Name
	}
	if u.Client != nil {
		return u.Client.Name
	}
	return ""
}

func (u *UserRecord) Email() string {
	if u.Freelancer != nil {
		return u.Freelancer.Email
	}
	if u.Client != nil {
		return u.Client.Email
	}
	return ""
}

func (u *UserRecord) Country() string {
	if u.Freelancer != nil {
		return u.Freelancer.Country
	}
	if u.Client != nil {
		return u.Client.Country
	}
	return ""
}

func (u *UserRecord) Mobile() string {
	if u.Freelancer != nil {
		return u.Freelancer.Mobile()
	}
	if u.Client != nil {
		return u.Client.Mobile()
	}
	return ""
}
