// Package model はドメインモデルを定義する。
package model

import "time"

// Experience は候補者の職歴1件を表す。
type Experience struct {
	Company     string     `json:"company"`
	Position    string     `json:"position"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

// Education は候補者の学歴1件を表す。
type Education struct {
	Institution string     `json:"institution"`
	Degree      string     `json:"degree"`
	Field       string     `json:"field"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Current     bool       `json:"current"`
}

// JobPreferences は候補者の希望条件を表す。
type JobPreferences struct {
	JobTypes           []JobType `json:"jobTypes,omitempty"`
	ExpectedSalary     int64     `json:"expectedSalary,omitempty"`
	PreferredLocations []string  `json:"preferredLocations,omitempty"`
	RemotePreference   string    `json:"remotePreference,omitempty"` // remote / hybrid / onsite
}

// UserProfile は求職者のキャリアプロフィールを表す。Accountと1:1で紐付く。
type UserProfile struct {
	ID             string
	AccountID      string
	Title          string
	Bio            string
	Location       string
	Phone          string
	Skills         []string
	Experience     []Experience
	Education      []Education
	ResumeURL      string
	JobPreferences JobPreferences
	SocialLinks    SocialLinks
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
