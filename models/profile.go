package models

import (
	"time"

	"gorm.io/datatypes"
)

// SocialLinks holds the public URLs a user attaches to their profile.
type SocialLinks struct {
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Profile is the full profile record for one user. Writes replace it wholesale.
type Profile struct {
	UserID         string      `json:"userId"`
	FirstName      string      `json:"firstName"`
	LastName       string      `json:"lastName"`
	DisplayName    string      `json:"displayName,omitempty"`
	Email          string      `json:"email,omitempty"`
	Phone          string      `json:"phone,omitempty"`
	Location       string      `json:"location,omitempty"`
	Website        string      `json:"website,omitempty"`
	Bio            string      `json:"bio,omitempty"`
	Title          string      `json:"title,omitempty"`
	Organization   string      `json:"organization,omitempty"`
	Specialization string      `json:"specialization,omitempty"`
	Experience     string      `json:"experience,omitempty"`
	Education      string      `json:"education,omitempty"`
	Certifications []string    `json:"certifications"`
	ProfileImage   string      `json:"profileImage,omitempty"`
	SocialLinks    SocialLinks `json:"socialLinks"`
	ShowEmail      bool        `json:"showEmail"`
	ShowPhone      bool        `json:"showPhone"`
	ShowLocation   bool        `json:"showLocation"`
}

// Clone returns a deep copy so callers never share the certifications slice.
func (p Profile) Clone() Profile {
	out := p
	if p.Certifications != nil {
		out.Certifications = make([]string, len(p.Certifications))
		copy(out.Certifications, p.Certifications)
	}
	return out
}

// Public returns the view shown to other users: contact fields are blanked
// unless the owner opted to show them.
func (p Profile) Public() Profile {
	out := p.Clone()
	if !p.ShowEmail {
		out.Email = ""
	}
	if !p.ShowPhone {
		out.Phone = ""
	}
	if !p.ShowLocation {
		out.Location = ""
	}
	return out
}

// ProfileRow is the relational representation of Profile (table profiles).
type ProfileRow struct {
	UserID         string `gorm:"primaryKey;size:128"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	FirstName      string `gorm:"size:255"`
	LastName       string `gorm:"size:255"`
	DisplayName    string `gorm:"size:255"`
	Email          string `gorm:"size:255"`
	Phone          string `gorm:"size:64"`
	Location       string `gorm:"size:255"`
	Website        string `gorm:"size:512"`
	Bio            string `gorm:"type:text"`
	Title          string `gorm:"size:255"`
	Organization   string `gorm:"size:255"`
	Specialization string `gorm:"size:255"`
	Experience     string `gorm:"size:255"`
	Education      string `gorm:"size:512"`
	Certifications datatypes.JSONType[[]string]
	ProfileImage   string `gorm:"size:512"`
	SocialLinks    datatypes.JSONType[SocialLinks]
	ShowEmail      bool `gorm:"default:false;not null"`
	ShowPhone      bool `gorm:"default:false;not null"`
	ShowLocation   bool `gorm:"default:false;not null"`
}

func (ProfileRow) TableName() string { return "profiles" }

// NewProfileRow maps a Profile onto its table row.
func NewProfileRow(p Profile) ProfileRow {
	return ProfileRow{
		UserID:         p.UserID,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		DisplayName:    p.DisplayName,
		Email:          p.Email,
		Phone:          p.Phone,
		Location:       p.Location,
		Website:        p.Website,
		Bio:            p.Bio,
		Title:          p.Title,
		Organization:   p.Organization,
		Specialization: p.Specialization,
		Experience:     p.Experience,
		Education:      p.Education,
		Certifications: datatypes.NewJSONType(p.Certifications),
		ProfileImage:   p.ProfileImage,
		SocialLinks:    datatypes.NewJSONType(p.SocialLinks),
		ShowEmail:      p.ShowEmail,
		ShowPhone:      p.ShowPhone,
		ShowLocation:   p.ShowLocation,
	}
}

// Profile converts the row back into the domain record.
func (r ProfileRow) Profile() Profile {
	return Profile{
		UserID:         r.UserID,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		DisplayName:    r.DisplayName,
		Email:          r.Email,
		Phone:          r.Phone,
		Location:       r.Location,
		Website:        r.Website,
		Bio:            r.Bio,
		Title:          r.Title,
		Organization:   r.Organization,
		Specialization: r.Specialization,
		Experience:     r.Experience,
		Education:      r.Education,
		Certifications: r.Certifications.Data(),
		ProfileImage:   r.ProfileImage,
		SocialLinks:    r.SocialLinks.Data(),
		ShowEmail:      r.ShowEmail,
		ShowPhone:      r.ShowPhone,
		ShowLocation:   r.ShowLocation,
	}
}
