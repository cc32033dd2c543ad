package models

import (
	"time"

	"hdb-bto-portal/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Users (applicants, officers, managers)
// ============================================================

// ApplicationState holds the applicant-facing fields embedded on a user row.
// An officer acting as an applicant shares the same row, so application state
// is always loaded and saved under the user's NRIC regardless of role.
type ApplicationState struct {
	AppliedProjectID int                      `gorm:"default:-1" json:"applied_project_id"`
	Status           domain.ApplicationStatus `gorm:"size:20;default:'NOT_APPLIED'" json:"status"`
	AppliedFlatType  string                   `gorm:"size:20" json:"applied_flat_type"`
	// PriorStatus records the status held before PENDING_WITHDRAWAL so a
	// rejected withdrawal can restore it.
	PriorStatus domain.ApplicationStatus `gorm:"size:20" json:"-"`
}

// Reset returns the state to the not-applied baseline.
func (a *ApplicationState) Reset() {
	a.AppliedProjectID = domain.NoAppliedProject
	a.Status = domain.StatusNotApplied
	a.AppliedFlatType = ""
	a.PriorStatus = ""
}

// User represents users table
type User struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	NRIC          string      `gorm:"uniqueIndex;size:9;not null" json:"nric"`
	Name          string      `gorm:"size:100;not null" json:"name"`
	Password      string      `gorm:"size:255;not null" json:"-"`
	Age           int         `gorm:"not null" json:"age"`
	MaritalStatus string      `gorm:"size:10;not null" json:"marital_status"`
	Role          domain.Role `gorm:"size:20;default:'APPLICANT'" json:"role"`

	Application ApplicationState `gorm:"embedded" json:"application"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID            uint                     `json:"id"`
	NRIC          string                   `json:"nric"`
	Name          string                   `json:"name"`
	Age           int                      `json:"age"`
	MaritalStatus string                   `json:"marital_status"`
	Role          domain.Role              `json:"role"`
	AppliedProject int                     `json:"applied_project_id"`
	Status        domain.ApplicationStatus `json:"application_status"`
	FlatType      string                   `json:"applied_flat_type"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		NRIC:          u.NRIC,
		Name:          u.Name,
		Age:           u.Age,
		MaritalStatus: u.MaritalStatus,
		Role:          u.Role,
		AppliedProject: u.Application.AppliedProjectID,
		Status:        u.Application.Status,
		FlatType:      u.Application.AppliedFlatType,
	}
}

// OfficerApplicant is the dual-role view of an officer acting as an applicant.
// Identity reads delegate to the wrapped officer row; application mutations go
// through the embedded state on the same row.
type OfficerApplicant struct {
	Officer *User
}

func (o *OfficerApplicant) NRIC() string             { return o.Officer.NRIC }
func (o *OfficerApplicant) State() *ApplicationState { return &o.Officer.Application }

// ============================================================
// Projects
// ============================================================

// Project represents a BTO project. IDs are app-managed and always occupy the
// contiguous range [1..N]; they are never database auto-increments.
type Project struct {
	ID           int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name         string `gorm:"size:100;not null" json:"name"`
	Neighborhood string `gorm:"size:100;not null" json:"neighborhood"`

	Type1Desc  string `gorm:"size:20;not null" json:"type1_desc"`
	Type1Units int    `gorm:"not null" json:"type1_units"`
	Type1Price int    `gorm:"not null" json:"type1_price"`
	Type2Desc  string `gorm:"size:20;not null" json:"type2_desc"`
	Type2Units int    `gorm:"not null" json:"type2_units"`
	Type2Price int    `gorm:"not null" json:"type2_price"`

	// Original unit counts captured at creation, for reconciling
	// available + booked == original.
	OriginalType1Units int `gorm:"not null" json:"original_type1_units"`
	OriginalType2Units int `gorm:"not null" json:"original_type2_units"`

	OpeningDate time.Time `gorm:"not null" json:"-"`
	ClosingDate time.Time `gorm:"not null" json:"-"`

	ManagerNRIC  string `gorm:"size:9;index;not null" json:"manager_nric"`
	OfficerSlots int    `gorm:"not null" json:"officer_slots"`
	Visible      bool   `gorm:"default:true" json:"visible"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

// Window returns the project's application window.
func (p *Project) Window() domain.DateWindow {
	return domain.DateWindow{Open: p.OpeningDate, Close: p.ClosingDate}
}

// IsCurrentlyOpen reports whether today falls inside the application window.
func (p *Project) IsCurrentlyOpen(now time.Time) bool {
	return p.Window().Contains(now)
}

// HasFlatType reports whether the project offers the given flat type.
func (p *Project) HasFlatType(flatType string) bool {
	return domain.FlatTypeEquals(p.Type1Desc, flatType) || domain.FlatTypeEquals(p.Type2Desc, flatType)
}

// AvailableUnits returns the available count for the flat type. The second
// return is false when the project does not offer the type.
func (p *Project) AvailableUnits(flatType string) (int, bool) {
	switch {
	case domain.FlatTypeEquals(p.Type1Desc, flatType):
		return p.Type1Units, true
	case domain.FlatTypeEquals(p.Type2Desc, flatType):
		return p.Type2Units, true
	default:
		return 0, false
	}
}

// OriginalUnits returns the creation-time count for the flat type.
func (p *Project) OriginalUnits(flatType string) (int, bool) {
	switch {
	case domain.FlatTypeEquals(p.Type1Desc, flatType):
		return p.OriginalType1Units, true
	case domain.FlatTypeEquals(p.Type2Desc, flatType):
		return p.OriginalType2Units, true
	default:
		return 0, false
	}
}

// ProjectResponse DTO; dates use the d/M/yy layout.
type ProjectResponse struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Neighborhood string `json:"neighborhood"`
	Type1Desc    string `json:"type1_desc"`
	Type1Units   int    `json:"type1_units"`
	Type1Price   int    `json:"type1_price"`
	Type2Desc    string `json:"type2_desc"`
	Type2Units   int    `json:"type2_units"`
	Type2Price   int    `json:"type2_price"`
	OpeningDate  string `json:"opening_date"`
	ClosingDate  string `json:"closing_date"`
	ManagerNRIC  string `json:"manager_nric"`
	OfficerSlots int    `json:"officer_slots"`
	Visible      bool   `json:"visible"`
}

func (p *Project) ToResponse() *ProjectResponse {
	return &ProjectResponse{
		ID:           p.ID,
		Name:         p.Name,
		Neighborhood: p.Neighborhood,
		Type1Desc:    p.Type1Desc,
		Type1Units:   p.Type1Units,
		Type1Price:   p.Type1Price,
		Type2Desc:    p.Type2Desc,
		Type2Units:   p.Type2Units,
		Type2Price:   p.Type2Price,
		OpeningDate:  domain.FormatDate(p.OpeningDate),
		ClosingDate:  domain.FormatDate(p.ClosingDate),
		ManagerNRIC:  p.ManagerNRIC,
		OfficerSlots: p.OfficerSlots,
		Visible:      p.Visible,
	}
}

// ============================================================
// Officer registrations
// ============================================================

// OfficerRegistration represents an officer's request to administer a project.
// APPROVED registrations are the project's assigned officer set.
type OfficerRegistration struct {
	ID          uint                      `gorm:"primaryKey" json:"id"`
	OfficerNRIC string                    `gorm:"size:9;index;not null" json:"officer_nric"`
	ProjectID   int                       `gorm:"index;not null" json:"project_id"`
	Status      domain.RegistrationStatus `gorm:"size:20;default:'PENDING'" json:"status"`
	CreatedAt   time.Time                 `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time                 `gorm:"autoUpdateTime" json:"updated_at"`
}

func (OfficerRegistration) TableName() string {
	return "officer_registrations"
}

// ============================================================
// Enquiries
// ============================================================

// Enquiry represents a free-text enquiry about a project
type Enquiry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserNRIC  string    `gorm:"size:9;index;not null" json:"user_nric"`
	ProjectID int       `gorm:"index;not null" json:"project_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Response  string    `gorm:"type:text" json:"response"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Enquiry) TableName() string {
	return "enquiries"
}

// ============================================================
// Auth
// ============================================================

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Project{},
		&OfficerRegistration{},
		&Enquiry{},
		&RefreshToken{},
	)
}
