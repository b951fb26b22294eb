package models

import (
	"database/sql"
	"time"
)

type Role string

const (
	RoleUser    Role = "USER"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

var Roles = []Role{RoleUser, RoleManager, RoleAdmin}

type PostType string

const (
	PostTypeArticle PostType = "ARTICLE"
	PostTypeJob     PostType = "JOB"
)

type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "PENDING"
	StatusReviewed    ApplicationStatus = "REVIEWED"
	StatusShortlisted ApplicationStatus = "SHORTLISTED"
	StatusRejected    ApplicationStatus = "REJECTED"
	StatusHired       ApplicationStatus = "HIRED"
)

// ApplicationStatuses is the flat status enumeration; any status may follow any other.
var ApplicationStatuses = []ApplicationStatus{
	StatusPending,
	StatusReviewed,
	StatusShortlisted,
	StatusRejected,
	StatusHired,
}

func (s ApplicationStatus) Valid() bool {
	for _, status := range ApplicationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// UserView is the identity decoded from the bearer token, used for display only.
type UserView struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

type Author struct {
	ID        int64  `json:"id,omitempty"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// DisplayName falls back to the username when no real name is known.
func (a *Author) DisplayName() string {
	if a == nil {
		return "Anonymous"
	}
	if a.FirstName != "" || a.LastName != "" {
		return a.FirstName + " " + a.LastName
	}
	if a.Username != "" {
		return a.Username
	}
	return "Anonymous"
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Post struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	Type         PostType  `json:"type"`
	CategoryID   *int64    `json:"categoryId,omitempty"`
	CategoryName string    `json:"categoryName,omitempty"`
	Author       *Author   `json:"author,omitempty"`
	CreatedAt    Timestamp `json:"createdAt"`
	Likes        int       `json:"likes"`
	Location     string    `json:"location,omitempty"`
	Contract     string    `json:"contract,omitempty"`
}

func (p Post) IsJob() bool {
	return p.Type == PostTypeJob
}

// PostRequest is the body of POST/PUT /api/posts.
type PostRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	ImageURL   string   `json:"imageUrl,omitempty"`
	Type       PostType `json:"type"`
	CategoryID *int64   `json:"categoryId,omitempty"`
	Location   string   `json:"location,omitempty"`
	Contract   string   `json:"contract,omitempty"`
}

type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Author    *Author   `json:"author,omitempty"`
	CreatedAt Timestamp `json:"createdAt"`
}

type Application struct {
	ID          int64             `json:"id"`
	FullName    string            `json:"fullName"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone"`
	CoverLetter string            `json:"coverLetter"`
	CVBase64    string            `json:"cvBase64,omitempty"`
	CVFileName  string            `json:"cvFileName,omitempty"`
	JobPostID   int64             `json:"jobPostId"`
	JobTitle    string            `json:"jobTitle,omitempty"`
	Status      ApplicationStatus `json:"status"`
	AppliedAt   Timestamp         `json:"appliedAt"`
}

// ApplicationRequest is the body of POST /api/applications.
type ApplicationRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CoverLetter string `json:"coverLetter"`
	CVBase64    string `json:"cvBase64"`
	CVFileName  string `json:"cvFileName"`
	JobPostID   int64  `json:"jobPostId"`
}

// ApplicationStats is served by the aggregate endpoint that replaces per-job counting.
type ApplicationStats struct {
	Total   int           `json:"total"`
	Pending int           `json:"pending"`
	Recent  []Application `json:"recent"`
}

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Street    string    `json:"street"`
	HouseNr   string    `json:"houseNr"`
	City      string    `json:"city"`
	Zip       string    `json:"zip"`
	CreatedAt Timestamp `json:"createdAt"`
}

func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl"`
	City      string `json:"city"`
	Street    string `json:"street"`
	HouseNr   string `json:"houseNr"`
	Zip       string `json:"zip"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterRequest keeps the lowercase keys the auth endpoint expects.
type RegisterRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

type SubscriptionStatus struct {
	Email      string `json:"email"`
	Subscribed bool   `json:"subscribed"`
	Verified   bool   `json:"verified"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type DashboardStats struct {
	TotalUsers          int
	TotalArticles       int
	TotalJobs           int
	TotalApplications   int
	PendingApplications int
	RecentApplications  []Application
}

// SessionRecord is one row of the local sessions table.
type SessionRecord struct {
	SessionID string         `db:"session_id"`
	Token     sql.NullString `db:"token"`
	UserData  sql.NullString `db:"user_data"`
	FlashKind sql.NullString `db:"flash_kind"`
	FlashText sql.NullString `db:"flash_text"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}
