package domain

import "time"

// Entities mirror the federation API. The console only caches them: it never
// owns their lifecycle, so every field is a plain record of what the server
// returned.

type RequestStatus string

const (
	StatusPending  RequestStatus = "PENDING"
	StatusApproved RequestStatus = "APPROVED"
	StatusRejected RequestStatus = "REJECTED"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderAny    Gender = "ANY"
)

type RoleRef struct {
	ID   int64 `json:"id"`
	Name Role  `json:"name"`
}

type User struct {
	ID            int64     `json:"id"`
	Firstname     string    `json:"firstname"`
	Lastname      string    `json:"lastname"`
	Patronymic    string    `json:"patronymic"`
	Email         string    `json:"email,omitempty"`
	EmailVerified bool      `json:"emailVerified,omitempty"`
	Role          RoleRef   `json:"role"`
	Region        *Region   `json:"region,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

type Region struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	ContactEmail string    `json:"contactEmail"`
	User         *User     `json:"user,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

type Discipline struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type EventRequest struct {
	ID                int64         `json:"id"`
	BaseID            int64         `json:"baseId"`
	Status            RequestStatus `json:"status"`
	ModerationComment string        `json:"moderationComment,omitempty"`
	Name              string        `json:"name"`
	Gender            Gender        `json:"gender"`
	MinAge            int           `json:"minAge"`
	MaxAge            int           `json:"maxAge"`
	Location          string        `json:"location"`
	Disciplines       []Discipline  `json:"disciplines"`
	StartDate         string        `json:"startDate"`
	EndDate           string        `json:"endDate"`
	MaxParticipants   int           `json:"maxParticipants"`
	Region            *Region       `json:"region,omitempty"`
}

type Event struct {
	ID              int64         `json:"id"`
	Name            string        `json:"name"`
	Gender          Gender        `json:"gender"`
	MinAge          int           `json:"minAge"`
	MaxAge          int           `json:"maxAge"`
	Location        string        `json:"location"`
	Disciplines     []Discipline  `json:"disciplines"`
	StartDate       string        `json:"startDate"`
	EndDate         string        `json:"endDate"`
	MaxParticipants int           `json:"maxParticipants"`
	Region          *Region       `json:"region,omitempty"`
	Protocol        *ProtocolMeta `json:"eventProtocol,omitempty"`
}

type ProtocolMeta struct {
	ID               int64     `json:"id"`
	OriginalFileName string    `json:"originalFileName"`
	StoredFileName   string    `json:"storedFileName"`
	ContentType      string    `json:"contentType"`
	FileSize         int64     `json:"fileSize"`
	CreatedAt        time.Time `json:"createdAt"`
}

type Team struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Region      *Region   `json:"region,omitempty"`
	Members     []User    `json:"members"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

type Notification struct {
	ID          int64     `json:"id"`
	RecipientID int64     `json:"recipientId"`
	Content     string    `json:"content"`
	Type        string    `json:"type"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"createdAt"`
}

type RegionApplication struct {
	ID              int64         `json:"id"`
	RegionID        int64         `json:"regionId"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Status          RequestStatus `json:"status"`
	ResponseMessage string        `json:"responseMessage,omitempty"`
	CreatedAt       time.Time     `json:"createdAt,omitempty"`
}

// Page is the server's pagination envelope. It is ephemeral: the query cache
// reconstructs a merged Page per filter set as further pages arrive.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	Last          bool  `json:"last"`
}

// APIError is the uniform error envelope both the upstream API and this
// service speak.
type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}
