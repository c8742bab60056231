package models

import "time"

// Category is the kind of issue a citizen reports
type Category string

// Report categories in declaration order
const (
	CategoryInfrastructure Category = "infrastructure"
	CategoryEnvironment    Category = "environment"
	CategorySafety         Category = "safety"
	CategoryOther          Category = "other"
)

// Categories lists every category in declaration order
var Categories = []Category{CategoryInfrastructure, CategoryEnvironment, CategorySafety, CategoryOther}

// Status is the workflow state of a report
type Status string

// Report statuses in declaration order
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusRejected   Status = "rejected"
)

// Statuses lists every status in declaration order
var Statuses = []Status{StatusPending, StatusInProgress, StatusResolved, StatusRejected}

// Valid reports whether c is one of the declared categories
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Valid reports whether s is one of the declared statuses
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Location is a coordinate pair, X is the longitude and Y the latitude
type Location struct {
	X float64 `bson:"x" json:"x" validate:"gte=-180,lte=180"`
	Y float64 `bson:"y" json:"y" validate:"gte=-90,lte=90"`
}

// Report is a citizen-filed issue as persisted in the reports collection.
// ImageURL and MediaURLs hold storage references, never resolved URLs.
type Report struct {
	ID          string    `bson:"_id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Category    Category  `bson:"category" json:"category"`
	ImageURL    string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Location    Location  `bson:"location" json:"location"`
	StreetName  string    `bson:"streetName,omitempty" json:"streetName,omitempty"`
	Status      Status    `bson:"status" json:"status"`
	CreatedBy   string    `bson:"createdBy" json:"createdBy"`
	MediaURLs   []string  `bson:"mediaUrls" json:"mediaUrls"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CreateReportRequest is the body accepted when filing a report. It has no
// status field, new reports always start pending.
type CreateReportRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Category    Category  `json:"category" validate:"required,category"`
	Location    *Location `json:"location" validate:"required"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	MediaURLs   []string  `json:"mediaUrls,omitempty" validate:"omitempty,dive,required"`
	StreetName  string    `json:"streetName,omitempty"`
}

// UpdateReportRequest carries a partial update, nil fields are left unchanged.
// An empty, non-nil MediaURLs clears the list. There is no status field, status
// only moves through UpdateStatusRequest.
type UpdateReportRequest struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,min=1"`
	Description *string   `json:"description,omitempty" validate:"omitempty,min=1"`
	Category    *Category `json:"category,omitempty" validate:"omitempty,category"`
	Location    *Location `json:"location,omitempty" validate:"omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	MediaURLs   []string  `json:"mediaUrls,omitempty" validate:"omitempty,dive,required"`
	StreetName  *string   `json:"streetName,omitempty"`
}

// UpdateStatusRequest is the body of an admin status transition
type UpdateStatusRequest struct {
	Status  Status `json:"status" validate:"required,status"`
	Comment string `json:"comment,omitempty"`
}

// ListFilter narrows a report listing, empty fields match everything
type ListFilter struct {
	Status   Status
	Category Category
}

// UserInfo is the public summary of a user attached to responses
type UserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// ReportResponse is the read-time projection of a report with resolved media URLs
type ReportResponse struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Category    Category            `json:"category"`
	ImageURL    string              `json:"imageUrl,omitempty"`
	MediaURLs   []string            `json:"mediaUrls"`
	Location    Location            `json:"location"`
	StreetName  string              `json:"streetName,omitempty"`
	Status      Status              `json:"status"`
	CreatedBy   *UserInfo           `json:"createdBy"`
	StatusLogs  []StatusLogResponse `json:"statusLogs,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// UploadResponse is returned by the media upload endpoint. FileURL is ready to
// display, Reference is the value to store in imageUrl or mediaUrls.
type UploadResponse struct {
	FileURL   string `json:"fileUrl"`
	Reference string `json:"reference"`
}
