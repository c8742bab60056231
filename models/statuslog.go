package models

import "time"

// StatusLog is one immutable entry of a report's status history
type StatusLog struct {
	ID        string    `bson:"_id" json:"id"`
	ReportID  string    `bson:"reportId" json:"reportId"`
	Status    Status    `bson:"status" json:"status"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	ChangedBy string    `bson:"changedBy" json:"changedBy"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// StatusLogResponse is a history entry with its author attached
type StatusLogResponse struct {
	ID        string    `json:"id"`
	ReportID  string    `json:"reportId"`
	Status    Status    `json:"status"`
	Comment   string    `json:"comment,omitempty"`
	ChangedBy *UserInfo `json:"changedBy"`
	CreatedAt time.Time `json:"createdAt"`
}
