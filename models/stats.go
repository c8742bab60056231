package models

// Period is the granularity of a time series
type Period string

// Supported periods
const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Valid reports whether p is a supported period
func (p Period) Valid() bool {
	return p == PeriodDay || p == PeriodWeek || p == PeriodMonth
}

// StatusCounts holds one count per status. The summary uses camelCase keys.
type StatusCounts struct {
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
	Rejected   int64 `json:"rejected"`
}

// SummaryStats is the dashboard headline
type SummaryStats struct {
	TotalReports                 int64        `json:"totalReports"`
	ByStatus                     StatusCounts `json:"byStatus"`
	ResolutionRate               float64      `json:"resolutionRate"`
	AvgResolutionTimeHours       float64      `json:"avgResolutionTimeHours"`
	MedianResolutionTimeHours    float64      `json:"medianResolutionTimeHours"`
	AvgFirstResponseTimeHours    float64      `json:"avgFirstResponseTimeHours"`
	MedianFirstResponseTimeHours float64      `json:"medianFirstResponseTimeHours"`
}

// CategoryCount is one row of the category breakdown
type CategoryCount struct {
	Category Category `json:"category"`
	Count    int64    `json:"count"`
}

// StatusCount is one row of the status breakdown
type StatusCount struct {
	Status Status `json:"status"`
	Count  int64  `json:"count"`
}

// DateBucket is one point of a time series, ByStatus is keyed by status value
type DateBucket struct {
	Date     string           `json:"date"`
	Total    int64            `json:"total"`
	ByStatus map[Status]int64 `json:"byStatus"`
}

// DateStats is a sparse time series, buckets without reports are omitted
type DateStats struct {
	Period Period       `json:"period"`
	Data   []DateBucket `json:"data"`
}

// GroupCount is a raw aggregation row: a field value and its document count
type GroupCount struct {
	Key   string `bson:"_id"`
	Count int64  `bson:"count"`
}
