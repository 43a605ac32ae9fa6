package models

// HealthCheckResponse returns the health check response struct
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}

// Response is the envelope used by most mutating routes
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Warning string      `json:"warning,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// PagedUsersResponse is the listing envelope for the users collection
type PagedUsersResponse struct {
	Users       []User `json:"users"`
	TotalUsers  int64  `json:"totalUsers"`
	TotalPages  int64  `json:"totalPages"`
	CurrentPage int64  `json:"currentPage"`
}

// PagedCasesResponse is the listing envelope for the incident collection
type PagedCasesResponse struct {
	Cases       []Incident `json:"cases"`
	TotalCases  int64      `json:"totalCases"`
	TotalPages  int64      `json:"totalPages"`
	CurrentPage int64      `json:"currentPage"`
}

// PagedTicketsResponse is the listing envelope for the helpdesk collection
type PagedTicketsResponse struct {
	Tickets      []HelpDeskTicket `json:"tickets"`
	TotalTickets int64            `json:"totalTickets"`
	TotalPages   int64            `json:"totalPages"`
	CurrentPage  int64            `json:"currentPage"`
}

// AdminStatsSummary carries the headline counts for the admin dashboard
type AdminStatsSummary struct {
	TotalReports    int64 `json:"totalReports"`
	PendingReview   int64 `json:"pendingReview"`
	CasesResolved   int64 `json:"casesResolved"`
	RejectedCases   int64 `json:"rejectedCases"`
	CriticalThreats int64 `json:"criticalThreats"`
}

// IncidentTypeCount is one bucket of the incident type distribution
type IncidentTypeCount struct {
	Name  string `json:"name" bson:"name"`
	Value int32  `json:"value" bson:"value"`
}

// AdminStatsResponse is the admin-stats payload
type AdminStatsResponse struct {
	Success      bool                `json:"success"`
	Summary      AdminStatsSummary   `json:"summary"`
	Distribution []IncidentTypeCount `json:"distribution"`
}
