package models

// HealthCheckResponse returns the health check response struct
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}

// ServerStats is the response body of the owner stats endpoint.
type ServerStats struct {
	ActiveSessions int `json:"activeSessions"`
	HistoryLength  int `json:"historyLength"`
	BannedOrigins  int `json:"bannedOrigins"`
	ActiveTimeouts int `json:"activeTimeouts"`
}
