package model

// LogMessage is one matched log entry as returned to clients.
// Fields are copied from the backend hit without transformation.
type LogMessage struct {
	Message   string `json:"message"`
	Host      string `json:"host"`
	Index     string `json:"index"`     // source index the hit came from
	Timestamp string `json:"timestamp"` // backend-native textual form
	ID        string `json:"id"`        // backend document id
}

// SearchResult is the response body for a log search.
// Total may exceed len(Messages) when the size limit truncates the hits.
type SearchResult struct {
	Messages []LogMessage `json:"messages"`
	Total    uint64       `json:"total"`
}

// HealthStatus is the response body of the status endpoint.
type HealthStatus struct {
	Status string `json:"status"`
}

// Healthy is the only status the endpoint reports; failures are errors.
var Healthy = HealthStatus{Status: "healthy"}
