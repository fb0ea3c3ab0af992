package apisdk

// Profile is a public user profile as served by getUser and searchUsers.
type Profile struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	Icon        string `json:"userIcon"`
	Description string `json:"description"`
	JoinDate    string `json:"joinDate"`
	MocCount    *int64 `json:"mocs,omitempty"`
}

// MocFields carries the content of a MOC for create and edit operations.
type MocFields struct {
	Title   string
	Text    string
	Thumb   string
	Privacy bool
	Filter  string
}

// HealthResponse is the body of the livez and readyz probes.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
