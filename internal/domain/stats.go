package domain

// Stats are the dashboard counters.
type Stats struct {
	Projects       int `json:"projects"`
	TeamMembers    int `json:"teamMembers"`
	Messages       int `json:"messages"`
	UnreadMessages int `json:"unreadMessages"`
}
