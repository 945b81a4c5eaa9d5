package health

type Response struct {
	Status         string `json:"status"`
	Service        string `json:"service"`
	Version        string `json:"version,omitempty"`
	UptimeSeconds  int64  `json:"uptimeSeconds"`
	CacheEntries   *int   `json:"cacheEntries,omitempty"`
	ActiveSessions int    `json:"activeSessions"`
}

type PingResponse struct {
	Message string `json:"message"`
}
