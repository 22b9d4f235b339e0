package models

type Agent struct {
	ID        int64  `json:"id"`
	AgentName string `json:"agent_name"`
	Prompt    string `json:"prompt"`
	ImageURL  string `json:"image_url"`
}
