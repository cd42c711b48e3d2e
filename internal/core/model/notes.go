package model

// ConnectionNote is an LLM research note attached to one connection.
type ConnectionNote struct {
	Match1 string `json:"match1"`
	Match2 string `json:"match2"`
	Note   string `json:"note"`
}

// ClusterSummary is an LLM summary of one match cluster.
type ClusterSummary struct {
	Members []string `json:"members"`
	Summary string   `json:"summary"`
}
