package model

// Connection records two resolved DNA matches that share at least one
// ancestor in the tree. Match1Index and Match2Index are the rows of the two
// matches in the analyzed match list.
type Connection struct {
	Match1          DnaMatch      `json:"match1"`
	Match2          DnaMatch      `json:"match2"`
	Match1Index     int           `json:"match1Index"`
	Match2Index     int           `json:"match2Index"`
	Person1ID       string        `json:"person1Id"`
	Person2ID       string        `json:"person2Id"`
	CommonAncestors []*Individual `json:"commonAncestors"`
}

// CorrelationResult is produced fresh by every analysis and never mutated
// afterwards.
type CorrelationResult struct {
	Connections     []Connection  `json:"matchConnections"`
	CommonAncestors []*Individual `json:"commonAncestors"`
	UnmatchedNames  []string      `json:"unmatchedDnaNames"`
}

func NewCorrelationResult() *CorrelationResult {
	return &CorrelationResult{
		Connections:     []Connection{},
		CommonAncestors: []*Individual{},
		UnmatchedNames:  []string{},
	}
}

// Cluster is a group of DNA matches linked through shared ancestry.
type Cluster struct {
	Members []string `json:"members"`
	// Ancestors is the union of the ancestors shared inside the cluster.
	Ancestors []string `json:"ancestors"`
}
