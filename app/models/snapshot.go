package models

// Snapshot is the whole data set as one document. It is the unit of cache
// persistence, remote push, backup export and wholesale replacement.
type Snapshot struct {
	Customers      []Customer      `json:"customers"`
	Materials      []Material      `json:"materials"`
	Products       []Product       `json:"products"`
	Orders         []Order         `json:"orders"`
	Purchases      []Purchase      `json:"purchases"`
	ProductionLogs []ProductionLog `json:"productionLogs,omitempty"`
}

// SalesInsight is the output of the external insight collaborator.
type SalesInsight struct {
	Summary     string   `json:"summary"`
	Suggestions []string `json:"suggestions"`
}
