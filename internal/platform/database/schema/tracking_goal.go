package schema

// TrackingGoalTable represents the 'tracking.goal' table
type TrackingGoalTable struct {
	Table     string
	ID        string
	UserID    string
	Name      string
	Target    string
	Current   string
	Metric    string
	Deadline  string
	CreatedAt string
	UpdatedAt string
}

// TrackingGoal is the schema definition for tracking.goal
var TrackingGoal = TrackingGoalTable{
	Table:     "tracking.goal",
	ID:        "id",
	UserID:    "userid",
	Name:      "name",
	Target:    "target",
	Current:   "current",
	Metric:    "metric",
	Deadline:  "deadline",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t TrackingGoalTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.Name, t.Target, t.Current, t.Metric, t.Deadline, t.CreatedAt, t.UpdatedAt,
	}
}
