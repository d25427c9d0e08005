package schema

// TrackingSessionTable represents the 'tracking.session' table
type TrackingSessionTable struct {
	Table     string
	ID        string
	UserID    string
	Date      string
	Activity  string
	Duration  string
	Intensity string
	Burned    string
	Sets      string
	Reps      string
	Weight    string
	Distance  string
	Notes     string
	CreatedAt string
	UpdatedAt string
}

// TrackingSession is the schema definition for tracking.session
var TrackingSession = TrackingSessionTable{
	Table:     "tracking.session",
	ID:        "id",
	UserID:    "userid",
	Date:      "date",
	Activity:  "activity",
	Duration:  "duration",
	Intensity: "intensity",
	Burned:    "burned",
	Sets:      "sets",
	Reps:      "reps",
	Weight:    "weight",
	Distance:  "distance",
	Notes:     "notes",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t TrackingSessionTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.Date, t.Activity, t.Duration, t.Intensity, t.Burned,
		t.Sets, t.Reps, t.Weight, t.Distance, t.Notes, t.CreatedAt, t.UpdatedAt,
	}
}
