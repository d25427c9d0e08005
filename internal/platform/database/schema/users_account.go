package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table         string
	ID            string
	Name          string
	Email         string
	Password      string
	Level         string
	Streak        string
	TotalWorkouts string
	CreatedAt     string
	UpdatedAt     string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:         "users.account",
	ID:            "id",
	Name:          "name",
	Email:         "email",
	Password:      "passwordhash",
	Level:         "level",
	Streak:        "streak",
	TotalWorkouts: "totalworkouts",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Email, t.Password, t.Level, t.Streak,
		t.TotalWorkouts, t.CreatedAt, t.UpdatedAt,
	}
}
