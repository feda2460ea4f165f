package entities

// Staff is a dispatch-desk user allowed to log in to the dashboard.
type Staff struct {
	ID           uint64 `json:"id"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	PasswordHash string `json:"-"`
}
