package models

// AuthResponse is the body returned by the register and login endpoints:
// a signed session token plus the public projection of the account.
type AuthResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

// PublicUser is the projection of a User safe to return to clients.
// It never carries the password hash or the Google provider id.
type PublicUser struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Picture     string      `json:"picture,omitempty"`
	KPISettings KPISettings `json:"kpiSettings"`
	Stats       Stats       `json:"stats"`
}

// Public returns the client-safe projection of the user.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:          u.UserID,
		Name:        u.Name,
		Email:       u.Email,
		Picture:     u.Picture,
		KPISettings: u.KPISettings,
		Stats:       u.Stats,
	}
}

// ProgressHorizon reports progress against the target for a single time
// horizon (daily, weekly or monthly).
type ProgressHorizon struct {
	Current int `json:"current"`
	Target  int `json:"target"`

	// Percentage is min(100, current/target*100). A zero target yields 0
	// rather than propagating a division by zero.
	Percentage float64 `json:"percentage"`
}

// Progress groups the three progress horizons derived from the daily target.
// The weekly target is daily*7 and the monthly target daily*30 (a fixed
// 30-day approximation, not the calendar-month length).
type Progress struct {
	Daily   ProgressHorizon `json:"daily"`
	Weekly  ProgressHorizon `json:"weekly"`
	Monthly ProgressHorizon `json:"monthly"`
}

// StatsResponse is the body of GET /api/users/stats: the freshly recomputed
// counter cache, the user's KPI settings, and the derived progress report.
type StatsResponse struct {
	Stats       Stats       `json:"stats"`
	KPISettings KPISettings `json:"kpiSettings"`
	Progress    Progress    `json:"progress"`
}

// KPISettingsResponse is the body of PUT /api/users/kpi-settings.
type KPISettingsResponse struct {
	Message     string      `json:"message"`
	KPISettings KPISettings `json:"kpiSettings"`
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the uniform error body returned by the API. Details is
// populated only when the server runs in development mode.
type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
	Details string   `json:"details,omitempty"`
}
