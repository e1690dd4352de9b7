package ledgersdk

import "time"

// Auth

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse is issued on login and refresh. ExpiresIn counts seconds of
// access token lifetime.
type TokenResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"`
}

type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

// Categories

type CategoryRequest struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Color string `json:"color,omitempty"`
}

type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Transactions

type TransactionRequest struct {
	CategoryID  *string `json:"category_id,omitempty"`
	Description string  `json:"description"`
	AmountCents int64   `json:"amount_cents"`
	Kind        string  `json:"kind"`
	OccurredOn  string  `json:"occurred_on"` // "YYYY-MM-DD"
}

type TransactionResponse struct {
	ID          string    `json:"id"`
	CategoryID  *string   `json:"category_id,omitempty"`
	Description string    `json:"description"`
	AmountCents int64     `json:"amount_cents"`
	Kind        string    `json:"kind"`
	OccurredOn  string    `json:"occurred_on"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TransactionListOptions narrows ListTransactions. Zero values mean "any".
type TransactionListOptions struct {
	Month      string
	Kind       string
	CategoryID string
}

type SummaryResponse struct {
	Month        string `json:"month"`
	IncomeCents  int64  `json:"income_cents"`
	ExpenseCents int64  `json:"expense_cents"`
	NetCents     int64  `json:"net_cents"`
}

// Goals

type GoalRequest struct {
	Name                string `json:"name"`
	TargetCents         int64  `json:"target_cents"`
	MonthlyReserveCents int64  `json:"monthly_reserve_cents"`
}

type GoalResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	TargetCents         int64     `json:"target_cents"`
	MonthlyReserveCents int64     `json:"monthly_reserve_cents"`
	SavedCents          int64     `json:"saved_cents"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type ReserveRequest struct {
	Month      string `json:"month"` // "YYYY-MM"
	SavedCents int64  `json:"saved_cents"`
}

type ReserveResponse struct {
	ID           string    `json:"id"`
	GoalID       string    `json:"goal_id"`
	Month        string    `json:"month"`
	PlannedCents int64     `json:"planned_cents"`
	SavedCents   int64     `json:"saved_cents"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Installments

type InstallmentRequest struct {
	Description   string  `json:"description"`
	TotalCents    int64   `json:"total_cents"`
	MonthsTotal   int     `json:"months_total"`
	FirstDueMonth string  `json:"first_due_month"` // "YYYY-MM"
	CategoryID    *string `json:"category_id,omitempty"`
}

type InstallmentResponse struct {
	ID            string    `json:"id"`
	Description   string    `json:"description"`
	TotalCents    int64     `json:"total_cents"`
	MonthsTotal   int       `json:"months_total"`
	MonthsPaid    int       `json:"months_paid"`
	FirstDueMonth string    `json:"first_due_month"`
	CategoryID    *string   `json:"category_id,omitempty"`
	Settled       bool      `json:"settled"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Notifications

type NotificationResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Health

type HealthChecks struct {
	Database string `json:"database,omitempty"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
