package transport

import "time"

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// TokenResponse is the body returned by register, login and refresh.
// RefreshToken is only present on login.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	Username     string `json:"username"`
	Role         string `json:"role"`
}

type WetLeavesRequest struct {
	RetrievalDate time.Time `json:"retrieval_date"`
	Weight        float64   `json:"weight"`
}

type PatchWetLeavesRequest struct {
	RetrievalDate *time.Time `json:"retrieval_date"`
	Weight        *float64   `json:"weight"`
}

type DryLeavesRequest struct {
	ExpDate time.Time `json:"exp_date"`
	Weight  float64   `json:"weight"`
}

type PatchDryLeavesRequest struct {
	ExpDate *time.Time `json:"exp_date"`
	Weight  *float64   `json:"weight"`
}

type FlourRequest struct {
	FinishTime time.Time `json:"finish_time"`
	Weight     float64   `json:"weight"`
}

type PatchFlourRequest struct {
	FinishTime *time.Time `json:"finish_time"`
	Weight     *float64   `json:"weight"`
}

type ShippingRequest struct {
	DepartureDate time.Time `json:"departure_date"`
	ExpeditionID  uint      `json:"expedition_id"`
}

type CheckpointRequest struct {
	ArrivalDate   time.Time `json:"arrival_date"`
	TotalWeight   float64   `json:"total_weight"`
	TotalPackages int       `json:"total_packages"`
	ShippingID    uint      `json:"shipping_id"`
}

type PatchCheckpointRequest struct {
	ArrivalDate   *time.Time `json:"arrival_date"`
	TotalWeight   *float64   `json:"total_weight"`
	TotalPackages *int       `json:"total_packages"`
}

type ExpeditionRequest struct {
	Name string `json:"name"`
}
