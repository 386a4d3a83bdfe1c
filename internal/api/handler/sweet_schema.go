package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createSweetRequest struct {
	Name     string  `json:"name"     validate:"required"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price"    validate:"required,gt=0"`
	Quantity int64   `json:"quantity" validate:"gte=0"`
}

// updateSweetRequest carries a partial update; absent fields keep their prior
// value, so every field is a pointer.
type updateSweetRequest struct {
	Name     *string  `json:"name"     validate:"omitempty,min=1"`
	Category *string  `json:"category" validate:"omitempty,min=1"`
	Price    *float64 `json:"price"    validate:"omitempty,gt=0"`
	Quantity *int64   `json:"quantity" validate:"omitempty,gte=0"`
}

type restockRequest struct {
	Amount int64 `json:"amount"`
}

// --- Response types ---

// sweetResponse is the transport view of a catalog entry. Price is rendered
// as a decimal amount; internally it is integer cents.
type sweetResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
