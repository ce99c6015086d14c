package domain

import "time"

// Category classifies transactions of a matching type. A category either
// belongs to one user or is a shared default (UserID nil, IsDefault true).
type Category struct {
	CategoryID int64           `json:"id"`
	UserID     *int64          `json:"userID,omitempty"`
	Name       string          `json:"name"`
	Type       TransactionType `json:"type"`
	Color      string          `json:"color"`
	Icon       string          `json:"icon"`
	IsDefault  bool            `json:"isDefault"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}
