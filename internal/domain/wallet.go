package domain

import "time"

// Wallet is a consumer's prepaid balance. Balance never goes negative.
type Wallet struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	AccountID string    `json:"account_id" gorm:"uniqueIndex"`
	Balance   float64   `json:"balance"`
	Currency  string    `json:"currency"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WalletTransaction is one ledger entry. Balance records the wallet
// balance after the entry was applied.
type WalletTransaction struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	WalletID    string    `json:"wallet_id" gorm:"index"`
	AccountID   string    `json:"account_id" gorm:"index"`
	Type        string    `json:"type"` // "credit" or "debit"
	Amount      float64   `json:"amount"`
	Balance     float64   `json:"balance"`
	Description string    `json:"description"`
	ReferenceID string    `json:"reference_id,omitempty"` // reservation or session id
	CreatedAt   time.Time `json:"created_at"`
}
