package domain

import "time"

// AccountRole discriminates consumer and operator accounts stored in the
// same table.
type AccountRole string

const (
	AccountRoleConsumer AccountRole = "consumer"
	AccountRoleOperator AccountRole = "operator"
)

// OperatorType classifies operator accounts. Empty for consumers.
type OperatorType string

const (
	OperatorTypePublic  OperatorType = "public"
	OperatorTypePrivate OperatorType = "private"
)

// Account represents a consumer or operator of the charging network.
type Account struct {
	ID           string       `json:"id" gorm:"primaryKey"`
	Name         string       `json:"name"`
	Email        string       `json:"email" gorm:"uniqueIndex"`
	Password     string       `json:"-"` // Hashed password
	Role         AccountRole  `json:"role"`
	OperatorType OperatorType `json:"operator_type,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// IsConsumer reports whether the account may hold reservations and a wallet.
func (a *Account) IsConsumer() bool {
	return a.Role == AccountRoleConsumer
}

// IsOperator reports whether the account may manage stations.
func (a *Account) IsOperator() bool {
	return a.Role == AccountRoleOperator
}
