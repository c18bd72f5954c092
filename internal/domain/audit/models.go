package audit

import (
	"encoding/json"
	"time"
)

const (
	ActionSaleCreate        = "sale.create"
	ActionPurchaseCreate    = "purchase.create"
	ActionTransactionCreate = "transaction.create"
	ActionExpenseCreate     = "expense.create"
	ActionEmployeeCreate    = "employee.create"
	ActionAttendanceMark    = "attendance.mark"
	ActionAdvanceCreate     = "salary_payment.create"
)

type Event struct {
	ID         string          `json:"id"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	RequestID  string          `json:"requestId"`
	IP         string          `json:"ip"`
	CreatedAt  time.Time       `json:"createdAt"`
	After      json.RawMessage `json:"after,omitempty"`
}

type Filter struct {
	Action     string
	EntityType string
}
