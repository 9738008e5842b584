package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SummaryPeriod string

const (
	PeriodDaily   SummaryPeriod = "daily"
	PeriodWeekly  SummaryPeriod = "weekly"
	PeriodMonthly SummaryPeriod = "monthly"
	PeriodYearly  SummaryPeriod = "yearly"
)

func ValidSummaryPeriod(p SummaryPeriod) bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// AuditSummary partitions transaction totals by review status: the grand
// totals, the audited (approved) slice and the unapproved (pending) slice.
// Empty partitions are zero decimals, never null.
type AuditSummary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`

	AuditedIncome  decimal.Decimal `json:"audited_income"`
	AuditedExpense decimal.Decimal `json:"audited_expense"`
	AuditedBalance decimal.Decimal `json:"audited_balance"`

	UnapprovedIncome  decimal.Decimal `json:"unapproved_income"`
	UnapprovedExpense decimal.Decimal `json:"unapproved_expense"`
	UnapprovedBalance decimal.Decimal `json:"unapproved_balance"`

	LastUpdated time.Time `json:"last_updated"`
}

// GroupSummary rolls approved transactions up per group. CollectedAmount is
// the approved income; RemainingAmount is how far the group target is from
// being met, floored at zero.
type GroupSummary struct {
	GroupID         int32            `json:"group_id"`
	GroupName       string           `json:"group_name"`
	TargetAmount    *decimal.Decimal `json:"target_amount,omitempty"`
	TotalIncome     decimal.Decimal  `json:"total_income"`
	TotalExpense    decimal.Decimal  `json:"total_expense"`
	Balance         decimal.Decimal  `json:"balance"`
	CollectedAmount decimal.Decimal  `json:"collected_amount"`
	RemainingAmount decimal.Decimal  `json:"remaining_amount"`
}

// PeriodBucket is one time bucket of the period rollup.
type PeriodBucket struct {
	Bucket        time.Time       `json:"bucket"`
	Count         int64           `json:"count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	IncomeAmount  decimal.Decimal `json:"income_amount"`
	ExpenseAmount decimal.Decimal `json:"expense_amount"`
}

// SummaryReport is the full aggregation response: overall totals, per-group
// rollups and (when a period was requested) time buckets.
type SummaryReport struct {
	Overall AuditSummary   `json:"overall_summary"`
	Groups  []GroupSummary `json:"group_wise_summary"`
	Buckets []PeriodBucket `json:"period_summary,omitempty"`
}
