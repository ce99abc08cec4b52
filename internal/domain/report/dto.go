package report

import (
	"time"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/payroll"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/worksheet"
	"github.com/shopspring/decimal"
)

// ========================================
// ADMIN SUMMARY
// ========================================

type AdminSummary struct {
	TotalRequests        int                 `json:"totalRequests"`
	TotalPaid            int                 `json:"totalPaid"`
	TotalPending         int                 `json:"totalPending"`
	TotalMoneySpent      decimal.Decimal     `json:"totalMoneySpent"`
	TodaySpent           decimal.Decimal     `json:"todaySpent"`
	WeekSpent            decimal.Decimal     `json:"weekSpent"`
	MonthSpent           decimal.Decimal     `json:"monthSpent"`
	YearSpent            decimal.Decimal     `json:"yearSpent"`
	PaidRequestsPerMonth []PeriodTotal       `json:"paidRequestsPerMonth"`
	LatestTransactions   []LatestTransaction `json:"latestTransactions"`
}

type PeriodTotal struct {
	Month string          `json:"month"`
	Year  string          `json:"year"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

type LatestTransaction struct {
	TransactionID string          `json:"transactionId"`
	EmployeeName  string          `json:"employeeName"`
	Amount        decimal.Decimal `json:"amount"`
	PaidAt        time.Time       `json:"paid_at"`
	PaymentMethod string          `json:"paymentMethod"`
}

// ========================================
// HR SUMMARY
// ========================================

type HRSummary struct {
	TotalRequests   int               `json:"totalRequests"`
	TotalPaid       int               `json:"totalPaid"`
	TotalPending    int               `json:"totalPending"`
	PaidTotalSalary decimal.Decimal   `json:"paidTotalSalary"`
	TodayRequests   int               `json:"todayRequests"`
	WeeklyRequests  int               `json:"weeklyRequests"`
	MonthlyRequests int               `json:"monthlyRequests"`
	YearlyRequests  int               `json:"yearlyRequests"`
	LatestRequests  []payroll.PayRoll `json:"latestRequests"`
}

// ========================================
// EMPLOYEE DASHBOARD
// ========================================

type EmployeeDashboard struct {
	TotalHours   float64         `json:"totalHours"`
	WorkByTask   []TaskHours     `json:"workByTask"`
	TotalPaid    decimal.Decimal `json:"totalPaid"`
	LastPaidDate *time.Time      `json:"lastPaidDate"`
	Payments     []RecentPayment `json:"payments"`
}

type TaskHours struct {
	Task       worksheet.Task `json:"task"`
	TotalHours float64        `json:"totalHours"`
}

type RecentPayment struct {
	Amount      decimal.Decimal `json:"amount"`
	PayForMonth string          `json:"pay_for_month"`
	PayForYear  string          `json:"pay_for_year"`
	PaidAt      time.Time       `json:"paid_at"`
}
