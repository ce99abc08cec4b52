package report

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/payroll"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/transaction"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/worksheet"
	"github.com/shopspring/decimal"
)

const LatestLimit = 5

// Windows are the UTC calendar boundaries summaries are counted from.
type Windows struct {
	Now   time.Time
	Today time.Time
	Week  time.Time
	Month time.Time
	Year  time.Time
}

func WindowsAt(now time.Time) Windows {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return Windows{
		Now:   now,
		Today: today,
		Week:  today.AddDate(0, 0, -7),
		Month: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		Year:  time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

type StatusCounts struct {
	Total   int
	Paid    int
	Pending int
}

func CountByStatus(payRolls []payroll.PayRoll) StatusCounts {
	var c StatusCounts
	for _, p := range payRolls {
		switch p.Status {
		case payroll.StatusPaid:
			c.Paid++
		case payroll.StatusPending:
			c.Pending++
		}
	}
	c.Total = c.Paid + c.Pending
	return c
}

func SumAmounts(txs []transaction.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txs {
		sum = sum.Add(t.Amount)
	}
	return sum
}

// SumSince sums the amounts paid inside [start, end].
func SumSince(txs []transaction.Transaction, start, end time.Time) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txs {
		if !t.PaidAt.Before(start) && !t.PaidAt.After(end) {
			sum = sum.Add(t.Amount)
		}
	}
	return sum
}

// GroupByPeriod totals transactions per paid-for month and year, ordered
// chronologically.
func GroupByPeriod(txs []transaction.Transaction) []PeriodTotal {
	type key struct{ month, year string }
	index := make(map[key]int)
	groups := make([]PeriodTotal, 0)

	for _, t := range txs {
		k := key{t.PayForMonth, t.PayForYear}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, PeriodTotal{Month: k.month, Year: k.year, Total: decimal.Zero})
		}
		groups[i].Total = groups[i].Total.Add(t.Amount)
		groups[i].Count++
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if c := comparePeriodPart(groups[i].Year, groups[j].Year, yearOrder); c != 0 {
			return c < 0
		}
		return comparePeriodPart(groups[i].Month, groups[j].Month, MonthOrder) < 0
	})
	return groups
}

var monthNames = []string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

// MonthOrder maps a month label to 1-12. It accepts numbers and English
// month names of any case, full or abbreviated. Unknown labels return 0.
func MonthOrder(month string) int {
	m := strings.ToUpper(strings.TrimSpace(month))
	if n, err := strconv.Atoi(m); err == nil {
		if n >= 1 && n <= 12 {
			return n
		}
		return 0
	}
	if len(m) < 3 {
		return 0
	}
	for i, name := range monthNames {
		if m[:3] == name {
			return i + 1
		}
	}
	return 0
}

func yearOrder(year string) int {
	n, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return 0
	}
	return n
}

// comparePeriodPart orders recognised values numerically ahead of
// unrecognised ones, which fall back to string order.
func comparePeriodPart(a, b string, order func(string) int) int {
	oa, ob := order(a), order(b)
	switch {
	case oa != 0 && ob != 0:
		return oa - ob
	case oa != 0:
		return -1
	case ob != 0:
		return 1
	}
	return strings.Compare(a, b)
}

func sortTransactionsByPaidAt(txs []transaction.Transaction) []transaction.Transaction {
	sorted := make([]transaction.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].PaidAt.Equal(sorted[j].PaidAt) {
			return sorted[i].PaidAt.After(sorted[j].PaidAt)
		}
		return sorted[i].ID > sorted[j].ID
	})
	return sorted
}

func LatestTransactions(txs []transaction.Transaction, n int) []LatestTransaction {
	sorted := sortTransactionsByPaidAt(txs)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	latest := make([]LatestTransaction, 0, len(sorted))
	for _, t := range sorted {
		latest = append(latest, LatestTransaction{
			TransactionID: t.TransactionID,
			EmployeeName:  t.EmployeeName,
			Amount:        t.Amount,
			PaidAt:        t.PaidAt,
			PaymentMethod: t.PaymentMethod,
		})
	}
	return latest
}

// LatestPayRolls returns the n most recent requests regardless of status.
func LatestPayRolls(payRolls []payroll.PayRoll, n int) []payroll.PayRoll {
	sorted := make([]payroll.PayRoll, len(payRolls))
	copy(sorted, payRolls)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].PayRequestAt.Equal(sorted[j].PayRequestAt) {
			return sorted[i].PayRequestAt.After(sorted[j].PayRequestAt)
		}
		return sorted[i].ID > sorted[j].ID
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func CountRequestsSince(payRolls []payroll.PayRoll, start time.Time) int {
	count := 0
	for _, p := range payRolls {
		if !p.PayRequestAt.Before(start) {
			count++
		}
	}
	return count
}

func SumPaidSalary(payRolls []payroll.PayRoll) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payRolls {
		if p.Status == payroll.StatusPaid {
			sum = sum.Add(p.Salary)
		}
	}
	return sum
}

// HoursByTask sums logged hours per task, sorted by task name, and returns
// the overall total.
func HoursByTask(sheets []worksheet.WorkSheet) ([]TaskHours, float64) {
	byTask := make(map[worksheet.Task]float64)
	total := 0.0
	for _, s := range sheets {
		byTask[s.Task] += s.Hour
		total += s.Hour
	}

	hours := make([]TaskHours, 0, len(byTask))
	for task, h := range byTask {
		hours = append(hours, TaskHours{Task: task, TotalHours: h})
	}
	sort.Slice(hours, func(i, j int) bool { return hours[i].Task < hours[j].Task })
	return hours, total
}

func RecentPayments(txs []transaction.Transaction, n int) ([]RecentPayment, *time.Time) {
	sorted := sortTransactionsByPaidAt(txs)
	var lastPaid *time.Time
	if len(sorted) > 0 {
		t := sorted[0].PaidAt
		lastPaid = &t
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	payments := make([]RecentPayment, 0, len(sorted))
	for _, t := range sorted {
		payments = append(payments, RecentPayment{
			Amount:      t.Amount,
			PayForMonth: t.PayForMonth,
			PayForYear:  t.PayForYear,
			PaidAt:      t.PaidAt,
		})
	}
	return payments, lastPaid
}

func BuildAdminSummary(payRolls []payroll.PayRoll, txs []transaction.Transaction, w Windows) AdminSummary {
	counts := CountByStatus(payRolls)
	return AdminSummary{
		TotalRequests:        counts.Total,
		TotalPaid:            counts.Paid,
		TotalPending:         counts.Pending,
		TotalMoneySpent:      SumAmounts(txs),
		TodaySpent:           SumSince(txs, w.Today, w.Now),
		WeekSpent:            SumSince(txs, w.Week, w.Now),
		MonthSpent:           SumSince(txs, w.Month, w.Now),
		YearSpent:            SumSince(txs, w.Year, w.Now),
		PaidRequestsPerMonth: GroupByPeriod(txs),
		LatestTransactions:   LatestTransactions(txs, LatestLimit),
	}
}

// BuildHRSummary expects payRolls already scoped to one HR.
func BuildHRSummary(payRolls []payroll.PayRoll, w Windows) HRSummary {
	counts := CountByStatus(payRolls)
	return HRSummary{
		TotalRequests:   counts.Total,
		TotalPaid:       counts.Paid,
		TotalPending:    counts.Pending,
		PaidTotalSalary: SumPaidSalary(payRolls),
		TodayRequests:   CountRequestsSince(payRolls, w.Today),
		WeeklyRequests:  CountRequestsSince(payRolls, w.Week),
		MonthlyRequests: CountRequestsSince(payRolls, w.Month),
		YearlyRequests:  CountRequestsSince(payRolls, w.Year),
		LatestRequests:  LatestPayRolls(payRolls, LatestLimit),
	}
}

func BuildEmployeeDashboard(sheets []worksheet.WorkSheet, txs []transaction.Transaction) EmployeeDashboard {
	byTask, totalHours := HoursByTask(sheets)
	payments, lastPaid := RecentPayments(txs, LatestLimit)
	return EmployeeDashboard{
		TotalHours:   totalHours,
		WorkByTask:   byTask,
		TotalPaid:    SumAmounts(txs),
		LastPaidDate: lastPaid,
		Payments:     payments,
	}
}
