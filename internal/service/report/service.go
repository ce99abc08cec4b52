package report

import (
	"context"
	"fmt"
	"time"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/payroll"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/report"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/transaction"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/user"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/worksheet"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/cache"
	"golang.org/x/sync/errgroup"
)

// SummaryCache is satisfied by *cache.SummaryCache, including a nil one.
type SummaryCache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any)
	InvalidateAll(ctx context.Context)
}

type ReportServiceImpl struct {
	reportRepo report.ReportRepository
	cache      SummaryCache
	now        func() time.Time
}

func NewReportService(reportRepo report.ReportRepository, summaries SummaryCache) report.ReportService {
	if summaries == nil {
		summaries = (*cache.SummaryCache)(nil)
	}
	return &ReportServiceImpl{
		reportRepo: reportRepo,
		cache:      summaries,
		now:        time.Now,
	}
}

const adminSummaryKey = "admin"

func hrSummaryKey(hrEmail string) string {
	return "hr:" + hrEmail
}

func (s *ReportServiceImpl) AdminSummary(ctx context.Context, actor user.Actor) (report.AdminSummary, error) {
	if !actor.Can(user.PermissionAdminSummaryView) {
		return report.AdminSummary{}, user.ErrForbidden
	}

	var summary report.AdminSummary
	if s.cache.Get(ctx, adminSummaryKey, &summary) {
		return summary, nil
	}

	var (
		payRolls []payroll.PayRoll
		txs      []transaction.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		payRolls, err = s.reportRepo.PayRollSnapshot(gctx, "")
		return err
	})
	g.Go(func() error {
		var err error
		txs, err = s.reportRepo.TransactionSnapshot(gctx, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return report.AdminSummary{}, fmt.Errorf("failed to load admin summary: %w", err)
	}

	summary = report.BuildAdminSummary(payRolls, txs, report.WindowsAt(s.now()))
	s.cache.Set(ctx, adminSummaryKey, summary)
	return summary, nil
}

// HRSummary covers the requests raised by hrEmail. HR may only see their own.
func (s *ReportServiceImpl) HRSummary(ctx context.Context, actor user.Actor, hrEmail string) (report.HRSummary, error) {
	hrEmail = user.NormalizeEmail(hrEmail)
	if hrEmail == "" {
		return report.HRSummary{}, report.ErrHREmailRequired
	}
	if !actor.Can(user.PermissionHRSummaryView) {
		return report.HRSummary{}, user.ErrForbidden
	}
	if actor.Role == user.RoleHR && !actor.Is(hrEmail) {
		return report.HRSummary{}, user.ErrForbidden
	}

	var summary report.HRSummary
	key := hrSummaryKey(hrEmail)
	if s.cache.Get(ctx, key, &summary) {
		return summary, nil
	}

	payRolls, err := s.reportRepo.PayRollSnapshot(ctx, hrEmail)
	if err != nil {
		return report.HRSummary{}, fmt.Errorf("failed to load hr summary: %w", err)
	}

	summary = report.BuildHRSummary(payRolls, report.WindowsAt(s.now()))
	s.cache.Set(ctx, key, summary)
	return summary, nil
}

func (s *ReportServiceImpl) EmployeeDashboard(ctx context.Context, actor user.Actor, email string) (report.EmployeeDashboard, error) {
	email = user.NormalizeEmail(email)
	if !actor.Is(email) && !actor.Can(user.PermissionEmployeeViewAll) {
		return report.EmployeeDashboard{}, user.ErrForbidden
	}

	var (
		sheets []worksheet.WorkSheet
		txs    []transaction.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sheets, err = s.reportRepo.WorkSheetSnapshot(gctx, email)
		return err
	})
	g.Go(func() error {
		var err error
		txs, err = s.reportRepo.TransactionSnapshot(gctx, email)
		return err
	})
	if err := g.Wait(); err != nil {
		return report.EmployeeDashboard{}, fmt.Errorf("failed to load employee dashboard: %w", err)
	}

	return report.BuildEmployeeDashboard(sheets, txs), nil
}

func (s *ReportServiceImpl) Invalidate(ctx context.Context) {
	s.cache.InvalidateAll(ctx)
}
