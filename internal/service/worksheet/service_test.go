package worksheet

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/user"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/worksheet"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWorkSheetRepo struct {
	sheets map[string]worksheet.WorkSheet
	seq    int
}

func newFakeWorkSheetRepo(seed ...worksheet.WorkSheet) *fakeWorkSheetRepo {
	r := &fakeWorkSheetRepo{sheets: make(map[string]worksheet.WorkSheet)}
	for _, w := range seed {
		r.sheets[w.ID] = w
	}
	return r
}

func (r *fakeWorkSheetRepo) Create(_ context.Context, sheet worksheet.WorkSheet) (worksheet.WorkSheet, error) {
	r.seq++
	sheet.ID = sheetID(r.seq)
	r.sheets[sheet.ID] = sheet
	return sheet, nil
}

func (r *fakeWorkSheetRepo) GetByID(_ context.Context, id string) (worksheet.WorkSheet, error) {
	w, ok := r.sheets[id]
	if !ok {
		return worksheet.WorkSheet{}, worksheet.ErrWorkSheetNotFound
	}
	return w, nil
}

func (r *fakeWorkSheetRepo) ListByEmployee(_ context.Context, email string, page pagination.Params) ([]worksheet.WorkSheet, int64, error) {
	var mine []worksheet.WorkSheet
	for _, w := range r.sheets {
		if w.EmployeeEmail == email {
			mine = append(mine, w)
		}
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].Date > mine[j].Date })
	total := int64(len(mine))
	start := min(page.Offset(), len(mine))
	end := min(start+page.Limit(), len(mine))
	return mine[start:end], total, nil
}

func (r *fakeWorkSheetRepo) ListAll(_ context.Context, filter worksheet.WorkSheetFilter) ([]worksheet.WorkSheet, error) {
	var out []worksheet.WorkSheet
	for _, w := range r.sheets {
		if filter.Employee != "" && w.EmployeeName != filter.Employee {
			continue
		}
		if filter.Search != "" {
			term := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(w.EmployeeName), term) && !strings.Contains(strings.ToLower(w.EmployeeEmail), term) {
				continue
			}
		}
		out = append(out, w)
	}
	return out, nil
}

func (r *fakeWorkSheetRepo) Update(_ context.Context, req worksheet.UpdateWorkSheetRequest) (worksheet.WorkSheet, error) {
	w, ok := r.sheets[req.ID]
	if !ok {
		return worksheet.WorkSheet{}, worksheet.ErrWorkSheetNotFound
	}
	if req.Task != nil {
		w.Task = worksheet.Task(*req.Task)
	}
	if req.Hour != nil {
		w.Hour = *req.Hour
	}
	if req.Date != nil {
		w.Date = *req.Date
	}
	r.sheets[req.ID] = w
	return w, nil
}

func (r *fakeWorkSheetRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.sheets[id]; !ok {
		return worksheet.ErrWorkSheetNotFound
	}
	delete(r.sheets, id)
	return nil
}

type fakeUserRepo struct {
	user.UserRepository
	users map[string]user.User
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := r.users[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func sheetID(n int) string {
	return "0190a000-0000-7000-8000-" + strings.Repeat("0", 11) + string(rune('a'+n-1))
}

var (
	jane  = user.Actor{Email: "jane@example.com", Role: user.RoleEmployee}
	bob   = user.Actor{Email: "bob@example.com", Role: user.RoleEmployee}
	hr    = user.Actor{Email: "hr@example.com", Role: user.RoleHR}
	users = &fakeUserRepo{users: map[string]user.User{
		"jane@example.com": {Email: "jane@example.com", Name: "Jane Doe"},
		"bob@example.com":  {Email: "bob@example.com", Name: "Bob Smith"},
	}}
)

func TestCreate_OwnerFromCaller(t *testing.T) {
	repo := newFakeWorkSheetRepo()
	svc := NewWorkSheetService(repo, users)

	w, err := svc.Create(context.Background(), jane, worksheet.CreateWorkSheetRequest{Task: "Sales", Hour: 4, Date: "2024-03-01"})

	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", w.EmployeeEmail)
	assert.Equal(t, "Jane Doe", w.EmployeeName)
	assert.Equal(t, worksheet.TaskSales, w.Task)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewWorkSheetService(newFakeWorkSheetRepo(), users)
	ctx := context.Background()

	_, err := svc.Create(ctx, jane, worksheet.CreateWorkSheetRequest{Task: "Gaming", Hour: 4, Date: "2024-03-01"})
	assert.Error(t, err)

	_, err = svc.Create(ctx, jane, worksheet.CreateWorkSheetRequest{Task: "Sales", Hour: 0, Date: "2024-03-01"})
	assert.Error(t, err)

	_, err = svc.Create(ctx, jane, worksheet.CreateWorkSheetRequest{Task: "Sales", Hour: 1, Date: "yesterday"})
	assert.Error(t, err)

	_, err = svc.Create(ctx, hr, worksheet.CreateWorkSheetRequest{Task: "Sales", Hour: 1, Date: "2024-03-01"})
	assert.ErrorIs(t, err, user.ErrForbidden)
}

func TestUpdateDelete_OnlyOwner(t *testing.T) {
	id := sheetID(1)
	repo := newFakeWorkSheetRepo(worksheet.WorkSheet{ID: id, EmployeeEmail: "jane@example.com", Task: worksheet.TaskSales, Hour: 2, Date: "2024-03-01"})
	svc := NewWorkSheetService(repo, users)
	ctx := context.Background()
	hours := 5.0

	_, err := svc.Update(ctx, bob, worksheet.UpdateWorkSheetRequest{ID: id, Hour: &hours})
	assert.ErrorIs(t, err, worksheet.ErrNotOwner)

	err = svc.Delete(ctx, hr, id)
	assert.ErrorIs(t, err, worksheet.ErrNotOwner)

	updated, err := svc.Update(ctx, jane, worksheet.UpdateWorkSheetRequest{ID: id, Hour: &hours})
	require.NoError(t, err)
	assert.Equal(t, 5.0, updated.Hour)

	require.NoError(t, svc.Delete(ctx, jane, id))
	assert.Empty(t, repo.sheets)

	err = svc.Delete(ctx, jane, id)
	assert.ErrorIs(t, err, worksheet.ErrWorkSheetNotFound)
}

func TestListMine_Authorization(t *testing.T) {
	repo := newFakeWorkSheetRepo(
		worksheet.WorkSheet{ID: sheetID(1), EmployeeEmail: "jane@example.com", Date: "2024-03-01"},
		worksheet.WorkSheet{ID: sheetID(2), EmployeeEmail: "jane@example.com", Date: "2024-03-02"},
	)
	svc := NewWorkSheetService(repo, users)
	page := pagination.Params{Page: 1, Size: 1}

	resp, err := svc.ListMine(context.Background(), jane, "jane@example.com", page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.TotalItems)
	require.Len(t, resp.MyEntries, 1)
	assert.Equal(t, "2024-03-02", resp.MyEntries[0].Date)

	_, err = svc.ListMine(context.Background(), hr, "jane@example.com", page)
	assert.NoError(t, err)

	upper, err := svc.ListMine(context.Background(), jane, "Jane@Example.com", page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), upper.TotalItems)

	_, err = svc.ListMine(context.Background(), bob, "jane@example.com", page)
	assert.ErrorIs(t, err, user.ErrForbidden)
}

func TestListAll_SearchAndMonth(t *testing.T) {
	repo := newFakeWorkSheetRepo(
		worksheet.WorkSheet{ID: sheetID(1), EmployeeName: "Jane Doe", EmployeeEmail: "jane@example.com", Date: "2024-03-01"},
		worksheet.WorkSheet{ID: sheetID(2), EmployeeName: "Mary Jane", EmployeeEmail: "mary@example.com", Date: time.Date(2023, time.March, 20, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)},
		worksheet.WorkSheet{ID: sheetID(3), EmployeeName: "Bob", EmployeeEmail: "JANE.bob@example.com", Date: "Fri Mar 08 2024 00:00:00 GMT+0600 (Bangladesh Standard Time)"},
		worksheet.WorkSheet{ID: sheetID(4), EmployeeName: "Jane Doe", EmployeeEmail: "jane@example.com", Date: "2024-04-01"},
		worksheet.WorkSheet{ID: sheetID(5), EmployeeName: "Jane Doe", EmployeeEmail: "jane@example.com", Date: "garbage"},
		worksheet.WorkSheet{ID: sheetID(6), EmployeeName: "Bob Smith", EmployeeEmail: "bob@example.com", Date: "2024-03-05"},
	)
	svc := NewWorkSheetService(repo, users)

	filter, err := worksheet.ParseWorkSheetFilter("", "jane", "3", "")
	require.NoError(t, err)

	got, err := svc.ListAll(context.Background(), hr, filter)
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, w := range got {
		ids = append(ids, w.ID)
	}
	assert.ElementsMatch(t, []string{sheetID(1), sheetID(2), sheetID(3)}, ids)

	_, err = svc.ListAll(context.Background(), jane, filter)
	assert.ErrorIs(t, err, user.ErrForbidden)
}

func TestListAll_UnparseableDatesKeptWithoutPeriodFilter(t *testing.T) {
	repo := newFakeWorkSheetRepo(
		worksheet.WorkSheet{ID: sheetID(1), EmployeeName: "Jane Doe", Date: "garbage"},
	)
	svc := NewWorkSheetService(repo, users)

	got, err := svc.ListAll(context.Background(), hr, worksheet.WorkSheetFilter{Employee: "Jane Doe"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
