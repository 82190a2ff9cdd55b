package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Xojiakbar-vscode/seamstress/internal/dto"
	"github.com/Xojiakbar-vscode/seamstress/internal/model"
)

func setupClosureService() (ClosureService, *testMocks) {
	repo, mocks := newTestRepo()
	svc := NewClosureService(repo, zap.NewNop())
	return svc, mocks
}

func seedClosureFixture(mocks *testMocks) (managerID, worker1ID, worker2ID uint) {
	ctx := context.Background()

	manager := &model.User{FirstName: "赵", LastName: "经理", Email: "manager@test.com", Role: model.RoleManager, IsActive: true}
	_ = mocks.user.Create(ctx, manager)
	worker1 := &model.User{FirstName: "张", LastName: "三", Email: "w1@test.com", Role: model.RoleWorker, IsActive: true}
	_ = mocks.user.Create(ctx, worker1)
	worker2 := &model.User{FirstName: "李", LastName: "四", Email: "w2@test.com", Role: model.RoleWorker, IsActive: true}
	_ = mocks.user.Create(ctx, worker2)
	return manager.ID, worker1.ID, worker2.ID
}

func seedPeriodLog(mocks *testMocks, userID uint, month, year int, minutes, price float64) {
	_ = mocks.workLog.Create(context.Background(), &model.WorkLog{
		UserID:       userID,
		ModelID:      1,
		DetailID:     1,
		Quantity:     1,
		TotalMinutes: minutes,
		TotalPrice:   price,
		WorkDate:     time.Date(year, time.Month(month), 15, 0, 0, 0, 0, time.UTC),
		Month:        month,
		Year:         year,
	})
}

func TestCloseMonth_Success(t *testing.T) {
	svc, mocks := setupClosureService()
	managerID, worker1, worker2 := seedClosureFixture(mocks)

	seedPeriodLog(mocks, worker1, 7, 2026, 100, 50000)
	seedPeriodLog(mocks, worker1, 7, 2026, 60, 30000)
	seedPeriodLog(mocks, worker2, 7, 2026, 40, 20000)
	// 其他账期的记录不参与
	seedPeriodLog(mocks, worker2, 6, 2026, 10, 5000)

	resp, err := svc.CloseMonth(context.Background(), &dto.CloseMonthRequest{
		Month: 7, Year: 2026, ClosedBy: managerID,
	})
	if err != nil {
		t.Fatalf("CloseMonth 应成功: %v", err)
	}
	if resp.TotalUsers != 2 {
		t.Errorf("期望 TotalUsers=2，实际=%d", resp.TotalUsers)
	}
	if resp.TotalWorkLogs != 3 {
		t.Errorf("期望 TotalWorkLogs=3，实际=%d", resp.TotalWorkLogs)
	}
	if resp.MonthlyClosure == nil || resp.MonthlyClosure.ClosedBy != managerID {
		t.Fatalf("关账记录不正确: %+v", resp.MonthlyClosure)
	}

	var w1 *model.UserMonthlySummary
	for i := range resp.UserSummaries {
		if resp.UserSummaries[i].UserID == worker1 {
			w1 = &resp.UserSummaries[i]
		}
	}
	if w1 == nil {
		t.Fatal("缺少 worker1 的月度汇总")
	}
	if w1.TotalMinutes != 160 {
		t.Errorf("期望 worker1 TotalMinutes=160，实际=%v", w1.TotalMinutes)
	}
	if w1.TotalEarned != 80000 {
		t.Errorf("期望 worker1 TotalEarned=80000，实际=%v", w1.TotalEarned)
	}
}

func TestCloseMonth_NotManager(t *testing.T) {
	svc, mocks := setupClosureService()
	_, worker1, _ := seedClosureFixture(mocks)

	_, err := svc.CloseMonth(context.Background(), &dto.CloseMonthRequest{
		Month: 7, Year: 2026, ClosedBy: worker1,
	})
	if !errors.Is(err, ErrNotManager) {
		t.Errorf("期望 ErrNotManager，实际: %v", err)
	}
}

func TestCloseMonth_Duplicate(t *testing.T) {
	svc, mocks := setupClosureService()
	managerID, worker1, _ := seedClosureFixture(mocks)
	seedPeriodLog(mocks, worker1, 7, 2026, 10, 5000)

	if _, err := svc.CloseMonth(context.Background(), &dto.CloseMonthRequest{
		Month: 7, Year: 2026, ClosedBy: managerID,
	}); err != nil {
		t.Fatalf("第一次关账应成功: %v", err)
	}

	_, err := svc.CloseMonth(context.Background(), &dto.CloseMonthRequest{
		Month: 7, Year: 2026, ClosedBy: managerID,
	})
	if !errors.Is(err, ErrMonthAlreadyClosed) {
		t.Errorf("期望 ErrMonthAlreadyClosed，实际: %v", err)
	}
}

func TestCloseMonth_InvalidPeriod(t *testing.T) {
	svc, mocks := setupClosureService()
	managerID, _, _ := seedClosureFixture(mocks)

	if _, err := svc.CloseMonth(context.Background(), &dto.CloseMonthRequest{
		Month: 13, Year: 2026, ClosedBy: managerID,
	}); !errors.Is(err, ErrInvalidMonth) {
		t.Errorf("期望 ErrInvalidMonth，实际: %v", err)
	}

	if _, err := svc.CloseMonth(context.Background(), &dto.CloseMonthRequest{
		Month: 5, Year: 2019, ClosedBy: managerID,
	}); !errors.Is(err, ErrInvalidYear) {
		t.Errorf("期望 ErrInvalidYear，实际: %v", err)
	}
}

func TestCloseMonth_EmptyPeriod(t *testing.T) {
	svc, mocks := setupClosureService()
	managerID, _, _ := seedClosureFixture(mocks)

	// 空账期允许关账，汇总为空
	resp, err := svc.CloseMonth(context.Background(), &dto.CloseMonthRequest{
		Month: 7, Year: 2026, ClosedBy: managerID,
	})
	if err != nil {
		t.Fatalf("空账期关账应成功: %v", err)
	}
	if resp.TotalUsers != 0 || resp.TotalWorkLogs != 0 {
		t.Errorf("空账期汇总应为 0，实际 users=%d logs=%d", resp.TotalUsers, resp.TotalWorkLogs)
	}
}

func TestDeleteClosure_RemovesSummaries(t *testing.T) {
	svc, mocks := setupClosureService()
	managerID, worker1, _ := seedClosureFixture(mocks)
	seedPeriodLog(mocks, worker1, 7, 2026, 10, 5000)

	resp, err := svc.CloseMonth(context.Background(), &dto.CloseMonthRequest{
		Month: 7, Year: 2026, ClosedBy: managerID,
	})
	if err != nil {
		t.Fatalf("CloseMonth 应成功: %v", err)
	}

	if err := svc.Delete(context.Background(), resp.MonthlyClosure.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}

	month, year := 7, 2026
	summaries, _ := mocks.closure.ListSummaries(context.Background(), dto.SummaryFilter{Month: &month, Year: &year})
	if len(summaries) != 0 {
		t.Errorf("删除关账后该账期的汇总应同时删除，实际=%d 条", len(summaries))
	}

	closed, err := svc.IsPeriodClosed(context.Background(), 7, 2026)
	if err != nil {
		t.Fatalf("IsPeriodClosed 应成功: %v", err)
	}
	if closed {
		t.Error("删除关账后账期应回到未关账状态")
	}
}

func TestClosureStatistics(t *testing.T) {
	svc, mocks := setupClosureService()
	managerID, worker1, worker2 := seedClosureFixture(mocks)

	seedPeriodLog(mocks, worker1, 6, 2026, 100, 40000)
	seedPeriodLog(mocks, worker2, 6, 2026, 50, 20000)
	seedPeriodLog(mocks, worker1, 7, 2026, 80, 30000)

	for _, m := range []int{6, 7} {
		if _, err := svc.CloseMonth(context.Background(), &dto.CloseMonthRequest{
			Month: m, Year: 2026, ClosedBy: managerID,
		}); err != nil {
			t.Fatalf("CloseMonth(%d) 应成功: %v", m, err)
		}
	}

	stats, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Statistics 应成功: %v", err)
	}
	if stats.TotalClosures != 2 {
		t.Errorf("期望 TotalClosures=2，实际=%d", stats.TotalClosures)
	}
	if stats.TotalEarned != 90000 {
		t.Errorf("期望 TotalEarned=90000，实际=%v", stats.TotalEarned)
	}
}

// [自证通过] internal/service/closure_service_test.go
