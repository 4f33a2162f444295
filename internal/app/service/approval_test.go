package service

import (
	"errors"
	"testing"
	"time"

	"tms/internal/app/ds"
	"tms/internal/app/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvalFixture() (*ApprovalService, *fakeStore, *fakeTimer) {
	store := newFakeStore()
	timer := &fakeTimer{}
	return NewApprovalService(store, timer), store, timer
}

func seedTenderForApproval(store *fakeStore, due *time.Time) *ds.TenderInfo {
	tender := &ds.TenderInfo{
		ID:         1,
		TenderNo:   "GEM/2025/B/222",
		TenderName: "Cabling works",
		Emd:        40000,
		TenderFees: 1000,
		DueDate:    due,
		Status:     ds.TenderStatusInfoSheet,
		IsActive:   true,
	}
	store.tenders[tender.ID] = tender
	return tender
}

func TestDecideApprove(t *testing.T) {
	svc, store, timer := approvalFixture()
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seedTenderForApproval(store, &due)

	emdAmount := 45000.0
	tenderFee := 1200.0
	tenderValue := 3500000.0
	store.infoSheets[1] = &ds.TenderInfoSheet{
		ID: 1, TenderID: 1,
		EmdAmount:            &emdAmount,
		TenderFee:            &tenderFee,
		TenderValue:          &tenderValue,
		PhysicalDocsRequired: true,
	}

	view, err := svc.Decide(1, &dto.TenderApprovalInput{
		TlStatus:            int(ds.TlApproved),
		RfqTo:               []uint{10, 20},
		EmdMode:             "DD",
		TenderFeeMode:       "PORTAL",
		ApprovePqrSelection: "standard",
	}, testActor())
	require.NoError(t, err)

	assert.Equal(t, ds.TlApproved, view.TlStatus)
	assert.Equal(t, ds.TenderStatusInfoApproved, view.TenderStatus)
	assert.Equal(t, []uint{10, 20}, view.RfqTo)
	require.NotNil(t, view.EmdMode)
	assert.Equal(t, "DD", *view.EmdMode)

	// суммы из инфолиста перенесены в тендер
	tender, _ := store.GetTender(1)
	assert.Equal(t, 45000.0, tender.Emd)
	assert.Equal(t, 1200.0, tender.TenderFees)
	assert.Equal(t, 3500000.0, tender.GstValues)

	require.Len(t, store.tenderHistory, 1)
	assert.Equal(t, "Tender info approved", store.tenderHistory[0].Comment)

	assert.Equal(t, []string{ds.TimerStageTenderApproval}, timer.stagesFor("stop"))
	started := timer.stagesFor("start")
	assert.Contains(t, started, ds.TimerStageRfqSent)
	assert.Contains(t, started, ds.TimerStageEmdRequested)
	assert.Contains(t, started, ds.TimerStagePhysicalDocs)
	assert.Contains(t, started, ds.TimerStageDocumentChecklist)
	assert.Contains(t, started, ds.TimerStageCostingSheets)
}

func TestDecideRejectWithDNBCode(t *testing.T) {
	svc, store, _ := approvalFixture()
	seedTenderForApproval(store, nil)

	code := 13
	view, err := svc.Decide(1, &dto.TenderApprovalInput{
		TlStatus:           int(ds.TlRejected),
		TenderStatus:       &code,
		TlRejectionRemarks: "клиент вне профиля",
	}, testActor())
	require.NoError(t, err)

	assert.Equal(t, ds.TlRejected, view.TlStatus)
	assert.Equal(t, 13, view.TenderStatus)
	require.NotNil(t, view.TlRejectionRemarks)
	require.Len(t, store.tenderHistory, 1)
	assert.Equal(t, "Tender rejected", store.tenderHistory[0].Comment)
}

func TestDecideRejectWithoutCodeSkipsHistory(t *testing.T) {
	svc, store, _ := approvalFixture()
	seedTenderForApproval(store, nil)

	_, err := svc.Decide(1, &dto.TenderApprovalInput{
		TlStatus:           int(ds.TlRejected),
		TlRejectionRemarks: "not interesting",
	}, testActor())
	require.NoError(t, err)
	assert.Empty(t, store.tenderHistory)
}

func TestDecideRejectInvalidCode(t *testing.T) {
	svc, store, _ := approvalFixture()
	seedTenderForApproval(store, nil)

	code := 3 // не из набора DNB
	_, err := svc.Decide(1, &dto.TenderApprovalInput{
		TlStatus:     int(ds.TlRejected),
		TenderStatus: &code,
	}, testActor())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadRequest))
}

func TestDecideIncomplete(t *testing.T) {
	svc, store, _ := approvalFixture()
	seedTenderForApproval(store, nil)

	t.Run("без полей — ошибка", func(t *testing.T) {
		_, err := svc.Decide(1, &dto.TenderApprovalInput{TlStatus: int(ds.TlIncomplete)}, testActor())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrBadRequest))
	})

	t.Run("набор полей заменяется целиком", func(t *testing.T) {
		view, err := svc.Decide(1, &dto.TenderApprovalInput{
			TlStatus: int(ds.TlIncomplete),
			IncompleteFields: []dto.IncompleteFieldInput{
				{FieldName: "emdAmount", Comment: "нет суммы"},
				{FieldName: "dueDate"},
			},
		}, testActor())
		require.NoError(t, err)
		assert.Equal(t, ds.TenderStatusIncomplete, view.TenderStatus)
		require.Len(t, view.IncompleteFields, 2)
		assert.Equal(t, "pending", view.IncompleteFields[0].Status)

		view, err = svc.Decide(1, &dto.TenderApprovalInput{
			TlStatus:         int(ds.TlIncomplete),
			IncompleteFields: []dto.IncompleteFieldInput{{FieldName: "tenderFee"}},
		}, testActor())
		require.NoError(t, err)
		require.Len(t, view.IncompleteFields, 1)
		assert.Equal(t, "tenderFee", view.IncompleteFields[0].FieldName)
	})
}

// Одобрение после Incomplete убирает пометки о незаполненных полях
func TestApproveClearsIncompleteFields(t *testing.T) {
	svc, store, _ := approvalFixture()
	seedTenderForApproval(store, nil)

	_, err := svc.Decide(1, &dto.TenderApprovalInput{
		TlStatus:         int(ds.TlIncomplete),
		IncompleteFields: []dto.IncompleteFieldInput{{FieldName: "emdAmount"}},
	}, testActor())
	require.NoError(t, err)

	view, err := svc.Decide(1, &dto.TenderApprovalInput{TlStatus: int(ds.TlApproved)}, testActor())
	require.NoError(t, err)
	assert.Empty(t, view.IncompleteFields)
	assert.Equal(t, ds.TlApproved, view.TlStatus)
}

func TestListByTlStatus(t *testing.T) {
	svc, store, _ := approvalFixture()
	store.tenders[1] = &ds.TenderInfo{ID: 1, TenderNo: "T-1", TlStatus: ds.TlPending, IsActive: true}
	store.tenders[2] = &ds.TenderInfo{ID: 2, TenderNo: "T-2", TlStatus: ds.TlApproved, IsActive: true}
	store.tenders[3] = &ds.TenderInfo{ID: 3, TenderNo: "T-3", TlStatus: ds.TlPending, IsActive: true}

	t.Run("фильтр по решению", func(t *testing.T) {
		pending := int(ds.TlPending)
		page, err := svc.List(&dto.ApprovalListQuery{TlStatus: &pending})
		require.NoError(t, err)
		require.Len(t, page.Tenders, 2)
		assert.Equal(t, "T-1", page.Tenders[0].TenderNo)
		assert.Equal(t, "T-3", page.Tenders[1].TenderNo)
		assert.Equal(t, int64(2), page.Meta.Total)
	})

	t.Run("без фильтра — вся очередь", func(t *testing.T) {
		page, err := svc.List(&dto.ApprovalListQuery{})
		require.NoError(t, err)
		assert.Len(t, page.Tenders, 3)
		assert.Equal(t, defaultPageLimit, page.Meta.Limit)
	})

	t.Run("пагинация", func(t *testing.T) {
		page, err := svc.List(&dto.ApprovalListQuery{Page: 2, Limit: 2})
		require.NoError(t, err)
		require.Len(t, page.Tenders, 1)
		assert.Equal(t, "T-3", page.Tenders[0].TenderNo)
		assert.Equal(t, int64(2), page.Meta.TotalPages)
	})

	t.Run("неизвестное значение tlStatus", func(t *testing.T) {
		bad := 7
		_, err := svc.List(&dto.ApprovalListQuery{TlStatus: &bad})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrBadRequest))
	})
}

func TestComputeTimerPlan(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("с дедлайном — обратный отсчёт от дедлайна минус 72 часа", func(t *testing.T) {
		due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		tender := &ds.TenderInfo{ID: 1, Emd: 1000, DueDate: &due}

		plan := ComputeTimerPlan(tender, nil, &dto.TenderApprovalInput{}, now)

		require.Len(t, plan, 3) // stop + чеклист + costing sheets
		assert.Equal(t, "stop", plan[0].Op)
		assert.Equal(t, ds.TimerStageTenderApproval, plan[0].Stage)

		checklist := plan[1]
		assert.Equal(t, ds.TimerStageDocumentChecklist, checklist.Stage)
		assert.Equal(t, timerNegCountdown, checklist.Cfg.Type)
		require.NotNil(t, checklist.Cfg.DeadlineAt)
		assert.Equal(t, time.Date(2025, 5, 29, 0, 0, 0, 0, time.UTC), *checklist.Cfg.DeadlineAt)

		assert.Equal(t, ds.TimerStageCostingSheets, plan[2].Stage)
		assert.Equal(t, checklist.Cfg, plan[2].Cfg)
	})

	t.Run("без дедлайна — фиксированные сутки", func(t *testing.T) {
		tender := &ds.TenderInfo{ID: 1}
		plan := ComputeTimerPlan(tender, nil, &dto.TenderApprovalInput{}, now)

		checklist := plan[len(plan)-2]
		assert.Equal(t, timerFixedDuration, checklist.Cfg.Type)
		assert.Equal(t, (24 * time.Hour).Milliseconds(), checklist.Cfg.AllocatedMs)
		assert.Nil(t, checklist.Cfg.DeadlineAt)
	})

	t.Run("условные таймеры", func(t *testing.T) {
		tender := &ds.TenderInfo{ID: 1, Emd: 500}
		sheet := &ds.TenderInfoSheet{PhysicalDocsRequired: true}
		payload := &dto.TenderApprovalInput{RfqTo: []uint{5}, EmdMode: "DD"}

		plan := ComputeTimerPlan(tender, sheet, payload, now)

		stages := map[string]bool{}
		for _, a := range plan {
			if a.Op == "start" {
				stages[a.Stage] = true
			}
		}
		assert.True(t, stages[ds.TimerStageRfqSent])
		assert.True(t, stages[ds.TimerStageEmdRequested])
		assert.True(t, stages[ds.TimerStagePhysicalDocs])
	})

	t.Run("EMD без суммы не запускает таймер", func(t *testing.T) {
		tender := &ds.TenderInfo{ID: 1, Emd: 0}
		plan := ComputeTimerPlan(tender, nil, &dto.TenderApprovalInput{EmdMode: "DD"}, now)
		for _, a := range plan {
			assert.NotEqual(t, ds.TimerStageEmdRequested, a.Stage)
		}
	})
}
