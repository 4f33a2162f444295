package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tms/internal/app/ds"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Bucket
	}{
		{"empty status", "", BucketPending},
		{"dd requested", DDRequested, BucketSent},
		{"dd accepted", DDAccountsFormAccepted, BucketApproved},
		{"dd rejected", DDAccountsFormRejected, BucketRejected},
		{"dd courier return", DDReturnViaCourier, BucketReturned},
		{"dd bank return", DDReturnViaBank, BucketReturned},
		{"dd cancelled at branch", DDCancelledAtBranch, BucketReturned},
		{"dd settled", DDSettledWithProject, BucketReturned},
		{"fdr settled stays sent", FDRSettledWithProject, BucketSent},
		{"bg bank request accepted", BGBankRequestAccepted, BucketApproved},
		{"bg created", BGCreated, BucketApproved},
		{"bg bank request rejected", BGBankRequestRejected, BucketRejected},
		{"bg cancellation confirmed", BGCancellationConfirmed, BucketReturned},
		{"bg fdr cancellation confirmed", BGFdrCancellationConfirmed, BucketReturned},
		{"cheque cancelled torn", ChequeCancelledTorn, BucketReturned},
		{"bt settled", BTSettledWithProject, BucketApproved},
		{"portal settled", PortalSettledWithProject, BucketApproved},
		{"bt bank return", BTReturnViaBank, BucketReturned},
		{"followup is sent", BGFollowupInitiated, BucketSent},
		{"unknown status is sent", "SOMETHING_ELSE", BucketSent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.raw))
		})
	}
}

// Суффикс отклонения проверяется раньше наборов: статус не может быть
// одновременно Rejected и Returned/Approved
func TestClassifyRejectedPrecedesSets(t *testing.T) {
	for _, s := range append(ApprovedStatuses(), ReturnedStatuses()...) {
		assert.False(t, IsRejected(s), "набор содержит статус отклонения: %s", s)
	}
}

func TestClassifyForTab(t *testing.T) {
	assert.Equal(t, BucketSent, ClassifyForTab(""))
	assert.Equal(t, BucketRejected, ClassifyForTab(ChequeAccountsFormRejected))
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, DDRequested, Initial(ds.InstrumentDD))
	assert.Equal(t, FDRRequested, Initial(ds.InstrumentFDR))
	assert.Equal(t, BGRequested, Initial(ds.InstrumentBG))
	assert.Equal(t, ChequeRequested, Initial(ds.InstrumentCheque))
	assert.Equal(t, BTAccountsFormPending, Initial(ds.InstrumentBankTransfer))
	assert.Equal(t, PortalRequested, Initial(ds.InstrumentPortalPayment))
}

func TestRejectedStatus(t *testing.T) {
	assert.Equal(t, DDAccountsFormRejected, Rejected(ds.InstrumentDD))
	assert.Equal(t, BGBankRequestRejected, Rejected(ds.InstrumentBG))
	assert.Equal(t, PortalAccountsFormRejected, Rejected(ds.InstrumentPortalPayment))
}

// Подчёркивания в шаблоне экранированы: LIKE не должен принимать
// произвольный символ на месте разделителя суффикса
func TestRejectedLikePattern(t *testing.T) {
	assert.Equal(t, `%\_REJECTED`, RejectedLikePattern())
}

func TestStageFromStatus(t *testing.T) {
	assert.Equal(t, 1, StageFromStatus(ds.InstrumentDD, DDRequested))
	// статусы DD перечислены и в первом этапе, берётся наименьший номер
	assert.Equal(t, 1, StageFromStatus(ds.InstrumentDD, DDFollowupInitiated))
	assert.Equal(t, 1, StageFromStatus(ds.InstrumentDD, DDCancelledAtBranch))
	// у чека первый этап узкий, статусы остальных этапов разрешаются по месту
	assert.Equal(t, 2, StageFromStatus(ds.InstrumentCheque, ChequeFollowupInitiated))
	assert.Equal(t, 3, StageFromStatus(ds.InstrumentCheque, ChequeStopFromBank))
	assert.Equal(t, 0, StageFromStatus(ds.InstrumentDD, "NOPE"))
}

func TestNextAvailableStages(t *testing.T) {
	assert.ElementsMatch(t, []int{2, 3, 4, 5, 6}, NextAvailableStages(ds.InstrumentDD, DDRequested))
	// followup числится и в первом этапе, терминальность первого этапа его не касается
	assert.ElementsMatch(t, []int{2, 3, 4, 5, 6}, NextAvailableStages(ds.InstrumentDD, DDFollowupInitiated))
	// терминальный статус своего этапа — переходов нет
	assert.Empty(t, NextAvailableStages(ds.InstrumentDD, DDAccountsFormRejected))
	// BG_CREATED тоже числится в первом этапе, поэтому доступен только этап 2
	assert.ElementsMatch(t, []int{2}, NextAvailableStages(ds.InstrumentBG, BGCreated))
	assert.ElementsMatch(t, []int{3, 4, 5, 6}, NextAvailableStages(ds.InstrumentCheque, ChequeFollowupInitiated))
	assert.Empty(t, NextAvailableStages(ds.InstrumentDD, "NOPE"))
}

func TestCheckTransition(t *testing.T) {
	// из начального статуса доступны следующие этапы
	require.NoError(t, CheckTransition(ds.InstrumentDD, DDRequested, DDFollowupInitiated))
	// внутри одного этапа переход разрешён
	require.NoError(t, CheckTransition(ds.InstrumentDD, DDRequested, DDAccountsFormAccepted))
	// из отклонённого статуса переходов нет
	assert.Error(t, CheckTransition(ds.InstrumentDD, DDAccountsFormRejected, DDFollowupInitiated))
	// из терминального статуса переходов нет
	assert.Error(t, CheckTransition(ds.InstrumentDD, DDReturnViaCourier, DDSettledWithProject))
	// неизвестный целевой статус
	assert.Error(t, CheckTransition(ds.InstrumentDD, DDRequested, "NOPE"))
	// запрос на отмену переводится в отмену в отделении
	require.NoError(t, CheckTransition(ds.InstrumentDD, DDCancellationRequested, DDCancelledAtBranch))
	// статус запроса продления терминален
	assert.Error(t, CheckTransition(ds.InstrumentBG, BGExtensionRequested, BGFollowupInitiated))
	// из followup чек переводится в оплату, но из депонированного — назад нельзя
	require.NoError(t, CheckTransition(ds.InstrumentCheque, ChequeFollowupInitiated, ChequePaidViaBank))
	assert.Error(t, CheckTransition(ds.InstrumentCheque, ChequeDepositedInBank, ChequeFollowupInitiated))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Accounts Form Accepted", Label(DDAccountsFormAccepted))
	assert.Equal(t, "Requested", Label(BGRequested))
	assert.Equal(t, "Stop From Bank", Label(ChequeStopFromBank))
}
