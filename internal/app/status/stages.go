package status

import (
	"fmt"

	"tms/internal/app/ds"
)

// Stage — этап жизненного цикла инструмента. Переход допустим внутри
// текущего этапа либо в один из NextStages; из терминального статуса
// переходов нет
type Stage struct {
	Name             string
	Statuses         []string
	TerminalStatuses []string
	NextStages       []int
}

var ddStages = map[int]Stage{
	1: {
		Name: "Accounts Form",
		Statuses: []string{
			DDRequested, DDAccountsFormAccepted, DDAccountsFormRejected,
			DDFollowupInitiated, DDReturnViaCourier, DDReturnViaBank,
			DDSettledWithProject, DDCancellationRequested, DDCancelledAtBranch,
		},
		TerminalStatuses: []string{DDAccountsFormRejected},
		NextStages:       []int{2, 3, 4, 5, 6},
	},
	2: {
		Name:             "Followup",
		Statuses:         []string{DDFollowupInitiated},
		TerminalStatuses: []string{DDFollowupInitiated},
		NextStages:       []int{3, 4, 5, 6},
	},
	3: {
		Name:             "Returned via Courier",
		Statuses:         []string{DDReturnViaCourier},
		TerminalStatuses: []string{DDReturnViaCourier},
	},
	4: {
		Name:             "Returned via Bank Transfer",
		Statuses:         []string{DDReturnViaBank},
		TerminalStatuses: []string{DDReturnViaBank},
	},
	5: {
		Name:             "Settled with Project",
		Statuses:         []string{DDSettledWithProject},
		TerminalStatuses: []string{DDSettledWithProject},
	},
	6: {
		Name:       "Cancellation Request",
		Statuses:   []string{DDCancellationRequested},
		NextStages: []int{7},
	},
	7: {
		Name:             "Cancelled at Branch",
		Statuses:         []string{DDCancelledAtBranch},
		TerminalStatuses: []string{DDCancelledAtBranch},
	},
}

var fdrStages = map[int]Stage{
	1: {
		Name: "Accounts Form",
		Statuses: []string{
			FDRRequested, FDRAccountsFormAccepted, FDRAccountsFormRejected,
			FDRFollowupInitiated, FDRReturnViaCourier, FDRReturnViaBank,
			FDRSettledWithProject, FDRCancellationRequested, FDRCancelledAtBranch,
		},
		TerminalStatuses: []string{FDRAccountsFormRejected},
		NextStages:       []int{2, 3, 4, 5, 6},
	},
	2: {
		Name:             "Followup",
		Statuses:         []string{FDRFollowupInitiated},
		TerminalStatuses: []string{FDRFollowupInitiated},
		NextStages:       []int{3, 4, 5, 6},
	},
	3: {
		Name:             "Returned via Courier",
		Statuses:         []string{FDRReturnViaCourier},
		TerminalStatuses: []string{FDRReturnViaCourier},
	},
	4: {
		Name:             "Returned via Bank Transfer",
		Statuses:         []string{FDRReturnViaBank},
		TerminalStatuses: []string{FDRReturnViaBank},
	},
	5: {
		Name:             "Settled with Project",
		Statuses:         []string{FDRSettledWithProject},
		TerminalStatuses: []string{FDRSettledWithProject},
	},
	6: {
		Name:       "Cancellation Request",
		Statuses:   []string{FDRCancellationRequested},
		NextStages: []int{7},
	},
	7: {
		Name:             "Cancelled at Branch",
		Statuses:         []string{FDRCancelledAtBranch},
		TerminalStatuses: []string{FDRCancelledAtBranch},
	},
}

var chequeStages = map[int]Stage{
	1: {
		Name: "Accounts Form",
		Statuses: []string{
			ChequeRequested, ChequeAccountsFormAccepted, ChequeAccountsFormRejected,
		},
		TerminalStatuses: []string{ChequeAccountsFormRejected},
		NextStages:       []int{2, 3, 4, 5, 6},
	},
	2: {
		Name:       "Followup",
		Statuses:   []string{ChequeFollowupInitiated},
		NextStages: []int{3, 4, 5, 6},
	},
	3: {
		Name:             "Stop Cheque",
		Statuses:         []string{ChequeStopFromBank},
		TerminalStatuses: []string{ChequeStopFromBank},
		NextStages:       []int{4, 6},
	},
	4: {
		Name:             "Paid via Bank Transfer",
		Statuses:         []string{ChequePaidViaBank},
		TerminalStatuses: []string{ChequePaidViaBank},
	},
	5: {
		Name:             "Deposited in Bank",
		Statuses:         []string{ChequeDepositedInBank},
		TerminalStatuses: []string{ChequeDepositedInBank},
	},
	6: {
		Name:     "Cancelled/Torn",
		Statuses: []string{ChequeCancelledTorn},
	},
}

var bgStages = map[int]Stage{
	1: {
		Name: "Accounts Form 1 - Request to Bank",
		Statuses: []string{
			BGRequested, BGBankRequestAccepted, BGBankRequestRejected,
			BGCreated, BGFdrCaptured, BGFollowupInitiated, BGExtensionRequested,
			BGReturnViaCourier, BGCancellationRequested,
			BGCancellationConfirmed, BGFdrCancellationConfirmed,
		},
		TerminalStatuses: []string{
			BGBankRequestRejected, BGCancellationConfirmed, BGFdrCancellationConfirmed,
		},
		NextStages: []int{2},
	},
	2: {
		Name:       "Accounts Form 2 - After BG Creation",
		Statuses:   []string{BGCreated},
		NextStages: []int{3, 4, 5, 6, 7},
	},
	3: {
		Name:       "Accounts Form 3 - Capture FDR Details",
		Statuses:   []string{BGFdrCaptured},
		NextStages: []int{4, 5, 6, 7},
	},
	4: {
		Name:       "Followup",
		Statuses:   []string{BGFollowupInitiated},
		NextStages: []int{5, 6, 7},
	},
	5: {
		Name:             "Extension",
		Statuses:         []string{BGExtensionRequested},
		TerminalStatuses: []string{BGExtensionRequested},
		NextStages:       []int{4, 6, 7},
	},
	6: {
		Name:             "Returned via Courier",
		Statuses:         []string{BGReturnViaCourier},
		TerminalStatuses: []string{BGReturnViaCourier},
	},
	7: {
		Name:       "Cancellation Request",
		Statuses:   []string{BGCancellationRequested},
		NextStages: []int{8},
	},
	8: {
		Name:       "BG Cancellation Confirmation",
		Statuses:   []string{BGCancellationConfirmed},
		NextStages: []int{9},
	},
	9: {
		Name:     "FDR Cancellation Confirmation",
		Statuses: []string{BGFdrCancellationConfirmed},
	},
}

var btStages = map[int]Stage{
	1: {
		Name: "Accounts Form",
		Statuses: []string{
			BTAccountsFormPending, BTAccountsFormAccepted, BTAccountsFormRejected,
			BTFollowupInitiated, BTReturnViaBank, BTSettledWithProject,
		},
		TerminalStatuses: []string{BTAccountsFormRejected},
		NextStages:       []int{2, 3, 4},
	},
	2: {
		Name:       "Followup",
		Statuses:   []string{BTFollowupInitiated},
		NextStages: []int{3, 4},
	},
	3: {
		Name:             "Returned via Bank Transfer",
		Statuses:         []string{BTReturnViaBank},
		TerminalStatuses: []string{BTReturnViaBank},
	},
	4: {
		Name:     "Settled with Project",
		Statuses: []string{BTSettledWithProject},
	},
}

var portalStages = map[int]Stage{
	1: {
		Name: "Accounts Form",
		Statuses: []string{
			PortalRequested, PortalAccountsFormAccepted, PortalAccountsFormRejected,
			PortalFollowupInitiated, PortalReturnViaBank, PortalSettledWithProject,
		},
		TerminalStatuses: []string{PortalAccountsFormRejected},
		NextStages:       []int{2, 3, 4},
	},
	2: {
		Name:       "Followup",
		Statuses:   []string{PortalFollowupInitiated},
		NextStages: []int{3, 4},
	},
	3: {
		Name:             "Returned via Bank Transfer",
		Statuses:         []string{PortalReturnViaBank},
		TerminalStatuses: []string{PortalReturnViaBank},
	},
	4: {
		Name:     "Settled with Project",
		Statuses: []string{PortalSettledWithProject},
	},
}

// StagesFor возвращает схему этапов типа инструмента
func StagesFor(t ds.InstrumentType) map[int]Stage {
	switch t {
	case ds.InstrumentDD:
		return ddStages
	case ds.InstrumentFDR:
		return fdrStages
	case ds.InstrumentBG:
		return bgStages
	case ds.InstrumentCheque:
		return chequeStages
	case ds.InstrumentBankTransfer:
		return btStages
	case ds.InstrumentPortalPayment:
		return portalStages
	}
	return nil
}

// StageFromStatus возвращает номер этапа, которому принадлежит статус,
// или 0 для неизвестного статуса. Статус может числиться в нескольких
// этапах (followup входит и в первый этап), берётся наименьший номер
func StageFromStatus(t ds.InstrumentType, s string) int {
	stages := StagesFor(t)
	for num := 1; num <= len(stages); num++ {
		for _, st := range stages[num].Statuses {
			if st == s {
				return num
			}
		}
	}
	return 0
}

// IsTerminal — статус терминален на своём этапе
func IsTerminal(t ds.InstrumentType, s string) bool {
	for _, stage := range StagesFor(t) {
		for _, st := range stage.TerminalStatuses {
			if st == s {
				return true
			}
		}
	}
	return false
}

// NextAvailableStages возвращает этапы, доступные из текущего статуса.
// Терминальность проверяется только в рамках разрешённого этапа;
// для неизвестного статуса возвращает пустой список
func NextAvailableStages(t ds.InstrumentType, current string) []int {
	stageNum := StageFromStatus(t, current)
	if stageNum == 0 {
		return nil
	}
	stage := StagesFor(t)[stageNum]
	for _, st := range stage.TerminalStatuses {
		if st == current {
			return nil
		}
	}
	return stage.NextStages
}

// CheckTransition проверяет допустимость перехода current -> next.
// Отклонённый инструмент не переводится (только пересоздание),
// терминальный статус переходов не допускает
func CheckTransition(t ds.InstrumentType, current, next string) error {
	if IsRejected(current) {
		return fmt.Errorf("переход из статуса отклонения невозможен, требуется пересоздание")
	}
	if IsTerminal(t, current) {
		return fmt.Errorf("переход из терминального статуса %q невозможен", current)
	}
	nextStage := StageFromStatus(t, next)
	if nextStage == 0 {
		return errUnknownStatus(t, next)
	}
	currentStage := StageFromStatus(t, current)
	if currentStage == nextStage {
		return nil
	}
	for _, s := range NextAvailableStages(t, current) {
		if s == nextStage {
			return nil
		}
	}
	return fmt.Errorf("переход с этапа %d на этап %d невозможен", currentStage, nextStage)
}
