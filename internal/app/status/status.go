// Пакет status хранит фиксированные словари статусов платёжных инструментов,
// схемы этапов и чистую функцию классификации статуса по корзинам дашборда.
// Таблицы неизменяемы и загружаются один раз при старте процесса
package status

import (
	"fmt"
	"strings"

	"tms/internal/app/ds"
)

// Статусы Demand Draft
const (
	DDRequested             = "DD_REQUESTED"
	DDAccountsFormAccepted  = "DD_ACCOUNTS_FORM_ACCEPTED"
	DDAccountsFormRejected  = "DD_ACCOUNTS_FORM_REJECTED"
	DDFollowupInitiated     = "DD_FOLLOWUP_INITIATED"
	DDReturnViaCourier      = "DD_RETURN_VIA_COURIER"
	DDReturnViaBank         = "DD_RETURN_VIA_BANK_TRANSFER"
	DDSettledWithProject    = "DD_SETTLED_WITH_PROJECT"
	DDCancellationRequested = "DD_CANCELLATION_REQUESTED"
	DDCancelledAtBranch     = "DD_CANCELLED_AT_BRANCH"
)

// Статусы Fixed Deposit Receipt
const (
	FDRRequested             = "FDR_REQUESTED"
	FDRAccountsFormAccepted  = "FDR_ACCOUNTS_FORM_ACCEPTED"
	FDRAccountsFormRejected  = "FDR_ACCOUNTS_FORM_REJECTED"
	FDRFollowupInitiated     = "FDR_FOLLOWUP_INITIATED"
	FDRReturnViaCourier      = "FDR_RETURN_VIA_COURIER"
	FDRReturnViaBank         = "FDR_RETURN_VIA_BANK_TRANSFER"
	FDRSettledWithProject    = "FDR_SETTLED_WITH_PROJECT"
	FDRCancellationRequested = "FDR_CANCELLATION_REQUESTED"
	FDRCancelledAtBranch     = "FDR_CANCELLED_AT_BRANCH"
)

// Статусы чека
const (
	ChequeRequested            = "CHEQUE_REQUESTED"
	ChequeAccountsFormAccepted = "CHEQUE_ACCOUNTS_FORM_ACCEPTED"
	ChequeAccountsFormRejected = "CHEQUE_ACCOUNTS_FORM_REJECTED"
	ChequeFollowupInitiated    = "CHEQUE_FOLLOWUP_INITIATED"
	ChequeStopFromBank         = "CHEQUE_STOP_FROM_BANK"
	ChequeDepositedInBank      = "CHEQUE_DEPOSITED_IN_BANK"
	ChequePaidViaBank          = "CHEQUE_PAID_VIA_BANK_TRANSFER"
	ChequeCancelledTorn        = "CHEQUE_CANCELLED_TORN"
)

// Статусы Bank Guarantee
const (
	BGRequested                = "BG_REQUESTED"
	BGBankRequestAccepted      = "BG_BANK_REQUEST_ACCEPTED"
	BGBankRequestRejected      = "BG_BANK_REQUEST_REJECTED"
	BGCreated                  = "BG_CREATED"
	BGFdrCaptured              = "BG_FDR_CAPTURED"
	BGFollowupInitiated        = "BG_FOLLOWUP_INITIATED"
	BGExtensionRequested       = "BG_EXTENSION_REQUESTED"
	BGReturnViaCourier         = "BG_RETURN_VIA_COURIER"
	BGCancellationRequested    = "BG_CANCELLATION_REQUESTED"
	BGCancellationConfirmed    = "BG_CANCELLATION_CONFIRMED"
	BGFdrCancellationConfirmed = "BG_FDR_CANCELLATION_CONFIRMED"
)

// Статусы банковского перевода
const (
	BTAccountsFormPending  = "BT_ACCOUNTS_FORM_PENDING"
	BTAccountsFormAccepted = "BT_ACCOUNTS_FORM_ACCEPTED"
	BTAccountsFormRejected = "BT_ACCOUNTS_FORM_REJECTED"
	BTFollowupInitiated    = "BT_FOLLOWUP_INITIATED"
	BTReturnViaBank        = "BT_RETURN_VIA_BANK_TRANSFER"
	BTSettledWithProject   = "BT_SETTLED_WITH_PROJECT"
)

// Статусы оплаты через портал
const (
	PortalRequested            = "PORTAL_REQUESTED"
	PortalAccountsFormAccepted = "PORTAL_ACCOUNTS_FORM_ACCEPTED"
	PortalAccountsFormRejected = "PORTAL_ACCOUNTS_FORM_REJECTED"
	PortalFollowupInitiated    = "PORTAL_FOLLOWUP_INITIATED"
	PortalReturnViaBank        = "PORTAL_RETURN_VIA_BANK_TRANSFER"
	PortalSettledWithProject   = "PORTAL_SETTLED_WITH_PROJECT"
)

// RejectedSuffix — признак статуса отклонения, проверяется раньше
// принадлежности наборам Returned/Approved
const RejectedSuffix = "_REJECTED"

// Initial возвращает начальный статус для типа инструмента
func Initial(t ds.InstrumentType) string {
	switch t {
	case ds.InstrumentDD:
		return DDRequested
	case ds.InstrumentFDR:
		return FDRRequested
	case ds.InstrumentBG:
		return BGRequested
	case ds.InstrumentCheque:
		return ChequeRequested
	case ds.InstrumentBankTransfer:
		return BTAccountsFormPending
	case ds.InstrumentPortalPayment:
		return PortalRequested
	}
	return "PENDING"
}

// Rejected возвращает статус отклонения для типа инструмента.
// В словаре каждого типа ровно один статус отклонения:
// у BG отклоняется запрос в банк, у остальных — форма счетов
func Rejected(t ds.InstrumentType) string {
	switch t {
	case ds.InstrumentDD:
		return DDAccountsFormRejected
	case ds.InstrumentFDR:
		return FDRAccountsFormRejected
	case ds.InstrumentBG:
		return BGBankRequestRejected
	case ds.InstrumentCheque:
		return ChequeAccountsFormRejected
	case ds.InstrumentBankTransfer:
		return BTAccountsFormRejected
	case ds.InstrumentPortalPayment:
		return PortalAccountsFormRejected
	}
	return ""
}

// IsRejected — статус является отклонением (по суффиксу)
func IsRejected(s string) bool {
	return strings.HasSuffix(s, RejectedSuffix)
}

// RejectedLikePattern — шаблон LIKE для статусов отклонения. Подчёркивание
// экранировано, иначе LIKE трактует его как одиночный произвольный символ
func RejectedLikePattern() string {
	return "%" + strings.ReplaceAll(RejectedSuffix, "_", `\_`)
}

// Bucket — корзина дашборда, вычисляется из сырого статуса и никогда не хранится
type Bucket string

const (
	BucketPending  Bucket = "Pending"
	BucketSent     Bucket = "Sent"
	BucketApproved Bucket = "Approved"
	BucketRejected Bucket = "Rejected"
	BucketReturned Bucket = "Returned"
)

// approvedSet — статусы, попадающие в корзину Approved
var approvedSet = map[string]struct{}{
	DDAccountsFormAccepted:     {},
	FDRAccountsFormAccepted:    {},
	BGBankRequestAccepted:      {},
	ChequeAccountsFormAccepted: {},
	BTAccountsFormAccepted:     {},
	PortalAccountsFormAccepted: {},
	BTSettledWithProject:       {},
	PortalSettledWithProject:   {},
	BGCreated:                  {},
}

// returnedSet — статусы, попадающие в корзину Returned
var returnedSet = map[string]struct{}{
	DDReturnViaCourier:         {},
	FDRReturnViaCourier:        {},
	BGReturnViaCourier:         {},
	DDReturnViaBank:            {},
	FDRReturnViaBank:           {},
	BTReturnViaBank:            {},
	PortalReturnViaBank:        {},
	DDCancelledAtBranch:        {},
	BGCancellationConfirmed:    {},
	BGFdrCancellationConfirmed: {},
	ChequeCancelledTorn:        {},
	DDSettledWithProject:       {},
}

// Classify относит сырой статус к одной из пяти корзин.
// Порядок проверок существенен: суффикс отклонения проверяется раньше
// наборов, поэтому статус не может быть одновременно Rejected и Returned
func Classify(raw string) Bucket {
	if raw == "" {
		return BucketPending
	}
	if IsRejected(raw) {
		return BucketRejected
	}
	if _, ok := returnedSet[raw]; ok {
		return BucketReturned
	}
	if _, ok := approvedSet[raw]; ok {
		return BucketApproved
	}
	return BucketSent
}

// ClassifyForTab — вариант для вкладок по заявкам: заявка без статуса
// инструмента считается отправленной, а не ожидающей
func ClassifyForTab(raw string) Bucket {
	if raw == "" {
		return BucketSent
	}
	return Classify(raw)
}

// ApprovedStatuses возвращает копию набора Approved для SQL-предикатов
func ApprovedStatuses() []string {
	return setToSlice(approvedSet)
}

// ReturnedStatuses возвращает копию набора Returned для SQL-предикатов
func ReturnedStatuses() []string {
	return setToSlice(returnedSet)
}

func setToSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	return out
}

// Label переводит SCREAMING_SNAKE_CASE в человекочитаемый вид,
// отбрасывая префикс типа: DD_ACCOUNTS_FORM_ACCEPTED -> "Accounts Form Accepted"
func Label(s string) string {
	trimmed := s
	for _, p := range []string{"DD_", "FDR_", "BG_", "CHEQUE_", "BT_", "PORTAL_"} {
		if strings.HasPrefix(s, p) {
			trimmed = strings.TrimPrefix(s, p)
			break
		}
	}
	words := strings.Split(trimmed, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// ErrUnknownStatus возвращается, когда статус не принадлежит словарю типа
func errUnknownStatus(t ds.InstrumentType, s string) error {
	return fmt.Errorf("статус %q не входит в словарь типа %q", s, t)
}
