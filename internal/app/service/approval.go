package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tms/internal/app/ds"
	"tms/internal/app/dto"
	"tms/internal/app/role"

	"github.com/sirupsen/logrus"
)

// ApprovalService применяет решение тимлида по тендеру: одобрение,
// отклонение или возврат на доработку. Таймеры этапов запускаются
// после фиксации транзакции
type ApprovalService struct {
	store  Store
	timers TimerClient
}

func NewApprovalService(store Store, timers TimerClient) *ApprovalService {
	return &ApprovalService{store: store, timers: timers}
}

// дедлайн чеклиста привязывается к дедлайну тендера минус 72 часа;
// без дедлайна даётся фиксированное окно в сутки
const (
	checklistLeadTime  = 72 * time.Hour
	checklistFallback  = 24 * time.Hour
	timerFixedDuration = "FIXED_DURATION"
	timerNegCountdown  = "NEGATIVE_COUNTDOWN"
)

// ApprovalView — текущее решение тимлида по тендеру
type ApprovalView struct {
	TenderID                   uint                       `json:"tenderId"`
	TlStatus                   ds.TlStatus                `json:"tlStatus"`
	RfqTo                      []uint                     `json:"rfqTo"`
	TenderFeeMode              *string                    `json:"tenderFeeMode"`
	EmdMode                    *string                    `json:"emdMode"`
	ProcessingFeeMode          *string                    `json:"processingFeeMode"`
	ApprovePqrSelection        *string                    `json:"approvePqrSelection"`
	ApproveFinanceDocSelection *string                    `json:"approveFinanceDocSelection"`
	AltPqrDocs                 []string                   `json:"altPqrDocs"`
	AltFinanceDocs             []string                   `json:"altFinanceDocs"`
	TlRejectionRemarks         *string                    `json:"tlRejectionRemarks"`
	OemNotAllowed              *string                    `json:"oemNotAllowed"`
	TenderStatus               int                        `json:"tenderStatus"`
	IncompleteFields           []ds.TenderIncompleteField `json:"incompleteFields"`
}

// Decide применяет решение тимлида. Все изменения тендера пишутся в одной
// транзакции; при одобрении после фиксации запускаются таймеры этапов
func (s *ApprovalService) Decide(tenderID uint, payload *dto.TenderApprovalInput, actor *role.Actor) (*ApprovalView, error) {
	tender, err := s.store.GetTender(tenderID)
	if err != nil {
		return nil, fmt.Errorf("%w: тендер %d", ErrNotFound, tenderID)
	}
	infoSheet, _ := s.store.GetInfoSheet(tenderID)

	var decideErr error
	switch ds.TlStatus(payload.TlStatus) {
	case ds.TlApproved:
		decideErr = s.approve(tender, infoSheet, payload, actor)
	case ds.TlRejected:
		decideErr = s.reject(tender, payload, actor)
	case ds.TlIncomplete:
		decideErr = s.markIncomplete(tender, payload, actor)
	case ds.TlPending:
		decideErr = s.resetToPending(tender)
	default:
		return nil, fmt.Errorf("%w: неизвестное значение tlStatus %d", ErrBadRequest, payload.TlStatus)
	}
	if decideErr != nil {
		return nil, decideErr
	}

	if ds.TlStatus(payload.TlStatus) == ds.TlApproved {
		s.startApprovalTimers(tender, infoSheet, payload, actor)
	}

	return s.GetByTenderID(tenderID)
}

func (s *ApprovalService) approve(tender *ds.TenderInfo, infoSheet *ds.TenderInfoSheet, payload *dto.TenderApprovalInput, actor *role.Actor) error {
	return s.store.InTx(func(tx Store) error {
		if err := tx.DeleteIncompleteFields(tender.ID); err != nil {
			return err
		}

		fields := map[string]interface{}{
			"tl_status":                     ds.TlApproved,
			"status":                        ds.TenderStatusInfoApproved,
			"rfq_to":                        joinUints(payload.RfqTo),
			"tender_fee_mode":               strPtr(payload.TenderFeeMode),
			"emd_mode":                      strPtr(payload.EmdMode),
			"processing_fee_mode":           strPtr(payload.ProcessingFeeMode),
			"approve_pqr_selection":         strPtr(payload.ApprovePqrSelection),
			"approve_finance_doc_selection": strPtr(payload.ApproveFinanceDocSelection),
			"alt_pqr_docs":                  joinStrings(payload.AltPqrDocs),
			"alt_finance_docs":              joinStrings(payload.AltFinanceDocs),
			"tl_rejection_remarks":          nil,
			"oem_not_allowed":               nil,
			"updated_at":                    time.Now(),
		}

		// одобренные суммы из инфолиста переносятся в тендер
		if infoSheet != nil {
			if infoSheet.EmdAmount != nil {
				fields["emd"] = *infoSheet.EmdAmount
			}
			if infoSheet.TenderFee != nil {
				fields["tender_fees"] = *infoSheet.TenderFee
			}
			if infoSheet.TenderValue != nil {
				fields["gst_values"] = *infoSheet.TenderValue
			}
		}

		if err := tx.UpdateTender(tender.ID, fields); err != nil {
			return err
		}
		return s.appendHistory(tx, tender, ds.TenderStatusInfoApproved, "Tender info approved", actor)
	})
}

func (s *ApprovalService) reject(tender *ds.TenderInfo, payload *dto.TenderApprovalInput, actor *role.Actor) error {
	if payload.TenderStatus != nil && !isDNBStatus(*payload.TenderStatus) {
		return fmt.Errorf("%w: код %d не входит в набор статусов отклонения", ErrBadRequest, *payload.TenderStatus)
	}

	return s.store.InTx(func(tx Store) error {
		if err := tx.DeleteIncompleteFields(tender.ID); err != nil {
			return err
		}

		fields := map[string]interface{}{
			"tl_status":            ds.TlRejected,
			"tl_rejection_remarks": strPtr(payload.TlRejectionRemarks),
			"oem_not_allowed":      strPtr(payload.OemNotAllowed),
			"rfq_to":               nil,
			"tender_fee_mode":      nil,
			"emd_mode":             nil,
			"processing_fee_mode":  nil,
			"updated_at":           time.Now(),
		}
		if payload.TenderStatus != nil {
			fields["status"] = *payload.TenderStatus
		}

		if err := tx.UpdateTender(tender.ID, fields); err != nil {
			return err
		}
		if payload.TenderStatus != nil {
			return s.appendHistory(tx, tender, *payload.TenderStatus, "Tender rejected", actor)
		}
		return nil
	})
}

func (s *ApprovalService) markIncomplete(tender *ds.TenderInfo, payload *dto.TenderApprovalInput, actor *role.Actor) error {
	if len(payload.IncompleteFields) == 0 {
		return fmt.Errorf("%w: не указаны незаполненные поля", ErrBadRequest)
	}

	return s.store.InTx(func(tx Store) error {
		fields := map[string]interface{}{
			"tl_status":                     ds.TlIncomplete,
			"status":                        ds.TenderStatusIncomplete,
			"rfq_to":                        nil,
			"tender_fee_mode":               nil,
			"emd_mode":                      nil,
			"processing_fee_mode":           nil,
			"approve_pqr_selection":         nil,
			"approve_finance_doc_selection": nil,
			"alt_pqr_docs":                  nil,
			"alt_finance_docs":              nil,
			"tl_rejection_remarks":          nil,
			"oem_not_allowed":               nil,
			"updated_at":                    time.Now(),
		}
		if err := tx.UpdateTender(tender.ID, fields); err != nil {
			return err
		}

		// набор полей заменяется целиком
		if err := tx.DeleteIncompleteFields(tender.ID); err != nil {
			return err
		}
		rows := make([]ds.TenderIncompleteField, 0, len(payload.IncompleteFields))
		for _, fld := range payload.IncompleteFields {
			rows = append(rows, ds.TenderIncompleteField{
				TenderID:  tender.ID,
				FieldName: fld.FieldName,
				Comment:   fld.Comment,
				Status:    "pending",
				CreatedAt: time.Now(),
			})
		}
		if err := tx.InsertIncompleteFields(rows); err != nil {
			return err
		}
		return s.appendHistory(tx, tender, ds.TenderStatusIncomplete, "Tender info sheet incomplete", actor)
	})
}

func (s *ApprovalService) resetToPending(tender *ds.TenderInfo) error {
	return s.store.InTx(func(tx Store) error {
		if err := tx.DeleteIncompleteFields(tender.ID); err != nil {
			return err
		}
		return tx.UpdateTender(tender.ID, map[string]interface{}{
			"tl_status":  ds.TlPending,
			"updated_at": time.Now(),
		})
	})
}

func (s *ApprovalService) appendHistory(tx Store, tender *ds.TenderInfo, toStatus int, comment string, actor *role.Actor) error {
	prev := tender.Status
	h := &ds.TenderStatusHistory{
		TenderID:   tender.ID,
		FromStatus: &prev,
		ToStatus:   toStatus,
		Comment:    comment,
		CreatedAt:  time.Now(),
	}
	if actor != nil {
		h.ChangedBy = actor.UserID
	}
	return tx.AppendTenderStatusHistory(h)
}

// TimerAction — один запуск или остановка таймера этапа
type TimerAction struct {
	Op    string // start или stop
	Stage string
	Cfg   TimerConfig
}

// ComputeTimerPlan строит план таймеров после одобрения тендера.
// Таймер согласования останавливается; rfq_sent, emd_requested и
// physical_docs запускаются по условиям; чеклист и costing sheets
// запускаются всегда, с обратным отсчётом от дедлайна тендера
func ComputeTimerPlan(tender *ds.TenderInfo, infoSheet *ds.TenderInfoSheet, payload *dto.TenderApprovalInput, now time.Time) []TimerAction {
	plan := []TimerAction{{Op: "stop", Stage: ds.TimerStageTenderApproval}}

	if len(payload.RfqTo) > 0 {
		plan = append(plan, TimerAction{Op: "start", Stage: ds.TimerStageRfqSent, Cfg: TimerConfig{
			Type:        timerFixedDuration,
			AllocatedMs: checklistFallback.Milliseconds(),
		}})
	}
	if payload.EmdMode != "" && tender.Emd > 0 {
		plan = append(plan, TimerAction{Op: "start", Stage: ds.TimerStageEmdRequested, Cfg: TimerConfig{
			Type:        timerFixedDuration,
			AllocatedMs: checklistFallback.Milliseconds(),
		}})
	}
	if infoSheet != nil && infoSheet.PhysicalDocsRequired {
		plan = append(plan, TimerAction{Op: "start", Stage: ds.TimerStagePhysicalDocs, Cfg: TimerConfig{
			Type:        timerFixedDuration,
			AllocatedMs: checklistFallback.Milliseconds(),
		}})
	}

	var checklistCfg TimerConfig
	if tender.DueDate != nil {
		deadline := tender.DueDate.Add(-checklistLeadTime)
		checklistCfg = TimerConfig{
			Type:        timerNegCountdown,
			AllocatedMs: deadline.Sub(now).Milliseconds(),
			DeadlineAt:  &deadline,
		}
	} else {
		checklistCfg = TimerConfig{
			Type:        timerFixedDuration,
			AllocatedMs: checklistFallback.Milliseconds(),
		}
	}
	plan = append(plan,
		TimerAction{Op: "start", Stage: ds.TimerStageDocumentChecklist, Cfg: checklistCfg},
		TimerAction{Op: "start", Stage: ds.TimerStageCostingSheets, Cfg: checklistCfg},
	)
	return plan
}

// startApprovalTimers применяет план таймеров. Ошибки пишутся в лог,
// каждый таймер независим от остальных
func (s *ApprovalService) startApprovalTimers(tender *ds.TenderInfo, infoSheet *ds.TenderInfoSheet, payload *dto.TenderApprovalInput, actor *role.Actor) {
	if s.timers == nil {
		return
	}
	userID := uint(0)
	if actor != nil {
		userID = actor.UserID
	}

	for _, action := range ComputeTimerPlan(tender, infoSheet, payload, time.Now()) {
		var err error
		switch action.Op {
		case "stop":
			err = s.timers.StopTimer("tender", tender.ID, action.Stage, userID, "Tender info approved")
		case "start":
			err = s.timers.StartTimer("tender", tender.ID, action.Stage, userID, action.Cfg)
		}
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"tender_id": tender.ID,
				"stage":     action.Stage,
				"op":        action.Op,
			}).Error("timer action failed")
		}
	}
}

// GetByTenderID возвращает текущее решение по тендеру
func (s *ApprovalService) GetByTenderID(tenderID uint) (*ApprovalView, error) {
	tender, err := s.store.GetTender(tenderID)
	if err != nil {
		return nil, fmt.Errorf("%w: тендер %d", ErrNotFound, tenderID)
	}
	incomplete, err := s.store.ListIncompleteFields(tenderID)
	if err != nil {
		return nil, err
	}

	return &ApprovalView{
		TenderID:                   tender.ID,
		TlStatus:                   tender.TlStatus,
		RfqTo:                      splitUints(tender.RfqTo),
		TenderFeeMode:              tender.TenderFeeMode,
		EmdMode:                    tender.EmdMode,
		ProcessingFeeMode:          tender.ProcessingFeeMode,
		ApprovePqrSelection:        tender.ApprovePqrSelection,
		ApproveFinanceDocSelection: tender.ApproveFinanceDocSelection,
		AltPqrDocs:                 splitStrings(tender.AltPqrDocs),
		AltFinanceDocs:             splitStrings(tender.AltFinanceDocs),
		TlRejectionRemarks:         tender.TlRejectionRemarks,
		OemNotAllowed:              tender.OemNotAllowed,
		TenderStatus:               tender.Status,
		IncompleteFields:           incomplete,
	}, nil
}

// ApprovalListPage — страница списка тендеров на согласовании
type ApprovalListPage struct {
	Tenders []ds.TenderInfo `json:"tenders"`
	Meta    dto.PageMeta    `json:"meta"`
}

// List возвращает тендеры, отфильтрованные по решению тимлида.
// Без фильтра возвращаются все тендеры очереди согласования
func (s *ApprovalService) List(q *dto.ApprovalListQuery) (*ApprovalListPage, error) {
	var tl *ds.TlStatus
	if q.TlStatus != nil {
		v := ds.TlStatus(*q.TlStatus)
		if v < ds.TlPending || v > ds.TlIncomplete {
			return nil, fmt.Errorf("%w: неизвестное значение tlStatus %d", ErrBadRequest, *q.TlStatus)
		}
		tl = &v
	}

	page := clampPage(PageRequest{
		Page:      q.Page,
		Limit:     q.Limit,
		SortBy:    q.SortBy,
		SortOrder: strings.ToLower(q.SortOrder),
	})

	rows, total, err := s.store.ListTendersByTlStatus(tl, page)
	if err != nil {
		return nil, err
	}
	return &ApprovalListPage{Tenders: rows, Meta: pageMeta(page, total)}, nil
}

func isDNBStatus(code int) bool {
	for _, s := range ds.TenderDNBStatuses {
		if s == code {
			return true
		}
	}
	return false
}

func joinUints(ids []uint) *string {
	if len(ids) == 0 {
		return nil
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	joined := strings.Join(parts, ",")
	return &joined
}

func splitUints(raw *string) []uint {
	if raw == nil || *raw == "" {
		return nil
	}
	var out []uint
	for _, part := range strings.Split(*raw, ",") {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			continue
		}
		out = append(out, uint(v))
	}
	return out
}

func joinStrings(values []string) *string {
	if len(values) == 0 {
		return nil
	}
	joined := strings.Join(values, ",")
	return &joined
}

func splitStrings(raw *string) []string {
	if raw == nil || *raw == "" {
		return nil
	}
	return strings.Split(*raw, ",")
}
