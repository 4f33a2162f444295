package service

import (
	"encoding/json"
	"fmt"
	"time"

	"tms/internal/app/ds"
	"tms/internal/app/role"
	"tms/internal/app/status"
)

// InstrumentService применяет переходы статусов инструментов,
// ведёт историю и поддерживает пересоздание после отклонения
type InstrumentService struct {
	store Store
}

func NewInstrumentService(store Store) *InstrumentService {
	return &InstrumentService{store: store}
}

// StageOption — доступный следующий этап для клиента
type StageOption struct {
	Stage    int      `json:"stage"`
	Name     string   `json:"name"`
	Statuses []string `json:"statuses"`
}

// InstrumentActions — проекция таблицы переходов для текущего состояния
type InstrumentActions struct {
	NextStages     []StageOption     `json:"nextStages"`
	CanResubmit    bool              `json:"canResubmit"`
	CurrentStatus  string            `json:"currentStatus"`
	InstrumentType ds.InstrumentType `json:"instrumentType"`
	IsTerminal     bool              `json:"isTerminal,omitempty"`
}

// Transition переводит инструмент в новый статус. Переход проверяется по
// таблице этапов; статус и запись истории фиксируются в одной транзакции
func (s *InstrumentService) Transition(instrumentID uint, newStatus string, formData map[string]interface{}, actor *role.Actor, remarks string) (*ds.PaymentInstrument, error) {
	inst, err := s.store.GetInstrument(instrumentID)
	if err != nil {
		return nil, fmt.Errorf("%w: инструмент %d", ErrNotFound, instrumentID)
	}

	if err := status.CheckTransition(inst.InstrumentType, inst.Status, newStatus); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	newStage := status.StageFromStatus(inst.InstrumentType, newStatus)

	err = s.store.InTx(func(tx Store) error {
		if err := tx.UpdateInstrument(instrumentID, map[string]interface{}{
			"status":        newStatus,
			"current_stage": newStage,
			"updated_at":    time.Now(),
		}); err != nil {
			return err
		}
		if len(formData) > 0 {
			if err := tx.UpdateDetailFields(instrumentID, inst.InstrumentType, formData); err != nil {
				return err
			}
		}
		return tx.AppendInstrumentHistory(s.historyEntry(inst, newStatus, formData, actor, remarks, ""))
	})
	if err != nil {
		return nil, err
	}

	return s.store.GetInstrument(instrumentID)
}

// Reject переводит инструмент в статус отклонения для его типа
// и сохраняет причину
func (s *InstrumentService) Reject(instrumentID uint, reason string, actor *role.Actor) (*ds.PaymentInstrument, error) {
	inst, err := s.store.GetInstrument(instrumentID)
	if err != nil {
		return nil, fmt.Errorf("%w: инструмент %d", ErrNotFound, instrumentID)
	}

	rejected := status.Rejected(inst.InstrumentType)

	err = s.store.InTx(func(tx Store) error {
		if err := tx.UpdateInstrument(instrumentID, map[string]interface{}{
			"status":           rejected,
			"rejection_reason": reason,
			"updated_at":       time.Now(),
		}); err != nil {
			return err
		}
		return tx.AppendInstrumentHistory(s.historyEntry(inst, rejected, nil, actor, "", reason))
	})
	if err != nil {
		return nil, err
	}

	return s.store.GetInstrument(instrumentID)
}

// Resubmit создаёт новый инструмент взамен отклонённого. Старая строка
// деактивируется и не изменяется, история новой строки начинается заново
func (s *InstrumentService) Resubmit(rejectedInstrumentID uint, formData map[string]interface{}, actor *role.Actor) (*ds.PaymentInstrument, error) {
	old, err := s.store.GetInstrument(rejectedInstrumentID)
	if err != nil {
		return nil, fmt.Errorf("%w: инструмент %d", ErrNotFound, rejectedInstrumentID)
	}
	if !status.IsRejected(old.Status) {
		return nil, fmt.Errorf("%w: инструмент %d не находится в статусе отклонения", ErrBadRequest, rejectedInstrumentID)
	}

	initial := status.Initial(old.InstrumentType)
	fresh := &ds.PaymentInstrument{
		RequestID:       old.RequestID,
		InstrumentType:  old.InstrumentType,
		Amount:          old.Amount,
		Favouring:       old.Favouring,
		PayableAt:       old.PayableAt,
		CourierAddress:  old.CourierAddress,
		CourierDeadline: old.CourierDeadline,
		Status:          initial,
		CurrentStage:    1,
		IsActive:        true,
		CreatedAt:       time.Now(),
	}

	err = s.store.InTx(func(tx Store) error {
		if err := tx.UpdateInstrument(rejectedInstrumentID, map[string]interface{}{"is_active": false}); err != nil {
			return err
		}
		if err := tx.CreateInstrument(fresh); err != nil {
			return err
		}
		if err := createEmptyDetail(tx, fresh.ID, fresh.InstrumentType); err != nil {
			return err
		}
		if len(formData) > 0 {
			if err := tx.UpdateDetailFields(fresh.ID, fresh.InstrumentType, formData); err != nil {
				return err
			}
		}

		// история новой цепочки начинается заново: FromStatus пустой,
		// происхождение несёт PreviousInstrumentID
		entry := &ds.InstrumentStatusHistory{
			InstrumentID:         fresh.ID,
			ToStatus:             initial,
			ToStage:              status.StageFromStatus(fresh.InstrumentType, initial),
			FormData:             marshalFormData(formData),
			IsResubmission:       true,
			PreviousInstrumentID: &old.ID,
			CreatedAt:            time.Now(),
		}
		remarks := "Resubmission after rejection"
		entry.Remarks = &remarks
		applyActor(entry, actor)
		return tx.AppendInstrumentHistory(entry)
	})
	if err != nil {
		return nil, err
	}

	return fresh, nil
}

// AvailableActions возвращает доступные действия без изменения состояния.
// Для отклонённого инструмента единственное действие — пересоздание
func (s *InstrumentService) AvailableActions(instrumentID uint) (*InstrumentActions, error) {
	inst, err := s.store.GetInstrument(instrumentID)
	if err != nil {
		return &InstrumentActions{NextStages: []StageOption{}}, nil
	}

	if status.IsRejected(inst.Status) {
		return &InstrumentActions{
			NextStages:     []StageOption{},
			CanResubmit:    true,
			CurrentStatus:  inst.Status,
			InstrumentType: inst.InstrumentType,
		}, nil
	}

	if status.IsTerminal(inst.InstrumentType, inst.Status) {
		return &InstrumentActions{
			NextStages:     []StageOption{},
			CurrentStatus:  inst.Status,
			InstrumentType: inst.InstrumentType,
			IsTerminal:     true,
		}, nil
	}

	stages := status.StagesFor(inst.InstrumentType)
	next := status.NextAvailableStages(inst.InstrumentType, inst.Status)
	options := make([]StageOption, 0, len(next))
	for _, num := range next {
		cfg := stages[num]
		options = append(options, StageOption{
			Stage:    num,
			Name:     cfg.Name,
			Statuses: cfg.Statuses,
		})
	}

	return &InstrumentActions{
		NextStages:     options,
		CurrentStatus:  inst.Status,
		InstrumentType: inst.InstrumentType,
	}, nil
}

// InstrumentChain — полная история цепочки инструментов с учётом пересозданий
type InstrumentChain struct {
	InstrumentIDs []uint                       `json:"instrumentIds"`
	History       []ds.InstrumentStatusHistory `json:"history"`
}

// History возвращает историю инструмента вместе с историей всех
// предшествующих инструментов его цепочки пересозданий
func (s *InstrumentService) History(instrumentID uint) (*InstrumentChain, error) {
	own, err := s.store.ListInstrumentHistory(instrumentID)
	if err != nil {
		return nil, err
	}

	chain := []uint{}
	for _, h := range own {
		if h.IsResubmission && h.PreviousInstrumentID != nil {
			chain = append(chain, *h.PreviousInstrumentID)
		}
	}
	chain = append(chain, instrumentID)

	full := make([]ds.InstrumentStatusHistory, 0, len(own))
	for _, id := range chain {
		part, err := s.store.ListInstrumentHistory(id)
		if err != nil {
			return nil, err
		}
		full = append(full, part...)
	}

	// история упорядочена по времени записи
	for i := 1; i < len(full); i++ {
		for j := i; j > 0 && full[j].CreatedAt.Before(full[j-1].CreatedAt); j-- {
			full[j], full[j-1] = full[j-1], full[j]
		}
	}

	return &InstrumentChain{InstrumentIDs: chain, History: full}, nil
}

func (s *InstrumentService) historyEntry(inst *ds.PaymentInstrument, toStatus string, formData map[string]interface{}, actor *role.Actor, remarks, rejectionReason string) *ds.InstrumentStatusHistory {
	entry := &ds.InstrumentStatusHistory{
		InstrumentID: inst.ID,
		FromStatus:   inst.Status,
		ToStatus:     toStatus,
		FromStage:    status.StageFromStatus(inst.InstrumentType, inst.Status),
		ToStage:      status.StageFromStatus(inst.InstrumentType, toStatus),
		FormData:     marshalFormData(formData),
		CreatedAt:    time.Now(),
	}
	if remarks != "" {
		entry.Remarks = &remarks
	}
	if rejectionReason != "" {
		entry.RejectionReason = &rejectionReason
	}
	applyActor(entry, actor)
	return entry
}

func applyActor(entry *ds.InstrumentStatusHistory, actor *role.Actor) {
	if actor == nil {
		return
	}
	entry.ChangedBy = actor.UserID
	entry.ChangedByName = actor.Name
	entry.ChangedByRole = fmt.Sprintf("%d", actor.Role)
}

func marshalFormData(formData map[string]interface{}) *string {
	if len(formData) == 0 {
		return nil
	}
	raw, err := json.Marshal(formData)
	if err != nil {
		return nil
	}
	str := string(raw)
	return &str
}

// createEmptyDetail создаёт пустую строку деталей нужного типа
func createEmptyDetail(tx Store, instrumentID uint, t ds.InstrumentType) error {
	switch t {
	case ds.InstrumentDD:
		return tx.CreateDdDetail(&ds.DdDetail{InstrumentID: instrumentID})
	case ds.InstrumentFDR:
		return tx.CreateFdrDetail(&ds.FdrDetail{InstrumentID: instrumentID})
	case ds.InstrumentBG:
		return tx.CreateBgDetail(&ds.BgDetail{InstrumentID: instrumentID})
	case ds.InstrumentCheque:
		return tx.CreateChequeDetail(&ds.ChequeDetail{InstrumentID: instrumentID})
	case ds.InstrumentBankTransfer, ds.InstrumentPortalPayment:
		return tx.CreateTransferDetail(&ds.TransferDetail{InstrumentID: instrumentID})
	}
	return fmt.Errorf("%w: неизвестный тип инструмента %q", ErrBadRequest, t)
}
