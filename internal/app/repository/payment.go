package repository

import (
	"fmt"

	"tms/internal/app/ds"
)

// Методы для платёжных заявок и инструментов (ORM)

func (r *Repository) CreateRequest(req *ds.PaymentRequest) error {
	return r.db.Create(req).Error
}

func (r *Repository) GetRequest(id uint) (*ds.PaymentRequest, error) {
	var req ds.PaymentRequest
	err := r.db.First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *Repository) ListRequestsByTender(tenderID uint) ([]ds.PaymentRequest, error) {
	var requests []ds.PaymentRequest
	err := r.db.Where("tender_id = ?", tenderID).Order("id").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *Repository) UpdateRequest(id uint, fields map[string]interface{}) error {
	return r.db.Model(&ds.PaymentRequest{}).Where("id = ?", id).Updates(fields).Error
}

func (r *Repository) CreateInstrument(inst *ds.PaymentInstrument) error {
	return r.db.Create(inst).Error
}

func (r *Repository) GetInstrument(id uint) (*ds.PaymentInstrument, error) {
	var inst ds.PaymentInstrument
	err := r.db.First(&inst, id).Error
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

func (r *Repository) GetActiveInstrument(requestID uint) (*ds.PaymentInstrument, error) {
	var inst ds.PaymentInstrument
	err := r.db.Where("request_id = ? AND is_active = ?", requestID, true).First(&inst).Error
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

func (r *Repository) ListActiveInstruments(requestID uint) ([]ds.PaymentInstrument, error) {
	var out []ds.PaymentInstrument
	err := r.db.Where("request_id = ? AND is_active = ?", requestID, true).Order("id").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) UpdateInstrument(id uint, fields map[string]interface{}) error {
	return r.db.Model(&ds.PaymentInstrument{}).Where("id = ?", id).Updates(fields).Error
}

func (r *Repository) CreateDdDetail(d *ds.DdDetail) error {
	return r.db.Create(d).Error
}

func (r *Repository) CreateFdrDetail(d *ds.FdrDetail) error {
	return r.db.Create(d).Error
}

func (r *Repository) CreateBgDetail(d *ds.BgDetail) error {
	return r.db.Create(d).Error
}

func (r *Repository) CreateChequeDetail(d *ds.ChequeDetail) error {
	return r.db.Create(d).Error
}

func (r *Repository) CreateTransferDetail(d *ds.TransferDetail) error {
	return r.db.Create(d).Error
}

// GetInstrumentDetails возвращает строку деталей из таблицы,
// соответствующей типу инструмента
func (r *Repository) GetInstrumentDetails(instrumentID uint, t ds.InstrumentType) (interface{}, error) {
	switch t {
	case ds.InstrumentDD:
		var d ds.DdDetail
		if err := r.db.Where("instrument_id = ?", instrumentID).First(&d).Error; err != nil {
			return nil, err
		}
		return &d, nil
	case ds.InstrumentCheque:
		var d ds.ChequeDetail
		if err := r.db.Where("instrument_id = ?", instrumentID).First(&d).Error; err != nil {
			return nil, err
		}
		return &d, nil
	case ds.InstrumentFDR:
		var d ds.FdrDetail
		if err := r.db.Where("instrument_id = ?", instrumentID).First(&d).Error; err != nil {
			return nil, err
		}
		return &d, nil
	case ds.InstrumentBG:
		var d ds.BgDetail
		if err := r.db.Where("instrument_id = ?", instrumentID).First(&d).Error; err != nil {
			return nil, err
		}
		return &d, nil
	case ds.InstrumentBankTransfer, ds.InstrumentPortalPayment:
		var d ds.TransferDetail
		if err := r.db.Where("instrument_id = ?", instrumentID).First(&d).Error; err != nil {
			return nil, err
		}
		return &d, nil
	}
	return nil, fmt.Errorf("неизвестный тип инструмента %q", t)
}

func (r *Repository) UpdateDetailFields(instrumentID uint, t ds.InstrumentType, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	var model interface{}
	switch t {
	case ds.InstrumentDD:
		model = &ds.DdDetail{}
	case ds.InstrumentFDR:
		model = &ds.FdrDetail{}
	case ds.InstrumentBG:
		model = &ds.BgDetail{}
	case ds.InstrumentCheque:
		model = &ds.ChequeDetail{}
	case ds.InstrumentBankTransfer, ds.InstrumentPortalPayment:
		model = &ds.TransferDetail{}
	default:
		return fmt.Errorf("неизвестный тип инструмента %q", t)
	}
	return r.db.Model(model).Where("instrument_id = ?", instrumentID).Updates(fields).Error
}

func (r *Repository) AppendInstrumentHistory(h *ds.InstrumentStatusHistory) error {
	return r.db.Create(h).Error
}

func (r *Repository) ListInstrumentHistory(instrumentID uint) ([]ds.InstrumentStatusHistory, error) {
	var out []ds.InstrumentStatusHistory
	err := r.db.Where("instrument_id = ?", instrumentID).Order("created_at, id").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
