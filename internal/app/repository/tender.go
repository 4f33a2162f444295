package repository

import (
	"tms/internal/app/ds"
	"tms/internal/app/service"

	"gorm.io/gorm"
)

// Методы для тендеров (ORM)

func (r *Repository) GetTender(id uint) (*ds.TenderInfo, error) {
	var tender ds.TenderInfo
	err := r.db.First(&tender, id).Error
	if err != nil {
		return nil, err
	}
	return &tender, nil
}

func (r *Repository) GetInfoSheet(tenderID uint) (*ds.TenderInfoSheet, error) {
	var sheet ds.TenderInfoSheet
	err := r.db.Where("tender_id = ?", tenderID).First(&sheet).Error
	if err != nil {
		return nil, err
	}
	return &sheet, nil
}

func (r *Repository) UpdateTender(id uint, fields map[string]interface{}) error {
	return r.db.Model(&ds.TenderInfo{}).Where("id = ?", id).Updates(fields).Error
}

func (r *Repository) AppendTenderStatusHistory(h *ds.TenderStatusHistory) error {
	return r.db.Create(h).Error
}

func (r *Repository) DeleteIncompleteFields(tenderID uint) error {
	return r.db.Where("tender_id = ?", tenderID).Delete(&ds.TenderIncompleteField{}).Error
}

func (r *Repository) InsertIncompleteFields(rows []ds.TenderIncompleteField) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.Create(&rows).Error
}

func (r *Repository) ListIncompleteFields(tenderID uint) ([]ds.TenderIncompleteField, error) {
	var rows []ds.TenderIncompleteField
	err := r.db.Where("tender_id = ?", tenderID).Order("id").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) approvalTendersQuery(tlStatus *ds.TlStatus) *gorm.DB {
	q := r.db.Model(&ds.TenderInfo{}).Where("tender_infos.is_active = ?", true)
	if tlStatus != nil {
		q = q.Where("tender_infos.tl_status = ?", *tlStatus)
	}
	return q
}

// ListTendersByTlStatus — очередь согласования тимлида; nil означает
// отсутствие фильтра по решению
func (r *Repository) ListTendersByTlStatus(tlStatus *ds.TlStatus, p service.PageRequest) ([]ds.TenderInfo, int64, error) {
	var total int64
	if err := r.approvalTendersQuery(tlStatus).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := []ds.TenderInfo{}
	err := r.approvalTendersQuery(tlStatus).
		Order(tenderOrderClause(p)).
		Offset((p.Page - 1) * p.Limit).
		Limit(p.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
