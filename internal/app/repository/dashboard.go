package repository

import (
	"tms/internal/app/ds"
	"tms/internal/app/dto"
	"tms/internal/app/role"
	"tms/internal/app/service"
	"tms/internal/app/status"

	"gorm.io/gorm"
)

// Выборки дашборда. Счётчик и список каждой вкладки строятся на одном
// и том же запросе, отличие только в пагинации

// applyTenderVisibility сужает запрос по тендерам согласно видимости роли
func applyTenderVisibility(q *gorm.DB, vis role.Visibility) *gorm.DB {
	switch {
	case vis.None:
		return q.Where("1 = 0")
	case vis.TeamID != nil:
		return q.Where("tender_infos.team_id = ?", *vis.TeamID)
	case vis.OwnerID != nil:
		return q.Where("tender_infos.team_member = ?", *vis.OwnerID)
	}
	return q
}

// applyRequestVisibility — то же для платёжных заявок: команда берётся
// из тендера заявки, владелец — из поля requested_by
func applyRequestVisibility(q *gorm.DB, vis role.Visibility) *gorm.DB {
	switch {
	case vis.None:
		return q.Where("1 = 0")
	case vis.TeamID != nil:
		return q.Where("tender_infos.team_id = ?", *vis.TeamID)
	case vis.OwnerID != nil:
		return q.Where("payment_requests.requested_by = ?", *vis.OwnerID)
	}
	return q
}

// pendingTendersQuery: одобренные активные тендеры с ненулевыми сборами,
// по которым ещё не создано ни одной платёжной заявки
func (r *Repository) pendingTendersQuery(vis role.Visibility) *gorm.DB {
	q := r.db.Model(&ds.TenderInfo{}).
		Where("tender_infos.is_active = ?", true).
		Where("tender_infos.tl_status = ?", ds.TlApproved).
		Where("tender_infos.status NOT IN ?", append(append([]int{}, ds.TenderDNBStatuses...), ds.TenderStatusLost)).
		Where("(tender_infos.emd > 0 OR tender_infos.tender_fees > 0 OR EXISTS ("+
			"SELECT 1 FROM tender_info_sheets s WHERE s.tender_id = tender_infos.id AND s.processing_fee_amount > 0))").
		Where("NOT EXISTS (SELECT 1 FROM payment_requests p WHERE p.tender_id = tender_infos.id)")
	return applyTenderVisibility(q, vis)
}

func (r *Repository) CountPendingTenders(vis role.Visibility) (int64, error) {
	var count int64
	err := r.pendingTendersQuery(vis).Count(&count).Error
	return count, err
}

func (r *Repository) ListPendingTenders(vis role.Visibility, p service.PageRequest) ([]dto.PendingTenderRow, int64, error) {
	total, err := r.CountPendingTenders(vis)
	if err != nil {
		return nil, 0, err
	}

	rows := []dto.PendingTenderRow{}
	err = r.pendingTendersQuery(vis).
		Select(`tender_infos.id AS tender_id,
			tender_infos.tender_no,
			tender_infos.tender_name,
			tender_infos.due_date,
			tender_infos.team_member AS team_member_id,
			COALESCE(users.full_name, '') AS team_member_name,
			tender_infos.emd,
			tender_infos.emd_mode,
			tender_infos.tender_fees AS tender_fee,
			tender_infos.tender_fee_mode,
			sheets.processing_fee_amount AS processing_fee,
			tender_infos.status,
			tender_infos.gst_values`).
		Joins("LEFT JOIN users ON users.id = tender_infos.team_member").
		Joins("LEFT JOIN tender_info_sheets sheets ON sheets.tender_id = tender_infos.id").
		Order(tenderOrderClause(p)).
		Offset((p.Page - 1) * p.Limit).
		Limit(p.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// requestBucketQuery: платёжные заявки с активным инструментом,
// отфильтрованные по корзине классификатора статусов
func (r *Repository) requestBucketQuery(vis role.Visibility, bucket status.Bucket) *gorm.DB {
	q := r.db.Model(&ds.PaymentRequest{}).
		Joins("LEFT JOIN payment_instruments i ON i.request_id = payment_requests.id AND i.is_active = true").
		Joins("LEFT JOIN tender_infos ON tender_infos.id = payment_requests.tender_id")

	approved := status.ApprovedStatuses()
	returned := status.ReturnedStatuses()

	switch bucket {
	case status.BucketApproved:
		q = q.Where("i.status IN ?", approved)
	case status.BucketReturned:
		q = q.Where("i.status IN ?", returned)
	case status.BucketRejected:
		q = q.Where(`i.status LIKE ? ESCAPE '\'`, status.RejectedLikePattern())
	case status.BucketSent:
		// всё, что не попало в остальные корзины, включая заявки без статуса
		q = q.Where(`(i.status IS NULL OR (i.status NOT IN ? AND i.status NOT IN ? AND i.status NOT LIKE ? ESCAPE '\'))`,
			approved, returned, status.RejectedLikePattern())
	default:
		q = q.Where("1 = 0")
	}
	return applyRequestVisibility(q, vis)
}

func (r *Repository) CountRequestsByBucket(vis role.Visibility, bucket status.Bucket) (int64, error) {
	var count int64
	err := r.requestBucketQuery(vis, bucket).Count(&count).Error
	return count, err
}

func (r *Repository) ListRequestsByBucket(vis role.Visibility, bucket status.Bucket, p service.PageRequest) ([]dto.PaymentRequestRow, int64, error) {
	total, err := r.CountRequestsByBucket(vis, bucket)
	if err != nil {
		return nil, 0, err
	}

	rows := []dto.PaymentRequestRow{}
	err = r.requestBucketQuery(vis, bucket).
		Select(`payment_requests.id,
			payment_requests.tender_id,
			payment_requests.tender_no,
			COALESCE(tender_infos.tender_name, payment_requests.project_name) AS tender_name,
			payment_requests.purpose,
			payment_requests.amount_required,
			payment_requests.due_date,
			tender_infos.team_member AS team_member_id,
			COALESCE(users.full_name, '') AS team_member_name,
			i.id AS instrument_id,
			i.instrument_type,
			i.status AS instrument_status,
			payment_requests.created_at`).
		Joins("LEFT JOIN users ON users.id = tender_infos.team_member").
		Order(requestOrderClause(p)).
		Offset((p.Page - 1) * p.Limit).
		Limit(p.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	for i := range rows {
		raw := ""
		if rows[i].InstrumentStatus != nil {
			raw = *rows[i].InstrumentStatus
		}
		rows[i].DisplayStatus = status.Label(raw)
	}
	return rows, total, nil
}

// dnbTendersQuery: тендеры в терминальной категории Do Not Bid
func (r *Repository) dnbTendersQuery(vis role.Visibility) *gorm.DB {
	q := r.db.Model(&ds.TenderInfo{}).
		Where("tender_infos.status IN ?", ds.TenderDNBStatuses)
	return applyTenderVisibility(q, vis)
}

func (r *Repository) CountDNBTenders(vis role.Visibility) (int64, error) {
	var count int64
	err := r.dnbTendersQuery(vis).Count(&count).Error
	return count, err
}

func (r *Repository) ListDNBTenders(vis role.Visibility, p service.PageRequest) ([]dto.PendingTenderRow, int64, error) {
	total, err := r.CountDNBTenders(vis)
	if err != nil {
		return nil, 0, err
	}

	rows := []dto.PendingTenderRow{}
	err = r.dnbTendersQuery(vis).
		Select(`tender_infos.id AS tender_id,
			tender_infos.tender_no,
			tender_infos.tender_name,
			tender_infos.due_date,
			tender_infos.team_member AS team_member_id,
			COALESCE(users.full_name, '') AS team_member_name,
			tender_infos.emd,
			tender_infos.emd_mode,
			tender_infos.tender_fees AS tender_fee,
			tender_infos.tender_fee_mode,
			tender_infos.status,
			tender_infos.gst_values`).
		Joins("LEFT JOIN users ON users.id = tender_infos.team_member").
		Order(tenderOrderClause(p)).
		Offset((p.Page - 1) * p.Limit).
		Limit(p.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Сортировка ограничена известными колонками, чтобы параметры запроса
// не попадали в SQL напрямую
func tenderOrderClause(p service.PageRequest) string {
	col := "tender_infos.due_date"
	switch p.SortBy {
	case "tenderNo":
		col = "tender_infos.tender_no"
	case "emd":
		col = "tender_infos.emd"
	case "createdAt":
		col = "tender_infos.created_at"
	}
	if p.SortOrder == "asc" {
		return col + " ASC NULLS LAST"
	}
	return col + " DESC NULLS LAST"
}

func requestOrderClause(p service.PageRequest) string {
	col := "payment_requests.created_at"
	switch p.SortBy {
	case "dueDate":
		col = "payment_requests.due_date"
	case "amount":
		col = "payment_requests.amount_required"
	case "tenderNo":
		col = "payment_requests.tender_no"
	}
	if p.SortOrder == "asc" {
		return col + " ASC NULLS LAST"
	}
	return col + " DESC NULLS LAST"
}
