package service

import (
	"fmt"
	"strings"

	"tms/internal/app/dto"
	"tms/internal/app/role"
	"tms/internal/app/status"
)

// DashboardStore — выборки дашборда. Счётчик и список каждой вкладки
// строятся репозиторием на одном и том же предикате, поэтому
// count(tab) всегда равен длине полного списка вкладки
type DashboardStore interface {
	CountPendingTenders(vis role.Visibility) (int64, error)
	ListPendingTenders(vis role.Visibility, p PageRequest) ([]dto.PendingTenderRow, int64, error)

	CountRequestsByBucket(vis role.Visibility, bucket status.Bucket) (int64, error)
	ListRequestsByBucket(vis role.Visibility, bucket status.Bucket, p PageRequest) ([]dto.PaymentRequestRow, int64, error)

	CountDNBTenders(vis role.Visibility) (int64, error)
	ListDNBTenders(vis role.Visibility, p PageRequest) ([]dto.PendingTenderRow, int64, error)
}

// PageRequest — нормализованная пагинация и сортировка
type PageRequest struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Вкладки дашборда
const (
	TabPending   = "pending"
	TabSent      = "sent"
	TabApproved  = "approved"
	TabRejected  = "rejected"
	TabReturned  = "returned"
	TabTenderDNB = "tenderDnb"
)

var bucketByTab = map[string]status.Bucket{
	TabSent:     status.BucketSent,
	TabApproved: status.BucketApproved,
	TabRejected: status.BucketRejected,
	TabReturned: status.BucketReturned,
}

// DashboardService агрегирует вкладки платёжного дашборда с учётом
// видимости по роли. Неавторизованный или неизвестный пользователь
// не видит ни одной строки
type DashboardService struct {
	store DashboardStore
}

func NewDashboardService(store DashboardStore) *DashboardService {
	return &DashboardService{store: store}
}

// Counts возвращает счётчики всех вкладок одним ответом
func (s *DashboardService) Counts(actor *role.Actor, teamID *uint) (*dto.DashboardCounts, error) {
	vis := role.ScopeFor(actor, teamID)

	counts := &dto.DashboardCounts{}
	var err error

	if counts.Pending, err = s.store.CountPendingTenders(vis); err != nil {
		return nil, err
	}
	if counts.Sent, err = s.store.CountRequestsByBucket(vis, status.BucketSent); err != nil {
		return nil, err
	}
	if counts.Approved, err = s.store.CountRequestsByBucket(vis, status.BucketApproved); err != nil {
		return nil, err
	}
	if counts.Rejected, err = s.store.CountRequestsByBucket(vis, status.BucketRejected); err != nil {
		return nil, err
	}
	if counts.Returned, err = s.store.CountRequestsByBucket(vis, status.BucketReturned); err != nil {
		return nil, err
	}
	if counts.TenderDNB, err = s.store.CountDNBTenders(vis); err != nil {
		return nil, err
	}

	counts.Total = counts.Pending + counts.Sent + counts.Approved +
		counts.Rejected + counts.Returned + counts.TenderDNB
	return counts, nil
}

// TabPage — страница одной вкладки
type TabPage struct {
	Tab      string       `json:"tab"`
	Tenders  interface{}  `json:"tenders,omitempty"`
	Requests interface{}  `json:"requests,omitempty"`
	Meta     dto.PageMeta `json:"meta"`
}

// List возвращает страницу выбранной вкладки
func (s *DashboardService) List(actor *role.Actor, q *dto.DashboardQuery) (*TabPage, error) {
	vis := role.ScopeFor(actor, q.TeamID)
	page := normalizePage(q)
	tab := q.Tab
	if tab == "" {
		tab = TabPending
	}

	switch tab {
	case TabPending:
		rows, total, err := s.store.ListPendingTenders(vis, page)
		if err != nil {
			return nil, err
		}
		return &TabPage{Tab: tab, Tenders: rows, Meta: pageMeta(page, total)}, nil

	case TabTenderDNB:
		rows, total, err := s.store.ListDNBTenders(vis, page)
		if err != nil {
			return nil, err
		}
		return &TabPage{Tab: tab, Tenders: rows, Meta: pageMeta(page, total)}, nil

	default:
		bucket, ok := bucketByTab[tab]
		if !ok {
			return nil, fmt.Errorf("%w: неизвестная вкладка %q", ErrBadRequest, tab)
		}
		rows, total, err := s.store.ListRequestsByBucket(vis, bucket, page)
		if err != nil {
			return nil, err
		}
		return &TabPage{Tab: tab, Requests: rows, Meta: pageMeta(page, total)}, nil
	}
}

func normalizePage(q *dto.DashboardQuery) PageRequest {
	return clampPage(PageRequest{
		Page:      q.Page,
		Limit:     q.Limit,
		SortBy:    q.SortBy,
		SortOrder: strings.ToLower(q.SortOrder),
	})
}

func clampPage(p PageRequest) PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	if p.SortOrder != "asc" && p.SortOrder != "desc" {
		p.SortOrder = "desc"
	}
	return p
}

func pageMeta(p PageRequest, total int64) dto.PageMeta {
	pages := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		pages++
	}
	return dto.PageMeta{
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: pages,
	}
}
