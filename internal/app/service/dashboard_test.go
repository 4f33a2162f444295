package service

import (
	"errors"
	"testing"

	"tms/internal/app/dto"
	"tms/internal/app/role"
	"tms/internal/app/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDashboardStore отдаёт заранее заданные счётчики и строки,
// запоминая видимость последнего вызова
type fakeDashboardStore struct {
	pending  int64
	buckets  map[status.Bucket]int64
	dnb      int64
	requests []dto.PaymentRequestRow
	tenders  []dto.PendingTenderRow

	lastVis  role.Visibility
	lastPage PageRequest
}

func (f *fakeDashboardStore) visible(vis role.Visibility) bool {
	f.lastVis = vis
	return !vis.None
}

func (f *fakeDashboardStore) CountPendingTenders(vis role.Visibility) (int64, error) {
	if !f.visible(vis) {
		return 0, nil
	}
	return f.pending, nil
}

func (f *fakeDashboardStore) ListPendingTenders(vis role.Visibility, p PageRequest) ([]dto.PendingTenderRow, int64, error) {
	f.lastPage = p
	if !f.visible(vis) {
		return nil, 0, nil
	}
	return f.tenders, f.pending, nil
}

func (f *fakeDashboardStore) CountRequestsByBucket(vis role.Visibility, bucket status.Bucket) (int64, error) {
	if !f.visible(vis) {
		return 0, nil
	}
	return f.buckets[bucket], nil
}

func (f *fakeDashboardStore) ListRequestsByBucket(vis role.Visibility, bucket status.Bucket, p PageRequest) ([]dto.PaymentRequestRow, int64, error) {
	f.lastPage = p
	if !f.visible(vis) {
		return nil, 0, nil
	}
	return f.requests, f.buckets[bucket], nil
}

func (f *fakeDashboardStore) CountDNBTenders(vis role.Visibility) (int64, error) {
	if !f.visible(vis) {
		return 0, nil
	}
	return f.dnb, nil
}

func (f *fakeDashboardStore) ListDNBTenders(vis role.Visibility, p PageRequest) ([]dto.PendingTenderRow, int64, error) {
	f.lastPage = p
	if !f.visible(vis) {
		return nil, 0, nil
	}
	return f.tenders, f.dnb, nil
}

func TestDashboardCounts(t *testing.T) {
	store := &fakeDashboardStore{
		pending: 3,
		buckets: map[status.Bucket]int64{
			status.BucketSent:     5,
			status.BucketApproved: 2,
			status.BucketRejected: 1,
			status.BucketReturned: 4,
		},
		dnb: 6,
	}
	svc := NewDashboardService(store)

	counts, err := svc.Counts(&role.Actor{UserID: 1, Role: role.Admin}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts.Pending)
	assert.Equal(t, int64(5), counts.Sent)
	assert.Equal(t, int64(2), counts.Approved)
	assert.Equal(t, int64(1), counts.Rejected)
	assert.Equal(t, int64(4), counts.Returned)
	assert.Equal(t, int64(6), counts.TenderDNB)
	assert.Equal(t, int64(21), counts.Total)
}

// Неавторизованный пользователь получает нулевые счётчики, а не ошибку
func TestDashboardCountsFailClosed(t *testing.T) {
	store := &fakeDashboardStore{pending: 10, dnb: 10, buckets: map[status.Bucket]int64{status.BucketSent: 10}}
	svc := NewDashboardService(store)

	counts, err := svc.Counts(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts.Total)
	assert.True(t, store.lastVis.None)
}

func TestDashboardList(t *testing.T) {
	store := &fakeDashboardStore{
		buckets:  map[status.Bucket]int64{status.BucketApproved: 41},
		requests: []dto.PaymentRequestRow{{ID: 1}, {ID: 2}},
		tenders:  []dto.PendingTenderRow{{TenderID: 9}},
		pending:  1,
	}
	svc := NewDashboardService(store)
	actor := &role.Actor{UserID: 1, Role: role.Admin}

	t.Run("вкладка заявок с пагинацией", func(t *testing.T) {
		page, err := svc.List(actor, &dto.DashboardQuery{Tab: TabApproved, Page: 2, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, TabApproved, page.Tab)
		assert.NotNil(t, page.Requests)
		assert.Equal(t, int64(41), page.Meta.Total)
		assert.Equal(t, int64(3), page.Meta.TotalPages)
		assert.Equal(t, 2, page.Meta.Page)
	})

	t.Run("пустая вкладка по умолчанию — pending", func(t *testing.T) {
		page, err := svc.List(actor, &dto.DashboardQuery{})
		require.NoError(t, err)
		assert.Equal(t, TabPending, page.Tab)
		assert.NotNil(t, page.Tenders)
		assert.Equal(t, defaultPageLimit, store.lastPage.Limit)
		assert.Equal(t, "desc", store.lastPage.SortOrder)
	})

	t.Run("неизвестная вкладка", func(t *testing.T) {
		_, err := svc.List(actor, &dto.DashboardQuery{Tab: "archive"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrBadRequest))
	})

	t.Run("лимит ограничивается сверху", func(t *testing.T) {
		_, err := svc.List(actor, &dto.DashboardQuery{Tab: TabSent, Limit: 5000})
		require.NoError(t, err)
		assert.Equal(t, maxPageLimit, store.lastPage.Limit)
	})
}
