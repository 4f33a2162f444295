package service

import (
	"fmt"
	"sort"
	"sync"

	"tms/internal/app/ds"
)

// fakeStore — потокобезопасное in-memory хранилище для тестов сервисов.
// InTx просто выполняет fn на том же экземпляре: откаты в тестах не нужны
type fakeStore struct {
	mu sync.Mutex

	tenders    map[uint]*ds.TenderInfo
	infoSheets map[uint]*ds.TenderInfoSheet

	requests    map[uint]*ds.PaymentRequest
	instruments map[uint]*ds.PaymentInstrument

	ddDetails       map[uint]*ds.DdDetail
	fdrDetails      map[uint]*ds.FdrDetail
	bgDetails       map[uint]*ds.BgDetail
	chequeDetails   map[uint]*ds.ChequeDetail
	transferDetails map[uint]*ds.TransferDetail

	history []ds.InstrumentStatusHistory

	tenderHistory    []ds.TenderStatusHistory
	incompleteFields []ds.TenderIncompleteField

	nextID uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tenders:         map[uint]*ds.TenderInfo{},
		infoSheets:      map[uint]*ds.TenderInfoSheet{},
		requests:        map[uint]*ds.PaymentRequest{},
		instruments:     map[uint]*ds.PaymentInstrument{},
		ddDetails:       map[uint]*ds.DdDetail{},
		fdrDetails:      map[uint]*ds.FdrDetail{},
		bgDetails:       map[uint]*ds.BgDetail{},
		chequeDetails:   map[uint]*ds.ChequeDetail{},
		transferDetails: map[uint]*ds.TransferDetail{},
	}
}

func (f *fakeStore) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) InTx(fn func(tx Store) error) error {
	return fn(f)
}

func (f *fakeStore) GetTender(id uint) (*ds.TenderInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tenders[id]
	if !ok {
		return nil, fmt.Errorf("tender %d not found", id)
	}
	cp := *t
	return &cp, nil
}

func (f *fakeStore) GetInfoSheet(tenderID uint) (*ds.TenderInfoSheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.infoSheets[tenderID]
	if !ok {
		return nil, fmt.Errorf("info sheet for tender %d not found", tenderID)
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) UpdateTender(id uint, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tenders[id]
	if !ok {
		return fmt.Errorf("tender %d not found", id)
	}
	if v, ok := fields["status"]; ok {
		t.Status = v.(int)
	}
	if v, ok := fields["tl_status"]; ok {
		t.TlStatus = v.(ds.TlStatus)
	}
	applyStrPtrField(fields, "rfq_to", &t.RfqTo)
	applyStrPtrField(fields, "tender_fee_mode", &t.TenderFeeMode)
	applyStrPtrField(fields, "emd_mode", &t.EmdMode)
	applyStrPtrField(fields, "processing_fee_mode", &t.ProcessingFeeMode)
	applyStrPtrField(fields, "approve_pqr_selection", &t.ApprovePqrSelection)
	applyStrPtrField(fields, "approve_finance_doc_selection", &t.ApproveFinanceDocSelection)
	applyStrPtrField(fields, "alt_pqr_docs", &t.AltPqrDocs)
	applyStrPtrField(fields, "alt_finance_docs", &t.AltFinanceDocs)
	applyStrPtrField(fields, "tl_rejection_remarks", &t.TlRejectionRemarks)
	applyStrPtrField(fields, "oem_not_allowed", &t.OemNotAllowed)
	if v, ok := fields["emd"]; ok {
		t.Emd = v.(float64)
	}
	if v, ok := fields["tender_fees"]; ok {
		t.TenderFees = v.(float64)
	}
	if v, ok := fields["gst_values"]; ok {
		t.GstValues = v.(float64)
	}
	return nil
}

func applyStrPtrField(fields map[string]interface{}, key string, dst **string) {
	v, ok := fields[key]
	if !ok {
		return
	}
	switch val := v.(type) {
	case nil:
		*dst = nil
	case *string:
		*dst = val
	case string:
		*dst = &val
	}
}

func (f *fakeStore) AppendTenderStatusHistory(h *ds.TenderStatusHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	h.ID = f.id()
	f.tenderHistory = append(f.tenderHistory, *h)
	return nil
}

func (f *fakeStore) DeleteIncompleteFields(tenderID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.incompleteFields[:0]
	for _, row := range f.incompleteFields {
		if row.TenderID != tenderID {
			kept = append(kept, row)
		}
	}
	f.incompleteFields = kept
	return nil
}

func (f *fakeStore) InsertIncompleteFields(rows []ds.TenderIncompleteField) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range rows {
		row.ID = f.id()
		f.incompleteFields = append(f.incompleteFields, row)
	}
	return nil
}

func (f *fakeStore) ListIncompleteFields(tenderID uint) ([]ds.TenderIncompleteField, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []ds.TenderIncompleteField
	for _, row := range f.incompleteFields {
		if row.TenderID == tenderID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeStore) ListTendersByTlStatus(tlStatus *ds.TlStatus, p PageRequest) ([]ds.TenderInfo, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int, 0, len(f.tenders))
	for id := range f.tenders {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	var all []ds.TenderInfo
	for _, id := range ids {
		t := f.tenders[uint(id)]
		if tlStatus != nil && t.TlStatus != *tlStatus {
			continue
		}
		all = append(all, *t)
	}
	total := int64(len(all))
	start := (p.Page - 1) * p.Limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + p.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (f *fakeStore) CreateRequest(r *ds.PaymentRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = f.id()
	cp := *r
	f.requests[r.ID] = &cp
	return nil
}

func (f *fakeStore) GetRequest(id uint) (*ds.PaymentRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return nil, fmt.Errorf("request %d not found", id)
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) ListRequestsByTender(tenderID uint) ([]ds.PaymentRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []ds.PaymentRequest
	for id := uint(1); id <= f.nextID; id++ {
		if r, ok := f.requests[id]; ok && r.TenderID == tenderID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateRequest(id uint, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return fmt.Errorf("request %d not found", id)
	}
	if v, ok := fields["status"]; ok {
		r.Status = v.(string)
	}
	if v, ok := fields["remarks"]; ok {
		s := v.(string)
		r.Remarks = &s
	}
	return nil
}

func (f *fakeStore) CreateInstrument(i *ds.PaymentInstrument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i.ID = f.id()
	cp := *i
	f.instruments[i.ID] = &cp
	return nil
}

func (f *fakeStore) GetInstrument(id uint) (*ds.PaymentInstrument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.instruments[id]
	if !ok {
		return nil, fmt.Errorf("instrument %d not found", id)
	}
	cp := *i
	return &cp, nil
}

func (f *fakeStore) GetActiveInstrument(requestID uint) (*ds.PaymentInstrument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id := uint(1); id <= f.nextID; id++ {
		if i, ok := f.instruments[id]; ok && i.RequestID == requestID && i.IsActive {
			cp := *i
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("no active instrument for request %d", requestID)
}

func (f *fakeStore) ListActiveInstruments(requestID uint) ([]ds.PaymentInstrument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []ds.PaymentInstrument
	for id := uint(1); id <= f.nextID; id++ {
		if i, ok := f.instruments[id]; ok && i.RequestID == requestID && i.IsActive {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateInstrument(id uint, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.instruments[id]
	if !ok {
		return fmt.Errorf("instrument %d not found", id)
	}
	if v, ok := fields["status"]; ok {
		i.Status = v.(string)
	}
	if v, ok := fields["current_stage"]; ok {
		i.CurrentStage = v.(int)
	}
	if v, ok := fields["is_active"]; ok {
		i.IsActive = v.(bool)
	}
	if v, ok := fields["rejection_reason"]; ok {
		s := v.(string)
		i.RejectionReason = &s
	}
	if v, ok := fields["generated_pdf"]; ok {
		s := v.(string)
		i.GeneratedPdf = &s
	}
	if v, ok := fields["covering_letter"]; ok {
		s := v.(string)
		i.CoveringLetter = &s
	}
	if v, ok := fields["extra_pdf_paths"]; ok {
		s := v.(string)
		i.ExtraPdfPaths = &s
	}
	return nil
}

func (f *fakeStore) CreateDdDetail(d *ds.DdDetail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d.ID = f.id()
	cp := *d
	f.ddDetails[d.InstrumentID] = &cp
	return nil
}

func (f *fakeStore) CreateFdrDetail(d *ds.FdrDetail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d.ID = f.id()
	cp := *d
	f.fdrDetails[d.InstrumentID] = &cp
	return nil
}

func (f *fakeStore) CreateBgDetail(d *ds.BgDetail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d.ID = f.id()
	cp := *d
	f.bgDetails[d.InstrumentID] = &cp
	return nil
}

func (f *fakeStore) CreateChequeDetail(d *ds.ChequeDetail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d.ID = f.id()
	cp := *d
	f.chequeDetails[d.InstrumentID] = &cp
	return nil
}

func (f *fakeStore) CreateTransferDetail(d *ds.TransferDetail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d.ID = f.id()
	cp := *d
	f.transferDetails[d.InstrumentID] = &cp
	return nil
}

func (f *fakeStore) GetInstrumentDetails(instrumentID uint, t ds.InstrumentType) (interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch t {
	case ds.InstrumentDD:
		return f.ddDetails[instrumentID], nil
	case ds.InstrumentFDR:
		return f.fdrDetails[instrumentID], nil
	case ds.InstrumentBG:
		return f.bgDetails[instrumentID], nil
	case ds.InstrumentCheque:
		return f.chequeDetails[instrumentID], nil
	case ds.InstrumentBankTransfer, ds.InstrumentPortalPayment:
		return f.transferDetails[instrumentID], nil
	}
	return nil, fmt.Errorf("unknown instrument type %q", t)
}

func (f *fakeStore) UpdateDetailFields(instrumentID uint, t ds.InstrumentType, fields map[string]interface{}) error {
	// тестам достаточно факта вызова, сами поля не применяются
	return nil
}

func (f *fakeStore) AppendInstrumentHistory(h *ds.InstrumentStatusHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	h.ID = f.id()
	f.history = append(f.history, *h)
	return nil
}

func (f *fakeStore) ListInstrumentHistory(instrumentID uint) ([]ds.InstrumentStatusHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []ds.InstrumentStatusHistory
	for _, h := range f.history {
		if h.InstrumentID == instrumentID {
			out = append(out, h)
		}
	}
	return out, nil
}

// fakeFiles — in-memory объектное хранилище
type fakeFiles struct {
	objects map[string][]byte
	deleted []string
	seq     int
	fail    bool
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{objects: map[string][]byte{}}
}

func (f *fakeFiles) UploadFile(data []byte, filename string) (string, error) {
	if f.fail {
		return "", fmt.Errorf("object store unavailable")
	}
	f.seq++
	name := fmt.Sprintf("attachment_%d_%s", f.seq, filename)
	f.objects[name] = data
	return name, nil
}

func (f *fakeFiles) DeleteFile(name string) error {
	delete(f.objects, name)
	f.deleted = append(f.deleted, name)
	return nil
}

func (f *fakeFiles) GetFileURL(name string) (string, error) {
	return "https://files.local/" + name, nil
}

func (f *fakeFiles) DownloadFile(name string) ([]byte, error) {
	data, ok := f.objects[name]
	if !ok {
		return nil, fmt.Errorf("object %s not found", name)
	}
	return data, nil
}

func (f *fakeFiles) FileExists(name string) (bool, error) {
	_, ok := f.objects[name]
	return ok, nil
}

// fakePDF считает вызовы и возвращает фиксированный путь либо ошибку
type fakePDF struct {
	calls int
	fail  bool
}

func (p *fakePDF) GenerateInstrumentPDF(inst *ds.PaymentInstrument, req *ds.PaymentRequest) ([]string, error) {
	p.calls++
	if p.fail {
		return nil, fmt.Errorf("pdf render failed")
	}
	return []string{fmt.Sprintf("instruments/%d/form.pdf", inst.ID)}, nil
}

type fakeEmail struct {
	sent []EmailMessage
	fail bool
}

func (e *fakeEmail) SendTenderEmail(msg EmailMessage) error {
	e.sent = append(e.sent, msg)
	if e.fail {
		return fmt.Errorf("smtp unavailable")
	}
	return nil
}

type timerCall struct {
	Op     string
	Stage  string
	Cfg    TimerConfig
	Reason string
}

type fakeTimer struct {
	calls []timerCall
	fail  bool
}

func (t *fakeTimer) StartTimer(entityType string, entityID uint, stage string, userID uint, cfg TimerConfig) error {
	t.calls = append(t.calls, timerCall{Op: "start", Stage: stage, Cfg: cfg})
	if t.fail {
		return fmt.Errorf("timer subsystem down")
	}
	return nil
}

func (t *fakeTimer) StopTimer(entityType string, entityID uint, stage string, userID uint, reason string) error {
	t.calls = append(t.calls, timerCall{Op: "stop", Stage: stage, Reason: reason})
	if t.fail {
		return fmt.Errorf("timer subsystem down")
	}
	return nil
}

func (t *fakeTimer) stagesFor(op string) []string {
	var out []string
	for _, c := range t.calls {
		if c.Op == op {
			out = append(out, c.Stage)
		}
	}
	return out
}
