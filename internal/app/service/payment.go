package service

import (
	"fmt"
	"time"

	"tms/internal/app/ds"
	"tms/internal/app/dto"
	"tms/internal/app/role"
	"tms/internal/app/status"

	"github.com/sirupsen/logrus"
)

// PaymentService создаёт платёжные заявки с инструментами, обновляет
// инструменты и отдаёт их вместе с историей и доступными действиями.
// Побочные эффекты (PDF, письма, таймеры) выполняются после фиксации
// транзакции и не влияют на результат
type PaymentService struct {
	store       Store
	instruments *InstrumentService
	pdf         PDFGenerator
	email       EmailSender
	timers      TimerClient
}

func NewPaymentService(store Store, instruments *InstrumentService, pdf PDFGenerator, email EmailSender, timers TimerClient) *PaymentService {
	return &PaymentService{
		store:       store,
		instruments: instruments,
		pdf:         pdf,
		email:       email,
		timers:      timers,
	}
}

// tenderContext — данные тендера для расчёта сумм. Для заявок вне TMS
// собирается из полей формы
type tenderContext struct {
	TenderNo    string
	ProjectName string
	DueDate     *time.Time
	Emd         float64
	TenderFees  float64
}

type createdInstrument struct {
	Instrument *ds.PaymentInstrument
	Request    *ds.PaymentRequest
	Purpose    ds.PaymentPurpose
	Mode       string
}

// Create создаёт до трёх заявок (EMD, Tender Fee, Processing Fee) по выбранным
// режимам оплаты. Все строки пишутся в одной транзакции; для EMD в режиме
// DD/FDR дополнительно создаётся связанный чек. Ответ возвращается сразу после
// фиксации, не дожидаясь побочных эффектов
func (s *PaymentService) Create(tenderID uint, payload *dto.CreatePaymentRequestInput, actor *role.Actor) ([]ds.PaymentRequest, error) {
	reqType := ds.PaymentRequestType(payload.RequestType)
	isTMS := reqType.IsTMS() && tenderID > 0

	var (
		tender    *ds.TenderInfo
		infoSheet *ds.TenderInfoSheet
		tctx      tenderContext
	)

	if isTMS {
		var err error
		tender, err = s.store.GetTender(tenderID)
		if err != nil {
			return nil, fmt.Errorf("%w: тендер %d", ErrNotFound, tenderID)
		}
		infoSheet, _ = s.store.GetInfoSheet(tenderID)

		tctx = tenderContext{
			TenderNo:    tender.TenderNo,
			ProjectName: tender.TenderName,
			DueDate:     tender.DueDate,
			Emd:         tender.Emd,
			TenderFees:  tender.TenderFees,
		}
	} else {
		tctx = tenderContext{
			TenderNo:    payload.TenderNo,
			ProjectName: payload.ProjectName,
			DueDate:     parseDate(payload.DueDate),
		}
		if tctx.TenderNo == "" {
			tctx.TenderNo = "NA"
		}
	}

	created := []ds.PaymentRequest{}
	instruments := []createdInstrument{}
	emdRequested := false

	err := s.store.InTx(func(tx Store) error {
		sections := []struct {
			purpose ds.PaymentPurpose
			section *dto.PaymentModeSection
		}{
			{ds.PurposeEMD, payload.Emd},
			{ds.PurposeTenderFee, payload.TenderFee},
			{ds.PurposeProcessingFee, payload.ProcessingFee},
		}

		for _, sec := range sections {
			if sec.section == nil || sec.section.Mode == "" || sec.section.Details == nil {
				continue
			}
			amount := s.resolveAmount(sec.purpose, sec.section, isTMS, tctx, infoSheet)
			if amount <= 0 {
				continue
			}

			request, err := s.createRequest(tx, tenderID, reqType, sec.purpose, amount, tctx, actor)
			if err != nil {
				return err
			}
			created = append(created, *request)

			inst, detailID, err := s.createInstrumentWithDetails(tx, request.ID, sec.section.Mode, sec.section.Details, amount, actor)
			if err != nil {
				return err
			}
			instruments = append(instruments, createdInstrument{Instrument: inst, Request: request, Purpose: sec.purpose, Mode: sec.section.Mode})

			if sec.purpose == ds.PurposeEMD {
				emdRequested = true

				// для EMD в режиме DD/FDR создаётся связанный чек
				if sec.section.Mode == "DD" || sec.section.Mode == "FDR" {
					chequeReq, cheque, err := s.createLinkedCheque(tx, tenderID, reqType, sec.section, amount, detailID, tctx, actor)
					if err != nil {
						return err
					}
					created = append(created, *chequeReq)
					instruments = append(instruments, createdInstrument{Instrument: cheque, Request: chequeReq, Purpose: ds.PurposeEMD, Mode: "CHEQUE"})
				}
			}
		}

		// при запросе EMD по TMS тендер переводится в статус "EMD Requested"
		if emdRequested && isTMS && actor != nil {
			prev := tender.Status
			if err := tx.UpdateTender(tenderID, map[string]interface{}{
				"status":     ds.TenderStatusEMDRequested,
				"updated_at": time.Now(),
			}); err != nil {
				return err
			}
			if err := tx.AppendTenderStatusHistory(&ds.TenderStatusHistory{
				TenderID:   tenderID,
				FromStatus: &prev,
				ToStatus:   ds.TenderStatusEMDRequested,
				Comment:    "EMD requested",
				ChangedBy:  actor.UserID,
				CreatedAt:  time.Now(),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.runCreationSideEffects(tenderID, isTMS, emdRequested, instruments, actor)

	return created, nil
}

// resolveAmount возвращает сумму заявки: для TMS из тендера и инфолиста,
// иначе из поля формы выбранного режима
func (s *PaymentService) resolveAmount(purpose ds.PaymentPurpose, sec *dto.PaymentModeSection, isTMS bool, tctx tenderContext, infoSheet *ds.TenderInfoSheet) float64 {
	if isTMS {
		switch purpose {
		case ds.PurposeEMD:
			return tctx.Emd
		case ds.PurposeTenderFee:
			return tctx.TenderFees
		case ds.PurposeProcessingFee:
			if infoSheet != nil && infoSheet.ProcessingFeeAmount != nil {
				return *infoSheet.ProcessingFeeAmount
			}
			return 0
		}
		return 0
	}

	d := sec.Details
	switch ds.InstrumentTypeFromMode(sec.Mode) {
	case ds.InstrumentDD:
		return d.DdAmount
	case ds.InstrumentFDR:
		return d.FdrAmount
	case ds.InstrumentBG:
		return d.BgAmount
	case ds.InstrumentCheque:
		return d.ChequeAmount
	case ds.InstrumentBankTransfer:
		return d.BtAmount
	case ds.InstrumentPortalPayment:
		return d.PortalAmount
	}
	return 0
}

func (s *PaymentService) createRequest(tx Store, tenderID uint, reqType ds.PaymentRequestType, purpose ds.PaymentPurpose, amount float64, tctx tenderContext, actor *role.Actor) (*ds.PaymentRequest, error) {
	request := &ds.PaymentRequest{
		TenderID:       tenderID,
		Type:           reqType,
		TenderNo:       tctx.TenderNo,
		ProjectName:    tctx.ProjectName,
		Purpose:        purpose,
		AmountRequired: amount,
		DueDate:        tctx.DueDate,
		Status:         "Pending",
		CreatedAt:      time.Now(),
	}
	if actor != nil {
		request.RequestedBy = actor.UserID
	}
	if err := tx.CreateRequest(request); err != nil {
		return nil, err
	}
	return request, nil
}

// createInstrumentWithDetails создаёт инструмент, строку деталей и первую
// запись истории. Возвращает id строки деталей — он нужен связанному чеку
func (s *PaymentService) createInstrumentWithDetails(tx Store, requestID uint, mode string, d *dto.InstrumentDetailsInput, amount float64, actor *role.Actor) (*ds.PaymentInstrument, uint, error) {
	t := ds.InstrumentTypeFromMode(mode)
	initial := status.Initial(t)

	inst := &ds.PaymentInstrument{
		RequestID:      requestID,
		InstrumentType: t,
		Amount:         amount,
		Status:         initial,
		CurrentStage:   1,
		IsActive:       true,
		CreatedAt:      time.Now(),
	}
	applyInstrumentFields(inst, mode, d)

	if err := tx.CreateInstrument(inst); err != nil {
		return nil, 0, err
	}

	detailID, err := s.createDetails(tx, inst.ID, mode, d)
	if err != nil {
		return nil, 0, err
	}

	entry := &ds.InstrumentStatusHistory{
		InstrumentID: inst.ID,
		ToStatus:     initial,
		ToStage:      1,
		CreatedAt:    time.Now(),
	}
	remarks := "Initial creation"
	entry.Remarks = &remarks
	applyActor(entry, actor)
	if err := tx.AppendInstrumentHistory(entry); err != nil {
		return nil, 0, err
	}

	return inst, detailID, nil
}

// applyInstrumentFields переносит общие поля формы на инструмент
func applyInstrumentFields(inst *ds.PaymentInstrument, mode string, d *dto.InstrumentDetailsInput) {
	switch {
	case mode == "DD" && d.DdFavouring != "":
		inst.Favouring = strPtr(d.DdFavouring)
		inst.PayableAt = strPtr(d.DdPayableAt)
		inst.CourierAddress = strPtr(d.DdCourierAddress)
		inst.CourierDeadline = parseHours(d.DdCourierHours)
		inst.IssueDate = parseDate(d.DdDate)
		inst.Remarks = strPtr(d.DdRemarks)
	case mode == "FDR" && d.FdrFavouring != "":
		inst.Favouring = strPtr(d.FdrFavouring)
		inst.ExpiryDate = parseDate(d.FdrExpiryDate)
		inst.CourierAddress = strPtr(d.FdrCourierAddress)
		inst.CourierDeadline = parseHours(d.FdrCourierHours)
		inst.IssueDate = parseDate(d.FdrDate)
	case mode == "BG" && d.BgFavouring != "":
		inst.Favouring = strPtr(d.BgFavouring)
		inst.ExpiryDate = parseDate(d.BgExpiryDate)
		inst.ClaimExpiryDate = parseDate(d.BgClaimPeriod)
		inst.CourierAddress = strPtr(d.BgCourierAddress)
		inst.CourierDeadline = d.BgCourierDays
	}
}

// createDetails создаёт типизированную строку деталей и возвращает её id
func (s *PaymentService) createDetails(tx Store, instrumentID uint, mode string, d *dto.InstrumentDetailsInput) (uint, error) {
	switch ds.InstrumentTypeFromMode(mode) {
	case ds.InstrumentDD:
		row := &ds.DdDetail{
			InstrumentID: instrumentID,
			DdDate:       parseDate(d.DdDate),
			DdPurpose:    strPtr(d.DdPurpose),
			DdNeeds:      strPtr(d.DdDeliverBy),
			DdRemarks:    strPtr(d.DdRemarks),
		}
		if err := tx.CreateDdDetail(row); err != nil {
			return 0, err
		}
		return row.ID, nil
	case ds.InstrumentFDR:
		row := &ds.FdrDetail{
			InstrumentID:  instrumentID,
			FdrDate:       parseDate(d.FdrDate),
			FdrExpiryDate: parseDate(d.FdrExpiryDate),
			FdrPurpose:    strPtr(d.FdrPurpose),
			FdrNeeds:      strPtr(d.FdrDeliverBy),
		}
		if err := tx.CreateFdrDetail(row); err != nil {
			return 0, err
		}
		return row.ID, nil
	case ds.InstrumentBG:
		var stamp *float64
		if d.BgStampValue > 0 {
			stamp = &d.BgStampValue
		}
		row := &ds.BgDetail{
			InstrumentID:       instrumentID,
			BgDate:             parseDate(d.BgExpiryDate),
			ValidityDate:       parseDate(d.BgExpiryDate),
			ClaimExpiryDate:    parseDate(d.BgClaimPeriod),
			BeneficiaryName:    strPtr(d.BgFavouring),
			BeneficiaryAddress: strPtr(d.BgAddress),
			BankName:           strPtr(d.BgBank),
			StampCharges:       stamp,
			BgNeeds:            strPtr(d.BgNeededIn),
			BgPurpose:          strPtr(d.BgPurpose),
			BgClientUser:       strPtr(d.BgClientUserEmail),
			BgClientCp:         strPtr(d.BgClientCpEmail),
			BgClientFin:        strPtr(d.BgClientFinanceEmail),
		}
		if err := tx.CreateBgDetail(row); err != nil {
			return 0, err
		}
		return row.ID, nil
	case ds.InstrumentCheque:
		row := &ds.ChequeDetail{InstrumentID: instrumentID}
		if err := tx.CreateChequeDetail(row); err != nil {
			return 0, err
		}
		return row.ID, nil
	case ds.InstrumentBankTransfer:
		row := &ds.TransferDetail{
			InstrumentID:  instrumentID,
			AccountName:   strPtr(d.BtAccountName),
			AccountNumber: strPtr(d.BtAccountNo),
			Ifsc:          strPtr(d.BtIfsc),
		}
		if err := tx.CreateTransferDetail(row); err != nil {
			return 0, err
		}
		return row.ID, nil
	case ds.InstrumentPortalPayment:
		var method *string
		if d.PortalNetBanking == "YES" {
			method = strPtr("Netbanking")
		} else if d.PortalDebitCard == "YES" {
			method = strPtr("Debit Card")
		}
		row := &ds.TransferDetail{
			InstrumentID:  instrumentID,
			PortalName:    strPtr(d.PortalName),
			PaymentMethod: method,
			IsNetbanking:  strPtr(d.PortalNetBanking),
			IsDebit:       strPtr(d.PortalDebitCard),
		}
		if err := tx.CreateTransferDetail(row); err != nil {
			return 0, err
		}
		return row.ID, nil
	}
	return 0, fmt.Errorf("%w: неизвестный режим оплаты %q", ErrBadRequest, mode)
}

// createLinkedCheque создаёт заявку и чек, сопровождающие EMD в режиме DD/FDR.
// Чек наследует сумму, получателя и способ передачи, датой ставится текущий день
func (s *PaymentService) createLinkedCheque(tx Store, tenderID uint, reqType ds.PaymentRequestType, sec *dto.PaymentModeSection, amount float64, originDetailID uint, tctx tenderContext, actor *role.Actor) (*ds.PaymentRequest, *ds.PaymentInstrument, error) {
	request, err := s.createRequest(tx, tenderID, reqType, ds.PurposeEMD, amount, tctx, actor)
	if err != nil {
		return nil, nil, err
	}

	favouring := sec.Details.DdFavouring
	deliverBy := sec.Details.DdDeliverBy
	if sec.Mode == "FDR" {
		favouring = sec.Details.FdrFavouring
		deliverBy = sec.Details.FdrDeliverBy
	}

	cheque := &ds.PaymentInstrument{
		RequestID:      request.ID,
		InstrumentType: ds.InstrumentCheque,
		Amount:         amount,
		Favouring:      strPtr(favouring),
		Status:         status.Initial(ds.InstrumentCheque),
		CurrentStage:   1,
		IsActive:       true,
		CreatedAt:      time.Now(),
	}
	if err := tx.CreateInstrument(cheque); err != nil {
		return nil, nil, err
	}

	today := time.Now().Truncate(24 * time.Hour)
	detail := &ds.ChequeDetail{
		InstrumentID: cheque.ID,
		ChequeDate:   &today,
		ChequeNeeds:  strPtr(deliverBy),
	}
	if sec.Mode == "DD" {
		detail.LinkedDdID = &originDetailID
	} else {
		detail.LinkedFdrID = &originDetailID
	}
	if err := tx.CreateChequeDetail(detail); err != nil {
		return nil, nil, err
	}

	entry := &ds.InstrumentStatusHistory{
		InstrumentID: cheque.ID,
		ToStatus:     cheque.Status,
		ToStage:      1,
		CreatedAt:    time.Now(),
	}
	remarks := "Initial creation"
	entry.Remarks = &remarks
	applyActor(entry, actor)
	if err := tx.AppendInstrumentHistory(entry); err != nil {
		return nil, nil, err
	}

	return request, cheque, nil
}

// runCreationSideEffects выполняет отложенные действия после фиксации
// транзакции. Ошибка любого из них пишется в лог и не влияет на остальные
func (s *PaymentService) runCreationSideEffects(tenderID uint, isTMS, emdRequested bool, instruments []createdInstrument, actor *role.Actor) {
	for _, ci := range instruments {
		switch ci.Instrument.InstrumentType {
		case ds.InstrumentDD, ds.InstrumentFDR, ds.InstrumentBG:
			if s.pdf != nil {
				paths, err := s.pdf.GenerateInstrumentPDF(ci.Instrument, ci.Request)
				if err != nil {
					logrus.WithError(err).WithFields(logrus.Fields{
						"instrument_id": ci.Instrument.ID,
						"mode":          ci.Mode,
					}).Error("pdf generation failed")
				} else if len(paths) > 0 {
					fields := map[string]interface{}{"generated_pdf": paths[0]}
					if len(paths) > 1 {
						fields["covering_letter"] = paths[1]
					}
					if err := s.store.UpdateInstrument(ci.Instrument.ID, fields); err != nil {
						logrus.WithError(err).WithField("instrument_id", ci.Instrument.ID).Error("failed to persist pdf paths")
					}
				}
			}
		}

		if s.email != nil {
			msg := EmailMessage{
				TenderID:  tenderID,
				EventType: "payment_request_created",
				Subject:   fmt.Sprintf("%s request created (%s)", ci.Purpose, ci.Instrument.InstrumentType),
				Template:  "payment_request_created",
				Data: map[string]interface{}{
					"requestId":      ci.Request.ID,
					"purpose":        ci.Purpose,
					"instrumentType": ci.Instrument.InstrumentType,
					"amount":         ci.Instrument.Amount,
				},
			}
			if actor != nil {
				msg.FromUserID = actor.UserID
			}
			if err := s.email.SendTenderEmail(msg); err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"instrument_id": ci.Instrument.ID,
					"mode":          ci.Mode,
				}).Error("notification email failed")
			}
		}
	}

	if emdRequested && isTMS && s.timers != nil {
		userID := uint(0)
		if actor != nil {
			userID = actor.UserID
		}
		if err := s.timers.StopTimer("tender", tenderID, ds.TimerStageEmdRequested, userID, "EMD requested"); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"tender_id": tenderID,
				"stage":     ds.TimerStageEmdRequested,
			}).Error("failed to stop timer")
		}
	}
}

// RequestView — заявка с активными инструментами для выдачи наружу
type RequestView struct {
	Request     ds.PaymentRequest `json:"request"`
	Instruments []InstrumentView  `json:"instruments"`
}

type InstrumentView struct {
	Instrument ds.PaymentInstrument         `json:"instrument"`
	Details    interface{}                  `json:"details"`
	History    []ds.InstrumentStatusHistory `json:"history"`
	Actions    *InstrumentActions           `json:"availableActions"`
}

// FindByID возвращает заявку с активными инструментами, их деталями,
// историей и доступными действиями
func (s *PaymentService) FindByID(requestID uint) (*RequestView, error) {
	request, err := s.store.GetRequest(requestID)
	if err != nil {
		return nil, fmt.Errorf("%w: заявка %d", ErrNotFound, requestID)
	}
	view := &RequestView{Request: *request}

	active, err := s.store.ListActiveInstruments(requestID)
	if err != nil {
		return nil, err
	}
	for i := range active {
		iv, err := s.instrumentView(&active[i])
		if err != nil {
			return nil, err
		}
		view.Instruments = append(view.Instruments, *iv)
	}
	return view, nil
}

// FindByTenderID возвращает все заявки тендера с инструментами
func (s *PaymentService) FindByTenderID(tenderID uint) ([]RequestView, error) {
	if _, err := s.store.GetTender(tenderID); err != nil {
		return nil, fmt.Errorf("%w: тендер %d", ErrNotFound, tenderID)
	}

	requests, err := s.store.ListRequestsByTender(tenderID)
	if err != nil {
		return nil, err
	}

	views := make([]RequestView, 0, len(requests))
	for i := range requests {
		view, err := s.FindByID(requests[i].ID)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *PaymentService) instrumentView(inst *ds.PaymentInstrument) (*InstrumentView, error) {
	details, err := s.store.GetInstrumentDetails(inst.ID, inst.InstrumentType)
	if err != nil {
		return nil, err
	}
	history, err := s.store.ListInstrumentHistory(inst.ID)
	if err != nil {
		return nil, err
	}
	actions, err := s.instruments.AvailableActions(inst.ID)
	if err != nil {
		return nil, err
	}
	return &InstrumentView{
		Instrument: *inst,
		Details:    details,
		History:    history,
		Actions:    actions,
	}, nil
}

// Update правит поля активного инструмента заявки. Тип инструмента
// неизменяем: смена режима требует новой заявки
func (s *PaymentService) Update(requestID uint, payload *dto.UpdatePaymentRequestInput) (*RequestView, error) {
	request, err := s.store.GetRequest(requestID)
	if err != nil {
		return nil, fmt.Errorf("%w: заявка %d", ErrNotFound, requestID)
	}

	inst, err := s.store.GetActiveInstrument(requestID)
	if err != nil {
		return nil, fmt.Errorf("%w: нет активного инструмента у заявки %d", ErrNotFound, requestID)
	}

	var sec *dto.PaymentModeSection
	switch request.Purpose {
	case ds.PurposeEMD:
		sec = payload.Emd
	case ds.PurposeTenderFee:
		sec = payload.TenderFee
	case ds.PurposeProcessingFee:
		sec = payload.ProcessingFee
	}
	if sec == nil || sec.Mode == "" || sec.Details == nil {
		return nil, fmt.Errorf("%w: payload не соответствует назначению заявки", ErrBadRequest)
	}

	if ds.InstrumentTypeFromMode(sec.Mode) != inst.InstrumentType {
		return nil, fmt.Errorf("%w: тип инструмента нельзя изменить после создания", ErrBadRequest)
	}

	err = s.store.InTx(func(tx Store) error {
		shared := &ds.PaymentInstrument{}
		applyInstrumentFields(shared, sec.Mode, sec.Details)
		fields := instrumentUpdateFields(shared, sec.Mode)
		if len(fields) > 0 {
			fields["updated_at"] = time.Now()
			if err := tx.UpdateInstrument(inst.ID, fields); err != nil {
				return err
			}
		}
		return s.updateDetails(tx, inst.ID, sec.Mode, sec.Details)
	})
	if err != nil {
		return nil, err
	}

	return s.FindByID(requestID)
}

// UpdateStatus меняет административный статус заявки (не статус инструмента)
func (s *PaymentService) UpdateStatus(requestID uint, newStatus, remarks string) (*RequestView, error) {
	if _, err := s.store.GetRequest(requestID); err != nil {
		return nil, fmt.Errorf("%w: заявка %d", ErrNotFound, requestID)
	}

	fields := map[string]interface{}{"status": newStatus}
	if remarks != "" {
		fields["remarks"] = remarks
	}
	if err := s.store.UpdateRequest(requestID, fields); err != nil {
		return nil, err
	}
	return s.FindByID(requestID)
}

func instrumentUpdateFields(shared *ds.PaymentInstrument, mode string) map[string]interface{} {
	fields := map[string]interface{}{}
	switch mode {
	case "DD":
		if shared.Favouring == nil {
			return fields
		}
		fields["favouring"] = shared.Favouring
		fields["payable_at"] = shared.PayableAt
		fields["courier_address"] = shared.CourierAddress
		fields["courier_deadline"] = shared.CourierDeadline
		fields["issue_date"] = shared.IssueDate
		fields["remarks"] = shared.Remarks
	case "FDR":
		if shared.Favouring == nil {
			return fields
		}
		fields["favouring"] = shared.Favouring
		fields["expiry_date"] = shared.ExpiryDate
		fields["courier_address"] = shared.CourierAddress
		fields["courier_deadline"] = shared.CourierDeadline
		fields["issue_date"] = shared.IssueDate
	case "BG":
		if shared.Favouring == nil {
			return fields
		}
		fields["favouring"] = shared.Favouring
		fields["expiry_date"] = shared.ExpiryDate
		fields["claim_expiry_date"] = shared.ClaimExpiryDate
		fields["courier_address"] = shared.CourierAddress
		fields["courier_deadline"] = shared.CourierDeadline
	}
	return fields
}

func (s *PaymentService) updateDetails(tx Store, instrumentID uint, mode string, d *dto.InstrumentDetailsInput) error {
	switch ds.InstrumentTypeFromMode(mode) {
	case ds.InstrumentDD, ds.InstrumentCheque:
		return tx.UpdateDetailFields(instrumentID, ds.InstrumentDD, map[string]interface{}{
			"dd_date":    parseDate(d.DdDate),
			"dd_purpose": strPtr(d.DdPurpose),
			"dd_needs":   strPtr(d.DdDeliverBy),
			"dd_remarks": strPtr(d.DdRemarks),
		})
	case ds.InstrumentFDR:
		return tx.UpdateDetailFields(instrumentID, ds.InstrumentFDR, map[string]interface{}{
			"fdr_date":        parseDate(d.FdrDate),
			"fdr_expiry_date": parseDate(d.FdrExpiryDate),
			"fdr_purpose":     strPtr(d.FdrPurpose),
			"fdr_needs":       strPtr(d.FdrDeliverBy),
		})
	case ds.InstrumentBG:
		var stamp *float64
		if d.BgStampValue > 0 {
			stamp = &d.BgStampValue
		}
		return tx.UpdateDetailFields(instrumentID, ds.InstrumentBG, map[string]interface{}{
			"bg_date":             parseDate(d.BgExpiryDate),
			"validity_date":       parseDate(d.BgExpiryDate),
			"claim_expiry_date":   parseDate(d.BgClaimPeriod),
			"beneficiary_name":    strPtr(d.BgFavouring),
			"beneficiary_address": strPtr(d.BgAddress),
			"bank_name":           strPtr(d.BgBank),
			"stamp_charges":       stamp,
			"bg_needs":            strPtr(d.BgNeededIn),
			"bg_purpose":          strPtr(d.BgPurpose),
		})
	case ds.InstrumentBankTransfer:
		return tx.UpdateDetailFields(instrumentID, ds.InstrumentBankTransfer, map[string]interface{}{
			"account_name":   strPtr(d.BtAccountName),
			"account_number": strPtr(d.BtAccountNo),
			"ifsc":           strPtr(d.BtIfsc),
		})
	case ds.InstrumentPortalPayment:
		var method *string
		if d.PortalNetBanking == "YES" {
			method = strPtr("Netbanking")
		} else if d.PortalDebitCard == "YES" {
			method = strPtr("Debit Card")
		}
		return tx.UpdateDetailFields(instrumentID, ds.InstrumentPortalPayment, map[string]interface{}{
			"portal_name":    strPtr(d.PortalName),
			"payment_method": method,
			"is_netbanking":  strPtr(d.PortalNetBanking),
			"is_debit":       strPtr(d.PortalDebitCard),
		})
	}
	return fmt.Errorf("%w: неизвестный режим оплаты %q", ErrBadRequest, mode)
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parseHours(s string) *int {
	if s == "" {
		return nil
	}
	var hours int
	if _, err := fmt.Sscanf(s, "%d", &hours); err != nil {
		return nil
	}
	return &hours
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
