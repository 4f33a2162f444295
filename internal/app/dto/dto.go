package dto

import "time"

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// ============ Платёжные заявки ============

// Поля формы инструмента. Набор полей зависит от выбранного режима оплаты,
// незаполненные поля игнорируются
type InstrumentDetailsInput struct {
	// Demand Draft
	DdFavouring      string  `json:"ddFavouring"`
	DdPayableAt      string  `json:"ddPayableAt"`
	DdCourierAddress string  `json:"ddCourierAddress"`
	DdCourierHours   string  `json:"ddCourierHours"`
	DdDate           string  `json:"ddDate"`
	DdDeliverBy      string  `json:"ddDeliverBy"`
	DdPurpose        string  `json:"ddPurpose"`
	DdRemarks        string  `json:"ddRemarks"`
	DdAmount         float64 `json:"ddAmount"`

	// Fixed Deposit Receipt
	FdrFavouring      string  `json:"fdrFavouring"`
	FdrDate           string  `json:"fdrDate"`
	FdrExpiryDate     string  `json:"fdrExpiryDate"`
	FdrCourierAddress string  `json:"fdrCourierAddress"`
	FdrCourierHours   string  `json:"fdrCourierHours"`
	FdrDeliverBy      string  `json:"fdrDeliverBy"`
	FdrPurpose        string  `json:"fdrPurpose"`
	FdrAmount         float64 `json:"fdrAmount"`

	// Bank Guarantee
	BgFavouring          string  `json:"bgFavouring"`
	BgAddress            string  `json:"bgAddress"`
	BgBank               string  `json:"bgBank"`
	BgExpiryDate         string  `json:"bgExpiryDate"`
	BgClaimPeriod        string  `json:"bgClaimPeriod"`
	BgCourierAddress     string  `json:"bgCourierAddress"`
	BgCourierDays        *int    `json:"bgCourierDays"`
	BgStampValue         float64 `json:"bgStampValue"`
	BgNeededIn           string  `json:"bgNeededIn"`
	BgPurpose            string  `json:"bgPurpose"`
	BgClientUserEmail    string  `json:"bgClientUserEmail"`
	BgClientCpEmail      string  `json:"bgClientCpEmail"`
	BgClientFinanceEmail string  `json:"bgClientFinanceEmail"`
	BgAmount             float64 `json:"bgAmount"`

	// Cheque
	ChequeAmount float64 `json:"chequeAmount"`

	// Банковский перевод
	BtAccountName string  `json:"btAccountName"`
	BtAccountNo   string  `json:"btAccountNo"`
	BtIfsc        string  `json:"btIfsc"`
	BtAmount      float64 `json:"btAmount"`

	// Портал
	PortalName       string  `json:"portalName"`
	PortalNetBanking string  `json:"portalNetBanking"` // YES/NO
	PortalDebitCard  string  `json:"portalDebitCard"`  // YES/NO
	PortalAmount     float64 `json:"portalAmount"`
}

// Секция одной цели платежа: режим оплаты плюс поля формы
type PaymentModeSection struct {
	Mode    string                  `json:"mode"`
	Details *InstrumentDetailsInput `json:"details"`
}

type CreatePaymentRequestInput struct {
	RequestType string `json:"requestType"` // TMS, Other Than TMS, Old Entries, Other Than Tender
	TenderNo    string `json:"tenderNo"`
	ProjectName string `json:"projectName"`
	DueDate     string `json:"dueDate"`

	Emd           *PaymentModeSection `json:"emd"`
	TenderFee     *PaymentModeSection `json:"tenderFee"`
	ProcessingFee *PaymentModeSection `json:"processingFee"`
}

type UpdatePaymentRequestInput struct {
	Emd           *PaymentModeSection `json:"emd"`
	TenderFee     *PaymentModeSection `json:"tenderFee"`
	ProcessingFee *PaymentModeSection `json:"processingFee"`
}

type UpdateRequestStatusInput struct {
	Status  string `json:"status" binding:"required"`
	Remarks string `json:"remarks"`
}

// ============ Статусы инструментов ============

type TransitionStatusInput struct {
	NewStatus string                 `json:"newStatus" binding:"required"`
	FormData  map[string]interface{} `json:"formData"`
	Remarks   string                 `json:"remarks"`
}

type RejectInstrumentInput struct {
	RejectionReason string `json:"rejectionReason" binding:"required"`
}

type ResubmitInstrumentInput struct {
	FormData map[string]interface{} `json:"formData"`
}

// ============ Одобрение тендера ============

type IncompleteFieldInput struct {
	FieldName string `json:"fieldName" binding:"required"`
	Comment   string `json:"comment"`
}

type TenderApprovalInput struct {
	TlStatus int `json:"tlStatus"`

	// Поля одобрения
	RfqTo                      []uint   `json:"rfqTo"`
	TenderFeeMode              string   `json:"tenderFeeMode"`
	EmdMode                    string   `json:"emdMode"`
	ProcessingFeeMode          string   `json:"processingFeeMode"`
	ApprovePqrSelection        string   `json:"approvePqrSelection"`
	ApproveFinanceDocSelection string   `json:"approveFinanceDocSelection"`
	AltPqrDocs                 []string `json:"altPqrDocs"`
	AltFinanceDocs             []string `json:"altFinanceDocs"`

	// Поля отклонения
	TenderStatus       *int   `json:"tenderStatus"` // код из набора DNB
	TlRejectionRemarks string `json:"tlRejectionRemarks"`
	OemNotAllowed      string `json:"oemNotAllowed"`

	// Поля неполноты
	IncompleteFields []IncompleteFieldInput `json:"incompleteFields"`
}

type ApprovalListQuery struct {
	TlStatus  *int   `form:"tlStatus"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
}

// ============ Пользователи ============

type UserResponse struct {
	ID       uint   `json:"id"`
	Login    string `json:"login"`
	FullName string `json:"full_name"`
	Role     uint   `json:"role"`
	TeamID   *uint  `json:"team_id,omitempty"`
}

type RegisterRequest struct {
	Login    string `json:"login" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email"`
	Role     uint   `json:"role"`
	TeamID   *uint  `json:"team_id"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ============ Дашборд ============

type DashboardQuery struct {
	Tab       string `form:"tab"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
	TeamID    *uint  `form:"teamId"`
}

type DashboardCounts struct {
	Pending   int64 `json:"pending"`
	Sent      int64 `json:"sent"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
	Returned  int64 `json:"returned"`
	TenderDNB int64 `json:"tenderDnb"`
	Total     int64 `json:"total"`
}

type PendingTenderRow struct {
	TenderID       uint       `json:"tenderId"`
	TenderNo       string     `json:"tenderNo"`
	TenderName     string     `json:"tenderName"`
	DueDate        *time.Time `json:"dueDate"`
	TeamMemberID   *uint      `json:"teamMemberId"`
	TeamMemberName string     `json:"teamMemberName"`
	Emd            float64    `json:"emd"`
	EmdMode        *string    `json:"emdMode"`
	TenderFee      float64    `json:"tenderFee"`
	TenderFeeMode  *string    `json:"tenderFeeMode"`
	ProcessingFee  *float64   `json:"processingFee"`
	Status         int        `json:"status"`
	GstValues      float64    `json:"gstValues"`
}

type PaymentRequestRow struct {
	ID               uint       `json:"id"`
	TenderID         uint       `json:"tenderId"`
	TenderNo         string     `json:"tenderNo"`
	TenderName       string     `json:"tenderName"`
	Purpose          string     `json:"purpose"`
	AmountRequired   float64    `json:"amountRequired"`
	DueDate          *time.Time `json:"dueDate"`
	TeamMemberID     *uint      `json:"teamMemberId"`
	TeamMemberName   string     `json:"teamMemberName"`
	InstrumentID     *uint      `json:"instrumentId"`
	InstrumentType   *string    `json:"instrumentType"`
	InstrumentStatus *string    `json:"instrumentStatus"`
	DisplayStatus    string     `json:"displayStatus"`
	CreatedAt        time.Time  `json:"createdAt"`
}
