package ds

import "time"

// Детали инструмента — по одной строке на инструмент,
// таблица выбирается по типу инструмента

// Детали Demand Draft (используется также для чеков по полям DD)
type DdDetail struct {
	ID           uint `gorm:"primaryKey"`
	InstrumentID uint `gorm:"not null;index"`

	DdNo     *string    `gorm:"type:varchar(100)"`
	DdDate   *time.Time `gorm:"type:date"`
	BankName *string    `gorm:"type:varchar(300)"`

	DdNeeds   *string `gorm:"type:varchar(255)"` // кому/как передать (deliver by)
	DdPurpose *string `gorm:"type:varchar(255)"`
	DdRemarks *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Детали Fixed Deposit Receipt
type FdrDetail struct {
	ID           uint `gorm:"primaryKey"`
	InstrumentID uint `gorm:"not null;index"`

	FdrNo         *string    `gorm:"type:varchar(100)"`
	FdrDate       *time.Time `gorm:"type:date"`
	FdrExpiryDate *time.Time `gorm:"type:date"`
	FdrSource     *string    `gorm:"type:varchar(200)"`
	Roi           *float64   `gorm:"type:decimal(15,2)"`
	MarginPercent *float64   `gorm:"type:decimal(15,2)"`

	FdrNeeds   *string `gorm:"type:varchar(255)"`
	FdrPurpose *string `gorm:"type:varchar(500)"`
	FdrRemark  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Детали Bank Guarantee
type BgDetail struct {
	ID           uint `gorm:"primaryKey"`
	InstrumentID uint `gorm:"not null;index"`

	BgNo            *string    `gorm:"type:varchar(100)"`
	BgDate          *time.Time `gorm:"type:date"`
	ValidityDate    *time.Time `gorm:"type:date"`
	ClaimExpiryDate *time.Time `gorm:"type:date"`

	BeneficiaryName    *string `gorm:"type:varchar(500)"`
	BeneficiaryAddress *string
	BankName           *string `gorm:"type:varchar(300)"`

	StampCharges *float64 `gorm:"type:decimal(15,2)"`
	SfmsCharges  *float64 `gorm:"type:decimal(15,2)"`

	BgNeeds   *string `gorm:"type:varchar(255)"`
	BgPurpose *string `gorm:"type:varchar(255)"`

	// Контакты клиента для подтверждения BG
	BgClientUser *string `gorm:"type:varchar(255)"`
	BgClientCp   *string `gorm:"type:varchar(255)"`
	BgClientFin  *string `gorm:"type:varchar(255)"`

	// Реквизиты счёта
	BgBankAcc  *string `gorm:"type:varchar(255)"`
	BgBankIfsc *string `gorm:"type:varchar(255)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Детали чека. LinkedDdID/LinkedFdrID — обратная ссылка на строку деталей
// DD/FDR, из-за которой чек был создан автоматически
type ChequeDetail struct {
	ID           uint `gorm:"primaryKey"`
	InstrumentID uint `gorm:"not null;index"`

	ChequeNo   *string    `gorm:"type:varchar(50)"`
	ChequeDate *time.Time `gorm:"type:date"`
	BankName   *string    `gorm:"type:varchar(300)"`

	LinkedDdID  *uint `gorm:"index"`
	LinkedFdrID *uint `gorm:"index"`

	ChequeNeeds  *string `gorm:"type:varchar(255)"`
	ChequeReason *string `gorm:"type:varchar(255)"`

	Handover       *string `gorm:"type:varchar(200)"`
	Confirmation   *string `gorm:"type:varchar(200)"`
	StopReasonText *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Детали банковского перевода и оплаты через портал (общая таблица)
type TransferDetail struct {
	ID           uint `gorm:"primaryKey"`
	InstrumentID uint `gorm:"not null;index"`

	// Банковский перевод
	AccountName   *string `gorm:"type:varchar(500)"`
	AccountNumber *string `gorm:"type:varchar(50)"`
	Ifsc          *string `gorm:"type:varchar(20)"`
	UtrNum        *string `gorm:"type:varchar(200)"`

	// Оплата через портал
	PortalName    *string `gorm:"type:varchar(200)"`
	PaymentMethod *string `gorm:"type:varchar(50)"`
	IsNetbanking  *string `gorm:"type:varchar(255)"` // YES/NO
	IsDebit       *string `gorm:"type:varchar(255)"` // YES/NO

	TransactionID   *string    `gorm:"type:varchar(500)"`
	TransactionDate *time.Time

	Reason  *string
	Remarks *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
