package ds

import "time"

// Тип платёжного инструмента
type InstrumentType string

const (
	InstrumentDD            InstrumentType = "DD"
	InstrumentFDR           InstrumentType = "FDR"
	InstrumentBG            InstrumentType = "BG"
	InstrumentCheque        InstrumentType = "Cheque"
	InstrumentBankTransfer  InstrumentType = "Bank Transfer"
	InstrumentPortalPayment InstrumentType = "Portal Payment"
)

// AllInstrumentTypes — фиксированный список типов (для валидации и словарей статусов)
var AllInstrumentTypes = []InstrumentType{
	InstrumentDD,
	InstrumentFDR,
	InstrumentBG,
	InstrumentCheque,
	InstrumentBankTransfer,
	InstrumentPortalPayment,
}

// InstrumentTypeFromMode переводит код режима оплаты из формы в тип инструмента
func InstrumentTypeFromMode(mode string) InstrumentType {
	switch mode {
	case "DD":
		return InstrumentDD
	case "FDR":
		return InstrumentFDR
	case "BG":
		return InstrumentBG
	case "CHEQUE":
		return InstrumentCheque
	case "BANK_TRANSFER", "BT":
		return InstrumentBankTransfer
	case "PORTAL", "POP":
		return InstrumentPortalPayment
	}
	return InstrumentDD
}

// Таблица платёжных инструментов.
// Инвариант: на одну заявку не больше одного инструмента с IsActive=true;
// после отклонения старая строка деактивируется, создаётся новая
type PaymentInstrument struct {
	ID        uint `gorm:"primaryKey"`
	RequestID uint `gorm:"not null;index"`

	InstrumentType InstrumentType `gorm:"type:varchar(30);not null;index"`

	// Общие поля для всех типов
	Amount    float64 `gorm:"type:decimal(15,2);not null"`
	Favouring *string `gorm:"type:varchar(500)"`
	PayableAt *string `gorm:"type:varchar(500)"`

	IssueDate       *time.Time `gorm:"type:date"`
	ExpiryDate      *time.Time `gorm:"type:date"`
	ClaimExpiryDate *time.Time `gorm:"type:date"`

	CourierAddress  *string
	CourierDeadline *int // срок курьерской доставки в часах

	Status       string `gorm:"type:varchar(100);not null;index"`
	CurrentStage int    `gorm:"default:1"`
	IsActive     bool   `gorm:"default:true;index"`

	RejectionReason *string

	// Пути к сгенерированным документам
	GeneratedPdf   *string `gorm:"type:varchar(500)"`
	CoveringLetter *string `gorm:"type:varchar(500)"`
	ExtraPdfPaths  *string

	Remarks *string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time

	Request PaymentRequest `gorm:"foreignKey:RequestID"`
}
