package ds

import "time"

// Статус решения тимлида по тендеру
type TlStatus int

const (
	TlPending    TlStatus = 0
	TlApproved   TlStatus = 1
	TlRejected   TlStatus = 2
	TlIncomplete TlStatus = 3
)

// Фиксированные коды жизненного цикла тендера
const (
	TenderStatusNew          = 1
	TenderStatusInfoSheet    = 2
	TenderStatusInfoApproved = 3 // "Tender Info approved"
	TenderStatusRfqSent      = 4
	TenderStatusEMDRequested = 5 // "EMD Requested"
	TenderStatusIncomplete   = 9
	TenderStatusLost         = 11
)

// Коды категории DNB ("Do Not Bid") — терминальная классификация тендера.
// Используются и как коды причины отклонения при решении тимлида
var TenderDNBStatuses = []int{12, 13, 14, 15, 16}

// Таблица тендеров (срез полей, которыми управляет этот сервис)
type TenderInfo struct {
	ID         uint   `gorm:"primaryKey"`
	TenderNo   string `gorm:"type:varchar(200);not null"`
	TenderName string `gorm:"type:varchar(500);not null"`

	GstValues  float64 `gorm:"type:decimal(15,2);default:0"` // стоимость тендера с НДС
	TenderFees float64 `gorm:"type:decimal(15,2);default:0"`
	Emd        float64 `gorm:"type:decimal(15,2);default:0"`

	TeamMember *uint      // закреплённый исполнитель
	TeamID     *uint      `gorm:"index"`
	DueDate    *time.Time `gorm:"index"`

	Status   int  `gorm:"not null;default:1;index"`
	IsActive bool `gorm:"not null;default:true"`

	// Решение тимлида и его поля
	TlStatus                   TlStatus `gorm:"not null;default:0;index"`
	RfqTo                      *string  // список id вендоров через запятую
	TenderFeeMode              *string  `gorm:"type:varchar(30)"`
	EmdMode                    *string  `gorm:"type:varchar(30)"`
	ProcessingFeeMode          *string  `gorm:"type:varchar(30)"`
	ApprovePqrSelection        *string  `gorm:"type:varchar(50)"`
	ApproveFinanceDocSelection *string  `gorm:"type:varchar(50)"`
	AltPqrDocs                 *string  // альтернативные документы через запятую
	AltFinanceDocs             *string
	TlRejectionRemarks         *string
	OemNotAllowed              *string `gorm:"type:varchar(300)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Инфолист тендера: расширенные данные, заполняются до одобрения
type TenderInfoSheet struct {
	ID       uint `gorm:"primaryKey"`
	TenderID uint `gorm:"not null;uniqueIndex"`

	TenderValue *float64 `gorm:"type:decimal(15,2)"`
	TenderFee   *float64 `gorm:"type:decimal(15,2)"`
	EmdAmount   *float64 `gorm:"type:decimal(15,2)"`

	ProcessingFeeAmount *float64 `gorm:"type:decimal(15,2)"`

	PhysicalDocsRequired bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Поле, отмеченное тимлидом как незаполненное. Набор строк полностью
// заменяется при каждом переводе тендера в Incomplete и удаляется
// при выходе из этого состояния
type TenderIncompleteField struct {
	ID       uint `gorm:"primaryKey"`
	TenderID uint `gorm:"not null;index"`

	FieldName string `gorm:"type:varchar(200);not null"`
	Comment   string `gorm:"type:varchar(1000)"`
	Status    string `gorm:"type:varchar(30);default:'pending'"`

	CreatedAt time.Time
}

// История смен статуса тендера (только добавление)
type TenderStatusHistory struct {
	ID       uint `gorm:"primaryKey"`
	TenderID uint `gorm:"not null;index"`

	FromStatus *int
	ToStatus   int    `gorm:"not null"`
	Comment    string `gorm:"type:varchar(500)"`
	ChangedBy  uint   `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
}
