package ds

import "time"

// Назначение платежа по тендеру
type PaymentPurpose string

const (
	PurposeEMD           PaymentPurpose = "EMD"
	PurposeTenderFee     PaymentPurpose = "Tender Fee"
	PurposeProcessingFee PaymentPurpose = "Processing Fee"
)

// Тип заявки на оплату: TMS — по реальному тендеру из системы,
// остальные — по внешним/старым записям
type PaymentRequestType string

const (
	RequestTypeTMS             PaymentRequestType = "TMS"
	RequestTypeOtherThanTMS    PaymentRequestType = "Other Than TMS"
	RequestTypeOldEntries      PaymentRequestType = "Old Entries"
	RequestTypeOtherThanTender PaymentRequestType = "Other Than Tender"
)

// IsTMS — заявка привязана к живому тендеру, суммы берём из тендера
func (t PaymentRequestType) IsTMS() bool {
	return t == RequestTypeTMS || t == RequestTypeOtherThanTMS || t == ""
}

// Таблица заявок на оплату
type PaymentRequest struct {
	ID       uint `gorm:"primaryKey"`
	TenderID uint `gorm:"not null;index"` // 0 для заявок вне тендера

	Type        PaymentRequestType `gorm:"type:varchar(30);default:'TMS'"`
	TenderNo    string             `gorm:"type:varchar(500);default:'NA'"`
	ProjectName string             `gorm:"type:varchar(500)"`

	Purpose        PaymentPurpose `gorm:"type:varchar(30);not null;index"`
	AmountRequired float64        `gorm:"type:decimal(15,2);not null"`
	DueDate        *time.Time
	RequestedBy    uint `gorm:"default:0"`

	Status  string `gorm:"type:varchar(50);default:'Pending'"` // административный статус заявки
	Remarks *string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time
}
