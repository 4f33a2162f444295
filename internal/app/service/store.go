package service

import (
	"time"

	"tms/internal/app/ds"
)

// Store — хранилище сервисного слоя. Реализуется репозиторием поверх gorm;
// в тестах подменяется фейком. InTx выполняет fn в одной транзакции,
// все записи внутри фиксируются или откатываются вместе
type Store interface {
	InTx(fn func(tx Store) error) error

	// Тендеры
	GetTender(id uint) (*ds.TenderInfo, error)
	GetInfoSheet(tenderID uint) (*ds.TenderInfoSheet, error)
	UpdateTender(id uint, fields map[string]interface{}) error
	AppendTenderStatusHistory(h *ds.TenderStatusHistory) error
	DeleteIncompleteFields(tenderID uint) error
	InsertIncompleteFields(rows []ds.TenderIncompleteField) error
	ListIncompleteFields(tenderID uint) ([]ds.TenderIncompleteField, error)
	ListTendersByTlStatus(tlStatus *ds.TlStatus, p PageRequest) ([]ds.TenderInfo, int64, error)

	// Платёжные заявки
	CreateRequest(r *ds.PaymentRequest) error
	GetRequest(id uint) (*ds.PaymentRequest, error)
	ListRequestsByTender(tenderID uint) ([]ds.PaymentRequest, error)
	UpdateRequest(id uint, fields map[string]interface{}) error

	// Инструменты
	CreateInstrument(i *ds.PaymentInstrument) error
	GetInstrument(id uint) (*ds.PaymentInstrument, error)
	GetActiveInstrument(requestID uint) (*ds.PaymentInstrument, error)
	ListActiveInstruments(requestID uint) ([]ds.PaymentInstrument, error)
	UpdateInstrument(id uint, fields map[string]interface{}) error

	// Детали инструментов
	CreateDdDetail(d *ds.DdDetail) error
	CreateFdrDetail(d *ds.FdrDetail) error
	CreateBgDetail(d *ds.BgDetail) error
	CreateChequeDetail(d *ds.ChequeDetail) error
	CreateTransferDetail(d *ds.TransferDetail) error
	GetInstrumentDetails(instrumentID uint, t ds.InstrumentType) (interface{}, error)
	UpdateDetailFields(instrumentID uint, t ds.InstrumentType, fields map[string]interface{}) error

	// История статусов
	AppendInstrumentHistory(h *ds.InstrumentStatusHistory) error
	ListInstrumentHistory(instrumentID uint) ([]ds.InstrumentStatusHistory, error)
}

// PDFGenerator — внешний генератор печатных форм инструментов
type PDFGenerator interface {
	GenerateInstrumentPDF(inst *ds.PaymentInstrument, req *ds.PaymentRequest) ([]string, error)
}

// FileStore — объектное хранилище документов инструментов.
// Реализуется MinIO клиентом, в тестах подменяется фейком
type FileStore interface {
	UploadFile(fileData []byte, originalFilename string) (string, error)
	DeleteFile(filename string) error
	GetFileURL(filename string) (string, error)
	DownloadFile(filename string) ([]byte, error)
	FileExists(filename string) (bool, error)
}

// EmailMessage — письмо-уведомление о событии по тендеру
type EmailMessage struct {
	TenderID   uint
	EventType  string
	FromUserID uint
	To         []string
	Cc         []string
	Subject    string
	Template   string
	Data       map[string]interface{}
}

// EmailSender отправляет уведомление, ошибка не прерывает вызывающий поток
type EmailSender interface {
	SendTenderEmail(msg EmailMessage) error
}

// TimerConfig — параметры запуска таймера этапа
type TimerConfig struct {
	Type        string // FIXED_DURATION или NEGATIVE_COUNTDOWN
	AllocatedMs int64
	DeadlineAt  *time.Time
}

// TimerClient — контракт внешней подсистемы таймеров, только запуск/остановка
type TimerClient interface {
	StartTimer(entityType string, entityID uint, stage string, userID uint, cfg TimerConfig) error
	StopTimer(entityType string, entityID uint, stage string, userID uint, reason string) error
}
