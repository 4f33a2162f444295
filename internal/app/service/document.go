package service

import (
	"fmt"
	"time"

	"tms/internal/app/ds"

	"github.com/sirupsen/logrus"
)

// Виды документов инструмента
const (
	DocumentForm       = "form"       // сгенерированная печатная форма
	DocumentLetter     = "letter"     // сопроводительное письмо
	DocumentAttachment = "attachment" // загруженная скан-копия
)

// DocumentService выдаёт документы инструмента из объектного хранилища
// и принимает загружаемые скан-копии. Без настроенного хранилища
// операции с документами недоступны
type DocumentService struct {
	store Store
	files FileStore
}

func NewDocumentService(store Store, files FileStore) *DocumentService {
	return &DocumentService{store: store, files: files}
}

// AttachFile загружает скан-копию инструмента и сохраняет путь на
// инструменте. Предыдущее вложение удаляется из хранилища
func (s *DocumentService) AttachFile(instrumentID uint, filename string, data []byte) (*ds.PaymentInstrument, error) {
	if s.files == nil {
		return nil, fmt.Errorf("%w: хранилище документов не настроено", ErrBadRequest)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: пустой файл", ErrBadRequest)
	}

	inst, err := s.store.GetInstrument(instrumentID)
	if err != nil {
		return nil, fmt.Errorf("%w: инструмент %d", ErrNotFound, instrumentID)
	}

	stored, err := s.files.UploadFile(data, filename)
	if err != nil {
		return nil, err
	}

	if inst.ExtraPdfPaths != nil && *inst.ExtraPdfPaths != "" {
		if err := s.files.DeleteFile(*inst.ExtraPdfPaths); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"instrument_id": instrumentID,
				"object":        *inst.ExtraPdfPaths,
			}).Warn("failed to delete replaced attachment")
		}
	}

	if err := s.store.UpdateInstrument(instrumentID, map[string]interface{}{
		"extra_pdf_paths": stored,
		"updated_at":      time.Now(),
	}); err != nil {
		return nil, err
	}
	return s.store.GetInstrument(instrumentID)
}

// DocumentURL возвращает временную ссылку на документ инструмента
func (s *DocumentService) DocumentURL(instrumentID uint, kind string) (string, error) {
	path, err := s.documentPath(instrumentID, kind)
	if err != nil {
		return "", err
	}
	return s.files.GetFileURL(path)
}

// DocumentContent возвращает содержимое документа для выдачи напрямую
func (s *DocumentService) DocumentContent(instrumentID uint, kind string) ([]byte, error) {
	path, err := s.documentPath(instrumentID, kind)
	if err != nil {
		return nil, err
	}
	return s.files.DownloadFile(path)
}

func (s *DocumentService) documentPath(instrumentID uint, kind string) (string, error) {
	if s.files == nil {
		return "", fmt.Errorf("%w: хранилище документов не настроено", ErrBadRequest)
	}

	inst, err := s.store.GetInstrument(instrumentID)
	if err != nil {
		return "", fmt.Errorf("%w: инструмент %d", ErrNotFound, instrumentID)
	}

	var path *string
	switch kind {
	case DocumentForm, "":
		path = inst.GeneratedPdf
	case DocumentLetter:
		path = inst.CoveringLetter
	case DocumentAttachment:
		path = inst.ExtraPdfPaths
	default:
		return "", fmt.Errorf("%w: неизвестный вид документа %q", ErrBadRequest, kind)
	}
	if path == nil || *path == "" {
		return "", fmt.Errorf("%w: у инструмента %d нет документа вида %q", ErrNotFound, instrumentID, kind)
	}

	exists, err := s.files.FileExists(*path)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("%w: объект %q отсутствует в хранилище", ErrNotFound, *path)
	}
	return *path, nil
}
