package service

import (
	"errors"
	"testing"

	"tms/internal/app/ds"
	"tms/internal/app/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func documentFixture() (*DocumentService, *fakeStore, *fakeFiles) {
	store := newFakeStore()
	files := newFakeFiles()
	return NewDocumentService(store, files), store, files
}

func TestAttachFileStoresPath(t *testing.T) {
	svc, store, files := documentFixture()
	inst := seedInstrument(store, ds.InstrumentDD, status.DDRequested)

	updated, err := svc.AttachFile(inst.ID, "scan.pdf", []byte("first"))
	require.NoError(t, err)
	require.NotNil(t, updated.ExtraPdfPaths)
	first := *updated.ExtraPdfPaths

	// повторная загрузка заменяет вложение и удаляет старый объект
	updated, err = svc.AttachFile(inst.ID, "scan-v2.pdf", []byte("second"))
	require.NoError(t, err)
	require.NotNil(t, updated.ExtraPdfPaths)
	assert.NotEqual(t, first, *updated.ExtraPdfPaths)
	assert.Contains(t, files.deleted, first)
}

func TestAttachFileValidation(t *testing.T) {
	svc, store, _ := documentFixture()
	inst := seedInstrument(store, ds.InstrumentDD, status.DDRequested)

	t.Run("пустой файл", func(t *testing.T) {
		_, err := svc.AttachFile(inst.ID, "scan.pdf", nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrBadRequest))
	})

	t.Run("несуществующий инструмент", func(t *testing.T) {
		_, err := svc.AttachFile(404, "scan.pdf", []byte("data"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("хранилище не настроено", func(t *testing.T) {
		bare := NewDocumentService(store, nil)
		_, err := bare.AttachFile(inst.ID, "scan.pdf", []byte("data"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrBadRequest))
	})
}

func TestDocumentURL(t *testing.T) {
	svc, store, files := documentFixture()
	inst := seedInstrument(store, ds.InstrumentFDR, status.FDRRequested)

	path := "instruments/1/request_form.pdf"
	files.objects[path] = []byte("%PDF")
	require.NoError(t, store.UpdateInstrument(inst.ID, map[string]interface{}{"generated_pdf": path}))

	t.Run("печатная форма", func(t *testing.T) {
		url, err := svc.DocumentURL(inst.ID, DocumentForm)
		require.NoError(t, err)
		assert.Equal(t, "https://files.local/"+path, url)
	})

	t.Run("вид по умолчанию — печатная форма", func(t *testing.T) {
		url, err := svc.DocumentURL(inst.ID, "")
		require.NoError(t, err)
		assert.Contains(t, url, path)
	})

	t.Run("незаполненный вид документа", func(t *testing.T) {
		_, err := svc.DocumentURL(inst.ID, DocumentLetter)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("неизвестный вид документа", func(t *testing.T) {
		_, err := svc.DocumentURL(inst.ID, "archive")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrBadRequest))
	})

	t.Run("путь есть, объекта в хранилище нет", func(t *testing.T) {
		lost := seedInstrument(store, ds.InstrumentDD, status.DDRequested)
		require.NoError(t, store.UpdateInstrument(lost.ID, map[string]interface{}{"generated_pdf": "instruments/lost.pdf"}))
		_, err := svc.DocumentURL(lost.ID, DocumentForm)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestDocumentContent(t *testing.T) {
	svc, store, _ := documentFixture()
	inst := seedInstrument(store, ds.InstrumentBG, status.BGRequested)

	updated, err := svc.AttachFile(inst.ID, "signed_bg.pdf", []byte("%PDF-signed"))
	require.NoError(t, err)
	require.NotNil(t, updated.ExtraPdfPaths)

	data, err := svc.DocumentContent(inst.ID, DocumentAttachment)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-signed"), data)
}
