package pdf

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"tms/internal/app/ds"
	"tms/internal/app/storage"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"
)

// Generator рендерит печатную форму инструмента в HTML и печатает её
// в PDF через headless Chrome. Готовый документ складывается в MinIO
type Generator struct {
	storage *storage.MinIOClient
	tmpl    *template.Template
}

func NewGenerator(storage *storage.MinIOClient) (*Generator, error) {
	tmpl, err := template.New("instrument").Parse(instrumentTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse instrument template: %w", err)
	}
	return &Generator{storage: storage, tmpl: tmpl}, nil
}

type templateData struct {
	Title       string
	TenderNo    string
	ProjectName string
	Purpose     string
	Amount      string
	Favouring   string
	PayableAt   string
	IssueDate   string
	ExpiryDate  string
	Address     string
	Remarks     string
	PrintedAt   string
}

// GenerateInstrumentPDF печатает форму запроса инструмента и возвращает
// имена сохранённых объектов
func (g *Generator) GenerateInstrumentPDF(inst *ds.PaymentInstrument, req *ds.PaymentRequest) ([]string, error) {
	data := templateData{
		Title:       fmt.Sprintf("%s Request", inst.InstrumentType),
		TenderNo:    req.TenderNo,
		ProjectName: req.ProjectName,
		Purpose:     string(req.Purpose),
		Amount:      fmt.Sprintf("%.2f", inst.Amount),
		PrintedAt:   time.Now().Format("02-Jan-2006 15:04"),
	}
	if inst.Favouring != nil {
		data.Favouring = *inst.Favouring
	}
	if inst.PayableAt != nil {
		data.PayableAt = *inst.PayableAt
	}
	if inst.IssueDate != nil {
		data.IssueDate = inst.IssueDate.Format("02-Jan-2006")
	}
	if inst.ExpiryDate != nil {
		data.ExpiryDate = inst.ExpiryDate.Format("02-Jan-2006")
	}
	if inst.CourierAddress != nil {
		data.Address = *inst.CourierAddress
	}
	if inst.Remarks != nil {
		data.Remarks = *inst.Remarks
	}

	var body bytes.Buffer
	if err := g.tmpl.Execute(&body, data); err != nil {
		return nil, err
	}

	pdfBytes, err := renderPDF(body.String())
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("instruments/%d/request_form.pdf", inst.ID)
	stored, err := g.storage.UploadPDF(pdfBytes, objectName)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"instrument_id": inst.ID,
		"object":        stored,
	}).Info("instrument pdf generated")
	return []string{stored}, nil
}

// renderPDF печатает HTML в PDF через headless Chrome
func renderPDF(html string) ([]byte, error) {
	tmpDir := os.TempDir()
	tmpHTML := filepath.Join(tmpDir, "instrument_"+time.Now().Format("20060102150405.000")+".html")
	if err := os.WriteFile(tmpHTML, []byte(html), 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, 30*time.Second)
	defer cancelTimeout()

	var pdfBuf []byte
	fileURL := "file://" + tmpHTML

	err := chromedp.Run(ctx,
		chromedp.Navigate(fileURL),
		chromedp.Sleep(500*time.Millisecond),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}

const instrumentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
@page { size: A4; margin: 30px; }
body { font-family: Arial, Helvetica, sans-serif; font-size: 13px; }
h1 { font-size: 18px; border-bottom: 2px solid #333; padding-bottom: 8px; }
table { width: 100%; border-collapse: collapse; margin-top: 16px; }
td { padding: 6px 8px; border: 1px solid #999; }
td.label { width: 35%; font-weight: bold; background: #f2f2f2; }
.footer { margin-top: 40px; font-size: 11px; color: #666; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<table>
<tr><td class="label">Tender No</td><td>{{.TenderNo}}</td></tr>
<tr><td class="label">Project</td><td>{{.ProjectName}}</td></tr>
<tr><td class="label">Purpose</td><td>{{.Purpose}}</td></tr>
<tr><td class="label">Amount</td><td>{{.Amount}}</td></tr>
{{if .Favouring}}<tr><td class="label">In Favour Of</td><td>{{.Favouring}}</td></tr>{{end}}
{{if .PayableAt}}<tr><td class="label">Payable At</td><td>{{.PayableAt}}</td></tr>{{end}}
{{if .IssueDate}}<tr><td class="label">Issue Date</td><td>{{.IssueDate}}</td></tr>{{end}}
{{if .ExpiryDate}}<tr><td class="label">Expiry Date</td><td>{{.ExpiryDate}}</td></tr>{{end}}
{{if .Address}}<tr><td class="label">Courier Address</td><td>{{.Address}}</td></tr>{{end}}
{{if .Remarks}}<tr><td class="label">Remarks</td><td>{{.Remarks}}</td></tr>{{end}}
</table>
<div class="footer">Printed {{.PrintedAt}}</div>
</body>
</html>`
