// Package export renders the bulk request email draft and the HTML photo
// table copied to the clipboard.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/mmcdole/photodeck/internal/domain"
)

// MaxBulkPhotos caps how many loaded photos the bulk modal offers
const MaxBulkPhotos = 50

// DefaultFilename is the draft name Outlook and friends pick up
const DefaultFilename = "bulk-request-template.eml"

// BulkRequest is one draft to render. Rows only sizes the tracking table;
// the carrier fills the cells in.
type BulkRequest struct {
	To      []string
	Subject string
	Rows    []domain.Photo
}

// trackingColumns are the fixed table headings. Optional columns carry a
// red "(if applicable)" note.
var trackingColumns = []struct {
	Lines    []string
	Optional bool
	Class    string
}{
	{[]string{"Trip", "Number"}, false, "col-trip"},
	{[]string{"Booking", "Number"}, false, "col-booking"},
	{[]string{"Origin"}, false, "col-origin"},
	{[]string{"Stop"}, true, "col-stop"},
	{[]string{"Dest"}, false, "col-dest"},
	{[]string{"DDHD Org"}, true, "col-ddhd-org"},
	{[]string{"DDHD Dest"}, true, "col-ddhd-dest"},
	{[]string{"Trailer", "Number"}, false, "col-trailer"},
	{[]string{"Last Known", "Tracking Location"}, false, "col-location"},
}

var bulkTemplate = template.Must(template.New("bulk").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <style>
    body { font-family: Calibri, Arial, sans-serif; font-size: 11pt; color: #333; }
    table { border-collapse: collapse; width: 100%; margin: 20px 0; }
    th, td { border: 1px solid #999; padding: 8px; text-align: left; word-wrap: break-word; }
    th { font-weight: bold; color: #333; white-space: nowrap; }
    .red-text { color: #FF0000; }
  </style>
</head>
<body>
  <p>Hi Team,</p>

  <p>Please provide a current tracking update on the following:</p>

  <table>
    <colgroup>
{{- range .Columns}}
      <col class="{{.Class}}">
{{- end}}
    </colgroup>
    <thead>
      <tr>
{{- range .Columns}}
        <th>{{range $i, $l := .Lines}}{{if $i}}<br/>{{end}}{{$l}}{{end}}{{if .Optional}}<br/><span class="red-text">(if applicable)</span>{{end}}</th>
{{- end}}
      </tr>
    </thead>
    <tbody>
{{- range .Rows}}
      <tr>
{{- range $.Columns}}
        <td>&nbsp;</td>
{{- end}}
      </tr>
{{- end}}
    </tbody>
  </table>

  <p>Thank you,</p>

  <p><strong>**BULK REQUEST TEMPLATE**</strong></p>
</body>
</html>
`))

// HTML renders the draft body
func (r BulkRequest) HTML() (string, error) {
	var buf bytes.Buffer
	data := struct {
		Columns any
		Rows    []domain.Photo
	}{trackingColumns, r.Rows}
	if err := bulkTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render bulk template: %w", err)
	}
	return buf.String(), nil
}

// WriteEML writes the draft as an unsent RFC 5322 message with an HTML
// body. X-Unsent makes Outlook open it as an editable draft.
func (r BulkRequest) WriteEML(w io.Writer, now time.Time) error {
	if len(r.Rows) == 0 {
		return domain.ErrEmptySelection
	}
	body, err := r.HTML()
	if err != nil {
		return err
	}

	to := make([]*mail.Address, 0, len(r.To))
	for _, addr := range r.To {
		a, err := mail.ParseAddress(strings.TrimSpace(addr))
		if err != nil {
			return fmt.Errorf("recipient %q: %w", addr, err)
		}
		to = append(to, a)
	}

	var h mail.Header
	h.Set("X-Unsent", "1")
	h.SetAddressList("To", to)
	h.SetSubject(r.Subject)
	h.SetDate(now)
	h.Set("MIME-Version", "1.0")
	h.SetContentType("text/html", map[string]string{"charset": "UTF-8"})

	mw, err := mail.CreateSingleInlineWriter(w, h)
	if err != nil {
		return fmt.Errorf("create message writer: %w", err)
	}
	if _, err := io.WriteString(mw, body); err != nil {
		mw.Close()
		return fmt.Errorf("write message body: %w", err)
	}
	return mw.Close()
}

// WriteDraft saves the draft to dir/filename, replacing any earlier one.
// It returns the written path and size in bytes.
func WriteDraft(dir, filename string, r BulkRequest) (string, int64, error) {
	if filename == "" {
		filename = DefaultFilename
	}
	if dir == "" {
		dir = "."
	}

	var buf bytes.Buffer
	if err := r.WriteEML(&buf, time.Now()); err != nil {
		return "", 0, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", 0, fmt.Errorf("write draft: %w", err)
	}
	return path, int64(buf.Len()), nil
}
