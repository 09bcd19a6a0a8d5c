package export

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/mmcdole/photodeck/internal/domain"
)

var tableTemplate = template.Must(template.New("table").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <style>
    body { font-family: Calibri, Arial, sans-serif; font-size: 11pt; }
    table { border-collapse: collapse; width: 100%; margin: 20px 0; }
    th { background-color: #4472C4; color: white; font-weight: bold; padding: 8px; text-align: left; border: 1px solid #ddd; }
    td { padding: 8px; border: 1px solid #ddd; }
    tr:nth-child(even) { background-color: #f2f2f2; }
    img { width: 50px; height: 50px; object-fit: cover; }
  </style>
</head>
<body>
  <p>Hello,</p>
  <p>Please find the bulk photo request details below:</p>
  <p><strong>Total Photos Requested: {{len .}}</strong></p>
  <table>
    <thead>
      <tr>
        <th>ID</th>
        <th>Album ID</th>
        <th>Title</th>
        <th>Thumbnail</th>
        <th>URL</th>
      </tr>
    </thead>
    <tbody>
{{- range .}}
      <tr>
        <td>{{.ID}}</td>
        <td>{{.AlbumID}}</td>
        <td>{{.Title}}</td>
        <td><img src="{{.ThumbnailURL}}" alt="{{.Title}}" /></td>
        <td><a href="{{.URL}}">View Photo</a></td>
      </tr>
{{- end}}
    </tbody>
  </table>
  <p>Best regards,<br/>Photo Gallery System</p>
</body>
</html>
`))

// PhotoTableHTML renders photos as a standalone HTML document with one
// populated row each. Titles and URLs are escaped.
func PhotoTableHTML(photos []domain.Photo) (string, error) {
	var buf bytes.Buffer
	if err := tableTemplate.Execute(&buf, photos); err != nil {
		return "", fmt.Errorf("render photo table: %w", err)
	}
	return buf.String(), nil
}

// SummaryText is the plain-text body that accompanies the table
func SummaryText(photos []domain.Photo) string {
	return fmt.Sprintf("Hello,\n\nPlease find the bulk photo request details below.\n\n"+
		"Total Photos Requested: %d\n\nPlease see the table with photo details.\n\n"+
		"Best regards,\nPhoto Gallery System", len(photos))
}
