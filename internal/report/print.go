package report

import (
	"html/template"
	"io"
	"strconv"
	"time"

	"github.com/aanand-mishra/employees-api/internal/types"
	"github.com/olekukonko/tablewriter"
)

var printTmpl = template.Must(template.New("print").Parse(`<html>
  <head>
    <title>Employee List</title>
    <style>
      body { font-family: Arial, sans-serif; padding: 20px; }
      h1 { color: #333; }
      table { width: 100%; border-collapse: collapse; margin-top: 20px; }
      th, td { border: 1px solid #ddd; padding: 12px; text-align: left; }
      th { background-color: #f3f4f6; }
      tr:nth-child(even) { background-color: #f9f9f9; }
    </style>
  </head>
  <body>
    <h1>Employee List</h1>
    <p>Generated on {{.Generated}}</p>
    <table>
      <thead>
        <tr><th>ID</th><th>Name</th><th>Gender</th><th>State</th><th>Status</th></tr>
      </thead>
      <tbody>
{{- range .Rows}}
        <tr><td>{{.ID}}</td><td>{{.FullName}}</td><td>{{.Gender}}</td><td>{{.State}}</td><td>{{.Status}}</td></tr>
{{- end}}
      </tbody>
    </table>
    <script>window.print();</script>
  </body>
</html>
`))

// WriteHTML renders the printable employee list. Field values are escaped.
func WriteHTML(w io.Writer, employees []types.Employee, generated time.Time) error {
	return printTmpl.Execute(w, struct {
		Generated string
		Rows      []Row
	}{
		Generated: generated.Format("01/02/2006"),
		Rows:      Rows(employees),
	})
}

// WriteTable renders the same projection as a console table.
func WriteTable(w io.Writer, employees []types.Employee) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name", "Gender", "State", "Status"})
	table.SetAutoWrapText(false)

	for _, r := range Rows(employees) {
		table.Append([]string{strconv.Itoa(r.ID), r.FullName, r.Gender, r.State, r.Status})
	}

	table.Render()
}
