package utils

import (
	"bytes"
	"html/template"

	"github.com/maa-telecom/repair-pos-api/models"
)

// invoiceTemplate is the printable invoice document. It mirrors the paper
// layout the shop hands to customers: shop header, customer and device
// blocks, part lines, labor, then subtotal, advance, and due.
const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Invoice {{.Repair.InvoiceNumber}} - {{.Shop.Name}}</title>
<style>
  body { font-family: sans-serif; max-width: 640px; margin: 2em auto; color: #222; }
  h1 { margin: 0; }
  .muted { color: #777; font-size: 0.85em; }
  table { width: 100%; border-collapse: collapse; margin-top: 1.5em; }
  th, td { text-align: left; padding: 0.5em 0; border-bottom: 1px solid #eee; }
  td.amount, th.amount { text-align: right; }
  tr.total td { font-weight: bold; border-top: 2px solid #222; }
  @media print { body { margin: 0; } }
</style>
</head>
<body>
  <h1>{{.Shop.Name}}</h1>
  <p class="muted">Mobile Repair Service<br>{{.Shop.Address}}<br>{{.Shop.Phone}}</p>

  <h2>INVOICE #{{.Repair.InvoiceNumber}}</h2>
  <p>
    <strong>{{.Repair.CustomerName}}</strong><br>
    {{.Repair.CustomerPhone}}<br>
    {{.Repair.CreatedAt.Format "02 Jan 2006"}}
  </p>

  <p>
    <strong>{{.Repair.DeviceModel}}</strong>
    {{if .Repair.IMEI}}<span class="muted">IMEI: {{.Repair.IMEI}}</span>{{end}}<br>
    <em>Issue: {{.Repair.IssueDescription}}</em>
  </p>

  <table>
    <tr><th>Description</th><th class="amount">Amount</th></tr>
    {{range .Repair.PartsUsed}}
    <tr><td>{{.Name}}</td><td class="amount">&#2547;{{.Price}}</td></tr>
    {{end}}
    <tr><td>Service/Labor Charge</td><td class="amount">&#2547;{{.Repair.LaborCharge}}</td></tr>
    <tr class="total"><td>Total</td><td class="amount">&#2547;{{.Subtotal}}</td></tr>
    <tr><td>Advance Paid</td><td class="amount">&#2547;{{.Repair.AdvancePaid}}</td></tr>
    <tr class="total"><td>Due Amount</td><td class="amount">&#2547;{{.Due}}</td></tr>
  </table>

  <p class="muted">Thank you for choosing {{.Shop.Name}}.</p>
</body>
</html>
`

var invoiceTmpl = template.Must(template.New("invoice").Parse(invoiceTemplate))

// RenderInvoiceHTML renders the printable invoice for a repair record.
func RenderInvoiceHTML(shop models.ShopDetails, repair models.RepairJob) ([]byte, error) {
	subtotal, due := models.InvoiceTotal(repair)

	var buf bytes.Buffer
	err := invoiceTmpl.Execute(&buf, struct {
		Shop     models.ShopDetails
		Repair   models.RepairJob
		Subtotal float64
		Due      float64
	}{shop, repair, subtotal, due})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
