package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/rezensionsheld/backend/models"
)

var customerTemplate = template.Must(template.New("customer").Parse(`<!DOCTYPE html>
<html lang="de">
<body style="font-family: Arial, sans-serif; color: #1f2933;">
  <h2>Vielen Dank für Ihre Bestellung!</h2>
  <p>Hallo {{.CustomerName}},</p>
  <p>wir haben Ihren Auftrag <strong>{{.OrderID}}</strong> erhalten und beginnen in Kürze mit der Bearbeitung.</p>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><td><strong>Unternehmen</strong></td><td>{{.BusinessName}}</td></tr>
    <tr><td><strong>Anzahl Bewertungen</strong></td><td>{{.ReviewCount}}</td></tr>
    <tr><td><strong>Gesamtpreis</strong></td><td>{{.TotalPrice}} €</td></tr>
    <tr><td><strong>Voraussichtliche Bearbeitungszeit</strong></td><td>{{.ProcessingTime}}</td></tr>
  </table>
  <p>Bei Fragen antworten Sie einfach auf diese E-Mail.</p>
  <p>Ihr Rezensionsheld-Team</p>
</body>
</html>`))

var adminTemplate = template.Must(template.New("admin").Parse(`<!DOCTYPE html>
<html lang="de">
<body style="font-family: Arial, sans-serif; color: #1f2933;">
  <h2>Neuer Auftrag eingegangen</h2>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><td><strong>Auftrags-ID</strong></td><td>{{.OrderID}}</td></tr>
    <tr><td><strong>Unternehmen</strong></td><td>{{.BusinessName}} ({{.BusinessPlaceID}})</td></tr>
    <tr><td><strong>Kunde</strong></td><td>{{.CustomerName}} &lt;{{.CustomerEmail}}&gt; {{.CustomerPhone}}</td></tr>
    <tr><td><strong>Anzahl Bewertungen</strong></td><td>{{.ReviewCount}}</td></tr>
    <tr><td><strong>Gesamtpreis</strong></td><td>{{.TotalPrice}} €</td></tr>
  </table>
  <h3>Ausgewählte Bewertungen</h3>
  {{range .Reviews}}
  <div style="border-left: 3px solid #d64545; padding-left: 10px; margin-bottom: 10px;">
    <p><strong>{{.Reviewer}}</strong> – {{.Rating}} Sterne</p>
    <p>{{.Text}}</p>
  </div>
  {{end}}
</body>
</html>`))

type customerData struct {
	CustomerName   string
	OrderID        string
	BusinessName   string
	ReviewCount    int
	TotalPrice     string
	ProcessingTime string
}

type adminData struct {
	OrderID         string
	BusinessName    string
	BusinessPlaceID string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ReviewCount     int
	TotalPrice      string
	Reviews         []models.Review
}

func renderCustomerConfirmation(order *models.Order) (string, error) {
	name := order.CustomerName
	if name == "" {
		name = "liebe Kundin, lieber Kunde"
	}

	var buf bytes.Buffer
	err := customerTemplate.Execute(&buf, customerData{
		CustomerName:   name,
		OrderID:        order.OrderID,
		BusinessName:   order.BusinessName,
		ReviewCount:    order.ReviewCount,
		TotalPrice:     formatEuro(order.TotalPrice),
		ProcessingTime: "24-48 Stunden",
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderAdminAlert(order *models.Order) (string, error) {
	var reviews []models.Review
	if len(order.SelectedReviews) > 0 {
		if err := json.Unmarshal(order.SelectedReviews, &reviews); err != nil {
			return "", err
		}
	}

	var buf bytes.Buffer
	err := adminTemplate.Execute(&buf, adminData{
		OrderID:         order.OrderID,
		BusinessName:    order.BusinessName,
		BusinessPlaceID: order.BusinessPlaceID,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		CustomerPhone:   order.CustomerPhone,
		ReviewCount:     order.ReviewCount,
		TotalPrice:      formatEuro(order.TotalPrice),
		Reviews:         reviews,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatEuro(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
