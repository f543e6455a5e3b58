package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strconv"

	"voltkart_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

// SendConfirmationEmail envoie la confirmation de commande, avec la facture PDF en pièce jointe si disponible
func SendConfirmationEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	if err := msg.From(envDefault("SMTP_FROM", "noreply@voltkart.in")); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("facture_voltkart.pdf", bytes.NewReader(pdfAttachment))
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande
func GenerateOrderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>₹%.2f</td>
				<td>₹%.2f</td>
			</tr>`, item.ProductName, item.Quantity, item.ProductPrice, item.ProductPrice*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Confirmation de votre commande %s</h2>
		<p>Bonjour %s,</p>
		<p>Merci pour votre commande. Voici le récapitulatif :</p>
		<table style="width: 100%%; border-collapse: collapse;" border="1" cellpadding="8">
			<tr>
				<th>Produit</th><th>Quantité</th><th>Prix</th><th>Sous-total</th>
			</tr>%s
		</table>
		<p style="font-size: 18px;"><strong>Total : ₹%.2f</strong></p>
		<p>Statut : %s</p>
		<p>Adresse de livraison : %s, %s, %s %s, %s</p>
	</div>
</body>
</html>`,
		order.OrderID,
		order.ShippingDetails.FullName,
		itemsHTML,
		order.TotalPrice,
		order.Status,
		order.ShippingDetails.AddressLine1,
		order.ShippingDetails.City,
		order.ShippingDetails.State,
		order.ShippingDetails.ZipCode,
		order.ShippingDetails.Country,
	)
}
