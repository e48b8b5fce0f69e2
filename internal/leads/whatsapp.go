package leads

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sneakerscr/storefront-backend/pkg/db/models"
	"github.com/sneakerscr/storefront-backend/pkg/enums"
)

// BuildWhatsAppLink renders the prefilled wa.me deep link that hands the
// lead to the seller chat. The message body mirrors the storefront's
// notification format.
func BuildWhatsAppLink(number string, lead *models.Lead) string {
	sku := "N/A"
	if lead.SKU != nil && strings.TrimSpace(*lead.SKU) != "" {
		sku = *lead.SKU
	}
	size := lead.Size
	if strings.TrimSpace(size) == "" {
		size = "N/A"
	}

	var b strings.Builder
	b.WriteString("Hola 👋 te escribo de SneakersCR\n\n")
	b.WriteString("Me interesa:\n")
	fmt.Fprintf(&b, "Producto: %s\n", lead.ProductName)
	fmt.Fprintf(&b, "SKU: %s\n", sku)
	fmt.Fprintf(&b, "Precio: $%s\n", lead.Price.StringFixed(2))
	fmt.Fprintf(&b, "Talla: %s\n", size)
	fmt.Fprintf(&b, "\n📦 Lead ID: #%s\n", lead.LeadRef)
	if lead.Status == enums.LeadStatusShippingAccepted {
		b.WriteString("🚚 Envío gratis aceptado ✓\n")
	} else {
		b.WriteString("ℹ️ Sin registro de envío gratis\n")
	}
	b.WriteString("\n¿Confirmas disponibilidad?")

	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(b.String()))
}
