// Package notify delivers new-order notifications to a Discord-style
// incoming webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/texan-rex/diner-service/internal/models"
)

// embedColor is the red used for order embeds.
const embedColor = 0x8B0000

// Discord posts structured order messages to a configured webhook URL.
// An empty URL disables delivery entirely.
type Discord struct {
	webhookURL string
	client     *http.Client
}

// NewDiscord creates a notifier. The HTTP client timeout bounds how long
// a slow webhook can hold up the submitting request.
func NewDiscord(webhookURL string) *Discord {
	return &Discord{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 5 * time.Second},
	}
}

type webhookPayload struct {
	Username string  `json:"username"`
	Embeds   []embed `json:"embeds"`
}

type embed struct {
	Title  string       `json:"title"`
	Color  int          `json:"color"`
	Fields []embedField `json:"fields"`
	Footer embedFooter  `json:"footer"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type embedFooter struct {
	Text string `json:"text"`
}

// OrderCreated posts the new-order message. Returns nil without sending
// when no webhook URL is configured.
func (d *Discord) OrderCreated(ctx context.Context, order *models.ClientOrder) error {
	if d.webhookURL == "" {
		log.Println("no order webhook configured, skipping notification")
		return nil
	}

	payload := webhookPayload{
		Username: "Texan Rex's Diner",
		Embeds:   []embed{buildOrderEmbed(order)},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}

func buildOrderEmbed(order *models.ClientOrder) embed {
	fields := []embedField{
		{Name: "Commande N°", Value: fmt.Sprintf("**%s**", order.OrderNumber), Inline: true},
		{Name: "Client", Value: fmt.Sprintf("**%s**\n%s", order.CustomerName, order.CustomerPhone), Inline: true},
		{Name: "Type", Value: orderTypeLabel(order.OrderType), Inline: true},
		{Name: "Articles commandés", Value: formatItems(order.Items)},
		{Name: "TOTAL", Value: fmt.Sprintf("**%.0f$**", order.TotalAmount), Inline: true},
		{Name: "Heure", Value: time.Now().Format("02/01/2006 15:04"), Inline: true},
	}

	if order.Notes != "" {
		fields = append(fields, embedField{
			Name:  "Notes spéciales",
			Value: fmt.Sprintf("*%s*", order.Notes),
		})
	}

	return embed{
		Title:  "NOUVELLE COMMANDE - TEXAN REX'S DINER",
		Color:  embedColor,
		Fields: fields,
		Footer: embedFooter{Text: "Préparez cette commande !"},
	}
}

func orderTypeLabel(t models.OrderType) string {
	switch t {
	case models.OrderTypeDelivery:
		return "Livraison"
	case models.OrderTypeDineIn:
		return "Sur place"
	default:
		return "À emporter"
	}
}

func formatItems(items []models.ClientOrderItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		line := fmt.Sprintf("**%s** x%d - %.0f$", item.ProductName, item.Quantity, item.ItemTotal)
		if len(item.Ingredients) > 0 {
			names := make([]string, 0, len(item.Ingredients))
			for _, ing := range item.Ingredients {
				names = append(names, ing.Name)
			}
			line += fmt.Sprintf("\n  + *%s*", strings.Join(names, ", "))
		}
		if item.Notes != "" {
			line += fmt.Sprintf("\n  Note: *%s*", item.Notes)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n\n")
}
