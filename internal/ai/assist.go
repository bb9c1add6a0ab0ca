package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/xelth-com/scanordergo/internal/models"
	"github.com/xelth-com/scanordergo/internal/utils"
)

// Only a bounded prefix of the file is sent; enough rows for the model
// to learn the layout without shipping the whole catalog.
const maxPromptChars = 3000

// Assist is the optional AI-assisted parser. Nothing in the core
// pipeline depends on it; every method degrades to an empty result on
// failure so callers fall through to their normal "nothing found" path.
type Assist struct {
	client *GeminiClient
}

// NewAssist creates the assist service, or an error when no API key is
// configured.
func NewAssist(ctx context.Context, apiKey, model string) (*Assist, error) {
	client, err := NewGeminiClient(ctx, apiKey, model)
	if err != nil {
		return nil, err
	}
	return &Assist{client: client}, nil
}

// Close releases the underlying client.
func (a *Assist) Close() {
	a.client.Close()
}

type assistProduct struct {
	EAN         string  `json:"ean"`
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Brand       string  `json:"brand"`
}

// ParsePriceList asks the model to extract products from raw text the
// deterministic parser could not handle. Any failure (network, quota,
// malformed response) yields an empty slice, never an error.
func (a *Assist) ParsePriceList(ctx context.Context, raw string) []models.Product {
	if len(raw) > maxPromptChars {
		raw = raw[:maxPromptChars]
	}

	text, err := a.client.GenerateContent(ctx, fmt.Sprintf(priceListPrompt, raw))
	if err != nil {
		log.Printf("⚠️ AI price list parse failed: %v", err)
		return nil
	}

	var payload struct {
		Products []assistProduct `json:"products"`
	}
	if err := json.Unmarshal([]byte(utils.SanitizeJSON(text)), &payload); err != nil {
		log.Printf("⚠️ AI returned unparseable JSON: %v", err)
		return nil
	}

	var products []models.Product
	for _, p := range payload.Products {
		if p.Code == "" {
			continue
		}
		ean := p.EAN
		if ean == "" {
			ean = p.Code
		}
		description := p.Description
		if description == "" {
			description = p.Brand + " - Art. " + p.Code
		}
		products = append(products, models.Product{
			EAN:         ean,
			Code:        p.Code,
			Description: description,
			Brand:       p.Brand,
			Price:       p.Price,
			Unit:        models.UnitPiece,
			MinQty:      1,
		})
	}
	return products
}

// IdentifyProduct guesses what an unknown scanned code refers to. On
// any failure it returns the standard unknown-item placeholder.
func (a *Assist) IdentifyProduct(ctx context.Context, code string) models.Product {
	text, err := a.client.GenerateContent(ctx, fmt.Sprintf(identifyProductPrompt, code))
	if err != nil {
		log.Printf("⚠️ AI identify failed for %q: %v", code, err)
		return models.UnknownProduct(code)
	}

	var guess struct {
		Description   string  `json:"description"`
		Brand         string  `json:"brand"`
		PriceEstimate float64 `json:"priceEstimate"`
	}
	if err := json.Unmarshal([]byte(utils.SanitizeJSON(text)), &guess); err != nil {
		return models.UnknownProduct(code)
	}

	p := models.UnknownProduct(code)
	if guess.Description != "" {
		p.Description = guess.Description
	}
	if guess.Brand != "" {
		p.Brand = guess.Brand
	}
	p.Price = guess.PriceEstimate
	return p
}
