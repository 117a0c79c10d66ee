// Package gemini implements the receipt analyzer on the Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/patrickhernande1993/novo-lar/internal/core"
	"github.com/patrickhernande1993/novo-lar/internal/receipt"
)

const DefaultModel = "gemini-2.5-flash"

// Extraction instruction sent along with the document. The model is
// steered towards the canonical monthly-installment description.
const extractionPrompt = "Analise este documento (boleto ou comprovante). " +
	"Extraia o valor total, a data de vencimento/pagamento. " +
	"IMPORTANTE: Se parecer uma conta mensal (aluguel, condominio, luz), " +
	"a descrição DEVE ser estritamente no formato 'Parcela Mensal MM/AAAA' " +
	"correspondente ao mês de referência. Se for pago, marque isPaid como true. " +
	"Retorne JSON."

type Client struct {
	client *genai.Client
	model  string
}

// New creates a Gemini-backed analyzer. The model name falls back to
// DefaultModel when empty.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("missing Gemini API key")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// Analyze sends the encoded receipt for structured extraction. Any
// transport, auth or schema failure is returned as-is; no retries.
func (c *Client) Analyze(ctx context.Context, att receipt.Attachment) (core.Extraction, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(att.Data, att.MediaType),
			genai.NewPartFromText(extractionPrompt),
		}, genai.RoleUser),
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"amount":      {Type: genai.TypeNumber, Description: "Valor total do documento"},
				"date":        {Type: genai.TypeString, Description: "Data no formato YYYY-MM-DD"},
				"description": {Type: genai.TypeString, Description: "Descrição sugerida, preferencialmente 'Parcela Mensal MM/AAAA'"},
				"isPaid":      {Type: genai.TypeBoolean, Description: "True se for um comprovante de pagamento, False se for um boleto a pagar"},
			},
			Required: []string{"amount", "date", "description"},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return core.Extraction{}, fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return core.Extraction{}, errors.New("empty analyzer response")
	}

	ext, err := parseExtraction([]byte(text))
	if err != nil {
		return core.Extraction{}, err
	}

	slog.InfoContext(ctx, "Receipt analyzed",
		"model", c.model,
		"amount_cents", ext.Amount.Cents,
		"due_date", ext.DueDate.String(),
		"status", string(ext.Status))

	return ext, nil
}

// parseExtraction maps the model's JSON payload onto the domain shape,
// turning isPaid into a Status and date into a DueDate.
func parseExtraction(payload []byte) (core.Extraction, error) {
	var raw struct {
		Amount      json.Number `json:"amount"`
		Date        string      `json:"date"`
		Description string      `json:"description"`
		IsPaid      bool        `json:"isPaid"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return core.Extraction{}, fmt.Errorf("decode analyzer response: %w", err)
	}

	amount, err := core.ParseDecimal(raw.Amount.String())
	if err != nil {
		return core.Extraction{}, fmt.Errorf("analyzer amount: %w", err)
	}
	dueDate, err := core.ParseDate(raw.Date)
	if err != nil {
		return core.Extraction{}, fmt.Errorf("analyzer date: %w", err)
	}
	if raw.Description == "" {
		return core.Extraction{}, errors.New("analyzer returned no description")
	}

	status := core.StatusPending
	if raw.IsPaid {
		status = core.StatusPaid
	}

	return core.Extraction{
		Amount:      amount,
		DueDate:     dueDate,
		Description: raw.Description,
		Status:      status,
	}, nil
}
