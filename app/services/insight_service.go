package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	openai "github.com/sashabaranov/go-openai"
	zlog "github.com/rs/zerolog/log"

	"QuickSales/app/models"
	"QuickSales/app/store"
)

// Products below this stock level are reported to the insight collaborator
const lowStockThreshold = 5

// InsightService asks an external language model for a short read on recent
// sales and inventory. It is strictly advisory: it reads a snapshot, never
// mutates the ledger, and any failure yields no insight rather than an
// error.
type InsightService struct {
	store  *store.Store
	client *openai.Client
	model  string
}

// NewInsightService creates the insight service. An empty API key leaves
// the collaborator disabled.
func NewInsightService(st *store.Store, apiKey, model string) *InsightService {
	s := &InsightService{store: st, model: model}
	if s.model == "" {
		s.model = "gpt-4o-mini"
	}
	if apiKey != "" {
		s.client = openai.NewClient(apiKey)
	}
	return s
}

type insightPayload struct {
	RecentOrders     []models.Order   `json:"recentOrders"`
	LowStockProducts []models.Product `json:"lowStockProducts"`
}

func buildInsightPayload(st *store.State) insightPayload {
	var payload insightPayload

	orders := append([]models.Order(nil), st.Orders...)
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	if len(orders) > 10 {
		orders = orders[:10]
	}
	payload.RecentOrders = orders

	for _, p := range st.Products {
		if p.Stock < lowStockThreshold {
			payload.LowStockProducts = append(payload.LowStockProducts, p)
		}
	}
	return payload
}

func parseInsight(raw string) (*models.SalesInsight, error) {
	var insight models.SalesInsight
	if err := json.Unmarshal([]byte(raw), &insight); err != nil {
		return nil, fmt.Errorf("malformed insight response: %w", err)
	}
	if insight.Summary == "" {
		return nil, fmt.Errorf("insight response has no summary")
	}
	return &insight, nil
}

// GetSalesInsight returns a summary and suggestions for the current sales
// situation, or nil when the collaborator is disabled or fails.
func (s *InsightService) GetSalesInsight(ctx context.Context) *models.SalesInsight {
	if s.client == nil {
		return nil
	}

	var payload insightPayload
	s.store.View(func(st *store.State) {
		payload = buildInsightPayload(st)
	})

	data, err := json.Marshal(payload)
	if err != nil {
		zlog.Warn().Err(err).Msg("could not serialize insight payload")
		return nil
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You are a retail analyst for a small workshop. " +
					"Given recent orders and low stock products as JSON, reply with a JSON object " +
					`{"summary": string, "suggestions": [string]} in the user's language. ` +
					"Keep the summary under three sentences and give at most five suggestions.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: string(data),
			},
		},
	})
	if err != nil {
		zlog.Warn().Err(err).Msg("insight request failed")
		return nil
	}
	if len(resp.Choices) == 0 {
		return nil
	}

	insight, err := parseInsight(resp.Choices[0].Message.Content)
	if err != nil {
		zlog.Warn().Err(err).Msg("insight response rejected")
		return nil
	}
	return insight
}
