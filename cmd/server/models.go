package main

import (
	"github.com/liamcoop/erpassistant/intent"
	"github.com/liamcoop/erpassistant/internal/logger"
	"github.com/liamcoop/erpassistant/rules"
)

// API Request and Response Models with Swagger annotations

// TextRequest is the body of the message and classify endpoints
type TextRequest struct {
	Text string `json:"text" example:"show low stock items" binding:"required"`
} // @name TextRequest

// MessageResponse is one assistant reply
type MessageResponse struct {
	Intent       intent.Intent `json:"intent"`
	Message      string        `json:"message" example:"<strong>Low Stock Alert</strong><br>..."`
	Text         string        `json:"text" example:"Low Stock Alert\n..."`
	QuickReplies []string      `json:"quickReplies" example:"Reorder items,View all inventory"`
} // @name MessageResponse

// ConversationResponse is returned when a conversation is opened
type ConversationResponse struct {
	ID      string          `json:"id" example:"123e4567-e89b-12d3-a456-426614174000"`
	Welcome MessageResponse `json:"welcome"`
} // @name ConversationResponse

// ConversationsListResponse lists open conversation ids
type ConversationsListResponse struct {
	Conversations []string `json:"conversations"`
} // @name ConversationsListResponse

// RuleRequest is the body for creating or updating a cascade rule
type RuleRequest struct {
	ID         string `json:"id,omitempty" example:"intent.invoice"`
	Set        string `json:"set" example:"intent" binding:"required"`
	Name       string `json:"name" example:"invoice" binding:"required"`
	Expression string `json:"expression" example:"input.contains('invoice')" binding:"required"`
	Priority   int    `json:"priority" example:"55"`
	Outcome    string `json:"outcome" example:"order" binding:"required"`
	Active     *bool  `json:"active,omitempty" example:"true"`
} // @name RuleRequest

// rule builds the rule stored under id; rules are active unless stated otherwise
func (req RuleRequest) rule(id string) *rules.Rule {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return &rules.Rule{
		ID:         id,
		Set:        req.Set,
		Name:       req.Name,
		Expression: req.Expression,
		Priority:   req.Priority,
		Outcome:    req.Outcome,
		Active:     active,
	}
}

// RulesListResponse lists the active cascade rules in evaluation order
type RulesListResponse struct {
	Rules []*rules.Rule `json:"rules"`
} // @name RulesListResponse

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"conversation not found"`
	Details string `json:"details,omitempty"`
} // @name ErrorResponse

// HealthResponse represents the health check response
type HealthResponse struct {
	Status        string          `json:"status" example:"healthy"`
	Conversations int             `json:"conversations" example:"3"`
	Counters      logger.Counters `json:"counters"`
} // @name HealthResponse
