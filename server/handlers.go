package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ManojS35/data-scribe-agent/assistant"
	"github.com/ManojS35/data-scribe-agent/catalog"
	"github.com/ManojS35/data-scribe-agent/classifier"
	"github.com/ManojS35/data-scribe-agent/insight"
	"github.com/ManojS35/data-scribe-agent/response"
)

// GenericError is the only failure text clients ever see.
const GenericError = "There was an error processing your query. Please try again."

// QueryRequest is the body of POST /api/v1/query.
type QueryRequest struct {
	Query string `json:"query"`
}

// Message is one chat transcript entry.
type Message struct {
	ID             string                   `json:"id"`
	Role           string                   `json:"role"`
	Content        string                   `json:"content"`
	Timestamp      time.Time                `json:"timestamp"`
	GeneratedQuery *response.GeneratedQuery `json:"generatedQuery,omitempty"`
	Visualizations []response.Visualization `json:"visualizations,omitempty"`
	TableData      *response.Table          `json:"tableData,omitempty"`
	Insights       *insight.Insights        `json:"insights,omitempty"`
	Classification *classifier.Decision     `json:"classification,omitempty"`
}

const roleAssistant = "assistant"

func (s *Server) message(content string) Message {
	return Message{
		ID:        s.newID(),
		Role:      roleAssistant,
		Content:   content,
		Timestamp: s.now(),
	}
}

func (s *Server) query(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be JSON like {\"query\": \"...\"}"})
		return
	}

	ans, err := s.assistant.Answer(c.Request.Context(), req.Query)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusServiceUnavailable
		}
		if !errors.Is(err, assistant.ErrProcessingFailed) && status == http.StatusInternalServerError {
			s.log.WithError(err).Error("unexpected assistant error")
		}
		c.JSON(status, gin.H{"error": GenericError})
		return
	}

	b := ans.Bundle
	msg := s.message(b.Response)
	msg.GeneratedQuery = &b.GeneratedQuery
	msg.Visualizations = b.Visualizations
	msg.TableData = b.TableData
	msg.Insights = b.Insights
	msg.Classification = &ans.Decision
	c.JSON(http.StatusOK, msg)
}

func (s *Server) categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": s.catalog.Categories()})
}

func (s *Server) insights(c *gin.Context) {
	in, _ := s.catalog.Insights(catalog.GeneralOverview)
	c.JSON(http.StatusOK, in)
}

func (s *Server) welcome(c *gin.Context) {
	c.JSON(http.StatusOK, s.message(assistant.Welcome))
}
