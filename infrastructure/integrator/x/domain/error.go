package xdomain

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrRateLimited = errors.New("limite de requisições da API do X atingido")

// Problem segue o formato de erro (RFC 7807) da API v2.
type Problem struct {
	Title        string `json:"title"`
	Detail       string `json:"detail"`
	Type         string `json:"type"`
	Status       int    `json:"status,omitempty"`
	ResourceID   string `json:"resource_id,omitempty"`
	ResourceType string `json:"resource_type,omitempty"`
}

type APIError struct {
	StatusCode int
	Problem    Problem
}

func (e *APIError) Error() string {
	if e.Problem.Detail != "" {
		return fmt.Sprintf("API do X respondeu %d: %s", e.StatusCode, e.Problem.Detail)
	}
	return fmt.Sprintf("API do X respondeu %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}
	return nil
}

// IsRetryable indica falhas transitórias do lado do servidor.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
