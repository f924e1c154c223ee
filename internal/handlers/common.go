package handlers

import "github.com/YannisFouzi/blind-test-sub001/internal/models"

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// Type aliases so swag can resolve models in annotations.
type Universe = models.Universe
type Work = models.Work
type Song = models.Song
