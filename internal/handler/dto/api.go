// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/apihub/apihub/internal/model"
)

// FeedName is the fixed title of the public aggregation document.
// The value is part of the external contract consumed by downstream
// aggregators and must not be localized.
const FeedName = "聚合接口列表"

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents the request body for login.
// No length validation applies here: a non-matching pair simply fails
// authentication.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateEntryRequest represents the request body for adding an API entry.
type CreateEntryRequest struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url" validate:"required"`
}

// SuccessResponse is the body of mutating operations that return no data.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// TokenResponse carries the bearer token returned by login.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse exposes the identity fields of a user and nothing else;
// password and token never appear here.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// EntryResponse represents an API entry in list responses.
type EntryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedItem is a single name/url pair in the aggregation document.
type FeedItem struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// FeedResponse is the public aggregation document for one user's entries.
type FeedResponse struct {
	Name string     `json:"name"`
	Type string     `json:"type"`
	Data []FeedItem `json:"data"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:       user.ID,
		Username: user.Username,
	}
}

// ToEntryListResponse converts entry models to list response DTOs.
// An empty list serializes as [] rather than null.
func ToEntryListResponse(entries []*model.APIEntry) []EntryResponse {
	responses := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, EntryResponse{
			ID:        entry.ID,
			Name:      entry.Name,
			URL:       entry.URL,
			CreatedAt: entry.CreatedAt,
		})
	}
	return responses
}

// ToFeedResponse composes the aggregation document from a user's entries.
func ToFeedResponse(entries []*model.APIEntry) *FeedResponse {
	items := make([]FeedItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, FeedItem{
			Name: entry.Name,
			URL:  entry.URL,
		})
	}
	return &FeedResponse{
		Name: FeedName,
		Type: "list",
		Data: items,
	}
}
