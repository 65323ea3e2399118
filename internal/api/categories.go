package api

import (
	"fmt"
	"net/http"
)

// Category represents a menu category
type Category struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	IsActive    bool   `json:"isActive"`
	SortOrder   int    `json:"sortOrder"`
}

// CategoryInput is the writable portion of a category
type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	IsActive    bool   `json:"isActive"`
	SortOrder   int    `json:"sortOrder"`
}

// ListCategories returns all categories
func (c *Client) ListCategories() ([]Category, error) {
	var resp struct {
		Data []Category `json:"data"`
	}
	if err := c.doJSON(http.MethodGet, "/categories", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetCategory returns a single category by ID
func (c *Client) GetCategory(id string) (*Category, error) {
	var resp struct {
		Data Category `json:"data"`
	}
	if err := c.doJSON(http.MethodGet, fmt.Sprintf("/categories/%s", id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// CreateCategory creates a new category
func (c *Client) CreateCategory(input CategoryInput) (*Category, error) {
	var resp struct {
		Data Category `json:"data"`
	}
	if err := c.doJSON(http.MethodPost, "/categories", nil, input, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// UpdateCategory updates an existing category
func (c *Client) UpdateCategory(id string, input CategoryInput) (*Category, error) {
	var resp struct {
		Data Category `json:"data"`
	}
	if err := c.doJSON(http.MethodPut, fmt.Sprintf("/categories/%s", id), nil, input, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// DeleteCategory deletes a category by ID. Whether menu items cascade is the
// server's call.
func (c *Client) DeleteCategory(id string) error {
	return c.doJSON(http.MethodDelete, fmt.Sprintf("/categories/%s", id), nil, nil, nil)
}
