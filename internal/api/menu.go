package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// Sizes holds per-size prices. Zero values mean the size is not offered.
type Sizes struct {
	Quarter  float64 `json:"quarter,omitempty"`
	Half     float64 `json:"half,omitempty"`
	Full     float64 `json:"full,omitempty"`
	Normal   float64 `json:"normal,omitempty"`
	Schezwan float64 `json:"schezwan,omitempty"`
}

// Image is an uploaded menu item image
type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// CategoryRef is the embedded category on a menu item
type CategoryRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// MenuItem represents a dish on the menu
type MenuItem struct {
	ID              string      `json:"_id"`
	Name            string      `json:"name"`
	Description     string      `json:"description,omitempty"`
	Category        CategoryRef `json:"category"`
	Price           float64     `json:"price"`
	Sizes           *Sizes      `json:"sizes,omitempty"`
	Image           *Image      `json:"image,omitempty"`
	IsAvailable     bool        `json:"isAvailable"`
	IsVegetarian    bool        `json:"isVegetarian"`
	IsSpicy         bool        `json:"isSpicy"`
	PreparationTime int         `json:"preparationTime"`
	SortOrder       int         `json:"sortOrder"`
}

// MenuFilter narrows ListMenuItems. Zero fields are omitted from the query.
type MenuFilter struct {
	Category    string
	Search      string
	IsAvailable *bool
}

// MenuItemInput is the writable portion of a menu item. Create and update
// submit it as a multipart form so an image file can ride along.
type MenuItemInput struct {
	Name         string
	Category     string // category ID
	Price        float64
	Sizes        Sizes
	IsAvailable  bool
	IsVegetarian bool
	SortOrder    int
}

// NewMenuItemForm builds the multipart form the menu endpoints expect:
// scalar fields as strings, sizes as a JSON string, plus an optional image
// file. Pass a nil image to omit it.
func NewMenuItemForm(input MenuItemInput, image io.Reader, imageName string) (*Multipart, error) {
	sizesJSON, err := json.Marshal(input.Sizes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sizes: %w", err)
	}

	form := NewMultipart().
		Field("name", input.Name).
		Field("category", input.Category).
		Field("price", strconv.FormatFloat(input.Price, 'f', -1, 64)).
		Field("sizes", string(sizesJSON)).
		Field("isAvailable", strconv.FormatBool(input.IsAvailable)).
		Field("isVegetarian", strconv.FormatBool(input.IsVegetarian)).
		Field("sortOrder", strconv.Itoa(input.SortOrder))

	if image != nil {
		form.File("image", imageName, image)
	}

	return form, nil
}

// ListMenuItems returns menu items matching the filter
func (c *Client) ListMenuItems(filter MenuFilter) ([]MenuItem, error) {
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.IsAvailable != nil {
		query.Set("isAvailable", strconv.FormatBool(*filter.IsAvailable))
	}

	var resp struct {
		Data []MenuItem `json:"data"`
	}
	if err := c.doJSON(http.MethodGet, "/menu", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// MenuItemsByCategory returns the items of one category
func (c *Client) MenuItemsByCategory(categoryID string) ([]MenuItem, error) {
	var resp struct {
		Data []MenuItem `json:"data"`
	}
	if err := c.doJSON(http.MethodGet, fmt.Sprintf("/menu/category/%s", categoryID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetMenuItem returns a single menu item by ID
func (c *Client) GetMenuItem(id string) (*MenuItem, error) {
	var resp struct {
		Data MenuItem `json:"data"`
	}
	if err := c.doJSON(http.MethodGet, fmt.Sprintf("/menu/%s", id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// CreateMenuItem creates a menu item from a pre-built multipart form
func (c *Client) CreateMenuItem(form *Multipart) (*MenuItem, error) {
	var resp struct {
		Data MenuItem `json:"data"`
	}
	if err := c.doMultipart(http.MethodPost, "/menu", form, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// UpdateMenuItem updates a menu item from a pre-built multipart form
func (c *Client) UpdateMenuItem(id string, form *Multipart) (*MenuItem, error) {
	var resp struct {
		Data MenuItem `json:"data"`
	}
	if err := c.doMultipart(http.MethodPut, fmt.Sprintf("/menu/%s", id), form, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// DeleteMenuItem deletes a menu item by ID
func (c *Client) DeleteMenuItem(id string) error {
	return c.doJSON(http.MethodDelete, fmt.Sprintf("/menu/%s", id), nil, nil, nil)
}
