package api

import (
	"fmt"
	"net/http"
)

// Restaurant represents a restaurant managed by a super admin
type Restaurant struct {
	ID             string `json:"_id"`
	RestaurantName string `json:"restaurantName"`
	LogoImage      string `json:"logoImage,omitempty"`
	AdminID        string `json:"adminId,omitempty"`
	LocationLink   string `json:"locationLink,omitempty"`
	WebsiteLink    string `json:"websiteLink,omitempty"`
	InstagramLink  string `json:"instagramLink,omitempty"`
	FacebookLink   string `json:"facebookLink,omitempty"`
	WhatsappNumber string `json:"whatsappNumber,omitempty"`
	PhoneNumber    string `json:"phoneNumber,omitempty"`
	ValidityOfPlan string `json:"validityOfPlan,omitempty"`
	PlanID         string `json:"planId,omitempty"`
}

// RestaurantInput is the writable portion of a restaurant
type RestaurantInput struct {
	RestaurantName string `json:"restaurantName"`
	LogoImage      string `json:"logoImage,omitempty"`
	AdminID        string `json:"adminId,omitempty"`
	LocationLink   string `json:"locationLink,omitempty"`
	WebsiteLink    string `json:"websiteLink,omitempty"`
	InstagramLink  string `json:"instagramLink,omitempty"`
	FacebookLink   string `json:"facebookLink,omitempty"`
	WhatsappNumber string `json:"whatsappNumber,omitempty"`
	PhoneNumber    string `json:"phoneNumber,omitempty"`
	ValidityOfPlan string `json:"validityOfPlan,omitempty"`
	PlanID         string `json:"planId,omitempty"`
}

// ListRestaurants returns all restaurants
func (c *Client) ListRestaurants() ([]Restaurant, error) {
	var resp struct {
		Data []Restaurant `json:"data"`
	}
	if err := c.doJSON(http.MethodGet, "/restaurants", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateRestaurant creates a new restaurant
func (c *Client) CreateRestaurant(input RestaurantInput) (*Restaurant, error) {
	var resp struct {
		Data Restaurant `json:"data"`
	}
	if err := c.doJSON(http.MethodPost, "/restaurants", nil, input, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// UpdateRestaurant updates an existing restaurant
func (c *Client) UpdateRestaurant(id string, input RestaurantInput) (*Restaurant, error) {
	var resp struct {
		Data Restaurant `json:"data"`
	}
	if err := c.doJSON(http.MethodPut, fmt.Sprintf("/restaurants/%s", id), nil, input, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// DeleteRestaurant deletes a restaurant by ID
func (c *Client) DeleteRestaurant(id string) error {
	return c.doJSON(http.MethodDelete, fmt.Sprintf("/restaurants/%s", id), nil, nil, nil)
}
