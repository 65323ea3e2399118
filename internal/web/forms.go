package web

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// loginForm is the admin login page submission
type loginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// categoryForm mirrors the writable category fields
type categoryForm struct {
	Name        string `form:"name" binding:"required"`
	Slug        string `form:"slug" binding:"required,menuslug"`
	Description string `form:"description"`
	Icon        string `form:"icon"`
	Color       string `form:"color"`
	IsActive    bool   `form:"isActive"`
	SortOrder   int    `form:"sortOrder"`
}

// menuItemForm mirrors the writable menu item fields; the image file rides
// along separately in the multipart request.
type menuItemForm struct {
	Name         string  `form:"name" binding:"required"`
	Category     string  `form:"category" binding:"required"`
	Price        float64 `form:"price" binding:"gte=0"`
	SizeQuarter  float64 `form:"sizeQuarter" binding:"gte=0"`
	SizeHalf     float64 `form:"sizeHalf" binding:"gte=0"`
	SizeFull     float64 `form:"sizeFull" binding:"gte=0"`
	SizeNormal   float64 `form:"sizeNormal" binding:"gte=0"`
	SizeSchezwan float64 `form:"sizeSchezwan" binding:"gte=0"`
	IsAvailable  bool    `form:"isAvailable"`
	IsVegetarian bool    `form:"isVegetarian"`
	SortOrder    int     `form:"sortOrder"`
}

// restaurantForm mirrors the writable restaurant fields
type restaurantForm struct {
	RestaurantName string `form:"restaurantName" binding:"required"`
	LogoImage      string `form:"logoImage"`
	AdminID        string `form:"adminId"`
	LocationLink   string `form:"locationLink"`
	WebsiteLink    string `form:"websiteLink"`
	InstagramLink  string `form:"instagramLink"`
	FacebookLink   string `form:"facebookLink"`
	WhatsappNumber string `form:"whatsappNumber"`
	PhoneNumber    string `form:"phoneNumber"`
	ValidityOfPlan string `form:"validityOfPlan"`
	PlanID         string `form:"planId"`
}

// passwordForm is the settings page password change
type passwordForm struct {
	CurrentPassword string `form:"currentPassword" binding:"required"`
	NewPassword     string `form:"newPassword" binding:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword" binding:"required,eqfield=NewPassword"`
}

// registerValidations adds custom rules to gin's validator engine.
func registerValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	// Category slugs end up in URLs: lowercase alphanumerics and hyphens
	return v.RegisterValidation("menuslug", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return false
		}
		for _, char := range value {
			if !((char >= 'a' && char <= 'z') ||
				(char >= '0' && char <= '9') ||
				char == '-') {
				return false
			}
		}
		return true
	})
}
