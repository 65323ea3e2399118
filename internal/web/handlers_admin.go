package web

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/silverstar-dev/silverstar/internal/api"
	"github.com/silverstar-dev/silverstar/internal/session"
	"github.com/silverstar-dev/silverstar/internal/tokenstore"
)

// maxImageSizeBytes caps menu image uploads at 5MB, same as the admin SPA
// this back-office replaces.
const maxImageSizeBytes = 5 * 1024 * 1024

// sessionClient builds an API client carrying this request's bearer token.
func (s *Server) sessionClient(c *gin.Context) *api.Client {
	cookie, _ := c.Cookie(sessionCookie)
	return s.apiClient(cookie)
}

// formErrorMessage flattens a binding failure into one user-facing line.
func formErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0]
		switch field.Tag() {
		case "required":
			return "Please fill in all required fields"
		case "email":
			return "Please enter a valid email address"
		case "min":
			return "New password must be at least 6 characters long"
		case "eqfield":
			return "New passwords do not match"
		case "menuslug":
			return "Slug may only contain lowercase letters, digits and hyphens"
		}
	}
	return "Please check the submitted values"
}

// --- Login / logout ---

func (s *Server) showLogin(c *gin.Context) {
	sess, err := s.resolveSession(c)
	if err == nil && sess.State() == session.Authenticated {
		c.Redirect(http.StatusFound, roleHome(sess.User().Role))
		return
	}

	c.HTML(http.StatusOK, "login.html", gin.H{"Email": ""})
}

func (s *Server) handleLogin(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{
			"Error": formErrorMessage(err),
			"Email": c.PostForm("email"),
		})
		return
	}

	tokens := tokenstore.NewMemory()
	client := api.New(s.config.API.BaseURL, tokens, s.logger)
	sess := session.New(client, tokens, s.logger)

	user, err := sess.Login(form.Email, form.Password)
	if err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Error": err.Error(),
			"Email": form.Email,
		})
		return
	}

	token, _, err := tokens.Get()
	if err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"Error": "Something went wrong",
			"Email": form.Email,
		})
		return
	}

	c.SetCookie(sessionCookie, token, 0, "/", "", false, true)
	c.Redirect(http.StatusFound, roleHome(user.Role))
}

func (s *Server) handleLogout(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, loginPath)
}

// --- Dashboard ---

func (s *Server) showDashboard(c *gin.Context) {
	sess, _ := GetSession(c)
	client := s.sessionClient(c)

	categories, catErr := client.ListCategories()
	items, itErr := client.ListMenuItems(api.MenuFilter{})

	data := gin.H{"User": sess.User()}
	if catErr == nil {
		data["CategoryCount"] = len(categories)
	}
	if itErr == nil {
		data["ItemCount"] = len(items)
	}

	c.HTML(http.StatusOK, "dashboard.html", data)
}

// --- Categories ---

func (s *Server) renderCategories(c *gin.Context, status int, errMsg string) {
	sess, _ := GetSession(c)
	client := s.sessionClient(c)

	categories, err := client.ListCategories()
	if err != nil {
		status = http.StatusBadGateway
		errMsg = err.Error()
	}

	c.HTML(status, "categories.html", gin.H{
		"User":       sess.User(),
		"Categories": categories,
		"Error":      errMsg,
	})
}

func (s *Server) showCategories(c *gin.Context) {
	s.renderCategories(c, http.StatusOK, "")
}

func categoryInputFromForm(form categoryForm) api.CategoryInput {
	return api.CategoryInput{
		Name:        form.Name,
		Slug:        form.Slug,
		Description: form.Description,
		Icon:        form.Icon,
		Color:       form.Color,
		IsActive:    form.IsActive,
		SortOrder:   form.SortOrder,
	}
}

func (s *Server) handleCategoryCreate(c *gin.Context) {
	var form categoryForm
	if err := c.ShouldBind(&form); err != nil {
		s.renderCategories(c, http.StatusBadRequest, formErrorMessage(err))
		return
	}

	if _, err := s.sessionClient(c).CreateCategory(categoryInputFromForm(form)); err != nil {
		s.renderCategories(c, http.StatusBadGateway, err.Error())
		return
	}

	c.Redirect(http.StatusFound, "/admin/categories")
}

func (s *Server) handleCategoryUpdate(c *gin.Context) {
	var form categoryForm
	if err := c.ShouldBind(&form); err != nil {
		s.renderCategories(c, http.StatusBadRequest, formErrorMessage(err))
		return
	}

	if _, err := s.sessionClient(c).UpdateCategory(c.Param("id"), categoryInputFromForm(form)); err != nil {
		s.renderCategories(c, http.StatusBadGateway, err.Error())
		return
	}

	c.Redirect(http.StatusFound, "/admin/categories")
}

func (s *Server) handleCategoryDelete(c *gin.Context) {
	if err := s.sessionClient(c).DeleteCategory(c.Param("id")); err != nil {
		s.renderCategories(c, http.StatusBadGateway, err.Error())
		return
	}

	c.Redirect(http.StatusFound, "/admin/categories")
}

// --- Menu items ---

func (s *Server) renderMenuItems(c *gin.Context, status int, errMsg string) {
	sess, _ := GetSession(c)
	client := s.sessionClient(c)

	items, itErr := client.ListMenuItems(api.MenuFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	categories, catErr := client.ListCategories()
	if itErr != nil || catErr != nil {
		err := itErr
		if err == nil {
			err = catErr
		}
		status = http.StatusBadGateway
		errMsg = err.Error()
	}

	c.HTML(status, "menu_items.html", gin.H{
		"User":       sess.User(),
		"Items":      items,
		"Categories": categories,
		"Error":      errMsg,
	})
}

func (s *Server) showMenuItems(c *gin.Context) {
	s.renderMenuItems(c, http.StatusOK, "")
}

func menuItemInputFromForm(form menuItemForm) api.MenuItemInput {
	return api.MenuItemInput{
		Name:     form.Name,
		Category: form.Category,
		Price:    form.Price,
		Sizes: api.Sizes{
			Quarter:  form.SizeQuarter,
			Half:     form.SizeHalf,
			Full:     form.SizeFull,
			Normal:   form.SizeNormal,
			Schezwan: form.SizeSchezwan,
		},
		IsAvailable:  form.IsAvailable,
		IsVegetarian: form.IsVegetarian,
		SortOrder:    form.SortOrder,
	}
}

// menuItemUpload pulls the optional image out of the multipart submission.
// The file travels to the API as-is; only the size cap is enforced here.
func menuItemUpload(c *gin.Context) (*multipart.FileHeader, error) {
	header, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	if header.Size > maxImageSizeBytes {
		return nil, errors.New("image exceeds the 5MB limit")
	}
	return header, nil
}

func (s *Server) buildMenuItemForm(c *gin.Context, input api.MenuItemInput) (*api.Multipart, error) {
	header, err := menuItemUpload(c)
	if err != nil {
		return nil, err
	}

	if header == nil {
		return api.NewMenuItemForm(input, nil, "")
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return api.NewMenuItemForm(input, file, header.Filename)
}

func (s *Server) handleMenuItemCreate(c *gin.Context) {
	var form menuItemForm
	if err := c.ShouldBind(&form); err != nil {
		s.renderMenuItems(c, http.StatusBadRequest, formErrorMessage(err))
		return
	}

	apiForm, err := s.buildMenuItemForm(c, menuItemInputFromForm(form))
	if err != nil {
		s.renderMenuItems(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := s.sessionClient(c).CreateMenuItem(apiForm); err != nil {
		s.renderMenuItems(c, http.StatusBadGateway, err.Error())
		return
	}

	c.Redirect(http.StatusFound, "/admin/menu-items")
}

func (s *Server) handleMenuItemUpdate(c *gin.Context) {
	var form menuItemForm
	if err := c.ShouldBind(&form); err != nil {
		s.renderMenuItems(c, http.StatusBadRequest, formErrorMessage(err))
		return
	}

	apiForm, err := s.buildMenuItemForm(c, menuItemInputFromForm(form))
	if err != nil {
		s.renderMenuItems(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := s.sessionClient(c).UpdateMenuItem(c.Param("id"), apiForm); err != nil {
		s.renderMenuItems(c, http.StatusBadGateway, err.Error())
		return
	}

	c.Redirect(http.StatusFound, "/admin/menu-items")
}

func (s *Server) handleMenuItemDelete(c *gin.Context) {
	if err := s.sessionClient(c).DeleteMenuItem(c.Param("id")); err != nil {
		s.renderMenuItems(c, http.StatusBadGateway, err.Error())
		return
	}

	c.Redirect(http.StatusFound, "/admin/menu-items")
}

// --- Restaurants (super admin) ---

func (s *Server) renderRestaurants(c *gin.Context, status int, errMsg string) {
	sess, _ := GetSession(c)

	restaurants, err := s.sessionClient(c).ListRestaurants()
	if err != nil {
		status = http.StatusBadGateway
		errMsg = err.Error()
	}

	c.HTML(status, "restaurants.html", gin.H{
		"User":        sess.User(),
		"Restaurants": restaurants,
		"Error":       errMsg,
	})
}

func (s *Server) showRestaurants(c *gin.Context) {
	s.renderRestaurants(c, http.StatusOK, "")
}

func restaurantInputFromForm(form restaurantForm) api.RestaurantInput {
	return api.RestaurantInput{
		RestaurantName: form.RestaurantName,
		LogoImage:      form.LogoImage,
		AdminID:        form.AdminID,
		LocationLink:   form.LocationLink,
		WebsiteLink:    form.WebsiteLink,
		InstagramLink:  form.InstagramLink,
		FacebookLink:   form.FacebookLink,
		WhatsappNumber: form.WhatsappNumber,
		PhoneNumber:    form.PhoneNumber,
		ValidityOfPlan: form.ValidityOfPlan,
		PlanID:         form.PlanID,
	}
}

func (s *Server) handleRestaurantCreate(c *gin.Context) {
	var form restaurantForm
	if err := c.ShouldBind(&form); err != nil {
		s.renderRestaurants(c, http.StatusBadRequest, formErrorMessage(err))
		return
	}

	if _, err := s.sessionClient(c).CreateRestaurant(restaurantInputFromForm(form)); err != nil {
		s.renderRestaurants(c, http.StatusBadGateway, err.Error())
		return
	}

	c.Redirect(http.StatusFound, "/admin/restaurants")
}

func (s *Server) handleRestaurantUpdate(c *gin.Context) {
	var form restaurantForm
	if err := c.ShouldBind(&form); err != nil {
		s.renderRestaurants(c, http.StatusBadRequest, formErrorMessage(err))
		return
	}

	if _, err := s.sessionClient(c).UpdateRestaurant(c.Param("id"), restaurantInputFromForm(form)); err != nil {
		s.renderRestaurants(c, http.StatusBadGateway, err.Error())
		return
	}

	c.Redirect(http.StatusFound, "/admin/restaurants")
}

func (s *Server) handleRestaurantDelete(c *gin.Context) {
	if err := s.sessionClient(c).DeleteRestaurant(c.Param("id")); err != nil {
		s.renderRestaurants(c, http.StatusBadGateway, err.Error())
		return
	}

	c.Redirect(http.StatusFound, "/admin/restaurants")
}

// --- Settings ---

func (s *Server) showSettings(c *gin.Context) {
	sess, _ := GetSession(c)
	c.HTML(http.StatusOK, "settings.html", gin.H{
		"User": sess.User(),
	})
}

func (s *Server) handleChangePassword(c *gin.Context) {
	sess, _ := GetSession(c)

	var form passwordForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "settings.html", gin.H{
			"User":  sess.User(),
			"Error": formErrorMessage(err),
		})
		return
	}

	// A wrong current password comes back as the server's own message
	if err := sess.ChangePassword(form.CurrentPassword, form.NewPassword); err != nil {
		c.HTML(http.StatusBadRequest, "settings.html", gin.H{
			"User":  sess.User(),
			"Error": err.Error(),
		})
		return
	}

	c.HTML(http.StatusOK, "settings.html", gin.H{
		"User":   sess.User(),
		"Notice": "Password changed successfully",
	})
}
