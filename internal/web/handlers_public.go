package web

import (
	"net/http"
	"sort"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/silverstar-dev/silverstar/internal/api"
)

// menuSection is one category with its items, ready for rendering
type menuSection struct {
	Category api.Category
	Items    []api.MenuItem
}

// showMenu renders the public menu. Categories and items are fetched in
// parallel; the page waits for both before rendering.
func (s *Server) showMenu(c *gin.Context) {
	var (
		wg            sync.WaitGroup
		categories    []api.Category
		items         []api.MenuItem
		catErr, itErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		categories, catErr = s.public.ListCategories()
	}()
	go func() {
		defer wg.Done()
		items, itErr = s.public.ListMenuItems(api.MenuFilter{})
	}()
	wg.Wait()

	if catErr != nil || itErr != nil {
		err := catErr
		if err == nil {
			err = itErr
		}
		s.logger.Error().Err(err).Msg("Failed to fetch menu")
		c.HTML(http.StatusBadGateway, "error.html", gin.H{
			"Message": "Failed to fetch data",
		})
		return
	}

	itemsByCategory := make(map[string][]api.MenuItem)
	for _, item := range items {
		itemsByCategory[item.Category.ID] = append(itemsByCategory[item.Category.ID], item)
	}

	sections := make([]menuSection, 0, len(categories))
	for _, category := range categories {
		if !category.IsActive {
			continue
		}
		sections = append(sections, menuSection{
			Category: category,
			Items:    itemsByCategory[category.ID],
		})
	}

	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Category.SortOrder < sections[j].Category.SortOrder
	})
	for i := range sections {
		items := sections[i].Items
		sort.SliceStable(items, func(a, b int) bool {
			return items[a].SortOrder < items[b].SortOrder
		})
	}

	c.HTML(http.StatusOK, "menu.html", gin.H{
		"Sections": sections,
	})
}
