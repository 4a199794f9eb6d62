package api

import (
	"net/http"

	"storekit/commerce-api/httpx"
	"storekit/commerce-api/model"
	"storekit/commerce-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// productRow is the joined read shape combining a product with a
// snapshot of its category's id and name. The join is a LEFT JOIN so a
// product whose category was deleted still comes back, stale id and all.
type productRow struct {
	ID           string
	Name         string
	Description  string
	Price        float64
	Stock        int
	Images       model.StringSlice
	IsActive     bool
	CategoryID   string
	CategoryName string
}

func (a *API) productQuery() *gorm.DB {
	return a.DB.
		Table("products").
		Select("products.id, products.name, products.description, products.price, products.stock, products.images, products.is_active, products.category_id, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = products.category_id")
}

func productViewFromRow(r *productRow) productResponse {
	return productResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		Images:      r.Images,
		IsActive:    r.IsActive,
		Category: categoryRef{
			ID:   r.CategoryID,
			Name: r.CategoryName,
		},
	}
}

func productViewsFromRows(rows []productRow) []productResponse {
	out := make([]productResponse, 0, len(rows))
	for i := range rows {
		out = append(out, productViewFromRow(&rows[i]))
	}

	return out
}

// ProductFetchAll lists every product, active or not, with its
// denormalized category projection.
func (a *API) ProductFetchAll(c *gin.Context) error {
	var rows []productRow
	if err := a.productQuery().Scan(&rows).Error; err != nil {
		zap.L().Error("Failed to fetch products", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	httpx.OK(c, http.StatusOK, "Products fetched successfully", gin.H{
		"products": productViewsFromRows(rows),
	})
	return nil
}

func (a *API) ProductByID(c *gin.Context) error {
	id := c.Param("id")

	if err := validators.IDValidator(id); err != nil {
		return httpx.BadRequest("Invalid product ID")
	}

	var rows []productRow
	err := a.productQuery().Where("products.id = ?", id).Limit(1).Scan(&rows).Error
	if err != nil {
		zap.L().Error("Failed to fetch product", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	if len(rows) == 0 {
		return httpx.NotFound("Product not found")
	}

	httpx.OK(c, http.StatusOK, "Product fetched successfully", gin.H{
		"product": productViewFromRow(&rows[0]),
	})
	return nil
}

// ProductByCategory returns every product referencing the category.
// An empty result set is answered as not found rather than an empty
// list, matching the storefront's existing contract.
func (a *API) ProductByCategory(c *gin.Context) error {
	id := c.Param("id")

	if err := validators.IDValidator(id); err != nil {
		return httpx.BadRequest("Invalid category ID")
	}

	var rows []productRow
	err := a.productQuery().Where("products.category_id = ?", id).Scan(&rows).Error
	if err != nil {
		zap.L().Error("Failed to fetch products by category", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	if len(rows) == 0 {
		return httpx.NotFound("No products found for this category")
	}

	httpx.OK(c, http.StatusOK, "Products fetched successfully", gin.H{
		"products": productViewsFromRows(rows),
	})
	return nil
}
