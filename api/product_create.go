package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"storekit/commerce-api/httpx"
	"storekit/commerce-api/model"
	"storekit/commerce-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxProductImages = 3

// ProductCreate stores a product with at least one uploaded image and
// answers with the joined category projection.
func (a *API) ProductCreate(c *gin.Context) error {
	name := strings.TrimSpace(c.PostForm("name"))
	description := strings.TrimSpace(c.PostForm("description"))
	priceStr := c.PostForm("price")
	stockStr := c.PostForm("stock")
	isActiveStr := c.PostForm("isActive")
	categoryID := strings.TrimSpace(c.PostForm("category"))

	if name == "" || description == "" || priceStr == "" || stockStr == "" || isActiveStr == "" || categoryID == "" {
		return httpx.BadRequest("All fields are required")
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price < 0 {
		return httpx.BadRequest("Price must be a non-negative number")
	}

	stock, err := strconv.Atoi(stockStr)
	if err != nil || stock < 0 {
		return httpx.BadRequest("Stock must be a non-negative number")
	}

	var count int64
	if err := a.DB.Model(model.Product{}).Where("name = ?", name).Count(&count).Error; err != nil {
		zap.L().Error("Failed to check product name", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	if count > 0 {
		return httpx.Conflict("A product with this name already exists")
	}

	if err := validators.IDValidator(categoryID); err != nil {
		return httpx.BadRequest("Invalid category ID")
	}

	var category model.Category
	if err := a.DB.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpx.NotFound("Category not found")
		}

		zap.L().Error("Failed to fetch category", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return httpx.BadRequest("Invalid request")
	}

	files := form.File["images"]
	if len(files) == 0 {
		return httpx.BadRequest("Image not found")
	}

	if len(files) > maxProductImages {
		files = files[:maxProductImages]
	}

	urls := make(model.StringSlice, 0, len(files))
	for _, fh := range files {
		url, err := a.uploadImage(c.Request.Context(), fh, "products", "Product image")
		if err != nil {
			return err
		}

		urls = append(urls, url)
	}

	id, err := newID()
	if err != nil {
		zap.L().Error("Failed to generate product ID", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	product := model.Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		Images:      urls,
		IsActive:    isActiveStr == "true",
		CategoryID:  categoryID,
	}

	if err := a.DB.Create(&product).Error; err != nil {
		zap.L().Error("Failed to create product", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	// Read back through the join so the response carries the
	// denormalized category snapshot, not a bare reference
	var rows []productRow
	err = a.productQuery().Where("products.id = ?", product.ID).Limit(1).Scan(&rows).Error
	if err != nil || len(rows) == 0 {
		zap.L().Error("Failed to read back created product", zap.Error(err))
		return httpx.NotFound("Product not created or category details not found")
	}

	httpx.OK(c, http.StatusCreated, "Product created successfully", gin.H{
		"product": productViewFromRow(&rows[0]),
	})
	return nil
}
