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

// ProductUpdate applies a partial update. Absent fields keep their
// stored values, numeric fields stay non-negative, a new category must
// exist.
func (a *API) ProductUpdate(c *gin.Context) error {
	id := c.Param("id")

	if err := validators.IDValidator(id); err != nil {
		return httpx.BadRequest("Invalid product ID")
	}

	var product model.Product
	if err := a.DB.Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpx.NotFound("Product not found")
		}

		zap.L().Error("Failed to fetch product", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	if name := strings.TrimSpace(c.PostForm("name")); name != "" && name != product.Name {
		var count int64
		err := a.DB.Model(model.Product{}).Where("name = ? AND id <> ?", name, id).Count(&count).Error
		if err != nil {
			zap.L().Error("Failed to check product name", zap.Error(err))
			return httpx.Internal("Internal server error")
		}

		if count > 0 {
			return httpx.Conflict("A product with this name already exists")
		}

		product.Name = name
	}

	if description := strings.TrimSpace(c.PostForm("description")); description != "" {
		product.Description = description
	}

	if priceStr := c.PostForm("price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			return httpx.BadRequest("Price must be a non-negative number")
		}

		product.Price = price
	}

	if stockStr := c.PostForm("stock"); stockStr != "" {
		stock, err := strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			return httpx.BadRequest("Stock must be a non-negative number")
		}

		product.Stock = stock
	}

	if isActiveStr := c.PostForm("isActive"); isActiveStr != "" {
		product.IsActive = isActiveStr == "true"
	}

	if categoryID := strings.TrimSpace(c.PostForm("category")); categoryID != "" {
		if err := validators.IDValidator(categoryID); err != nil {
			return httpx.BadRequest("Invalid category ID")
		}

		var count int64
		err := a.DB.Model(model.Category{}).Where("id = ?", categoryID).Count(&count).Error
		if err != nil {
			zap.L().Error("Failed to fetch category", zap.Error(err))
			return httpx.Internal("Internal server error")
		}

		if count == 0 {
			return httpx.NotFound("Category not found")
		}

		product.CategoryID = categoryID
	}

	if form, err := c.MultipartForm(); err == nil {
		if files := form.File["images"]; len(files) > 0 {
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

			product.Images = urls
		}
	}

	if err := a.DB.Save(&product).Error; err != nil {
		zap.L().Error("Failed to update product", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	var rows []productRow
	err := a.productQuery().Where("products.id = ?", id).Limit(1).Scan(&rows).Error
	if err != nil || len(rows) == 0 {
		zap.L().Error("Failed to read back updated product", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	httpx.OK(c, http.StatusOK, "Product updated successfully", gin.H{
		"product": productViewFromRow(&rows[0]),
	})
	return nil
}
