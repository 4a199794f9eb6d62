package api

import (
	"errors"
	"net/http"
	"strings"

	"storekit/commerce-api/httpx"
	"storekit/commerce-api/model"
	"storekit/commerce-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CategoryUpdate rewrites name/description, optionally replaces the
// image and revalidates the parent link. An empty parent clears it.
func (a *API) CategoryUpdate(c *gin.Context) error {
	id := c.Param("id")

	if err := validators.IDValidator(id); err != nil {
		return httpx.NotFound("Invalid category ID")
	}

	var cat model.Category
	if err := a.DB.Where("id = ?", id).First(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpx.NotFound("Category not found")
		}

		zap.L().Error("Failed to fetch category", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	name := strings.TrimSpace(c.PostForm("name"))
	description := strings.TrimSpace(c.PostForm("description"))
	parentID := strings.TrimSpace(c.PostForm("parentCategory"))

	if name == "" || description == "" {
		return httpx.BadRequest("All fields are required")
	}

	if name != cat.Name {
		var count int64
		err := a.DB.Model(model.Category{}).Where("name = ? AND id <> ?", name, id).Count(&count).Error
		if err != nil {
			zap.L().Error("Failed to check category name", zap.Error(err))
			return httpx.Internal("Internal server error")
		}

		if count > 0 {
			return httpx.Conflict("A category with this name already exists")
		}
	}

	if parentID != "" {
		if err := a.validateParentCategory(parentID, id); err != nil {
			return err
		}
	}

	imageURL := cat.Image
	if fh, err := c.FormFile("image"); err == nil {
		imageURL, err = a.uploadImage(c.Request.Context(), fh, "categories", "Category image")
		if err != nil {
			return err
		}
	}

	err := a.DB.
		Model(model.Category{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":        name,
			"description": description,
			"image":       imageURL,
			"parent_id":   parentID,
		}).
		Error
	if err != nil {
		zap.L().Error("Failed to update category", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	cat.Name = name
	cat.Description = description
	cat.Image = imageURL
	cat.ParentID = parentID

	httpx.OK(c, http.StatusOK, "Category updated successfully", gin.H{
		"category": categoryView(&cat),
	})
	return nil
}
