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

// CategoryAdd creates a category with a required image and an optional
// validated parent link.
func (a *API) CategoryAdd(c *gin.Context) error {
	name := strings.TrimSpace(c.PostForm("name"))
	description := strings.TrimSpace(c.PostForm("description"))
	parentID := strings.TrimSpace(c.PostForm("parentCategory"))

	if name == "" || description == "" {
		return httpx.BadRequest("All fields are required")
	}

	var count int64
	err := a.DB.Model(model.Category{}).Where("name = ?", name).Count(&count).Error
	if err != nil {
		zap.L().Error("Failed to check category name", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	if count > 0 {
		return httpx.Conflict("A category with this name already exists")
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return httpx.BadRequest("Category image is required")
	}

	if parentID != "" {
		if err := a.validateParentCategory(parentID, ""); err != nil {
			return err
		}
	}

	imageURL, err := a.uploadImage(c.Request.Context(), fh, "categories", "Category image")
	if err != nil {
		return err
	}

	id, err := newID()
	if err != nil {
		zap.L().Error("Failed to generate category ID", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	cat := model.Category{
		ID:          id,
		Name:        name,
		Description: description,
		Image:       imageURL,
		ParentID:    parentID,
	}

	if err := a.DB.Create(&cat).Error; err != nil {
		zap.L().Error("Failed to create category", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	httpx.OK(c, http.StatusCreated, "Category created successfully", gin.H{
		"category": categoryView(&cat),
	})
	return nil
}

// validateParentCategory checks a parent link is a well-formed id of
// an existing category and, when childID is set, that following the
// ancestor chain from the parent never returns to the child.
func (a *API) validateParentCategory(parentID, childID string) error {
	if err := validators.IDValidator(parentID); err != nil {
		return httpx.BadRequest("Invalid parentCategory ID")
	}

	if parentID == childID {
		return httpx.BadRequest("A category can't be its own parent")
	}

	current := parentID
	// Bounded walk so a corrupted chain can't spin forever
	for range 64 {
		var cat model.Category
		err := a.DB.Select("id", "parent_id").Where("id = ?", current).First(&cat).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if current == parentID {
					return httpx.BadRequest("Invalid parentCategory ID")
				}
				return nil
			}

			zap.L().Error("Failed to walk category ancestors", zap.Error(err))
			return httpx.Internal("Internal server error")
		}

		if cat.ParentID == "" {
			return nil
		}

		if childID != "" && cat.ParentID == childID {
			return httpx.BadRequest("parentCategory would create a cycle")
		}

		current = cat.ParentID
	}

	return httpx.BadRequest("parentCategory chain is too deep")
}
