package api

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"storekit/commerce-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryAdd(t *testing.T) {
	a, up, _ := newTestAPI(t)

	w := doMultipart(a, http.MethodPost, "/api/category/add",
		map[string]string{"name": "Shoes", "description": "Footwear"},
		map[string][]string{"image": {"shoes.png"}}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	cat := body["category"].(map[string]any)
	assert.Equal(t, "Shoes", cat["name"])
	assert.Contains(t, cat["image"], "https://cdn.test/categories/")
	require.Len(t, up.keys, 1)
}

func TestCategoryAddRequiresImage(t *testing.T) {
	a, _, _ := newTestAPI(t)

	w := doMultipart(a, http.MethodPost, "/api/category/add",
		map[string]string{"name": "Shoes", "description": "Footwear"}, nil, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Category image is required")
}

func TestCategoryAddDuplicateName(t *testing.T) {
	a, _, _ := newTestAPI(t)
	seedCategory(t, a, "Shoes", "")

	w := doMultipart(a, http.MethodPost, "/api/category/add",
		map[string]string{"name": "Shoes", "description": "Footwear"},
		map[string][]string{"image": {"shoes.png"}}, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestCategoryAddMissingFields(t *testing.T) {
	a, _, _ := newTestAPI(t)

	w := doMultipart(a, http.MethodPost, "/api/category/add",
		map[string]string{"name": "Shoes"},
		map[string][]string{"image": {"shoes.png"}}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "All fields are required")
}

func TestCategoryAddUnknownParentRejected(t *testing.T) {
	a, _, _ := newTestAPI(t)

	w := doMultipart(a, http.MethodPost, "/api/category/add",
		map[string]string{
			"name":           "Sneakers",
			"description":    "Sub of shoes",
			"parentCategory": "AAAAAAAAAAAAAAAA",
		},
		map[string][]string{"image": {"sneakers.png"}}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid parentCategory ID")
}

func TestCategoryUpdateParentCycleRejected(t *testing.T) {
	a, _, _ := newTestAPI(t)

	root := seedCategory(t, a, "Shoes", "")
	child := seedCategory(t, a, "Sneakers", root.ID)

	// Root can't become a descendant of its own child
	w := doMultipart(a, http.MethodPatch, "/api/category/update/"+root.ID,
		map[string]string{
			"name":           "Shoes",
			"description":    "Footwear",
			"parentCategory": child.ID,
		}, nil, nil)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "cycle")

	// Nor its own parent
	w = doMultipart(a, http.MethodPatch, "/api/category/update/"+root.ID,
		map[string]string{
			"name":           "Shoes",
			"description":    "Footwear",
			"parentCategory": root.ID,
		}, nil, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryUpdateClearsParent(t *testing.T) {
	a, _, _ := newTestAPI(t)

	root := seedCategory(t, a, "Shoes", "")
	child := seedCategory(t, a, "Sneakers", root.ID)

	w := doMultipart(a, http.MethodPatch, "/api/category/update/"+child.ID,
		map[string]string{"name": "Sneakers", "description": "Now top-level"}, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var after model.Category
	require.NoError(t, a.DB.Where("id = ?", child.ID).First(&after).Error)
	assert.Empty(t, after.ParentID)
	assert.Equal(t, "Now top-level", after.Description)
}

func TestCategoryUpdateMalformedID(t *testing.T) {
	a, _, _ := newTestAPI(t)

	w := doMultipart(a, http.MethodPatch, "/api/category/update/not-an-id",
		map[string]string{"name": "X", "description": "Y"}, nil, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryDeleteLeavesProductsDangling(t *testing.T) {
	a, _, _ := newTestAPI(t)

	cat := seedCategory(t, a, "Shoes", "")
	p := seedProduct(t, a, "Runner", cat.ID)

	w := doJSON(a, http.MethodDelete, "/api/category/delete/"+cat.ID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// No cascade: the product survives with its stale category id
	w = doJSON(a, http.MethodGet, "/api/product/"+p.ID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	product := body["product"].(map[string]any)
	category := product["category"].(map[string]any)
	assert.Equal(t, cat.ID, category["id"])
	assert.Empty(t, category["name"])
}

func TestCategoryDeleteNotFound(t *testing.T) {
	a, _, _ := newTestAPI(t)

	w := doJSON(a, http.MethodDelete, "/api/category/delete/AAAAAAAAAAAAAAAA", nil, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(a, http.MethodDelete, "/api/category/delete/not-an-id", nil, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryFetchAll(t *testing.T) {
	a, _, _ := newTestAPI(t)

	seedCategory(t, a, "Shoes", "")
	seedCategory(t, a, "Hats", "")

	// Unique query string sidesteps the shared response cache
	w := doJSON(a, http.MethodGet, fmt.Sprintf("/api/category/allcat?b=%d", atomic.AddInt64(&reqSeq, 1)), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	cats := body["category"].([]any)
	assert.Len(t, cats, 2)
}
