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

func TestProductCreate(t *testing.T) {
	a, up, _ := newTestAPI(t)
	cat := seedCategory(t, a, "Shoes", "")

	w := doMultipart(a, http.MethodPost, "/api/product",
		map[string]string{
			"name":        "Runner",
			"description": "A running shoe",
			"price":       "59.99",
			"stock":       "12",
			"isActive":    "true",
			"category":    cat.ID,
		},
		map[string][]string{"images": {"front.png", "side.png"}}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	product := body["product"].(map[string]any)
	assert.Equal(t, "Runner", product["name"])
	assert.Equal(t, 59.99, product["price"])
	assert.Len(t, product["images"].([]any), 2)

	// The response carries the denormalized category snapshot
	category := product["category"].(map[string]any)
	assert.Equal(t, cat.ID, category["id"])
	assert.Equal(t, "Shoes", category["name"])

	require.Len(t, up.keys, 2)
	assert.Contains(t, up.keys[0], "products/")
}

func TestProductCreateMissingFields(t *testing.T) {
	a, _, _ := newTestAPI(t)
	cat := seedCategory(t, a, "Shoes", "")

	w := doMultipart(a, http.MethodPost, "/api/product",
		map[string]string{
			"name":     "Runner",
			"price":    "59.99",
			"category": cat.ID,
		},
		map[string][]string{"images": {"front.png"}}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "All fields are required")
}

func TestProductCreateRequiresImages(t *testing.T) {
	a, _, _ := newTestAPI(t)
	cat := seedCategory(t, a, "Shoes", "")

	w := doMultipart(a, http.MethodPost, "/api/product",
		map[string]string{
			"name":        "Runner",
			"description": "A running shoe",
			"price":       "59.99",
			"stock":       "12",
			"isActive":    "true",
			"category":    cat.ID,
		}, nil, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Image not found")
}

func TestProductCreateNegativeNumbersRejected(t *testing.T) {
	a, _, _ := newTestAPI(t)
	cat := seedCategory(t, a, "Shoes", "")

	fields := map[string]string{
		"name":        "Runner",
		"description": "A running shoe",
		"price":       "-1",
		"stock":       "12",
		"isActive":    "true",
		"category":    cat.ID,
	}
	w := doMultipart(a, http.MethodPost, "/api/product", fields,
		map[string][]string{"images": {"front.png"}}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Price must be a non-negative number")

	fields["price"] = "59.99"
	fields["stock"] = "-3"
	w = doMultipart(a, http.MethodPost, "/api/product", fields,
		map[string][]string{"images": {"front.png"}}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Stock must be a non-negative number")
}

func TestProductCreateDuplicateName(t *testing.T) {
	a, _, _ := newTestAPI(t)
	cat := seedCategory(t, a, "Shoes", "")
	seedProduct(t, a, "Runner", cat.ID)

	w := doMultipart(a, http.MethodPost, "/api/product",
		map[string]string{
			"name":        "Runner",
			"description": "Another runner",
			"price":       "10",
			"stock":       "1",
			"isActive":    "true",
			"category":    cat.ID,
		},
		map[string][]string{"images": {"front.png"}}, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestProductCreateUnknownCategory(t *testing.T) {
	a, _, _ := newTestAPI(t)

	fields := map[string]string{
		"name":        "Runner",
		"description": "A running shoe",
		"price":       "59.99",
		"stock":       "12",
		"isActive":    "true",
		"category":    "AAAAAAAAAAAAAAAA",
	}
	w := doMultipart(a, http.MethodPost, "/api/product", fields,
		map[string][]string{"images": {"front.png"}}, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Category not found")

	fields["category"] = "not-an-id"
	w = doMultipart(a, http.MethodPost, "/api/product", fields,
		map[string][]string{"images": {"front.png"}}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid category ID")
}

func TestProductCreateCapsImageCount(t *testing.T) {
	a, up, _ := newTestAPI(t)
	cat := seedCategory(t, a, "Shoes", "")

	w := doMultipart(a, http.MethodPost, "/api/product",
		map[string]string{
			"name":        "Runner",
			"description": "A running shoe",
			"price":       "59.99",
			"stock":       "12",
			"isActive":    "true",
			"category":    cat.ID,
		},
		map[string][]string{"images": {"a.png", "b.png", "c.png", "d.png", "e.png"}}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	product := body["product"].(map[string]any)
	assert.Len(t, product["images"].([]any), 3)
	assert.Len(t, up.keys, 3)
}

func TestProductFetchAll(t *testing.T) {
	a, _, _ := newTestAPI(t)
	cat := seedCategory(t, a, "Shoes", "")
	seedProduct(t, a, "Runner", cat.ID)
	seedProduct(t, a, "Walker", cat.ID)

	// Unique query string sidesteps the shared response cache
	w := doJSON(a, http.MethodGet, fmt.Sprintf("/api/product?b=%d", atomic.AddInt64(&reqSeq, 1)), nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	products := body["products"].([]any)
	assert.Len(t, products, 2)
}

func TestProductByID(t *testing.T) {
	a, _, _ := newTestAPI(t)
	cat := seedCategory(t, a, "Shoes", "")
	p := seedProduct(t, a, "Runner", cat.ID)

	w := doJSON(a, http.MethodGet, "/api/product/"+p.ID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	product := body["product"].(map[string]any)
	assert.Equal(t, p.ID, product["id"])
	assert.Equal(t, "Shoes", product["category"].(map[string]any)["name"])
}

func TestProductByIDInvalidAndMissing(t *testing.T) {
	a, _, _ := newTestAPI(t)

	w := doJSON(a, http.MethodGet, "/api/product/not-an-id", nil, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid product ID")

	w = doJSON(a, http.MethodGet, "/api/product/AAAAAAAAAAAAAAAA", nil, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Product not found")
}

func TestProductByCategory(t *testing.T) {
	a, _, _ := newTestAPI(t)
	shoes := seedCategory(t, a, "Shoes", "")
	hats := seedCategory(t, a, "Hats", "")
	seedProduct(t, a, "Runner", shoes.ID)

	w := doJSON(a, http.MethodGet, "/api/product/category/"+shoes.ID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Len(t, body["products"].([]any), 1)

	// A category with no products answers not found, not an empty list
	w = doJSON(a, http.MethodGet, "/api/product/category/"+hats.ID, nil, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No products found for this category")
}

func TestProductUpdatePartial(t *testing.T) {
	a, _, _ := newTestAPI(t)
	cat := seedCategory(t, a, "Shoes", "")
	p := seedProduct(t, a, "Runner", cat.ID)

	w := doMultipart(a, http.MethodPatch, "/api/product/"+p.ID,
		map[string]string{"price": "12.50", "isActive": "false"}, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	product := body["product"].(map[string]any)
	assert.Equal(t, 12.50, product["price"])
	assert.Equal(t, false, product["isActive"])
	// Untouched fields survive
	assert.Equal(t, "Runner", product["name"])

	var after model.Product
	require.NoError(t, a.DB.Where("id = ?", p.ID).First(&after).Error)
	assert.Equal(t, 12.50, after.Price)
	assert.Equal(t, 5, after.Stock)
}

func TestProductUpdateReplacesImages(t *testing.T) {
	a, _, _ := newTestAPI(t)
	cat := seedCategory(t, a, "Shoes", "")
	p := seedProduct(t, a, "Runner", cat.ID)

	w := doMultipart(a, http.MethodPatch, "/api/product/"+p.ID, nil,
		map[string][]string{"images": {"new.png"}}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var after model.Product
	require.NoError(t, a.DB.Where("id = ?", p.ID).First(&after).Error)
	require.Len(t, after.Images, 1)
	assert.Contains(t, after.Images[0], "https://cdn.test/products/")
}

func TestProductUpdateUnknownCategory(t *testing.T) {
	a, _, _ := newTestAPI(t)
	cat := seedCategory(t, a, "Shoes", "")
	p := seedProduct(t, a, "Runner", cat.ID)

	w := doMultipart(a, http.MethodPatch, "/api/product/"+p.ID,
		map[string]string{"category": "AAAAAAAAAAAAAAAA"}, nil, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Category not found")
}

func TestProductDelete(t *testing.T) {
	a, _, _ := newTestAPI(t)
	cat := seedCategory(t, a, "Shoes", "")
	p := seedProduct(t, a, "Runner", cat.ID)

	w := doJSON(a, http.MethodDelete, "/api/product/"+p.ID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	require.NoError(t, a.DB.Model(model.Product{}).Where("id = ?", p.ID).Count(&count).Error)
	assert.Zero(t, count)

	w = doJSON(a, http.MethodDelete, "/api/product/"+p.ID, nil, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
