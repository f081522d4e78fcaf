package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"skycart-api/internal/dto"
	"skycart-api/internal/repository"
	"skycart-api/internal/service"
)

type ProductController struct {
	products        *service.ProductService
	defaultPageSize int
	maxPageSize     int
}

func NewProductController(products *service.ProductService, defaultPageSize, maxPageSize int) *ProductController {
	return &ProductController{
		products:        products,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// GET /api/v1/products
func (ctl *ProductController) List(c *gin.Context) {
	page, limit := pageParams(c, ctl.defaultPageSize, ctl.maxPageSize)

	filter := repository.ProductFilter{
		Keyword:  c.Query("keyword"),
		Category: c.Query("category"),
		SortBy:   c.DefaultQuery("sort_by", "created_at"),
		SortDesc: c.DefaultQuery("sort_order", "desc") == "desc",
	}
	if v := c.Query("min_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MinPrice = &d
		}
	}
	if v := c.Query("max_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MaxPrice = &d
		}
	}
	if v := c.Query("min_rating"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinRating = &f
		}
	}

	products, total, err := ctl.products.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProductListResponse(products, total, page, limit))
}

// GET /api/v1/products/:productId
func (ctl *ProductController) Get(c *gin.Context) {
	product, err := ctl.products.Get(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(product))
}

// POST /api/v1/admin/products
func (ctl *ProductController) Create(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := ctl.products.Create(c.Request.Context(), req.Model(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewProductResponse(product))
}

// PUT /api/v1/admin/products/:productId
func (ctl *ProductController) Update(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := req.Model()
	p.ID = c.Param("productId")

	product, err := ctl.products.Update(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(product))
}

// DELETE /api/v1/admin/products/:productId
func (ctl *ProductController) Delete(c *gin.Context) {
	if err := ctl.products.Delete(c.Request.Context(), c.Param("productId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "product deleted"})
}

// PUT /api/v1/products/:productId/reviews
func (ctl *ProductController) AddReview(c *gin.Context) {
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := ctl.products.AddReview(c.Request.Context(), c.Param("productId"), c.GetString("userID"), req.Rating, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(product))
}

// DELETE /api/v1/products/:productId/reviews
func (ctl *ProductController) DeleteReview(c *gin.Context) {
	product, err := ctl.products.DeleteReview(c.Request.Context(), c.Param("productId"), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(product))
}
