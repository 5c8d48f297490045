// internal/utils/pagination.go
package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PaginationParams struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Sort   string `json:"sort"`
	Order  string `json:"order"`
	Search string `json:"search"`
}

type PaginationResult struct {
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int64       `json:"total"`
	TotalPages int         `json:"total_pages"`
	Data       interface{} `json:"data"`
}

func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	sort := c.DefaultQuery("sort", "created_at")
	order := c.DefaultQuery("order", "desc")
	search := c.Query("search")

	return PaginationParams{
		Page:   NormalizePage(page),
		Limit:  NormalizeLimit(limit),
		Sort:   sort,
		Order:  normalizeOrder(order),
		Search: search,
	}
}

// NormalizePage coerces out-of-range page values to the default instead of
// rejecting the request; search inputs are treated permissively.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func NormalizeLimit(limit int) int {
	if limit < 1 || limit > 100 {
		return 20
	}
	return limit
}

func normalizeOrder(order string) string {
	if order != "asc" && order != "desc" {
		return "desc"
	}
	return order
}

func ApplyPagination(params *PaginationParams) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		offset := (params.Page - 1) * params.Limit
		return db.Offset(offset).Limit(params.Limit)
	}
}

var defaultSortFields = []string{"created_at", "updated_at", "price", "view_count", "favorite_count"}

func ApplySort(params *PaginationParams, allowedSortFields ...string) func(*gorm.DB) *gorm.DB {
	if len(allowedSortFields) == 0 {
		allowedSortFields = defaultSortFields
	}

	sortField := params.Sort
	validSort := false
	for _, field := range allowedSortFields {
		if field == sortField {
			validSort = true
			break
		}
	}
	if !validSort {
		sortField = "created_at"
	}

	return func(db *gorm.DB) *gorm.DB {
		return db.Order(sortField + " " + params.Order)
	}
}

func CreatePaginationResult(data interface{}, total int64, params *PaginationParams) PaginationResult {
	totalPages := int(math.Ceil(float64(total) / float64(params.Limit)))

	return PaginationResult{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
		Data:       data,
	}
}

func SetPaginationHeaders(c *gin.Context, result PaginationResult) {
	c.Header("X-Total-Count", strconv.FormatInt(result.Total, 10))
	c.Header("X-Page", strconv.Itoa(result.Page))
	c.Header("X-Per-Page", strconv.Itoa(result.Limit))
	c.Header("X-Total-Pages", strconv.Itoa(result.TotalPages))
}
