package response

import (
	"github.com/gin-gonic/gin"
)

// PageMeta is the pagination part of every list envelope.
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasMore    bool  `json:"hasMore"`
}

func NewPageMeta(total int64, page, limit int) PageMeta {
	totalPages := 0
	if limit > 0 && total > 0 {
		// ceil(total / limit) without forming total+limit.
		pages := total / int64(limit)
		if total%int64(limit) != 0 {
			pages++
		}
		totalPages = int(pages)
	}

	return PageMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}

// Page writes {<key>: items, page, limit, total, totalPages, hasMore}.
// A nil slice is written as [] so clients never see null.
func Page[T any](c *gin.Context, status int, key string, items []T, meta PageMeta) {
	if items == nil {
		items = []T{}
	}
	c.JSON(status, gin.H{
		key:          items,
		"page":       meta.Page,
		"limit":      meta.Limit,
		"total":      meta.Total,
		"totalPages": meta.TotalPages,
		"hasMore":    meta.HasMore,
	})
}

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

type ErrorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func Error(c *gin.Context, status int, errorCode string, message string, details any) {
	c.JSON(status, ErrorBody{
		Error:   message,
		Code:    errorCode,
		Details: details,
	})
}

// Abort is Error followed by c.Abort, for middleware.
func Abort(c *gin.Context, status int, errorCode string, message string) {
	Error(c, status, errorCode, message, nil)
	c.Abort()
}
