package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/salary-slip-risk/dto"
)

// LimitUploadSize rejects request bodies larger than limit bytes. Declared
// lengths are checked up front; chunked bodies fail on read once they pass
// the limit. A limit of zero or less disables the check.
func LimitUploadSize(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, tooLargeResponse())
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || errors.Is(err, dto.ErrUploadTooLarge)
}

func tooLargeResponse() dto.ErrorResponse {
	return dto.ErrorResponse{
		Error:   "UPLOAD_TOO_LARGE",
		Message: dto.ErrUploadTooLarge.Error(),
		Code:    http.StatusRequestEntityTooLarge,
	}
}
