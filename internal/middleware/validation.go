package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/placement-portal/internal/app/models/dto"
	"github.com/yigit/placement-portal/internal/pkg/validation"
)

// BindJSON decodes the request body into obj and runs its binding tags.
// On failure it writes a 400 and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponse("Request body too large", ""))
			return false
		}

		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FormatFieldError(fieldErrs[0]), ""))
			return false
		}

		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request format", err.Error()))
		return false
	}
	return true
}
