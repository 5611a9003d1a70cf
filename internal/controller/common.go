package controller

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/nsxzhou1114/realworld-api/pkg/response"
)

// bindError 参数绑定失败：校验错误给出字段提示，其余统一为参数错误
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		response.FromError(c, "参数错误", err)
		return
	}
	response.BadRequest(c, "参数错误", err)
}
