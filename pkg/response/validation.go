package response

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// 校验规则对应的错误信息
var msgMap = map[string]string{
	"required": "不能为空",
	"min":      "不能小于%v",
	"max":      "不能大于%v",
	"email":    "必须是有效的邮箱地址",
	"url":      "必须是有效的网址",
}

// 字段中文名
var fieldMap = map[string]string{
	"Title":       "标题",
	"Description": "描述",
	"Body":        "内容",
	"TagList":     "标签",
	"Email":       "邮箱",
	"Username":    "用户名",
	"Password":    "密码",
	"Image":       "头像",
	"Offset":      "偏移量",
	"Limit":       "每页条数",
}

// FormatValidationError 只返回第一个校验错误
func FormatValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "参数错误"
	}
	first := errs[0]

	fieldName := fieldMap[first.Field()]
	if fieldName == "" {
		fieldName = first.Field()
	}

	msgTemplate := msgMap[first.Tag()]
	if msgTemplate == "" {
		return fieldName + "验证失败"
	}
	if first.Param() != "" {
		return fieldName + fmt.Sprintf(msgTemplate, first.Param())
	}
	return fieldName + msgTemplate
}
