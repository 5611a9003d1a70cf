package slug

import (
	"regexp"
	"strings"
)

// 任意连续空白字符，包含垂直制表符
var whitespaceRun = regexp.MustCompile(`[\s\v]+`)

// Make 根据标题生成slug：转小写后把连续空白替换为单个连字符
func Make(title string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(title), "-")
}
