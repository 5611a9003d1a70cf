package dto

// TagList 标签列表
type TagList struct {
	Tags []string `json:"tags"`
}
