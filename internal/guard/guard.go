package guard

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/nsxzhou1114/realworld-api/pkg/errcode"
)

// 资源类别，用于拼接权限错误消息
const (
	Articles = "articles"
	Comments = "comments"
)

// 操作类别
const (
	Edit   = "edit"
	Delete = "delete"
)

// AssertOwner 校验操作者是否为资源作者，否则返回Forbidden
func AssertOwner(actorID, ownerID uuid.UUID, action, resource string) error {
	if actorID == ownerID {
		return nil
	}
	return errcode.Forbidden(fmt.Sprintf("You cannot %s %s written by others.", action, resource))
}
