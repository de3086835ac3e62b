package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateErr 识别唯一约束冲突
// 服务层的存在性预检查挡不住并发竞争, 约束冲突统一在这里兜底识别
func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
