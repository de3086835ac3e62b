package upload

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"ticketdesk/internal/pkg/config"
	pkgErrors "ticketdesk/pkg/errors"
)

// 默认扩展名白名单(图片+常见文档)
var defaultAllowedExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".webp",
	".pdf", ".doc", ".docx", ".txt",
}

const defaultMaxSizeMB = 5

// Validate 校验上传文件的扩展名与大小
func Validate(file *multipart.FileHeader) error {
	cfg := config.GlobalConfig.Upload

	allowed := cfg.AllowedExtensions
	if len(allowed) == 0 {
		allowed = defaultAllowedExtensions
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !lo.Contains(allowed, ext) {
		return pkgErrors.New(pkgErrors.CodeBadRequest,
			fmt.Sprintf("不支持的文件类型: %s", ext))
	}

	maxSizeMB := cfg.MaxSizeMB
	if maxSizeMB <= 0 {
		maxSizeMB = defaultMaxSizeMB
	}
	if file.Size > int64(maxSizeMB)<<20 {
		return pkgErrors.New(pkgErrors.CodeBadRequest,
			fmt.Sprintf("文件大小超过限制: %dMB", maxSizeMB))
	}

	return nil
}

// BuildPath 生成防冲突的存储文件名, 返回(磁盘路径, 对外相对路径)
func BuildPath(originalName string) (string, string, error) {
	cfg := config.GlobalConfig.Upload

	dir := cfg.Dir
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", pkgErrors.Wrap(pkgErrors.CodeInternalError, "创建上传目录失败", err)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.NewString() + ext

	return filepath.Join(dir, name), "/uploads/" + name, nil
}
