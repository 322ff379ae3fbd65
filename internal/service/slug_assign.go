package service

import (
	"errors"

	"github.com/qs3c/kino_go_server/internal/pkg/slug"
)

var ErrSlugConflict = errors.New("slug 冲突，请稍后重试")

// 并发写入撞到唯一索引时的最大重建次数
const maxSlugRetries = 5

// resolveSlug 确定 slug 基准值：显式传入优先，否则由名称生成
func resolveSlug(explicit, name string) string {
	if explicit != "" {
		return slug.Make(explicit)
	}
	return slug.Make(name)
}

// nextAvailableSlug 乐观探测未占用的 slug：base、base-1、base-2……
// 探测结果不具权威性，最终以唯一索引为准。
func nextAvailableSlug(base string, exists func(string) (bool, error)) (string, error) {
	candidate := base
	for i := 1; ; i++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = slug.WithSuffix(base, i)
	}
}
