package slug

import (
	"strconv"
	"strings"
)

// Make 将标题规范化为 URL 安全的 slug：
// 小写、仅保留 ASCII 字母数字、其余字符折叠为单个连字符、去掉首尾连字符。
// 无法规范化的输入（如纯符号）返回空字符串，由调用方决定如何处理。
func Make(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	lastDash := true // 抑制开头的连字符
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// WithSuffix 生成带数字后缀的候选 slug（冲突时使用）
func WithSuffix(base string, n int) string {
	if n <= 0 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}
