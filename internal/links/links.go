// Package links 维护平台链接的双向投影：
// 持久层以六个具名可空列存储链接，编辑层以有序的 (platform, url) 列表呈现。
package links

import (
	"strings"

	"github.com/devlinks/internal/db"
)

// PlatformOrder 是展示与投影使用的固定平台顺序。
// 任何视图都不应自行重排或重建这份列表。
var PlatformOrder = []string{
	"github",
	"linkedin",
	"twitter",
	"youtube",
	"facebook",
	"instagram",
}

// PlatformLabels 将平台键映射到展示名称。
var PlatformLabels = map[string]string{
	"github":    "GitHub",
	"linkedin":  "LinkedIn",
	"twitter":   "Twitter",
	"youtube":   "YouTube",
	"facebook":  "Facebook",
	"instagram": "Instagram",
}

// Entry 是编辑视图中的一条链接，不直接持久化。
type Entry struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// KnownPlatform 判断键是否属于六个受支持的平台之一。
func KnownPlatform(key string) bool {
	_, ok := PlatformLabels[strings.ToLower(strings.TrimSpace(key))]
	return ok
}

// EntriesFromRecord 将记录中的非空链接列按固定平台顺序投影为条目列表。
func EntriesFromRecord(rec *db.UserRecord) []Entry {
	if rec == nil {
		return nil
	}

	columns := rec.LinkColumns()
	entries := make([]Entry, 0, len(PlatformOrder))
	for _, platform := range PlatformOrder {
		value := columns[platform]
		if value == nil || strings.TrimSpace(*value) == "" {
			continue
		}
		entries = append(entries, Entry{Platform: platform, URL: *value})
	}

	return entries
}

// Flatten 将条目列表压回具名列映射。
// 同一平台出现多次时，迭代顺序靠后的一条覆盖前面的。
func Flatten(entries []Entry) map[string]any {
	fields := make(map[string]any, len(entries))
	for _, entry := range entries {
		key := strings.ToLower(strings.TrimSpace(entry.Platform))
		if !KnownPlatform(key) {
			continue
		}
		fields[key] = entry.URL
	}
	return fields
}
