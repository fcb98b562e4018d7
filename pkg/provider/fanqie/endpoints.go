// Folio: A streamlined CLI tool for searching and downloading web novels.
// Copyright (C) 2025 Luca M. Schmidt (LuMiSxh)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package fanqie

import (
	"time"

	"Folio/pkg/core"
)

const (
	ID   = "fanqie"
	Name = "Fanqie Novel"

	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	DefaultTimeout        = 30 * time.Second
	DefaultConnectTimeout = 10 * time.Second
	DefaultChapterDelay   = 100 * time.Millisecond
)

const (
	searchPath    = "/api/search"
	detailPath    = "/api/detail"
	directoryPath = "/api/directory"
	bookPath      = "/api/book"
	contentPath   = "/api/content"

	searchTabType  = "3"
	tabChapter     = "小说"
	tabBulk        = "批量"
	successCode    = 200
	removedMessage = "BOOK_REMOVE"
)

// DefaultEndpoints returns the built-in mirror pool in fallback order.
func DefaultEndpoints() []core.Endpoint {
	return []core.Endpoint{
		{Name: "中国|浙江省|宁波市|电信", Address: "http://qkfqapi.vv9v.cn", Listed: true},
		{Name: "中国|北京市|腾讯云", Address: "http://49.232.137.12", Listed: true},
		{Name: "中国|43.248.77.205", Address: "http://43.248.77.205:22222"},
		{Name: "日本|东京", Address: "https://fq.shusan.cn", Listed: true},
	}
}

// DefaultHeaders returns the headers every mirror expects.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Referer":          "https://fanqienovel.com/",
		"X-Requested-With": "XMLHttpRequest",
		"Accept-Language":  "zh-CN,zh;q=0.9,en-US;q=0.8,en;q=0.7",
		"Accept":           "application/json, text/javascript, */*; q=0.01",
	}
}
