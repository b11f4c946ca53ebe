// Package util provides common utility functions
// Package util 提供通用工具函数
package util

import "regexp"

// youtubeIDRegex matches watch, share, short-link and embed URL forms
// Group 2: the candidate video identifier // 候选视频 ID
// youtubeIDRegex 匹配 watch、分享、短链与 embed 链接形式
var youtubeIDRegex = regexp.MustCompile(`^.*(youtu.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)

// youtubeIDLength a valid identifier is exactly 11 characters
// youtubeIDLength 合法视频 ID 固定为 11 个字符
const youtubeIDLength = 11

// ExtractYouTubeID extracts the 11-character video identifier from a URL.
// Returns "" when no valid identifier can be extracted.
// ExtractYouTubeID 从链接中提取 11 位视频 ID，提取失败返回空字符串
func ExtractYouTubeID(url string) string {
	if url == "" {
		return ""
	}
	match := youtubeIDRegex.FindStringSubmatch(url)
	if match == nil {
		return ""
	}
	if len(match[2]) != youtubeIDLength {
		return ""
	}
	return match[2]
}

// YouTubeThumbnailURL derives the deterministic thumbnail URL for a video id.
// No network validation is performed.
// YouTubeThumbnailURL 根据视频 ID 推导缩略图地址，不做网络校验
func YouTubeThumbnailURL(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/mqdefault.jpg"
}
