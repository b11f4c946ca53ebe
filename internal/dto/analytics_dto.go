package dto

import (
	"github.com/fitkeys/workout-sync-service/internal/analytics"
)

// SuggestionDTO 智能建议数据传输对象
type SuggestionDTO struct {
	Type    string `json:"type"`    // warning / success / info / motivation
	Message string `json:"message"` // Suggestion text // 建议内容
	Icon    string `json:"icon"`    // Emoji icon // 图标
}

// SuggestionsToDTO 建议列表转 DTO
func SuggestionsToDTO(list []analytics.Suggestion) []*SuggestionDTO {
	out := make([]*SuggestionDTO, 0, len(list))
	for _, s := range list {
		out = append(out, &SuggestionDTO{
			Type:    string(s.Type),
			Message: s.Message,
			Icon:    s.Icon,
		})
	}
	return out
}

// SummaryDTO 每周总结数据传输对象
type SummaryDTO struct {
	Summary string `json:"summary"` // One-line weekly summary // 单行周总结
}
