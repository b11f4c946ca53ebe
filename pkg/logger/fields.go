package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldCollection 集合名称字段
	FieldCollection = "collection"

	// FieldCategoryID 分类 ID 字段
	FieldCategoryID = "categoryId"

	// FieldEntryID 条目 ID 字段
	FieldEntryID = "entryId"

	// FieldSessionID 训练计划 ID 字段
	FieldSessionID = "sessionId"

	// FieldVideoID 视频 ID 字段
	FieldVideoID = "videoId"

	// FieldAction 操作类型字段
	FieldAction = "action"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldCount 数量字段
	FieldCount = "count"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldError 错误信息字段
	FieldError = "error"
)
