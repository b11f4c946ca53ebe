package code

// 成功码
var (
	Success       = NewSuss(200, lang{en: "Success", zh_cn: "成功"})
	SuccessCreate = NewSuss(201, lang{en: "Created", zh_cn: "创建成功"})
	SuccessUpdate = NewSuss(202, lang{en: "Updated", zh_cn: "更新成功"})
	SuccessDelete = NewSuss(203, lang{en: "Deleted", zh_cn: "删除成功"})
)

// 通用错误码 10xxx
var (
	ErrorServerInternal  = NewError(10000, lang{en: "Internal server error", zh_cn: "服务内部错误"})
	ErrorInvalidParams   = NewError(10001, lang{en: "Invalid request parameters", zh_cn: "入参错误"})
	ErrorTooManyRequests = NewError(10002, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorNotFound        = NewError(10003, lang{en: "Resource not found", zh_cn: "资源不存在"})
)

// 校验错误码 20xxx（本地状态未发生任何变化）
var (
	ErrorCategoryNameRequired    = NewError(20001, lang{en: "Category name is required", zh_cn: "分类名称不能为空"})
	ErrorEntryTitleRequired      = NewError(20002, lang{en: "Entry title is required", zh_cn: "条目标题不能为空"})
	ErrorEntryCategoryRequired   = NewError(20003, lang{en: "Entry category is required", zh_cn: "条目分类不能为空"})
	ErrorEntryNotesRequired      = NewError(20004, lang{en: "Note text is required", zh_cn: "笔记内容不能为空"})
	ErrorInvalidVideoURL         = NewError(20005, lang{en: "Invalid YouTube URL", zh_cn: "无效的 YouTube 链接"})
	ErrorSessionCategoriesEmpty  = NewError(20006, lang{en: "Select at least one category", zh_cn: "至少选择一个分类"})
	ErrorSessionDateRequired     = NewError(20007, lang{en: "Session date is required", zh_cn: "训练日期不能为空"})
	ErrorNegativeWatchTime       = NewError(20008, lang{en: "Watch time seconds must not be negative", zh_cn: "观看时长不能为负数"})
)

// 持久化错误码 30xxx（本地乐观状态已生效，不会自动回滚）
var (
	ErrorPersistenceFailed = NewError(30001, lang{en: "Persistence write failed", zh_cn: "持久化写入失败"})
	ErrorSnapshotLoad      = NewError(30002, lang{en: "Snapshot load failed", zh_cn: "快照加载失败"})
)

// IsValidation reports whether the code sits in the validation range
// IsValidation 判断是否为校验类错误码
func IsValidation(c *Code) bool {
	return c != nil && c.code >= 20000 && c.code < 30000
}

// IsPersistence 判断是否为持久化类错误码
func IsPersistence(c *Code) bool {
	return c != nil && c.code >= 30000 && c.code < 40000
}
