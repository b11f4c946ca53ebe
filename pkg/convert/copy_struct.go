package convert

import (
	"github.com/bytedance/sonic"
	"github.com/jinzhu/copier"
)

// StructAssign copies same-named fields from src into dst and returns dst
// 它会把 src 与 dst 的相同字段名的值，复制到 dst 中
func StructAssign(src any, dst any) any {
	copier.Copy(dst, src)
	return dst
}

// StructToMap 结构体转 map，经由 JSON 往返
func StructToMap(param any, data map[string]interface{}) error {
	str, err := sonic.Marshal(param)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(str, &data)
}
