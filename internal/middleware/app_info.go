package middleware

import (
	"github.com/gin-gonic/gin"
)

// AppInfoWithConfig 创建应用信息中间件（支持依赖注入）
func AppInfoWithConfig(name string, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("app_name", name)
		c.Set("app_version", version)

		c.Next()
	}
}
