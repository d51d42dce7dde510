package router

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/snippetlog/internal/db"
	"github.com/snippetlog/internal/handler"
)

// namedRoutes 记录可反向解析的路由名称，供 sitemap 静态节使用
var namedRoutes = map[string]string{
	"about": "/about/",
}

// Reverse 按名称解析路由路径，未注册的名称返回空字符串。
func Reverse(name string) string {
	return namedRoutes[name]
}

// RequestID 为每个请求附加唯一标识，便于日志排查
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader("X-Request-ID"))
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(sessionSecret, siteBaseURL string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件；默认监听纯 HTTP，Secure Cookie 会被客户端丢弃
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("snippetlog_session", store))
	r.Use(RequestID())

	api := handler.NewAPI(db.DB, siteBaseURL, Reverse)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 公共路由；静态路径优先于 :slug 通配
	r.GET("/sitemap.xml", api.ShowSitemap)
	r.GET(namedRoutes["about"], api.ShowAbout)
	r.GET("/:slug/", api.ShowSnippetDetail)

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.POST("/login", handler.Login)
		admin.GET("/logout", handler.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(handler.AuthRequired())
		{
			// API路由
			adminAPI := auth.Group("/api")
			{
				adminAPI.GET("/snippets", api.GetSnippets)
				adminAPI.GET("/snippets/:id", api.GetSnippet)
				adminAPI.POST("/snippets", api.CreateSnippet)
				adminAPI.PUT("/snippets/:id", api.UpdateSnippet)
				adminAPI.DELETE("/snippets/:id", api.DeleteSnippet)
			}
		}
	}

	return r
}
