package main

import (
	"fmt"
	"log"

	"github.com/snippetlog/internal/config"
	"github.com/snippetlog/internal/db"
	"github.com/snippetlog/internal/service"
)

// 测试数据生成器
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成测试数据...")

	if err := db.EnsureAdmin("admin", "admin123"); err != nil {
		log.Fatal("创建管理员失败:", err)
	}

	createTestSnippets()

	fmt.Println("测试数据生成完成！")
	fmt.Println("用户: admin (密码: admin123)")
}

// 创建测试片段
func createTestSnippets() {
	var count int64
	db.DB.Model(&db.Snippet{}).Count(&count)
	if count > 0 {
		fmt.Println("片段已存在，跳过创建")
		return
	}

	snippets := service.NewSnippetService(db.DB)
	seeds := []service.SnippetInput{
		{Title: "t1", Body: "<h1></h1>"},
		{Title: "t2", Body: "second snippet body"},
		{Title: "My Title!", Body: "## heading\n\nsome **markdown** body"},
	}

	for _, seed := range seeds {
		if _, err := snippets.Create(seed); err != nil {
			log.Printf("创建片段失败: %v", err)
		}
	}

	fmt.Println("✅ 测试片段创建完成")
}
