package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"docforge-ai-api/internal/config"
	"docforge-ai-api/internal/domain/entity"
	"docforge-ai-api/internal/wire"
)

func main() {
	_ = godotenv.Load()

	fmt.Println("Starting system bootstrap...")

	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// 2. 初始化数据层（仅 PostgreSQL）
	dataLayer, cleanup, err := wire.InitializePostgresOnly(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize data layer: %v", err)
	}
	defer cleanup()

	// 3. 迁移表结构
	fmt.Println("Running schema migration...")
	if err := dataLayer.PgClient.DB().AutoMigrate(
		&entity.Tenant{},
		&entity.Subscription{},
		&entity.Template{},
		&entity.Document{},
		&entity.Section{},
		&entity.GenerationRecord{},
	); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}
	fmt.Println("Schema migration completed.")

	// 4. 创建演示租户（可选，默认跳过）
	demoSubject := os.Getenv("BOOTSTRAP_DEMO_SUBJECT")
	if demoSubject == "" {
		fmt.Println("Bootstrap completed successfully.")
		return
	}

	exists, err := dataLayer.TenantRepo.ExistsByExternalSubject(ctx, demoSubject)
	if err != nil {
		log.Fatalf("failed to check tenant existence: %v", err)
	}
	if exists {
		fmt.Printf("Demo tenant %s already exists.\n", demoSubject)
		fmt.Println("Bootstrap completed successfully.")
		return
	}

	fmt.Printf("Creating demo tenant for subject: %s...\n", demoSubject)
	demoName := os.Getenv("BOOTSTRAP_DEMO_NAME")
	if demoName == "" {
		demoName = "Demo Workspace"
	}

	tenant := entity.NewTenant(demoSubject, demoName)
	if err := dataLayer.TenantRepo.Create(ctx, tenant); err != nil {
		log.Fatalf("failed to create demo tenant: %v", err)
	}

	sub := entity.NewSubscription(tenant.ID, cfg.Quota.DefaultPlan, cfg.Quota.DefaultAllocation)
	if err := dataLayer.SubscriptionRepo.Create(ctx, sub); err != nil {
		log.Fatalf("failed to create demo subscription: %v", err)
	}

	fmt.Printf("Demo tenant created with ID: %s\n", tenant.ID)
	fmt.Println("Bootstrap completed successfully.")
}
