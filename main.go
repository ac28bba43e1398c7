package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hackathon-vote-system/cmd/server"
	"hackathon-vote-system/config"
	"hackathon-vote-system/internal/global/database"
	"hackathon-vote-system/internal/global/jwt"
	"hackathon-vote-system/internal/module/user"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "hackathon-vote-system",
		Short:        "黑客松投票系统后端",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(), migrateCmd(), createAdminCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			server.Init(ctx)
			return server.Run(ctx)
		},
	}
}

// migrateCmd database.Init 会自动迁移并写入默认设置
func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "迁移数据库表结构",
		RunE: func(cmd *cobra.Command, _ []string) error {
			config.Init()
			database.Init()
			fmt.Fprintln(cmd.OutOrStdout(), "migrate done")
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	var email, password, nickName string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "创建管理员账号",
		RunE: func(cmd *cobra.Command, _ []string) error {
			config.Init()
			database.Init()
			u, err := user.CreateUser(database.DB.WithContext(context.Background()), email, password, nickName, jwt.RoleAdmin)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin created: id=%d email=%s\n", u.ID, u.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "管理员邮箱")
	cmd.Flags().StringVar(&password, "password", "", "至少8位，包含字母和数字")
	cmd.Flags().StringVar(&nickName, "nick", "admin", "昵称")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
