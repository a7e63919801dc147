package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	gormlogger "gorm.io/gorm/logger"

	"koita-chat-api/internal/config"
	"koita-chat-api/internal/domain/conversation"
	"koita-chat-api/internal/infrastructure/database"
	"koita-chat-api/internal/infrastructure/database/repository/conversationrepo"
	"koita-chat-api/internal/infrastructure/database/transaction"
	"koita-chat-api/internal/infrastructure/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database schema migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE:  runMigrateUp,
}

var purgeTempCmd = &cobra.Command{
	Use:   "purge-temp",
	Short: "Delete idle temporary conversations",
	Long:  `Delete temporary conversations (and their messages) not updated within the retention window.`,
	RunE:  runPurgeTemp,
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)

	purgeTempCmd.Flags().Duration("older-than", 0, "Retention window (default: TEMP_CONVERSATION_TTL)")
}

func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func commandLogger(cmd *cobra.Command, cfg *config.Config) (zerolog.Logger, error) {
	level := cfg.LogLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	return logger.New(level, "console")
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Parse()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if _, err := commandLogger(cmd, cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	pingCtx, pingCancel := context.WithTimeout(ctx, 10*time.Second)
	defer pingCancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
	return nil
}

func runPurgeTemp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Parse()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := commandLogger(cmd, cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	olderThan, _ := cmd.Flags().GetDuration("older-than")
	if olderThan <= 0 {
		olderThan = cfg.TempConversationTTL
	}

	ctx, cancel := commandContext()
	defer cancel()

	db, err := database.Connect(database.Config{
		DatabaseURL: cfg.DatabaseURL,
		MaxIdle:     1,
		MaxOpen:     2,
		MaxLifetime: time.Minute,
		LogLevel:    gormlogger.Warn,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer database.Close(db)

	service := conversation.NewService(conversationrepo.NewConversationGormRepository(transaction.NewDatabase(db)), log)
	purged, err := service.PurgeTemporary(ctx, olderThan)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "purged %d temporary conversation(s) idle for more than %s\n", purged, olderThan)
	return nil
}
