package main

import (
	"context"
	"log"
	"os"
	"time"

	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Removes guest sessions whose expiry has passed, together with the
// conversations they still own. Expiry is normally enforced lazily at verify
// time; this tool reclaims the storage.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	now := time.Now()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	color.Cyan("🧹 Guest session cleanup (cutoff: %s)", now.Format(time.RFC3339))

	expired, err := uow.GuestSessionRepository().FindAll(ctx, specification.ExpiredBefore{Now: now})
	if err != nil {
		color.Red("Failed to list expired sessions: %v", err)
		os.Exit(1)
	}
	if len(expired) == 0 {
		color.Green("Nothing to do: no expired sessions.")
		return
	}

	ids := make([]uuid.UUID, 0, len(expired))
	for _, session := range expired {
		ids = append(ids, session.Id)
	}
	color.Yellow("Found %d expired sessions.", len(ids))

	// Conversations first, sessions second: a crash in between leaves orphan
	// sessions that the next run deletes.
	conversations, err := uow.ConversationRepository().HardDeleteByGuestSessionIds(ctx, ids)
	if err != nil {
		color.Red("Failed to delete orphaned conversations: %v", err)
		os.Exit(1)
	}
	color.Green("Deleted %d orphaned conversations.", conversations)

	sessions, err := uow.GuestSessionRepository().DeleteExpired(ctx, now)
	if err != nil {
		color.Red("Failed to delete expired sessions: %v", err)
		os.Exit(1)
	}
	color.Green("Deleted %d expired sessions.", sessions)
}
