package app

import (
	"context"
	"fmt"
	"log/slog"

	"inkwell/internal/config"
	"inkwell/internal/domain/repositories"
	docsysRepo "inkwell/internal/domain/repositories/docsystem"
	"inkwell/internal/repository/memory"
	"inkwell/internal/repository/postgres"
	postgresDocsys "inkwell/internal/repository/postgres/docsystem"
)

// Storage bundles the repositories of one backend
type Storage struct {
	Documents   docsysRepo.DocumentRepository
	Versions    docsysRepo.VersionRepository
	Attachments docsysRepo.AttachmentRepository
	Comments    docsysRepo.CommentRepository
	Workspaces  docsysRepo.WorkspaceRepository
	Users       repositories.UserRepository
	TxManager   repositories.TransactionManager

	// Ping checks backend reachability; nil for the in-memory backend
	Ping func(ctx context.Context) error

	close func()
}

// Close releases backend connections
func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStorage opens the backend selected by cfg.Storage. For PostgreSQL it
// applies pending migrations first when cfg.AutoMigrate is set.
func OpenStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Storage, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		logger.Warn("using in-memory storage: data is lost on restart")
		return NewMemoryStorage(memory.NewStore(cfg.LockTimeout, logger)), nil
	case config.StoragePostgres:
		return openPostgres(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}

// NewMemoryStorage wires the in-memory repositories around store
func NewMemoryStorage(store *memory.Store) *Storage {
	return &Storage{
		Documents:   memory.NewDocumentRepository(store),
		Versions:    memory.NewVersionRepository(store),
		Attachments: memory.NewAttachmentRepository(store),
		Comments:    memory.NewCommentRepository(store),
		Workspaces:  memory.NewWorkspaceRepository(store),
		Users:       memory.NewUserRepository(store),
		TxManager:   memory.NewTransactionManager(store),
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Storage, error) {
	if cfg.AutoMigrate {
		if err := Migrate(cfg.DatabaseURL, logger); err != nil {
			return nil, err
		}
	}

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	logger.Info("database connected",
		"max_conns", pool.Config().MaxConns,
		"min_conns", pool.Config().MinConns,
	)

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(),
		Logger: logger,
	}

	return &Storage{
		Documents:   postgresDocsys.NewDocumentRepository(repoConfig),
		Versions:    postgresDocsys.NewVersionRepository(repoConfig),
		Attachments: postgresDocsys.NewAttachmentRepository(repoConfig),
		Comments:    postgresDocsys.NewCommentRepository(repoConfig),
		Workspaces:  postgresDocsys.NewWorkspaceRepository(repoConfig),
		Users:       postgres.NewUserRepository(repoConfig),
		TxManager:   postgres.NewTransactionManager(pool, cfg.LockTimeout, logger),
		Ping:        pool.Ping,
		close:       pool.Close,
	}, nil
}

// Migrate applies all pending embedded migrations
func Migrate(databaseURL string, logger *slog.Logger) error {
	migrator, err := postgres.NewMigrator(databaseURL, logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return migrator.Up()
}
