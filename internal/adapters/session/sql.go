package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/acme/quote-manager/internal/domain"
)

// record is the table row for a session.
type record struct {
	ID          string `gorm:"primaryKey;size:255"`
	Shop        string `gorm:"index;size:255;not null"`
	State       string `gorm:"size:255"`
	AccessToken string
	Scope       string
	IsOnline    bool
	ExpiresAt   *time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

// TableName implements gorm's tabler.
func (record) TableName() string {
	return "shop_sessions"
}

func toRecord(s *domain.Session) record {
	r := record{
		ID:          s.ID,
		Shop:        s.Shop,
		State:       s.State,
		AccessToken: s.AccessToken,
		Scope:       s.Scope,
		IsOnline:    s.IsOnline,
	}

	if !s.ExpiresAt.IsZero() {
		expires := s.ExpiresAt.UTC()
		r.ExpiresAt = &expires
	}

	return r
}

func (r record) toDomain() *domain.Session {
	s := &domain.Session{
		ID:          r.ID,
		Shop:        r.Shop,
		State:       r.State,
		AccessToken: r.AccessToken,
		Scope:       r.Scope,
		IsOnline:    r.IsOnline,
	}

	if r.ExpiresAt != nil {
		s.ExpiresAt = *r.ExpiresAt
	}

	return s
}

// SQLStore keeps sessions in a relational table through gorm.
type SQLStore struct {
	db  *gorm.DB
	now func() time.Time
}

// OpenPostgres connects to dsn and prepares the sessions table.
func OpenPostgres(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}

	return NewSQLStore(ctx, db)
}

// NewSQLStore wraps db and migrates the sessions table.
func NewSQLStore(ctx context.Context, db *gorm.DB) (*SQLStore, error) {
	if db == nil {
		return nil, errors.New("SQLStore: db is required")
	}

	if err := db.WithContext(ctx).AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("migrating sessions table: %w", err)
	}

	return &SQLStore{db: db, now: time.Now}, nil
}

// Store inserts or replaces the session row.
func (s *SQLStore) Store(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.NewValidationError("id", "Session id is required.")
	}

	rec := toRecord(session)

	if err := s.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return fmt.Errorf("storing session: %w", err)
	}

	return nil
}

// Load reads a session. Missing and expired rows are reported as not found.
func (s *SQLStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	var rec record

	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError(entitySession, id)
		}

		return nil, fmt.Errorf("loading session: %w", err)
	}

	session := rec.toDomain()
	if session.Expired(s.now()) {
		return nil, domain.NewNotFoundError(entitySession, id)
	}

	return session, nil
}

// Delete removes the session row.
func (s *SQLStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&record{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	return nil
}

// PurgeExpired deletes rows past their expiry and returns how many went.
func (s *SQLStore) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at IS NOT NULL AND expires_at < ?", s.now().UTC()).Delete(&record{})

	return res.RowsAffected, res.Error
}

// Name implements ports.HealthChecker.
func (s *SQLStore) Name() string {
	return "session-sql"
}

// Check pings the database.
func (s *SQLStore) Check(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
