package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/dmitrijs2005/agroassist/internal/client/models"
	"github.com/dmitrijs2005/agroassist/internal/client/repositories/preferences"
	"github.com/dmitrijs2005/agroassist/internal/common"
	"github.com/dmitrijs2005/agroassist/internal/dbx"
)

// Preference keys holding the persisted session.
const (
	keyToken = preferences.KeySession + ".token"
	keyUser  = preferences.KeySession + ".user"
)

// Store persists a Session in the preferences table so a restarted client
// stays logged in.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Save writes the token and the user profile in a single transaction.
func (st *Store) Save(ctx context.Context, s *Session) error {
	user, err := sonic.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	return dbx.WithTx(ctx, st.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := preferences.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyToken, []byte(s.AccessToken)); err != nil {
			return err
		}
		return repo.Set(ctx, keyUser, user)
	})
}

// Load restores the saved session. It returns common.ErrNoSession when
// nothing is stored and common.ErrSessionExpired when the token has expired.
func (st *Store) Load(ctx context.Context) (*Session, error) {
	repo := preferences.NewSQLiteRepository(st.db)

	rawUser, err := repo.Get(ctx, keyUser)
	if err != nil {
		return nil, err
	}
	if rawUser == nil {
		return nil, common.ErrNoSession
	}
	token, err := repo.Get(ctx, keyToken)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := sonic.Unmarshal(rawUser, &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}

	s := New(&user, string(token))
	if s.Expired(st.now()) {
		return nil, common.ErrSessionExpired
	}
	return s, nil
}

// Clear removes the saved session.
func (st *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, st.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := preferences.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, keyToken); err != nil {
			return err
		}
		return repo.Delete(ctx, keyUser)
	})
}
