package matchrepo

import (
	"context"

	"github.com/GlebRadaev/starmatch/internal/domain"
	"github.com/GlebRadaev/starmatch/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const matchColumns = `id, user1_id, user2_id, match_type, status, user1_status, user2_status, filters, created_at, expires_at`

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func scanMatch(row pgx.Row) (*domain.Match, error) {
	var m domain.Match
	err := row.Scan(
		&m.ID, &m.User1ID, &m.User2ID, &m.MatchType, &m.Status,
		&m.User1Status, &m.User2Status, &m.Filters, &m.CreatedAt, &m.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (repo *Repository) Create(ctx context.Context, match *domain.Match) (*domain.Match, error) {
	query := `
		INSERT INTO matches (user1_id, user2_id, match_type, filters, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, status, user1_status, user2_status, created_at
	`
	err := repo.db.QueryRow(ctx, query,
		match.User1ID, match.User2ID, match.MatchType, match.Filters, match.ExpiresAt,
	).Scan(&match.ID, &match.Status, &match.User1Status, &match.User2Status, &match.CreatedAt)
	if err != nil {
		zap.L().Error("can't save match", zap.Error(err))
		return nil, err
	}
	return match, nil
}

// FindByIDForUpdate row-locks the match so the two sides' reactions can't
// interleave. Must run inside a TXManager.Begin closure.
func (repo *Repository) FindByIDForUpdate(ctx context.Context, id int) (*domain.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1 FOR UPDATE`
	match, err := scanMatch(repo.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find match for update", zap.Error(err))
		return nil, err
	}
	return match, nil
}

func (repo *Repository) UpdateStatuses(ctx context.Context, match *domain.Match) error {
	query := `
		UPDATE matches
		SET status = $1, user1_status = $2, user2_status = $3
		WHERE id = $4
	`
	if _, err := repo.db.Exec(ctx, query, match.Status, match.User1Status, match.User2Status, match.ID); err != nil {
		zap.L().Error("can't update match statuses", zap.Error(err))
		return err
	}
	return nil
}

// InvolvedUserIDs returns every user id appearing in any match with the
// given user, regardless of the match status. The caller builds the
// exclusion set from it.
func (repo *Repository) InvolvedUserIDs(ctx context.Context, userID int) ([]int, error) {
	query := `SELECT user1_id, user2_id FROM matches WHERE user1_id = $1 OR user2_id = $1`
	rows, err := repo.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't query involved user ids", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var user1ID, user2ID int
		if err := rows.Scan(&user1ID, &user2ID); err != nil {
			zap.L().Error("can't scan match pair row", zap.Error(err))
			return nil, err
		}
		ids = append(ids, user1ID, user2ID)
	}
	return ids, rows.Err()
}

func (repo *Repository) FindByUserID(ctx context.Context, userID int, limit int) ([]domain.Match, error) {
	query := `
		SELECT m.id, m.user1_id, m.user2_id, m.match_type, m.status, m.user1_status, m.user2_status, m.filters, m.created_at, m.expires_at,
		       u1.id, u1.telegram_id, u1.username, u1.first_name, u1.last_name, u1.photo_url, u1.bio, u1.age, u1.gender, u1.location, u1.interests, u1.stars_balance, u1.referral_code, u1.referred_by, u1.referral_count, u1.daily_login_streak, u1.last_login_date, u1.free_matches_earned, u1.is_premium, u1.is_active, u1.created_at,
		       u2.id, u2.telegram_id, u2.username, u2.first_name, u2.last_name, u2.photo_url, u2.bio, u2.age, u2.gender, u2.location, u2.interests, u2.stars_balance, u2.referral_code, u2.referred_by, u2.referral_count, u2.daily_login_streak, u2.last_login_date, u2.free_matches_earned, u2.is_premium, u2.is_active, u2.created_at
		FROM matches m
		JOIN users u1 ON u1.id = m.user1_id
		JOIN users u2 ON u2.id = m.user2_id
		WHERE m.user1_id = $1 OR m.user2_id = $1
		ORDER BY m.created_at DESC
		LIMIT $2
	`
	rows, err := repo.db.Query(ctx, query, userID, limit)
	if err != nil {
		zap.L().Error("can't list matches", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var matches []domain.Match
	for rows.Next() {
		var m domain.Match
		var u1, u2 domain.User
		err := rows.Scan(
			&m.ID, &m.User1ID, &m.User2ID, &m.MatchType, &m.Status,
			&m.User1Status, &m.User2Status, &m.Filters, &m.CreatedAt, &m.ExpiresAt,
			&u1.ID, &u1.TelegramID, &u1.Username, &u1.FirstName, &u1.LastName,
			&u1.PhotoURL, &u1.Bio, &u1.Age, &u1.Gender, &u1.Location, &u1.Interests,
			&u1.StarsBalance, &u1.ReferralCode, &u1.ReferredBy, &u1.ReferralCount,
			&u1.DailyLoginStreak, &u1.LastLoginDate, &u1.FreeMatchesEarned,
			&u1.IsPremium, &u1.IsActive, &u1.CreatedAt,
			&u2.ID, &u2.TelegramID, &u2.Username, &u2.FirstName, &u2.LastName,
			&u2.PhotoURL, &u2.Bio, &u2.Age, &u2.Gender, &u2.Location, &u2.Interests,
			&u2.StarsBalance, &u2.ReferralCode, &u2.ReferredBy, &u2.ReferralCount,
			&u2.DailyLoginStreak, &u2.LastLoginDate, &u2.FreeMatchesEarned,
			&u2.IsPremium, &u2.IsActive, &u2.CreatedAt,
		)
		if err != nil {
			zap.L().Error("can't scan match row", zap.Error(err))
			return nil, err
		}
		m.User1 = &u1
		m.User2 = &u2
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (repo *Repository) FindExpiredPending(ctx context.Context, limit int) ([]domain.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE status = 'pending' AND expires_at < NOW()
		LIMIT $1
	`
	rows, err := repo.db.Query(ctx, query, limit)
	if err != nil {
		zap.L().Error("can't query expired matches", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var matches []domain.Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			zap.L().Error("can't scan expired match row", zap.Error(err))
			return nil, err
		}
		matches = append(matches, *match)
	}
	return matches, rows.Err()
}

// MarkExpired transitions a still-pending match to expired. A match that
// got a terminal status between the sweep query and this call is left
// untouched.
func (repo *Repository) MarkExpired(ctx context.Context, id int) (bool, error) {
	query := `UPDATE matches SET status = 'expired' WHERE id = $1 AND status = 'pending'`
	tag, err := repo.db.Exec(ctx, query, id)
	if err != nil {
		zap.L().Error("can't mark match expired", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (repo *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.QueryRow(ctx, `SELECT COUNT(*) FROM matches`).Scan(&count); err != nil {
		zap.L().Error("can't count matches", zap.Error(err))
		return 0, err
	}
	return count, nil
}
