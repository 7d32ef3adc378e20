package userrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/GlebRadaev/starmatch/internal/domain"
	"github.com/GlebRadaev/starmatch/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const userColumns = `id, telegram_id, username, first_name, last_name, photo_url, bio, age, gender, location, interests, stars_balance, referral_code, referred_by, referral_count, daily_login_streak, last_login_date, free_matches_earned, is_premium, is_active, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.TelegramID, &u.Username, &u.FirstName, &u.LastName,
		&u.PhotoURL, &u.Bio, &u.Age, &u.Gender, &u.Location, &u.Interests,
		&u.StarsBalance, &u.ReferralCode, &u.ReferredBy, &u.ReferralCount,
		&u.DailyLoginStreak, &u.LastLoginDate, &u.FreeMatchesEarned,
		&u.IsPremium, &u.IsActive, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (repo *Repository) FindByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE telegram_id = $1`
	user, err := scanUser(repo.db.QueryRow(ctx, query, telegramID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find user by telegram id", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(repo.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find user by id", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) FindByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE referral_code = $1`
	user, err := scanUser(repo.db.QueryRow(ctx, query, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find user by referral code", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (telegram_id, username, first_name, last_name, photo_url, referral_code, referred_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, gender, is_active, created_at
	`
	err := repo.db.QueryRow(ctx, query,
		user.TelegramID, user.Username, user.FirstName, user.LastName,
		user.PhotoURL, user.ReferralCode, user.ReferredBy,
	).Scan(&user.ID, &user.Gender, &user.IsActive, &user.CreatedAt)
	if err != nil {
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) UpdateProfile(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		UPDATE users
		SET age = $1, gender = $2, location = $3, interests = $4, bio = $5
		WHERE telegram_id = $6
		RETURNING ` + userColumns
	updated, err := scanUser(repo.db.QueryRow(ctx, query,
		user.Age, user.Gender, user.Location, user.Interests, user.Bio, user.TelegramID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't update user profile", zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func (repo *Repository) UpdateLogin(ctx context.Context, telegramID int64, streak int, lastLogin time.Time) error {
	query := `UPDATE users SET daily_login_streak = $1, last_login_date = $2 WHERE telegram_id = $3`
	if _, err := repo.db.Exec(ctx, query, streak, lastLogin, telegramID); err != nil {
		zap.L().Error("can't update login info", zap.Error(err))
		return err
	}
	return nil
}

func (repo *Repository) AddFreeMatches(ctx context.Context, telegramID int64, delta int) error {
	query := `UPDATE users SET free_matches_earned = free_matches_earned + $1 WHERE telegram_id = $2`
	if _, err := repo.db.Exec(ctx, query, delta, telegramID); err != nil {
		zap.L().Error("can't add free matches", zap.Error(err))
		return err
	}
	return nil
}

// ConsumeFreeMatch atomically spends one free match credit. Returns false
// when no credit was available.
func (repo *Repository) ConsumeFreeMatch(ctx context.Context, telegramID int64) (bool, error) {
	query := `
		UPDATE users
		SET free_matches_earned = free_matches_earned - 1
		WHERE telegram_id = $1 AND free_matches_earned > 0
	`
	tag, err := repo.db.Exec(ctx, query, telegramID)
	if err != nil {
		zap.L().Error("can't consume free match", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DebitBalance atomically withdraws amount stars. The balance precondition
// is part of the statement, so concurrent debits can't overdraw.
func (repo *Repository) DebitBalance(ctx context.Context, telegramID int64, amount int) (bool, error) {
	query := `
		UPDATE users
		SET stars_balance = stars_balance - $1
		WHERE telegram_id = $2 AND stars_balance >= $1
	`
	tag, err := repo.db.Exec(ctx, query, amount, telegramID)
	if err != nil {
		zap.L().Error("can't debit balance", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (repo *Repository) CreditBalance(ctx context.Context, telegramID int64, amount int) error {
	query := `UPDATE users SET stars_balance = stars_balance + $1 WHERE telegram_id = $2`
	if _, err := repo.db.Exec(ctx, query, amount, telegramID); err != nil {
		zap.L().Error("can't credit balance", zap.Error(err))
		return err
	}
	return nil
}

func (repo *Repository) CreditReferrer(ctx context.Context, id int, bonus int) error {
	query := `
		UPDATE users
		SET stars_balance = stars_balance + $1, referral_count = referral_count + 1
		WHERE id = $2
	`
	if _, err := repo.db.Exec(ctx, query, bonus, id); err != nil {
		zap.L().Error("can't credit referrer", zap.Error(err))
		return err
	}
	return nil
}

// FindCandidates returns up to limit active users outside the exclusion
// set, optionally narrowed by filters. The limit deliberately caps the pool
// before the random pick, so the pick is uniform within the cap rather than
// over the whole eligible population.
func (repo *Repository) FindCandidates(ctx context.Context, excludeIDs []int, filters *domain.MatchFilters, limit int) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE is_active = TRUE AND NOT (id = ANY($1))`
	args := []any{excludeIDs}

	if filters != nil {
		if filters.Gender != "" {
			args = append(args, filters.Gender)
			query += fmt.Sprintf(" AND gender = $%d", len(args))
		}
		if filters.Location != "" {
			args = append(args, "%"+filters.Location+"%")
			query += fmt.Sprintf(" AND location ILIKE $%d", len(args))
		}
		if filters.AgeRange != nil {
			args = append(args, filters.AgeRange.Min, filters.AgeRange.Max)
			query += fmt.Sprintf(" AND age BETWEEN $%d AND $%d", len(args)-1, len(args))
		}
		if len(filters.Interests) > 0 {
			args = append(args, filters.Interests)
			query += fmt.Sprintf(" AND interests && $%d", len(args))
		}
	}

	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	rows, err := repo.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't query candidates", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			zap.L().Error("can't scan candidate row", zap.Error(err))
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (repo *Repository) List(ctx context.Context, limit int) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1`
	rows, err := repo.db.Query(ctx, query, limit)
	if err != nil {
		zap.L().Error("can't list users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			zap.L().Error("can't scan user row", zap.Error(err))
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (repo *Repository) Count(ctx context.Context) (total int64, active int64, err error) {
	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM users`
	if err = repo.db.QueryRow(ctx, query).Scan(&total, &active); err != nil {
		zap.L().Error("can't count users", zap.Error(err))
		return 0, 0, err
	}
	return total, active, nil
}
