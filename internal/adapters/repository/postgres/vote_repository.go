package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/FlintbyyS/voteforlunch/internal/core/domain"
	"github.com/FlintbyyS/voteforlunch/internal/core/ports"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

const selectVote = `
	SELECT v.id, v.user_id, v.restaurant_id, r.name, v.vote_date, v.vote_time
	FROM votes v
	JOIN restaurants r ON r.id = v.restaurant_id
`

func (r *voteRepository) GetByIDAndUser(ctx context.Context, id, userID int64) (*domain.Vote, error) {
	row := r.db.QueryRowContext(ctx, selectVote+`WHERE v.id = $1 AND v.user_id = $2`, id, userID)
	return scanVote(row)
}

func (r *voteRepository) GetByDateAndUser(ctx context.Context, date time.Time, userID int64) (*domain.Vote, error) {
	row := r.db.QueryRowContext(ctx, selectVote+`WHERE v.vote_date = $1 AND v.user_id = $2`, date.Format(dateLayout), userID)
	return scanVote(row)
}

func (r *voteRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Vote, error) {
	rows, err := r.db.QueryContext(ctx, selectVote+`WHERE v.user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	defer rows.Close()

	var votes []*domain.Vote
	for rows.Next() {
		vote, err := scanVote(rows)
		if err != nil {
			return nil, err
		}
		votes = append(votes, vote)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}

	return votes, nil
}

func (r *voteRepository) Save(ctx context.Context, vote *domain.Vote) error {
	if vote.IsNew() {
		query := `
			INSERT INTO votes (user_id, restaurant_id, vote_date, vote_time)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`
		err := r.db.QueryRowContext(ctx, query,
			vote.UserID, vote.RestaurantID,
			vote.VoteDate.Format(dateLayout), vote.VoteTime.Format(timeLayout),
		).Scan(&vote.ID)
		if err != nil {
			// A concurrent first vote of the day loses the race on the
			// (user_id, vote_date) uniqueness constraint.
			if isUniqueViolation(err) || isForeignKeyViolation(err) {
				return fmt.Errorf("failed to insert vote: %w", domain.ErrVoteConflict)
			}
			return fmt.Errorf("failed to insert vote: %w", err)
		}
		return nil
	}

	query := `UPDATE votes SET restaurant_id = $1, vote_time = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, vote.RestaurantID, vote.VoteTime.Format(timeLayout), vote.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("failed to update vote: %w", domain.ErrVoteConflict)
		}
		return fmt.Errorf("failed to update vote: %w", err)
	}
	return nil
}

func (r *voteRepository) DeleteByDateAndUser(ctx context.Context, date time.Time, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM votes WHERE vote_date = $1 AND user_id = $2`, date.Format(dateLayout), userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete vote: %w", err)
	}
	return res.RowsAffected()
}

func (r *voteRepository) DistributionOnDate(ctx context.Context, date time.Time) ([]domain.VoteDistribution, error) {
	query := `
		SELECT v.restaurant_id, r.name, COUNT(v.id) AS vote_count
		FROM votes v
		JOIN restaurants r ON r.id = v.restaurant_id
		WHERE v.vote_date = $1
		GROUP BY v.restaurant_id, r.name
		ORDER BY vote_count DESC
	`

	rows, err := r.db.QueryContext(ctx, query, date.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch distribution: %w", err)
	}
	defer rows.Close()

	var dist []domain.VoteDistribution
	for rows.Next() {
		var d domain.VoteDistribution
		if err := rows.Scan(&d.RestaurantID, &d.RestaurantName, &d.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan distribution: %w", err)
		}
		dist = append(dist, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating distribution: %w", err)
	}

	return dist, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVote(row rowScanner) (*domain.Vote, error) {
	var (
		vote     domain.Vote
		voteTime string
	)
	err := row.Scan(&vote.ID, &vote.UserID, &vote.RestaurantID, &vote.RestaurantName, &vote.VoteDate, &voteTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan vote: %w", err)
	}

	vote.VoteTime, err = time.Parse(timeLayout, voteTime)
	if err != nil {
		return nil, fmt.Errorf("failed to parse vote time %q: %w", voteTime, err)
	}

	return &vote, nil
}
