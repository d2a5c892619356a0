package projects

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odiseo153/FeedBack-zone-sub001/internal/apperrors"
)

func TestStatsRepository_GetByProjectID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "average_score", "ratings_count", "comments_count", "likes_count"}).
		AddRow(int64(7), 4.25, int64(8), int64(3), int64(42))
	mock.ExpectQuery("SELECT p.id").WithArgs(int64(7)).WillReturnRows(rows)

	stats, err := NewStatsRepository(db).GetByProjectID(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), stats.ProjectID)
	assert.Equal(t, 4.25, stats.AverageScore)
	assert.Equal(t, int64(8), stats.RatingsCount)
	assert.Equal(t, int64(3), stats.CommentsCount)
	assert.Equal(t, int64(42), stats.LikesCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsRepository_MissingProject(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT p.id").WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "average_score", "ratings_count", "comments_count", "likes_count"}))

	_, err = NewStatsRepository(db).GetByProjectID(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsRepository_QueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT p.id").WithArgs(int64(7)).
		WillReturnError(errors.New("connection reset"))

	_, err = NewStatsRepository(db).GetByProjectID(context.Background(), 7)
	require.Error(t, err)
	assert.False(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
