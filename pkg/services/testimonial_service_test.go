package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/openhouselabs/porchlight/pkg/models"
	"github.com/openhouselabs/porchlight/pkg/reviews"
)

type stubReviewSource struct {
	reviews []reviews.Review
	err     error
}

func (s *stubReviewSource) Fetch(_ context.Context) ([]reviews.Review, error) {
	return s.reviews, s.err
}

func seedTestAgent(t *testing.T, svc *TestimonialService) *models.Agent {
	t.Helper()
	agent := &models.Agent{ID: 1, FirstName: "Dana", LastName: "Whitfield"}
	require.NoError(t, svc.db.Create(agent).Error)
	return agent
}

func TestTestimonialServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("stores site testimonial", func(t *testing.T) {
		svc := NewTestimonialService(newTestDB(t), nil, zap.NewNop())

		row, err := svc.Create(ctx, models.CreateTestimonialInput{
			AgentID: 1,
			Author:  "R. Chen",
			Text:    "Sold in nine days.",
			Rating:  5,
		})
		require.NoError(t, err)
		assert.Equal(t, models.TestimonialSourceSite, row.Source)
	})

	t.Run("rejects invalid rating", func(t *testing.T) {
		svc := NewTestimonialService(newTestDB(t), nil, zap.NewNop())

		_, err := svc.Create(ctx, models.CreateTestimonialInput{
			AgentID: 1,
			Text:    "Great",
			Rating:  0,
		})
		assert.True(t, IsValidationError(err))

		_, err = svc.Create(ctx, models.CreateTestimonialInput{
			AgentID: 1,
			Text:    "Great",
			Rating:  6,
		})
		assert.True(t, IsValidationError(err))
	})

	t.Run("rejects empty text", func(t *testing.T) {
		svc := NewTestimonialService(newTestDB(t), nil, zap.NewNop())

		_, err := svc.Create(ctx, models.CreateTestimonialInput{
			AgentID: 1,
			Rating:  5,
		})
		assert.True(t, IsValidationError(err))
	})
}

func TestTestimonialServiceListForAgent(t *testing.T) {
	ctx := context.Background()

	t.Run("merges live reviews mentioning the agent", func(t *testing.T) {
		source := &stubReviewSource{reviews: []reviews.Review{
			{Author: "G. Patel", Text: "Dana knew every street in the area.", Rating: 5, Time: time.Now()},
			{Author: "Anon", Text: "The office was fine.", Rating: 4, Time: time.Now()},
		}}
		svc := NewTestimonialService(newTestDB(t), source, zap.NewNop())
		agent := seedTestAgent(t, svc)

		_, err := svc.Create(ctx, models.CreateTestimonialInput{
			AgentID: agent.ID,
			Author:  "R. Chen",
			Text:    "Sold in nine days.",
			Rating:  5,
		})
		require.NoError(t, err)

		got, err := svc.ListForAgent(ctx, agent)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, models.TestimonialSourceSite, got[0].Source)
		assert.Equal(t, models.TestimonialSourceGoogle, got[1].Source)
		assert.Equal(t, "G. Patel", got[1].Author)
	})

	t.Run("source outage degrades to stored only", func(t *testing.T) {
		source := &stubReviewSource{err: errors.New("quota exceeded")}
		svc := NewTestimonialService(newTestDB(t), source, zap.NewNop())
		agent := seedTestAgent(t, svc)

		_, err := svc.Create(ctx, models.CreateTestimonialInput{
			AgentID: agent.ID,
			Text:    "Stored one.",
			Rating:  4,
		})
		require.NoError(t, err)

		got, err := svc.ListForAgent(ctx, agent)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, models.TestimonialSourceSite, got[0].Source)
	})

	t.Run("nil source serves stored only", func(t *testing.T) {
		svc := NewTestimonialService(newTestDB(t), nil, zap.NewNop())
		agent := seedTestAgent(t, svc)

		got, err := svc.ListForAgent(ctx, agent)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestAgentService(t *testing.T) {
	ctx := context.Background()

	t.Run("get and display name", func(t *testing.T) {
		db := newTestDB(t)
		require.NoError(t, db.Create(&models.Agent{ID: 3, FirstName: "Lee", LastName: "Soto"}).Error)
		svc := NewAgentService(db)

		agent, err := svc.Get(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "Lee", agent.FirstName)

		name, err := svc.DisplayName(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "Lee Soto", name)
	})

	t.Run("unknown agent", func(t *testing.T) {
		svc := NewAgentService(newTestDB(t))

		_, err := svc.Get(ctx, 42)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestNeighborhoodService(t *testing.T) {
	ctx := context.Background()

	t.Run("list ordered by name and get by slug", func(t *testing.T) {
		db := newTestDB(t)
		for _, n := range []models.Neighborhood{
			{Slug: "southend", Name: "South End"},
			{Slug: "dilworth", Name: "Dilworth"},
		} {
			n.ID = uuid.New()
			n.Highlights = []byte(`[]`)
			require.NoError(t, db.Create(&n).Error)
		}
		svc := NewNeighborhoodService(db)

		all, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Dilworth", all[0].Name)

		hood, err := svc.GetBySlug(ctx, "southend")
		require.NoError(t, err)
		assert.Equal(t, "South End", hood.Name)
	})

	t.Run("unknown slug", func(t *testing.T) {
		svc := NewNeighborhoodService(newTestDB(t))

		_, err := svc.GetBySlug(ctx, "nowhere")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
