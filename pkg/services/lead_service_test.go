package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhouselabs/porchlight/pkg/models"
)

func TestLeadServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("stores lead with defaults", func(t *testing.T) {
		svc := NewLeadService(newTestDB(t))

		lead, err := svc.Create(ctx, models.CreateLeadInput{
			FirstName: "Sam",
			Email:     "sam@example.com",
			Interest:  "Buying",
			AgentID:   1,
		})
		require.NoError(t, err)
		assert.Equal(t, models.LeadStatusNew, lead.Status)
		assert.Equal(t, models.LeadSourceWebForm, lead.Source)
		assert.NotZero(t, lead.ID)
	})

	t.Run("keeps explicit source", func(t *testing.T) {
		svc := NewLeadService(newTestDB(t))

		lead, err := svc.Create(ctx, models.CreateLeadInput{
			Phone:   "704-555-0100",
			AgentID: 1,
			Source:  models.LeadSourceChat,
		})
		require.NoError(t, err)
		assert.Equal(t, models.LeadSourceChat, lead.Source)
	})

	t.Run("requires email or phone", func(t *testing.T) {
		svc := NewLeadService(newTestDB(t))

		_, err := svc.Create(ctx, models.CreateLeadInput{
			FirstName: "Sam",
			AgentID:   1,
		})
		assert.True(t, IsValidationError(err))
	})

	t.Run("requires positive agent id", func(t *testing.T) {
		svc := NewLeadService(newTestDB(t))

		_, err := svc.Create(ctx, models.CreateLeadInput{
			Email: "sam@example.com",
		})
		assert.True(t, IsValidationError(err))
	})
}

func TestLeadServiceList(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, svc *LeadService, agentID int64, n int) {
		t.Helper()
		for i := 0; i < n; i++ {
			_, err := svc.Create(ctx, models.CreateLeadInput{
				Email:   "seed@example.com",
				AgentID: agentID,
			})
			require.NoError(t, err)
		}
	}

	t.Run("filters by agent", func(t *testing.T) {
		svc := NewLeadService(newTestDB(t))
		seed(t, svc, 1, 3)
		seed(t, svc, 2, 2)

		leads, err := svc.List(ctx, models.LeadFilters{AgentID: 1})
		require.NoError(t, err)
		assert.Len(t, leads, 3)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		svc := NewLeadService(newTestDB(t))
		seed(t, svc, 1, 5)

		page, err := svc.List(ctx, models.LeadFilters{Limit: 2, Offset: 4})
		require.NoError(t, err)
		assert.Len(t, page, 1)
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		svc := NewLeadService(newTestDB(t))

		leads, err := svc.List(ctx, models.LeadFilters{})
		require.NoError(t, err)
		assert.Empty(t, leads)
	})
}
