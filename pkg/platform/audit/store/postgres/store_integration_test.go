//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	registrypostgres "smp/internal/registry/store/postgres"
	audit "smp/pkg/platform/audit"
	"smp/pkg/platform/audit/store/postgres"
	txcontext "smp/pkg/platform/tx"
	"smp/pkg/testutil/containers"
)

func TestStore_AppendAndList(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	pg := containers.GetManager().GetPostgres(t)
	require.NoError(t, registrypostgres.Migrate(pg.DSN))
	ctx := context.Background()
	require.NoError(t, pg.TruncateTables(ctx, "audit_event"))

	store := postgres.New(pg.DB)
	participant := "iso6523-actorid-upis::9915:alpha"
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, store.Append(ctx, audit.Event{
		Category:      audit.CategoryCompliance,
		Timestamp:     base,
		ParticipantID: participant,
		Action:        string(audit.EventServiceGroupCreated),
		Severity:      audit.SeverityInfo,
	}))
	require.NoError(t, store.Append(ctx, audit.Event{
		Category:      audit.CategorySecurity,
		Timestamp:     base.Add(time.Second),
		ParticipantID: participant,
		Action:        string(audit.EventInconsistentState),
		Severity:      audit.SeverityCritical,
		Reason:        "locator unreachable",
	}))

	events, err := store.ListByParticipant(ctx, participant)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, string(audit.EventServiceGroupCreated), events[0].Action)
	require.Equal(t, audit.SeverityCritical, events[1].Severity)
	require.Equal(t, "locator unreachable", events[1].Reason)

	recent, err := store.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, string(audit.EventInconsistentState), recent[0].Action)
}

func TestStore_AppendJoinsContextTransaction(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	pg := containers.GetManager().GetPostgres(t)
	require.NoError(t, registrypostgres.Migrate(pg.DSN))
	ctx := context.Background()
	require.NoError(t, pg.TruncateTables(ctx, "audit_event"))

	store := postgres.New(pg.DB)
	tx, err := pg.DB.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, store.Append(txcontext.WithTx(ctx, tx), audit.Event{
		Category:      audit.CategoryCompliance,
		Timestamp:     time.Now(),
		ParticipantID: "iso6523-actorid-upis::9915:rolled-back",
		Action:        string(audit.EventServiceGroupDeleted),
	}))
	require.NoError(t, tx.Rollback())

	events, err := store.ListByParticipant(ctx, "iso6523-actorid-upis::9915:rolled-back")
	require.NoError(t, err)
	require.Empty(t, events)
}
