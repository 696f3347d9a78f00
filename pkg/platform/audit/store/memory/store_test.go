package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "smp/pkg/platform/audit"
)

const (
	alpha = "iso6523-actorid-upis::9915:alpha"
	beta  = "iso6523-actorid-upis::9915:beta"
)

func appendAll(t *testing.T, s *InMemoryStore, events ...audit.Event) {
	t.Helper()
	for _, e := range events {
		require.NoError(t, s.Append(context.Background(), e))
	}
}

func actions(events []audit.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Action
	}
	return out
}

func TestListByParticipant(t *testing.T) {
	s := NewInMemoryStore()
	appendAll(t, s,
		audit.Event{ParticipantID: alpha, Action: "service_group_created"},
		audit.Event{ParticipantID: beta, Action: "service_group_created"},
		audit.Event{ParticipantID: alpha, Action: "service_metadata_saved"},
	)

	got, err := s.ListByParticipant(context.Background(), alpha)
	require.NoError(t, err)
	assert.Equal(t, []string{"service_group_created", "service_metadata_saved"}, actions(got))

	got, err = s.ListByParticipant(context.Background(), "iso6523-actorid-upis::9915:none")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRetainDropsOldest(t *testing.T) {
	s := NewInMemoryStore(WithRetain(2))
	appendAll(t, s,
		audit.Event{ParticipantID: alpha, Action: "first"},
		audit.Event{ParticipantID: alpha, Action: "second"},
		audit.Event{ParticipantID: alpha, Action: "third"},
	)

	got, err := s.ListByParticipant(context.Background(), alpha)
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "third"}, actions(got))
}

func TestListRecentNewestFirst(t *testing.T) {
	s := NewInMemoryStore()
	appendAll(t, s,
		audit.Event{ParticipantID: alpha, Action: "first"},
		audit.Event{ParticipantID: beta, Action: "second"},
		audit.Event{ParticipantID: alpha, Action: "third"},
	)

	got, err := s.ListRecent(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"third", "second"}, actions(got))

	got, err = s.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
