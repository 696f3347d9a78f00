//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "smp/pkg/platform/audit"
	"smp/pkg/platform/audit/store/kafka"
	"smp/pkg/testutil/containers"
)

func TestStore_ProducesToBroker(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	broker := containers.GetManager().GetRedpanda(t).Broker
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	const topic = "smp.audit.it"
	store, err := kafka.New([]string{broker}, topic)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.EnsureTopic(ctx))
	require.NoError(t, store.EnsureTopic(ctx), "existing topic is accepted")

	event := audit.Event{
		ParticipantID: "iso6523-actorid-upis::0088:5798000000001",
		Action:        string(audit.EventServiceGroupCreated),
	}.Normalize(time.Now())
	require.NoError(t, store.Append(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	var record *kgo.Record
	for record == nil {
		fetches := consumer.PollFetches(ctx)
		require.NoError(t, ctx.Err(), "no record consumed before the deadline")
		fetches.EachRecord(func(r *kgo.Record) {
			if record == nil {
				record = r
			}
		})
	}

	require.Equal(t, event.ParticipantID, string(record.Key))
	var body map[string]string
	require.NoError(t, json.Unmarshal(record.Value, &body))
	require.Equal(t, "service_group_created", body["action"])
	require.Equal(t, "compliance", body["category"])
}
