package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestHubRoutesByChannel(t *testing.T) {
	hub := NewHub(4)
	voting := hub.Subscribe(ChannelVoting)
	both := hub.Subscribe(ChannelVoting, ChannelAdmin)
	require.Equal(t, 2, hub.Online())

	require.NoError(t, hub.Publish(context.Background(), ChannelAdmin, NewEvent(TypeBroadcast, "hi")))
	require.NoError(t, hub.Publish(context.Background(), ChannelVoting, NewEvent(TypeVoteCast, 1)))

	ev := <-both.Events()
	require.Equal(t, TypeBroadcast, ev.Type)
	require.Equal(t, ChannelAdmin, ev.Channel)
	ev = <-both.Events()
	require.Equal(t, TypeVoteCast, ev.Type)

	ev = <-voting.Events()
	require.Equal(t, TypeVoteCast, ev.Type)
	select {
	case ev := <-voting.Events():
		t.Fatalf("unexpected event %+v", ev)
	default:
	}
}

func TestHubDropsWhenFull(t *testing.T) {
	hub := NewHub(2)
	slow := hub.Subscribe(ChannelVoting)
	for i := 0; i < 5; i++ {
		require.NoError(t, hub.Publish(context.Background(), ChannelVoting, NewEvent(TypeVoteCast, i)))
	}
	require.Equal(t, int64(3), hub.Dropped())
	require.Equal(t, 0, (<-slow.Events()).Data)
	require.Equal(t, 1, (<-slow.Events()).Data)
}

func TestSubscriptionClose(t *testing.T) {
	hub := NewHub(1)
	sub := hub.Subscribe(ChannelVoting)
	sub.Close()
	sub.Close()
	require.Equal(t, 0, hub.Online())
	_, ok := <-sub.Events()
	require.False(t, ok)
	require.NoError(t, hub.Publish(context.Background(), ChannelVoting, NewEvent(TypeVoteCast, nil)))
}

func TestHubCloseAll(t *testing.T) {
	hub := NewHub(1)
	a := hub.Subscribe(ChannelVoting)
	b := hub.Subscribe(ChannelAdmin)
	hub.CloseAll()
	require.Equal(t, 0, hub.Online())

	_, ok := <-a.Events()
	require.False(t, ok)
	_, ok = <-b.Events()
	require.False(t, ok)
	b.Close()
}

func TestHubConcurrentPublishAndClose(t *testing.T) {
	hub := NewHub(1)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		sub := hub.Subscribe(ChannelVoting)
		go func() {
			defer wg.Done()
			_ = hub.Publish(context.Background(), ChannelVoting, NewEvent(TypeVoteCast, nil))
		}()
		go func() {
			defer wg.Done()
			sub.Close()
		}()
	}
	wg.Wait()
	require.Equal(t, 0, hub.Online())
}

func TestMultiJoinsErrors(t *testing.T) {
	var calls int
	ok := PublisherFunc(func(context.Context, string, Event) error { calls++; return nil })
	bad := PublisherFunc(func(context.Context, string, Event) error { calls++; return errors.New("down") })

	err := Multi(bad, nil, ok).Publish(context.Background(), ChannelVoting, NewEvent(TypeVoteCast, nil))
	require.EqualError(t, err, "down")
	require.Equal(t, 2, calls)

	single := Multi(ok)
	_, isMulti := single.(multiPublisher)
	require.False(t, isMulti)
}

func TestSetDefaultRestore(t *testing.T) {
	orig := Default()
	restore := SetDefault(PublisherFunc(func(context.Context, string, Event) error { return nil }))
	require.NotEqual(t, orig, Default())
	restore()
	require.Equal(t, orig, Default())
}

func TestWebhookPublisher(t *testing.T) {
	var (
		got       Event
		signature string
		validSig  bool
		hits      int
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		body, _ := io.ReadAll(r.Body)
		signature = r.Header.Get(SignatureHeader)
		validSig = Sign("k", body) == signature
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	pub := NewWebhookPublisher(resty.New().SetTimeout(time.Second), srv.URL, "k")
	require.NoError(t, pub.Publish(context.Background(), ChannelVoting, NewEvent(TypeVoteCast, map[string]any{"project_id": 3})))
	require.Equal(t, TypeVoteCast, got.Type)
	require.Equal(t, ChannelVoting, got.Channel)
	require.NotEmpty(t, signature)
	require.True(t, validSig)

	require.NoError(t, pub.Publish(context.Background(), ChannelVoting, NewEvent(TypePresence, nil)))
	require.Equal(t, 1, hits)
}

func TestWebhookPublisherStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	pub := NewWebhookPublisher(resty.New(), srv.URL, "")
	require.Error(t, pub.Publish(context.Background(), ChannelAdmin, NewEvent(TypeBroadcast, "x")))
}
