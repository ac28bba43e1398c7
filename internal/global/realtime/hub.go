package realtime

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// DefaultBufferSize 每个订阅者的缓冲，满了之后新事件直接丢弃
const DefaultBufferSize = 32

type Hub struct {
	mu      sync.RWMutex
	subs    map[string]*Subscription
	bufSize int
	dropped atomic.Int64
}

func NewHub(bufSize int) *Hub {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	return &Hub{subs: make(map[string]*Subscription), bufSize: bufSize}
}

type Subscription struct {
	ID       string
	ch       chan Event
	channels map[string]struct{}
	hub      *Hub
	once     sync.Once
}

// Events 订阅关闭后 channel 也会被关闭
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s.ID)
		close(s.ch)
		s.hub.mu.Unlock()
	})
}

func (h *Hub) Subscribe(channels ...string) *Subscription {
	sub := &Subscription{
		ID:       uuid.NewString(),
		ch:       make(chan Event, h.bufSize),
		channels: make(map[string]struct{}, len(channels)),
		hub:      h,
	}
	for _, ch := range channels {
		sub.channels[ch] = struct{}{}
	}
	h.mu.Lock()
	h.subs[sub.ID] = sub
	h.mu.Unlock()
	return sub
}

// Publish 不阻塞：订阅者缓冲满时丢弃该订阅者的这条事件
func (h *Hub) Publish(_ context.Context, channel string, ev Event) error {
	ev.Channel = channel
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		if _, ok := sub.channels[channel]; !ok {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			h.dropped.Add(1)
		}
	}
	return nil
}

// Online 当前订阅者数量
func (h *Hub) Online() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// CloseAll 关闭所有订阅，服务退出时让长连接尽快返回
func (h *Hub) CloseAll() {
	h.mu.RLock()
	subs := make([]*Subscription, 0, len(h.subs))
	for _, sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()
	for _, sub := range subs {
		sub.Close()
	}
}
