// Package realtime 投票计数、在线人数和管理员广播的尽力而为推送
//
// 本进程内由 Hub 分发给 SSE 连接；配置了 Redis 时事件先发到 Redis 频道，
// 每个实例的 Relay 再转进自己的 Hub，多实例部署也能收到。
package realtime

import (
	"context"
	"errors"
	"sync"
	"time"
)

const (
	ChannelVoting = "voting"
	ChannelAdmin  = "admin"
)

const (
	TypeVoteCast        = "vote_cast"
	TypeVoteDeleted     = "vote_deleted"
	TypeSettingsChanged = "settings_changed"
	TypePresence        = "presence"
	TypeBroadcast       = "broadcast"
)

type Event struct {
	Type    string    `json:"type"`
	Channel string    `json:"channel"`
	Data    any       `json:"data,omitempty"`
	Time    time.Time `json:"time"`
}

func NewEvent(typ string, data any) Event {
	return Event{Type: typ, Data: data, Time: time.Now()}
}

type Publisher interface {
	Publish(ctx context.Context, channel string, ev Event) error
}

// PublisherFunc 方便测试里直接用函数当 Publisher
type PublisherFunc func(ctx context.Context, channel string, ev Event) error

func (f PublisherFunc) Publish(ctx context.Context, channel string, ev Event) error {
	return f(ctx, channel, ev)
}

// multiPublisher 依次投递，错误合并返回，单个失败不影响其它
type multiPublisher []Publisher

func (m multiPublisher) Publish(ctx context.Context, channel string, ev Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, channel, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func Multi(publishers ...Publisher) Publisher {
	out := make(multiPublisher, 0, len(publishers))
	for _, p := range publishers {
		if p != nil {
			out = append(out, p)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

var (
	mu       sync.RWMutex
	localHub = NewHub(DefaultBufferSize)
)

var publisher Publisher = localHub

// Default 当前进程使用的 Publisher，未初始化时只投递到本地 Hub
func Default() Publisher {
	mu.RLock()
	defer mu.RUnlock()
	return publisher
}

// SetDefault 返回恢复函数，测试里替换 Publisher 后用来还原
func SetDefault(p Publisher) (restore func()) {
	mu.Lock()
	prev := publisher
	publisher = p
	mu.Unlock()
	return func() {
		mu.Lock()
		publisher = prev
		mu.Unlock()
	}
}

// Local 本进程的 Hub，SSE 连接在这里订阅
func Local() *Hub {
	mu.RLock()
	defer mu.RUnlock()
	return localHub
}
