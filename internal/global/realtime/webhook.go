package realtime

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// SignatureHeader 请求体的 HMAC-SHA256，Secret 为空时不带
const SignatureHeader = "X-Vote-Signature"

// WebhookPublisher 把事件 POST 到外部地址，比如现场大屏
type WebhookPublisher struct {
	client *resty.Client
	url    string
	secret string
}

func NewWebhookPublisher(client *resty.Client, url, secret string) *WebhookPublisher {
	return &WebhookPublisher{client: client, url: url, secret: secret}
}

// Publish 在线人数变化太频繁，不推给外部
func (w *WebhookPublisher) Publish(ctx context.Context, channel string, ev Event) error {
	if ev.Type == TypePresence {
		return nil
	}
	ev.Channel = channel
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	req := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if w.secret != "" {
		req.SetHeader(SignatureHeader, Sign(w.secret, body))
	}
	resp, err := req.Post(w.url)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("webhook %s: status %d", w.url, resp.StatusCode())
	}
	return nil
}

func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
