package push

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/ArtemFray/berlin-cleanup-app/internal/config"
	"github.com/ArtemFray/berlin-cleanup-app/internal/models"
	"github.com/google/uuid"
)

// Payload is the wire format delivered to every subscription of a broadcast.
type Payload struct {
	Title string      `json:"title"`
	Body  string      `json:"body"`
	Icon  string      `json:"icon"`
	Badge string      `json:"badge"`
	Data  PayloadData `json:"data"`
}

type PayloadData struct {
	NotificationID uuid.UUID  `json:"notificationId"`
	EventID        *uuid.UUID `json:"eventId"`
}

// Summary tallies the outcome of a bulk dispatch.
type Summary struct {
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
	Total      int `json:"total"`
}

// Client sends Web Push messages signed with the configured VAPID key pair.
type Client struct {
	publicKey  string
	privateKey string
	subject    string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		publicKey:  cfg.VAPIDPublicKey,
		privateKey: cfg.VAPIDPrivateKey,
		subject:    cfg.VAPIDSubject,
		httpClient: &http.Client{Timeout: cfg.PushTimeout},
	}
}

// Enabled reports whether a VAPID key pair is configured. When it is not,
// broadcasts still create inbox rows but no push traffic is sent.
func (c *Client) Enabled() bool {
	return c.publicKey != "" && c.privateKey != ""
}

// Send delivers one payload to one subscription. Push services signal
// failure with a status code rather than a transport error, so non-2xx
// responses are reported as errors too.
func (c *Client) Send(sub *models.PushSubscription, payload *Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	resp, err := webpush.SendNotification(body, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      c.subject,
		VAPIDPublicKey:  c.publicKey,
		VAPIDPrivateKey: c.privateKey,
		TTL:             60,
		HTTPClient:      c.httpClient,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("push endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// SendBulk dispatches the payload to every subscription concurrently. Each
// delivery is independent; one endpoint failing or hanging does not block
// the others, and failures are tallied rather than retried.
func (c *Client) SendBulk(subs []models.PushSubscription, payload *Payload) Summary {
	summary := Summary{Total: len(subs)}
	if len(subs) == 0 {
		return summary
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	start := time.Now()
	for i := range subs {
		wg.Add(1)
		go func(sub *models.PushSubscription) {
			defer wg.Done()
			err := c.Send(sub, payload)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Failed++
			} else {
				summary.Successful++
			}
		}(&subs[i])
	}
	wg.Wait()

	if summary.Failed > 0 {
		slog.Warn("push dispatch finished with failures",
			"successful", summary.Successful,
			"failed", summary.Failed,
			"total", summary.Total,
			"elapsed", time.Since(start).String())
	}
	return summary
}
