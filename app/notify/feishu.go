package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"rssdigest/app/feed"
)

const sendTimeout = 10 * time.Second

// FeishuNotifier posts an interactive card to a Feishu group webhook.
type FeishuNotifier struct {
	webhookURL string
	client     *http.Client
}

func NewFeishuNotifier(webhookURL string) *FeishuNotifier {
	return &FeishuNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: sendTimeout},
	}
}

func (n *FeishuNotifier) Name() string {
	return "feishu"
}

func (n *FeishuNotifier) Send(ctx context.Context, item feed.Item, summary string) error {
	payload := map[string]any{
		"msg_type": "interactive",
		"card": map[string]any{
			"header": map[string]any{
				"title": map[string]any{
					"tag":     "plain_text",
					"content": fmt.Sprintf("📰 %s", item.FeedName),
				},
				"template": "blue",
			},
			"elements": []any{
				map[string]any{
					"tag": "div",
					"text": map[string]any{
						"tag":     "lark_md",
						"content": fmt.Sprintf("**%s**\n\n%s", item.Title, summary),
					},
				},
				map[string]any{
					"tag": "action",
					"actions": []any{
						map[string]any{
							"tag": "button",
							"text": map[string]any{
								"tag":     "plain_text",
								"content": "🔗 Read more",
							},
							"url":  item.URL,
							"type": "primary",
						},
					},
				},
				map[string]any{
					"tag": "note",
					"elements": []any{
						map[string]any{
							"tag":     "plain_text",
							"content": fmt.Sprintf("Category: %s", item.Category),
						},
					},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal card payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}

	// The webhook answers 200 even on rejection; the real verdict is in the
	// body, which uses either "code" or "StatusCode" depending on API version.
	var result struct {
		Code       *int   `json:"code"`
		StatusCode *int   `json:"StatusCode"`
		Msg        string `json:"msg"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode webhook response: %w", err)
	}

	if (result.Code != nil && *result.Code == 0) || (result.StatusCode != nil && *result.StatusCode == 0) {
		return nil
	}

	return fmt.Errorf("webhook rejected message: %s", result.Msg)
}
