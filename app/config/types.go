package config

// Config is the application configuration file: polled sources, schedule,
// summarization endpoint and notification channels.
type Config struct {
	Feeds    []Source       `yaml:"feeds"`
	Schedule ScheduleConfig `yaml:"schedule"`
	LLM      LLMConfig      `yaml:"llm"`
	Notify   NotifyConfig   `yaml:"notify"`
}

// Source is one polled feed.
type Source struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
}

type ScheduleConfig struct {
	IntervalMinutes int `yaml:"interval_minutes"`
	MaxAgeHours     int `yaml:"max_age_hours"`
	MaxItemsPerRun  int `yaml:"max_items_per_run"`
}

// LLMConfig points at an OpenAI-compatible chat completion endpoint.
type LLMConfig struct {
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

type NotifyConfig struct {
	Feishu   FeishuConfig   `yaml:"feishu"`
	Telegram TelegramConfig `yaml:"telegram"`
	Email    EmailConfig    `yaml:"email"`
}

type FeishuConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`
}

type EmailConfig struct {
	Enabled  bool   `yaml:"enabled"`
	SMTPHost string `yaml:"smtp_host"`
	SMTPPort int    `yaml:"smtp_port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	To       string `yaml:"to"`
}
