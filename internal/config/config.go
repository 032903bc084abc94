package config

import (
	"errors"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfighcl"
)

// ExitCodeBadConfig is the process exit status for missing required
// configuration, distinct from a generic failure.
const ExitCodeBadConfig = 2

type Config struct {
	TelegramBotToken    string        `hcl:"telegram_bot_token" env:"TELEGRAM_BOT_TOKEN" flag:"telegram-bot-token" usage:"bot credential used against the Telegram API"`
	TelegramChatID      string        `hcl:"telegram_chat_id" env:"TELEGRAM_CHAT_ID" flag:"telegram-chat-id" usage:"destination channel, @name or numeric chat id"`
	TelegramAdminChatID int64         `hcl:"telegram_admin_chat_id" env:"TELEGRAM_ADMIN_CHAT_ID" flag:"telegram-admin-chat-id" usage:"optional chat for error notifications"`
	FeedsCSV            string        `hcl:"feeds_csv" env:"FEEDS_CSV_URL" flag:"feeds-csv" usage:"feeds CSV URL or local path"`
	PostedFile          string        `hcl:"posted_file" env:"POSTED_JSON" flag:"posted-file" default:"posted.json" usage:"path of the posted-items ledger"`
	FuzzyThreshold      int           `hcl:"fuzzy_threshold" env:"FUZZY_THRESHOLD" flag:"fuzzy-threshold" default:"88" usage:"title similarity cutoff, 0-100"`
	PostDelay           time.Duration `hcl:"post_delay" env:"POST_DELAY" flag:"post-delay" default:"20s" usage:"pause after each successful post"`
	PollInterval        time.Duration `hcl:"poll_interval" env:"POLL_INTERVAL" flag:"poll-interval" default:"30m"`
	Once                bool          `hcl:"once" env:"ONCE" flag:"once" usage:"run a single sweep and exit"`
	HTTPTimeout         time.Duration `hcl:"http_timeout" env:"HTTP_TIMEOUT" flag:"http-timeout" default:"30s"`
	LogLevel            string        `hcl:"log_level" env:"LOG_LEVEL" flag:"log-level" default:"info"`
	AIType              string        `hcl:"ai_type" env:"AI_TYPE" flag:"ai-type" default:"textrank" usage:"summarizer: textrank, openai or ollama"`
	AIBaseURL           string        `hcl:"ai_base_url" env:"AI_BASE_URL" flag:"ai-base-url"`
	AIKey               string        `hcl:"ai_key" env:"AI_KEY" flag:"ai-key"`
	AIPrompt            string        `hcl:"ai_prompt" env:"AI_PROMPT" flag:"ai-prompt"`
	AIModel             string        `hcl:"ai_model" env:"AI_MODEL" flag:"ai-model" default:"llama3"`
	AITimeout           time.Duration `hcl:"ai_timeout" env:"AI_TIMEOUT" flag:"ai-timeout" default:"5m"`
}

// Load reads configuration from HCL files, environment variables, and
// command-line flags, in increasing order of precedence. The returned value
// is passed explicitly into the pipeline; there is no package-level state.
func Load() (Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		Files: []string{"./config.hcl", "./config.local.hcl", "$HOME/.config/feed-poster/config.hcl"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".hcl": aconfighcl.New(),
		},
	})

	if err := loader.Load(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports the first missing required setting. Callers exit with
// ExitCodeBadConfig before any network activity when this fails.
func (c Config) Validate() error {
	if c.TelegramBotToken == "" {
		return errors.New("telegram_bot_token is required (TELEGRAM_BOT_TOKEN)")
	}
	if c.TelegramChatID == "" {
		return errors.New("telegram_chat_id is required (TELEGRAM_CHAT_ID)")
	}
	if c.FeedsCSV == "" {
		return errors.New("feeds_csv is required (FEEDS_CSV_URL or -feeds-csv)")
	}
	return nil
}
