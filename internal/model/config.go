package model

import "time"

// Config is the typed configuration for a catalyst run.
// Populated from defaults, ~/.catalyst/config.yaml and CATALYST_* env vars.
type Config struct {
	HTTP        HTTPConfig    `yaml:"http"`
	Cache       CacheConfig   `yaml:"cache"`
	Paths       PathsConfig   `yaml:"paths"`
	Extract     ExtractConfig `yaml:"extract"`
	Feeds       []string      `yaml:"feeds"`
	Concurrency Concurrency   `yaml:"concurrency"`
	LLM         LLMConfig     `yaml:"llm"`
	Output      OutputConfig  `yaml:"output"`
}

// HTTPConfig controls the EDGAR and RSS collaborators.
type HTTPConfig struct {
	UserAgent         string        `yaml:"user_agent"`
	Timeout           time.Duration `yaml:"timeout"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	MaxRetries        int           `yaml:"max_retries"`
}

// CacheConfig controls the raw filing-text cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// PathsConfig names the tabular inputs and outputs of a run.
type PathsConfig struct {
	OutDir       string `yaml:"out_dir"`
	MasterFile   string `yaml:"master_file"`
	CalendarFile string `yaml:"calendar_file"`
	MentionsFile string `yaml:"mentions_file"`
	NewsFile     string `yaml:"news_file"`
	WorklistFile string `yaml:"worklist_file"`
	EventsFile   string `yaml:"events_file"`
	RankedFile   string `yaml:"ranked_file"`
	UniverseFile string `yaml:"universe_file"`
	StateFile    string `yaml:"state_file"`
	BriefFile    string `yaml:"brief_file"`
	AlertsFile   string `yaml:"alerts_file"`
}

// ExtractConfig tunes the extraction engine.
type ExtractConfig struct {
	HorizonDays  int `yaml:"horizon_days"`  // forward-looking window for catalyst dates
	WindowPad    int `yaml:"window_pad"`    // chars of context kept around an anchor hit
	MaxWindows   int `yaml:"max_windows"`   // anchor windows scanned per document
	MaxDocs      int `yaml:"max_docs"`      // submission documents scanned per filing
	ContextLimit int `yaml:"context_limit"` // chars of supporting excerpt kept on a record
}

// Concurrency controls the extraction worker pool.
type Concurrency struct {
	Workers int `yaml:"workers"`
}

// LLMConfig configures the optional brief summarizer. Disabled unless a
// provider is named; never affects extraction or ranking.
type LLMConfig struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"`
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout_seconds"`
	MaxTokens int    `yaml:"max_tokens"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			UserAgent:         "catalyst/0.1 (+https://github.com/hmtrong/catalyst)",
			Timeout:           60 * time.Second,
			MaxBodyBytes:      20_000_000,
			RequestsPerSecond: 1.25,
			Burst:             2,
			MaxRetries:        7,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "data/cache/sec_filing_txt",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   30 * 24 * time.Hour,
		},
		Paths: PathsConfig{
			OutDir:       "out",
			MasterFile:   "out/catalyst_calendar_master.csv",
			CalendarFile: "out/catalyst_calendar.csv",
			MentionsFile: "out/mentions.csv",
			NewsFile:     "out/news_catalysts.csv",
			WorklistFile: "out/sec_worklist.csv",
			EventsFile:   "out/sec_events.csv",
			RankedFile:   "out/ranked_watchlist.csv",
			UniverseFile: "data/universe_biopharma.csv",
			StateFile:    "data/cache/alert_state.json",
			BriefFile:    "out/daily_brief.md",
			AlertsFile:   "out/alerts.md",
		},
		Extract: ExtractConfig{
			HorizonDays:  730,
			WindowPad:    1400,
			MaxWindows:   8,
			MaxDocs:      6,
			ContextLimit: 500,
		},
		Concurrency: Concurrency{Workers: 4},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 800,
		},
	}
}
