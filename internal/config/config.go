package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

func Load() (*Config, error) {
	statsDB := os.Getenv("OVALMIND_STATS_DB")
	if statsDB == "" {
		statsDB = "data/cricket_stats.db"
	}

	newsDB := os.Getenv("OVALMIND_NEWS_DB")
	if newsDB == "" {
		newsDB = "data/cricket_news.db"
	}

	newsConfig, err := loadNewsConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		StatsDBPath: statsDB,
		NewsDBPath:  newsDB,
		LLM:         loadLLMConfig(),
		Embedder:    loadEmbedderConfig(),
		News:        newsConfig,
		Search:      loadSearchConfig(),
		Pipeline:    loadPipelineConfig(),
		ETL:         loadETLConfig(),
	}, nil
}

func loadLLMConfig() LLMConfig {
	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = DetectProvider()
	}

	return LLMConfig{
		Provider: provider,
		APIKey:   apiKeyFor(provider),
		Model:    os.Getenv("LLM_MODEL"),
		BaseURL:  os.Getenv("LLM_BASE_URL"),
	}
}

// DetectProvider picks an LLM provider from whichever API key is set.
func DetectProvider() string {
	if os.Getenv("ANTHROPIC_API_KEY") != "" {
		return "claude"
	}
	if os.Getenv("OPENAI_API_KEY") != "" {
		return "openai"
	}
	return "ollama"
}

func apiKeyFor(provider string) string {
	switch provider {
	case "claude":
		return os.Getenv("ANTHROPIC_API_KEY")
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	default:
		return os.Getenv("LLM_API_KEY")
	}
}

func loadEmbedderConfig() EmbedderConfig {
	provider := os.Getenv("EMBEDDER_PROVIDER")
	if provider == "" {
		provider = "ollama"
	}

	return EmbedderConfig{
		Provider:   provider,
		BaseURL:    os.Getenv("EMBEDDER_URL"),
		Model:      os.Getenv("EMBEDDER_MODEL"),
		Dimensions: getInt("EMBEDDER_DIMENSIONS", 768),
	}
}

func loadNewsConfig() (NewsConfig, error) {
	lang := os.Getenv("GNEWS_LANG")
	if lang == "" {
		lang = "en"
	}

	timeout, err := getDuration("NEWS_FETCH_TIMEOUT", "15s")
	if err != nil {
		return NewsConfig{}, err
	}

	return NewsConfig{
		APIKey:       os.Getenv("GNEWS_API_KEY"),
		BaseURL:      os.Getenv("GNEWS_BASE_URL"),
		Lang:         lang,
		MaxArticles:  getInt("NEWS_MAX_ARTICLES", 10),
		FetchTimeout: timeout,
	}, nil
}

func loadSearchConfig() SearchConfig {
	minScore := 0.0
	if v, err := strconv.ParseFloat(os.Getenv("SEARCH_MIN_SCORE"), 64); err == nil && v > 0 {
		minScore = v
	}

	return SearchConfig{
		TopK:     getInt("SEARCH_TOP_K", 5),
		MinScore: minScore,
	}
}

func loadPipelineConfig() PipelineConfig {
	keywordsPath := os.Getenv("PIPELINE_KEYWORDS")
	if keywordsPath == "" {
		keywordsPath = "config/keywords.yaml"
	}

	return PipelineConfig{
		KeywordsPath: keywordsPath,
		MaxArticles:  getInt("PIPELINE_MAX_ARTICLES", 50),
		Schedule:     os.Getenv("PIPELINE_SCHEDULE"),
	}
}

func loadETLConfig() ETLConfig {
	csvDir := os.Getenv("ETL_CSV_DIR")
	if csvDir == "" {
		csvDir = "data/csv"
	}

	bronzeDB := os.Getenv("ETL_BRONZE_DB")
	if bronzeDB == "" {
		bronzeDB = "data/cricket_stats_bronze.db"
	}

	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")

	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "minio:9000"
	}

	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "ovalmind-bronze"
	}

	return ETLConfig{
		CSVDir:       csvDir,
		BronzeDBPath: bronzeDB,
		Minio: MinioConfig{
			Enabled:   accessKey != "" && secretKey != "",
			Endpoint:  endpoint,
			AccessKey: accessKey,
			SecretKey: secretKey,
			Bucket:    bucket,
			UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		},
	}
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func getDuration(key, fallback string) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		raw = fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, raw)
	}
	return d, nil
}
