package config

import "time"

type Config struct {
	StatsDBPath string
	NewsDBPath  string
	LLM         LLMConfig
	Embedder    EmbedderConfig
	News        NewsConfig
	Search      SearchConfig
	Pipeline    PipelineConfig
	ETL         ETLConfig
}

type LLMConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

type EmbedderConfig struct {
	Provider   string
	BaseURL    string
	Model      string
	Dimensions int
}

type NewsConfig struct {
	APIKey       string
	BaseURL      string
	Lang         string
	MaxArticles  int
	FetchTimeout time.Duration
}

type SearchConfig struct {
	TopK     int
	MinScore float64
}

type PipelineConfig struct {
	KeywordsPath string
	MaxArticles  int
	Schedule     string
}

// ETLConfig drives the bronze/silver stats pipeline. When MinIO credentials
// are present the bronze stage pulls CSVs from the bucket instead of CSVDir.
type ETLConfig struct {
	CSVDir       string
	BronzeDBPath string
	Minio        MinioConfig
}

type MinioConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}
