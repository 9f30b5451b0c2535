package constants

import (
	"os"
	"strings"
	"time"
)

func GetOutputDir() string {
	path := os.Getenv("OUTPUT_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

func GetMediaDir() string {
	path := os.Getenv("MEDIA_PATH")
	if path != "" {
		return path
	}
	return "."
}

func GetPort() string {
	port := os.Getenv("PORT")
	if port != "" {
		return port
	}
	return "8000"
}

func GetFrontendURLs() []string {
	urls := os.Getenv("FRONTEND_URLS")
	if urls == "" {
		return []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	var res []string
	for _, u := range strings.Split(urls, ",") {
		if u = strings.TrimSpace(u); u != "" {
			res = append(res, u)
		}
	}
	return res
}

func GetProcessingTimeout() time.Duration {
	d, err := time.ParseDuration(os.Getenv("PROCESSING_TIMEOUT"))
	if err != nil || d <= 0 {
		return 300 * time.Second
	}
	return d
}

const DefaultTuning = "Standard"

// 50 ms, in seconds
const DefaultGroupingWindow = 0.05

const DefaultMaxStretch = 4

const (
	DefaultSpanWeight     = 1.0
	DefaultMovementWeight = 1.5
	DefaultStringWeight   = 0.5
)

// cost added per fret a chord stretches beyond the max stretch
const DefaultStretchPenalty = 10.0

const (
	MinFret = 0
	MaxFret = 24
)

const MaxUploadSize = 50 * 1024 * 1024

// zero-based channel 10
const DrumChannel = 9

const DefaultQuietPeriod = 2 * time.Second

func GetDynamoEndpoint() string {
	return os.Getenv("DYNAMODB_ENDPOINT")
}

func GetDynamoTable() string {
	table := os.Getenv("DYNAMODB_TABLE")
	if table != "" {
		return table
	}
	return "fretdex-jobs"
}

func GetDynamoRegion() string {
	region := os.Getenv("AWS_REGION")
	if region != "" {
		return region
	}
	return "localhost"
}
