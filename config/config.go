package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	FFmpegBin  string
	FFprobeBin string
	DataDir    string
	FrameExt   string
}

func Load() (*Config, error) {
	frameExt := getEnv("FRAME_EXT", ".mp4")
	if !strings.HasPrefix(frameExt, ".") {
		return nil, fmt.Errorf("invalid FRAME_EXT %q: must start with a dot", frameExt)
	}

	return &Config{
		FFmpegBin:  getEnv("FFMPEG_BIN", "ffmpeg"),
		FFprobeBin: getEnv("FFPROBE_BIN", "ffprobe"),
		DataDir:    getEnv("DATA_DIR", defaultDataDir()),
		FrameExt:   strings.ToLower(frameExt),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func defaultDataDir() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return ".vidkit"
	}
	return filepath.Join(cacheDir, "vidkit")
}
