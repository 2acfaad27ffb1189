package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FFMPEG_BIN", "")
	t.Setenv("FFPROBE_BIN", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("FRAME_EXT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ffmpeg", cfg.FFmpegBin)
	assert.Equal(t, "ffprobe", cfg.FFprobeBin)
	assert.Equal(t, ".mp4", cfg.FrameExt)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FFMPEG_BIN", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("FFPROBE_BIN", "/opt/ffmpeg/bin/ffprobe")
	t.Setenv("DATA_DIR", "/var/lib/vidkit")
	t.Setenv("FRAME_EXT", ".MKV")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", cfg.FFmpegBin)
	assert.Equal(t, "/opt/ffmpeg/bin/ffprobe", cfg.FFprobeBin)
	assert.Equal(t, "/var/lib/vidkit", cfg.DataDir)
	assert.Equal(t, ".mkv", cfg.FrameExt)
}

func TestLoad_InvalidFrameExt(t *testing.T) {
	t.Setenv("FRAME_EXT", "mp4")

	_, err := Load()
	assert.Error(t, err)
}
