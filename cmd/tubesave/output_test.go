package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imbecility/tubesave/pkg/models"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", formatDuration(0))
	assert.Equal(t, "3:33", formatDuration(213))
	assert.Equal(t, "1:01:05", formatDuration(3665))
}

func TestHumanBytes(t *testing.T) {
	assert.Equal(t, "512 B", humanBytes(512))
	assert.Equal(t, "1.5 KiB", humanBytes(1536))
	assert.Equal(t, "1.0 GiB", humanBytes(1<<30))
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, &models.VideoSummary{Title: "T", Author: "A", Duration: 61, Thumbnail: "https://i/x.jpg"})

	out := buf.String()
	assert.Contains(t, out, "T")
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "1:01")
	assert.Contains(t, out, "https://i/x.jpg")
}

func TestResolveOutputPath(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "Song.webm", resolveOutputPath("", "Song.webm"))
	assert.Equal(t, filepath.Join(dir, "Song.webm"), resolveOutputPath(dir, "Song.webm"))

	file := filepath.Join(dir, "custom.bin")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	assert.Equal(t, file, resolveOutputPath(file, "Song.webm"))
	assert.Equal(t, filepath.Join(dir, "new.m4a"), resolveOutputPath(filepath.Join(dir, "new.m4a"), "Song.webm"))
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := newVersionCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "tubesave dev\n", buf.String())
}
