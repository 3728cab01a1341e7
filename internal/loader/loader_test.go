package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load program file", func(t *testing.T) {
		tmpFile := createTempFile(t, []byte{0x00, 0xE0, 0x12, 0x00})

		data, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, data, 4)
		assert.Equal(t, byte(0x00), data[0])
		assert.Equal(t, byte(0xE0), data[1])
		assert.Equal(t, byte(0x12), data[2])
	})

	t.Run("load maximum size program", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, chip8.MaxProgramSize))

		data, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, data, chip8.MaxProgramSize)
	})

	t.Run("error on oversized program", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, chip8.MaxProgramSize+1))

		_, err := New().Load(tmpFile)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, chip8.ErrProgramTooLarge))
	})

	t.Run("error on empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, nil)

		_, err := New().Load(tmpFile)
		assert.True(t, errors.Is(err, ErrEmptyProgram))
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		_, err := New().Load("/nonexistent/file.ch8")
		assert.Error(t, err)
		assert.ErrorContains(t, err, "opening file")
	})
}

func TestLoadFromBytes(t *testing.T) {
	loader := New()

	data, err := loader.LoadFromBytes([]byte{0x60, 0x01})
	assert.NoError(t, err)
	assert.Len(t, data, 2)

	_, err = loader.LoadFromBytes(nil)
	assert.True(t, errors.Is(err, ErrEmptyProgram))

	_, err = loader.LoadFromBytes(make([]byte, chip8.MaxProgramSize+1))
	assert.True(t, errors.Is(err, chip8.ErrProgramTooLarge))
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
