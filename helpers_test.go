package main

import (
	"bytes"
	"log"
	"os"
	"sync"
)

// TestHelper provides utilities for testing
type TestHelper struct {
	originalEnv map[string]string
	logBuffer   *syncBuffer
}

// syncBuffer lets the server goroutine and the test share the log output.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

var configEnvVars = []string{
	EnvConfigFile, EnvPort, EnvLogLevel, EnvDataFile,
	EnvTemplateDir, EnvPipelineEnabled, EnvPipelineDir,
}

// SetupTestEnv clears the server's environment variables and captures logs
func SetupTestEnv() *TestHelper {
	helper := &TestHelper{
		originalEnv: make(map[string]string),
		logBuffer:   &syncBuffer{},
	}

	for _, envVar := range configEnvVars {
		helper.originalEnv[envVar] = os.Getenv(envVar)
		os.Unsetenv(envVar)
	}

	log.SetOutput(helper.logBuffer)

	return helper
}

// RestoreEnv restores the original environment and log output
func (h *TestHelper) RestoreEnv() {
	for key, value := range h.originalEnv {
		if value == "" {
			os.Unsetenv(key)
		} else {
			os.Setenv(key, value)
		}
	}
	log.SetOutput(os.Stderr)
}

// SetEnv sets an environment variable for testing
func (h *TestHelper) SetEnv(key, value string) {
	os.Setenv(key, value)
}

// GetLogs returns the captured log output
func (h *TestHelper) GetLogs() string {
	return h.logBuffer.String()
}

// ClearLogs clears the log buffer
func (h *TestHelper) ClearLogs() {
	h.logBuffer.Reset()
}
