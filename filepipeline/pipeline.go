// Package filepipeline runs the text-file jobs done once before the server
// starts. Every step is sequential and the first error stops the run.
package filepipeline

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyPointer is returned when the pointer file names no file.
var ErrEmptyPointer = errors.New("pointer file is empty")

// Config names the files used by Run. Relative names are resolved in Dir.
type Config struct {
	Dir string `yaml:"dir"`

	GreetingFile string `yaml:"greeting_file"`
	Greeting     string `yaml:"greeting"`

	ConcatInputs []string `yaml:"concat_inputs"`
	ConcatOutput string   `yaml:"concat_output"`

	PointerFile  string `yaml:"pointer_file"`
	AppendixFile string `yaml:"appendix_file"`
	ChainOutput  string `yaml:"chain_output"`
}

// DefaultConfig returns the file names used by the shipped txt directory.
func DefaultConfig() Config {
	return Config{
		Dir:          "txt",
		GreetingFile: "greeting.txt",
		Greeting:     "Hello from the farmstand!",
		ConcatInputs: []string{"input.txt", "second.txt"},
		ConcatOutput: "output.txt",
		PointerFile:  "start.txt",
		AppendixFile: "append.txt",
		ChainOutput:  "final.txt",
	}
}

func (c Config) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Dir, name)
}

// Run writes the greeting, then the concatenation, then the chained read.
// Steps whose output file is not configured are skipped.
func Run(c Config) error {
	if c.GreetingFile != "" {
		if err := WriteGreeting(c.path(c.GreetingFile), c.Greeting); err != nil {
			return err
		}
		log.Printf("[pipeline] wrote greeting to %s", c.path(c.GreetingFile))
	}

	if c.ConcatOutput != "" {
		inputs := make([]string, len(c.ConcatInputs))
		for i, in := range c.ConcatInputs {
			inputs[i] = c.path(in)
		}
		if err := Concat(c.path(c.ConcatOutput), inputs...); err != nil {
			return err
		}
		log.Printf("[pipeline] concatenated %d files into %s", len(inputs), c.path(c.ConcatOutput))
	}

	if c.ChainOutput != "" {
		if err := Chain(c.Dir, c.path(c.PointerFile), c.path(c.AppendixFile), c.path(c.ChainOutput)); err != nil {
			return err
		}
		log.Printf("[pipeline] chained read written to %s", c.path(c.ChainOutput))
	}
	return nil
}

// WriteGreeting writes text to path.
func WriteGreeting(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write greeting: %w", err)
	}
	return nil
}

// Concat reads inputs in order and writes them to out joined by newlines.
func Concat(out string, inputs ...string) error {
	parts := make([]string, 0, len(inputs))
	for _, in := range inputs {
		b, err := os.ReadFile(in)
		if err != nil {
			return fmt.Errorf("concat: read %s: %w", in, err)
		}
		parts = append(parts, string(b))
	}
	if err := os.WriteFile(out, []byte(strings.Join(parts, "\n")), 0o644); err != nil {
		return fmt.Errorf("concat: write %s: %w", out, err)
	}
	return nil
}

// Chain reads pointer, whose content names <dir>/<content>.txt, reads that
// file and then appendix, and writes the two joined by a newline to out.
// Each read depends on the one before it.
func Chain(dir, pointer, appendix, out string) error {
	b, err := os.ReadFile(pointer)
	if err != nil {
		return fmt.Errorf("chain: read pointer %s: %w", pointer, err)
	}
	name := strings.TrimSpace(string(b))
	if name == "" {
		return fmt.Errorf("chain: %s: %w", pointer, ErrEmptyPointer)
	}

	next := filepath.Join(dir, name+".txt")
	second, err := os.ReadFile(next)
	if err != nil {
		return fmt.Errorf("chain: read %s: %w", next, err)
	}

	third, err := os.ReadFile(appendix)
	if err != nil {
		return fmt.Errorf("chain: read appendix %s: %w", appendix, err)
	}

	if err := os.WriteFile(out, []byte(string(second)+"\n"+string(third)), 0o644); err != nil {
		return fmt.Errorf("chain: write %s: %w", out, err)
	}
	return nil
}
