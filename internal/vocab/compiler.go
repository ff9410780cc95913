package vocab

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// DefaultMaxOutput is the default ceiling on compiler output. Full utility
// vocabularies with every variant enabled reach about 24 MiB.
const DefaultMaxOutput = 25 << 20

// Compiler turns an extraction request into class names.
type Compiler interface {
	Compile(req Request) ([]string, error)
	// Command identifies the compiler for fingerprinting.
	Command() []string
}

// ProcessCompiler runs an external program that reads the request as JSON on
// stdin and writes a JSON array of class names to stdout.
type ProcessCompiler struct {
	// Args is the program followed by its arguments.
	Args []string
	// MaxOutput bounds stdout; zero means DefaultMaxOutput.
	MaxOutput int64
	// Env is appended to the current environment.
	Env []string
}

// NewProcessCompiler returns a compiler running command.
func NewProcessCompiler(command []string, maxOutput int64) *ProcessCompiler {
	return &ProcessCompiler{Args: command, MaxOutput: maxOutput}
}

// DefaultCommand runs the current executable's extract subcommand.
func DefaultCommand() ([]string, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}
	return []string{exe, "extract"}, nil
}

func (p *ProcessCompiler) Command() []string {
	return p.Args
}

func (p *ProcessCompiler) Compile(req Request) ([]string, error) {
	if len(p.Args) == 0 {
		return nil, &ExtractionError{Err: ErrCompilerFailed, Detail: "no compiler command configured"}
	}

	input, err := req.Encode()
	if err != nil {
		return nil, err
	}

	limit := p.MaxOutput
	if limit <= 0 {
		limit = DefaultMaxOutput
	}

	stdout := &boundedBuffer{limit: limit}
	var stderr bytes.Buffer

	cmd := exec.Command(p.Args[0], p.Args[1:]...)
	cmd.Dir = req.Cwd
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = stdout
	cmd.Stderr = &stderr
	if len(p.Env) > 0 {
		cmd.Env = append(os.Environ(), p.Env...)
	}

	if err := cmd.Run(); err != nil {
		if stdout.exceeded {
			return nil, &ExtractionError{
				Err:    ErrOutputTooLarge,
				Detail: fmt.Sprintf("more than %d bytes written by %s", limit, p.Args[0]),
			}
		}
		detail := stderr.String()
		if detail == "" {
			detail = err.Error()
		}
		return nil, &ExtractionError{Err: ErrCompilerFailed, Detail: detail}
	}

	return decodeResponse(stdout.Bytes())
}

func decodeResponse(data []byte) ([]string, error) {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &ExtractionError{Err: ErrInvalidResponse, Detail: "expected a JSON array of strings, got " + typeErr.Value}
		}
		return nil, &ExtractionError{Err: ErrInvalidResponse, Detail: err.Error()}
	}
	if names == nil {
		// JSON null decodes without error
		return nil, &ExtractionError{Err: ErrInvalidResponse, Detail: "expected a JSON array of strings, got null"}
	}
	return names, nil
}

// boundedBuffer fails writes past limit so the child sees a broken pipe
// instead of the parent buffering without bound.
type boundedBuffer struct {
	buf      bytes.Buffer
	limit    int64
	exceeded bool
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	if int64(b.buf.Len())+int64(len(p)) > b.limit {
		b.exceeded = true
		return 0, ErrOutputTooLarge
	}
	return b.buf.Write(p)
}

func (b *boundedBuffer) Bytes() []byte {
	return b.buf.Bytes()
}
