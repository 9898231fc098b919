package speech

import (
	"bufio"
	"context"
	"os/exec"
	"strings"
)

// ExecRecognizer adapts an external speech-to-text command. The command is
// expected to record from the microphone and print interim transcript lines
// on stdout; the last line printed before exit is the final transcript.
// The recognition language is passed in $LIA_LANG.
type ExecRecognizer struct {
	command string
}

// NewExecRecognizer probes the configured command. An empty command means
// no recognizer is installed: callers get a nil engine and must treat the
// capability as unavailable.
func NewExecRecognizer(command string) *ExecRecognizer {
	if strings.TrimSpace(command) == "" {
		return nil
	}
	return &ExecRecognizer{command: command}
}

func (r *ExecRecognizer) Listen(ctx context.Context, lang string) (<-chan EngineEvent, func(), error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", r.command)
	cmd.Env = append(cmd.Environ(), "LIA_LANG="+lang)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, nil, err
	}

	events := make(chan EngineEvent, 32)
	go func() {
		defer close(events)
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			events <- EngineEvent{Transcript: line}
		}
		if err := cmd.Wait(); err != nil && ctx.Err() == nil {
			events <- EngineEvent{Err: err}
		}
	}()

	abort := func() { _ = cmd.Process.Kill() }
	return events, abort, nil
}

// EspeakSynthesizer speaks through espeak-ng.
type EspeakSynthesizer struct {
	binary string
}

// NewEspeakSynthesizer probes for espeak-ng on PATH; nil when absent.
func NewEspeakSynthesizer() *EspeakSynthesizer {
	path, err := exec.LookPath("espeak-ng")
	if err != nil {
		return nil
	}
	return &EspeakSynthesizer{binary: path}
}

// Voices parses `espeak-ng --voices` output:
//
//	Pty Language       Age/Gender VoiceName         File
//	 5  hi              --/M      Hindi             inc/hi
func (s *EspeakSynthesizer) Voices() []Voice {
	out, err := exec.Command(s.binary, "--voices").Output()
	if err != nil {
		return nil
	}

	var voices []Voice
	lines := strings.Split(string(out), "\n")
	for i, line := range lines {
		if i == 0 { // header
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}
		voices = append(voices, Voice{
			URI:  "espeak://" + fields[4],
			Name: fields[3],
			Lang: fields[1],
		})
	}
	return voices
}

func (s *EspeakSynthesizer) Speak(text string, voice Voice) (Utterance, error) {
	args := []string{}
	if file, ok := strings.CutPrefix(voice.URI, "espeak://"); ok && file != "" {
		args = append(args, "-v", file)
	}
	args = append(args, "--", text)

	cmd := exec.Command(s.binary, args...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
		close(done)
	}()
	return &execUtterance{done: done, kill: func() { _ = cmd.Process.Kill() }}, nil
}

type execUtterance struct {
	done chan error
	kill func()
}

func (u *execUtterance) Done() <-chan error { return u.done }
func (u *execUtterance) Cancel()            { u.kill() }
