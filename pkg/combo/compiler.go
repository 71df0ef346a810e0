package combo

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Compile turns the segments of one combo line into command lines. line is
// the original text and decides the release set: every distinct key found
// anywhere in it is released once, in first-seen order.
func Compile(segments []Segment, line string) Batch {
	release := releaseLine(line)
	if len(release) == 0 {
		// Hold markers alone produce nothing
		return nil
	}

	batch := make(Batch, 0, len(segments)+1)
	for _, seg := range segments {
		if seg.IsEmpty() {
			continue
		}
		if seg.Hold {
			batch = append(batch, CommandLine{Hold()})
			continue
		}
		press := make(CommandLine, 0, len(seg.Keys))
		for _, k := range seg.Keys {
			id, _ := Actuator(k)
			press = append(press, Press(id))
		}
		batch = append(batch, press)
	}
	return append(batch, release)
}

// CompileLine lexes and compiles a single combo line.
func CompileLine(line string) Batch {
	line = strings.TrimSpace(line)
	return Compile(Lex(line), line)
}

func releaseLine(line string) CommandLine {
	var (
		seen    = make(map[Key]bool, len(keyOrder))
		release CommandLine
	)
	for _, r := range line {
		k := Key(r)
		id, ok := Actuator(k)
		if !ok || seen[k] {
			continue
		}
		seen[k] = true
		release = append(release, Release(id))
	}
	return release
}

// MaxLineLength is the longest script or command file line accepted, in bytes.
const MaxLineLength = 16 << 20

// Compiled is the outcome of compiling one script line.
type Compiled struct {
	LineNum int    // 1-based line number in the script
	Text    string // trimmed combo text
	Batch   Batch
}

// CompileScript compiles every non-blank line of a combo script, calling fn
// for each in order. Blank lines are skipped without a callback.
func CompileScript(r io.Reader, fn func(Compiled) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		c := Compiled{
			LineNum: lineNum,
			Text:    text,
			Batch:   Compile(Lex(text), text),
		}
		if err := fn(c); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read combo script: %w", err)
	}
	return nil
}
