package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// readPassword and isTerminal are test seams for golang.org/x/term.
// In tests you can replace them with stubs to avoid touching the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// ClearValue is typed at an optional prompt to erase the current value.
const ClearValue = "-"

const dateLayout = "2006-01-02"

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The surrounding whitespace is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	return readLine(reader)
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints a password prompt to w and reads a password without
// echo when stdin is a terminal. Otherwise the next line of reader is used,
// which keeps scripted input working.
func GetPassword(reader *bufio.Reader, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return "", err
	}

	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		return readLine(reader)
	}

	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// GetOptional shows the current value and returns it unchanged when the
// answer is empty. ClearValue yields "".
func GetOptional(reader *bufio.Reader, prompt, current string, w io.Writer) (string, error) {
	answer, err := GetSimpleText(reader, fmt.Sprintf("%s [%s]", prompt, current), w)
	if err != nil {
		return "", err
	}
	switch answer {
	case "":
		return current, nil
	case ClearValue:
		return "", nil
	}
	return answer, nil
}

// GetChoice asks until the answer is one of options. An empty answer
// selects def.
func GetChoice(reader *bufio.Reader, prompt string, options []string, def string, w io.Writer) (string, error) {
	full := fmt.Sprintf("%s (%s)", prompt, strings.Join(options, "/"))
	if def != "" {
		full += fmt.Sprintf(" [%s]", def)
	}

	for {
		answer, err := GetSimpleText(reader, full, w)
		if err != nil {
			return "", err
		}
		if answer == "" {
			return def, nil
		}
		for _, o := range options {
			if strings.EqualFold(answer, o) {
				return o, nil
			}
		}
		fmt.Fprintf(w, "Please choose one of: %s\n", strings.Join(options, ", "))
	}
}

// GetYesNo asks a y/n question. An empty answer selects def.
func GetYesNo(reader *bufio.Reader, prompt string, def bool, w io.Writer) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	for {
		answer, err := GetSimpleText(reader, fmt.Sprintf("%s [%s]", prompt, hint), w)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(w, "Please answer y or n")
	}
}

// GetDate reads a YYYY-MM-DD date as midnight UTC. An empty answer keeps
// current, ClearValue returns nil.
func GetDate(reader *bufio.Reader, prompt string, current *time.Time, w io.Writer) (*time.Time, error) {
	shown := ""
	if current != nil {
		shown = current.UTC().Format(dateLayout)
	}

	for {
		answer, err := GetSimpleText(reader, fmt.Sprintf("%s (YYYY-MM-DD) [%s]", prompt, shown), w)
		if err != nil {
			return nil, err
		}
		switch answer {
		case "":
			return current, nil
		case ClearValue:
			return nil, nil
		}
		d, err := time.ParseInLocation(dateLayout, answer, time.UTC)
		if err == nil {
			return &d, nil
		}
		fmt.Fprintln(w, "Invalid date, expected YYYY-MM-DD")
	}
}
