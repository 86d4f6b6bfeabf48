package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the format dates are typed and shown in.
const DateLayout = "2006-01-02"

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
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
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetTextOr works like GetSimpleText but returns current when the user
// enters an empty line. The current value is shown in the prompt.
func GetTextOr(reader *bufio.Reader, prompt, current string, w io.Writer) (string, error) {
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, current)
	}
	s, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return "", err
	}
	if s == "" {
		return current, nil
	}
	return s, nil
}

// GetDate reads a YYYY-MM-DD date in loc. An empty line keeps current when it
// is set; otherwise the user is asked again until the input parses.
func GetDate(reader *bufio.Reader, prompt string, current time.Time, loc *time.Location, w io.Writer) (time.Time, error) {
	shown := ""
	if !current.IsZero() {
		shown = current.Format(DateLayout)
	}
	for {
		s, err := GetTextOr(reader, prompt+" (YYYY-MM-DD)", shown, w)
		if err != nil {
			return time.Time{}, err
		}
		if s == "" {
			fmt.Fprintln(w, "A date is required")
			continue
		}
		t, err := time.ParseInLocation(DateLayout, s, loc)
		if err != nil {
			fmt.Fprintf(w, "Invalid date %q\n", s)
			continue
		}
		return t, nil
	}
}

// GetConfirm asks a yes/no question. Anything but y, yes, s or si declines.
func GetConfirm(reader *bufio.Reader, prompt string, w io.Writer) (bool, error) {
	s, err := GetSimpleText(reader, prompt+" (y/N)", w)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "y", "yes", "s", "si", "sí":
		return true, nil
	default:
		return false, nil
	}
}

// ParsePosition parses a 1-based list position.
func ParsePosition(s string, size int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > size {
		return 0, fmt.Errorf("%w: %q", errNoSuchPosition, s)
	}
	return n, nil
}
