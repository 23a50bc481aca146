package executor

import "strings"

// errorKeywords are the substrings that mark a line as an error report.
// ffmpeg has no machine-readable output, so this stays heuristic.
var errorKeywords = []string{
	"error", "failed", "invalid", "unable", "cannot",
	"unknown", "not found", "permission denied", "access denied",
}

// "Non-monotonous DTS" is a harmless muxer warning that would otherwise
// trip the keyword scan on some inputs.
const benignDTSWarning = "non-monotonous"

// splitter reassembles newline-terminated lines from arbitrarily split
// byte chunks, carrying the unterminated tail across reads.
type splitter struct {
	rest string
}

// feed appends chunk and returns every line completed by it, with any
// trailing carriage return stripped.
func (s *splitter) feed(chunk []byte) []string {
	buf := s.rest + string(chunk)
	var lines []string
	for {
		i := strings.IndexByte(buf, '\n')
		if i < 0 {
			break
		}
		lines = append(lines, strings.TrimSuffix(buf[:i], "\r"))
		buf = buf[i+1:]
	}
	s.rest = buf
	return lines
}

// flush hands back the trailing unterminated line, if any.
func (s *splitter) flush() (string, bool) {
	if s.rest == "" {
		return "", false
	}
	line := strings.TrimSuffix(s.rest, "\r")
	s.rest = ""
	return line, true
}

// isOverwritePrompt reports whether line is ffmpeg asking for permission
// to replace an existing output file.
func isOverwritePrompt(line string) bool {
	lower := strings.ToLower(line)

	// "File 'out.mp4' already exists. Overwrite? [y/N]"
	if strings.Contains(lower, "already exists") && strings.Contains(lower, "overwrite") {
		return true
	}
	if strings.Contains(lower, "overwrite?") || strings.Contains(lower, "overwrite (y/n)") {
		return true
	}
	// Localized builds on Chinese consoles prompt in Chinese.
	if strings.Contains(line, "已存在") && strings.Contains(line, "覆盖") {
		return true
	}
	return false
}

// isErrorLine reports whether line looks like an error report.
func isErrorLine(line string) bool {
	lower := strings.ToLower(line)
	if strings.Contains(lower, benignDTSWarning) {
		return false
	}
	for _, kw := range errorKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// isSuccessLine reports whether line is ffmpeg's end-of-run summary.
func isSuccessLine(line string) bool {
	lower := strings.ToLower(line)
	if strings.Contains(lower, "video:") &&
		strings.Contains(lower, "audio:") &&
		strings.Contains(lower, "subtitle:") {
		return true
	}
	return strings.Contains(lower, "muxing overhead")
}

// classifier folds the child's byte stream into the Result: transcript
// accumulation, the three pattern tests, and the prompt response hook.
type classifier struct {
	split   splitter
	out     strings.Builder
	res     *Result
	auto    func() bool // auto-overwrite policy, read per prompt
	respond func()      // sends the confirmation token
}

func (c *classifier) consume(chunk []byte) {
	for _, line := range c.split.feed(chunk) {
		c.line(line)
	}
}

// finish classifies the trailing partial line, if one was left over,
// and seals the transcript into the result.
func (c *classifier) finish() {
	if line, ok := c.split.flush(); ok {
		c.line(line)
	}
	c.res.Output = c.out.String()
}

// line runs the three tests in order. They are independent: one line may
// fire any combination of them.
func (c *classifier) line(line string) {
	c.out.WriteString(line)
	c.out.WriteByte('\n')

	if isOverwritePrompt(line) {
		c.res.OverwritePrompted = true
		if c.auto() {
			c.res.OverwriteConfirmed = true
			c.respond()
		}
	}

	if isErrorLine(line) {
		c.res.ErrorLine = line
	}

	if isSuccessLine(line) {
		// Success once set is never cleared, even when an error line was
		// recorded earlier in the same run. ffmpeg prints transient
		// errors on runs that finish fine, so the summary line wins.
		c.res.Success = true
	}
}
