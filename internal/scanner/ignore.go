package scanner

import (
	"os"
	"regexp"
	"strings"

	"github.com/brickster241/jitvcs/internal/jiterr"
)

// ignoreSet holds the compiled regexes for file-name patterns and
// directory-prefix patterns loaded from .jitignore: every line is
// regex-escaped except for `*`, which expands to `.+` (one or more
// characters, not zero-or-more as in standard glob/gitignore syntax),
// and folded into one alternation per category.
type ignoreSet struct {
	dirRe  *regexp.Regexp
	fileRe *regexp.Regexp
}

// metaChars are regexp special characters other than '*' that must be
// escaped before a glob line is turned into a regex alternative.
const metaChars = `\.+?()[]{}|^$`

func globLineToRegexFragment(line string) string {
	var b strings.Builder
	for _, r := range line {
		if r == '*' {
			b.WriteString(".+")
			continue
		}
		if strings.ContainsRune(metaChars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// loadIgnoreSet reads ignoreFilePath (if present) and compiles its
// patterns. Patterns ending with '/' match directory prefixes; all
// others match file names. A missing ignore file yields an empty,
// always-non-matching set.
func loadIgnoreSet(ignoreFilePath string) (*ignoreSet, error) {
	data, err := os.ReadFile(ignoreFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &ignoreSet{}, nil
		}
		return nil, jiterr.Wrap(jiterr.IoFailure, err, "scanner: read .jitignore")
	}

	var dirFrags, fileFrags []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		frag := globLineToRegexFragment(line)
		if strings.HasSuffix(line, "/") {
			dirFrags = append(dirFrags, frag)
		} else {
			fileFrags = append(fileFrags, frag)
		}
	}

	set := &ignoreSet{}
	if len(dirFrags) > 0 {
		set.dirRe, err = regexp.Compile("^(?:" + strings.Join(dirFrags, "|") + ")")
		if err != nil {
			return nil, jiterr.Wrap(jiterr.IoFailure, err, "scanner: compile directory ignore patterns")
		}
	}
	if len(fileFrags) > 0 {
		set.fileRe, err = regexp.Compile("^(?:" + strings.Join(fileFrags, "|") + ")$")
		if err != nil {
			return nil, jiterr.Wrap(jiterr.IoFailure, err, "scanner: compile file ignore patterns")
		}
	}
	return set, nil
}

// matches reports whether relPath (a normalised, forward-slash relative
// path) should be excluded from a scan: either its full path matches a
// directory-prefix pattern, or its base name matches a file-name
// pattern.
func (s *ignoreSet) matches(relPath, baseName string) bool {
	if s == nil {
		return false
	}
	if s.dirRe != nil && s.dirRe.MatchString(relPath) {
		return true
	}
	if s.fileRe != nil && s.fileRe.MatchString(baseName) {
		return true
	}
	return false
}
