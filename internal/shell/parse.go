package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// Parse splits line into an argument vector. An unquoted trailing "&",
// alone or glued to the last word, asks for a background job and is
// removed.
func Parse(line string) (argv []string, background bool, err error) {
	argv, err = shellquote.Split(line)
	if err != nil {
		return nil, false, err
	}
	if len(argv) == 0 {
		return nil, false, nil
	}

	trimmed := strings.TrimSpace(line)
	if !strings.HasSuffix(trimmed, "&") || strings.HasSuffix(trimmed, `\&`) {
		return argv, false, nil
	}

	last := argv[len(argv)-1]
	switch {
	case last == "&":
		argv = argv[:len(argv)-1]
	case strings.HasSuffix(last, "&"):
		argv[len(argv)-1] = strings.TrimSuffix(last, "&")
	default:
		return argv, false, nil
	}
	if len(argv) == 0 {
		return nil, true, nil
	}
	return argv, true, nil
}
