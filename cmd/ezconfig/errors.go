package ezconfig

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/arthur-debert/ezconfig/pkg/style"
)

// HandleError prints err for the operator and returns the process exit
// code. A declined confirmation prints a plain "Aborted." line.
func HandleError(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if errors.IsErrorCode(err, errors.ErrUserAbort) {
		_, _ = fmt.Fprintln(w, MsgAborted)
		return 1
	}

	_, _ = fmt.Fprintln(w, style.ErrorStyle.Render(MsgErrorPrefix+err.Error()))
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		keys := make([]string, 0, len(details))
		for k := range details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			value := fmt.Sprint(details[k])
			if strings.Contains(value, "\n") {
				value = "\n" + style.Indent(value, 2)
			}
			_, _ = fmt.Fprintf(w, "  %s: %s\n", k, value)
		}
	}
	return 1
}
