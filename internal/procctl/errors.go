package procctl

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/betterdiscord/installer-cli/internal/messages"
)

// AmbiguousProcessMatchError is returned when the parent Discord process cannot be
// told apart: no matched process, or more than one, is the parent of another match.
type AmbiguousProcessMatchError struct {
	Name       string
	Candidates []int32
}

func (e *AmbiguousProcessMatchError) Error() string {
	return fmt.Sprintf(messages.ProcAmbiguousFmt, e.Name, len(e.Candidates))
}

func formatError(es []error) string {
	if len(es) == 1 {
		return fmt.Sprintf("1 error occurred:\n\t* %s", es[0])
	}

	points := make([]string, len(es))
	for i, err := range es {
		points[i] = fmt.Sprintf("* %s", err)
	}

	return fmt.Sprintf(
		"%d errors occurred:\n\t%s",
		len(es), strings.Join(points, "\n\t"))
}

// formatErrorOrNil returns err with the package's list formatting, or nil when empty.
func formatErrorOrNil(err *multierror.Error) error {
	if err != nil {
		err.ErrorFormat = formatError
	}
	return err.ErrorOrNil()
}
